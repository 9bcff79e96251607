package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/app"
	"taskboard/internal/exitcode"
	"taskboard/internal/model"
	"taskboard/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc     string
	status   string
	priority string
	due      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--desc <text>] [--status <s>] [--priority <p>] [--due <date>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft := task.Draft{
		Title:       title,
		Description: c.desc,
		DueDate:     c.due,
	}
	if c.status != "" {
		status, err := model.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Status = status
	}
	if c.priority != "" {
		priority, err := model.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Priority = priority
	}

	if _, err := a.Tasks.Add(ctx, draft); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", a.Tasks.Err())
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
