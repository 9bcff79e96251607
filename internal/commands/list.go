package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/app"
	"taskboard/internal/exitcode"
	"taskboard/internal/model"
	"taskboard/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: the board as three status-column
// sections. Task numbers follow insertion order across the whole
// collection, so a number printed under any column works as a reference
// for move/edit/rm.
type ListCmd struct {
	status  string
	verbose bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List the board" }
func (c *ListCmd) Usage() string {
	return "taskboard list [--status <s>] [--verbose]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
}

func (c *ListCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	columns := model.Statuses
	if c.status != "" {
		status, err := model.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		columns = []model.Status{status}
	}

	if err := loadTasks(ctx, a); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", a.Tasks.Err())
		return exitcode.BackendError
	}

	tasks := a.Tasks.Tasks()
	if len(tasks) == 0 {
		if !a.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	// Insertion-order numbering shared across columns.
	number := make(map[string]int, len(tasks))
	for i, t := range tasks {
		number[t.ID] = i + 1
	}

	for _, status := range columns {
		column := a.Tasks.ByStatus(status)
		output.FormatColumnHeader(out, status, len(column))
		for _, t := range column {
			if c.verbose {
				output.FormatTaskDetail(out, number[t.ID], t)
			} else {
				output.FormatTask(out, number[t.ID], t)
			}
		}
	}
	return exitcode.Success
}
