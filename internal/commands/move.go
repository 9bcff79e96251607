package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/app"
	"taskboard/internal/exitcode"
	"taskboard/internal/model"
	"taskboard/internal/task"
)

func init() {
	Register(&MoveCmd{})
	Register(&DoneCmd{})
}

// MoveCmd moves a task to another column. A column move is a status
// update; the record itself never changes position in the collection.
type MoveCmd struct{}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a task to another column" }
func (c *MoveCmd) Usage() string     { return "taskboard move <n> <todo|in-progress|done>" }
func (c *MoveCmd) NeedsAuth() bool   { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: task reference and status required")
		return exitcode.UserError
	}
	status, err := model.ParseStatus(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return runStatusChange(ctx, a, args[0], status, out, errOut)
}

// DoneCmd is shorthand for moving a task to the done column.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Move a task to done" }
func (c *DoneCmd) Usage() string     { return "taskboard done <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	return runStatusChange(ctx, a, args[0], model.StatusDone, out, errOut)
}

func runStatusChange(ctx context.Context, a *app.App, ref string, status model.Status, out, errOut io.Writer) int {
	if err := loadTasks(ctx, a); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", a.Tasks.Err())
		return exitcode.BackendError
	}

	t, err := resolveTaskRef(a, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := a.Tasks.UpdateTask(ctx, t.ID, task.Update{Status: &status}); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", a.Tasks.Err())
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
