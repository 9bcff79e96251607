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
	Register(&EditCmd{})
}

// EditCmd applies a partial update to a task. Flags left unset keep the
// current value.
type EditCmd struct {
	title    string
	desc     string
	status   string
	priority string
	due      string
	set      map[string]bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [--title <t>] [--desc <d>] [--status <s>] [--priority <p>] [--due <date>] <n>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.due, "due", "", "")

	// Record which flags were actually given so unset ones are stripped
	// from the update.
	c.set = make(map[string]bool)
	for _, name := range []string{"title", "desc", "status", "priority", "due"} {
		f := fs.Lookup(name)
		orig := f.Value
		f.Value = &trackedValue{Value: orig, name: name, set: c.set}
	}
}

// trackedValue wraps a flag.Value and records assignment.
type trackedValue struct {
	flag.Value
	name string
	set  map[string]bool
}

func (v *trackedValue) Set(s string) error {
	v.set[v.name] = true
	return v.Value.Set(s)
}

func (c *EditCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	if len(c.set) == 0 {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	upd := task.Update{}
	if c.set["title"] {
		upd.Title = &c.title
	}
	if c.set["desc"] {
		upd.Description = &c.desc
	}
	if c.set["due"] {
		upd.DueDate = &c.due
	}
	if c.set["status"] {
		status, err := model.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		upd.Status = &status
	}
	if c.set["priority"] {
		priority, err := model.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		upd.Priority = &priority
	}

	if err := loadTasks(ctx, a); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", a.Tasks.Err())
		return exitcode.BackendError
	}

	t, err := resolveTaskRef(a, args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := a.Tasks.UpdateTask(ctx, t.ID, upd); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", a.Tasks.Err())
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
