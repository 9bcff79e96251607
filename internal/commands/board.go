package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/app"
	"taskboard/internal/exitcode"
	"taskboard/internal/tui"
)

func init() {
	Register(&BoardCmd{})
}

// BoardCmd opens the interactive terminal board.
type BoardCmd struct{}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return []string{"ui"} }
func (c *BoardCmd) Synopsis() string  { return "Open the interactive board" }
func (c *BoardCmd) Usage() string     { return "taskboard board [common flags]" }
func (c *BoardCmd) NeedsAuth() bool   { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if err := loadTasks(ctx, a); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %s\n", a.Tasks.Err())
		return exitcode.BackendError
	}

	if err := tui.Run(ctx, a); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
