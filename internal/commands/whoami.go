package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/app"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the authenticated user's profile.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the current user" }
func (c *WhoamiCmd) Usage() string     { return "taskboard whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	user, ok := a.Session.User()
	if !ok {
		fmt.Fprintln(errOut, "error: not logged in (run: taskboard login)")
		return exitcode.AuthError
	}
	output.FormatUser(out, user)
	if a.Config.Debug {
		fmt.Fprintf(errOut, "session state: %s\n", a.Session.State())
	}
	return exitcode.Success
}
