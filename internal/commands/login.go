package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/app"
	"taskboard/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	noRemember bool
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with the task-board server" }
func (c *LoginCmd) Usage() string {
	return "taskboard login [--no-remember] <email> <password>"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.noRemember, "no-remember", false, "")
}

func (c *LoginCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}
	email, password := args[0], args[1]
	if email == "" || password == "" {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}

	if err := a.Session.Login(ctx, email, password, !c.noRemember); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", a.Session.Err())
		return exitcode.AuthError
	}

	if !a.Config.Quiet {
		user, _ := a.Session.User()
		fmt.Fprintf(out, "logged in as %s\n", user.Email)
	}
	return exitcode.Success
}
