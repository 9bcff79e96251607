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
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command. The confirmation and terms
// checks run before any request is made.
type SignupCmd struct {
	name        string
	confirm     string
	acceptTerms bool
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string {
	return "taskboard signup --name <name> --accept-terms [--confirm <password>] <email> <password>"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.confirm, "confirm", "", "")
	fs.BoolVar(&c.acceptTerms, "accept-terms", false, "")
}

func (c *SignupCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}
	email, password := args[0], args[1]
	if c.name == "" {
		fmt.Fprintln(errOut, "error: --name required")
		return exitcode.UserError
	}
	if email == "" || password == "" {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}
	if c.confirm != "" && c.confirm != password {
		fmt.Fprintln(errOut, "error: passwords do not match")
		return exitcode.UserError
	}
	if !c.acceptTerms {
		fmt.Fprintln(errOut, "error: you must accept the terms of service (--accept-terms)")
		return exitcode.UserError
	}

	if err := a.Session.Signup(ctx, c.name, email, password); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", a.Session.Err())
		return exitcode.AuthError
	}

	if !a.Config.Quiet {
		user, _ := a.Session.User()
		fmt.Fprintf(out, "account created for %s\n", user.Email)
	}
	return exitcode.Success
}
