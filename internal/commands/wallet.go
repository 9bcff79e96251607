package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/api"
	"taskboard/internal/app"
	"taskboard/internal/exitcode"
)

func init() {
	Register(&WalletCmd{})
}

// WalletCmd links a wallet address to the user profile. The address comes
// in as a plain string; wallet-extension integration lives outside this
// tool.
type WalletCmd struct{}

func (c *WalletCmd) Name() string      { return "wallet" }
func (c *WalletCmd) Aliases() []string { return nil }
func (c *WalletCmd) Synopsis() string  { return "Link a wallet address to your profile" }
func (c *WalletCmd) Usage() string     { return "taskboard wallet [common flags] <address>" }
func (c *WalletCmd) NeedsAuth() bool   { return true }

func (c *WalletCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WalletCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(errOut, "error: wallet address required")
		return exitcode.UserError
	}

	if err := a.Session.UpdateWallet(ctx, args[0]); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", a.Session.Err())
		if errors.Is(err, api.ErrUnauthenticated) {
			return exitcode.AuthError
		}
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
