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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                        Show the board
  taskboard list [--status <s>] [--verbose]        Show the board (or one column)
  taskboard add [--desc <d>] [--status <s>] [--priority <p>] [--due <date>] <title...>
  taskboard move <n> <todo|in-progress|done>
  taskboard done <n>
  taskboard edit [--title <t>] [--desc <d>] [--status <s>] [--priority <p>] [--due <date>] <n>
  taskboard rm <n>
  taskboard board                                  Interactive board
  taskboard login [--no-remember] <email> <password>
  taskboard signup --name <name> --accept-terms [--confirm <pw>] <email> <password>
  taskboard logout
  taskboard whoami
  taskboard wallet <address>
  taskboard help
  taskboard version

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override API base URL (or set TASKBOARD_API_URL)
  --offline        Keep tasks in the local store only
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
