package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"jtask/internal/config"
	"jtask/internal/exitcode"
	"jtask/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "jtask help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if code, bad := rejectExtraArgs(errOut, args); bad {
		return code
	}
	fmt.Fprint(out, HelpText(DefaultRegistry))
	return exitcode.Success
}

// HelpText renders usage for every command in r.
func HelpText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  jtask                                    List tasks\n")
	for _, cmd := range r.All() {
		usage := cmd.Usage()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			usage += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "  %-40s %s\n", usage, cmd.Synopsis())
	}
	b.WriteString(commonFlagsHelp)
	return b.String()
}

const commonFlagsHelp = `
Task numbers are the positions shown by list, starting at 1.

Common flags:
  --config <dir>    Override config directory
  --file <path>     Task file (default: tasks.json)
  --format <name>   File format: json, yaml or toml
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr
`
