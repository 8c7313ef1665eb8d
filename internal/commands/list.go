package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"jtask/internal/config"
	"jtask/internal/exitcode"
	"jtask/internal/output"
	"jtask/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It also runs when jtask is invoked
// without a command.
type ListCmd struct {
	pending bool
}

// SetPending restricts output to open tasks (for testing).
func (c *ListCmd) SetPending(pending bool) {
	c.pending = pending
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "jtask list [common flags] [--pending]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.pending, "pending", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if code, bad := rejectExtraArgs(errOut, args); bad {
		return code
	}

	entries, err := svc.List(ctx)
	if err != nil {
		return reportStoreError(errOut, err)
	}
	cfg.Logger().Debug("loaded tasks", "count", len(entries))

	if c.pending {
		// Numbers stay those of the full list so they can be passed to done/rm.
		open := entries[:0:0]
		for _, e := range entries {
			if !e.Task.Completed {
				open = append(open, e)
			}
		}
		entries = open
	}

	if len(entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatEntries(out, entries)
	return exitcode.Success
}
