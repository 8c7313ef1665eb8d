package commands

import (
	"context"
	"flag"
	"io"

	"jtask/internal/config"
	"jtask/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"remove"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "jtask rm [common flags] <n>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	index, rest, err := ParseTaskNumber(args)
	if err != nil {
		return reportArgError(errOut, err)
	}
	if code, bad := rejectExtraArgs(errOut, rest); bad {
		return code
	}

	removed, err := svc.Remove(ctx, index)
	if err != nil {
		return reportStoreError(errOut, err)
	}
	cfg.Logger().Debug("removed task", "index", index, "id", removed.ID)

	return ok(out, cfg.Quiet)
}
