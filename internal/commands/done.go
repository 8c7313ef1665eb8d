package commands

import (
	"context"
	"flag"
	"io"

	"jtask/internal/config"
	"jtask/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "jtask done [common flags] <n>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc.Complete, args, out, errOut)
}

// UndoneCmd implements the undone command.
type UndoneCmd struct{}

func (c *UndoneCmd) Name() string      { return "undone" }
func (c *UndoneCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoneCmd) Synopsis() string  { return "Mark a task open again" }
func (c *UndoneCmd) Usage() string     { return "jtask undone [common flags] <n>" }
func (c *UndoneCmd) NeedsStore() bool  { return true }

func (c *UndoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc.Reopen, args, out, errOut)
}

// runSetCompleted is the shared implementation for done and undone.
func runSetCompleted(ctx context.Context, cfg *config.Config, op func(context.Context, int) (service.Entry, error), args []string, out, errOut io.Writer) int {
	index, rest, err := ParseTaskNumber(args)
	if err != nil {
		return reportArgError(errOut, err)
	}
	if code, bad := rejectExtraArgs(errOut, rest); bad {
		return code
	}

	entry, err := op(ctx, index)
	if err != nil {
		return reportStoreError(errOut, err)
	}
	cfg.Logger().Debug("updated task", "index", entry.Index, "completed", entry.Task.Completed)

	return ok(out, cfg.Quiet)
}
