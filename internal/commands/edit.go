package commands

import (
	"context"
	"flag"
	"io"

	"jtask/internal/config"
	"jtask/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Replace a task's description" }
func (c *EditCmd) Usage() string     { return "jtask edit [common flags] <n> <description...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	index, rest, err := ParseTaskNumber(args)
	if err != nil {
		return reportArgError(errOut, err)
	}
	description, err := JoinDescription(rest)
	if err != nil {
		return reportArgError(errOut, err)
	}

	entry, err := svc.Edit(ctx, index, description)
	if err != nil {
		return reportStoreError(errOut, err)
	}
	cfg.Logger().Debug("edited task", "index", entry.Index, "id", entry.Task.ID)

	return ok(out, cfg.Quiet)
}
