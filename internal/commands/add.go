package commands

import (
	"context"
	"flag"
	"io"

	"jtask/internal/config"
	"jtask/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Append a task" }
func (c *AddCmd) Usage() string     { return "jtask add [common flags] <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	description, err := JoinDescription(args)
	if err != nil {
		return reportArgError(errOut, err)
	}

	entry, err := svc.Add(ctx, description)
	if err != nil {
		return reportStoreError(errOut, err)
	}
	cfg.Logger().Debug("added task", "index", entry.Index, "id", entry.Task.ID)

	return ok(out, cfg.Quiet)
}
