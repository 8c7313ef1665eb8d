package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"jtask/internal/config"
	"jtask/internal/exitcode"
	"jtask/internal/service"
	"jtask/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"gui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive form" }
func (c *UICmd) Usage() string     { return "jtask ui [common flags]" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if code, bad := rejectExtraArgs(errOut, args); bad {
		return code
	}

	err := ui.Run(ctx, svc, ui.Options{
		Path:   cfg.DataFile,
		Output: out,
		Logger: cfg.Logger(),
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
