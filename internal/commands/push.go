package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"jtask/internal/backend/googletasks"
	"jtask/internal/config"
	"jtask/internal/exitcode"
	"jtask/internal/service"
)

// Exporter copies tasks into a remote list.
type Exporter interface {
	Export(ctx context.Context, listTitle string, tasks []service.Task) (int, error)
}

// ExporterFactory connects an Exporter for the given config.
type ExporterFactory func(ctx context.Context, cfg *config.Config) (Exporter, error)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
	connect  ExporterFactory
}

// SetListName sets the target list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetExporterFactory replaces the Google Tasks client (for testing).
func (c *PushCmd) SetExporterFactory(f ExporterFactory) {
	c.connect = f
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "jtask push [common flags] [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if code, bad := rejectExtraArgs(errOut, args); bad {
		return code
	}

	listName := strings.TrimSpace(c.listName)
	if listName == "" {
		listName = cfg.ExportList
	}

	entries, err := svc.List(ctx)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	exporter, code := c.exporter(ctx, cfg, errOut)
	if exporter == nil {
		return code
	}

	items := make([]service.Task, len(entries))
	for i, e := range entries {
		items[i] = e.Task
	}

	cfg.Logger().Debug("pushing tasks", "list", listName, "count", len(items))
	n, err := exporter.Export(ctx, listName, items)
	if err != nil {
		if n > 0 {
			fmt.Fprintf(errOut, "error: pushed %d of %d tasks\n", n, len(items))
		}
		if errors.Is(err, googletasks.ErrAuth) {
			fmt.Fprintf(errOut, "error: auth error: %v\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: remote error: %v\n", err)
		return exitcode.RemoteError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %s\n", n, listName)
	}
	return exitcode.Success
}

// exporter returns the configured exporter, or nil and an exit code.
func (c *PushCmd) exporter(ctx context.Context, cfg *config.Config, errOut io.Writer) (Exporter, int) {
	if c.connect != nil {
		exporter, err := c.connect(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: auth error: %v\n", err)
			return nil, exitcode.AuthError
		}
		return exporter, exitcode.Success
	}

	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s (run: jtask login)\n", cfg.Dir)
		return nil, exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: jtask login)")
		return nil, exitcode.AuthError
	}

	client, err := googletasks.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return nil, exitcode.AuthError
	}
	return client, exitcode.Success
}
