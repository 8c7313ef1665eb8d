// Package cli parses the command line and runs commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"jtask/internal/backend/filestore"
	"jtask/internal/commands"
	"jtask/internal/config"
	"jtask/internal/exitcode"
	"jtask/internal/logging"
	"jtask/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the store during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// FileStoreFactory opens the task file named by cfg.
func FileStoreFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	format, err := filestore.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	store, err := filestore.New(cfg.DataFile, filestore.WithFormat(format))
	if err != nil {
		return nil, err
	}
	cfg.Logger().Debug("opened task store", "path", store.Path(), "format", store.Format())
	return store, nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
// A nil factory opens the task file.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	if factory == nil {
		factory = FileStoreFactory
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	file      string
	format    string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.StringVar(&f.file, "file", "", "")
	fs.StringVar(&f.format, "format", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", describeFlagError(err))
		return exitcode.UserError
	}

	// Anything after "--" is positional, including "-5 degrees" descriptions.
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && !afterSeparator(args, positionalArgs) &&
		strings.HasPrefix(positionalArgs[0], "-") && !commands.IsNegativeNumber(positionalArgs[0]) {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	cfg.Log = logging.New(errOut, common.debug)
	if common.file != "" {
		cfg.DataFile = config.ExpandHome(common.file)
	}
	if common.format != "" {
		cfg.Format = common.format
	}
	cfg.Logger().Debug("dispatching", "command", cmd.Name(), "config", cfg.Dir, "file", cfg.DataFile)

	var svc service.Service
	if cmd.NeedsStore() {
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.AuthError
		}
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// afterSeparator reports whether the flag parser stopped at a "--".
func afterSeparator(args, positional []string) bool {
	consumed := len(args) - len(positional)
	return consumed > 0 && args[consumed-1] == "--"
}

// describeFlagError rewrites flag package errors into the CLI's wording.
func describeFlagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagName
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + flagName
	}

	return errStr
}
