package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"jtask/internal/backend/googletasks"
	"jtask/internal/config"
	"jtask/internal/exitcode"
	"jtask/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google for push" }
func (c *LoginCmd) Usage() string     { return "jtask login [common flags]" }
func (c *LoginCmd) NeedsStore() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if code, bad := rejectExtraArgs(errOut, args); bad {
		return code
	}

	if !cfg.HasOAuthClient() {
		printOAuthSetup(cfg, errOut)
		return exitcode.AuthError
	}

	if cfg.HasToken() && googletasks.TokenValid(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	oauthConfig, err := googletasks.LoadOAuthConfig(cfg.OAuthClientPath())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	token, err := googletasks.Login(ctx, oauthConfig, errOut)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(errOut, "error: cancelled")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := googletasks.SaveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}
	cfg.Logger().Debug("saved token", "path", cfg.TokenPath())

	return ok(out, cfg.Quiet)
}

func printOAuthSetup(cfg *config.Config, errOut io.Writer) {
	fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
	fmt.Fprintln(errOut, "To push tasks to Google Tasks, you need OAuth credentials:")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(errOut, "2. Enable the Google Tasks API for your project:")
	fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/tasks.googleapis.com")
	fmt.Fprintln(errOut, "3. Create an OAuth client ID of type 'Desktop app' and download the JSON file")
	fmt.Fprintf(errOut, "4. Save it as %s\n", cfg.OAuthClientPath())
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "Then run 'jtask login' again.")
}
