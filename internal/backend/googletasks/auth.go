package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"jtask/internal/config"
)

const (
	// TasksScope is the OAuth scope for Google Tasks.
	TasksScope = "https://www.googleapis.com/auth/tasks"

	// CallbackTimeout bounds how long login waits for the browser redirect.
	CallbackTimeout = 5 * time.Minute

	tokenExchangeTimeout = 30 * time.Second
	tokenCheckTimeout    = 10 * time.Second

	// Starting port for the loopback callback server
	callbackStartPort   = 8085
	callbackMaxAttempts = 5

	tokenFileMode = 0o600
)

// ErrCallbackTimeout is returned when the browser never reaches the callback.
var ErrCallbackTimeout = errors.New("oauth callback timed out")

// LoadOAuthConfig reads a desktop-app client secret file.
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads a token saved by SaveToken.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes token to path with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, tokenFileMode)
}

// TokenValid reports whether the stored token has a refresh token and can
// still be exchanged for an access token.
func TokenValid(ctx context.Context, cfg *config.Config) bool {
	token, err := LoadToken(cfg.TokenPath())
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := LoadOAuthConfig(cfg.OAuthClientPath())
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
	defer cancel()

	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}

// Login runs the loopback PKCE flow. The consent URL is written to prompt
// and the exchanged token is returned.
func Login(ctx context.Context, oauthConfig *oauth2.Config, prompt io.Writer) (*oauth2.Token, error) {
	port, listener, err := findAvailablePort()
	if err != nil {
		return nil, fmt.Errorf("could not bind to local port for OAuth callback: %w", err)
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(prompt, "Open this URL in your browser:")
	fmt.Fprintln(prompt, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			select {
			case errCh <- errors.New("no code in callback"):
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(CallbackTimeout):
		return nil, ErrCallbackTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// findAvailablePort tries ports starting from callbackStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < callbackMaxAttempts; i++ {
		port := callbackStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, errors.New("no available port found")
}
