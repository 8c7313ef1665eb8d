// Package googletasks exports the local task collection to Google Tasks.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"jtask/internal/config"
	"jtask/internal/service"
)

const (
	// APITimeout is the timeout for each API call.
	APITimeout = 5 * time.Second

	// StatusCompleted and StatusNeedsAction are the Google Tasks status values.
	StatusCompleted   = "completed"
	StatusNeedsAction = "needsAction"

	listPageSize = 100
)

// ErrAmbiguousList is returned when more than one remote list has the title.
var ErrAmbiguousList = errors.New("ambiguous list name")

// ErrAuth marks API failures caused by an expired or revoked token.
var ErrAuth = errors.New("token expired or revoked (run: jtask login)")

// Client pushes tasks through the Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a client from the credentials in the config directory.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := LoadOAuthConfig(cfg.OAuthClientPath())
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// Tests pass option.WithEndpoint to point it at a local server.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ResolveOrCreateList finds a list by title (case-insensitive, trimmed)
// and creates it when no list matches. It returns the list ID.
func (c *Client) ResolveOrCreateList(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	want := strings.ToLower(title)

	var matches []string
	listCtx, cancel := context.WithTimeout(ctx, APITimeout)
	err := c.svc.Tasklists.List().MaxResults(listPageSize).Pages(listCtx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == want {
				matches = append(matches, list.Id)
			}
		}
		return nil
	})
	cancel()
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousList, title)
	}

	insertCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(insertCtx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return created.Id, nil
}

// Export inserts every task into the list titled listTitle, keeping the
// local order. It returns the number of tasks inserted before any failure.
func (c *Client) Export(ctx context.Context, listTitle string, items []service.Task) (int, error) {
	listID, err := c.ResolveOrCreateList(ctx, listTitle)
	if err != nil {
		return 0, err
	}

	// The API inserts at the top unless a previous sibling is given.
	var previous string
	for i, item := range items {
		inserted, err := c.insert(ctx, listID, previous, item)
		if err != nil {
			return i, err
		}
		previous = inserted.Id
	}
	return len(items), nil
}

func (c *Client) insert(ctx context.Context, listID, previous string, item service.Task) (*tasks.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	remote := &tasks.Task{Title: item.Description, Status: StatusNeedsAction}
	if item.Completed {
		remote.Status = StatusCompleted
	}

	call := c.svc.Tasks.Insert(listID, remote).Context(ctx)
	if previous != "" {
		call = call.Previous(previous)
	}
	inserted, err := call.Do()
	if err != nil {
		return nil, wrapError(err)
	}
	return inserted, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrAuth, err)
		case http.StatusNotFound:
			return fmt.Errorf("not found: %w", err)
		}
	}

	return err
}
