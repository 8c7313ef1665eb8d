// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, out-of-range task number, empty description).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// StoreError indicates the task file could not be read, written or decoded.
	StoreError = 3

	// RemoteError indicates a Google Tasks API/network error.
	RemoteError = 4
)
