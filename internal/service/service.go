// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the task store operations consumed by the front ends.
// Indexes are 1-based display positions; an index outside [1, len] fails
// with an *IndexError and changes nothing.
type Service interface {
	// Add appends a new open task and returns it with its position.
	Add(ctx context.Context, description string) (Entry, error)

	// List returns every task in collection order.
	// A store that was never written is empty, not an error.
	List(ctx context.Context) ([]Entry, error)

	// Edit replaces the description at index. Completion is untouched.
	Edit(ctx context.Context, index int, description string) (Entry, error)

	// Remove deletes the task at index. Later tasks move up one position.
	Remove(ctx context.Context, index int) (Task, error)

	// Complete marks the task at index completed. Idempotent.
	Complete(ctx context.Context, index int) (Entry, error)

	// Reopen marks the task at index open again. Idempotent.
	Reopen(ctx context.Context, index int) (Entry, error)
}
