package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIndex indicates a display index outside [1, len].
	ErrInvalidIndex = errors.New("invalid index")

	// ErrInvalidInput indicates an unacceptable description.
	ErrInvalidInput = errors.New("description required")

	// ErrIO indicates the backing file could not be read or written.
	ErrIO = errors.New("task store I/O failure")

	// ErrCorruptStore indicates the backing file does not decode into a task collection.
	ErrCorruptStore = errors.New("task store is corrupt")
)

// IndexError reports an out-of-range display index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task number out of range: %d", e.Index)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// CheckIndex returns an *IndexError unless 1 <= index <= n.
func CheckIndex(index, n int) error {
	if index < 1 || index > n {
		return &IndexError{Index: index, Len: n}
	}
	return nil
}

// StoreError describes a failed read or write of the backing file.
// Kind is ErrIO or ErrCorruptStore.
type StoreError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
