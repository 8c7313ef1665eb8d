package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"jtask/internal/exitcode"
	"jtask/internal/service"
)

// reportStoreError prints err and maps it to an exit code.
// Out-of-range numbers and empty descriptions are user errors; anything
// else from the store means the data file could not be used.
func reportStoreError(errOut io.Writer, err error) int {
	var indexErr *service.IndexError
	switch {
	case errors.As(err, &indexErr):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", indexErr.Index)
		return exitcode.UserError
	case errors.Is(err, service.ErrInvalidInput):
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}
}

// reportArgError prints an argument parsing error.
func reportArgError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// rejectExtraArgs fails when a command received more positional args than it takes.
func rejectExtraArgs(errOut io.Writer, extra []string) (int, bool) {
	if len(extra) == 0 {
		return exitcode.Success, false
	}
	fmt.Fprintf(errOut, "error: unexpected argument: %s\n", extra[0])
	return exitcode.UserError, true
}

// ok prints the success acknowledgement unless quiet.
func ok(out io.Writer, quiet bool) int {
	if !quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
