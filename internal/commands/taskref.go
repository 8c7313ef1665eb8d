package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrTaskRefRequired indicates no task number was provided.
	ErrTaskRefRequired = errors.New("task number required")

	// ErrDescriptionRequired indicates no description words were provided.
	ErrDescriptionRequired = errors.New("description required")
)

// ParseTaskNumber parses the leading task number from args and returns the
// remaining args. The number is the 1-based position shown by list.
//
// Range checking is left to the store so that 0 and negative numbers are
// reported the same way as numbers past the end of the list.
func ParseTaskNumber(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskRefRequired
	}
	ref := args[0]
	if !isInteger(ref) {
		return 0, nil, fmt.Errorf("invalid task number: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		// All digits but does not fit in an int.
		return 0, nil, fmt.Errorf("invalid task number: %s", ref)
	}
	return num, args[1:], nil
}

// JoinDescription joins positional args into a single description.
func JoinDescription(args []string) (string, error) {
	description := strings.Join(args, " ")
	if strings.TrimSpace(description) == "" {
		return "", ErrDescriptionRequired
	}
	return description, nil
}

// isInteger returns true if s is an optionally negative run of ASCII digits.
func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsNegativeNumber reports whether s looks like "-<digits>".
func IsNegativeNumber(s string) bool {
	return strings.HasPrefix(s, "-") && isInteger(s)
}
