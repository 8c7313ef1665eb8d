package commands_test

import (
	"errors"
	"slices"
	"testing"

	"jtask/internal/commands"
)

func TestParseTaskNumber(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		rest    []string
		wantErr string
	}{
		{name: "simple", args: []string{"1"}, want: 1, rest: []string{}},
		{name: "with description", args: []string{"12", "finish", "report"}, want: 12, rest: []string{"finish", "report"}},
		{name: "zero", args: []string{"0"}, want: 0, rest: []string{}},
		{name: "negative", args: []string{"-3"}, want: -3, rest: []string{}},
		{name: "empty", args: nil, wantErr: "task number required"},
		{name: "letters", args: []string{"a1"}, wantErr: "invalid task number: a1"},
		{name: "lone dash", args: []string{"-"}, wantErr: "invalid task number: -"},
		{name: "decimal", args: []string{"1.5"}, wantErr: "invalid task number: 1.5"},
		{name: "overflow", args: []string{"99999999999999999999999"}, wantErr: "invalid task number: 99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := commands.ParseTaskNumber(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
			if !slices.Equal(rest, tt.rest) {
				t.Errorf("expected rest %q, got %q", tt.rest, rest)
			}
		})
	}
}

func TestParseTaskNumber_RequiredSentinel(t *testing.T) {
	_, _, err := commands.ParseTaskNumber(nil)
	if !errors.Is(err, commands.ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestJoinDescription(t *testing.T) {
	got, err := commands.JoinDescription([]string{"buy", "milk"})
	if err != nil || got != "buy milk" {
		t.Errorf("expected %q, got %q (%v)", "buy milk", got, err)
	}

	for _, args := range [][]string{nil, {""}, {" ", "\t"}} {
		if _, err := commands.JoinDescription(args); !errors.Is(err, commands.ErrDescriptionRequired) {
			t.Errorf("JoinDescription(%q): expected ErrDescriptionRequired, got %v", args, err)
		}
	}
}

func TestIsNegativeNumber(t *testing.T) {
	for s, want := range map[string]bool{"-1": true, "-42": true, "1": false, "-": false, "--": false, "-x": false, "--1": false} {
		if got := commands.IsNegativeNumber(s); got != want {
			t.Errorf("IsNegativeNumber(%q) = %v, want %v", s, got, want)
		}
	}
}
