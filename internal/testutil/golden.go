package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// UpdateGoldenEnv names the variable that rewrites golden files instead of
// comparing against them: JTASK_UPDATE_GOLDEN=1 go test ./...
const UpdateGoldenEnv = "JTASK_UPDATE_GOLDEN"

// Golden compares CLI output with testdata/<name>.golden.
func Golden(t *testing.T, name, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateGoldenEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v (set %s=1 to create it)\nGot:\n%s", path, err, UpdateGoldenEnv, got)
	}

	if diff := FirstDiff(string(want), got); diff != "" {
		t.Errorf("%s mismatch: %s\nWant:\n%s\nGot:\n%s", path, diff, want, got)
	}
}

// FirstDiff describes the first line that differs between want and got,
// or returns "" when they are equal.
func FirstDiff(want, got string) string {
	if want == got {
		return ""
	}
	wantLines := strings.SplitAfter(want, "\n")
	gotLines := strings.SplitAfter(got, "\n")
	for i := 0; i < max(len(wantLines), len(gotLines)); i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			return fmt.Sprintf("line %d: want %q, got %q", i+1, w, g)
		}
	}
	return ""
}
