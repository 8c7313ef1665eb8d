package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jtask/internal/cli"
	"jtask/internal/commands"
	"jtask/internal/config"
	"jtask/internal/exitcode"
	"jtask/internal/service"
	"jtask/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// isolate points the config directory and environment at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvFormat, "")
	return dir
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.Seed(service.Task{Description: "buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, _, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "1: [ ] buy milk\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestDispatcher_Aliases(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	steps := [][]string{
		{"create", "buy milk"},
		{"create", "write report"},
		{"complete", "1"},
		{"reopen", "1"},
		{"rename", "2", "finish report"},
		{"remove", "1"},
	}
	for _, args := range steps {
		if _, stderr, code := run(t, dispatcher, args...); code != exitcode.Success {
			t.Fatalf("%v: exit %d, stderr %q", args, code, stderr)
		}
	}

	stdout, _, _ := run(t, dispatcher, "ls")
	if stdout != "1: [ ] finish report\n" {
		t.Errorf("unexpected list output: %q", stdout)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "jtask 0.1.0\n" {
		t.Errorf("expected 'jtask 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_FlagErrors(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"unknown flag", []string{"help", "--unknown"}, "error: unknown flag: -unknown\n"},
		{"missing value", []string{"list", "--file"}, "error: flag needs an argument: -file\n"},
		{"bare negative number", []string{"rm", "-1"}, "error: unknown flag: -1\n"},
		{"flag after separator", []string{"rm", "--", "--quiet"}, "error: invalid task number: --quiet\n"},
		{"lone dash", []string{"rm", "-"}, "error: unknown flag: -\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, dispatcher, tt.args...)
			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestDispatcher_NegativeIndexAfterSeparator(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.Seed(service.Task{Description: "buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "rm", "--", "-1")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: -1\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if len(svc.Tasks()) != 1 {
		t.Error("store should be unchanged")
	}
}

func TestDispatcher_DashDescriptionAfterSeparator(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()
	svc.Seed(service.Task{Description: "buy milk"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	steps := [][]string{
		{"add", "--", "-5 degrees outside"},
		{"add", "--quiet", "--", "--verbose", "notes"},
		{"edit", "--", "1", "-", "milk"},
	}
	for _, args := range steps {
		if _, stderr, code := run(t, dispatcher, args...); code != exitcode.Success {
			t.Fatalf("%v: exit %d, stderr %q", args, code, stderr)
		}
	}

	tasks := svc.Tasks()
	want := []string{"- milk", "-5 degrees outside", "--verbose notes"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %+v", len(want), tasks)
	}
	for i, w := range want {
		if tasks[i].Description != w {
			t.Errorf("task %d: expected %q, got %q", i+1, w, tasks[i].Description)
		}
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("unsupported format: xml")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: unsupported format: xml\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_FactoryNotCalledForHelp(t *testing.T) {
	isolate(t)
	called := false
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		called = true
		return nil, errors.New("should not be called")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	if _, _, code := run(t, dispatcher, "version"); code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if called {
		t.Error("factory should not be called for commands without a store")
	}
}

func TestDispatcher_CommonFlagsReachConfig(t *testing.T) {
	isolate(t)
	var got *config.Config
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		got = cfg
		return testutil.NewFakeService(), nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	configDir := t.TempDir()

	_, _, code := run(t, dispatcher, "list", "--config", configDir, "--file", "work.yaml", "--format", "yaml", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got.Dir != configDir {
		t.Errorf("expected config dir %q, got %q", configDir, got.Dir)
	}
	if got.DataFile != "work.yaml" {
		t.Errorf("expected data file work.yaml, got %q", got.DataFile)
	}
	if got.Format != "yaml" {
		t.Errorf("expected format yaml, got %q", got.Format)
	}
	if !got.Quiet {
		t.Error("expected quiet to be set")
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "add", "--debug", "buy milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if !strings.Contains(stderr, "added task") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	isolate(t)
	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, config.ConfigFile), []byte("data_file = ["), 0644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "list", "--config", configDir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid config.toml") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// End-to-end runs against the file store in a temp dir.
func TestDispatcher_FileStoreScenario(t *testing.T) {
	isolate(t)
	dataFile := filepath.Join(t.TempDir(), "tasks.json")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	steps := []struct {
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{[]string{"list", "--file", dataFile}, exitcode.Success, "no tasks found\n", ""},
		{[]string{"add", "--file", dataFile, "buy", "milk"}, exitcode.Success, "ok\n", ""},
		{[]string{"add", "--file", dataFile, "write report"}, exitcode.Success, "ok\n", ""},
		{[]string{"done", "--file", dataFile, "1"}, exitcode.Success, "ok\n", ""},
		{[]string{"list", "--file", dataFile}, exitcode.Success, "1: [x] buy milk\n2: [ ] write report\n", ""},
		{[]string{"rm", "--file", dataFile, "1"}, exitcode.Success, "ok\n", ""},
		{[]string{"edit", "--file", dataFile, "1", "finish report"}, exitcode.Success, "ok\n", ""},
		{[]string{"rm", "--file", dataFile, "5"}, exitcode.UserError, "", "error: task number out of range: 5\n"},
		{[]string{"add", "--file", dataFile, "--quiet", " "}, exitcode.UserError, "", "error: description required\n"},
		{[]string{"list", "--file", dataFile}, exitcode.Success, "1: [ ] finish report\n", ""},
	}

	for _, step := range steps {
		stdout, stderr, code := run(t, dispatcher, step.args...)
		if code != step.code || stdout != step.stdout || stderr != step.stderr {
			t.Fatalf("%v:\n got  code=%d stdout=%q stderr=%q\n want code=%d stdout=%q stderr=%q",
				step.args, code, stdout, stderr, step.code, step.stdout, step.stderr)
		}
	}
}

func TestDispatcher_FileStoreCorrupt(t *testing.T) {
	isolate(t)
	dataFile := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(dataFile, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	for _, args := range [][]string{{"list"}, {"add", "x"}, {"done", "1"}} {
		args = append(args[:1:1], append([]string{"--file", dataFile}, args[1:]...)...)
		_, stderr, code := run(t, dispatcher, args...)
		if code != exitcode.StoreError {
			t.Errorf("%v: expected exit code %d, got %d", args, exitcode.StoreError, code)
		}
		if !strings.HasPrefix(stderr, "error: task store is corrupt") {
			t.Errorf("%v: unexpected stderr: %q", args, stderr)
		}
	}

	data, err := os.ReadFile(dataFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{not json" {
		t.Errorf("corrupt file should be unchanged, got %q", data)
	}
}

func TestDispatcher_FileStoreFormatFromEnv(t *testing.T) {
	isolate(t)
	dataFile := filepath.Join(t.TempDir(), "tasks.txt")
	t.Setenv(config.EnvFormat, "yaml")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	if _, stderr, code := run(t, dispatcher, "add", "--file", dataFile, "buy milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}

	data, err := os.ReadFile(dataFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "description: buy milk") {
		t.Errorf("expected yaml content, got %q", data)
	}
}

func TestDispatcher_FileStoreBadFormat(t *testing.T) {
	isolate(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "list", "--file", filepath.Join(t.TempDir(), "t.json"), "--format", "xml")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "xml") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}
