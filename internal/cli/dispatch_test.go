package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskboard/internal/commands"
	"taskboard/internal/exitcode"
	"taskboard/internal/testutil"
)

func dispatch(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	d := NewDispatcher(commands.DefaultRegistry, nil)
	code := d.Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := dispatch(t, "frobnicate")
	if code != exitcode.UserError {
		t.Errorf("exit = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "unknown command: frobnicate") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestFlagBeforeCommand(t *testing.T) {
	code, _, errOut := dispatch(t, "--quiet", "version")
	if code != exitcode.UserError {
		t.Errorf("exit = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "unknown command: --quiet") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestUnknownFlag(t *testing.T) {
	code, _, errOut := dispatch(t, "version", "--bogus")
	if code != exitcode.UserError {
		t.Errorf("exit = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "unknown flag") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestFlagNeedsArgument(t *testing.T) {
	code, _, errOut := dispatch(t, "list", "--status")
	if code != exitcode.UserError {
		t.Errorf("exit = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "flag needs an argument") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestVersionThroughDispatcher(t *testing.T) {
	code, out, _ := dispatch(t, "version", "--config", t.TempDir())
	if code != exitcode.Success {
		t.Fatalf("exit = %d", code)
	}
	if !strings.HasPrefix(out, "taskboard ") {
		t.Errorf("output = %q", out)
	}
}

func TestNoArgsShowsBoardButRequiresSession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	code, _, errOut := dispatch(t)
	if code != exitcode.AuthError {
		t.Errorf("exit = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "not logged in") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestAuthGateBlocksRemoteCommands(t *testing.T) {
	base := testutil.StartBackend(t)
	dir := t.TempDir()

	code, _, errOut := dispatch(t, "list", "--config", dir, "--api", base)
	if code != exitcode.AuthError {
		t.Errorf("exit = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "not logged in") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestSignupThenTaskFlow(t *testing.T) {
	base := testutil.StartBackend(t)
	dir := t.TempDir()

	code, _, errOut := dispatch(t, "signup",
		"--config", dir, "--api", base,
		"--name", "Ada", "--accept-terms",
		"ada@example.com", "secret")
	if code != exitcode.Success {
		t.Fatalf("signup exit = %d, stderr %q", code, errOut)
	}

	code, _, errOut = dispatch(t, "add",
		"--config", dir, "--api", base,
		"--priority", "high", "ship", "the", "release")
	if code != exitcode.Success {
		t.Fatalf("add exit = %d, stderr %q", code, errOut)
	}

	code, out, errOut := dispatch(t, "list", "--config", dir, "--api", base)
	if code != exitcode.Success {
		t.Fatalf("list exit = %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "ship the release") {
		t.Errorf("task missing from board:\n%s", out)
	}

	code, out, _ = dispatch(t, "whoami", "--config", dir, "--api", base)
	if code != exitcode.Success {
		t.Fatalf("whoami exit = %d", code)
	}
	if !strings.Contains(out, "ada@example.com") {
		t.Errorf("whoami output = %q", out)
	}
}

func TestOfflineFlowSkipsAuthGate(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := dispatch(t, "add", "--config", dir, "--offline", "groceries")
	if code != exitcode.Success {
		t.Fatalf("add exit = %d, stderr %q", code, errOut)
	}

	code, out, errOut := dispatch(t, "list", "--config", dir, "--offline")
	if code != exitcode.Success {
		t.Fatalf("list exit = %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "groceries") {
		t.Errorf("task missing from board:\n%s", out)
	}
}
