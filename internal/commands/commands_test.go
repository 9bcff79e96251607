package commands

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"taskboard/internal/app"
	"taskboard/internal/exitcode"
	"taskboard/internal/model"
	"taskboard/internal/store"
	"taskboard/internal/testutil"
)

// offlineApp builds an app with an empty local-only board.
func offlineApp(t *testing.T) *app.App {
	t.Helper()
	cfg := testutil.NewConfig(t, "")
	cfg.Offline = true
	if err := store.New(cfg).SaveTasks([]model.Task{}); err != nil {
		t.Fatalf("seed empty board: %v", err)
	}
	return app.New(cfg)
}

// onlineApp builds an app logged in against the in-memory backend.
func onlineApp(t *testing.T) *app.App {
	t.Helper()
	base := testutil.StartBackend(t)
	testutil.SeedAccount(t, base, "Ada", "ada@example.com", "secret")
	a := app.New(testutil.NewConfig(t, base))
	if err := a.Session.Login(context.Background(), "ada@example.com", "secret", true); err != nil {
		t.Fatalf("login: %v", err)
	}
	return a
}

// run parses argv the way the dispatcher would and runs the command.
func run(t *testing.T, cmd Command, a *app.App, argv ...string) (int, string, string) {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(argv); err != nil {
		t.Fatalf("parse %v: %v", argv, err)
	}
	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), a, fs.Args(), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersionCmd(t *testing.T) {
	code, out, _ := run(t, &VersionCmd{}, offlineApp(t))
	if code != exitcode.Success {
		t.Fatalf("exit = %d", code)
	}
	if out != "taskboard "+Version+"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestHelpMentionsEveryCommand(t *testing.T) {
	_, out, _ := run(t, &HelpCmd{}, offlineApp(t))
	for _, cmd := range DefaultRegistry.All() {
		if !strings.Contains(out, "taskboard "+cmd.Name()) {
			t.Errorf("help output missing %q", cmd.Name())
		}
	}
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name string
		argv []string
		want string
	}{
		{"missing name", []string{"--accept-terms", "a@b.c", "pw"}, "--name required"},
		{"missing terms", []string{"--name", "Ada", "a@b.c", "pw"}, "accept the terms"},
		{"password mismatch", []string{"--name", "Ada", "--accept-terms", "--confirm", "other", "a@b.c", "pw"}, "passwords do not match"},
		{"missing password", []string{"--name", "Ada", "--accept-terms", "a@b.c"}, "email and password required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := run(t, &SignupCmd{}, offlineApp(t), tc.argv...)
			if code != exitcode.UserError {
				t.Errorf("exit = %d, want %d", code, exitcode.UserError)
			}
			if !strings.Contains(errOut, tc.want) {
				t.Errorf("stderr = %q, want mention of %q", errOut, tc.want)
			}
		})
	}
}

func TestSignupCreatesAccount(t *testing.T) {
	base := testutil.StartBackend(t)
	a := app.New(testutil.NewConfig(t, base))

	code, out, errOut := run(t, &SignupCmd{}, a,
		"--name", "Ada", "--accept-terms", "ada@example.com", "secret")
	if code != exitcode.Success {
		t.Fatalf("exit = %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "account created for ada@example.com") {
		t.Errorf("output = %q", out)
	}
	if !a.Session.IsAuthenticated() {
		t.Error("not authenticated after signup")
	}
}

func TestLoginCmd(t *testing.T) {
	base := testutil.StartBackend(t)
	testutil.SeedAccount(t, base, "Ada", "ada@example.com", "secret")

	t.Run("success", func(t *testing.T) {
		a := app.New(testutil.NewConfig(t, base))
		code, out, errOut := run(t, &LoginCmd{}, a, "ada@example.com", "secret")
		if code != exitcode.Success {
			t.Fatalf("exit = %d, stderr %q", code, errOut)
		}
		if !strings.Contains(out, "logged in as ada@example.com") {
			t.Errorf("output = %q", out)
		}
		if _, ok := a.Local.Token(); !ok {
			t.Error("token not persisted")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		a := app.New(testutil.NewConfig(t, base))
		code, _, errOut := run(t, &LoginCmd{}, a, "ada@example.com", "nope")
		if code != exitcode.AuthError {
			t.Errorf("exit = %d, want %d", code, exitcode.AuthError)
		}
		if !strings.Contains(errOut, "invalid email or password") {
			t.Errorf("stderr = %q", errOut)
		}
	})

	t.Run("no remember", func(t *testing.T) {
		a := app.New(testutil.NewConfig(t, base))
		code, _, _ := run(t, &LoginCmd{}, a, "--no-remember", "ada@example.com", "secret")
		if code != exitcode.Success {
			t.Fatalf("exit = %d", code)
		}
		if _, ok := a.Local.Token(); ok {
			t.Error("token persisted despite --no-remember")
		}
	})
}

func TestAddAndList(t *testing.T) {
	a := offlineApp(t)

	code, out, errOut := run(t, &AddCmd{}, a,
		"--priority", "high", "--due", "2026-09-05", "buy", "milk")
	if code != exitcode.Success {
		t.Fatalf("add exit = %d, stderr %q", code, errOut)
	}
	if out != "ok\n" {
		t.Errorf("add output = %q", out)
	}

	code, out, _ = run(t, &ListCmd{}, a)
	if code != exitcode.Success {
		t.Fatalf("list exit = %d", code)
	}
	if !strings.Contains(out, "To Do (1)") {
		t.Errorf("missing column header:\n%s", out)
	}
	if !strings.Contains(out, "   1  buy milk  [high]  due 2026-09-05") {
		t.Errorf("missing task line:\n%s", out)
	}
}

func TestAddValidation(t *testing.T) {
	a := offlineApp(t)

	code, _, errOut := run(t, &AddCmd{}, a)
	if code != exitcode.UserError || !strings.Contains(errOut, "title required") {
		t.Errorf("exit = %d, stderr %q", code, errOut)
	}

	code, _, errOut = run(t, &AddCmd{}, a, "--status", "bogus", "x")
	if code != exitcode.UserError {
		t.Errorf("bad status exit = %d, stderr %q", code, errOut)
	}
}

func TestListEmptyBoard(t *testing.T) {
	code, out, _ := run(t, &ListCmd{}, offlineApp(t))
	if code != exitcode.Success {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out, "no tasks found") {
		t.Errorf("output = %q", out)
	}
}

func TestMoveAndDone(t *testing.T) {
	a := offlineApp(t)
	run(t, &AddCmd{}, a, "first")
	run(t, &AddCmd{}, a, "second")

	if code, _, errOut := run(t, &MoveCmd{}, a, "1", "in-progress"); code != exitcode.Success {
		t.Fatalf("move exit = %d, stderr %q", code, errOut)
	}
	if code, _, errOut := run(t, &DoneCmd{}, a, "2"); code != exitcode.Success {
		t.Fatalf("done exit = %d, stderr %q", code, errOut)
	}

	tasks := a.Tasks.Tasks()
	if tasks[0].Status != model.StatusInProgress {
		t.Errorf("first task status = %q", tasks[0].Status)
	}
	if tasks[1].Status != model.StatusDone {
		t.Errorf("second task status = %q", tasks[1].Status)
	}
}

func TestMoveBadReference(t *testing.T) {
	a := offlineApp(t)
	run(t, &AddCmd{}, a, "only")

	code, _, errOut := run(t, &MoveCmd{}, a, "x", "done")
	if code != exitcode.UserError || !strings.Contains(errOut, "invalid task reference") {
		t.Errorf("exit = %d, stderr %q", code, errOut)
	}

	code, _, errOut = run(t, &MoveCmd{}, a, "9", "done")
	if code != exitcode.UserError || !strings.Contains(errOut, "out of range") {
		t.Errorf("exit = %d, stderr %q", code, errOut)
	}

	code, _, errOut = run(t, &MoveCmd{}, a, "1", "nowhere")
	if code != exitcode.UserError {
		t.Errorf("bad status exit = %d, stderr %q", code, errOut)
	}
}

func TestEditCmd(t *testing.T) {
	a := offlineApp(t)
	run(t, &AddCmd{}, a, "--desc", "keep this", "original")

	code, _, errOut := run(t, &EditCmd{}, a, "--title", "renamed", "1")
	if code != exitcode.Success {
		t.Fatalf("edit exit = %d, stderr %q", code, errOut)
	}

	got := a.Tasks.Tasks()[0]
	if got.Title != "renamed" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Description != "keep this" {
		t.Errorf("unset flag touched description: %q", got.Description)
	}
}

func TestEditNothingToChange(t *testing.T) {
	a := offlineApp(t)
	run(t, &AddCmd{}, a, "task")

	code, _, errOut := run(t, &EditCmd{}, a, "1")
	if code != exitcode.UserError || !strings.Contains(errOut, "nothing to change") {
		t.Errorf("exit = %d, stderr %q", code, errOut)
	}
}

func TestRmCmd(t *testing.T) {
	a := offlineApp(t)
	run(t, &AddCmd{}, a, "first")
	run(t, &AddCmd{}, a, "second")

	code, _, errOut := run(t, &RmCmd{}, a, "1")
	if code != exitcode.Success {
		t.Fatalf("rm exit = %d, stderr %q", code, errOut)
	}

	tasks := a.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "second" {
		t.Errorf("wrong task removed: %+v", tasks)
	}
}

func TestWhoamiCmd(t *testing.T) {
	a := onlineApp(t)
	code, out, _ := run(t, &WhoamiCmd{}, a)
	if code != exitcode.Success {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out, "Ada <ada@example.com>") {
		t.Errorf("output = %q", out)
	}
}

func TestWhoamiWithoutSession(t *testing.T) {
	base := testutil.StartBackend(t)
	a := app.New(testutil.NewConfig(t, base))

	code, _, errOut := run(t, &WhoamiCmd{}, a)
	if code != exitcode.AuthError || !strings.Contains(errOut, "not logged in") {
		t.Errorf("exit = %d, stderr %q", code, errOut)
	}
}

func TestWalletCmd(t *testing.T) {
	a := onlineApp(t)

	code, _, errOut := run(t, &WalletCmd{}, a)
	if code != exitcode.UserError || !strings.Contains(errOut, "wallet address required") {
		t.Errorf("exit = %d, stderr %q", code, errOut)
	}

	code, out, errOut := run(t, &WalletCmd{}, a, "0xdeadbeef")
	if code != exitcode.Success {
		t.Fatalf("exit = %d, stderr %q", code, errOut)
	}
	if out != "ok\n" {
		t.Errorf("output = %q", out)
	}
	user, _ := a.Session.User()
	if user.WalletAddress != "0xdeadbeef" {
		t.Errorf("wallet not set: %+v", user)
	}
}

func TestLogoutCmd(t *testing.T) {
	a := onlineApp(t)

	code, out, _ := run(t, &LogoutCmd{}, a)
	if code != exitcode.Success || out != "ok\n" {
		t.Errorf("exit = %d, output %q", code, out)
	}
	if _, ok := a.Local.Token(); ok {
		t.Error("token survived logout")
	}

	code, out, _ = run(t, &LogoutCmd{}, a)
	if code != exitcode.Success || out != "not logged in\n" {
		t.Errorf("repeat logout: exit = %d, output %q", code, out)
	}
}

func TestListGolden(t *testing.T) {
	a := offlineApp(t)
	run(t, &AddCmd{}, a, "--priority", "high", "--due", "2026-09-05", "Write", "the", "report")
	run(t, &AddCmd{}, a, "--status", "in-progress", "Review", "PRs")
	run(t, &AddCmd{}, a, "--status", "done", "--priority", "low", "Ship", "release")

	code, out, errOut := run(t, &ListCmd{}, a)
	if code != exitcode.Success {
		t.Fatalf("list exit = %d, stderr %q", code, errOut)
	}
	testutil.GoldenString(t, "list_board", out)
}
