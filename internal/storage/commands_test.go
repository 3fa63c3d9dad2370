package storage

import (
	"context"
	"fmt"
	"testing"
)

func seedCommands(t *testing.T, store *SQLiteStore, sessionID string, cmds ...string) {
	t.Helper()
	ctx := context.Background()
	for i, c := range cmds {
		exit := 0
		if c == "false" {
			exit = 1
		}
		err := store.CreateCommand(ctx, &Command{
			CommandID:     fmt.Sprintf("%s-%d", sessionID, i),
			SessionID:     sessionID,
			TsStartUnixMs: int64(1000 + i),
			TsEndUnixMs:   int64(1000 + i),
			CWD:           "/work",
			Command:       c,
			ExitCode:      exit,
		})
		if err != nil {
			t.Fatalf("CreateCommand(%q) error = %v", c, err)
		}
	}
}

func commandTexts(cmds []Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Command)
	}
	return out
}

func TestSQLiteStore_CreateCommand_Defaults(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	if err := store.CreateSession(ctx, testSession("s")); err != nil {
		t.Fatal(err)
	}

	cmd := &Command{CommandID: "c1", SessionID: "s", CWD: "/", Command: "ls /tmp", TsStartUnixMs: 1, TsEndUnixMs: 2}
	if err := store.CreateCommand(ctx, cmd); err != nil {
		t.Fatalf("CreateCommand() error = %v", err)
	}
	if cmd.ID == 0 {
		t.Error("ID should be set from the insert")
	}
	if cmd.Mode != ModeCaptured {
		t.Errorf("Mode = %q, want %q", cmd.Mode, ModeCaptured)
	}
	if cmd.CommandNorm != "ls <path>" {
		t.Errorf("CommandNorm = %q", cmd.CommandNorm)
	}
	if cmd.CommandHash != HashCommand("ls <path>") {
		t.Error("CommandHash should hash the normalized form")
	}
}

func TestSQLiteStore_CreateCommand_Validation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  *Command
	}{
		{"nil", nil},
		{"no id", &Command{SessionID: "s", CWD: "/", Command: "ls"}},
		{"no session", &Command{CommandID: "c", CWD: "/", Command: "ls"}},
		{"no cwd", &Command{CommandID: "c", SessionID: "s", Command: "ls"}},
		{"no command", &Command{CommandID: "c", SessionID: "s", CWD: "/"}},
	}
	for _, tt := range tests {
		if err := store.CreateCommand(ctx, tt.cmd); err == nil {
			t.Errorf("%s: CreateCommand() should fail", tt.name)
		}
	}
}

func TestSQLiteStore_CreateCommand_UnknownSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	err := store.CreateCommand(context.Background(), &Command{
		CommandID: "c", SessionID: "ghost", CWD: "/", Command: "ls",
	})
	if err == nil {
		t.Error("CreateCommand() should fail for an unknown session")
	}
}

func TestSQLiteStore_QueryCommands(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		if err := store.CreateSession(ctx, testSession(id)); err != nil {
			t.Fatal(err)
		}
	}
	seedCommands(t, store, "a", "ls", "false", "git status")
	seedCommands(t, store, "b", "make")

	tests := []struct {
		name string
		q    CommandQuery
		want []string
	}{
		{"all newest first", CommandQuery{}, []string{"git status", "false", "ls"}},
		{"session filter", CommandQuery{SessionID: "b"}, []string{"make"}},
		{"limit", CommandQuery{SessionID: "a", Limit: 2}, []string{"git status", "false"}},
		{"failures", CommandQuery{FailureOnly: true}, []string{"false"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.QueryCommands(ctx, tt.q)
			if err != nil {
				t.Fatalf("QueryCommands() error = %v", err)
			}
			texts := commandTexts(got)
			if tt.name == "all newest first" {
				// "make" shares timestamp 1000 with "ls"; only check session a's order.
				texts = filterOut(texts, "make")
			}
			if fmt.Sprint(texts) != fmt.Sprint(tt.want) {
				t.Errorf("QueryCommands() = %v, want %v", texts, tt.want)
			}
		})
	}
}

func filterOut(in []string, drop string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}

func TestSQLiteStore_QueryCommands_Deduplicate(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	if err := store.CreateSession(ctx, testSession("s")); err != nil {
		t.Fatal(err)
	}
	seedCommands(t, store, "s", "git status", "ls", "git status", "GIT STATUS")

	got, err := store.QueryCommands(ctx, CommandQuery{Deduplicate: true})
	if err != nil {
		t.Fatalf("QueryCommands() error = %v", err)
	}
	if fmt.Sprint(commandTexts(got)) != fmt.Sprint([]string{"GIT STATUS", "ls"}) {
		t.Errorf("QueryCommands(dedup) = %v", commandTexts(got))
	}
}

func TestSQLiteStore_QueryCommands_RoundTripsFields(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	if err := store.CreateSession(ctx, testSession("s")); err != nil {
		t.Fatal(err)
	}
	in := &Command{
		CommandID: "c", SessionID: "s", CWD: "/srv", Command: "vim notes",
		Mode: ModeInteractive, ExitCode: 130, Interrupted: true,
		TsStartUnixMs: 10, TsEndUnixMs: 40, DurationMs: 30,
	}
	if err := store.CreateCommand(ctx, in); err != nil {
		t.Fatal(err)
	}

	got, err := store.QueryCommands(ctx, CommandQuery{})
	if err != nil || len(got) != 1 {
		t.Fatalf("QueryCommands() = %v, %v", got, err)
	}
	c := got[0]
	if c.Mode != ModeInteractive || c.ExitCode != 130 || !c.Interrupted || c.DurationMs != 30 || c.CWD != "/srv" {
		t.Errorf("round trip = %+v", c)
	}
	if c.IsSuccess() {
		t.Error("interrupted command should not be a success")
	}
}
