package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/avocash/internal/storage"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestListCommand(t *testing.T) {
	out := execute(t, "list")
	for _, want := range []string{"catch", "Avocado Catch", "puzzle", "Sliding Puzzle"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestScoresCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("catch", "ana", 12500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if err := store.SavePuzzleResult("bo", 3, 95); err != nil {
		t.Fatalf("SavePuzzleResult() failed: %v", err)
	}
	store.Close()

	out := execute(t, "scores", "catch", "--db", dbPath)
	if !strings.Contains(out, "ana") || !strings.Contains(out, "12,500") {
		t.Errorf("catch scores:\n%s", out)
	}
	if !strings.Contains(out, "1 game played") {
		t.Errorf("catch summary missing:\n%s", out)
	}

	out = execute(t, "scores", "puzzle", "--db", dbPath)
	if !strings.Contains(out, "bo") || !strings.Contains(out, "1m35s") {
		t.Errorf("puzzle scores:\n%s", out)
	}
}

func TestScoresClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore("catch", "ana", 300)
	store.Close()

	out := execute(t, "scores", "catch", "--clear", "--db", dbPath)
	if !strings.Contains(out, "Cleared") {
		t.Errorf("clear output:\n%s", out)
	}
	flagClear = false

	out = execute(t, "scores", "catch", "--db", dbPath)
	if !strings.Contains(out, "No scores recorded yet.") {
		t.Errorf("scores after clear:\n%s", out)
	}
}

func TestScoresUnknownGame(t *testing.T) {
	rootCmd.SetArgs([]string{"scores", "tetris", "--db", filepath.Join(t.TempDir(), "s.db")})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if err := rootCmd.Execute(); err == nil {
		t.Error("unknown game should fail")
	}
}
