package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

func openRemote(t *testing.T) *RemoteStore {
	t.Helper()
	dsn := os.Getenv("AVOCASH_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("AVOCASH_TEST_PG_DSN not set")
	}
	r, err := OpenRemote(dsn)
	if err != nil {
		t.Fatalf("OpenRemote() failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpenRemoteWithoutDSN(t *testing.T) {
	_, err := OpenRemote("")
	if !errors.Is(err, ErrNoRemote) {
		t.Errorf("OpenRemote(\"\") error = %v, want ErrNoRemote", err)
	}
}

func TestRemoteHighScoreOnlyRises(t *testing.T) {
	r := openRemote(t)
	ctx := context.Background()
	nick := fmt.Sprintf("test-%d", time.Now().UnixNano())

	for _, s := range []int{120, 80, 300, 10} {
		if err := r.SaveHighScore(ctx, nick, s); err != nil {
			t.Fatalf("SaveHighScore() failed: %v", err)
		}
	}

	u, err := r.User(ctx, nick)
	if err != nil {
		t.Fatalf("User() failed: %v", err)
	}
	if u.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", u.HighScore)
	}
}

func TestRemotePuzzleStatsAndSync(t *testing.T) {
	r := openRemote(t)
	ctx := context.Background()
	nick := fmt.Sprintf("test-%d", time.Now().UnixNano())

	if err := r.SavePuzzleStats(ctx, nick, 2, 40); err != nil {
		t.Fatalf("SavePuzzleStats() failed: %v", err)
	}
	if err := r.SavePuzzleStats(ctx, nick, 1, 5); err != nil {
		t.Fatalf("SavePuzzleStats() failed: %v", err)
	}

	u, _ := r.User(ctx, nick)
	if u.PuzzleMaxLevel != 2 || u.PuzzleTotalTime != 45 {
		t.Errorf("stats = %+v, want level 2 time 45", u)
	}

	got, err := r.SyncLevel(ctx, nick, 1)
	if err != nil {
		t.Fatalf("SyncLevel() failed: %v", err)
	}
	if got != 2 {
		t.Errorf("SyncLevel(lower) = %d, want 2", got)
	}
	got, _ = r.SyncLevel(ctx, nick, 5)
	if got != 5 {
		t.Errorf("SyncLevel(higher) = %d, want 5", got)
	}
}
