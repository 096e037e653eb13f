package progress

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/avocash/internal/storage"
)

// Backend persists finished sessions. Calls happen on the recorder's
// worker goroutine, never on the game loop.
type Backend interface {
	SaveScore(ctx context.Context, game, player string, score int) error
	SavePuzzle(ctx context.Context, player string, level int, elapsed float64) error
	SyncLevel(ctx context.Context, player string, level int) error
}

// KV holds the per-player puzzle level.
type KV interface {
	Level(player string) (int, error)
	SetLevel(player string, level int) error
}

// HighScores answers the startup high-score lookup.
type HighScores interface {
	PlayerHighScore(gameID, player string) (int, error)
}

// Local adapts the SQLite store.
type Local struct {
	Store *storage.Store
}

// SaveScore appends a score row.
func (l Local) SaveScore(_ context.Context, game, player string, score int) error {
	_, err := l.Store.SaveScore(game, player, score)
	return err
}

// SavePuzzle raises the player's max level and adds the elapsed time.
func (l Local) SavePuzzle(_ context.Context, player string, level int, elapsed float64) error {
	return l.Store.SavePuzzleResult(player, level, elapsed)
}

// SyncLevel is a no-op locally: the level itself lives in the KV table.
func (l Local) SyncLevel(context.Context, string, int) error { return nil }

// Remote adapts the PostgreSQL leaderboard. The remote schema keeps a single
// high score per player, so SaveScore ignores the game id.
type Remote struct {
	Store *storage.RemoteStore
}

// SaveScore keeps the better of the stored and the new score.
func (r Remote) SaveScore(ctx context.Context, _ string, player string, score int) error {
	return r.Store.SaveHighScore(ctx, player, score)
}

// SavePuzzle updates the player's remote puzzle stats.
func (r Remote) SavePuzzle(ctx context.Context, player string, level int, elapsed float64) error {
	return r.Store.SavePuzzleStats(ctx, player, level, elapsed)
}

// SyncLevel raises the remote max level to the local one.
func (r Remote) SyncLevel(ctx context.Context, player string, level int) error {
	_, err := r.Store.SyncLevel(ctx, player, level)
	return err
}

// PlayerHighScore reads the player's remote best. The remote schema has one
// score per player, so the game id is ignored.
func (r Remote) PlayerHighScore(_ string, player string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	u, err := r.Store.User(ctx, player)
	if err != nil {
		return 0, err
	}
	return u.HighScore, nil
}

// BestOf answers with the highest score any source reports. Failing sources
// are skipped; their errors are joined.
type BestOf []HighScores

// PlayerHighScore returns the maximum across sources.
func (b BestOf) PlayerHighScore(gameID, player string) (int, error) {
	best := 0
	var errs []error
	for _, src := range b {
		high, err := src.PlayerHighScore(gameID, player)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		best = max(best, high)
	}
	return best, errors.Join(errs...)
}

// Multi fans every call out to all backends and joins their errors.
type Multi []Backend

// SaveScore saves to every backend.
func (m Multi) SaveScore(ctx context.Context, game, player string, score int) error {
	var errs []error
	for _, b := range m {
		errs = append(errs, b.SaveScore(ctx, game, player, score))
	}
	return errors.Join(errs...)
}

// SavePuzzle saves to every backend.
func (m Multi) SavePuzzle(ctx context.Context, player string, level int, elapsed float64) error {
	var errs []error
	for _, b := range m {
		errs = append(errs, b.SavePuzzle(ctx, player, level, elapsed))
	}
	return errors.Join(errs...)
}

// SyncLevel syncs every backend.
func (m Multi) SyncLevel(ctx context.Context, player string, level int) error {
	var errs []error
	for _, b := range m {
		errs = append(errs, b.SyncLevel(ctx, player, level))
	}
	return errors.Join(errs...)
}

var (
	_ Backend    = Local{}
	_ Backend    = Remote{}
	_ Backend    = Multi(nil)
	_ KV         = (*storage.Store)(nil)
	_ HighScores = (*storage.Store)(nil)
	_ HighScores = Remote{}
	_ HighScores = BestOf(nil)
)

// StoreOptions wires whichever stores are open into recorder options for
// player. Either store may be nil.
func StoreOptions(player string, local *storage.Store, remote *storage.RemoteStore) Options {
	opts := Options{Player: player}
	var backends Multi
	var scores BestOf
	if local != nil {
		backends = append(backends, Local{Store: local})
		scores = append(scores, local)
		opts.Levels = local
	}
	if remote != nil {
		backends = append(backends, Remote{Store: remote})
		scores = append(scores, Remote{Store: remote})
	}
	if len(backends) > 0 {
		opts.Backend = backends
		opts.Scores = scores
	}
	return opts
}
