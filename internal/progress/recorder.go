// Package progress moves persistence off the game loop. A Recorder is handed
// to the engines as their score, progression and level collaborator; every
// write becomes a job on a bounded queue drained by one worker goroutine.
package progress

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/avocash/internal/core"
)

// DefaultQueueSize bounds the number of pending writes.
const DefaultQueueSize = 64

// ErrClosed is returned by Close when called twice.
var ErrClosed = errors.New("progress: recorder closed")

// Options configures a Recorder.
type Options struct {
	Player    string
	ScoreGame string // game id used for GameOver reports, default "catch"
	Backend   Backend
	Levels    KV
	Scores    HighScores
	Logger    *log.Logger
	QueueSize int
	Timeout   time.Duration // per job, default 5s
}

type job struct {
	name string
	run  func(ctx context.Context) error
}

// Recorder implements core.ScoreReporter, core.Progression and
// core.LevelStore. Reads are served from memory; writes are queued.
type Recorder struct {
	opts   Options
	logger *log.Logger

	mu    sync.Mutex
	high  int
	level int

	sendMu  sync.RWMutex
	closed  bool
	jobs    chan job
	done    chan struct{}
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewRecorder loads the cached high score and level synchronously, then
// starts the worker.
func NewRecorder(opts Options) *Recorder {
	if opts.ScoreGame == "" {
		opts.ScoreGame = "catch"
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "progress",
		})
	}

	r := &Recorder{
		opts:   opts,
		logger: logger,
		level:  1,
		jobs:   make(chan job, opts.QueueSize),
		done:   make(chan struct{}),
	}

	if opts.Scores != nil {
		high, err := opts.Scores.PlayerHighScore(opts.ScoreGame, opts.Player)
		if err != nil {
			logger.Warn("could not load high score", "player", opts.Player, "error", err)
		}
		r.high = max(0, high)
	}
	if opts.Levels != nil {
		if lvl, err := opts.Levels.Level(opts.Player); err != nil {
			logger.Warn("could not load puzzle level", "player", opts.Player, "error", err)
		} else if lvl > 0 {
			r.level = lvl
		}
	}

	go r.worker()

	if opts.Backend != nil && r.level > 1 {
		lvl := r.level
		r.enqueue("sync level", func(ctx context.Context) error {
			return opts.Backend.SyncLevel(ctx, opts.Player, lvl)
		})
	}
	return r
}

// Discard returns a logger that drops everything, for tests and quiet hosts.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func (r *Recorder) worker() {
	defer close(r.done)
	for j := range r.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
		err := j.run(ctx)
		cancel()
		if err != nil {
			r.failed.Add(1)
			r.logger.Error("persist failed", "job", j.name, "player", r.opts.Player, "error", err)
		}
	}
}

// enqueue never blocks. A full queue drops the job with a warning.
func (r *Recorder) enqueue(name string, run func(ctx context.Context) error) {
	r.sendMu.RLock()
	defer r.sendMu.RUnlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	select {
	case r.jobs <- job{name: name, run: run}:
	default:
		r.dropped.Add(1)
		r.logger.Warn("persist queue full, dropping", "job", name, "player", r.opts.Player)
	}
}

// HighScore returns the best known score for the player.
func (r *Recorder) HighScore() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.high
}

// GameOver records a finished catch session.
func (r *Recorder) GameOver(sessionMaxScore int) {
	r.mu.Lock()
	if sessionMaxScore > r.high {
		r.high = sessionMaxScore
	}
	r.mu.Unlock()

	if r.opts.Backend == nil {
		return
	}
	game, player := r.opts.ScoreGame, r.opts.Player
	r.enqueue("save score", func(ctx context.Context) error {
		return r.opts.Backend.SaveScore(ctx, game, player, sessionMaxScore)
	})
}

// LevelCompleted records a solved puzzle level.
func (r *Recorder) LevelCompleted(level int, elapsedSeconds float64) {
	if r.opts.Backend == nil {
		return
	}
	player := r.opts.Player
	r.enqueue("save puzzle", func(ctx context.Context) error {
		return r.opts.Backend.SavePuzzle(ctx, player, level, elapsedSeconds)
	})
}

// LoadLevel returns the cached puzzle level.
func (r *Recorder) LoadLevel() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// SaveLevel updates the cache immediately and writes through in the
// background.
func (r *Recorder) SaveLevel(level int) {
	if level < 1 {
		level = 1
	}
	r.mu.Lock()
	r.level = level
	r.mu.Unlock()

	player := r.opts.Player
	if r.opts.Levels != nil {
		r.enqueue("save level", func(context.Context) error {
			return r.opts.Levels.SetLevel(player, level)
		})
	}
	if r.opts.Backend != nil {
		r.enqueue("sync level", func(ctx context.Context) error {
			return r.opts.Backend.SyncLevel(ctx, player, level)
		})
	}
}

// Player returns the player this recorder saves for.
func (r *Recorder) Player() string { return r.opts.Player }

// Dropped is the number of jobs discarded because the queue was full or the
// recorder was closed.
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

// Failed is the number of jobs whose backend call returned an error.
func (r *Recorder) Failed() int64 { return r.failed.Load() }

// Close stops accepting jobs and waits for the queue to drain or ctx to end.
func (r *Recorder) Close(ctx context.Context) error {
	r.sendMu.Lock()
	if r.closed {
		r.sendMu.Unlock()
		return ErrClosed
	}
	r.closed = true
	close(r.jobs)
	r.sendMu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Collaborators exposes the recorder in the shape games expect.
func (r *Recorder) Collaborators() core.Collaborators {
	return core.Collaborators{Scores: r, Progress: r, Levels: r}
}

var (
	_ core.ScoreReporter = (*Recorder)(nil)
	_ core.Progression   = (*Recorder)(nil)
	_ core.LevelStore    = (*Recorder)(nil)
)
