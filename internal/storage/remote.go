package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// ErrNoRemote is returned when a remote operation is attempted without a
// configured connection string.
var ErrNoRemote = errors.New("storage: remote leaderboard not configured")

// RemoteStore is the shared leaderboard kept in PostgreSQL. One row per
// nickname holds the catch high score and the puzzle progress.
type RemoteStore struct {
	db *sql.DB
}

// RemoteUser is one leaderboard row.
type RemoteUser struct {
	Nickname        string
	HighScore       int
	PuzzleMaxLevel  int
	PuzzleTotalTime float64
	UpdatedAt       time.Time
}

// OpenRemote connects to PostgreSQL and creates the users table.
func OpenRemote(dsn string) (*RemoteStore, error) {
	if dsn == "" {
		return nil, ErrNoRemote
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open remote database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to remote database: %w", err)
	}

	r := &RemoteStore{db: db}
	if err := r.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: remote schema failed: %w", err)
	}
	return r, nil
}

func (r *RemoteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		nickname TEXT PRIMARY KEY,
		high_score INTEGER NOT NULL DEFAULT 0,
		puzzle_max_level INTEGER NOT NULL DEFAULT 0,
		puzzle_total_time DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_users_high_score ON users(high_score DESC);
	CREATE INDEX IF NOT EXISTS idx_users_puzzle ON users(puzzle_max_level DESC);
	`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Close closes the connection pool.
func (r *RemoteStore) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveHighScore raises the player's high score when score beats it.
func (r *RemoteStore) SaveHighScore(ctx context.Context, nickname string, score int) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users (nickname, high_score) VALUES ($1, $2)
	ON CONFLICT (nickname) DO UPDATE SET
		high_score = GREATEST(users.high_score, EXCLUDED.high_score),
		updated_at = NOW()
	`, nickname, score)
	if err != nil {
		return fmt.Errorf("storage: cannot save remote high score: %w", wrapPQ(err))
	}
	return nil
}

// SavePuzzleStats records a solved level: the max level only rises and the
// elapsed time is added to the total.
func (r *RemoteStore) SavePuzzleStats(ctx context.Context, nickname string, level int, elapsed float64) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users (nickname, puzzle_max_level, puzzle_total_time) VALUES ($1, $2, $3)
	ON CONFLICT (nickname) DO UPDATE SET
		puzzle_max_level = GREATEST(users.puzzle_max_level, EXCLUDED.puzzle_max_level),
		puzzle_total_time = users.puzzle_total_time + EXCLUDED.puzzle_total_time,
		updated_at = NOW()
	`, nickname, level, elapsed)
	if err != nil {
		return fmt.Errorf("storage: cannot save remote puzzle stats: %w", wrapPQ(err))
	}
	return nil
}

// SyncLevel raises the remote max level to localLevel if the remote copy
// is behind. Returns the remote max level after the sync.
func (r *RemoteStore) SyncLevel(ctx context.Context, nickname string, localLevel int) (int, error) {
	var level int
	err := r.db.QueryRowContext(ctx, `
	INSERT INTO users (nickname, puzzle_max_level) VALUES ($1, $2)
	ON CONFLICT (nickname) DO UPDATE SET
		puzzle_max_level = GREATEST(users.puzzle_max_level, EXCLUDED.puzzle_max_level)
	RETURNING puzzle_max_level
	`, nickname, localLevel).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot sync remote level: %w", wrapPQ(err))
	}
	return level, nil
}

// User loads one row. Unknown nicknames yield a zero row.
func (r *RemoteStore) User(ctx context.Context, nickname string) (RemoteUser, error) {
	u := RemoteUser{Nickname: nickname}
	err := r.db.QueryRowContext(ctx,
		`SELECT high_score, puzzle_max_level, puzzle_total_time, updated_at FROM users WHERE nickname = $1`,
		nickname,
	).Scan(&u.HighScore, &u.PuzzleMaxLevel, &u.PuzzleTotalTime, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, nil
	}
	if err != nil {
		return u, fmt.Errorf("storage: cannot load remote user: %w", wrapPQ(err))
	}
	return u, nil
}

// TopHighScores is the catch leaderboard.
func (r *RemoteStore) TopHighScores(ctx context.Context, limit int) ([]RemoteUser, error) {
	return r.leaderboard(ctx, `ORDER BY high_score DESC, nickname ASC`, limit)
}

// TopPuzzle is the puzzle leaderboard, fastest first among equal levels.
func (r *RemoteStore) TopPuzzle(ctx context.Context, limit int) ([]RemoteUser, error) {
	return r.leaderboard(ctx, `ORDER BY puzzle_max_level DESC, puzzle_total_time ASC`, limit)
}

func (r *RemoteStore) leaderboard(ctx context.Context, order string, limit int) ([]RemoteUser, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT nickname, high_score, puzzle_max_level, puzzle_total_time, updated_at FROM users `+order+` LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query remote leaderboard: %w", wrapPQ(err))
	}
	defer rows.Close()

	var out []RemoteUser
	for rows.Next() {
		var u RemoteUser
		if err := rows.Scan(&u.Nickname, &u.HighScore, &u.PuzzleMaxLevel, &u.PuzzleTotalTime, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// wrapPQ adds the server error code to pq errors so log lines stay useful.
func wrapPQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}
	return err
}
