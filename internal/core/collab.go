package core

// ScoreReporter receives the catch game's session results.
// Implementations must not block: they are called from inside a tick.
type ScoreReporter interface {
	// HighScore returns the best known score for the current player.
	HighScore() int
	// GameOver reports the session max score once per finished session.
	GameOver(sessionMaxScore int)
}

// Progression receives puzzle level completions.
// Failures are the implementation's concern and are never returned.
type Progression interface {
	LevelCompleted(level int, elapsedSeconds float64)
}

// LevelStore is the key-value collaborator holding the current puzzle level.
type LevelStore interface {
	LoadLevel() int
	SaveLevel(level int)
}

// Collaborators bundles the external services a game instance talks to.
// Any field may be nil; games fall back to no-op behaviour.
type Collaborators struct {
	Scores   ScoreReporter
	Progress Progression
	Levels   LevelStore
}
