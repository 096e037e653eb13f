// Package config provides YAML-based game configuration loading and
// difficulty management for the catch game and the sliding puzzle.
package config

// CatchConfig contains all configuration for the catch game.
type CatchConfig struct {
	World      CatchWorld       `yaml:"world"`
	Spawn      CatchSpawn       `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    CatchScoring     `yaml:"scoring"`
	Collision  CatchCollision   `yaml:"collision"`
	Combo      CatchCombo       `yaml:"combo"`
}

// CatchWorld is the logical playfield in world units (pixels in the browser).
type CatchWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CatchSpawn defines item spawning.
type CatchSpawn struct {
	IntervalMs float64 `yaml:"interval_ms"` // Starting gap between spawns
	BandMargin float64 `yaml:"band_margin"` // Kept free at the right edge when no band is set
}

// CatchScoring defines the score table.
type CatchScoring struct {
	Initial    int `yaml:"initial"`
	Catch      int `yaml:"catch"`
	CatchBonus int `yaml:"catch_bonus"`
	Drop       int `yaml:"drop"`
	DropBonus  int `yaml:"drop_bonus"`
}

// CatchCollision defines hit detection.
type CatchCollision struct {
	Padding float64 `yaml:"padding"` // Inset applied to both rectangles
}

// CatchCombo defines the combo streak.
type CatchCombo struct {
	Threshold    int     `yaml:"threshold"`     // Streak length that fires a combo event
	DecaySeconds float64 `yaml:"decay_seconds"` // Idle time that resets the streak
}

// DifficultyConfig defines the step ramp applied during play.
type DifficultyConfig struct {
	Enabled           bool    `yaml:"enabled"`
	InitialMultiplier float64 `yaml:"initial_multiplier"`
	StepSeconds       float64 `yaml:"step_seconds"`    // Play time between steps
	SpeedStep         float64 `yaml:"speed_step"`      // Added to the multiplier per step
	SpawnStepMs       float64 `yaml:"spawn_step_ms"`   // Removed from the spawn interval per step
	MinIntervalMs     float64 `yaml:"min_interval_ms"` // Spawn interval floor
	BoostScore        int     `yaml:"boost_score"`     // Score that triggers the one-shot boost
	BoostFactor       float64 `yaml:"boost_factor"`    // Multiplier applied by the boost
}

// PuzzleConfig contains all configuration for the sliding puzzle.
type PuzzleConfig struct {
	ShuffleMoves   int           `yaml:"shuffle_moves"`
	CountdownSteps int           `yaml:"countdown_steps"`
	PreviewSeconds int           `yaml:"preview_seconds"`
	Grid           PuzzleGrid    `yaml:"grid"`
	Timer          PuzzleTimer   `yaml:"timer"`
	Gesture        PuzzleGesture `yaml:"gesture"`
	Images         []string      `yaml:"images"`
}

// PuzzleGrid bounds the grid size. Size grows by one every two levels.
type PuzzleGrid struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// PuzzleTimer defines the per-level time limit: base + level*per_level.
type PuzzleTimer struct {
	BaseSeconds     int `yaml:"base_seconds"`
	PerLevelSeconds int `yaml:"per_level_seconds"`
	WarningSeconds  int `yaml:"warning_seconds"`
}

// PuzzleGesture defines drag and tap thresholds.
type PuzzleGesture struct {
	TileSize    float64 `yaml:"tile_size"`    // Reference tile size in pointer units
	CommitRatio float64 `yaml:"commit_ratio"` // Fraction of tile size a drag must pass
	TapDistance float64 `yaml:"tap_distance"`
	TapMillis   int     `yaml:"tap_millis"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values keep the config default.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
