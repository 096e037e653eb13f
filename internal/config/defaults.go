package config

import (
	_ "embed"
)

//go:embed defaults/catch.yaml
var defaultCatchYAML []byte

//go:embed defaults/puzzle.yaml
var defaultPuzzleYAML []byte

// DefaultCatchConfig returns the default catch game configuration.
func DefaultCatchConfig() CatchConfig {
	return CatchConfig{
		World: CatchWorld{
			Width:  800,
			Height: 600,
		},
		Spawn: CatchSpawn{
			IntervalMs: 770,
			BandMargin: 64,
		},
		Difficulty: DifficultyConfig{
			Enabled:           true,
			InitialMultiplier: 1.64,
			StepSeconds:       10,
			SpeedStep:         0.1,
			SpawnStepMs:       100,
			MinIntervalMs:     500,
			BoostScore:        250,
			BoostFactor:       1.5,
		},
		Scoring: CatchScoring{
			Initial:    20,
			Catch:      10,
			CatchBonus: 20,
			Drop:       20,
			DropBonus:  40,
		},
		Collision: CatchCollision{
			Padding: 20,
		},
		Combo: CatchCombo{
			Threshold:    3,
			DecaySeconds: 2.0,
		},
	}
}

// DefaultPuzzleConfig returns the default sliding puzzle configuration.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		ShuffleMoves:   100,
		CountdownSteps: 3,
		PreviewSeconds: 0,
		Grid: PuzzleGrid{
			Min: 3,
			Max: 6,
		},
		Timer: PuzzleTimer{
			BaseSeconds:     60,
			PerLevelSeconds: 15,
			WarningSeconds:  10,
		},
		Gesture: PuzzleGesture{
			TileSize:    100,
			CommitRatio: 0.3,
			TapDistance: 10,
			TapMillis:   300,
		},
		Images: []string{
			"nivel1", "nivel2", "nivel3", "nivel4", "nivel5",
			"nivel6", "nivel7", "nivel8", "nivel9", "nivel10",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "catch":
		return defaultCatchYAML
	case "puzzle":
		return defaultPuzzleYAML
	default:
		return nil
	}
}
