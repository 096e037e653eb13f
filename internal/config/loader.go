package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCatch loads catch game configuration.
// Search order: customPath -> ~/.avocash/configs/catch.yaml -> ./configs/catch.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadCatch(customPath string) (CatchConfig, error) {
	cfg := DefaultCatchConfig()
	if err := load(customPath, "catch.yaml", defaultCatchYAML, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadPuzzle loads sliding puzzle configuration.
// Search order: customPath -> ~/.avocash/configs/puzzle.yaml -> ./configs/puzzle.yaml -> embedded default
func LoadPuzzle(customPath string) (PuzzleConfig, error) {
	cfg := DefaultPuzzleConfig()
	if err := load(customPath, "puzzle.yaml", defaultPuzzleYAML, &cfg); err != nil {
		return cfg, err
	}
	if len(cfg.Images) == 0 {
		cfg.Images = DefaultPuzzleConfig().Images
	}
	return cfg, nil
}

// load decodes the first config found into out.
// Only an explicit customPath can fail; the other locations are optional.
func load(customPath, filename string, embedded []byte, out any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; the hardcoded defaults already in out remain on failure
	_ = yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".avocash", "configs", filename)
}

// ApplyCatchPreset modifies the config based on a difficulty preset.
func ApplyCatchPreset(cfg *CatchConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	// Adjust starting pace based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.InitialMultiplier *= 0.85
		cfg.Spawn.IntervalMs *= 1.15
	case DifficultyHard:
		cfg.Difficulty.InitialMultiplier *= 1.2
		cfg.Spawn.IntervalMs *= 0.85
	}
}

// ApplyPuzzlePreset scales the level timer: easy gives more time, hard less.
// The fixed preset behaves like normal; the puzzle has no ramp to freeze.
func ApplyPuzzlePreset(cfg *PuzzleConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timer.BaseSeconds += 30
	case DifficultyHard:
		cfg.Timer.BaseSeconds /= 2
	}
}
