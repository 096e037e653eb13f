package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/avocash/internal/platform/tui"
	"github.com/vovakirdan/avocash/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Avocado Catch:
  Mouse        - Move the basket
  Left/Right   - Nudge the basket
  P/Space      - Pause
  R            - Restart (after game over)

Sliding Puzzle:
  Mouse drag   - Slide a tile next to the empty slot
  Arrows/WASD  - Slide the tile on that side of the empty slot
  H            - Highlight the next move, Enter to play it
  P/Space      - Pause
  R            - Restart the level

Everywhere:
  Esc/B        - Leave a paused or finished game
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start and spawns
  normal - Configured values
  hard   - Faster start and spawns, shorter puzzle timer
  fixed  - No difficulty ramp

Examples:
  avocash play catch
  avocash play catch --difficulty hard
  avocash play puzzle --player ana
  avocash play catch --config ./my-catch.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'avocash list' to see available games", gameID)
	}

	e := openEnv()
	defer e.close()

	game, err := registry.Create(gameID, e.gameOptions())
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if err := tui.Run(game, runtimeConfig(), e.sound); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
