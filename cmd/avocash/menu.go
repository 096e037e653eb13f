package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/avocash/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start avocash in interactive menu mode.

Use arrow keys or w/s to navigate, Enter to select a game.
After leaving a game you return to the menu to play again.

Controls:
  Up/Down  - Navigate menu
  Enter    - Select game
  Tab      - Leaderboard (g toggles local/global)
  Q        - Quit

Examples:
  avocash menu
  avocash menu --fps 30
  avocash menu --db ./scores.db --player ana`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e := openEnv()
	defer e.close()

	if err := tui.RunSession(runtimeConfig(), e.sessionOptions()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
