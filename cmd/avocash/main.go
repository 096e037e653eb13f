// avocash is a pair of casual games, Avocado Catch and a sliding puzzle,
// playable in the terminal, over SSH and in the browser.
//
// Usage:
//
//	avocash list              - List available games
//	avocash play <game>       - Play a game
//	avocash menu              - Start menu to pick games interactively
//	avocash serve             - Start SSH server for remote play
//	avocash web               - Start websocket server for browser play
//	avocash scores [game]     - Show the leaderboard
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.avocash/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--player <name>       - Nickname scores are saved under (default: $USER)
//	--remote-dsn <dsn>    - PostgreSQL leaderboard (default: $AVOCASH_REMOTE_DSN)
//	--assets <dir>        - Puzzle level images
//	--mute                - Disable sound
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/avocash/internal/games/catch"
	_ "github.com/vovakirdan/avocash/internal/games/puzzle"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagRemoteDSN  string
	flagAssets     string
	flagMute       bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "avocash"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "avocash",
	Short: "Avocash - catch avocados and solve sliding puzzles",
	Long: `Avocash bundles two casual games: Avocado Catch, where you move a
basket under falling avocados, and a timed sliding puzzle whose grid grows
with each level.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  web      - Start websocket server for browser play
  scores   - View the leaderboard

Examples:
  avocash list
  avocash play catch
  avocash play puzzle --assets ./images
  avocash menu --player ana
  avocash serve --ssh :2222
  avocash web --addr :8080
  avocash scores puzzle`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.avocash/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player nickname")
	pf.StringVar(&flagRemoteDSN, "remote-dsn", os.Getenv("AVOCASH_REMOTE_DSN"), "PostgreSQL DSN for the global leaderboard")
	pf.StringVar(&flagAssets, "assets", "", "Directory with puzzle level images")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}
