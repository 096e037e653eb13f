package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/avocash/internal/platform/tui"
	"github.com/vovakirdan/avocash/internal/registry"
	"github.com/vovakirdan/avocash/internal/storage"
)

var (
	flagGlobal bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the leaderboard",
	Long: `Display the top scores for a game. Avocado Catch ranks by score;
the sliding puzzle ranks by highest level reached, then by total time.

Without a game argument an interactive scoreboard opens.

Examples:
  avocash scores
  avocash scores catch
  avocash scores catch --clear
  avocash scores puzzle --global`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagGlobal, "global", false, "Show the PostgreSQL leaderboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the local scores of a game")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	var remote *storage.RemoteStore
	if flagRemoteDSN != "" {
		remote, err = storage.OpenRemote(flagRemoteDSN)
		if err != nil {
			logger.Warn("global leaderboard unavailable", "error", err)
			remote = nil
		} else {
			defer remote.Close()
		}
	}

	if len(args) == 0 {
		return runScoreboard(store, remote)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'avocash list' to see available games", gameID)
	}
	if flagClear {
		if gameID == "puzzle" {
			return fmt.Errorf("--clear applies to scored games, not the puzzle")
		}
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared local %s scores.\n", gameID)
		return nil
	}

	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	var board tui.Leaderboard = store
	if flagGlobal {
		if remote == nil {
			return fmt.Errorf("--global needs --remote-dsn or AVOCASH_REMOTE_DSN")
		}
		board = tui.RemoteBoard{Store: remote}
		title += " (global)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", title)

	if gameID == "puzzle" {
		err = printPuzzle(out, board)
	} else {
		err = printScores(out, board, gameID)
	}
	if err != nil {
		return err
	}
	if !flagGlobal {
		if gameID != "puzzle" {
			printSummary(out, store, gameID)
		}
		return nil
	}

	me, err := lookupUser(cmd.Context(), remote, playerName())
	if err != nil {
		logger.Warn("could not load your global record", "error", err)
		return nil
	}
	fmt.Fprintln(out)
	if gameID == "puzzle" {
		fmt.Fprintf(out, "You (%s): level %d\n", me.Nickname, me.PuzzleMaxLevel)
	} else {
		fmt.Fprintf(out, "You (%s): best %s\n", me.Nickname, humanize.Comma(int64(me.HighScore)))
	}
	return nil
}

func runScoreboard(store *storage.Store, remote *storage.RemoteStore) error {
	cfg := runtimeConfig()
	var remoteBoard tui.Leaderboard
	if remote != nil {
		remoteBoard = tui.RemoteBoard{Store: remote}
	}
	_, err := tui.RunScoreboard(store, remoteBoard, cfg.ScreenW, cfg.ScreenH)
	return err
}

func printScores(out io.Writer, board tui.Leaderboard, gameID string) error {
	scores, err := board.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'avocash play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "When")
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-16s  %-10s  %s\n",
			i+1, entry.Player, humanize.Comma(int64(entry.Score)), when(entry.CreatedAt))
	}
	return nil
}

// printSummary adds the local play count and average below the table.
func printSummary(out io.Writer, store *storage.Store, gameID string) {
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		logger.Warn("could not load game stats", "error", err)
		return
	}
	if stats.GamesCount == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s played, average %s, last %s\n",
		humanize.Plural(stats.GamesCount, "game", "games"),
		humanize.Comma(int64(stats.AvgScore)),
		when(stats.LastPlayed))
}

func printPuzzle(out io.Writer, board tui.Leaderboard) error {
	stats, err := board.TopPuzzleStats(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving puzzle stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No puzzles solved yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'avocash play puzzle' to get on the board!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-5s  %-10s  %s\n", "Rank", "Player", "Level", "Time", "When")
	fmt.Fprintf(out, "  %-4s  %-16s  %-5s  %-10s  %s\n", "----", "------", "-----", "----", "----")
	for i, st := range stats {
		total := time.Duration(st.TotalTime * float64(time.Second)).Round(time.Second)
		fmt.Fprintf(out, "  %-4d  %-16s  %-5d  %-10s  %s\n",
			i+1, st.Player, st.MaxLevel, total, when(st.UpdatedAt))
	}
	return nil
}

func when(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// lookupUser loads one player's global record.
func lookupUser(ctx context.Context, remote *storage.RemoteStore, player string) (storage.RemoteUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return remote.User(ctx, player)
}
