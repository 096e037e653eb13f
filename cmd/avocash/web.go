package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/avocash/internal/platform/web"
	"github.com/vovakirdan/avocash/internal/progress"
	"github.com/vovakirdan/avocash/internal/registry"
	"github.com/vovakirdan/avocash/internal/storage"
)

var (
	flagWebAddr string
	flagOrigins []string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket server for browser play",
	Long: `Start an HTTP server that runs games for browser clients.

Routes:
  /ws/catch?player=<name>&seed=<n>   - Avocado Catch session
  /ws/puzzle?player=<name>&seed=<n>  - Sliding puzzle session
  /healthz                           - Liveness and session count

The server sends a JSON snapshot every tick; the page sends pointer
samples and actions back.

Examples:
  avocash web
  avocash web --addr :9000 --origin https://avocash.example`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "Allowed websocket origins (default: same host)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	var remote *storage.RemoteStore
	if r, err := storage.OpenRemote(flagRemoteDSN); err == nil {
		remote = r
		defer remote.Close()
	} else if !errors.Is(err, storage.ErrNoRemote) {
		logger.Warn("global leaderboard unavailable", "error", err)
	}

	webLogger := logger.WithPrefix("avocash-web")
	srv := web.NewServer(web.Config{
		Addr:     flagWebAddr,
		TickRate: flagFPS,
		Game: registry.Options{
			ConfigPath: flagConfig,
			Difficulty: flagDifficulty,
			AssetsDir:  flagAssets,
		},
		NewRecorder: func(player string) *progress.Recorder {
			opts := progress.StoreOptions(player, store, remote)
			opts.Logger = webLogger
			return progress.NewRecorder(opts)
		},
		AllowedOrigins: flagOrigins,
		Logger:         webLogger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}
