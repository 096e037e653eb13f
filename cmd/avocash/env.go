package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vovakirdan/avocash/internal/audio"
	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/platform/tui"
	"github.com/vovakirdan/avocash/internal/progress"
	"github.com/vovakirdan/avocash/internal/registry"
	"github.com/vovakirdan/avocash/internal/storage"
)

// env is everything a local game session needs, opened from the global flags.
// Every store is optional; games run without persistence.
type env struct {
	store    *storage.Store
	remote   *storage.RemoteStore
	recorder *progress.Recorder
	sound    *audio.Player
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	return "player"
}

// openEnv opens the stores, the progress recorder and the audio device.
func openEnv() *env {
	e := &env{}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
	} else {
		e.store = store
	}

	remote, err := storage.OpenRemote(flagRemoteDSN)
	switch {
	case errors.Is(err, storage.ErrNoRemote):
	case err != nil:
		logger.Warn("global leaderboard unavailable", "error", err)
	default:
		e.remote = remote
	}

	opts := progress.StoreOptions(playerName(), e.store, e.remote)
	opts.Logger = logger.WithPrefix("avocash-progress")
	e.recorder = progress.NewRecorder(opts)

	e.sound = audio.NewPlayer(flagMute)
	if err := e.sound.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
		e.sound.SetMuted(true)
	}
	return e
}

// gameOptions returns per-game options wired to the recorder.
func (e *env) gameOptions() registry.Options {
	return registry.Options{
		ConfigPath:    flagConfig,
		Difficulty:    flagDifficulty,
		AssetsDir:     flagAssets,
		Collaborators: e.recorder.Collaborators(),
	}
}

// sessionOptions builds the menu session for the local terminal.
func (e *env) sessionOptions() tui.SessionOptions {
	opts := tui.SessionOptions{
		Player: playerName(),
		Game:   e.gameOptions(),
		Sink:   e.sound,
	}
	if e.store != nil {
		opts.Local = e.store
	}
	if e.remote != nil {
		opts.Remote = tui.RemoteBoard{Store: e.remote}
	}
	return opts
}

// close flushes pending saves and releases every resource.
func (e *env) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.recorder.Close(ctx); err != nil {
		logger.Warn("some progress was not saved", "error", err)
	}
	if n := e.recorder.Dropped(); n > 0 {
		logger.Warn("progress updates dropped", "count", n)
	}

	e.sound.Close()
	if e.store != nil {
		e.store.Close()
	}
	if e.remote != nil {
		e.remote.Close()
	}
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
