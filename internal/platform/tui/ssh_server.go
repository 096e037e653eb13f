package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/progress"
	"github.com/vovakirdan/avocash/internal/registry"
	"github.com/vovakirdan/avocash/internal/storage"
)

// recorderKey stores the per-session progress recorder in the SSH context.
type recorderKey struct{}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.avocash/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// RemoteDSN is an optional PostgreSQL leaderboard connection string.
	RemoteDSN string

	// TickRate is the simulation rate for every session.
	TickRate int

	// Game options shared by all sessions (config path, difficulty).
	// Collaborators are filled per session.
	Game registry.Options

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.avocash/scores.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server. Every session gets its own progress
// recorder keyed by the SSH user name.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	remote *storage.RemoteStore
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "avocash-ssh",
	})
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	var remote *storage.RemoteStore
	if cfg.RemoteDSN != "" {
		remote, err = storage.OpenRemote(cfg.RemoteDSN)
		if err != nil {
			logger.Warn("could not open remote leaderboard", "error", err)
			remote = nil
		}
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		remote: remote,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".avocash", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.progressMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStores()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	gameOpts := s.config.Game
	if rec, ok := sshSession.Context().Value(recorderKey{}).(*progress.Recorder); ok {
		gameOpts.Collaborators = rec.Collaborators()
	}

	opts := SessionOptions{
		Player:   sshSession.User(),
		Game:     gameOpts,
		Renderer: bubbletea.MakeRenderer(sshSession),
	}
	if s.store != nil {
		opts.Local = s.store
	}
	if s.remote != nil {
		opts.Remote = RemoteBoard{Store: s.remote}
	}

	// Sound stays on the client side of the wire, so there is no sink here.
	return NewSessionModel(cfg, opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// progressMiddleware gives each session a recorder for its user and drains
// it when the session ends.
func (s *SSHServer) progressMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		rec := progress.NewRecorder(s.recorderOptions(sshSession.User()))
		sshSession.Context().SetValue(recorderKey{}, rec)

		next(sshSession)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rec.Close(ctx); err != nil {
			s.logger.Warn("progress not fully flushed", "user", sshSession.User(), "error", err)
		}
	}
}

// recorderOptions wires the stores that are available into a recorder.
func (s *SSHServer) recorderOptions(player string) progress.Options {
	opts := progress.StoreOptions(player, s.store, s.remote)
	opts.Logger = s.logger.WithPrefix("avocash-progress")
	return opts
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStores()
	return err
}

func (s *SSHServer) closeStores() {
	if s.store != nil {
		s.store.Close()
	}
	if s.remote != nil {
		s.remote.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
