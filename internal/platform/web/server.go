// Package web hosts the games for browsers over websockets. The server runs
// the engines and streams JSON snapshots; the page draws them and sends
// pointer samples and actions back.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/avocash/internal/progress"
	"github.com/vovakirdan/avocash/internal/registry"
)

// Config holds web server configuration.
type Config struct {
	Addr     string // Listen address (default ":8080")
	TickRate int    // Simulation ticks per second (default 60)
	Game     registry.Options

	// NewRecorder builds the progress recorder for a connecting player.
	// Nil disables persistence.
	NewRecorder func(player string) *progress.Recorder

	// AllowedOrigins restricts websocket origins; empty allows the same host only.
	AllowedOrigins []string

	Logger *log.Logger
}

// DefaultConfig returns sensible defaults for the web server.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		TickRate: 60,
	}
}

// Server accepts browser sessions for every game with a driver.
type Server struct {
	config   Config
	logger   *log.Logger
	upgrader websocket.Upgrader

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer creates a web server.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "avocash-web",
		})
	}

	base, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:   cfg,
		logger:   logger,
		base:     base,
		cancel:   cancel,
		sessions: make(map[string]*session),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// checkOrigin accepts the configured origins. With none configured only
// same-host pages (or clients sending no Origin) may connect.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(s.config.AllowedOrigins) == 0 {
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
	for _, allowed := range s.config.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Handler returns the HTTP routes: /healthz and /ws/<game>.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	for _, id := range []string{"catch", "puzzle"} {
		mux.HandleFunc("/ws/"+id, s.handleGame(id))
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client may be gone
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}

// handleGame upgrades the request and plays gameID until the client leaves.
// Query parameters: player (default "guest") and seed.
func (s *Server) handleGame(gameID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		player := query.Get("player")
		if player == "" {
			player = "guest"
		}
		seed := time.Now().UnixNano()
		if v := query.Get("seed"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "invalid seed", http.StatusBadRequest)
				return
			}
			seed = n
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied with an HTTP error
			s.logger.Warn("upgrade failed", "game", gameID, "error", err)
			return
		}
		defer conn.Close()

		opts := s.config.Game
		var rec *progress.Recorder
		if s.config.NewRecorder != nil {
			rec = s.config.NewRecorder(player)
			opts.Collaborators = rec.Collaborators()
		}

		drv, err := newDriver(gameID, opts, seed)
		if err != nil {
			s.closeRecorder(rec)
			s.logger.Error("cannot start game", "game", gameID, "error", err)
			return
		}

		sess := &session{
			id:       uuid.NewString(),
			game:     gameID,
			player:   player,
			conn:     conn,
			drv:      drv,
			tickRate: s.config.TickRate,
			logger:   s.logger,
		}
		s.track(sess)
		defer s.untrack(sess)

		s.logger.Info("session started", "session", sess.id, "game", gameID, "player", player, "remote", r.RemoteAddr)
		start := time.Now()
		err = sess.run(s.base)
		s.closeRecorder(rec)

		logArgs := []any{"session", sess.id, "duration", time.Since(start).Round(time.Second)}
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("session ended", append(logArgs, "error", err)...)
			return
		}
		s.logger.Info("session ended", logArgs...)
	}
}

func (s *Server) closeRecorder(rec *progress.Recorder) {
	if rec == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rec.Close(ctx); err != nil {
		s.logger.Warn("progress not fully saved", "player", rec.Player(), "error", err)
	}
}

func (s *Server) track(sess *session) {
	s.wg.Add(1)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
}

func (s *Server) untrack(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	s.wg.Done()
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close ends every session and waits for them to finish.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown
	s.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return nil
}
