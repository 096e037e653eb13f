package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/progress"
	"github.com/vovakirdan/avocash/internal/storage"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	cfg.Logger = progress.Discard()
	srv := NewServer(cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) failed: %v", path, err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

// snapshotMsg mirrors Outbound with the state left raw for per-game decoding.
type snapshotMsg struct {
	Type    string          `json:"type"`
	Session string          `json:"session"`
	Game    string          `json:"game"`
	Player  string          `json:"player"`
	Tick    uint64          `json:"tick"`
	Events  []core.Event    `json:"events"`
	State   json.RawMessage `json:"state"`
	Error   string          `json:"error"`
}

func read(t *testing.T, conn *websocket.Conn) snapshotMsg {
	t.Helper()
	//nolint:errcheck // Test deadline
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg snapshotMsg
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	return msg
}

// readUntil reads messages until match returns true.
func readUntil(t *testing.T, conn *websocket.Conn, match func(snapshotMsg) bool) snapshotMsg {
	t.Helper()
	for range 600 {
		if msg := read(t, conn); match(msg) {
			return msg
		}
	}
	t.Fatal("expected message never arrived")
	return snapshotMsg{}
}

func TestCatchSession(t *testing.T) {
	_, ts := newTestServer(t, Config{TickRate: 120})
	conn := dial(t, ts, "/ws/catch?player=ana&seed=1")

	hello := read(t, conn)
	if hello.Type != TypeHello || hello.Game != "catch" || hello.Player != "ana" {
		t.Fatalf("hello = %+v", hello)
	}
	if _, err := uuid.Parse(hello.Session); err != nil {
		t.Errorf("session id %q is not a uuid: %v", hello.Session, err)
	}

	first := read(t, conn)
	if first.Type != TypeSnapshot || first.Tick != 1 {
		t.Fatalf("first snapshot = %+v", first)
	}
	if len(first.Events) == 0 || first.Events[0] != core.EventStart {
		t.Errorf("first events = %v, want start", first.Events)
	}

	var state struct {
		Phase string `json:"phase"`
	}
	if err := json.Unmarshal(first.State, &state); err != nil || state.Phase != "running" {
		t.Fatalf("state = %s (%v)", first.State, err)
	}

	if err := conn.WriteJSON(Inbound{Type: TypeAction, Action: "pause"}); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	readUntil(t, conn, func(m snapshotMsg) bool {
		return json.Unmarshal(m.State, &state) == nil && state.Phase == "paused"
	})
}

func TestPuzzleSession(t *testing.T) {
	_, ts := newTestServer(t, Config{TickRate: 120})
	conn := dial(t, ts, "/ws/puzzle?seed=3")

	hello := read(t, conn)
	if hello.Player != "guest" {
		t.Errorf("default player = %q, want guest", hello.Player)
	}

	snap := read(t, conn)
	var state struct {
		Level    int `json:"level"`
		GridSize int `json:"gridSize"`
	}
	if err := json.Unmarshal(snap.State, &state); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if state.Level != 1 || state.GridSize != 3 {
		t.Errorf("state = %+v, want level 1 on a 3x3 grid", state)
	}
}

func TestBadMessageReportsError(t *testing.T) {
	_, ts := newTestServer(t, Config{TickRate: 120})
	conn := dial(t, ts, "/ws/catch")
	read(t, conn)

	tests := []Inbound{
		{Type: "teleport"},
		{Type: TypeAction, Action: "jump"},
		{Type: TypePointer, Kind: "hover"},
	}
	for _, msg := range tests {
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("WriteJSON() failed: %v", err)
		}
		got := readUntil(t, conn, func(m snapshotMsg) bool { return m.Type == TypeError })
		if got.Error == "" {
			t.Errorf("%+v: empty error text", msg)
		}
	}
}

func TestInvalidSeed(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/ws/catch?seed=abc")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv, ts := newTestServer(t, Config{TickRate: 120})
	conn := dial(t, ts, "/ws/catch")
	read(t, conn)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if body.Status != "ok" || body.Sessions != 1 || srv.Sessions() != 1 {
		t.Errorf("health = %+v, live = %d", body, srv.Sessions())
	}
}

func TestOriginCheck(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string // "self" means the test server's own URL
		ok      bool
	}{
		{"listed origin", []string{"https://avocash.example"}, "https://avocash.example", true},
		{"unlisted origin", []string{"https://avocash.example"}, "https://evil.example", false},
		{"default rejects foreign", nil, "https://evil.example", false},
		{"default accepts same host", nil, "self", true},
		{"default accepts no origin", nil, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ts := newTestServer(t, Config{AllowedOrigins: tt.allowed})
			url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/catch"

			header := http.Header{}
			switch tt.origin {
			case "":
			case "self":
				header.Set("Origin", ts.URL)
			default:
				header.Set("Origin", tt.origin)
			}

			conn, resp, err := websocket.DefaultDialer.Dial(url, header)
			if resp != nil {
				resp.Body.Close()
			}
			if !tt.ok {
				if err == nil {
					conn.Close()
					t.Fatal("origin should be rejected")
				}
				if resp != nil && resp.StatusCode != http.StatusForbidden {
					t.Errorf("status = %d, want 403", resp.StatusCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dial() failed: %v", err)
			}
			conn.Close()
		})
	}
}

func TestSessionUsesRecorder(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if err := store.SetLevel("ana", 2); err != nil {
		t.Fatalf("SetLevel() failed: %v", err)
	}

	srv, ts := newTestServer(t, Config{
		TickRate: 120,
		NewRecorder: func(player string) *progress.Recorder {
			opts := progress.StoreOptions(player, store, nil)
			opts.Logger = progress.Discard()
			return progress.NewRecorder(opts)
		},
	})
	conn := dial(t, ts, "/ws/puzzle?player=ana")
	read(t, conn)

	var state struct {
		Level int `json:"level"`
	}
	snap := read(t, conn)
	if err := json.Unmarshal(snap.State, &state); err != nil || state.Level != 2 {
		t.Errorf("level = %d (%v), want the stored level 2", state.Level, err)
	}

	conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for srv.Sessions() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.Sessions() != 0 {
		t.Error("session should end when the client disconnects")
	}
}

func TestListenAndServeStops(t *testing.T) {
	srv := NewServer(Config{Addr: "127.0.0.1:0", Logger: progress.Discard()})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
