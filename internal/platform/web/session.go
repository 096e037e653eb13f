package web

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

)

const (
	writeWait    = 5 * time.Second
	inboxSize    = 64
	maxInboundKB = 4
)

// session is one browser connection playing one game.
type session struct {
	id       string
	game     string
	player   string
	conn     *websocket.Conn
	drv      driver
	tickRate int
	logger   *log.Logger
	tick     uint64
}

// readPump decodes client messages into inbox until the connection fails.
// It owns the read side of the connection.
func (s *session) readPump(inbox chan<- Inbound) {
	defer close(inbox)

	s.conn.SetReadLimit(maxInboundKB * 1024)
	for {
		var msg Inbound
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read failed", "session", s.id, "error", err)
			}
			return
		}
		select {
		case inbox <- msg:
		default:
			s.logger.Warn("inbox full, dropping message", "session", s.id, "type", msg.Type)
		}
	}
}

// run drives the engine at the tick rate and streams a snapshot per tick.
// It owns the write side of the connection.
func (s *session) run(ctx context.Context) error {
	inbox := make(chan Inbound, inboxSize)
	go s.readPump(inbox)

	if err := s.write(Outbound{Type: TypeHello, Session: s.id, Game: s.game, Player: s.player}); err != nil {
		return err
	}

	dt := 1.0 / float64(s.tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			//nolint:errcheck // Best-effort close frame
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return ctx.Err()

		case <-ticker.C:
			if done := s.drain(inbox); done {
				return nil
			}

			events := s.drv.step(dt)
			s.tick++
			err := s.write(Outbound{
				Type:    TypeSnapshot,
				Session: s.id,
				Tick:    s.tick,
				Events:  events,
				State:   s.drv.snapshot(),
			})
			if err != nil {
				return err
			}
		}
	}
}

// drain applies every queued message. It reports true once the client is gone.
func (s *session) drain(inbox <-chan Inbound) bool {
	for {
		select {
		case msg, ok := <-inbox:
			if !ok {
				return true
			}
			if err := s.drv.apply(msg); err != nil {
				//nolint:errcheck // The next snapshot write reports a dead connection
				s.write(Outbound{Type: TypeError, Session: s.id, Error: err.Error()})
			}
		default:
			return false
		}
	}
}

func (s *session) write(msg Outbound) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	}
	return nil
}
