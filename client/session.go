// Package client speaks to the game server over a WebSocket.
//
// A Session joins under the bot's name, then yields one GameState per "state"
// event and sends one "move" event per decision. The session becomes inactive
// when the server ends the game, closes the socket, or a read fails.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brensch/cycles/game"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"github.com/rs/zerolog/log"
)

var (
	// ErrSessionClosed is returned once the game has ended or the socket closed.
	ErrSessionClosed = errors.New("session closed")

	// ErrMalformedState wraps "state" payloads that do not describe a board.
	ErrMalformedState = errors.New("malformed game state")
)

// Config holds session configuration
type Config struct {
	URL            string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PingInterval   time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:            "ws://localhost:55001/ws",
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   5 * time.Second,
		PingInterval:   15 * time.Second,
	}
}

type Session struct {
	config Config
	name   string
	conn   *websocket.Conn

	active atomic.Bool
	info   atomic.Pointer[GameInfo]

	writeMu   sync.Mutex
	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
}

// Dial connects to the server and joins under name.
func Dial(ctx context.Context, config Config, name string) (*Session, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: config.ConnectTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", config.URL, err)
	}

	s := &Session{
		config: config,
		name:   name,
		conn:   conn,
		done:   make(chan struct{}),
	}
	s.active.Store(true)

	if err := s.writeEvent(ctx, EventJoin, JoinData{Name: name}); err != nil {
		s.markClosed()
		conn.Close()
		return nil, fmt.Errorf("join as %q: %w", name, err)
	}

	if config.PingInterval > 0 {
		go s.keepAlive()
	}
	return s, nil
}

// IsActive reports whether the server may still send states.
func (s *Session) IsActive() bool {
	return s.active.Load()
}

// Info returns the last "game_info" payload, if any.
func (s *Session) Info() (GameInfo, bool) {
	info := s.info.Load()
	if info == nil {
		return GameInfo{}, false
	}
	return *info, true
}

// ReceiveGameState blocks until the next "state" event.
//
// "game_info" events are recorded and skipped, unknown events are skipped.
// A "game_end" event or a close frame returns ErrSessionClosed. Any read
// error is permanent and leaves the session inactive.
func (s *Session) ReceiveGameState(ctx context.Context) (*game.GameState, error) {
	// Unblock the read when ctx ends.
	stop := context.AfterFunc(ctx, func() {
		s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		if !s.IsActive() {
			return nil, ErrSessionClosed
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			s.markClosed()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, ErrSessionClosed
			}
			return nil, fmt.Errorf("read error: %w", err)
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			log.Warn().Err(err).Str("bot", s.name).Msg("failed to parse event")
			continue
		}

		switch event.Type {
		case EventState:
			var data StateData
			if err := json.Unmarshal(event.Data, &data); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
			}
			return data.ToGameState()

		case EventGameInfo:
			var info GameInfo
			if err := json.Unmarshal(event.Data, &info); err != nil {
				log.Warn().Err(err).Str("bot", s.name).Msg("failed to parse game_info")
				continue
			}
			s.info.Store(&info)

		case EventGameEnd:
			s.markClosed()
			return nil, ErrSessionClosed

		default:
			log.Debug().Str("bot", s.name).Str("type", event.Type).Msg("ignoring event")
		}
	}
}

// SendMove transmits d. The server sends no acknowledgement.
func (s *Session) SendMove(ctx context.Context, d game.Direction) error {
	if !s.IsActive() {
		return ErrSessionClosed
	}
	return s.writeEvent(ctx, EventMove, MoveData{Direction: d})
}

// Close sends a normal close frame and releases the socket.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.markClosed()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.config.WriteTimeout))
		err = s.conn.Close()
	})
	return err
}

func (s *Session) writeEvent(ctx context.Context, eventType string, data any) error {
	event, err := NewEvent(eventType, data)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(s.config.WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(deadline)
	if err := s.conn.WriteJSON(event); err != nil {
		return fmt.Errorf("write %s: %w", eventType, err)
	}
	return nil
}

// keepAlive pings the server until the session ends.
func (s *Session) keepAlive() {
	pinger := channerics.NewTicker(s.done, s.config.PingInterval)
	for {
		select {
		case <-s.done:
			return
		case _, ok := <-pinger:
			if !ok {
				return
			}
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				log.Debug().Err(err).Str("bot", s.name).Msg("ping failed")
				return
			}
		}
	}
}

func (s *Session) markClosed() {
	s.active.Store(false)
	s.doneOnce.Do(func() { close(s.done) })
}
