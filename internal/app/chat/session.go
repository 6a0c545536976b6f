/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the Session struct, representing one live client connection.
It manages the session's lifecycle and its communication loops (ReadPump and
WritePump) over a LineConn.
*/
package chat

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"chaton/internal/pkg/logx"
	"chaton/internal/pkg/randx"
)

// sendQueueSize is the capacity of a session's outbound line queue.
const sendQueueSize = 256

// Session represents an active client connection.
type Session struct {
	// id identifies the connection in logs, independent of any pseudo.
	id string

	// server owns the shared stores this session operates on.
	server *Server

	// conn is the line-framed view of the transport connection.
	conn LineConn

	// send is a buffered channel of lines waiting to be written out.
	send chan string

	// done is closed exactly once when the session terminates.
	done      chan struct{}
	closeOnce sync.Once

	// structured logger with session context.
	logger zerolog.Logger
}

func newSession(server *Server, conn LineConn) *Session {
	id := randx.SessionID()

	sessionLogger := logx.Logger().With().
		Str("session_id", id).
		Str("remote_addr", conn.RemoteAddr()).
		Logger()

	return &Session{
		id:     id,
		server: server,
		conn:   conn,
		send:   make(chan string, sendQueueSize),
		done:   make(chan struct{}),
		logger: sessionLogger,
	}
}

// ID returns the session's connection identifier.
func (s *Session) ID() string {
	return s.id
}

// Queue appends a line to the session's outbound queue without blocking.
// A full queue drops the line with a warning; delivery is best effort and a
// slow client must never stall a command handler.
func (s *Session) Queue(line string) {
	select {
	case <-s.done:
	case s.send <- line:
	default:
		s.logger.Warn().Int("queue_len", len(s.send)).Msg("Session send queue full, dropping line.")
	}
}

// ReadPump reads command lines from the connection and dispatches them until
// the connection breaks or the session is closed. It performs the session
// cleanup on exit.
func (s *Session) ReadPump() {
	defer s.cleanupOnDisconnect()

	for {
		line, err := s.conn.ReadLine()
		if err != nil {
			if err != io.EOF {
				s.logger.Info().Err(err).Msg("Read loop ending.")
			}
			return
		}

		select {
		case <-s.done:
			return
		default:
		}

		s.server.dispatch(s, line)

		// dispatch handled a disconnect command
		select {
		case <-s.done:
			return
		default:
		}
	}
}

// WritePump drains the send queue onto the connection. A write failure closes
// the session; the read loop then observes the closed connection and exits.
func (s *Session) WritePump() {
	for {
		select {
		case line := <-s.send:
			if err := s.conn.WriteLine(line); err != nil {
				s.logger.Info().Err(err).Msg("Write failed, closing session.")
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// Close terminates the session. Safe to call from any goroutine, any number
// of times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Connection close error.")
		}
	})
}

// cleanupOnDisconnect releases the session's registry binding and announces
// the departure. Durable user data, group membership and pending invitations
// are kept for reconnection.
func (s *Session) cleanupOnDisconnect() {
	s.Close()

	pseudo := s.server.registry.Unregister(s)
	if pseudo != "" {
		s.server.notifier.Broadcast(Notice(pseudo+" has left the chat"), nil)
	}

	s.logger.Info().Str("pseudo", pseudo).Msg("Session cleanup complete.")
}
