/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the Server struct, which wires the shared stores together and
runs one session per accepted connection.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"chaton/internal/pkg/logx"
	"chaton/internal/pkg/randx"
)

// Server holds the shared state every client session operates on.
type Server struct {
	registry *Registry
	groups   *GroupStore
	invites  *InviteLedger
	notifier *Notifier

	// mu protects sessions, the set of all live connections including the
	// ones that have not selected a pseudo yet.
	mu       sync.Mutex
	sessions map[*Session]struct{}

	logger zerolog.Logger
}

// NewServer constructs a Server with the fixed pseudo catalog and empty stores.
func NewServer() *Server {
	registry := NewRegistry(randx.PseudoCatalog())
	groups := NewGroupStore()

	return &Server{
		registry: registry,
		groups:   groups,
		invites:  NewInviteLedger(),
		notifier: NewNotifier(registry, groups),
		sessions: make(map[*Session]struct{}),
		logger:   logx.Logger().With().Str("component", "Server").Logger(),
	}
}

// Registry exposes the session registry, mainly for the transport layer and tests.
func (srv *Server) Registry() *Registry {
	return srv.registry
}

// HandleConn runs the full lifetime of one client connection: it creates the
// session, starts the write pump, and blocks in the read/dispatch loop until
// the connection ends. Transport errors terminate only this session.
func (srv *Server) HandleConn(conn LineConn) {
	s := newSession(srv, conn)

	srv.mu.Lock()
	srv.sessions[s] = struct{}{}
	srv.mu.Unlock()

	srv.logger.Info().
		Str("session_id", s.ID()).
		Str("remote_addr", conn.RemoteAddr()).
		Msg("New connection established.")

	go s.WritePump()
	s.ReadPump()

	srv.mu.Lock()
	delete(srv.sessions, s)
	srv.mu.Unlock()
}

// CloseAll terminates every live session, used during shutdown.
func (srv *Server) CloseAll() {
	srv.mu.Lock()
	sessions := make([]*Session, 0, len(srv.sessions))
	for s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
