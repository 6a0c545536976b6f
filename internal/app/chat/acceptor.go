/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the Acceptor, the TCP listen/accept loop. Each accepted
connection gets its own handler goroutine; a running handler never blocks new
accepts.
*/
package chat

import (
	"errors"
	"net"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"chaton/internal/pkg/limiter"
	"chaton/internal/pkg/logx"
)

const (
	// AcceptRate is the sustained per-IP connection rate (connections/second).
	AcceptRate = 1.0

	// AcceptBurst is the per-IP connection burst allowance.
	AcceptBurst = 5
)

// Acceptor binds the chat listener and spawns one session handler per
// accepted connection.
type Acceptor struct {
	server   *Server
	limiter  *limiter.IPRateLimiter
	listener net.Listener
	wg       sync.WaitGroup
	logger   zerolog.Logger
}

// NewAcceptor constructs an Acceptor for the given server.
func NewAcceptor(server *Server) *Acceptor {
	return &Acceptor{
		server:  server,
		limiter: limiter.NewIPRateLimiter(rate.Limit(AcceptRate), AcceptBurst),
		logger:  logx.Logger().With().Str("component", "Acceptor").Logger(),
	}
}

// Listen binds the listener to addr. A bind failure here is unrecoverable for
// the process; the caller decides how to die.
func (a *Acceptor) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	a.listener = listener
	a.logger.Info().Str("addr", listener.Addr().String()).Msg("Chat listener bound.")
	return nil
}

// Addr returns the bound listener address. Valid only after Listen.
func (a *Acceptor) Addr() net.Addr {
	return a.listener.Addr()
}

// Serve runs the accept loop until the listener is closed. Accept errors on a
// live listener are logged and the loop continues; per-connection failures
// never reach here.
func (a *Acceptor) Serve() {
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info().Msg("Listener closed, accept loop stopping.")
				return
			}
			a.logger.Warn().Err(err).Msg("Accept failed.")
			continue
		}

		remote := conn.RemoteAddr().String()
		if !a.limiter.Allow(remote) {
			a.logger.Warn().Str("remote_addr", remote).Msg("Connection rejected: rate limit exceeded.")
			_ = conn.Close()
			continue
		}

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.server.HandleConn(NewTCPLineConn(conn))
		}()
	}
}

// Shutdown stops accepting, closes every live session, and waits for all
// handler goroutines to finish.
func (a *Acceptor) Shutdown() {
	if a.listener != nil {
		if err := a.listener.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Listener close error.")
		}
	}

	a.server.CloseAll()
	a.wg.Wait()

	a.logger.Info().Msg("Acceptor shutdown complete.")
}
