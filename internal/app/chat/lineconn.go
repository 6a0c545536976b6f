/*
Package chat contains the core logic of the CHATON server: the session registry,
group store, invitation ledger, command dispatch and message fan-out.

This file defines the LineConn abstraction over the client byte stream. The
protocol has no length framing; lines are delimited by a newline and capped at
a maximum size, so one read always yields exactly one logical message.
*/
package chat

import (
	"bufio"
	"io"
	"net"
	"strings"
	"time"
)

const (
	// maxLineBytes is the maximum allowed size of a single protocol line.
	maxLineBytes = 8192

	// writeWait is the timeout for writing a line to the underlying connection.
	writeWait = 10 * time.Second
)

// LineConn is a duplex, line-oriented view of a client connection. The same
// session code serves TCP sockets and WebSocket connections through it.
type LineConn interface {
	// ReadLine blocks until the next full line arrives and returns it without
	// its trailing newline. An oversized line is a transport error.
	ReadLine() (string, error)

	// WriteLine sends one line, appending the delimiter as needed.
	WriteLine(line string) error

	// RemoteAddr returns the remote endpoint for logging.
	RemoteAddr() string

	// Close tears down the underlying connection. Safe to call more than once.
	Close() error
}

// tcpLineConn adapts a net.Conn into a LineConn with newline framing.
type tcpLineConn struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

// NewTCPLineConn wraps a stream connection in newline framing.
func NewTCPLineConn(conn net.Conn) LineConn {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 1024), maxLineBytes)

	return &tcpLineConn{
		conn:    conn,
		scanner: scanner,
	}
}

func (c *tcpLineConn) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		// a clean EOF yields a nil scanner error
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(c.scanner.Text(), "\r"), nil
}

func (c *tcpLineConn) WriteLine(line string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	_, err := c.conn.Write([]byte(line + "\n"))
	return err
}

func (c *tcpLineConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *tcpLineConn) Close() error {
	return c.conn.Close()
}
