/*
Package handler provides the HTTP surface of the CHATON server: the health
endpoint and the WebSocket bridge that lets browser front ends speak the same
line protocol as raw TCP clients.

This file contains the HandleWebSocket function, which rate limits and
upgrades the connection, then adapts it into a chat.LineConn where one text
frame carries one protocol line.
*/
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"chaton/internal/app/chat"
	"chaton/internal/pkg/limiter"
	"chaton/internal/pkg/logx"
)

// wsWriteWait is the timeout for writing a frame to the WebSocket connection.
const wsWriteWait = 10 * time.Second

// HandleWebSocket creates an HTTP HandlerFunc that upgrades the request and
// runs the full session lifetime over the upgraded connection.
func HandleWebSocket(server *chat.Server, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rateLimiter.Allow(r.RemoteAddr) {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "remote_addr", r.RemoteAddr)
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		logx.Info("WebSocket connection established.", "remote_addr", r.RemoteAddr)

		// blocks until the session ends
		server.HandleConn(&wsLineConn{conn: conn})
	}
}

// wsLineConn adapts a WebSocket connection into a chat.LineConn.
// One text frame carries exactly one protocol line.
type wsLineConn struct {
	conn *websocket.Conn
}

func (c *wsLineConn) ReadLine() (string, error) {
	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if messageType != websocket.TextMessage {
			continue
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func (c *wsLineConn) WriteLine(line string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *wsLineConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *wsLineConn) Close() error {
	return c.conn.Close()
}
