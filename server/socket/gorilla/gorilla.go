// Package gorilla implements the socket connection by wrapping
// gorilla/websocket.
package gorilla

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type (
	// Upgrader negotiates the HTTP to websocket upgrade.
	Upgrader struct {
		*websocket.Upgrader
		readWait time.Duration
	}

	// Conn implements the socket.Conn interface by wrapping a
	// gorilla/websocket connection.
	Conn struct {
		*websocket.Conn
		readWait time.Duration
	}
)

// NewUpgrader returns an upgrader that creates gorilla websocket
// connections.  Connections expect traffic (a pong at least) within
// readWait, refreshed on every pong.
func NewUpgrader(readWait time.Duration) *Upgrader {
	return &Upgrader{
		Upgrader: new(websocket.Upgrader),
		readWait: readWait,
	}
}

// Upgrade creates a Conn from the http request.
func (u *Upgrader) Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	c, err := u.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	conn := Conn{
		Conn:     c,
		readWait: u.readWait,
	}
	c.SetReadDeadline(time.Now().Add(u.readWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(conn.readWait))
	})
	return &conn, nil
}

// ReadMessage blocks until the next text frame arrives and returns its
// payload.  Binary frames are ignored; ping and pong frames are handled
// by the underlying connection's control handlers.
func (c *Conn) ReadMessage() ([]byte, error) {
	for {
		messageType, payload, err := c.Conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if messageType == websocket.TextMessage {
			return payload, nil
		}
	}
}

// WriteJSON writes the value as a json text message.
func (c *Conn) WriteJSON(v interface{}) error {
	return c.Conn.WriteJSON(v)
}

// WritePing writes a ping control message.
func (c *Conn) WritePing() error {
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// WriteClose writes a close message on the connection.  The connection is
// NOT closed.
func (c *Conn) WriteClose(reason string) error {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	return c.Conn.WriteMessage(websocket.CloseMessage, data)
}

// IsNormalClose reports whether the error is an expected closure.
func (*Conn) IsNormalClose(err error) bool {
	_, ok := err.(*websocket.CloseError) // only errors from gorilla can be normal close errors
	return ok && !websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
