// Package socket multiplexes websocket connections into a single event
// stream.  Each connection gets a read pump and a write pump; everything
// they produce funnels into one channel consumed by the server's event
// loop, so game state is only ever touched from one goroutine.
package socket

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/codewords-game/codewords/game"
	"github.com/codewords-game/codewords/game/message"
)

type (
	// Conn is the connection that backs a socket.
	Conn interface {
		// ReadMessage blocks until the next text payload arrives.
		ReadMessage() ([]byte, error)
		// WriteJSON writes the value as a json text message.
		WriteJSON(v interface{}) error
		// WritePing writes a ping control message.
		WritePing() error
		// WriteClose writes a close message.  The connection is NOT closed.
		WriteClose(reason string) error
		// SetWriteDeadline sets the deadline for future writes.
		SetWriteDeadline(t time.Time) error
		// Close closes the connection.
		Close() error
		// IsNormalClose reports whether the error is an expected closure.
		IsNormalClose(err error) bool
		// RemoteAddr gets the remote network address of the connection.
		RemoteAddr() net.Addr
	}

	// Socket pairs a connection with its token and its bounded outbound
	// queue.
	Socket struct {
		Conn
		token game.Token
		out   chan interface{}
		Config
	}

	// Config contains commonly shared Socket properties.
	Config struct {
		// Debug is a flag that causes the socket to log the messages that
		// are read and written.
		Debug bool
		// Log is used to log errors and other information.
		Log *log.Logger
		// PingPeriod is how often ping messages are sent to keep the
		// connection alive.
		PingPeriod time.Duration
		// WriteWait is how long a single write may take before the
		// connection is considered stalled.
		WriteWait time.Duration
		// QueueSize bounds the outbound queue.  A connection that lets
		// this many messages pile up is closed.
		QueueSize int
	}

	// EventKind discriminates the events a socket can produce.
	EventKind int

	// Event is what a socket feeds the server's event loop.  The socket
	// it came from rides along so the stream can discard events from a
	// connection whose token has already been recycled.
	Event struct {
		Token   game.Token
		Kind    EventKind
		Request *message.Request
		Err     error
		sock    *Socket
	}
)

const (
	_ EventKind = iota
	// EventRequest carries a parsed client request.
	EventRequest
	// EventError carries a request that failed to parse.  The connection
	// stays open.
	EventError
	// EventClose reports that the connection is gone.
	EventClose
)

// newSocket creates a socket for the connection.
func (cfg Config) newSocket(conn Conn, token game.Token) *Socket {
	return &Socket{
		Conn:   conn,
		token:  token,
		out:    make(chan interface{}, cfg.QueueSize),
		Config: cfg,
	}
}

// run starts the read and write pumps.
func (s *Socket) run(ctx context.Context, events chan<- Event) {
	go s.readMessages(ctx, events)
	go s.writeMessages(ctx, events)
}

// readMessages feeds inbound text frames to the event channel as parsed
// requests or parse errors until the connection drops.  Parse errors do
// not close the connection.
func (s *Socket) readMessages(ctx context.Context, events chan<- Event) {
	for { // BLOCKS
		payload, err := s.Conn.ReadMessage()
		if err != nil {
			if !s.IsNormalClose(err) {
				s.Log.Printf("reading socket messages stopped for token %v: %v", s.token, err)
			}
			select {
			case <-ctx.Done():
			case events <- Event{Token: s.token, Kind: EventClose, sock: s}:
			}
			return
		}
		if s.Debug {
			s.Log.Printf("socket %v read: %s", s.token, payload)
		}
		e := Event{Token: s.token, Kind: EventRequest, sock: s}
		if e.Request, err = message.ParseRequest(payload); err != nil {
			e = Event{Token: s.token, Kind: EventError, Err: err, sock: s}
		}
		select {
		case <-ctx.Done():
			return
		case events <- e:
		}
	}
}

// writeMessages drains the outbound queue onto the connection and keeps
// it alive with pings.  A write failure reports a close event; the read
// pump notices the closed connection and exits on its own.
func (s *Socket) writeMessages(ctx context.Context, events chan<- Event) {
	pingTicker := time.NewTicker(s.PingPeriod)
	defer func() {
		pingTicker.Stop()
		s.Conn.Close()
	}()
	var err error
	for { // BLOCKS
		select {
		case <-ctx.Done():
			s.Conn.SetWriteDeadline(time.Now().Add(s.WriteWait))
			s.Conn.WriteClose("server shutting down")
			return
		case v, ok := <-s.out:
			if !ok {
				s.Conn.SetWriteDeadline(time.Now().Add(s.WriteWait))
				s.Conn.WriteClose("connection removed")
				return
			}
			if s.Debug {
				s.Log.Printf("socket %v writing message", s.token)
			}
			s.Conn.SetWriteDeadline(time.Now().Add(s.WriteWait))
			err = s.Conn.WriteJSON(v)
		case <-pingTicker.C:
			s.Conn.SetWriteDeadline(time.Now().Add(s.WriteWait))
			err = s.Conn.WritePing()
		}
		if err != nil {
			s.Log.Printf("writing socket messages stopped for token %v: %v", s.token, err)
			select {
			case <-ctx.Done():
			case events <- Event{Token: s.token, Kind: EventClose, sock: s}:
			}
			return
		}
	}
}

// push queues an outbound message without blocking.  An error is returned
// when the queue is full.
func (s *Socket) push(v interface{}) error {
	select {
	case s.out <- v:
		return nil
	default:
		return fmt.Errorf("outbound queue full (%v messages)", s.QueueSize)
	}
}
