package socket

import (
	"context"
	"fmt"
	"sync"

	"github.com/codewords-game/codewords/game"
	"github.com/codewords-game/codewords/game/message"
)

type (
	// Stream owns every connection.  It allocates tokens, starts the
	// pumps, and merges everything the sockets produce into one event
	// channel.  The map is guarded by a mutex because connections are
	// added from http handler goroutines while the event loop pushes
	// responses and removes the dead.
	Stream struct {
		mu      sync.Mutex
		sockets map[game.Token]*Socket
		ids     *idGenerator
		events  chan Event
		Config
	}
)

// NewStream creates a stream for the config.
func (cfg Config) NewStream() (*Stream, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating stream: validation: %w", err)
	}
	s := Stream{
		sockets: make(map[game.Token]*Socket),
		ids:     newIDGenerator(),
		events:  make(chan Event),
		Config:  cfg,
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	case cfg.WriteWait <= 0:
		return fmt.Errorf("positive write wait required")
	case cfg.QueueSize <= 0:
		return fmt.Errorf("positive queue size required")
	}
	return nil
}

// Events returns the channel every socket's events are merged into.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Current reports whether the event came from the connection that
// currently owns its token.  A pump can emit a final event after its
// connection was removed and its token recycled; such events must be
// discarded or they would act on the token's new owner.
func (s *Stream) Current(e Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sockets[e.Token] == e.sock
}

// Add registers the connection, allocating a token and starting its
// pumps.
func (s *Stream) Add(ctx context.Context, conn Conn) game.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := s.ids.next()
	sock := s.Config.newSocket(conn, token)
	s.sockets[token] = sock
	sock.run(ctx, s.events)
	if s.Debug {
		s.Log.Printf("socket %v added for %v", token, conn.RemoteAddr())
	}
	return token
}

// Push queues a message for the token.  An error is returned when the
// connection's outbound queue is full; the caller should then purge the
// player, since a client that never reads cannot stay.
func (s *Stream) Push(token game.Token, body interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sock, ok := s.sockets[token]
	if !ok {
		return nil
	}
	return sock.push(body)
}

// Append queues every response, returning the tokens of connections whose
// queues overflowed.
func (s *Stream) Append(responses []message.Response) []game.Token {
	var overflowed []game.Token
	for _, r := range responses {
		if err := s.Push(r.Token, r.Body); err != nil {
			s.Log.Printf("dropping connection %v: %v", r.Token, err)
			overflowed = append(overflowed, r.Token)
		}
	}
	return overflowed
}

// Remove deregisters the token, closes its outbound queue so the write
// pump shuts the connection, and recycles the token.
func (s *Stream) Remove(token game.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sock, ok := s.sockets[token]
	if !ok {
		return
	}
	delete(s.sockets, token)
	close(sock.out)
	s.ids.recycle(token)
	if s.Debug {
		s.Log.Printf("socket %v removed", token)
	}
}
