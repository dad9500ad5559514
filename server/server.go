// Package server binds connections to rooms and runs the event loop that
// every game mutation goes through.
package server

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codewords-game/codewords/game"
	"github.com/codewords-game/codewords/game/board"
	"github.com/codewords-game/codewords/game/message"
	"github.com/codewords-game/codewords/game/room"
	"github.com/codewords-game/codewords/server/socket"
	"github.com/codewords-game/codewords/server/socket/gorilla"
)

type (
	// Server is the room directory: it maps connection tokens to rooms,
	// routes requests, and tears rooms down with their sockets.  All of
	// that happens on the single event loop goroutine; the http server
	// only upgrades connections and hands them to the stream.
	Server struct {
		wg         sync.WaitGroup
		log        *log.Logger
		boards     *board.BoardSet
		stream     *socket.Stream
		upgrader   *gorilla.Upgrader
		players    map[game.Token]uuid.UUID
		rooms      map[uuid.UUID]*room.Room
		roomCfg    room.Config
		httpServer *http.Server
		runCtx     context.Context
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// Bind is the address to listen on.
		Bind string
		// Port is the TCP port to listen on.
		Port int
		// StopDur is how long Stop waits for a graceful shutdown.
		StopDur time.Duration
		// QueueSize bounds each connection's outbound queue.
		QueueSize int
		// PingPeriod is how often connections are pinged.
		PingPeriod time.Duration
		// WriteWait is how long a single write may take before the
		// connection is considered stalled.
		WriteWait time.Duration
		// ReadWait is how long a connection may stay silent.  Should be
		// greater than PingPeriod.
		ReadWait time.Duration
		// Debug is a flag that causes the server to log the messages that
		// are read and written.
		Debug bool
		// Version is reported on the version endpoint.
		Version string
	}
)

// NewServer creates a Server from the Config.
func (cfg Config) NewServer(log *log.Logger, boards *board.BoardSet) (*Server, error) {
	if err := cfg.validate(log, boards); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	streamCfg := socket.Config{
		Debug:      cfg.Debug,
		Log:        log,
		PingPeriod: cfg.PingPeriod,
		WriteWait:  cfg.WriteWait,
		QueueSize:  cfg.QueueSize,
	}
	stream, err := streamCfg.NewStream()
	if err != nil {
		return nil, err
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := Server{
		log:      log,
		boards:   boards,
		stream:   stream,
		upgrader: gorilla.NewUpgrader(cfg.ReadWait),
		players:  make(map[game.Token]uuid.UUID),
		rooms:    make(map[uuid.UUID]*room.Room),
		roomCfg: room.Config{
			Boards: boards,
			Rand:   rnd,
			Log:    log,
		},
		Config: cfg,
	}
	s.httpServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Bind, strconv.Itoa(cfg.Port)),
		Handler: s.handler(),
	}
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(log *log.Logger, boards *board.BoardSet) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case boards == nil:
		return fmt.Errorf("board set required")
	case cfg.Port < 1 || cfg.Port > 65535:
		return fmt.Errorf("invalid port: %v", cfg.Port)
	case cfg.StopDur <= 0:
		return fmt.Errorf("positive stop timeout required")
	case cfg.QueueSize <= 0:
		return fmt.Errorf("positive queue size required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	case cfg.WriteWait <= 0:
		return fmt.Errorf("positive write wait required")
	case cfg.ReadWait <= cfg.PingPeriod:
		return fmt.Errorf("read wait must be greater than ping period")
	}
	return nil
}

// Run starts the http listener and the event loop.  Errors from the
// listener are reported on the returned channel.
func (s *Server) Run(ctx context.Context) <-chan error {
	ctx, cancel := context.WithCancel(ctx)
	s.runCtx = ctx
	s.httpServer.RegisterOnShutdown(cancel)
	errC := make(chan error, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.handleEvents(ctx)
	}()
	go func() {
		errC <- s.httpServer.ListenAndServe()
	}()
	s.log.Printf("serving codewords at http://%v", s.httpServer.Addr)
	return errC
}

// Stop asks the server to shut down and waits for the event loop to
// drain.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.StopDur)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)
	s.wg.Wait()
	return err
}

// handleEvents is the event loop.  Each event is handled completely,
// responses included, before the next one is taken, which is what makes
// every room mutation atomic.
func (s *Server) handleEvents(ctx context.Context) {
	for { // BLOCKS
		select {
		case <-ctx.Done():
			return
		case e := <-s.stream.Events():
			s.handleEvent(e)
		}
	}
}

// handleEvent routes one event.  Events from connections whose token was
// already recycled are discarded.
func (s *Server) handleEvent(e socket.Event) {
	if !s.stream.Current(e) {
		return
	}
	switch e.Kind {
	case socket.EventRequest:
		s.route(e.Token, e.Request)
	case socket.EventError:
		s.push(message.NewError(e.Token, e.Err))
	case socket.EventClose:
		s.removePlayer(e.Token)
	}
}

// route dispatches a request: members go to their room; everyone else
// may only create or join one.
func (s *Server) route(token game.Token, req *message.Request) {
	if id, ok := s.players[token]; ok {
		if r, ok := s.rooms[id]; ok {
			s.deliver(r.Handle(token, req))
		}
		return
	}
	switch req.Kind {
	case message.KindRoom:
		s.createRoom(token, req)
	case message.KindJoin:
		s.joinRoom(token, req)
	default:
		s.push(message.NewError(token, fmt.Errorf("invalid request, expecting room or join")))
	}
}

// createRoom makes the token the admin of a new room and sends it the
// first snapshot.
func (s *Server) createRoom(token game.Token, req *message.Request) {
	r, err := s.roomCfg.NewRoom(token, req.Name, req.Language)
	if err != nil {
		s.push(message.NewError(token, err))
		return
	}
	s.players[token] = r.ID()
	s.rooms[r.ID()] = r
	s.log.Printf("%v - room created by %v", r.ID(), req.Name)
	s.deliver([]message.Response{{Token: token, Body: r.Snapshot()}})
}

// joinRoom binds the token to an existing room and runs the join there.
func (s *Server) joinRoom(token game.Token, req *message.Request) {
	r, ok := s.rooms[req.RoomID]
	if !ok {
		s.push(message.NewError(token, fmt.Errorf("room %v not found", req.RoomID)))
		return
	}
	s.players[token] = req.RoomID
	s.deliver(r.Handle(token, req))
}

// removePlayer purges the token and, when the room does not survive the
// departure, tears the room down with every remaining socket in it.
func (s *Server) removePlayer(token game.Token) {
	defer s.stream.Remove(token)
	id, ok := s.players[token]
	if !ok {
		return
	}
	delete(s.players, token)
	r, ok := s.rooms[id]
	if !ok {
		return
	}
	s.deliver(r.RemovePlayer(token))
	if r.IsAlive(token) {
		return
	}
	delete(s.rooms, id)
	for _, t := range r.Tokens() {
		delete(s.players, t)
		s.stream.Remove(t)
	}
	s.log.Printf("%v - room closed", id)
}

// deliver queues the responses, purging any connection whose outbound
// queue overflowed.
func (s *Server) deliver(responses []message.Response) {
	for _, token := range s.stream.Append(responses) {
		s.removePlayer(token)
	}
}

// push queues a single response, purging the connection on overflow.
func (s *Server) push(r message.Response) {
	s.deliver([]message.Response{r})
}
