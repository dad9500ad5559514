// Package room aggregates a game with the roster of connections that can
// see it.  Rooms do no I/O: every mutation returns the responses to
// deliver, and the server hands them to the socket layer.
package room

import (
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/codewords-game/codewords/game"
	"github.com/codewords-game/codewords/game/board"
	"github.com/codewords-game/codewords/game/controller"
	"github.com/codewords-game/codewords/game/message"
)

type (
	// Room owns a game, the room-level roster, and a handle to the board
	// set for dealing fresh boards on reset.  A token joins the roster
	// first and picks a team later.
	Room struct {
		id      uuid.UUID
		admin   game.Token
		players map[game.Token]string
		game    *controller.Game
		boards  *board.BoardSet
		rnd     *rand.Rand
		log     *log.Logger
	}

	// Snapshot is the canonical broadcast payload: the entire public view
	// of the room.
	Snapshot struct {
		Response string              `json:"response"`
		ID       uuid.UUID           `json:"id"`
		Game     controller.Snapshot `json:"game"`
		Players  []string            `json:"players"`
		State    string              `json:"state"`
	}

	// Config contains the shared properties rooms are created with.
	Config struct {
		// Boards deals the boards for new and reset games.
		Boards *board.BoardSet
		// Rand drives board generation.  Only ever used from the server's
		// event loop goroutine.
		Rand *rand.Rand
		// Log is used to log errors and other information.
		Log *log.Logger
	}
)

// teamPhaseMin is the roster size at which the room moves from gathering
// players to picking teams.
const teamPhaseMin = 4

// NewRoom creates a room with a fresh id and board, registering the admin
// under the given display name.
func (cfg Config) NewRoom(admin game.Token, name, language string) (*Room, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating room: validation: %w", err)
	}
	b, err := cfg.Boards.NewBoard(language, cfg.Rand)
	if err != nil {
		return nil, err
	}
	r := Room{
		id:      uuid.New(),
		admin:   admin,
		players: map[game.Token]string{admin: name},
		game:    controller.NewGame(b, admin),
		boards:  cfg.Boards,
		rnd:     cfg.Rand,
		log:     cfg.Log,
	}
	return &r, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate() error {
	switch {
	case cfg.Boards == nil:
		return fmt.Errorf("board set required")
	case cfg.Rand == nil:
		return fmt.Errorf("random source required")
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	}
	return nil
}

// ID returns the room's identifier.
func (r *Room) ID() uuid.UUID {
	return r.id
}

// Admin returns the token of the room's creator.
func (r *Room) Admin() game.Token {
	return r.admin
}

// Tokens returns every token on the room's roster.
func (r *Room) Tokens() []game.Token {
	tokens := make([]game.Token, 0, len(r.players))
	for token := range r.players {
		tokens = append(tokens, token)
	}
	return tokens
}

// IsAlive reports whether the room should keep existing after the token
// left.  The room dies with its admin, or when nobody remains.
func (r *Room) IsAlive(leaver game.Token) bool {
	return leaver != r.admin && len(r.players) > 0
}

// Handle routes a request from the token through the room, returning the
// responses to deliver.  Game and room errors go to the offender only.
func (r *Room) Handle(token game.Token, req *message.Request) []message.Response {
	responses, err := r.dispatch(token, req)
	if err != nil {
		return []message.Response{message.NewError(token, err)}
	}
	return responses
}

// dispatch runs the request's operation.
func (r *Room) dispatch(token game.Token, req *message.Request) ([]message.Response, error) {
	switch req.Kind {
	case message.KindJoin:
		return r.join(token, req.Name)
	case message.KindTeam:
		return r.joinTeam(token, req.Team)
	case message.KindStart:
		return r.start(token, req.Blue, req.Red)
	case message.KindHint:
		return r.hint(token, req.Hint, req.Guesses)
	case message.KindGuess:
		return r.guess(token, req.X, req.Y)
	case message.KindPass:
		return r.pass(token)
	case message.KindReset:
		return r.reset(token, req.Language)
	}
	return nil, fmt.Errorf("request %v not handled in a room", req.Kind)
}

// join adds the token to the roster.
func (r *Room) join(token game.Token, name string) ([]message.Response, error) {
	r.players[token] = name
	r.log.Printf("%v - player %v joined", r.id, name)
	return r.broadcast(), nil
}

// joinTeam puts an already joined player on a team.
func (r *Room) joinTeam(token game.Token, color game.Team) ([]message.Response, error) {
	name, ok := r.players[token]
	if !ok {
		return nil, fmt.Errorf("player not found in room")
	}
	r.game.AddPlayer(token, color, name)
	return r.broadcast(), nil
}

// start begins play and privately reveals the tile map to both masters.
func (r *Room) start(token game.Token, blueMaster, redMaster string) ([]message.Response, error) {
	if err := r.game.Start(token, blueMaster, redMaster); err != nil {
		return nil, err
	}
	r.log.Printf("%v - game started", r.id)
	responses := r.broadcast()
	for _, master := range r.game.Masters() {
		responses = append(responses, message.NewTiles(master, r.game.Board().Tiles))
	}
	return responses, nil
}

// hint forwards a codemaster's hint to the game.
func (r *Room) hint(token game.Token, word string, guesses uint8) ([]message.Response, error) {
	if err := r.game.Hint(token, word, guesses); err != nil {
		return nil, err
	}
	r.log.Printf("%v - hint word: %v guesses: %v", r.id, word, guesses)
	return r.broadcast(), nil
}

// guess forwards a card reveal to the game.
func (r *Room) guess(token game.Token, x, y int) ([]message.Response, error) {
	if err := r.game.Guess(token, x, y); err != nil {
		return nil, err
	}
	r.log.Printf("%v - guess %v %v", r.id, x, y)
	if winner, won := r.game.Winner(); won {
		r.log.Printf("%v - game ended, winner: %v", r.id, winner)
	}
	return r.broadcast(), nil
}

// pass forwards a pass to the game.
func (r *Room) pass(token game.Token) ([]message.Response, error) {
	if err := r.game.Pass(token); err != nil {
		return nil, err
	}
	r.log.Printf("%v - pass", r.id)
	return r.broadcast(), nil
}

// reset deals a fresh board and replaces the game, keeping the roster and
// the admin.  Players pick teams again.
func (r *Room) reset(token game.Token, language string) ([]message.Response, error) {
	if token != r.admin {
		return nil, fmt.Errorf("you are not the admin")
	}
	b, err := r.boards.NewBoard(language, r.rnd)
	if err != nil {
		return nil, err
	}
	r.game = controller.NewGame(b, r.admin)
	r.log.Printf("%v - reset with language %v", r.id, language)
	return r.broadcast(), nil
}

// RemovePlayer drops the token from the roster and the game, and tells
// the survivors.
func (r *Room) RemovePlayer(token game.Token) []message.Response {
	name, ok := r.players[token]
	if !ok {
		return nil
	}
	delete(r.players, token)
	r.game.RemovePlayer(token)
	r.log.Printf("%v - player %v removed", r.id, name)
	return r.broadcast()
}

// Snapshot builds the room's broadcast payload.
func (r *Room) Snapshot() Snapshot {
	return Snapshot{
		Response: "room",
		ID:       r.id,
		Game:     r.game.Snapshot(),
		Players:  r.playerNames(),
		State:    r.state(),
	}
}

// state derives the room's display state from the game's lifecycle state
// and the roster size.
func (r *Room) state() string {
	switch r.game.Status() {
	case game.InProgress:
		return "play"
	case game.Finished:
		return "end"
	}
	if len(r.players) < teamPhaseMin {
		return "join"
	}
	return "team"
}

// broadcast pairs the current snapshot with every roster token.
func (r *Room) broadcast() []message.Response {
	snapshot := r.Snapshot()
	responses := make([]message.Response, 0, len(r.players))
	for token := range r.players {
		responses = append(responses, message.Response{
			Token: token,
			Body:  snapshot,
		})
	}
	return responses
}

// playerNames returns the roster's display names.
func (r *Room) playerNames() []string {
	names := make([]string, 0, len(r.players))
	for _, name := range r.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
