// Package message defines the JSON envelopes exchanged with clients: the
// request kinds players send and the responses the rooms fan out.
package message

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/codewords-game/codewords/game"
)

type (
	// Kind is the value of a request envelope's "request" field.
	Kind string

	// Request is a parsed and validated client message.  Only the fields
	// for the request's kind are meaningful.
	Request struct {
		Kind     Kind
		Name     string
		Language string
		RoomID   uuid.UUID
		Team     game.Team
		Blue     string
		Red      string
		Hint     string
		Guesses  uint8
		X        int
		Y        int
	}

	// envelope is the raw shape every client message decodes into.
	// Numeric fields are pointers so a missing field can be told apart
	// from a zero.
	envelope struct {
		Request  string `json:"request"`
		Name     string `json:"name"`
		Language string `json:"language"`
		ID       string `json:"id"`
		Team     string `json:"team"`
		Blue     string `json:"blue"`
		Red      string `json:"red"`
		Hint     string `json:"hint"`
		Guesses  *uint8 `json:"guesses"`
		X        *uint8 `json:"x"`
		Y        *uint8 `json:"y"`
	}
)

const (
	// KindRoom creates a room; the sender becomes its admin.
	KindRoom Kind = "room"
	// KindJoin adds the sender to an existing room's roster.
	KindJoin Kind = "join"
	// KindTeam puts the sender on a team.
	KindTeam Kind = "team"
	// KindStart names both codemasters and begins play.
	KindStart Kind = "start"
	// KindHint issues a hint word with a guess budget.
	KindHint Kind = "hint"
	// KindGuess reveals a card.
	KindGuess Kind = "guess"
	// KindPass forfeits the rest of the guessing window.
	KindPass Kind = "pass"
	// KindReset deals a fresh board, admin only.
	KindReset Kind = "reset"
)

// maxGuesses is the largest guess budget a hint may carry.
const maxGuesses = 9

// ParseRequest decodes and validates a client message.  The returned
// error is safe to echo back to the sender.
func ParseRequest(data []byte) (*Request, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse error: %v", err)
	}
	if len(e.Request) == 0 {
		return nil, fmt.Errorf("field request missing")
	}
	r := Request{Kind: Kind(e.Request)}
	switch r.Kind {
	case KindRoom:
		if len(e.Name) == 0 {
			return nil, fmt.Errorf("name empty")
		}
		if len(e.Language) == 0 {
			return nil, fmt.Errorf("language empty")
		}
		r.Name = e.Name
		r.Language = e.Language
	case KindJoin:
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid room id: %v", err)
		}
		if len(e.Name) == 0 {
			return nil, fmt.Errorf("name empty")
		}
		r.RoomID = id
		r.Name = e.Name
	case KindTeam:
		team := game.Team(e.Team)
		if !team.Valid() {
			return nil, fmt.Errorf("team must be %v or %v", game.TeamBlue, game.TeamRed)
		}
		r.Team = team
	case KindStart:
		if len(e.Blue) == 0 {
			return nil, fmt.Errorf("blue empty")
		}
		if len(e.Red) == 0 {
			return nil, fmt.Errorf("red empty")
		}
		r.Blue = e.Blue
		r.Red = e.Red
	case KindHint:
		if len(e.Hint) == 0 {
			return nil, fmt.Errorf("hint empty")
		}
		if e.Guesses == nil || *e.Guesses < 1 || *e.Guesses > maxGuesses {
			return nil, fmt.Errorf("guesses must be between 1 and %v", maxGuesses)
		}
		r.Hint = e.Hint
		r.Guesses = *e.Guesses
	case KindGuess:
		if e.X == nil || *e.X > 4 {
			return nil, fmt.Errorf("x must be between 0 and 4")
		}
		if e.Y == nil || *e.Y > 4 {
			return nil, fmt.Errorf("y must be between 0 and 4")
		}
		r.X = int(*e.X)
		r.Y = int(*e.Y)
	case KindPass:
	case KindReset:
		if len(e.Language) == 0 {
			return nil, fmt.Errorf("language empty")
		}
		r.Language = e.Language
	default:
		return nil, fmt.Errorf("unknown request: %v", e.Request)
	}
	return &r, nil
}
