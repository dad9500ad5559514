package controller

import (
	"fmt"

	"github.com/codewords-game/codewords/game"
)

// Warning is an error caused by a player request rather than by the
// server.  Warnings are sent back to the offending player and never
// logged as server errors.
type Warning string

// Error returns the string of the error.
func (w Warning) Error() string {
	return string(w)
}

const (
	errNotAdmin       Warning = "you are not the admin"
	errNotMaster      Warning = "you are not the codemaster"
	errAlreadyStarted Warning = "game already started"
	errHintTurn       Warning = "not your turn to give a hint"
	errGuessTurn      Warning = "not your turn to guess"
	errPassTurn       Warning = "not your turn to pass"
	errNotInTeam      Warning = "player not found in team"
)

// errMissingPlayers reports a team below the two-player quorum.
func errMissingPlayers(t game.Team) Warning {
	return Warning(fmt.Sprintf("team %v does not have enough players", t))
}

// errMasterNotFound reports a start request naming an unknown master.
func errMasterNotFound(name string) Warning {
	return Warning(fmt.Sprintf("master %v not found", name))
}
