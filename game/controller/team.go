package controller

import (
	"sort"

	"github.com/codewords-game/codewords/game"
)

// team is the per-color half of a game: membership, the codemaster, the
// current hint, and the guess budget.
type team struct {
	color    game.Team
	players  map[game.Token]string
	master   *game.Token
	hint     string
	previous *string
	guesses  uint8
	phase    game.Phase
}

// newTeam creates an empty team in the hint phase.
func newTeam(color game.Team) *team {
	return &team{
		color:   color,
		players: make(map[game.Token]string),
		phase:   game.PhaseHint,
	}
}

// addPlayer adds the named player to the team.
func (t *team) addPlayer(token game.Token, name string) {
	t.players[token] = name
}

// removePlayer removes the token from the team, returning the player's
// name if the token was a member.
func (t *team) removePlayer(token game.Token) (string, bool) {
	name, ok := t.players[token]
	if ok {
		delete(t.players, token)
	}
	return name, ok
}

// hasQuorum reports whether the team has a master and enough players to
// keep playing.
func (t *team) hasQuorum() bool {
	return t.master != nil && len(t.players) >= 2
}

// resetRound clears the master, the hints, and the budget.  Called when
// the game falls back to the lobby so new masters can be picked.
func (t *team) resetRound() {
	t.master = nil
	t.hint = ""
	t.previous = nil
	t.guesses = 0
	t.phase = game.PhaseHint
}

// setMaster makes the player with the display name the team's codemaster.
func (t *team) setMaster(name string) error {
	for token, player := range t.players {
		if player == name {
			token := token
			t.master = &token
			return nil
		}
	}
	return errMasterNotFound(name)
}

// isMaster reports whether the token is the team's codemaster.
func (t *team) isMaster(token game.Token) bool {
	return t.master != nil && *t.master == token
}

// giveHint stores the master's hint and opens the guessing window.
// If the team still had guesses, or the bonus from the prior hint, the
// prior hint is stacked into previous so the budget carries over.
func (t *team) giveHint(token game.Token, hint string, guesses uint8) error {
	if !t.isMaster(token) {
		return errNotMaster
	}
	if t.phase != game.PhaseHint {
		return errHintTurn
	}
	if t.guesses > 0 || t.previous != nil {
		prior := t.hint
		t.previous = &prior
	}
	t.hint = hint
	t.guesses = guesses
	t.phase = game.PhaseGuess
	return nil
}

// nextTeam accounts for a revealed tile and returns the team whose turn
// it is afterwards.  A correct reveal spends budget (guesses first, then
// the carried bonus) and keeps the turn while any budget remains; any
// other tile ends the guessing window.
func (t *team) nextTeam(token game.Token, tile game.Team, ok bool) (game.Team, error) {
	if _, member := t.players[token]; !member || t.isMaster(token) {
		return "", errNotInTeam
	}
	if t.phase != game.PhaseGuess {
		return "", errGuessTurn
	}
	if !ok || tile != t.color {
		t.phase = game.PhaseHint
		return t.color.Opposite(), nil
	}
	t.decreaseGuess()
	if t.guesses > 0 || t.previous != nil {
		return t.color, nil
	}
	t.phase = game.PhaseHint
	return t.color.Opposite(), nil
}

// decreaseGuess consumes one guess: the current budget first, the carried
// bonus only after the budget is gone.
func (t *team) decreaseGuess() {
	if t.guesses > 0 {
		t.guesses--
		return
	}
	t.previous = nil
}

// pass forces the team back to the hint phase.
func (t *team) pass(token game.Token) error {
	if _, member := t.players[token]; !member {
		return errNotInTeam
	}
	t.phase = game.PhaseHint
	return nil
}

// canGuess reports whether the token may reveal a card right now: a
// non-master member, during the guessing window, with budget or the
// carried bonus left.
func (t *team) canGuess(token game.Token) bool {
	if _, member := t.players[token]; !member || t.isMaster(token) {
		return false
	}
	return t.phase == game.PhaseGuess && (t.guesses > 0 || t.previous != nil)
}

// names returns the display names of the team's players.
func (t *team) names() []string {
	names := make([]string, 0, len(t.players))
	for _, name := range t.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// masterName returns the display name of the codemaster, if one is set.
func (t *team) masterName() *string {
	if t.master == nil {
		return nil
	}
	name, ok := t.players[*t.master]
	if !ok {
		return nil
	}
	return &name
}
