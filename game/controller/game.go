// Package controller holds the game state machine: two teams, a board,
// and the turn rules that tie them together.
package controller

import (
	"github.com/codewords-game/codewords/game"
	"github.com/codewords-game/codewords/game/board"
)

type (
	// Game enforces the cross-team rules: who may start the game, whose
	// turn it is, and when the game ends.
	Game struct {
		admin  game.Token
		board  *board.Board
		status game.Status
		turn   game.Team
		winner game.Team
		blue   *team
		red    *team
	}

	// Snapshot is the serializable public view of a game.
	Snapshot struct {
		Board  *board.Board `json:"board"`
		Red    TeamSnapshot `json:"red"`
		Blue   TeamSnapshot `json:"blue"`
		Turn   game.Team    `json:"turn"`
		Action game.Phase   `json:"action"`
	}

	// TeamSnapshot is the serializable view of one team.
	TeamSnapshot struct {
		Master   *string  `json:"master"`
		Hint     string   `json:"hint"`
		Guesses  uint8    `json:"guesses"`
		Previous *string  `json:"previous"`
		Players  []string `json:"players"`
	}
)

// NewGame creates a game on the board with the admin token.  The game
// starts in the lobby state with no masters.
func NewGame(b *board.Board, admin game.Token) *Game {
	return &Game{
		admin:  admin,
		board:  b,
		status: game.NotStarted,
		blue:   newTeam(game.TeamBlue),
		red:    newTeam(game.TeamRed),
	}
}

// team returns the named team.
func (g *Game) team(color game.Team) *team {
	if color == game.TeamRed {
		return g.red
	}
	return g.blue
}

// Admin returns the token of the game's creator.
func (g *Game) Admin() game.Token {
	return g.admin
}

// Status returns the lifecycle state of the game.
func (g *Game) Status() game.Status {
	return g.status
}

// Winner returns the winning team once the game is finished.
func (g *Game) Winner() (game.Team, bool) {
	return g.winner, g.status == game.Finished
}

// Board returns the game's board.
func (g *Game) Board() *board.Board {
	return g.board
}

// AddPlayer puts the named player on the team.
func (g *Game) AddPlayer(token game.Token, color game.Team, name string) {
	g.team(color).addPlayer(token, name)
}

// RemovePlayer removes the token from whichever team contains it.  If the
// removal costs a team its master or its two-player quorum, the game
// falls back to the lobby so new masters can be picked.
func (g *Game) RemovePlayer(token game.Token) (string, bool) {
	name, ok := g.blue.removePlayer(token)
	if !ok {
		name, ok = g.red.removePlayer(token)
	}
	if ok && (!g.blue.hasQuorum() || !g.red.hasQuorum()) {
		g.status = game.NotStarted
		g.blue.resetRound()
		g.red.resetRound()
	}
	return name, ok
}

// Start begins play: only the admin may start, both teams need two
// players, and the named masters must exist on their teams.  The team
// with more tiles on the board plays first.
func (g *Game) Start(token game.Token, blueMaster, redMaster string) error {
	switch {
	case token != g.admin:
		return errNotAdmin
	case g.status != game.NotStarted:
		return errAlreadyStarted
	case len(g.blue.players) < 2:
		return errMissingPlayers(game.TeamBlue)
	case len(g.red.players) < 2:
		return errMissingPlayers(game.TeamRed)
	}
	if err := g.blue.setMaster(blueMaster); err != nil {
		return err
	}
	if err := g.red.setMaster(redMaster); err != nil {
		g.blue.master = nil
		return err
	}
	g.status = game.InProgress
	g.turn = g.board.StartingTeam()
	return nil
}

// Hint delegates the hint to the team whose turn it is.
func (g *Game) Hint(token game.Token, word string, guesses uint8) error {
	if g.status != game.InProgress {
		return errHintTurn
	}
	return g.team(g.turn).giveHint(token, word, guesses)
}

// Guess reveals the card at (x, y) for the guessing player.  A death tile
// ends the game for the guessing team; any other tile hands the turn to
// whichever team the budget accounting says plays next.  Revealing the
// last tile of a color ends the game in that color's favor regardless.
func (g *Game) Guess(token game.Token, x, y int) error {
	if g.status != game.InProgress {
		return errGuessTurn
	}
	current := g.team(g.turn)
	if !current.canGuess(token) {
		return errGuessTurn
	}
	tile := g.board.PutCard(x, y)
	if tile == board.TileDeath {
		g.end(g.turn.Opposite())
		return nil
	}
	color, ok := tile.Team()
	next, err := current.nextTeam(token, color, ok)
	if err != nil {
		return err
	}
	g.turn = next
	if winner, won := g.board.Winner(); won {
		g.end(winner)
	}
	return nil
}

// Pass lets any player of the current team forfeit the rest of the
// guessing window, handing the turn to the other team.
func (g *Game) Pass(token game.Token) error {
	if g.status != game.InProgress {
		return errPassTurn
	}
	if err := g.team(g.turn).pass(token); err != nil {
		return err
	}
	g.turn = g.turn.Opposite()
	return nil
}

// end finishes the game with the winner.
func (g *Game) end(winner game.Team) {
	g.status = game.Finished
	g.winner = winner
	g.turn = winner
}

// Masters returns the tokens of the codemasters that are set.
func (g *Game) Masters() []game.Token {
	var masters []game.Token
	for _, t := range []*team{g.blue, g.red} {
		if t.master != nil {
			masters = append(masters, *t.master)
		}
	}
	return masters
}

// Tokens returns every token on either team.
func (g *Game) Tokens() []game.Token {
	tokens := make([]game.Token, 0, len(g.blue.players)+len(g.red.players))
	for token := range g.blue.players {
		tokens = append(tokens, token)
	}
	for token := range g.red.players {
		tokens = append(tokens, token)
	}
	return tokens
}

// CanGuess reports whether the token may reveal a card right now.
func (g *Game) CanGuess(token game.Token) bool {
	return g.status == game.InProgress && g.team(g.turn).canGuess(token)
}

// Snapshot builds the public view of the game.  Before the first start the
// turn shows the starting team of the dealt board; after the end it shows
// the winner.
func (g *Game) Snapshot() Snapshot {
	turn := g.turn
	if g.status == game.NotStarted {
		turn = g.board.StartingTeam()
	}
	return Snapshot{
		Board:  g.board,
		Red:    g.red.snapshot(),
		Blue:   g.blue.snapshot(),
		Turn:   turn,
		Action: g.team(turn).phase,
	}
}

// snapshot builds the serializable view of the team.
func (t *team) snapshot() TeamSnapshot {
	return TeamSnapshot{
		Master:   t.masterName(),
		Hint:     t.hint,
		Guesses:  t.guesses,
		Previous: t.previous,
		Players:  t.names(),
	}
}
