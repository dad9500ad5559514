package controller

import (
	"testing"

	"github.com/codewords-game/codewords/game"
	"github.com/codewords-game/codewords/game/board"
)

// newTestBoard deals a fixed board: blue holds the first nine cells in
// row-major order, red the next eight, then seven neutrals, with the
// death tile at (4,4).  Blue starts.
func newTestBoard() *board.Board {
	var b board.Board
	n := 0
	for x := 0; x < board.Size; x++ {
		for y := 0; y < board.Size; y++ {
			switch {
			case n < 9:
				b.Tiles[x][y] = board.TileBlue
			case n < 17:
				b.Tiles[x][y] = board.TileRed
			case n < 24:
				b.Tiles[x][y] = board.TileNeutral
			default:
				b.Tiles[x][y] = board.TileDeath
			}
			n++
		}
	}
	return &b
}

// newStartedGame creates a four-player game with alice (1, blue master),
// bob (2, blue), carol (3, red master), and dave (4, red), started by the
// admin alice.  Blue plays first.
func newStartedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(newTestBoard(), 1)
	g.AddPlayer(1, game.TeamBlue, "alice")
	g.AddPlayer(2, game.TeamBlue, "bob")
	g.AddPlayer(3, game.TeamRed, "carol")
	g.AddPlayer(4, game.TeamRed, "dave")
	if err := g.Start(1, "alice", "carol"); err != nil {
		t.Fatalf("unwanted error starting game: %v", err)
	}
	return g
}

func TestStart(t *testing.T) {
	startTests := []struct {
		token      game.Token
		blue       []string
		red        []string
		blueMaster string
		redMaster  string
		wantErr    string
	}{
		{token: 2, blue: []string{"alice", "bob"}, red: []string{"carol", "dave"}, blueMaster: "alice", redMaster: "carol", wantErr: "you are not the admin"},
		{token: 1, blue: []string{"alice"}, red: []string{"carol", "dave"}, blueMaster: "alice", redMaster: "carol", wantErr: "team blue does not have enough players"},
		{token: 1, blue: []string{"alice", "bob"}, red: []string{"carol"}, blueMaster: "alice", redMaster: "carol", wantErr: "team red does not have enough players"},
		{token: 1, blue: []string{"alice", "bob"}, red: []string{"carol", "dave"}, blueMaster: "eve", redMaster: "carol", wantErr: "master eve not found"},
		{token: 1, blue: []string{"alice", "bob"}, red: []string{"carol", "dave"}, blueMaster: "alice", redMaster: "eve", wantErr: "master eve not found"},
		{token: 1, blue: []string{"alice", "bob"}, red: []string{"carol", "dave"}, blueMaster: "alice", redMaster: "carol"},
	}
	for i, test := range startTests {
		g := NewGame(newTestBoard(), 1)
		token := game.Token(1)
		for _, name := range test.blue {
			g.AddPlayer(token, game.TeamBlue, name)
			token++
		}
		for _, name := range test.red {
			g.AddPlayer(token, game.TeamRed, name)
			token++
		}
		err := g.Start(test.token, test.blueMaster, test.redMaster)
		switch {
		case len(test.wantErr) != 0:
			if err == nil || err.Error() != test.wantErr {
				t.Errorf("Test %v: wanted error %q, got %v", i, test.wantErr, err)
			}
			if g.Status() != game.NotStarted {
				t.Errorf("Test %v: wanted a failed start to leave the lobby state, got %v", i, g.Status())
			}
			if len(g.Masters()) != 0 {
				t.Errorf("Test %v: wanted no masters after a failed start, got %v", i, g.Masters())
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case g.Status() != game.InProgress:
			t.Errorf("Test %v: wanted the game in progress, got %v", i, g.Status())
		case len(g.Masters()) != 2:
			t.Errorf("Test %v: wanted both masters set, got %v", i, g.Masters())
		}
	}
}

func TestStartTwice(t *testing.T) {
	g := newStartedGame(t)
	if err := g.Start(1, "alice", "carol"); err != errAlreadyStarted {
		t.Errorf("wanted %v, got %v", errAlreadyStarted, err)
	}
}

func TestRemovePlayerQuorum(t *testing.T) {
	g := newStartedGame(t)
	if _, ok := g.RemovePlayer(9); ok {
		t.Error("wanted removing an unknown token to report not found")
	}
	if g.Status() != game.InProgress {
		t.Errorf("wanted the game untouched, got %v", g.Status())
	}
	name, ok := g.RemovePlayer(2)
	switch {
	case !ok, name != "bob":
		t.Errorf("wanted (bob, true), got (%v, %v)", name, ok)
	case g.Status() != game.NotStarted:
		t.Errorf("wanted the quorum break to return the game to the lobby, got %v", g.Status())
	case len(g.Masters()) != 0:
		t.Errorf("wanted masters cleared on a quorum break, got %v", g.Masters())
	}
}

func TestHint(t *testing.T) {
	g := newStartedGame(t)
	if err := g.Hint(3, "fruit", 2); err == nil {
		t.Error("wanted error when the red master hints on blue's turn")
	}
	if err := g.Hint(2, "fruit", 2); err != errNotMaster {
		t.Errorf("wanted %v for a non-master hint, got %v", errNotMaster, err)
	}
	if err := g.Hint(1, "fruit", 2); err != nil {
		t.Errorf("unwanted error: %v", err)
	}
	if !g.CanGuess(2) {
		t.Error("wanted bob to be able to guess after the hint")
	}
	if g.CanGuess(1) {
		t.Error("wanted the master to never guess")
	}
}

func TestGuessBudget(t *testing.T) {
	g := newStartedGame(t)
	if err := g.Guess(2, 0, 0); err != errGuessTurn {
		t.Errorf("wanted %v before any hint, got %v", errGuessTurn, err)
	}
	g.Hint(1, "fruit", 2)
	if err := g.Guess(2, 0, 0); err != nil { // blue tile
		t.Fatalf("unwanted error: %v", err)
	}
	if !g.CanGuess(2) {
		t.Error("wanted the turn kept with budget left")
	}
	if err := g.Guess(2, 3, 3); err != nil { // neutral tile
		t.Fatalf("unwanted error: %v", err)
	}
	if g.CanGuess(2) {
		t.Error("wanted a neutral reveal to end blue's window")
	}
	if err := g.Hint(3, "animals", 1); err != nil {
		t.Errorf("unwanted error for red's hint: %v", err)
	}
}

func TestGuessBonus(t *testing.T) {
	g := newStartedGame(t)
	g.Hint(1, "fruit", 2)
	g.Guess(2, 3, 3) // neutral ends the window with the budget unspent
	g.Hint(3, "animals", 1)
	g.Guess(4, 3, 4) // neutral, back to blue
	if err := g.Hint(1, "trees", 1); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if err := g.Guess(2, 0, 0); err != nil { // correct, budget spent
		t.Fatalf("unwanted error: %v", err)
	}
	if !g.CanGuess(2) {
		t.Error("wanted the carried bonus to keep blue's turn")
	}
	if err := g.Guess(2, 0, 1); err != nil { // correct, bonus spent
		t.Fatalf("unwanted error: %v", err)
	}
	if g.CanGuess(2) {
		t.Error("wanted the turn to pass once the bonus is spent")
	}
}

func TestGuessRevealedCell(t *testing.T) {
	g := newStartedGame(t)
	g.Hint(1, "fruit", 3)
	if err := g.Guess(2, 0, 0); err != nil { // blue tile
		t.Fatalf("unwanted error: %v", err)
	}
	if err := g.Guess(2, 0, 0); err != nil { // same cell again
		t.Fatalf("unwanted error re-revealing the cell: %v", err)
	}
	switch {
	case g.Snapshot().Blue.Guesses != 1:
		t.Errorf("wanted the re-reveal to consume a guess, got %v left", g.Snapshot().Blue.Guesses)
	case !g.CanGuess(2):
		t.Error("wanted blue to keep the turn after re-revealing its own tile")
	case g.Status() == game.Finished:
		t.Error("wanted the re-reveal to leave the winner unchanged")
	}
	if _, won := g.Board().Winner(); won {
		t.Error("wanted the board to report no winner after a re-reveal")
	}
}

func TestGuessDeath(t *testing.T) {
	g := newStartedGame(t)
	g.Hint(1, "fruit", 2)
	if err := g.Guess(2, 4, 4); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	winner, won := g.Winner()
	if !won || winner != game.TeamRed {
		t.Errorf("wanted the death tile to hand red the win, got (%v, %v)", winner, won)
	}
	if err := g.Guess(2, 0, 0); err == nil {
		t.Error("wanted no guesses after the game ended")
	}
}

func TestGuessWinner(t *testing.T) {
	g := newStartedGame(t)
	b := g.Board()
	// reveal all but one red tile out of band
	var last [2]int
	reds := 0
	for x, row := range b.Tiles {
		for y, tile := range row {
			if tile == board.TileRed {
				reds++
				if reds < 8 {
					b.PutCard(x, y)
				} else {
					last = [2]int{x, y}
				}
			}
		}
	}
	g.Hint(1, "fruit", 2)
	if err := g.Guess(2, last[0], last[1]); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	winner, won := g.Winner()
	if !won || winner != game.TeamRed {
		t.Errorf("wanted revealing red's last tile to end the game for red, got (%v, %v)", winner, won)
	}
}

func TestPassGame(t *testing.T) {
	g := newStartedGame(t)
	if err := g.Pass(4); err != errNotInTeam {
		t.Errorf("wanted %v when a red player passes on blue's turn, got %v", errNotInTeam, err)
	}
	g.Hint(1, "fruit", 2)
	if err := g.Pass(2); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if err := g.Hint(3, "animals", 1); err != nil {
		t.Errorf("wanted the turn handed to red after the pass, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	g := newStartedGame(t)
	g.Hint(1, "fruit", 2)
	s := g.Snapshot()
	switch {
	case s.Turn != game.TeamBlue:
		t.Errorf("wanted blue's turn, got %v", s.Turn)
	case s.Action != game.PhaseGuess:
		t.Errorf("wanted the guess action after a hint, got %v", s.Action)
	case s.Blue.Master == nil, *s.Blue.Master != "alice":
		t.Errorf("wanted alice as the blue master, got %v", s.Blue.Master)
	case s.Blue.Hint != "fruit", s.Blue.Guesses != 2:
		t.Errorf("wanted the hint fruit with 2 guesses, got %v %v", s.Blue.Hint, s.Blue.Guesses)
	case len(s.Blue.Players) != 2, len(s.Red.Players) != 2:
		t.Errorf("wanted two players per team, got %v %v", s.Blue.Players, s.Red.Players)
	}
}

func TestSnapshotNotStarted(t *testing.T) {
	g := NewGame(newTestBoard(), 1)
	s := g.Snapshot()
	switch {
	case s.Turn != game.TeamBlue:
		t.Errorf("wanted the starting team shown before the start, got %v", s.Turn)
	case s.Action != game.PhaseHint:
		t.Errorf("wanted the hint action before the start, got %v", s.Action)
	case s.Blue.Master != nil, s.Red.Master != nil:
		t.Error("wanted no masters before the start")
	}
}
