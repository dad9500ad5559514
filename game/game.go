// Package game contains the types shared between the board, the state
// machine, the rooms, and the socket layer.
package game

// Token identifies a connection.  Tokens are small dense integers handed
// out by the socket layer; the game layer only compares them.
type Token int

// Team is one of the two playing colors.
type Team string

const (
	// TeamBlue is the blue team.
	TeamBlue Team = "blue"
	// TeamRed is the red team.
	TeamRed Team = "red"
)

// Opposite returns the other team.
func (t Team) Opposite() Team {
	if t == TeamBlue {
		return TeamRed
	}
	return TeamBlue
}

// Valid reports whether the team is one of the two playing colors.
func (t Team) Valid() bool {
	return t == TeamBlue || t == TeamRed
}

// Phase is the sub-state of a team during play.  A team alternates between
// waiting for its codemaster's hint and spending the hint's guess budget.
type Phase string

const (
	// PhaseHint means the team is waiting for a hint from its codemaster.
	PhaseHint Phase = "hint"
	// PhaseGuess means the team is spending its guess budget.
	PhaseGuess Phase = "guess"
)

// Status is the lifecycle state of a game.
type Status int

const (
	_ Status = iota
	// NotStarted is the lobby state before masters are chosen.
	NotStarted
	// InProgress means one team is hinting or guessing.
	InProgress
	// Finished means a team has won.
	Finished
)

// String returns the status as displayed in room snapshots.
func (s Status) String() string {
	switch s {
	case NotStarted:
		return "start"
	case InProgress:
		return "play"
	case Finished:
		return "end"
	}
	return "?"
}
