package game

import "fmt"

// Status classifies the outcome of a move or of a position.
type Status int

const (
	Accepted Status = iota // the game continues
	Rejected               // the cell is off the board or occupied
	Decided                // the game is over and Winner has won
	Drawn                  // the board is full without a winner
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Decided:
		return "decided"
	case Drawn:
		return "drawn"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MoveResult is the outcome of an attempted move. Winner is only meaningful
// when Status is Decided.
type MoveResult struct {
	Status Status
	Winner Player
}

// Decision returns the result of a game won by p.
func Decision(p Player) MoveResult {
	return MoveResult{Status: Decided, Winner: p}
}

// IsOver reports whether the result ends the game.
func (r MoveResult) IsOver() bool {
	return r.Status == Decided || r.Status == Drawn
}

func (r MoveResult) String() string {
	if r.Status == Decided {
		return fmt.Sprintf("decided(%s)", r.Winner)
	}
	return r.Status.String()
}
