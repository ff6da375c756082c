package game

// Ranker scores a position from player's point of view; higher is better for
// player. Implementations must be safe to call on any valid state, terminal
// or not.
type Ranker interface {
	Rank(state *GameState, player Player) float64
}

// Scores reported for decided and drawn positions.
const (
	Win  = 1000.0
	Loss = -1000.0
	Tie  = -100.0
)

// terminalRank returns the fixed score of a finished position, or false when
// the game is still running.
func terminalRank(state *GameState, player Player) (float64, bool) {
	result := state.TerminalStatus()
	switch result.Status {
	case Decided:
		if result.Winner == player {
			return Win, true
		}
		return Loss, true
	case Drawn:
		return Tie, true
	}
	return 0, false
}
