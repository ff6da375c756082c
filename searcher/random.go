package searcher

import (
	"hexgame/game"
	"hexgame/hex"

	"golang.org/x/exp/rand"
)

// RandomAI plays a uniformly random legal move.
type RandomAI struct {
	rng *rand.Rand
}

func NewRandomAI(seed uint64) *RandomAI {
	return &RandomAI{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAI) Choose(state *game.GameState, player game.Player) hex.Cell {
	checkTurn(state, player)
	moves := state.LegalMoves()
	return moves[a.rng.Intn(len(moves))]
}
