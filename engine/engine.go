package engine

import (
	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/hex"
)

type Engine interface {
	// Run plays a game until it is decided, drawn or the turn limit is reached
	Run() (result game.MoveResult, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Update describes a move that was just applied.
type Update struct {
	Step   int
	Player game.Player
	Move   hex.Cell
	Result game.MoveResult
	State  *game.GameState
}
