package searcher

import (
	"hexgame/game"
	"hexgame/hex"
)

// AI picks a move for player, who must be the player to move in state.
type AI interface {
	Choose(state *game.GameState, player game.Player) hex.Cell
}
