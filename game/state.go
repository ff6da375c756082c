package game

import (
	"hexgame/hex"
	"hexgame/meta"
)

// GameState is the position plus whose turn it is. It is mutated only by
// ApplyMove; the search works on copies made by Play.
type GameState struct {
	current  Player
	board    *hex.Map[Player]
	lastMove hex.Cell
	hasMoved bool
	status   MoveResult
}

var defaultGrid = hex.NewGrid(meta.BOARD_RADIUS)

// NewGameState returns an empty default board with First to move.
func NewGameState() *GameState {
	return NewGameStateWithGrid(defaultGrid)
}

// NewGameStateWithGrid returns an empty board of the given shape with First
// to move.
func NewGameStateWithGrid(g *hex.Grid) *GameState {
	return &GameState{
		current: First,
		board:   hex.NewMap[Player](g),
		status:  MoveResult{Status: Accepted},
	}
}

// Copy returns an independent copy of the state.
func (gs *GameState) Copy() *GameState {
	return &GameState{
		current:  gs.current,
		board:    gs.board.Clone(),
		lastMove: gs.lastMove,
		hasMoved: gs.hasMoved,
		status:   gs.status,
	}
}

// CurrentPlayer returns the player who moves next.
func (gs *GameState) CurrentPlayer() Player {
	return gs.current
}

// Board returns the placement map. Callers must not modify it.
func (gs *GameState) Board() *hex.Map[Player] {
	return gs.board
}

// Grid returns the shape of the board.
func (gs *GameState) Grid() *hex.Grid {
	return gs.board.Grid()
}

// LastMove returns the most recently filled cell, if any move was played.
func (gs *GameState) LastMove() (hex.Cell, bool) {
	return gs.lastMove, gs.hasMoved
}

// StoneCount returns the number of occupied cells.
func (gs *GameState) StoneCount() int {
	return gs.board.Len()
}

// ApplyMove places the current player's stone at c. An off-board or occupied
// cell is Rejected and leaves the state untouched. Otherwise the turn passes
// and the terminal status after the move is returned.
func (gs *GameState) ApplyMove(c hex.Cell) MoveResult {
	if !gs.board.IsEmpty(c) {
		return MoveResult{Status: Rejected}
	}
	if err := gs.board.Insert(c, gs.current); err != nil {
		return MoveResult{Status: Rejected}
	}
	gs.current = gs.current.Inverse()
	gs.lastMove = c
	gs.hasMoved = true
	gs.status = gs.evaluateStatus()
	return gs.status
}

// Play returns a new state with c applied and the result; the receiver is
// never modified. On rejection the receiver itself is returned.
func (gs *GameState) Play(c hex.Cell) (*GameState, MoveResult) {
	if !gs.board.IsEmpty(c) {
		return gs, MoveResult{Status: Rejected}
	}
	next := gs.Copy()
	return next, next.ApplyMove(c)
}

// LegalMoves returns every empty cell in grid order.
func (gs *GameState) LegalMoves() []hex.Cell {
	return gs.board.Empty()
}

// TerminalStatus reports whether the position is decided, drawn or still
// running. It reflects the last move only, as computed when it was played.
func (gs *GameState) TerminalStatus() MoveResult {
	return gs.status
}

// IsOver reports whether the game has ended.
func (gs *GameState) IsOver() bool {
	return gs.status.IsOver()
}

// evaluateStatus inspects the three axes through the last move. A run of
// exactly LOSE_LENGTH hands the game to the opponent unless some axis holds
// a winning run, which always takes precedence regardless of axis order.
func (gs *GameState) evaluateStatus() MoveResult {
	if !gs.hasMoved {
		return MoveResult{Status: Accepted}
	}
	mover, _ := gs.board.Get(gs.lastMove)

	won, lost := false, false
	for _, axis := range gs.Grid().Axes(gs.lastMove) {
		run := 1 + gs.runLength(axis.Forward, mover) + gs.runLength(axis.Backward, mover)
		switch {
		case run >= meta.WIN_LENGTH && run <= meta.MAX_WIN_LENGTH:
			won = true
		case run == meta.LOSE_LENGTH:
			lost = true
		}
	}

	switch {
	case won:
		return Decision(mover)
	case lost:
		return Decision(mover.Inverse())
	case gs.board.IsFull():
		return MoveResult{Status: Drawn}
	}
	return MoveResult{Status: Accepted}
}

// runLength counts the leading cells of ray owned by p.
func (gs *GameState) runLength(ray []hex.Cell, p Player) int {
	n := 0
	for _, c := range ray {
		if owner, ok := gs.board.Get(c); !ok || owner != p {
			break
		}
		n++
	}
	return n
}
