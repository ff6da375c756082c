package game

import (
	"errors"
	"fmt"
	"math"

	"hexgame/hex"
)

var (
	ErrDegenerateWeights = errors.New("feature weights sum to zero")
	ErrNegativeWeight    = errors.New("feature weights must not be negative")
)

// NullRanker only distinguishes finished games. It gives the search no
// guidance below its horizon, which makes it a baseline opponent.
type NullRanker struct{}

func (NullRanker) Rank(state *GameState, player Player) float64 {
	score, _ := terminalRank(state, player)
	return score
}

// Weights are the coefficients of the four motifs counted by FeatureRanker.
type Weights struct {
	Window float64 `yaml:"window" validate:"gte=0"` // x..x
	Triad  float64 `yaml:"triad" validate:"gte=0"`  // xx over x
	Slot   float64 `yaml:"slot" validate:"gte=0"`   // x.x
	Double float64 `yaml:"double" validate:"gte=0"` // xx.
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Window + w.Triad + w.Slot + w.Double
}

// Normalize scales the weights so they sum to 1.
func (w *Weights) Normalize() error {
	if w.Window < 0 || w.Triad < 0 || w.Slot < 0 || w.Double < 0 {
		return fmt.Errorf("normalize %+v: %w", *w, ErrNegativeWeight)
	}
	total := w.Sum()
	if math.Abs(total) < 1e-9 {
		return fmt.Errorf("normalize %+v: %w", *w, ErrDegenerateWeights)
	}
	w.Window /= total
	w.Triad /= total
	w.Slot /= total
	w.Double /= total
	return nil
}

// FeatureRanker scores a position by counting small shapes among a player's
// stones. Finished games score like NullRanker.
type FeatureRanker struct {
	Weights Weights
}

// NewFeatureRanker returns a ranker with normalized weights.
func NewFeatureRanker(w Weights) (*FeatureRanker, error) {
	if err := w.Normalize(); err != nil {
		return nil, err
	}
	return &FeatureRanker{Weights: w}, nil
}

func (f *FeatureRanker) Rank(state *GameState, player Player) float64 {
	if score, over := terminalRank(state, player); over {
		return score
	}
	return f.Weights.Triad*float64(CountTriads(state, player)) +
		f.Weights.Window*float64(CountWindows(state, player)) +
		f.Weights.Slot*float64(CountSlots(state, player)) +
		f.Weights.Double*float64(CountDoubles(state, player))
}

// Each shape is matched from every stone of the player, so shapes that look
// the same from both ends are divided out or matched in one half of the
// directions only.
var (
	inwardDirections  = []hex.Direction{hex.East, hex.NorthEast, hex.NorthWest}
	outwardDirections = []hex.Direction{hex.West, hex.SouthWest, hex.SouthEast}
	allDirections     = []hex.Direction{hex.East, hex.NorthEast, hex.NorthWest, hex.West, hex.SouthWest, hex.SouthEast}
)

// CountTriads counts pairs of adjacent neighbors owned by player around each
// of player's stones, halved.
func CountTriads(state *GameState, player Player) int {
	return countGeneric(state, player, 2, func(b *hex.Map[Player], c hex.Cell) int {
		n := 0
		for d := hex.Direction(0); d < hex.NumDirections; d++ {
			if owns(b, c.Neighbor(d), player) && owns(b, c.Neighbor(d+1), player) {
				n++
			}
		}
		return n
	})
}

// CountWindows counts stones followed by two empty cells and another stone
// of player.
func CountWindows(state *GameState, player Player) int {
	return countGeneric(state, player, 1, func(b *hex.Map[Player], c hex.Cell) int {
		n := 0
		for _, d := range outwardDirections {
			if matchRay(b, c, d, empty, empty, player) {
				n++
			}
		}
		return n
	})
}

// CountSlots counts stones followed by one empty cell and another stone of
// player.
func CountSlots(state *GameState, player Player) int {
	return countGeneric(state, player, 1, func(b *hex.Map[Player], c hex.Cell) int {
		n := 0
		for _, d := range inwardDirections {
			if matchRay(b, c, d, empty, player) {
				n++
			}
		}
		return n
	})
}

// CountDoubles counts pairs of player's stones followed by an empty cell.
func CountDoubles(state *GameState, player Player) int {
	return countGeneric(state, player, 1, func(b *hex.Map[Player], c hex.Cell) int {
		n := 0
		for _, d := range allDirections {
			if matchRay(b, c, d, player, empty) {
				n++
			}
		}
		return n
	})
}

func countGeneric(state *GameState, player Player, div int, f func(*hex.Map[Player], hex.Cell) int) int {
	b := state.Board()
	acc := 0
	for _, c := range b.Occupied() {
		if owns(b, c, player) {
			acc += f(b, c)
		}
	}
	return acc / div
}

// empty marks a pattern slot that must be an unoccupied on-board cell.
const empty Player = -1

// matchRay walks from c in direction d and checks each following cell
// against pattern, where the player value stands for one of its stones.
func matchRay(b *hex.Map[Player], c hex.Cell, d hex.Direction, pattern ...Player) bool {
	next := c
	for _, want := range pattern {
		next = next.Neighbor(d)
		if want == empty {
			if !b.IsEmpty(next) {
				return false
			}
		} else if !owns(b, next, want) {
			return false
		}
	}
	return true
}

func owns(b *hex.Map[Player], c hex.Cell, p Player) bool {
	owner, ok := b.Get(c)
	return ok && owner == p
}
