package searcher

import (
	"fmt"
	"math"
)

// Score is a position value from the mover's point of view. Depth breaks
// ties between equal values: a decided position found with more search depth
// remaining carries a larger magnitude, so wins close to the root beat
// distant ones and losses are pushed as far out as possible. Scores compare
// lexicographically, Value first.
type Score struct {
	Value float64
	Depth int
}

var (
	maxScore = Score{Value: math.Inf(1), Depth: math.MaxInt}
	minScore = Score{Value: math.Inf(-1), Depth: -math.MaxInt}
)

// leafScore attaches the depth tie-break to an evaluated position. The
// tie-break takes the sign of the value so it survives negation.
func leafScore(value float64, depth int) Score {
	switch {
	case value > 0:
		return Score{Value: value, Depth: depth}
	case value < 0:
		return Score{Value: value, Depth: -depth}
	}
	return Score{Value: value}
}

// Neg returns the score from the opponent's point of view.
func (s Score) Neg() Score {
	return Score{Value: -s.Value, Depth: -s.Depth}
}

// Compare returns -1, 0 or 1 as s is worse than, equal to or better than o.
func (s Score) Compare(o Score) int {
	switch {
	case s.Value < o.Value:
		return -1
	case s.Value > o.Value:
		return 1
	case s.Depth < o.Depth:
		return -1
	case s.Depth > o.Depth:
		return 1
	}
	return 0
}

func (s Score) Less(o Score) bool    { return s.Compare(o) < 0 }
func (s Score) Greater(o Score) bool { return s.Compare(o) > 0 }

// next returns the smallest score strictly above s.
func (s Score) next() Score {
	if s.Depth == math.MaxInt {
		return s
	}
	return Score{Value: s.Value, Depth: s.Depth + 1}
}

func (s Score) String() string {
	return fmt.Sprintf("%.4g/%d", s.Value, s.Depth)
}
