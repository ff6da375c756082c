package searcher

import (
	"hexgame/hex"

	"golang.org/x/exp/rand"
)

// selector remembers the best move offered so far. A strictly better score
// always wins. An equal score replaces the held move with probability p,
// where p starts at 1/2 for each new best value and halves after every tie.
type selector struct {
	rng   *rand.Rand
	best  Score
	move  hex.Cell
	found bool
	p     float64
}

func newSelector(rng *rand.Rand) *selector {
	return &selector{rng: rng, best: minScore, p: 0.5}
}

// offer considers move with the given score and reports whether it is now
// the held move.
func (s *selector) offer(move hex.Cell, score Score) bool {
	switch c := score.Compare(s.best); {
	case !s.found || c > 0:
		s.best, s.move, s.found = score, move, true
		s.p = 0.5
		return true
	case c == 0:
		replace := s.rng.Float64() < s.p
		s.p /= 2
		if replace {
			s.move = move
		}
		return replace
	}
	return false
}
