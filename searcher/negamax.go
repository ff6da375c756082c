package searcher

import (
	"fmt"
	"time"

	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/hex"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// RankerAI searches a fixed number of plies with negamax and alpha-beta
// pruning, scoring the leaves with a game.Ranker. Moves that share the best
// score are separated by a randomized tie-break.
type RankerAI struct {
	ranker  game.Ranker
	name    string
	depth   int
	rng     *rand.Rand
	metrics metrics.Collector
}

type Result struct {
	Move   hex.Cell
	Score  Score
	Metric metrics.SearchMetric
}

type MoveScore struct {
	Move  hex.Cell
	Score Score
}

// NewRankerAI returns a searcher of the given depth. Depths below one are
// raised to one.
func NewRankerAI(ranker game.Ranker, depth int, opts ...Option) *RankerAI {
	r := &RankerAI{
		ranker:  ranker,
		name:    rankerName(ranker),
		depth:   max(depth, 1),
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics: metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func rankerName(ranker game.Ranker) string {
	switch ranker.(type) {
	case game.NullRanker, *game.NullRanker:
		return "null"
	case *game.FeatureRanker:
		return "feature"
	}
	return fmt.Sprintf("%T", ranker)
}

func (r *RankerAI) Depth() int {
	return r.depth
}

func (r *RankerAI) Name() string {
	return r.name
}

func (r *RankerAI) Choose(state *game.GameState, player game.Player) hex.Cell {
	return r.Search(state, player, r.depth).Move
}

// Search returns the best move for player found within depth plies. Only the
// strictly best root moves take part in the tie-break; scores of the other
// root moves are upper bounds.
func (r *RankerAI) Search(state *game.GameState, player game.Player, depth int) Result {
	checkTurn(state, player)
	depth = max(depth, 1)

	r.metrics.Start(r.name, depth)
	pick := newSelector(r.rng)
	alpha := minScore
	for _, move := range state.LegalMoves() {
		child := expand(state, move)
		// The window stays open just above alpha so equal moves come back
		// with exact scores.
		score := r.negamax(child, depth-1, minScore, alpha.Neg().next()).Neg()
		pick.offer(move, score)
		if score.Greater(alpha) {
			alpha = score
		}
	}
	metric := r.metrics.Complete()

	log.Debug().
		Str("player", player.String()).
		Str("ranker", r.name).
		Int("depth", depth).
		Stringer("move", pick.move).
		Stringer("score", pick.best).
		Int("nodes", metric.Nodes).
		Int("leaves", metric.Leaves).
		Int("cutoffs", metric.Cutoffs).
		Msg("search complete")

	return Result{Move: pick.move, Score: pick.best, Metric: metric}
}

// ScoreMoves returns the exact score of every legal move for player, in grid
// order.
func (r *RankerAI) ScoreMoves(state *game.GameState, player game.Player, depth int) []MoveScore {
	checkTurn(state, player)
	depth = max(depth, 1)

	r.metrics.Start(r.name, depth)
	defer r.metrics.Complete()

	moves := state.LegalMoves()
	scores := make([]MoveScore, 0, len(moves))
	for _, move := range moves {
		child := expand(state, move)
		scores = append(scores, MoveScore{
			Move:  move,
			Score: r.negamax(child, depth-1, minScore, maxScore).Neg(),
		})
	}
	return scores
}

// negamax scores state for the player to move. The result is fail-soft: a
// score at or below alpha is an upper bound and one at or above beta is a
// lower bound.
func (r *RankerAI) negamax(state *game.GameState, depth int, alpha, beta Score) Score {
	if depth == 0 || state.IsOver() {
		r.metrics.AddLeaf()
		return r.evaluate(state, depth)
	}
	r.metrics.AddNode()

	best := minScore
	for _, move := range state.LegalMoves() {
		child := expand(state, move)
		score := r.negamax(child, depth-1, beta.Neg(), alpha.Neg()).Neg()
		if score.Greater(best) {
			best = score
		}
		if best.Greater(alpha) {
			alpha = best
		}
		if !best.Less(beta) {
			r.metrics.AddCutoff()
			break
		}
	}
	return best
}

func (r *RankerAI) evaluate(state *game.GameState, depth int) Score {
	mover := state.CurrentPlayer()
	value := r.ranker.Rank(state, mover) - r.ranker.Rank(state, mover.Inverse())
	return leafScore(value, depth)
}

func expand(state *game.GameState, move hex.Cell) *game.GameState {
	child, result := state.Play(move)
	if result.Status == game.Rejected {
		panic(fmt.Sprintf("search: legal move %s was rejected", move))
	}
	return child
}

func checkTurn(state *game.GameState, player game.Player) {
	if state.IsOver() {
		panic(fmt.Sprintf("search: game is already over (%s)", state.TerminalStatus()))
	}
	if player != state.CurrentPlayer() {
		panic(fmt.Sprintf("search: %s asked to move but %s is to play", player, state.CurrentPlayer()))
	}
	if len(state.LegalMoves()) == 0 {
		panic("search: no legal moves")
	}
}
