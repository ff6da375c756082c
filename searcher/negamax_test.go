package searcher

import (
	"testing"

	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/hex"

	"github.com/stretchr/testify/require"
)

func cell(q, r int) hex.Cell {
	return hex.Cell{Q: q, R: r}
}

func newState(t *testing.T, moves ...hex.Cell) *game.GameState {
	t.Helper()
	return playOn(t, game.NewGameState(), moves...)
}

func playOn(t *testing.T, gs *game.GameState, moves ...hex.Cell) *game.GameState {
	t.Helper()
	for _, c := range moves {
		result := gs.ApplyMove(c)
		require.Equal(t, game.Accepted, result.Status, "move %s", c)
	}
	return gs
}

func featureRanker(t *testing.T) *game.FeatureRanker {
	t.Helper()
	r, err := game.NewFeatureRanker(game.Weights{Window: 2, Triad: 5, Slot: 1, Double: 1})
	require.NoError(t, err)
	return r
}

func rankers(t *testing.T) map[string]game.Ranker {
	return map[string]game.Ranker{
		"null":    game.NullRanker{},
		"feature": featureRanker(t),
	}
}

// Red holds (-2,0), (-1,0) and (1,0) and wins by filling (0,0).
func redToWin(t *testing.T) *game.GameState {
	return newState(t,
		cell(-2, 0), cell(-4, 4),
		cell(-1, 0), cell(4, -4),
		cell(1, 0), cell(0, -4),
	)
}

func TestSearch(t *testing.T) {
	for name, ranker := range rankers(t) {
		t.Run(name+"/takes an immediate win", func(t *testing.T) {
			gs := redToWin(t)
			ai := NewRankerAI(ranker, 1, WithSeed(1))
			result := ai.Search(gs, game.First, 1)
			require.Equal(t, cell(0, 0), result.Move)
			require.Equal(t, Score{Value: 2000}, result.Score)
		})

		t.Run(name+"/prefers the win closest to the root", func(t *testing.T) {
			gs := redToWin(t)
			ai := NewRankerAI(ranker, 3, WithSeed(1))
			result := ai.Search(gs, game.First, 3)
			require.Equal(t, cell(0, 0), result.Move)
			require.Equal(t, Score{Value: 2000, Depth: 2}, result.Score)
		})

		t.Run(name+"/blocks the opponent's winning cell", func(t *testing.T) {
			// Green threatens (0,2) after (-2,2), (-1,2) and (1,2).
			gs := newState(t,
				cell(-4, 0), cell(-2, 2),
				cell(4, -4), cell(-1, 2),
				cell(0, -4), cell(1, 2),
			)
			ai := NewRankerAI(ranker, 2, WithSeed(7))
			require.Equal(t, cell(0, 2), ai.Choose(gs, game.First))
		})
	}

	t.Run("never completes a losing three at depth one", func(t *testing.T) {
		gs := newState(t, cell(0, 0), cell(-4, 4), cell(1, 0), cell(4, -4))
		for seed := range uint64(20) {
			ai := NewRankerAI(game.NullRanker{}, 1, WithSeed(seed))
			move := ai.Choose(gs, game.First)
			require.NotContains(t, []hex.Cell{cell(-1, 0), cell(2, 0)}, move)
		}
	})

	t.Run("does not modify the caller's state", func(t *testing.T) {
		gs := redToWin(t)
		before := gs.Copy()
		NewRankerAI(featureRanker(t), 2, WithSeed(1)).Choose(gs, game.First)
		require.Equal(t, before, gs)
	})

	t.Run("records metrics", func(t *testing.T) {
		gs := newState(t, cell(0, 0), cell(1, 1))
		ai := NewRankerAI(featureRanker(t), 2, WithSeed(1), WithMetrics(metrics.NewCollector()))
		m := ai.Search(gs, game.First, 2).Metric
		require.Equal(t, "feature", m.Ranker)
		require.Equal(t, 2, m.Depth)
		require.Positive(t, m.Nodes)
		require.Positive(t, m.Leaves)
		require.GreaterOrEqual(t, m.Leaves, m.Nodes)
	})
}

func TestNewRankerAI(t *testing.T) {
	t.Run("depth is at least one", func(t *testing.T) {
		require.Equal(t, 1, NewRankerAI(game.NullRanker{}, 0).Depth())
		require.Equal(t, 1, NewRankerAI(game.NullRanker{}, -3).Depth())
		require.Equal(t, 4, NewRankerAI(game.NullRanker{}, 4).Depth())
	})

	t.Run("names", func(t *testing.T) {
		require.Equal(t, "null", NewRankerAI(game.NullRanker{}, 1).Name())
		require.Equal(t, "feature", NewRankerAI(featureRanker(t), 1).Name())
		require.Equal(t, "custom", NewRankerAI(game.NullRanker{}, 1, WithName("custom")).Name())
	})

	t.Run("panics on misuse", func(t *testing.T) {
		ai := NewRankerAI(game.NullRanker{}, 1, WithSeed(1))
		require.Panics(t, func() { ai.Choose(game.NewGameState(), game.Second) })

		over := redToWin(t)
		require.Equal(t, game.Decided, over.ApplyMove(cell(0, 0)).Status)
		require.Panics(t, func() { ai.Choose(over, over.CurrentPlayer()) })
	})
}

func TestTieBreak(t *testing.T) {
	grid := hex.NewGrid(1)

	t.Run("same seed gives the same moves", func(t *testing.T) {
		a := NewRankerAI(game.NullRanker{}, 1, WithSeed(42))
		b := NewRankerAI(game.NullRanker{}, 1, WithSeed(42))
		for range 10 {
			gs := game.NewGameStateWithGrid(grid)
			require.Equal(t, a.Choose(gs, game.First), b.Choose(gs, game.First))
		}
	})

	t.Run("equal moves are spread across seeds", func(t *testing.T) {
		seen := make(map[hex.Cell]bool)
		for seed := range uint64(50) {
			gs := game.NewGameStateWithGrid(grid)
			seen[NewRankerAI(game.NullRanker{}, 1, WithSeed(seed)).Choose(gs, game.First)] = true
		}
		require.Greater(t, len(seen), 1)
	})
}

// minimax is an unpruned reference search.
func minimax(ai *RankerAI, gs *game.GameState, depth int) Score {
	if depth == 0 || gs.IsOver() {
		return ai.evaluate(gs, depth)
	}
	best := minScore
	for _, move := range gs.LegalMoves() {
		child, _ := gs.Play(move)
		if score := minimax(ai, child, depth-1).Neg(); score.Greater(best) {
			best = score
		}
	}
	return best
}

func TestPruningMatchesMinimax(t *testing.T) {
	const depth = 3
	grid := hex.NewGrid(2)

	for seed := range uint64(6) {
		opener := NewRandomAI(seed)
		gs := game.NewGameStateWithGrid(grid)
		for range 4 {
			if gs.IsOver() {
				break
			}
			gs.ApplyMove(opener.Choose(gs, gs.CurrentPlayer()))
		}
		if gs.IsOver() {
			continue
		}

		ai := NewRankerAI(featureRanker(t), depth, WithSeed(seed))
		player := gs.CurrentPlayer()

		best := minScore
		reference := make(map[hex.Cell]Score)
		for _, move := range gs.LegalMoves() {
			child, _ := gs.Play(move)
			reference[move] = minimax(ai, child, depth-1).Neg()
			if reference[move].Greater(best) {
				best = reference[move]
			}
		}

		result := ai.Search(gs, player, depth)
		require.Equal(t, best, result.Score, "seed %d", seed)
		require.Equal(t, best, reference[result.Move], "seed %d", seed)

		for _, ms := range ai.ScoreMoves(gs, player, depth) {
			require.Equal(t, reference[ms.Move], ms.Score, "seed %d move %s", seed, ms.Move)
		}
	}
}

func TestRandomAI(t *testing.T) {
	t.Run("plays legal moves", func(t *testing.T) {
		gs := game.NewGameStateWithGrid(hex.NewGrid(1))
		ai := NewRandomAI(5)
		for !gs.IsOver() {
			move := ai.Choose(gs, gs.CurrentPlayer())
			require.True(t, gs.Board().IsEmpty(move))
			require.NotEqual(t, game.Rejected, gs.ApplyMove(move).Status)
		}
	})

	t.Run("panics on a finished game", func(t *testing.T) {
		gs := game.NewGameStateWithGrid(hex.NewGrid(0))
		gs.ApplyMove(hex.Cell{})
		require.True(t, gs.IsOver())
		require.Panics(t, func() { NewRandomAI(1).Choose(gs, gs.CurrentPlayer()) })
	})
}
