package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/searcher"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func randomAgent(id int) Agent {
	return Agent{
		AgentConfig: metrics.AgentConfig{ID: id, Name: "random", Kind: "random"},
		Build: func(seed uint64, _ ...searcher.Option) (searcher.AI, error) {
			return searcher.NewRandomAI(seed), nil
		},
	}
}

func nullAgent(id, depth int) Agent {
	return Agent{
		AgentConfig: metrics.AgentConfig{ID: id, Name: "null", Kind: "null", Depth: depth},
		Build: func(seed uint64, opts ...searcher.Option) (searcher.AI, error) {
			opts = append(opts, searcher.WithSeed(seed))
			return searcher.NewRankerAI(game.NullRanker{}, depth, opts...), nil
		},
	}
}

func smallExperiment() Experiment {
	return Experiment{
		Name:       "test",
		Agents:     []Agent{randomAgent(1), nullAgent(2, 1)},
		MatchUps:   [][2]int{{1, 2}},
		Games:      4,
		Goroutines: 2,
		Seed:       9,
		Radius:     2,
	}
}

func TestRun(t *testing.T) {
	t.Run("plays every game and alternates colors", func(t *testing.T) {
		results, err := Run(context.Background(), smallExperiment())
		require.NoError(t, err)
		require.Len(t, results.Games, 4)

		ids := make(map[string]bool)
		for i, record := range results.Games {
			ids[record.ID] = true
			if i%2 == 0 {
				require.Equal(t, [2]int{1, 2}, [2]int{record.Agent1, record.Agent2})
			} else {
				require.Equal(t, [2]int{2, 1}, [2]int{record.Agent1, record.Agent2})
			}
			require.True(t, record.Result.IsOver())
		}
		require.Len(t, ids, 4, "game ids are unique")

		total := 0
		for _, record := range results.Games {
			total += record.TotalMoves
		}
		require.Len(t, results.Moves, total)
		for _, move := range results.Moves {
			require.True(t, ids[move.Game])
		}

		for _, id := range []int{1, 2} {
			require.Equal(t, 4, results.Summary[id].Games())
		}
		require.Equal(t, results.Summary[1].Wins, results.Summary[2].Losses)
		require.Equal(t, results.Summary[1].Draws, results.Summary[2].Draws)
		require.Empty(t, results.Dir)
	})

	t.Run("same seed gives the same games", func(t *testing.T) {
		exp := smallExperiment()
		exp.Agents = []Agent{nullAgent(1, 1), nullAgent(2, 2)}
		a, err := Run(context.Background(), exp)
		require.NoError(t, err)
		b, err := Run(context.Background(), exp)
		require.NoError(t, err)

		require.Equal(t, len(a.Moves), len(b.Moves))
		for i := range a.Moves {
			require.Equal(t, a.Moves[i].Move, b.Moves[i].Move)
		}
	})

	t.Run("writes csv files", func(t *testing.T) {
		exp := smallExperiment()
		exp.OutputDir = t.TempDir()
		results, err := Run(context.Background(), exp)
		require.NoError(t, err)
		require.NotEmpty(t, results.Dir)
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			_, err := os.Stat(filepath.Join(results.Dir, file))
			require.NoError(t, err, file)
		}
	})

	t.Run("reports to prometheus", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		exp := smallExperiment()
		exp.Prometheus = metrics.NewPrometheus(reg)
		_, err := Run(context.Background(), exp)
		require.NoError(t, err)

		families, err := reg.Gather()
		require.NoError(t, err)
		counts := make(map[string]float64)
		for _, f := range families {
			for _, m := range f.GetMetric() {
				counts[f.GetName()] += m.GetCounter().GetValue()
			}
		}
		require.Equal(t, 4.0, counts["hexgame_games_total"])
		require.Positive(t, counts["hexgame_searches_total"])
	})

	t.Run("rejects bad experiments", func(t *testing.T) {
		exp := smallExperiment()
		exp.Games = 0
		_, err := Run(context.Background(), exp)
		require.ErrorIs(t, err, ErrNoGames)

		exp = smallExperiment()
		exp.MatchUps = [][2]int{{1, 3}}
		_, err = Run(context.Background(), exp)
		require.ErrorIs(t, err, ErrUnknownAgent)

		exp = smallExperiment()
		exp.Agents = append(exp.Agents, randomAgent(1))
		_, err = Run(context.Background(), exp)
		require.ErrorIs(t, err, ErrDuplicateID)

		exp = smallExperiment()
		exp.Agents[0].Build = nil
		_, err = Run(context.Background(), exp)
		require.ErrorIs(t, err, ErrMissingBuild)
	})

	t.Run("build errors are returned", func(t *testing.T) {
		boom := os.ErrInvalid
		exp := smallExperiment()
		exp.Agents[1].Build = func(uint64, ...searcher.Option) (searcher.AI, error) { return nil, boom }
		_, err := Run(context.Background(), exp)
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled context stops the experiment", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, smallExperiment())
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSummarize(t *testing.T) {
	records := []metrics.GameRecord{
		{Agent1: 1, Agent2: 2, GameMetric: metrics.GameMetric{Result: game.Decision(game.First)}},
		{Agent1: 2, Agent2: 1, GameMetric: metrics.GameMetric{Result: game.Decision(game.First)}},
		{Agent1: 1, Agent2: 2, GameMetric: metrics.GameMetric{Result: game.MoveResult{Status: game.Drawn}}},
		{Agent1: 1, Agent2: 2, GameMetric: metrics.GameMetric{Result: game.MoveResult{Status: game.Accepted}}},
		{Agent1: 3, Agent2: 3, GameMetric: metrics.GameMetric{Result: game.Decision(game.Second)}},
	}
	summary := summarize(records)
	require.Equal(t, Tally{Wins: 1, Losses: 1, Draws: 1, Unfinished: 1}, summary[1])
	require.Equal(t, Tally{Wins: 1, Losses: 1, Draws: 1, Unfinished: 1}, summary[2])
	require.Equal(t, Tally{Wins: 1, Losses: 1}, summary[3])
}
