package engine

import (
	"fmt"
	"time"

	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/hex"
	"hexgame/meta"
	"hexgame/searcher"

	"github.com/rs/zerolog/log"
)

// Local plays two in-process agents against each other. agents[game.First]
// plays red.
type Local struct {
	state    *game.GameState
	agents   [2]searcher.AI
	maxTurns int
	observer func(Update)
	prom     *metrics.Prometheus
}

var _ Engine = (*Local)(nil)

type Option func(*Local)

// WithObserver registers fn to be called after every applied move. The state
// passed to fn must not be modified.
func WithObserver(fn func(Update)) Option {
	return func(e *Local) {
		e.observer = fn
	}
}

func WithMaxTurns(n int) Option {
	return func(e *Local) {
		e.maxTurns = n
	}
}

// WithPrometheus reports every finished game to p. A nil p is ignored.
func WithPrometheus(p *metrics.Prometheus) Option {
	return func(e *Local) {
		e.prom = p
	}
}

// searchAI is implemented by agents that report search metrics.
type searchAI interface {
	searcher.AI
	Search(state *game.GameState, player game.Player, depth int) searcher.Result
	Depth() int
}

// LocalEngine returns an engine that plays on state in place.
func LocalEngine(agents [2]searcher.AI, state *game.GameState, opts ...Option) *Local {
	for i, agent := range agents {
		if agent == nil {
			panic(fmt.Sprintf("agent for %s is nil", game.Player(i)))
		}
	}

	e := &Local{
		state:    state,
		agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Local) State() *game.GameState {
	return e.state
}

// Run executes the game loop until the game is over or the turn limit is hit.
func (e *Local) Run() (game.MoveResult, metrics.GameMetric, []metrics.MoveMetric) {
	starting := e.state.CurrentPlayer()
	startTime := time.Now()
	log.Debug().Msgf("%s is starting", starting)

	result := e.state.TerminalStatus()
	var moveMetrics []metrics.MoveMetric
	for turn := 1; !result.IsOver() && turn <= e.maxTurns; turn++ {
		player := e.state.CurrentPlayer()
		agent := e.agents[player]

		var move hex.Cell
		var search metrics.SearchMetric
		if s, ok := agent.(searchAI); ok {
			r := s.Search(e.state, player, s.Depth())
			move, search = r.Move, r.Metric
		} else {
			start := time.Now()
			move = agent.Choose(e.state, player)
			search.Duration = time.Since(start)
		}

		result = e.state.ApplyMove(move)
		if result.Status == game.Rejected {
			panic(fmt.Sprintf("%s agent chose illegal move %s", player, move))
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         move,
			SearchMetric: search,
		})
		if e.observer != nil {
			e.observer(Update{Step: turn, Player: player, Move: move, Result: result, State: e.state})
		}
	}

	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: starting,
		Result:         result,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     len(moveMetrics),
	}

	if result.IsOver() {
		log.Debug().Msgf("game over after %d moves: %s", len(moveMetrics), result)
	} else {
		log.Warn().Msgf("stopped after %d turns without a result", e.maxTurns)
	}
	if e.prom != nil {
		e.prom.ObserveGame(gameMetric)
	}

	return result, gameMetric, moveMetrics
}
