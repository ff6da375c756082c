package experiments

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"hexgame/engine"
	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/hex"
	"hexgame/meta"
	"hexgame/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Build constructs a fresh AI for one game.
type Build func(seed uint64, opts ...searcher.Option) (searcher.AI, error)

type Agent struct {
	metrics.AgentConfig
	Build Build
}

// Experiment plays every matchup Games times. The first agent of a matchup
// plays red in even games and green in odd ones.
type Experiment struct {
	Name       string
	Agents     []Agent
	MatchUps   [][2]int // pairs of AgentConfig.ID
	Games      int
	Goroutines int
	Seed       uint64
	Radius     int // meta.BOARD_RADIUS when zero

	// OutputDir receives the CSV files when set.
	OutputDir  string
	Prometheus *metrics.Prometheus
}

type Tally struct {
	Wins       int
	Losses     int
	Draws      int
	Unfinished int
}

func (t Tally) Games() int {
	return t.Wins + t.Losses + t.Draws + t.Unfinished
}

type Results struct {
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Summary map[int]Tally // by AgentConfig.ID
	Dir     string        // where the CSV files were written, if anywhere
}

var (
	ErrNoGames       = errors.New("experiment needs at least one game per matchup")
	ErrUnknownAgent  = errors.New("unknown agent")
	ErrDuplicateID   = errors.New("duplicate agent id")
	ErrMissingBuild  = errors.New("agent has no build function")
	ErrNegativeBoard = errors.New("board radius must not be negative")
)

type job struct {
	matchup int
	game    int
	red     Agent
	green   Agent
	seed    uint64
}

// Run plays the experiment and returns every game and move record. Games run
// concurrently on up to exp.Goroutines goroutines.
func Run(ctx context.Context, exp Experiment) (*Results, error) {
	agents, err := exp.index()
	if err != nil {
		return nil, err
	}
	radius := exp.Radius
	if radius == 0 {
		radius = meta.BOARD_RADIUS
	}
	grid := hex.NewGrid(radius)

	rng := rand.New(rand.NewSource(exp.Seed))
	jobs := make([]job, 0, len(exp.MatchUps)*exp.Games)
	for mi, matchup := range exp.MatchUps {
		a, b := agents[matchup[0]], agents[matchup[1]]
		for i := range exp.Games {
			j := job{matchup: mi, game: i, red: a, green: b, seed: rng.Uint64()}
			if i%2 == 1 {
				j.red, j.green = b, a
			}
			jobs = append(jobs, j)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", exp.Name, len(jobs))

	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveRecords := make([][]metrics.MoveRecord, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Goroutines, 1))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, moves, err := exp.play(grid, j)
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", j.matchup+1, j.game+1, err)
			}
			gameRecords[i], moveRecords[i] = record, moves
			log.Info().Msgf("completed matchup %d of %d game %d of %d with result: %s",
				j.matchup+1, len(exp.MatchUps), j.game+1, exp.Games, record.Result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	results := &Results{
		Games:   gameRecords,
		Summary: summarize(gameRecords),
	}
	for _, moves := range moveRecords {
		results.Moves = append(results.Moves, moves...)
	}

	if exp.OutputDir != "" {
		dir, err := exp.store(results)
		if err != nil {
			return nil, err
		}
		results.Dir = dir
	}
	return results, nil
}

func (exp Experiment) index() (map[int]Agent, error) {
	if exp.Games < 1 {
		return nil, ErrNoGames
	}
	if exp.Radius < 0 {
		return nil, ErrNegativeBoard
	}
	agents := make(map[int]Agent, len(exp.Agents))
	for _, a := range exp.Agents {
		if _, ok := agents[a.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, a.ID)
		}
		if a.Build == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingBuild, a.Name)
		}
		agents[a.ID] = a
	}
	for _, matchup := range exp.MatchUps {
		for _, id := range matchup {
			if _, ok := agents[id]; !ok {
				return nil, fmt.Errorf("%w: %d", ErrUnknownAgent, id)
			}
		}
	}
	return agents, nil
}

// play runs a single game with freshly built agents.
func (exp Experiment) play(grid *hex.Grid, j job) (metrics.GameRecord, []metrics.MoveRecord, error) {
	red, err := j.red.Build(j.seed, exp.searchOptions()...)
	if err != nil {
		return metrics.GameRecord{}, nil, fmt.Errorf("failed to build %s: %w", j.red.Name, err)
	}
	green, err := j.green.Build(j.seed+1, exp.searchOptions()...)
	if err != nil {
		return metrics.GameRecord{}, nil, fmt.Errorf("failed to build %s: %w", j.green.Name, err)
	}

	e := engine.LocalEngine(
		[2]searcher.AI{red, green},
		game.NewGameStateWithGrid(grid),
		engine.WithPrometheus(exp.Prometheus),
	)
	_, gameMetric, moveMetrics := e.Run()

	record := metrics.GameRecord{
		ID:         uuid.NewString(),
		Agent1:     j.red.ID,
		Agent2:     j.green.ID,
		GameMetric: gameMetric,
	}
	moves := make([]metrics.MoveRecord, 0, len(moveMetrics))
	for _, mm := range moveMetrics {
		moves = append(moves, metrics.MoveRecord{Game: record.ID, MoveMetric: mm})
	}
	return record, moves, nil
}

// searchOptions gives every AI its own collector.
func (exp Experiment) searchOptions() []searcher.Option {
	if exp.Prometheus != nil {
		return []searcher.Option{searcher.WithMetrics(exp.Prometheus.Collector())}
	}
	return []searcher.Option{searcher.WithMetrics(metrics.NewCollector())}
}

// summarize tallies results per agent. In a mirror match the agent is
// credited once for each side.
func summarize(records []metrics.GameRecord) map[int]Tally {
	summary := make(map[int]Tally)
	add := func(id int, f func(*Tally)) {
		t := summary[id]
		f(&t)
		summary[id] = t
	}
	win := func(t *Tally) { t.Wins++ }
	loss := func(t *Tally) { t.Losses++ }

	for _, record := range records {
		switch result := record.Result; {
		case result.Status == game.Decided && result.Winner == game.First:
			add(record.Agent1, win)
			add(record.Agent2, loss)
		case result.Status == game.Decided:
			add(record.Agent1, loss)
			add(record.Agent2, win)
		case result.Status == game.Drawn:
			add(record.Agent1, func(t *Tally) { t.Draws++ })
			add(record.Agent2, func(t *Tally) { t.Draws++ })
		default:
			add(record.Agent1, func(t *Tally) { t.Unfinished++ })
			add(record.Agent2, func(t *Tally) { t.Unfinished++ })
		}
	}
	return summary
}

func (exp Experiment) store(results *Results) (string, error) {
	writer, err := metrics.NewWriter(exp.OutputDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := make([]metrics.AgentConfig, 0, len(exp.Agents))
	for _, a := range exp.Agents {
		configs = append(configs, a.AgentConfig)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(results.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
