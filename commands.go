package main

import (
	"fmt"
	"sort"
	"strings"

	"hexgame/engine"
	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/hex"
	"hexgame/render"
	"hexgame/searcher"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newPlayCmd(a *app) *cobra.Command {
	var red, green string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game between two configured agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if red != "" {
				a.cfg.Play.Red = red
			}
			if green != "" {
				a.cfg.Play.Green = green
			}

			var agents [2]searcher.AI
			for i, name := range []string{a.cfg.Play.Red, a.cfg.Play.Green} {
				agent, ok := a.cfg.Agent(name)
				if !ok {
					return fmt.Errorf("unknown agent %q", name)
				}
				ai, err := agent.Build(a.cfg.Seed+uint64(i), a.searchOptions()...)
				if err != nil {
					return err
				}
				agents[i] = ai
			}

			out := cmd.OutOrStdout()
			state := game.NewGameStateWithGrid(hex.NewGrid(a.cfg.BoardRadius))
			e := engine.LocalEngine(agents, state,
				engine.WithPrometheus(a.prom),
				engine.WithObserver(func(u engine.Update) {
					if quiet {
						return
					}
					fmt.Fprintf(out, "%d. %s plays %s\n%s\n", u.Step, u.Player, u.Move, render.Board(u.State))
				}),
			)

			result, gameMetric, _ := e.Run()
			fmt.Fprintf(out, "%s after %d moves (%s)\n", render.Result(result), gameMetric.TotalMoves, gameMetric.Duration)
			return nil
		},
	}
	cmd.Flags().StringVar(&red, "red", "", "agent playing red, overrides the config")
	cmd.Flags().StringVar(&green, "green", "", "agent playing green, overrides the config")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the result")
	return cmd
}

func newTournamentCmd(a *app) *cobra.Command {
	var games, goroutines int
	var output string
	cmd := &cobra.Command{
		Use:   "tournament [name]",
		Short: "Play every configured matchup and store the records as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "tournament"
			if len(args) == 1 {
				name = args[0]
			}
			if cmd.Flags().Changed("games") {
				a.cfg.Tournament.Games = games
			}
			if cmd.Flags().Changed("goroutines") {
				a.cfg.Tournament.Goroutines = goroutines
			}
			if cmd.Flags().Changed("output") {
				a.cfg.Tournament.OutputDir = output
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			exp, err := a.cfg.Experiment(name)
			if err != nil {
				return err
			}
			exp.Prometheus = a.prom

			results, err := runExperiment(cmd, exp)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ids := make([]int, 0, len(results.Summary))
			for id := range results.Summary {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			fmt.Fprintf(out, "%-12s %6s %6s %6s %6s\n", "agent", "wins", "losses", "draws", "open")
			for _, id := range ids {
				t := results.Summary[id]
				fmt.Fprintf(out, "%-12s %6d %6d %6d %6d\n", exp.Agents[id-1].Name, t.Wins, t.Losses, t.Draws, t.Unfinished)
			}
			if results.Dir != "" {
				log.Info().Msgf("records written to %s", results.Dir)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&games, "games", "n", 0, "games per matchup")
	cmd.Flags().IntVarP(&goroutines, "goroutines", "j", 0, "games played at once")
	cmd.Flags().StringVarP(&output, "output", "o", "", "directory for the CSV records, empty to skip")
	return cmd
}

func newScoresCmd(a *app) *cobra.Command {
	var agentName string
	var depth int
	cmd := &cobra.Command{
		Use:   "scores [-- q,r ...]",
		Short: "Play the given moves and print the search score of every reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, ok := a.cfg.Agent(agentName)
			if !ok {
				return fmt.Errorf("unknown agent %q", agentName)
			}
			ai, err := agent.Build(a.cfg.Seed, a.searchOptions()...)
			if err != nil {
				return err
			}
			ranker, ok := ai.(*searcher.RankerAI)
			if !ok {
				return fmt.Errorf("agent %q does not search", agentName)
			}
			if depth <= 0 {
				depth = ranker.Depth()
			}

			state := game.NewGameStateWithGrid(hex.NewGrid(a.cfg.BoardRadius))
			for _, arg := range args {
				c, err := hex.ParseCell(arg)
				if err != nil {
					return err
				}
				if result := state.ApplyMove(c); result.Status == game.Rejected {
					return fmt.Errorf("move %s is not legal", c)
				} else if result.IsOver() {
					return fmt.Errorf("game is over after %s: %s", c, result)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, render.Board(state))
			scores := ranker.ScoreMoves(state, state.CurrentPlayer(), depth)
			sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score.Greater(scores[j].Score) })
			var sb strings.Builder
			for _, s := range scores {
				fmt.Fprintf(&sb, "%-8s %s\n", s.Move, s.Score)
			}
			fmt.Fprint(out, sb.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&agentName, "agent", "a", "feature", "searching agent to score with")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "search depth, the agent's depth when zero")
	return cmd
}

func (a *app) searchOptions() []searcher.Option {
	if a.prom != nil {
		return []searcher.Option{searcher.WithMetrics(a.prom.Collector())}
	}
	return []searcher.Option{searcher.WithMetrics(metrics.NewCollector())}
}
