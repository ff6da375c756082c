package config

import (
	"errors"
	"fmt"
	"os"

	"hexgame/experiments"
	"hexgame/experiments/metrics"
	"hexgame/game"
	"hexgame/meta"
	"hexgame/searcher"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var cfgFile = "hexgame/config.yaml"

const (
	KindFeature = "feature"
	KindNull    = "null"
	KindRandom  = "random"
)

var ErrInvalid = errors.New("invalid config")

type Agent struct {
	Name    string       `yaml:"name" validate:"required"`
	Kind    string       `yaml:"kind" validate:"required,oneof=feature null random"`
	Depth   int          `yaml:"depth" validate:"gte=0,lte=8"`
	Weights game.Weights `yaml:"weights"`
}

type Play struct {
	Red   string `yaml:"red" validate:"required"`
	Green string `yaml:"green" validate:"required"`
}

type Tournament struct {
	Games      int        `yaml:"games" validate:"gte=1"`
	Goroutines int        `yaml:"goroutines" validate:"gte=1"`
	OutputDir  string     `yaml:"output_dir"`
	MatchUps   [][]string `yaml:"matchups" validate:"dive,len=2,dive,required"`
}

type Config struct {
	BoardRadius int        `yaml:"board_radius" validate:"gte=1,lte=8"`
	Seed        uint64     `yaml:"seed"`
	LogLevel    string     `yaml:"log_level" validate:"oneof=trace debug info warn error disabled"`
	Agents      []Agent    `yaml:"agents" validate:"required,min=1,dive"`
	Play        Play       `yaml:"play"`
	Tournament  Tournament `yaml:"tournament"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		BoardRadius: meta.BOARD_RADIUS,
		Seed:        1,
		LogLevel:    "info",
		Agents: []Agent{
			{Name: "feature", Kind: KindFeature, Depth: meta.SEARCH_DEPTH, Weights: game.Weights{Window: 2, Triad: 5, Slot: 1, Double: 1}},
			{Name: "null", Kind: KindNull, Depth: meta.SEARCH_DEPTH},
			{Name: "random", Kind: KindRandom},
		},
		Play: Play{Red: "feature", Green: "null"},
		Tournament: Tournament{
			Games:      10,
			Goroutines: 4,
			OutputDir:  "results",
			MatchUps:   [][]string{{"feature", "null"}, {"feature", "random"}},
		},
	}
}

// Load reads the config at path on top of the defaults. An empty path looks
// for hexgame/config.yaml in the XDG config directories and falls back to
// the defaults when there is none.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err != nil {
			log.Debug().Msgf("no %s found, using defaults", cfgFile)
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Msgf("loaded config from %s", path)
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	names := make(map[string]bool, len(c.Agents))
	for _, a := range c.Agents {
		if names[a.Name] {
			return fmt.Errorf("%w: agent %q is defined twice", ErrInvalid, a.Name)
		}
		names[a.Name] = true
		if a.Kind == KindFeature {
			w := a.Weights
			if err := w.Normalize(); err != nil {
				return fmt.Errorf("%w: agent %q: %w", ErrInvalid, a.Name, err)
			}
		}
	}

	refs := []string{c.Play.Red, c.Play.Green}
	for _, matchup := range c.Tournament.MatchUps {
		refs = append(refs, matchup...)
	}
	for _, name := range refs {
		if !names[name] {
			return fmt.Errorf("%w: unknown agent %q", ErrInvalid, name)
		}
	}
	return nil
}

// Level returns the configured log level, info if it does not parse.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) Agent(name string) (*Agent, bool) {
	for i := range c.Agents {
		if c.Agents[i].Name == name {
			return &c.Agents[i], true
		}
	}
	return nil, false
}

// Build returns the AI described by a. opts only apply to searching agents.
func (a *Agent) Build(seed uint64, opts ...searcher.Option) (searcher.AI, error) {
	var ranker game.Ranker
	switch a.Kind {
	case KindRandom:
		return searcher.NewRandomAI(seed), nil
	case KindNull:
		ranker = game.NullRanker{}
	case KindFeature:
		r, err := game.NewFeatureRanker(a.Weights)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", a.Name, err)
		}
		ranker = r
	default:
		return nil, fmt.Errorf("%w: agent %q has unknown kind %q", ErrInvalid, a.Name, a.Kind)
	}

	opts = append([]searcher.Option{searcher.WithSeed(seed)}, opts...)
	return searcher.NewRankerAI(ranker, a.Depth, opts...), nil
}

// Experiment turns the tournament section into an experiment. Agents are
// numbered from 1 in the order they are defined.
func (c *Config) Experiment(name string) (experiments.Experiment, error) {
	ids := make(map[string]int, len(c.Agents))
	agents := make([]experiments.Agent, 0, len(c.Agents))
	for i := range c.Agents {
		a := &c.Agents[i]
		ids[a.Name] = i + 1
		agents = append(agents, experiments.Agent{
			AgentConfig: metrics.AgentConfig{
				ID:      i + 1,
				Name:    a.Name,
				Kind:    a.Kind,
				Depth:   a.Depth,
				Weights: a.Weights,
			},
			Build: a.Build,
		})
	}

	matchUps := make([][2]int, 0, len(c.Tournament.MatchUps))
	for _, m := range c.Tournament.MatchUps {
		if len(m) != 2 {
			return experiments.Experiment{}, fmt.Errorf("%w: matchup %v needs two agents", ErrInvalid, m)
		}
		a, okA := ids[m[0]]
		b, okB := ids[m[1]]
		if !okA || !okB {
			return experiments.Experiment{}, fmt.Errorf("%w: matchup %v names an unknown agent", ErrInvalid, m)
		}
		matchUps = append(matchUps, [2]int{a, b})
	}

	return experiments.Experiment{
		Name:       name,
		Agents:     agents,
		MatchUps:   matchUps,
		Games:      c.Tournament.Games,
		Goroutines: c.Tournament.Goroutines,
		Seed:       c.Seed,
		Radius:     c.BoardRadius,
		OutputDir:  c.Tournament.OutputDir,
	}, nil
}
