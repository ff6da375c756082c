package searcher

import (
	"hexgame/experiments/metrics"

	"golang.org/x/exp/rand"
)

type Option func(*RankerAI)

// WithRand sets the source used to break ties between equally scored moves.
func WithRand(rng *rand.Rand) Option {
	return func(r *RankerAI) {
		r.rng = rng
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithMetrics(c metrics.Collector) Option {
	return func(r *RankerAI) {
		r.metrics = c
	}
}

// WithName sets the ranker label reported in search metrics.
func WithName(name string) Option {
	return func(r *RankerAI) {
		r.name = name
	}
}
