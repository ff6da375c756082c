package metrics

import (
	"strconv"

	"hexgame/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus holds the search and game metrics shared by every engine of a
// process. Per-search counts are kept locally and added when a search
// completes, so the hot path never touches a Prometheus metric.
type Prometheus struct {
	searches *prometheus.CounterVec
	nodes    *prometheus.CounterVec
	leaves   *prometheus.CounterVec
	cutoffs  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	games    *prometheus.CounterVec
	moves    prometheus.Histogram
}

func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hexgame_searches_total",
			Help: "Completed searches by ranker",
		}, []string{"ranker"}),
		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hexgame_search_nodes_total",
			Help: "Interior nodes expanded by the search",
		}, []string{"ranker"}),
		leaves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hexgame_search_leaves_total",
			Help: "Leaf positions scored by a ranker",
		}, []string{"ranker"}),
		cutoffs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hexgame_search_cutoffs_total",
			Help: "Beta cutoffs taken by the search",
		}, []string{"ranker"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hexgame_search_duration_seconds",
			Help:    "Wall time of a single search",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"ranker", "depth"}),
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hexgame_games_total",
			Help: "Finished games by outcome",
		}, []string{"outcome"}),
		moves: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexgame_game_moves",
			Help:    "Number of moves per game",
			Buckets: prometheus.LinearBuckets(5, 5, 12),
		}),
	}
}

// Collector returns a new per-engine collector reporting into p.
func (p *Prometheus) Collector() Collector {
	return &promCollector{prom: p, local: &collector{}}
}

// ObserveGame records the outcome and length of a finished game.
func (p *Prometheus) ObserveGame(g GameMetric) {
	outcome := g.Result.Status.String()
	if g.Result.Status == game.Decided {
		outcome = g.Result.Winner.String()
	}
	p.games.WithLabelValues(outcome).Inc()
	p.moves.Observe(float64(g.TotalMoves))
}

type promCollector struct {
	prom  *Prometheus
	local *collector
}

func (c *promCollector) Start(ranker string, depth int) { c.local.Start(ranker, depth) }
func (c *promCollector) AddNode()                       { c.local.AddNode() }
func (c *promCollector) AddLeaf()                       { c.local.AddLeaf() }
func (c *promCollector) AddCutoff()                     { c.local.AddCutoff() }

func (c *promCollector) Complete() SearchMetric {
	m := c.local.Complete()
	c.prom.searches.WithLabelValues(m.Ranker).Inc()
	c.prom.nodes.WithLabelValues(m.Ranker).Add(float64(m.Nodes))
	c.prom.leaves.WithLabelValues(m.Ranker).Add(float64(m.Leaves))
	c.prom.cutoffs.WithLabelValues(m.Ranker).Add(float64(m.Cutoffs))
	c.prom.duration.WithLabelValues(m.Ranker, strconv.Itoa(m.Depth)).Observe(m.Duration.Seconds())
	return m
}
