package metrics

import (
	"sync/atomic"
	"time"

	"hexgame/game"
	"hexgame/hex"
)

type SearchMetric struct {
	Ranker   string
	Depth    int
	Duration time.Duration
	Nodes    int
	Leaves   int
	Cutoffs  int
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   hex.Cell
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Result         game.MoveResult
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Winner returns the winning color, or "" for a draw or an unfinished game.
func (g GameMetric) Winner() string {
	if g.Result.Status != game.Decided {
		return ""
	}
	return g.Result.Winner.String()
}

// Collector accumulates the counters of one search at a time. A collector
// belongs to a single search engine.
type Collector interface {
	Start(ranker string, depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	ranker    string
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(ranker string, depth int) {
	m.startTime = time.Now()
	m.ranker = ranker
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Ranker:   m.ranker,
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Leaves:   int(m.leaves.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(ranker string, depth int) {}
func (m *dummyCollector) AddNode()                       {}
func (m *dummyCollector) AddLeaf()                       {}
func (m *dummyCollector) AddCutoff()                     {}
func (m *dummyCollector) Complete() SearchMetric         { return SearchMetric{} }
