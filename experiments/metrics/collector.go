package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Budget       time.Duration
	MaxDepth     int
	Duration     time.Duration
	Depth        int // Deepest level fully evaluated
	Combinations int
	Pruned       int
	Infeasible   int
	Defects      int
	TimedOut     bool
}

type MoveMetric struct {
	Step    int
	Player  int // Player ID
	Attacks int
	SearchMetric
}

type GameMetric struct {
	ID             string // uuid
	StartingPlayer int    // Player ID
	Winner         int    // Player ID, Neutral when the round limit was hit
	Leader         int    // Player ID with the best resource evaluation at the end
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Rounds         int
}

// AgentConfig describes one side of a matchup.
type AgentConfig struct {
	ID       int
	Kind     string // "planner" or "random"
	Budget   time.Duration
	MaxDepth int
}

type Collector interface {
	Start(budget time.Duration, maxDepth int)
	SetDepth(depth int)
	AddCombination()
	AddPruned()
	AddInfeasible()
	AddDefect()
	SetTimedOut()
	Complete() SearchMetric
}

type collector struct {
	budget       time.Duration
	maxDepth     int
	startTime    time.Time
	depth        atomic.Int32
	combinations atomic.Int32
	pruned       atomic.Int32
	infeasible   atomic.Int32
	defects      atomic.Int32
	timedOut     atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget time.Duration, maxDepth int) {
	m.startTime = time.Now()
	m.budget = budget
	m.maxDepth = maxDepth
	m.depth.Store(0)
	m.combinations.Store(0)
	m.pruned.Store(0)
	m.infeasible.Store(0)
	m.defects.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) AddCombination() {
	m.combinations.Add(1)
}

func (m *collector) AddPruned() {
	m.pruned.Add(1)
}

func (m *collector) AddInfeasible() {
	m.infeasible.Add(1)
}

func (m *collector) AddDefect() {
	m.defects.Add(1)
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:       m.budget,
		MaxDepth:     m.maxDepth,
		Duration:     time.Since(m.startTime),
		Depth:        int(m.depth.Load()),
		Combinations: int(m.combinations.Load()),
		Pruned:       int(m.pruned.Load()),
		Infeasible:   int(m.infeasible.Load()),
		Defects:      int(m.defects.Load()),
		TimedOut:     m.timedOut.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget time.Duration, maxDepth int) {}
func (m *dummyCollector) SetDepth(depth int)                       {}
func (m *dummyCollector) AddCombination()                          {}
func (m *dummyCollector) AddPruned()                               {}
func (m *dummyCollector) AddInfeasible()                           {}
func (m *dummyCollector) AddDefect()                               {}
func (m *dummyCollector) SetTimedOut()                             {}
func (m *dummyCollector) Complete() SearchMetric                   { return SearchMetric{} }
