package searcher

import (
	"sync/atomic"
	"time"
)

type Metric struct {
	StartTime time.Time
	Duration  time.Duration
	Playouts  int
	Wins      int // playouts ended by an aligned run
	Draws     int // playouts ended by a full board
	Slices    int
	TreeSize  int
}

type Collector interface {
	Start()
	AddPlayout(won bool)
	Complete(slices, treeSize int) Metric
}

type collector struct {
	startTime time.Time
	playouts  atomic.Int64
	wins      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.playouts.Store(0)
	m.wins.Store(0)
}

func (m *collector) AddPlayout(won bool) {
	m.playouts.Add(1)
	if won {
		m.wins.Add(1)
	}
}

func (m *collector) Complete(slices, treeSize int) Metric {
	playouts := int(m.playouts.Load())
	wins := int(m.wins.Load())
	return Metric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Playouts:  playouts,
		Wins:      wins,
		Draws:     playouts - wins,
		Slices:    slices,
		TreeSize:  treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) AddPlayout(bool)          {}
func (m *dummyCollector) Complete(int, int) Metric { return Metric{} }
