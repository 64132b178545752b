package searcher

import "time"

type SearchMetric struct {
	PlyLimit   int
	Duration   time.Duration
	Expansions int // Nodes whose children were generated
	Children   int // Children generated over all expansions
	Leaves     int // Nodes evaluated at the ply limit or as terminal
	Cutoffs    int
}

type Collector interface {
	Start(plyLimit int)
	AddExpansion(children int)
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

// collector is not safe for concurrent use; a search runs on one goroutine.
type collector struct {
	plyLimit   int
	startTime  time.Time
	expansions int
	children   int
	leaves     int
	cutoffs    int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(plyLimit int) {
	m.startTime = time.Now()
	m.plyLimit = plyLimit
}

func (m *collector) AddExpansion(children int) {
	m.expansions++
	m.children += children
}

func (m *collector) AddLeaf() {
	m.leaves++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		PlyLimit:   m.plyLimit,
		Duration:   time.Since(m.startTime),
		Expansions: m.expansions,
		Children:   m.children,
		Leaves:     m.leaves,
		Cutoffs:    m.cutoffs,
	}
}

type dummyCollector struct{}

func (dummyCollector) Start(int)              {}
func (dummyCollector) AddExpansion(int)       {}
func (dummyCollector) AddLeaf()               {}
func (dummyCollector) AddCutoff()             {}
func (dummyCollector) Complete() SearchMetric { return SearchMetric{} }
