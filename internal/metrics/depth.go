package metrics

import "github.com/san-kum/lfractal/internal/lsystem"

// MaxDepth is the deepest pose stack seen during a run.
type MaxDepth struct {
	name  string
	depth int
}

func NewMaxDepth() *MaxDepth {
	return &MaxDepth{name: "max_depth"}
}

func (m *MaxDepth) Name() string { return m.name }

func (m *MaxDepth) Observe(fn lsystem.Function, pose lsystem.Pose, depth int) {
	if depth > m.depth {
		m.depth = depth
	}
}

func (m *MaxDepth) Value() float64 { return float64(m.depth) }

func (m *MaxDepth) Reset() { m.depth = 0 }

// All returns a fresh set of every metric in this package for a drawing unit.
func All(unit float64) []lsystem.Metric {
	return []lsystem.Metric{NewSegmentCount(), NewPathLength(unit), NewMaxDepth(), NewTurns(), NewReach()}
}
