// Package metrics holds observers for the lsystem simulate pass.
package metrics

import "github.com/san-kum/lfractal/internal/lsystem"

// SegmentCount counts the pen-down steps of a drawing.
type SegmentCount struct {
	name  string
	count int
}

func NewSegmentCount() *SegmentCount {
	return &SegmentCount{name: "segments"}
}

func (s *SegmentCount) Name() string { return s.name }

func (s *SegmentCount) Observe(fn lsystem.Function, pose lsystem.Pose, depth int) {
	if fn == lsystem.Draw {
		s.count++
	}
}

func (s *SegmentCount) Value() float64 { return float64(s.count) }

func (s *SegmentCount) Reset() { s.count = 0 }

// Turns counts heading changes.
type Turns struct {
	name  string
	count int
}

func NewTurns() *Turns {
	return &Turns{name: "turns"}
}

func (t *Turns) Name() string { return t.name }

func (t *Turns) Observe(fn lsystem.Function, pose lsystem.Pose, depth int) {
	if fn == lsystem.TurnLeft || fn == lsystem.TurnRight {
		t.count++
	}
}

func (t *Turns) Value() float64 { return float64(t.count) }

func (t *Turns) Reset() { t.count = 0 }
