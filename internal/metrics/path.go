package metrics

import (
	"math"

	"github.com/san-kum/lfractal/internal/lsystem"
)

// PathLength is the total length of ink laid down, in drawing units.
type PathLength struct {
	name   string
	unit   float64
	length float64
}

func NewPathLength(unit float64) *PathLength {
	return &PathLength{name: "path_length", unit: unit}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(fn lsystem.Function, pose lsystem.Pose, depth int) {
	if fn == lsystem.Draw {
		p.length += p.unit
	}
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() { p.length = 0 }

// Reach is the farthest distance from the origin reached by any pose.
type Reach struct {
	name string
	max  float64
}

func NewReach() *Reach {
	return &Reach{name: "reach"}
}

func (r *Reach) Name() string { return r.name }

func (r *Reach) Observe(fn lsystem.Function, pose lsystem.Pose, depth int) {
	if d := math.Hypot(pose.Position.X, pose.Position.Y); d > r.max {
		r.max = d
	}
}

func (r *Reach) Value() float64 { return r.max }

func (r *Reach) Reset() { r.max = 0 }
