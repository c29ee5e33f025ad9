package lsystem

import "math"

// Simulator traces a sequence without drawing to find the extent of the path.
type Simulator struct {
	functions FunctionMap
	unit      float64
	angle     float64
	precision int
	metrics   []Metric
	steps     map[float64]Point
}

// NewSimulator creates a simulator. precision is the number of fractional
// digits each step is rounded to; a negative precision disables rounding.
func NewSimulator(functions FunctionMap, unit, angle float64, precision int) *Simulator {
	return &Simulator{
		functions: functions,
		unit:      unit,
		angle:     angle,
		precision: precision,
		metrics:   make([]Metric, 0),
		steps:     make(map[float64]Point),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run returns the bounding box of every pose visited while interpreting seq
// from start.
func (s *Simulator) Run(seq Sequence, start Pose) (BoundingBox, error) {
	for _, m := range s.metrics {
		m.Reset()
	}

	pose := start
	pose.Heading = normalizeHeading(pose.Heading)
	stack := make(poseStack, 0, 16)
	box := newBoundingBox(pose.Position)

	for i, sym := range seq {
		fn := s.functions[sym]
		switch fn {
		case Draw, Move:
			pose.Position = pose.Position.Add(s.step(pose.Heading))
		case TurnRight:
			pose.Heading = normalizeHeading(pose.Heading - s.angle)
		case TurnLeft:
			pose.Heading = normalizeHeading(pose.Heading + s.angle)
		case PushState:
			stack.push(pose)
		case PopState:
			p, ok := stack.pop()
			if !ok {
				return box, &InterpretError{Pass: "simulate", Index: i, Symbol: sym, Err: ErrStackUnderflow}
			}
			pose = p
		}
		box.extend(pose.Position)

		for _, m := range s.metrics {
			m.Observe(fn, pose, len(stack))
		}
	}
	return box, nil
}

// Metrics returns the current value of every attached metric.
func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// step returns the rounded displacement of one unit along heading. Headings
// repeat heavily in practice, so displacements are memoized.
func (s *Simulator) step(heading float64) Point {
	if d, ok := s.steps[heading]; ok {
		return d
	}
	sin, cos := math.Sincos(heading * math.Pi / 180)
	d := Point{
		X: roundTo(s.unit*cos, s.precision),
		Y: roundTo(s.unit*sin, s.precision),
	}
	s.steps[heading] = d
	return d
}
