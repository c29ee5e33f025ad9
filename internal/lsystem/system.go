package lsystem

import (
	"context"
	"fmt"
	"math"
	"time"
)

// System is an immutable grammar snapshot created by Grammar.Snapshot.
type System struct {
	alphabet  []Symbol
	functions FunctionMap
	rules     RuleMap
	axiom     Sequence
	angle     float64
}

func (s *System) Axiom() Sequence { return s.axiom.Clone() }
func (s *System) Angle() float64  { return s.angle }

func (s *System) Alphabet() []Symbol {
	out := make([]Symbol, len(s.alphabet))
	copy(out, s.alphabet)
	return out
}

func (s *System) Functions() FunctionMap {
	out := make(FunctionMap, len(s.functions))
	for k, v := range s.functions {
		out[k] = v
	}
	return out
}

func (s *System) Rules() RuleMap {
	out := make(RuleMap, len(s.rules))
	for k, v := range s.rules {
		out[k] = v.Clone()
	}
	return out
}

func (s *System) State() State {
	return newState(s.alphabet, s.functions, s.rules, s.axiom, s.angle)
}

// Expand rewrites the snapshot's axiom.
func (s *System) Expand(iterations, maxLength int) (Sequence, error) {
	return Expand(s.axiom, s.rules, iterations, maxLength)
}

// PredictLengths reports the sequence length after each round.
func (s *System) PredictLengths(iterations int) ([]uint64, error) {
	return PredictLengths(s.axiom, s.rules, iterations)
}

type DrawConfig struct {
	Iterations  int
	Unit        float64
	MaxSequence int
	Precision   int
	Start       Pose
}

func DefaultDrawConfig() DrawConfig {
	return DrawConfig{
		Iterations:  3,
		Unit:        10,
		MaxSequence: DefaultMaxSequence,
		Precision:   DefaultPrecision,
	}
}

func (c DrawConfig) validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be non-negative, got %d", c.Iterations)
	}
	if !(c.Unit > 0) || math.IsInf(c.Unit, 0) {
		return fmt.Errorf("unit must be positive and finite, got %f", c.Unit)
	}
	if c.Precision > MaxPrecision {
		return fmt.Errorf("precision must be at most %d, got %d", MaxPrecision, c.Precision)
	}
	return nil
}

type Result struct {
	Length  int
	Elapsed time.Duration
	Box     BoundingBox
	Metrics map[string]float64
}

// Draw generates the sequence, simulates it to find the centering offset and
// renders it onto surface. Elapsed covers all three phases. A failure during
// generation or simulation leaves surface untouched.
func (s *System) Draw(ctx context.Context, surface Surface, cfg DrawConfig, metrics ...Metric) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	seq, err := s.Expand(cfg.Iterations, cfg.MaxSequence)
	if err != nil {
		return nil, err
	}

	sim := NewSimulator(s.functions, cfg.Unit, s.angle, cfg.Precision)
	for _, m := range metrics {
		sim.AddMetric(m)
	}
	box, err := sim.Run(seq, cfg.Start)
	if err != nil {
		return nil, err
	}

	r := NewRenderer(s.functions, cfg.Unit, s.angle)
	if err := r.Render(ctx, surface, seq, cfg.Start, box); err != nil {
		return nil, err
	}

	return &Result{
		Length:  len(seq),
		Elapsed: time.Since(start),
		Box:     box,
		Metrics: sim.Metrics(),
	}, nil
}
