// Package experiment binds a fractal definition to a drawing surface and a
// set of metrics.
package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/lfractal/internal/config"
	"github.com/san-kum/lfractal/internal/lsystem"
	"github.com/san-kum/lfractal/internal/turtle"
)

type Config struct {
	Definition *config.Definition
	Surface    string
	Metrics    []string
	Logger     *log.Logger
}

type Experiment struct {
	cfg      Config
	def      *config.Definition
	sys      *lsystem.System
	registry *Registry
	logger   *log.Logger
}

// Run is one finished draw.
type Run struct {
	*lsystem.Result
	Iterations int
	Segments   []turtle.Segment
}

// Sample is one point of an iteration sweep.
type Sample struct {
	Iterations int
	Run        *Run
	Err        error
}

func New(reg *Registry, cfg Config) (*Experiment, error) {
	if cfg.Definition == nil {
		return nil, fmt.Errorf("experiment: no definition")
	}
	if cfg.Surface == "" {
		cfg.Surface = "recorder"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if _, _, err := reg.GetSurface(cfg.Surface, cfg.Logger); err != nil {
		return nil, err
	}
	if _, err := reg.GetMetrics(cfg.Metrics, 1); err != nil {
		return nil, err
	}

	def := cfg.Definition.Clone()
	sys, err := def.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Experiment{
		cfg:      cfg,
		def:      def,
		sys:      sys,
		registry: reg,
		logger:   cfg.Logger.WithPrefix(def.Name),
	}, nil
}

func (e *Experiment) Name() string                   { return e.def.Name }
func (e *Experiment) Definition() *config.Definition { return e.def.Clone() }
func (e *Experiment) System() *lsystem.System        { return e.sys }

// Run draws at the definition's own depth.
func (e *Experiment) Run(ctx context.Context) (*Run, error) {
	return e.run(ctx, e.def.Iterations)
}

// Draw renders at the given depth onto a fresh surface.
func (e *Experiment) Draw(ctx context.Context, iterations int) (*lsystem.Result, []turtle.Segment, error) {
	run, err := e.run(ctx, iterations)
	if err != nil {
		return nil, nil, err
	}
	return run.Result, run.Segments, nil
}

func (e *Experiment) run(ctx context.Context, iterations int) (*Run, error) {
	surface, rec, err := e.registry.GetSurface(e.cfg.Surface, e.logger)
	if err != nil {
		return nil, err
	}
	cfg := e.def.DrawConfig()
	cfg.Iterations = iterations
	ms, err := e.registry.GetMetrics(e.cfg.Metrics, cfg.Unit)
	if err != nil {
		return nil, err
	}

	res, err := e.sys.Draw(ctx, surface, cfg, ms...)
	if err != nil {
		e.logger.Debug("draw failed", "iterations", iterations, "err", err)
		return nil, err
	}
	e.logger.Debug("draw done", "iterations", iterations, "length", res.Length, "elapsed", res.Elapsed)
	return &Run{Result: res, Iterations: iterations, Segments: rec.Segments()}, nil
}

// Sweep draws at every depth from 0 to maxIterations. It stops at the first
// depth whose sequence exceeds the length cap and records that failure as the
// last sample. Other errors abort the sweep.
func (e *Experiment) Sweep(ctx context.Context, maxIterations int) ([]Sample, error) {
	samples := make([]Sample, 0, maxIterations+1)
	for i := 0; i <= maxIterations; i++ {
		run, err := e.run(ctx, i)
		if errors.Is(err, lsystem.ErrSequenceTooLarge) {
			samples = append(samples, Sample{Iterations: i, Err: err})
			break
		}
		if err != nil {
			return samples, err
		}
		samples = append(samples, Sample{Iterations: i, Run: run})
	}
	return samples, nil
}
