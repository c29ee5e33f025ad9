package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/san-kum/lfractal/internal/lsystem"
	"github.com/san-kum/lfractal/internal/metrics"
	"github.com/san-kum/lfractal/internal/turtle"
)

// SurfaceFactory builds a drawing surface. The returned recorder holds the
// segments drawn through the surface.
type SurfaceFactory func(logger *log.Logger) (lsystem.Surface, *turtle.Recorder)

type Registry struct {
	surfaces map[string]SurfaceFactory
	metrics  map[string]func(unit float64) lsystem.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		surfaces: make(map[string]SurfaceFactory),
		metrics:  make(map[string]func(unit float64) lsystem.Metric),
	}

	r.surfaces["recorder"] = func(*log.Logger) (lsystem.Surface, *turtle.Recorder) {
		rec := turtle.NewRecorder()
		return rec, rec
	}
	r.surfaces["logged"] = func(logger *log.Logger) (lsystem.Surface, *turtle.Recorder) {
		rec := turtle.NewRecorder()
		return turtle.NewLogged(rec, logger), rec
	}

	r.metrics["segments"] = func(float64) lsystem.Metric { return metrics.NewSegmentCount() }
	r.metrics["path_length"] = func(unit float64) lsystem.Metric { return metrics.NewPathLength(unit) }
	r.metrics["max_depth"] = func(float64) lsystem.Metric { return metrics.NewMaxDepth() }
	r.metrics["turns"] = func(float64) lsystem.Metric { return metrics.NewTurns() }
	r.metrics["reach"] = func(float64) lsystem.Metric { return metrics.NewReach() }

	return r
}

func (r *Registry) GetSurface(name string, logger *log.Logger) (lsystem.Surface, *turtle.Recorder, error) {
	fn, ok := r.surfaces[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown surface %q (available: %s)", name, strings.Join(r.ListSurfaces(), ", "))
	}
	s, rec := fn(logger)
	return s, rec, nil
}

// GetMetrics builds the named metrics. No names selects all of them.
func (r *Registry) GetMetrics(names []string, unit float64) ([]lsystem.Metric, error) {
	if len(names) == 0 {
		return metrics.All(unit), nil
	}
	out := make([]lsystem.Metric, 0, len(names))
	for _, name := range names {
		fn, ok := r.metrics[name]
		if !ok {
			return nil, fmt.Errorf("unknown metric %q (available: %s)", name, strings.Join(r.ListMetrics(), ", "))
		}
		out = append(out, fn(unit))
	}
	return out, nil
}

func (r *Registry) ListSurfaces() []string { return sortedKeys(r.surfaces) }

func (r *Registry) ListMetrics() []string { return sortedKeys(r.metrics) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
