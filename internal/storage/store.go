// Package storage keeps drawn fractals on disk, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/lfractal/internal/lsystem"
	"github.com/san-kum/lfractal/internal/turtle"
)

const (
	metadataFile = "metadata.json"
	segmentsFile = "segments.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored draw. State holds the grammar that produced
// it, so a run can be redrawn without its definition file.
type RunMetadata struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Timestamp   time.Time           `json:"timestamp"`
	State       lsystem.State       `json:"state"`
	Iterations  int                 `json:"iterations"`
	Unit        float64             `json:"unit"`
	MaxSequence int                 `json:"max_sequence"`
	Precision   int                 `json:"precision"`
	Length      int                 `json:"length"`
	Elapsed     time.Duration       `json:"elapsed_ns"`
	Box         lsystem.BoundingBox `json:"box"`
	Segments    int                 `json:"segments"`
	Metrics     map[string]float64  `json:"metrics"`
}

// Save writes a run and returns its ID.
func (s *Store) Save(name string, st lsystem.State, cfg lsystem.DrawConfig, res *lsystem.Result, segments []turtle.Segment) (string, error) {
	runID := fmt.Sprintf("%s_%s", slug(name), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   time.Now(),
		State:       st,
		Iterations:  cfg.Iterations,
		Unit:        cfg.Unit,
		MaxSequence: cfg.MaxSequence,
		Precision:   cfg.Precision,
		Length:      res.Length,
		Elapsed:     res.Elapsed,
		Box:         res.Box,
		Segments:    len(segments),
		Metrics:     res.Metrics,
	}
	if err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	if err := writeFile(filepath.Join(runDir, segmentsFile), func(w io.Writer) error {
		return writeSegments(w, segments)
	}); err != nil {
		return "", fmt.Errorf("write segments: %w", err)
	}

	return runID, nil
}

// slug keeps name usable as a single path segment.
func slug(name string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	out = strings.Trim(out, "-")
	if out == "" {
		return "run"
	}
	return out
}

// runDir resolves a run ID, rejecting anything that is not a plain
// directory name.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID {
		return "", fmt.Errorf("invalid run id %q", runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSegments(w io.Writer, segments []turtle.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x0", "y0", "x1", "y1"}); err != nil {
		return err
	}
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, seg := range segments {
		row := []string{format(seg.From.X), format(seg.From.Y), format(seg.To.X), format(seg.To.Y)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSegments(runID string) ([]turtle.Segment, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, segmentsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []turtle.Segment{}, nil
	}

	segments := make([]turtle.Segment, 0, len(records)-1)
	for i, record := range records[1:] {
		var v [4]float64
		for j, field := range record {
			if v[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i+2, err)
			}
		}
		segments = append(segments, turtle.Segment{
			From: lsystem.Point{X: v[0], Y: v[1]},
			To:   lsystem.Point{X: v[2], Y: v[3]},
		})
	}
	return segments, nil
}
