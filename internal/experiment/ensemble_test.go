package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/lfractal/internal/config"
	"github.com/san-kum/lfractal/internal/lsystem"
)

func TestEnsembleMatchesSequentialRuns(t *testing.T) {
	reg := NewRegistry()
	var members []*Experiment
	for _, name := range config.ListPresets() {
		def := preset(t, name)
		def.Iterations = min(def.Iterations, 3)
		e, err := New(reg, Config{Definition: def})
		if err != nil {
			t.Fatal(err)
		}
		members = append(members, e)
	}

	runs, err := NewEnsemble(members...).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(runs) != len(members) {
		t.Fatalf("got %d runs, want %d", len(runs), len(members))
	}
	for i, m := range members {
		want, err := m.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if runs[i].Length != want.Length || runs[i].Box != want.Box || len(runs[i].Segments) != len(want.Segments) {
			t.Errorf("%s: concurrent run differs from sequential run", m.Name())
		}
	}
}

func TestEnsembleSharedSnapshot(t *testing.T) {
	e, err := New(NewRegistry(), Config{Definition: preset(t, "dragon")})
	if err != nil {
		t.Fatal(err)
	}
	runs, err := NewEnsemble(e, e, e, e).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range runs[1:] {
		if r.Length != runs[0].Length || r.Metrics["segments"] != runs[0].Metrics["segments"] {
			t.Error("draws of one snapshot should agree")
		}
	}
}

func TestEnsembleReportsFailure(t *testing.T) {
	reg := NewRegistry()
	ok, _ := New(reg, Config{Definition: preset(t, "koch")})

	def := preset(t, "koch")
	def.MaxSequence = 10
	tooBig, _ := New(reg, Config{Definition: def})

	_, err := NewEnsemble(ok, tooBig).Run(context.Background())
	if !errors.Is(err, lsystem.ErrSequenceTooLarge) {
		t.Errorf("expected ErrSequenceTooLarge, got %v", err)
	}
}
