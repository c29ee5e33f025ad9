package lsystem

import (
	"errors"
	"math"
	"testing"
)

func turnGrammar() *Grammar {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "F+F-F")
	g.DefineTerminal("+", "right")
	g.DefineTerminal("-", "left")
	g.SetAxiom("F")
	g.SetAngle(90)
	return g
}

func mustSnapshot(t *testing.T, g *Grammar) *System {
	t.Helper()
	sys, err := g.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return sys
}

func TestExpand_WorkedExample(t *testing.T) {
	sys := mustSnapshot(t, turnGrammar())

	one, err := sys.Expand(1, 0)
	if err != nil {
		t.Fatalf("Expand(1): %v", err)
	}
	if one.String() != "F+F-F" {
		t.Errorf("iteration 1 = %q, want %q", one.String(), "F+F-F")
	}

	two, err := sys.Expand(2, 0)
	if err != nil {
		t.Fatalf("Expand(2): %v", err)
	}
	if len(two) != 17 {
		t.Errorf("iteration 2 length = %d, want 17", len(two))
	}
	if two.String() != "F+F-F+F+F-F-F+F-F" {
		t.Errorf("iteration 2 = %q", two.String())
	}
}

func TestExpand_Deterministic(t *testing.T) {
	sys := mustSnapshot(t, plantGrammar())

	a, err := sys.Expand(4, 0)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	b, err := sys.Expand(4, 0)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if a.String() != b.String() {
		t.Error("two expansions of the same grammar differ")
	}
}

func TestExpand_ZeroIterations(t *testing.T) {
	sys := mustSnapshot(t, turnGrammar())
	seq, err := sys.Expand(0, 0)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if seq.String() != "F" {
		t.Errorf("Expand(0) = %q, want axiom", seq.String())
	}
}

func TestExpand_TerminalsDoNotGrow(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("A", "draw", "AB")
	g.DefineTerminal("B", "move")
	g.DefineTerminal("C", "left")
	g.SetAxiom("CAC")
	sys := mustSnapshot(t, g)

	for i := 0; i <= 5; i++ {
		seq, err := sys.Expand(i, 0)
		if err != nil {
			t.Fatalf("Expand(%d): %v", i, err)
		}
		if n := seq.Count('C'); n != 2 {
			t.Errorf("iteration %d: %d C symbols, want 2", i, n)
		}
		if n := seq.Count('B'); n != i {
			t.Errorf("iteration %d: %d B symbols, want %d", i, n, i)
		}
	}
}

func TestExpand_ErasingRule(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "FXF")
	g.DefineSymbol("X", "", "")
	g.SetAxiom("F")
	sys := mustSnapshot(t, g)

	seq, err := sys.Expand(2, 0)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if seq.String() != "FXFFXF" {
		t.Errorf("Expand = %q, want %q", seq.String(), "FXFFXF")
	}
}

func TestExpand_Cap(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "FF")
	g.SetAxiom("F")
	sys := mustSnapshot(t, g)

	seq, err := sys.Expand(6, 100)
	if err != nil {
		t.Fatalf("Expand(6): %v", err)
	}
	if len(seq) != 64 {
		t.Errorf("length = %d, want 64", len(seq))
	}

	_, err = sys.Expand(7, 100)
	if !errors.Is(err, ErrSequenceTooLarge) {
		t.Fatalf("expected ErrSequenceTooLarge, got %v", err)
	}
	var tooLarge *SequenceTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected SequenceTooLargeError, got %T", err)
	}
	if tooLarge.Limit != 100 || tooLarge.Iteration != 7 {
		t.Errorf("got limit %d iteration %d, want 100 and 7", tooLarge.Limit, tooLarge.Iteration)
	}
}

func TestExpand_AxiomOverCap(t *testing.T) {
	seq := ParseSequence("FFFF")
	_, err := Expand(seq, RuleMap{'F': seq[:1]}, 0, 3)
	var tooLarge *SequenceTooLargeError
	if !errors.As(err, &tooLarge) || tooLarge.Iteration != 0 {
		t.Errorf("expected failure at iteration 0, got %v", err)
	}
}

func TestExpand_UnknownSymbol(t *testing.T) {
	_, err := Expand(ParseSequence("FG"), RuleMap{'F': ParseSequence("F")}, 1, 0)
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestPredictLengths(t *testing.T) {
	sys := mustSnapshot(t, plantGrammar())

	lengths, err := sys.PredictLengths(4)
	if err != nil {
		t.Fatalf("PredictLengths: %v", err)
	}
	if len(lengths) != 5 {
		t.Fatalf("got %d lengths, want 5", len(lengths))
	}
	for i, want := range lengths {
		seq, err := sys.Expand(i, 0)
		if err != nil {
			t.Fatalf("Expand(%d): %v", i, err)
		}
		if uint64(len(seq)) != want {
			t.Errorf("iteration %d: predicted %d, actual %d", i, want, len(seq))
		}
	}
}

func TestPredictLengths_Saturates(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "FF")
	g.SetAxiom("F")
	sys := mustSnapshot(t, g)

	lengths, err := sys.PredictLengths(70)
	if err != nil {
		t.Fatalf("PredictLengths: %v", err)
	}
	if lengths[10] != 1024 {
		t.Errorf("lengths[10] = %d, want 1024", lengths[10])
	}
	if lengths[70] != math.MaxUint64 {
		t.Errorf("lengths[70] = %d, want saturation", lengths[70])
	}
}
