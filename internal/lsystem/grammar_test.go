package lsystem

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseFunction(t *testing.T) {
	tests := []struct {
		text string
		want Function
	}{
		{"draw", Draw},
		{"DRAW", Draw},
		{" Move ", Move},
		{"right", TurnRight},
		{"turn_right", TurnRight},
		{"left", TurnLeft},
		{"save", PushState},
		{"save pos", PushState},
		{"push_state", PushState},
		{"load", PopState},
		{"LOAD POS", PopState},
		{"pop", PopState},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseFunction(tt.text)
			if err != nil {
				t.Fatalf("ParseFunction(%q) error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseFunction(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseFunction_Invalid(t *testing.T) {
	_, err := ParseFunction("jump")
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, got %v", err)
	}
}

func TestFunction_TextRoundTrip(t *testing.T) {
	for _, fn := range append(Functions(), Unknown) {
		b, err := fn.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", fn, err)
		}
		var got Function
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != fn {
			t.Errorf("round trip %v -> %q -> %v", fn, b, got)
		}
	}
}

func TestParseSequence(t *testing.T) {
	got := ParseSequence("f f + [ + f , - f ]")
	if got.String() != "FF+[+F-F]" {
		t.Errorf("ParseSequence = %q, want %q", got.String(), "FF+[+F-F]")
	}
}

func TestDefineSymbol(t *testing.T) {
	g := NewGrammar()
	if err := g.DefineSymbol("f", "draw", "f + f"); err != nil {
		t.Fatalf("DefineSymbol: %v", err)
	}
	if err := g.DefineTerminal("+", "right"); err != nil {
		t.Fatalf("DefineTerminal: %v", err)
	}

	fn, ok := g.Function('F')
	if !ok || fn != Draw {
		t.Errorf("Function(F) = %v, %v; want Draw, true", fn, ok)
	}
	rule, _ := g.Rule('F')
	if rule.String() != "F+F" {
		t.Errorf("Rule(F) = %q, want %q", rule.String(), "F+F")
	}
	rule, _ = g.Rule('+')
	if rule.String() != "+" {
		t.Errorf("terminal rule = %q, want %q", rule.String(), "+")
	}
}

func TestDefineSymbol_Overwrite(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("A", "draw", "AB")
	g.DefineSymbol("B", "move", "")
	g.DefineSymbol("a", "left", "BA")

	if got := g.Alphabet(); !reflect.DeepEqual(got, []Symbol{'A', 'B'}) {
		t.Errorf("Alphabet = %v, want [A B]", got)
	}
	fn, _ := g.Function('A')
	if fn != TurnLeft {
		t.Errorf("Function(A) = %v, want LEFT", fn)
	}
	rule, _ := g.Rule('A')
	if rule.String() != "BA" {
		t.Errorf("Rule(A) = %q, want BA", rule.String())
	}
}

func TestDefineSymbol_Blank(t *testing.T) {
	g := NewGrammar()
	for _, char := range []string{"", " ", "\t"} {
		if err := g.DefineSymbol(char, "draw", "F"); err != nil {
			t.Errorf("DefineSymbol(%q) error: %v", char, err)
		}
	}
	if len(g.Alphabet()) != 0 {
		t.Errorf("blank definitions should be ignored, alphabet = %v", g.Alphabet())
	}
}

func TestDefineSymbol_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		char     string
		function string
	}{
		{"multi char", "FG", "draw"},
		{"separator", ",", "draw"},
		{"bad function", "F", "fly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrammar()
			err := g.DefineTerminal(tt.char, tt.function)
			if !errors.Is(err, ErrInvalidSymbol) {
				t.Errorf("expected ErrInvalidSymbol, got %v", err)
			}
			if len(g.Alphabet()) != 0 {
				t.Error("invalid definition should not be added")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "F+G")
	g.DefineTerminal("+", "right")
	g.SetAxiom("F")

	err := g.Validate()
	var symErr *SymbolError
	if !errors.As(err, &symErr) {
		t.Fatalf("expected SymbolError, got %v", err)
	}
	if !errors.Is(err, ErrUnknownSymbol) || symErr.Symbol != 'G' {
		t.Errorf("expected unknown G, got %v", err)
	}

	g.DefineTerminal("G", "move")
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_Empty(t *testing.T) {
	g := NewGrammar()
	if err := g.Validate(); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("empty alphabet: expected ErrInvalidSymbol, got %v", err)
	}
	g.DefineTerminal("F", "draw")
	if err := g.Validate(); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("empty axiom: expected ErrInvalidSymbol, got %v", err)
	}
	g.SetAxiom("X")
	if _, err := g.Snapshot(); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("undefined axiom symbol: expected ErrUnknownSymbol, got %v", err)
	}
}

func TestSnapshot_Immutable(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "FF")
	g.SetAxiom("F")
	g.SetAngle(90)

	sys, err := g.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	g.DefineSymbol("F", "move", "F")
	g.SetAngle(45)

	if sys.Angle() != 90 {
		t.Errorf("snapshot angle changed to %v", sys.Angle())
	}
	if sys.Functions()['F'] != Draw {
		t.Error("snapshot function changed")
	}
	if sys.Rules()['F'].String() != "FF" {
		t.Error("snapshot rule changed")
	}

	rules := sys.Rules()
	rules['F'][0] = 'X'
	if sys.Rules()['F'].String() != "FF" {
		t.Error("Rules should return a copy")
	}
}

func plantGrammar() *Grammar {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "F F + [ + F - F - F ] - [ - F + F + F ]")
	g.DefineTerminal("+", "right")
	g.DefineTerminal("-", "left")
	g.DefineTerminal("[", "save")
	g.DefineTerminal("]", "load")
	g.DefineTerminal("X", "")
	g.SetAxiom("F")
	g.SetAngle(25)
	return g
}

func TestState_RoundTrip(t *testing.T) {
	g := plantGrammar()
	st := g.State()

	loaded := NewGrammar()
	if err := loaded.LoadState(st); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if !reflect.DeepEqual(loaded.State(), st) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded.State(), st)
	}
	if !reflect.DeepEqual(loaded.Alphabet(), g.Alphabet()) {
		t.Errorf("alphabet order = %v, want %v", loaded.Alphabet(), g.Alphabet())
	}
}

func TestState_JSONTuple(t *testing.T) {
	g := NewGrammar()
	g.DefineSymbol("F", "draw", "F+F")
	g.DefineTerminal("+", "right")
	g.SetAxiom("F")
	g.SetAngle(60)

	data, err := json.Marshal(g.State())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[["F","+"],{"+":"RIGHT","F":"DRAW"},{"+":"+","F":"F+F"},"F",60]`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(st, g.State()) {
		t.Errorf("decoded %+v, want %+v", st, g.State())
	}
}

func TestState_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not array", `{"axiom":"F"}`},
		{"short", `[["F"],{},{}]`},
		{"bad angle", `[["F"],{},{},"F","ninety"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st State
			if err := json.Unmarshal([]byte(tt.data), &st); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadState_Invalid(t *testing.T) {
	g := plantGrammar()
	before := g.State()

	err := g.LoadState(State{
		Alphabet:  []string{"F"},
		Functions: map[string]string{"F": "teleport"},
		Rules:     map[string]string{"F": "F"},
		Axiom:     "F",
	})
	if !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, got %v", err)
	}
	if !reflect.DeepEqual(g.State(), before) {
		t.Error("failed LoadState should leave the grammar unchanged")
	}
}
