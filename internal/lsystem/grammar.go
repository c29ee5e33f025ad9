package lsystem

import (
	"fmt"
)

// Grammar is the mutable registry edited before a draw. Freeze it with
// Snapshot before handing it to a draw.
type Grammar struct {
	alphabet  []Symbol
	functions FunctionMap
	rules     RuleMap
	axiom     Sequence
	angle     float64
}

func NewGrammar() *Grammar {
	return &Grammar{
		alphabet:  make([]Symbol, 0),
		functions: make(FunctionMap),
		rules:     make(RuleMap),
		axiom:     Sequence{},
	}
}

// DefineSymbol adds char to the alphabet, or overwrites its definition if it
// is already present. The rule text is normalized; an empty rule erases the
// symbol on every rewrite. Blank char input is ignored.
func (g *Grammar) DefineSymbol(char, function, rule string) error {
	return g.define(char, function, ParseSequence(rule), true)
}

// DefineTerminal is DefineSymbol without a production rule: the symbol
// rewrites to itself.
func (g *Grammar) DefineTerminal(char, function string) error {
	return g.define(char, function, nil, false)
}

func (g *Grammar) define(char, function string, rule Sequence, hasRule bool) error {
	sym, ok, err := ParseSymbol(char)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	fn, err := ParseFunction(function)
	if err != nil {
		return &SymbolError{Symbol: sym, Where: "function", Err: err}
	}
	if !hasRule {
		rule = Sequence{sym}
	}

	if _, exists := g.functions[sym]; !exists {
		g.alphabet = append(g.alphabet, sym)
	}
	g.functions[sym] = fn
	g.rules[sym] = rule
	return nil
}

func (g *Grammar) SetAxiom(text string)     { g.axiom = ParseSequence(text) }
func (g *Grammar) SetAngle(degrees float64) { g.angle = degrees }

func (g *Grammar) Axiom() string  { return g.axiom.String() }
func (g *Grammar) Angle() float64 { return g.angle }

// Alphabet returns the defined symbols in definition order.
func (g *Grammar) Alphabet() []Symbol {
	out := make([]Symbol, len(g.alphabet))
	copy(out, g.alphabet)
	return out
}

// Function returns the tag bound to sym and whether sym is defined.
func (g *Grammar) Function(sym Symbol) (Function, bool) {
	fn, ok := g.functions[sym]
	return fn, ok
}

// Rule returns the production rule of sym and whether sym is defined.
func (g *Grammar) Rule(sym Symbol) (Sequence, bool) {
	r, ok := g.rules[sym]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Validate checks that the grammar has an alphabet and an axiom and that
// every referenced symbol is defined.
func (g *Grammar) Validate() error {
	if len(g.alphabet) == 0 {
		return fmt.Errorf("%w: alphabet not defined", ErrInvalidSymbol)
	}
	if len(g.axiom) == 0 {
		return fmt.Errorf("%w: axiom not defined", ErrInvalidSymbol)
	}
	for _, sym := range g.axiom {
		if _, ok := g.functions[sym]; !ok {
			return &SymbolError{Symbol: sym, Where: "axiom", Err: ErrUnknownSymbol}
		}
	}
	for _, owner := range g.alphabet {
		for _, sym := range g.rules[owner] {
			if _, ok := g.functions[sym]; !ok {
				return &SymbolError{
					Symbol: sym,
					Where:  fmt.Sprintf("rule for %q", string(owner)),
					Err:    ErrUnknownSymbol,
				}
			}
		}
	}
	return nil
}

// Snapshot validates the grammar and returns an immutable copy of it.
func (g *Grammar) Snapshot() (*System, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	s := &System{
		alphabet:  g.Alphabet(),
		functions: make(FunctionMap, len(g.functions)),
		rules:     make(RuleMap, len(g.rules)),
		axiom:     g.axiom.Clone(),
		angle:     g.angle,
	}
	for k, v := range g.functions {
		s.functions[k] = v
	}
	for k, v := range g.rules {
		s.rules[k] = v.Clone()
	}
	return s, nil
}

// State exports the grammar as its persistence tuple.
func (g *Grammar) State() State {
	return newState(g.alphabet, g.functions, g.rules, g.axiom, g.angle)
}

// LoadState replaces the grammar with st. The grammar is left unchanged if
// st is malformed.
func (g *Grammar) LoadState(st State) error {
	next := NewGrammar()
	for _, char := range st.Alphabet {
		sym, ok, err := ParseSymbol(char)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: blank alphabet entry", ErrInvalidSymbol)
		}
		if _, dup := next.functions[sym]; dup {
			return &SymbolError{Symbol: sym, Where: "alphabet", Err: fmt.Errorf("%w: duplicate", ErrInvalidSymbol)}
		}
		fn, err := ParseFunction(st.Functions[char])
		if err != nil {
			return &SymbolError{Symbol: sym, Where: "function", Err: err}
		}
		rule, hasRule := st.Rules[char]
		next.alphabet = append(next.alphabet, sym)
		next.functions[sym] = fn
		if hasRule {
			next.rules[sym] = ParseSequence(rule)
		} else {
			next.rules[sym] = Sequence{sym}
		}
	}
	next.axiom = ParseSequence(st.Axiom)
	next.angle = st.Angle
	*g = *next
	return nil
}
