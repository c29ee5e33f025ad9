package lsystem

import (
	"encoding/json"
	"fmt"
)

// State is the flat persistence tuple of a grammar:
// (alphabet, functions, rules, axiom, angle). Its JSON form is a
// five-element array.
type State struct {
	Alphabet  []string          `yaml:"alphabet"`
	Functions map[string]string `yaml:"functions"`
	Rules     map[string]string `yaml:"rules"`
	Axiom     string            `yaml:"axiom"`
	Angle     float64           `yaml:"angle"`
}

func newState(alphabet []Symbol, functions FunctionMap, rules RuleMap, axiom Sequence, angle float64) State {
	st := State{
		Alphabet:  make([]string, 0, len(alphabet)),
		Functions: make(map[string]string, len(functions)),
		Rules:     make(map[string]string, len(rules)),
		Axiom:     axiom.String(),
		Angle:     angle,
	}
	for _, sym := range alphabet {
		key := sym.String()
		st.Alphabet = append(st.Alphabet, key)
		st.Functions[key] = functions[sym].String()
		st.Rules[key] = rules[sym].String()
	}
	return st
}

func (s State) MarshalJSON() ([]byte, error) {
	alphabet := s.Alphabet
	if alphabet == nil {
		alphabet = []string{}
	}
	functions := s.Functions
	if functions == nil {
		functions = map[string]string{}
	}
	rules := s.Rules
	if rules == nil {
		rules = map[string]string{}
	}
	return json.Marshal([]any{alphabet, functions, rules, s.Axiom, s.Angle})
}

func (s *State) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("lsystem: state tuple: %w", err)
	}
	if len(raw) != 5 {
		return fmt.Errorf("lsystem: state tuple has %d elements, want 5", len(raw))
	}
	var st State
	fields := []any{&st.Alphabet, &st.Functions, &st.Rules, &st.Axiom, &st.Angle}
	for i, f := range fields {
		if err := json.Unmarshal(raw[i], f); err != nil {
			return fmt.Errorf("lsystem: state tuple element %d: %w", i, err)
		}
	}
	*s = st
	return nil
}
