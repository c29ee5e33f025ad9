package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

func rule(s string) *string { return &s }

var (
	turnRight = Symbol{Char: "+", Function: "RIGHT"}
	turnLeft  = Symbol{Char: "-", Function: "LEFT"}
	save      = Symbol{Char: "[", Function: "SAVE"}
	load      = Symbol{Char: "]", Function: "LOAD"}
	leftRight = []Symbol{{Char: "+", Function: "LEFT"}, {Char: "-", Function: "RIGHT"}}
)

func symbols(head []Symbol, tail ...Symbol) []Symbol {
	return append(append([]Symbol{}, head...), tail...)
}

var Presets = map[string]*Definition{
	"plant": {
		Name: "plant", Description: "branching weed",
		Angle: 25, Heading: 90, Axiom: "F", Iterations: 4, Unit: 5,
		Symbols: []Symbol{
			{Char: "F", Function: "DRAW", Rule: rule("FF+[+F-F-F]-[-F+F+F]")},
			turnRight, turnLeft, save, load,
		},
	},
	"koch": {
		Name: "koch", Description: "Koch curve",
		Angle: 60, Axiom: "F", Iterations: 4, Unit: 5,
		Symbols: symbols(leftRight, Symbol{Char: "F", Function: "DRAW", Rule: rule("F+F--F+F")}),
	},
	"snowflake": {
		Name: "snowflake", Description: "Koch snowflake",
		Angle: 60, Axiom: "F--F--F", Iterations: 4, Unit: 5,
		Symbols: symbols(leftRight, Symbol{Char: "F", Function: "DRAW", Rule: rule("F+F--F+F")}),
	},
	"sierpinski": {
		Name: "sierpinski", Description: "Sierpinski arrowhead",
		Angle: 60, Axiom: "A", Iterations: 6, Unit: 5,
		Symbols: symbols(leftRight,
			Symbol{Char: "A", Function: "DRAW", Rule: rule("B-A-B")},
			Symbol{Char: "B", Function: "DRAW", Rule: rule("A+B+A")},
		),
	},
	"dragon": {
		Name: "dragon", Description: "Heighway dragon",
		Angle: 90, Axiom: "FX", Iterations: 10, Unit: 5,
		Symbols: symbols(leftRight,
			Symbol{Char: "F", Function: "DRAW"},
			Symbol{Char: "X", Rule: rule("X+YF+")},
			Symbol{Char: "Y", Rule: rule("-FX-Y")},
		),
	},
	"hilbert": {
		Name: "hilbert", Description: "Hilbert curve",
		Angle: 90, Axiom: "A", Iterations: 5, Unit: 5,
		Symbols: symbols(leftRight,
			Symbol{Char: "F", Function: "DRAW"},
			Symbol{Char: "A", Rule: rule("+BF-AFA-FB+")},
			Symbol{Char: "B", Rule: rule("-AF+BFB+FA-")},
		),
	},
	"levy": {
		Name: "levy", Description: "Lévy C curve",
		Angle: 45, Axiom: "F", Iterations: 10, Unit: 5,
		Symbols: symbols(leftRight, Symbol{Char: "F", Function: "DRAW", Rule: rule("+F--F+")}),
	},
	"tree": {
		Name: "tree", Description: "binary tree",
		Angle: 30, Heading: 90, Axiom: "X", Iterations: 7, Unit: 5,
		Symbols: []Symbol{
			{Char: "F", Function: "DRAW", Rule: rule("FF")},
			{Char: "X", Rule: rule("F[+X][-X]")},
			turnRight, turnLeft, save, load,
		},
	},
	"gosper": {
		Name: "gosper", Description: "Gosper flowsnake",
		Angle: 60, Axiom: "A", Iterations: 4, Unit: 5,
		Symbols: symbols(leftRight,
			Symbol{Char: "A", Function: "DRAW", Rule: rule("A-B--B+A++AA+B-")},
			Symbol{Char: "B", Function: "DRAW", Rule: rule("+A-AA--B-A+B+B-")},
		),
	},
}

// GetPreset returns a copy of the named preset. Unknown names suggest the
// closest preset.
func GetPreset(name string) (*Definition, error) {
	def, ok := Presets[strings.ToLower(name)]
	if !ok {
		if s := suggest(name); s != "" {
			return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownPreset, name, s)
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	out := def.Clone()
	if out.MaxSequence == 0 {
		out.MaxSequence = DefaultDefinition().MaxSequence
	}
	if out.Precision == 0 {
		out.Precision = DefaultDefinition().Precision
	}
	return out, nil
}

func suggest(name string) string {
	best, bestDist := "", 4
	for _, p := range ListPresets() {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve loads arg as a definition file when it names one, otherwise as a
// preset.
func Resolve(arg string) (*Definition, error) {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml", ".toml":
		return Load(arg)
	}
	if _, err := os.Stat(arg); err == nil {
		return Load(arg)
	}
	return GetPreset(arg)
}
