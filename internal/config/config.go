// Package config loads fractal definitions, presets and application settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lfractal/internal/lsystem"
)

const (
	DefaultIterations = 4
	DefaultUnit       = 10.0
)

var ErrUnsupportedFormat = errors.New("config: unsupported definition format")

// Symbol defines one grammar symbol. A nil Rule makes the symbol a terminal
// that rewrites to itself; an empty Rule erases it.
type Symbol struct {
	Char     string  `yaml:"char" toml:"char"`
	Function string  `yaml:"function,omitempty" toml:"function,omitempty"`
	Rule     *string `yaml:"rule,omitempty" toml:"rule,omitempty"`
}

// Definition is a fractal as stored in a YAML or TOML file.
type Definition struct {
	Name        string   `yaml:"name" toml:"name"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Angle       float64  `yaml:"angle" toml:"angle"`
	Heading     float64  `yaml:"heading,omitempty" toml:"heading,omitempty"`
	Axiom       string   `yaml:"axiom" toml:"axiom"`
	Symbols     []Symbol `yaml:"symbols" toml:"symbols"`
	Iterations  int      `yaml:"iterations" toml:"iterations"`
	Unit        float64  `yaml:"unit" toml:"unit"`
	MaxSequence int      `yaml:"max_sequence" toml:"max_sequence"`
	Precision   int      `yaml:"precision" toml:"precision"`
}

func DefaultDefinition() *Definition {
	return &Definition{
		Iterations:  DefaultIterations,
		Unit:        DefaultUnit,
		MaxSequence: lsystem.DefaultMaxSequence,
		Precision:   lsystem.DefaultPrecision,
	}
}

// Load reads a definition, choosing the decoder by file extension. Fields
// missing from the file keep their defaults.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def := DefaultDefinition()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, def)
	case ".toml":
		_, err = toml.Decode(string(data), def)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

func Save(path string, def *Definition) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(def)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(def)
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Grammar builds an editable grammar from the definition.
func (d *Definition) Grammar() (*lsystem.Grammar, error) {
	g := lsystem.NewGrammar()
	for _, s := range d.Symbols {
		var err error
		if s.Rule == nil {
			err = g.DefineTerminal(s.Char, s.Function)
		} else {
			err = g.DefineSymbol(s.Char, s.Function, *s.Rule)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: symbol %q: %w", d.Name, s.Char, err)
		}
	}
	g.SetAxiom(d.Axiom)
	g.SetAngle(d.Angle)
	return g, nil
}

// Snapshot builds and validates the grammar in one step.
func (d *Definition) Snapshot() (*lsystem.System, error) {
	g, err := d.Grammar()
	if err != nil {
		return nil, err
	}
	sys, err := g.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	return sys, nil
}

func (d *Definition) DrawConfig() lsystem.DrawConfig {
	return lsystem.DrawConfig{
		Iterations:  d.Iterations,
		Unit:        d.Unit,
		MaxSequence: d.MaxSequence,
		Precision:   d.Precision,
		Start:       lsystem.Pose{Heading: d.Heading},
	}
}

// FromState converts a persisted grammar tuple into a definition with
// default draw settings. Symbols whose rule is the symbol itself become
// terminals.
func FromState(name string, st lsystem.State) *Definition {
	def := DefaultDefinition()
	def.Name = name
	def.Angle = st.Angle
	def.Axiom = st.Axiom
	for _, ch := range st.Alphabet {
		s := Symbol{Char: ch, Function: st.Functions[ch]}
		if rule, ok := st.Rules[ch]; ok && rule != ch {
			s.Rule = &rule
		}
		def.Symbols = append(def.Symbols, s)
	}
	return def
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Symbols = make([]Symbol, len(d.Symbols))
	for i, s := range d.Symbols {
		if s.Rule != nil {
			r := *s.Rule
			s.Rule = &r
		}
		c.Symbols[i] = s
	}
	return &c
}
