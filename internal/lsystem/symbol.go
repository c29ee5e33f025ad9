package lsystem

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Symbol is a single normalized (uppercased) grammar character.
type Symbol rune

func (s Symbol) String() string {
	return string(s)
}

// Function is the geometric action bound to a symbol.
type Function uint8

const (
	Unknown Function = iota
	Draw
	Move
	TurnRight
	TurnLeft
	PushState
	PopState
)

var functionNames = [...]string{
	Unknown:   "",
	Draw:      "DRAW",
	Move:      "MOVE",
	TurnRight: "RIGHT",
	TurnLeft:  "LEFT",
	PushState: "SAVE",
	PopState:  "LOAD",
}

// Accepted spellings after uppercasing and dropping spaces and underscores.
var functionAliases = map[string]Function{
	"":          Unknown,
	"NONE":      Unknown,
	"DRAW":      Draw,
	"MOVE":      Move,
	"RIGHT":     TurnRight,
	"TURNRIGHT": TurnRight,
	"LEFT":      TurnLeft,
	"TURNLEFT":  TurnLeft,
	"SAVE":      PushState,
	"SAVEPOS":   PushState,
	"PUSH":      PushState,
	"PUSHSTATE": PushState,
	"LOAD":      PopState,
	"LOADPOS":   PopState,
	"POP":       PopState,
	"POPSTATE":  PopState,
}

// String returns the canonical tag used in persisted state.
func (f Function) String() string {
	if int(f) < len(functionNames) {
		return functionNames[f]
	}
	return fmt.Sprintf("Function(%d)", uint8(f))
}

// Functions lists the tags that carry a geometric action, in display order.
func Functions() []Function {
	return []Function{Draw, Move, TurnRight, TurnLeft, PushState, PopState}
}

// ParseFunction converts a function tag into a Function. Empty text is
// Unknown, which interprets as a no-op.
func ParseFunction(text string) (Function, error) {
	key := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return unicode.ToUpper(r)
	}, text)
	f, ok := functionAliases[key]
	if !ok {
		return Unknown, fmt.Errorf("%w: unrecognized function %q", ErrInvalidSymbol, text)
	}
	return f, nil
}

func (f Function) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Function) UnmarshalText(b []byte) error {
	parsed, err := ParseFunction(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// isSeparator reports runes stripped from rule and axiom text.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// ParseSymbol normalizes a one-character definition. Blank input reports
// ok=false with no error.
func ParseSymbol(text string) (sym Symbol, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false, nil
	}
	if utf8.RuneCountInString(text) != 1 {
		return 0, false, fmt.Errorf("%w: %q is not a single character", ErrInvalidSymbol, text)
	}
	r, _ := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError || isSeparator(r) {
		return 0, false, fmt.Errorf("%w: %q cannot be a symbol", ErrInvalidSymbol, text)
	}
	return Symbol(unicode.ToUpper(r)), true, nil
}

// ParseSequence normalizes rule or axiom text: whitespace and commas are
// removed and the remaining characters are uppercased.
func ParseSequence(text string) Sequence {
	seq := make(Sequence, 0, len(text))
	for _, r := range text {
		if isSeparator(r) {
			continue
		}
		seq = append(seq, Symbol(unicode.ToUpper(r)))
	}
	return seq
}
