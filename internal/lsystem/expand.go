package lsystem

import (
	"math"
	"math/bits"
)

// Expand rewrites axiom through the given number of rounds. The length of
// the sequence under construction is checked after every symbol's expansion,
// so an oversized round fails before it completes. maxLength <= 0 selects
// DefaultMaxSequence.
func Expand(axiom Sequence, rules RuleMap, iterations, maxLength int) (Sequence, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxSequence
	}
	if len(axiom) > maxLength {
		return nil, &SequenceTooLargeError{Limit: maxLength, Iteration: 0}
	}

	seq := axiom.Clone()
	for i := 1; i <= iterations; i++ {
		next := make(Sequence, 0, min(maxLength, 2*len(seq)+1))
		for _, sym := range seq {
			rule, ok := rules[sym]
			if !ok {
				return nil, &SymbolError{Symbol: sym, Where: "sequence", Err: ErrUnknownSymbol}
			}
			next = append(next, rule...)
			if len(next) > maxLength {
				return nil, &SequenceTooLargeError{Limit: maxLength, Iteration: i}
			}
		}
		seq = next
	}
	return seq, nil
}

// PredictLengths returns the sequence length after each round, index 0 being
// the axiom, without building the sequences. Lengths saturate at
// math.MaxUint64.
func PredictLengths(axiom Sequence, rules RuleMap, iterations int) ([]uint64, error) {
	if iterations < 0 {
		iterations = 0
	}
	for _, sym := range axiom {
		if _, ok := rules[sym]; !ok {
			return nil, &SymbolError{Symbol: sym, Where: "axiom", Err: ErrUnknownSymbol}
		}
	}

	per := make(map[Symbol]uint64, len(rules))
	for sym := range rules {
		per[sym] = 1
	}

	lengths := make([]uint64, 0, iterations+1)
	lengths = append(lengths, total(axiom, per))
	for i := 1; i <= iterations; i++ {
		next := make(map[Symbol]uint64, len(per))
		for sym, rule := range rules {
			var n uint64
			for _, t := range rule {
				l, ok := per[t]
				if !ok {
					return nil, &SymbolError{Symbol: t, Where: "rule for " + sym.String(), Err: ErrUnknownSymbol}
				}
				n = satAdd(n, l)
			}
			next[sym] = n
		}
		per = next
		lengths = append(lengths, total(axiom, per))
	}
	return lengths, nil
}

func total(seq Sequence, per map[Symbol]uint64) uint64 {
	var n uint64
	for _, sym := range seq {
		n = satAdd(n, per[sym])
	}
	return n
}

func satAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
