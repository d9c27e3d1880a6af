package huffman

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Symbol is the set of types usable as an alphabet.  Symbols must be ordered
// so that ties between equally frequent symbols can be broken the same way on
// every run.
type Symbol interface {
	constraints.Ordered
}

// Frequencies maps each distinct Symbol to the number of times it occurs.
// Every count in a table built by CountFrequencies is positive.
type Frequencies[T Symbol] map[T]uint64

// CountFrequencies counts the occurrences of each distinct Symbol in the
// given sequence.
func CountFrequencies[T Symbol](symbols []T) Frequencies[T] {
	freqs := make(Frequencies[T])
	for _, symbol := range symbols {
		freqs[symbol]++
	}
	return freqs
}

// Add records n more occurrences of symbol.
func (freqs Frequencies[T]) Add(symbol T, n uint64) {
	if n == 0 {
		return
	}
	freqs[symbol] = saturatingAdd(freqs[symbol], n)
}

// Merge adds every count in other to this table.  Tables counted over
// disjoint shards of an input can be merged to obtain the counts for the
// whole input.
func (freqs Frequencies[T]) Merge(other Frequencies[T]) {
	for symbol, n := range other {
		freqs.Add(symbol, n)
	}
}

// Total returns the sum of all counts.
func (freqs Frequencies[T]) Total() uint64 {
	var total uint64
	for _, n := range freqs {
		total = saturatingAdd(total, n)
	}
	return total
}

// Symbols returns the distinct symbols in ascending order.
func (freqs Frequencies[T]) Symbols() []T {
	return sortedKeys(map[T]uint64(freqs))
}

func sortedKeys[T Symbol, V any](m map[T]V) []T {
	keys := make([]T, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
