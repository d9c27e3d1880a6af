package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// CodeTable maps each Symbol of an alphabet to its Code.
type CodeTable[T Symbol] map[T]Code

// Symbols returns the symbols of this table in ascending order.
func (table CodeTable[T]) Symbols() []T {
	return sortedKeys(map[T]Code(table))
}

// SymbolsBySize returns the symbols of the table ordered by code size, then
// by symbol.
func (table CodeTable[T]) SymbolsBySize() []T {
	symbols := table.Symbols()
	sort.SliceStable(symbols, func(i, j int) bool {
		return table[symbols[i]].Size < table[symbols[j]].Size
	})
	return symbols
}

// MinSize is the bit length of the shortest code in this table.
func (table CodeTable[T]) MinSize() byte {
	minSize, _ := table.sizeRange()
	return minSize
}

// MaxSize is the bit length of the longest code in this table.
func (table CodeTable[T]) MaxSize() byte {
	_, maxSize := table.sizeRange()
	return maxSize
}

func (table CodeTable[T]) sizeRange() (minSize byte, maxSize byte) {
	first := true
	for _, hc := range table {
		if first {
			minSize, maxSize = hc.Size, hc.Size
			first = false
		} else if minSize > hc.Size {
			minSize = hc.Size
		} else if maxSize < hc.Size {
			maxSize = hc.Size
		}
	}
	return
}

// WeightedSize returns the number of bits needed to encode an input with the
// given frequencies, i.e. the sum of frequency × code size over all symbols.
// Symbols missing from the table are ignored.
func (table CodeTable[T]) WeightedSize(freqs Frequencies[T]) uint64 {
	var total uint64
	for symbol, n := range freqs {
		if hc, found := table[symbol]; found {
			total = saturatingAdd(total, n*uint64(hc.Size))
		}
	}
	return total
}

// CheckPrefixFree returns a *PrefixConflictError if any code of this table
// is a prefix of another.
func (table CodeTable[T]) CheckPrefixFree() error {
	codes := make(byCode, 0, len(table))
	for _, hc := range table {
		codes = append(codes, hc)
	}
	codes.Sort()

	// Once sorted, a prefix always precedes the codes it is a prefix of.
	for i, a := range codes {
		for _, b := range codes[i+1:] {
			if a.IsPrefixOf(b) {
				return &PrefixConflictError{Prefix: a, Code: b}
			}
		}
	}
	return nil
}

// Dump writes one line per symbol, in ascending symbol order, to the given
// writer.
func (table CodeTable[T]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	for _, symbol := range table.Symbols() {
		fmt.Fprintf(&buf, "\t%v: %s\n", symbol, table[symbol].GoString())
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// AssignCodes walks the tree rooted at root breadth-first and assigns each
// leaf the code of its path: 0 for every step to a left child and 1 for
// every step to a right child.  The distinct argument is used only to size
// the resulting table.
//
// A tree that consists of a single leaf gets the one-bit code "0" for its
// symbol, so that every symbol occupies at least one bit in a stream.
//
// A nil root, or an internal node without two children, is reported as a
// *MalformedTreeError.  A path longer than MaxCodeSize bits is reported as
// ErrCodeTooLong.
func AssignCodes[T Symbol](root *Node[T], distinct int) (CodeTable[T], error) {
	if root == nil {
		return nil, &MalformedTreeError{}
	}
	if distinct < 1 {
		distinct = 1
	}

	table := make(CodeTable[T], distinct)
	if root.leaf {
		table[root.Symbol] = MakeCode(1, 0)
		return table, nil
	}

	type queueItem struct {
		node *Node[T]
		path Code
	}

	queue := make([]queueItem, 0, 2)
	queue = append(queue, queueItem{root, Code{}})
	for len(queue) != 0 {
		item := queue[0]
		queue[0] = queueItem{}
		queue = queue[1:]

		node := item.node
		if node.leaf {
			table[node.Symbol] = item.path
			continue
		}
		if node.Left == nil || node.Right == nil {
			return nil, &MalformedTreeError{Path: item.path}
		}
		if item.path.Size >= MaxCodeSize {
			return nil, fmt.Errorf("path %q: %w", item.path.String(), ErrCodeTooLong)
		}
		queue = append(queue, queueItem{node.Left, item.path.Left()})
		queue = append(queue, queueItem{node.Right, item.path.Right()})
	}
	return table, nil
}

// Encoder encodes Symbols into Huffman-coded bit strings.
type Encoder[T Symbol] struct {
	table   CodeTable[T]
	minSize byte
	maxSize byte
}

// NewEncoder builds the Huffman code for the given sequence of symbols.
func NewEncoder[T Symbol](symbols []T) (*Encoder[T], error) {
	root, distinct, err := BuildTree(symbols)
	if err != nil {
		return nil, err
	}
	return newEncoderFromTree(root, distinct)
}

// NewEncoderFromFrequencies builds the Huffman code for the given frequency
// table.
func NewEncoderFromFrequencies[T Symbol](freqs Frequencies[T]) (*Encoder[T], error) {
	root, distinct, err := BuildTreeFromFrequencies(freqs)
	if err != nil {
		return nil, err
	}
	return newEncoderFromTree(root, distinct)
}

// NewEncoderFromTable wraps an existing code table, e.g. one received from
// another party.  The table must be non-empty and prefix-free.
func NewEncoderFromTable[T Symbol](table CodeTable[T]) (*Encoder[T], error) {
	if len(table) == 0 {
		return nil, ErrEmptyInput
	}
	for symbol, hc := range table {
		if hc.Size == 0 || !hc.IsValid() {
			return nil, fmt.Errorf("symbol %v: invalid code %#v of size %d", symbol, hc, hc.Size)
		}
	}
	if err := table.CheckPrefixFree(); err != nil {
		return nil, err
	}
	return newEncoder(table), nil
}

func newEncoderFromTree[T Symbol](root *Node[T], distinct int) (*Encoder[T], error) {
	table, err := AssignCodes(root, distinct)
	if err != nil {
		return nil, err
	}
	return newEncoder(table), nil
}

func newEncoder[T Symbol](table CodeTable[T]) *Encoder[T] {
	minSize, maxSize := table.sizeRange()
	return &Encoder[T]{
		table:   table,
		minSize: minSize,
		maxSize: maxSize,
	}
}

// Encode encodes a Symbol into a Huffman-coded bit string.  It returns false
// if the symbol is not part of this code's alphabet.
func (e *Encoder[T]) Encode(symbol T) (Code, bool) {
	hc, found := e.table[symbol]
	return hc, found
}

// MinSize is the bit length of the shortest legal code.
func (e *Encoder[T]) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e *Encoder[T]) MaxSize() byte {
	return e.maxSize
}

// Len returns the number of symbols in this code's alphabet.
func (e *Encoder[T]) Len() int {
	return len(e.table)
}

// Table returns the code table.  The caller must not modify it.
func (e *Encoder[T]) Table() CodeTable[T] {
	return e.table
}

// SizeBySymbol returns the bit length of each Symbol's code.
func (e *Encoder[T]) SizeBySymbol() map[T]byte {
	out := make(map[T]byte, len(e.table))
	for symbol, hc := range e.table {
		out[symbol] = hc.Size
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder[T]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	for _, symbol := range e.table.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%v) = %s\n", symbol, e.table[symbol].GoString())
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
