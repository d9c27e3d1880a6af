package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Decoder implements a decoder for a Huffman code given as an explicit
// CodeTable.
type Decoder[T Symbol] struct {
	table   map[Code]decoderData[T]
	codes   CodeTable[T]
	minSize byte
	maxSize byte
}

// NewDecoder constructs a Decoder for the given code table.  The table must
// be non-empty, every code must be between 1 and MaxCodeSize bits long, and
// no code may be a prefix of another.
func NewDecoder[T Symbol](codes CodeTable[T]) (*Decoder[T], error) {
	if len(codes) == 0 {
		return nil, ErrEmptyInput
	}
	for symbol, hc := range codes {
		if hc.Size == 0 || !hc.IsValid() {
			return nil, fmt.Errorf("symbol %v: invalid code %#v of size %d", symbol, hc, hc.Size)
		}
	}
	if err := codes.CheckPrefixFree(); err != nil {
		return nil, err
	}

	numSymbols := uint32(len(codes))
	minSize, maxSize := codes.sizeRange()

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numSymbols * log2uint32(numSymbols)

	d := &Decoder[T]{
		table:   make(map[Code]decoderData[T], numTableSlots),
		codes:   make(CodeTable[T], len(codes)),
		minSize: minSize,
		maxSize: maxSize,
	}

	for _, symbol := range codes.Symbols() {
		hc := codes[symbol]
		d.codes[symbol] = hc
		fillTable(d.table, symbol, hc)
	}

	return d, nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, ok is true and minSize == maxSize
// == hc.Size.
//
// If the Decode fails due to insufficient bits, ok is false and at least
// (minSize - hc.Size) additional bits are required to decode this symbol.  No
// more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, ok is false and minSize ==
// maxSize == 0.
//
func (d *Decoder[T]) Decode(hc Code) (symbol T, ok bool, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return symbol, false, 0, 0
	}
	return dd.symbol, dd.isLeaf, dd.minSize, dd.maxSize
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder[T]) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder[T]) MaxSize() byte {
	return d.maxSize
}

// Table returns the code table this Decoder was built from.  The caller must
// not modify it.
func (d *Decoder[T]) Table() CodeTable[T] {
	return d.codes
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder[T]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		if dd.isLeaf {
			fmt.Fprintf(&buf, "\tDecode(%s) = {%v, %d, %d}\n", hc.GoString(), dd.symbol, dd.minSize, dd.maxSize)
		} else {
			fmt.Fprintf(&buf, "\tDecode(%s) = {nil, %d, %d}\n", hc.GoString(), dd.minSize, dd.maxSize)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData[T Symbol] struct {
	symbol  T
	isLeaf  bool
	minSize byte
	maxSize byte
}

func fillTable[T Symbol](table map[Code]decoderData[T], symbol T, hc Code) {
	_, exists := table[hc]
	assert.Assertf(!exists, "code %#v assigned twice", hc)

	dd := decoderData[T]{symbol: symbol, isLeaf: true, minSize: hc.Size, maxSize: hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", look up "...xxxA" where A = NOT a.
		//
		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData[T]{minSize: dd.minSize, maxSize: dd.maxSize}
		if ddSibling, found := table[hc.Sibling()]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxa" to "...xxx".

		hc = hc.Parent()

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}
