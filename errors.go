package huffman

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a tree is requested for an input with no
// symbols.  No tree can be built in that case.
var ErrEmptyInput = errors.New("huffman: empty input")

// ErrZeroFrequency is returned by BuildTreeFromFrequencies when a symbol has
// a count of 0.
var ErrZeroFrequency = errors.New("huffman: symbol with zero frequency")

// ErrCodeTooLong is returned when a code would need more than MaxCodeSize
// bits.
var ErrCodeTooLong = errors.New("huffman: code exceeds maximum size")

// MalformedTreeError reports an internal node with a missing child, or a
// missing root.  It indicates a bug in whatever produced the tree, not bad
// input data.
type MalformedTreeError struct {
	// Path is the code of the offending node.
	Path Code
}

func (err *MalformedTreeError) Error() string {
	if err.Path.Size == 0 {
		return "huffman: malformed tree: missing root or child at the root"
	}
	return fmt.Sprintf("huffman: malformed tree: internal node at %q is missing a child", err.Path.String())
}

// PrefixConflictError reports two codes of a table where one is a prefix of
// the other, so that the table cannot be decoded unambiguously.
type PrefixConflictError struct {
	Prefix Code
	Code   Code
}

func (err *PrefixConflictError) Error() string {
	return fmt.Sprintf("huffman: code %q is a prefix of code %q", err.Prefix.String(), err.Code.String())
}
