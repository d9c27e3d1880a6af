package huffman

import (
	"fmt"
	mathbits "math/bits"
	"sort"
	"strconv"
)

// MaxCodeSize is the maximum number of bits in a Code.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size low-order bits of Bits is the first bit, so Bits read as an
	// unsigned binary number is the code's value.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// MakeReversedCode constructs a Code from a sequence of bits that's in the
// wrong order, i.e. the least significant bit is the *first* bit in the
// sequence, instead of the last.
func MakeReversedCode(size byte, bits uint64) Code {
	return MakeCode(size, reverseBits(size, bits))
}

// ParseCode parses the text form produced by String.
func ParseCode(s string) (Code, error) {
	if len(s) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is longer than %d bits: %w", s, MaxCodeSize, ErrCodeTooLong)
	}
	var hc Code
	for _, ch := range s {
		switch ch {
		case '0':
			hc = hc.Left()
		case '1':
			hc = hc.Right()
		default:
			return Code{}, fmt.Errorf("invalid character %q in code %q", ch, s)
		}
	}
	return hc, nil
}

// Left returns this Code extended by a 0 bit.
func (hc Code) Left() Code {
	return Code{Size: hc.Size + 1, Bits: hc.Bits << 1}
}

// Right returns this Code extended by a 1 bit.
func (hc Code) Right() Code {
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | 1}
}

// Append returns this Code extended by one bit.
func (hc Code) Append(bit bool) Code {
	if bit {
		return hc.Right()
	}
	return hc.Left()
}

// Parent returns this Code with its last bit removed.  The empty Code is its
// own parent.
func (hc Code) Parent() Code {
	if hc.Size == 0 {
		return hc
	}
	return Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}
}

// Sibling returns this Code with its last bit inverted.  The empty Code is
// its own sibling.
func (hc Code) Sibling() Code {
	if hc.Size == 0 {
		return hc
	}
	return Code{Size: hc.Size, Bits: hc.Bits ^ 1}
}

// Bit returns the i'th bit of this Code, counting from the first bit.
func (hc Code) Bit(i byte) bool {
	return (hc.Bits>>(hc.Size-1-i))&1 != 0
}

// IsPrefixOf returns true iff this Code is a prefix of other.  Every Code is
// a prefix of itself.
func (hc Code) IsPrefixOf(other Code) bool {
	if hc.Size > other.Size {
		return false
	}
	return other.Bits>>(other.Size-hc.Size) == hc.Bits
}

// IsValid returns true iff Size is at most MaxCodeSize and Bits has no bits
// set beyond Size.
func (hc Code) IsValid() bool {
	if hc.Size > MaxCodeSize {
		return false
	}
	return hc.Size == MaxCodeSize || hc.Bits>>hc.Size == 0
}

// Reversed returns the corresponding Code with the bits in reverse order.
// This is the form expected by bit writers that emit the least significant
// bit first.
func (hc Code) Reversed() Code {
	return MakeReversedCode(hc.Size, hc.Bits)
}

// String returns the bits of this Code as a string of '0' and '1'
// characters, first bit first.  The empty Code renders as "".
func (hc Code) String() string {
	if hc.Size == 0 {
		return ""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return fmt.Sprintf(format, hc.Bits)
}

// GoString returns the quoted form of String.
func (hc Code) GoString() string {
	return strconv.Quote(hc.String())
}

var (
	_ fmt.Stringer   = Code{}
	_ fmt.GoStringer = Code{}
)

func reverseBits(size byte, bits uint64) uint64 {
	return mathbits.Reverse64(bits) >> (64 - uint(size))
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Bits < b.Bits
}

var _ sort.Interface = byCode(nil)

// }}}
