package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	huffman "github.com/chronos-tachyon/hufftree"
)

// Magic identifies a stream.
const Magic = "HUF1"

const magicBits = uint64('H')<<24 | uint64('U')<<16 | uint64('F')<<8 | uint64('1')

// MaxSymbols is the number of distinct symbols in the byte alphabet.
const MaxSymbols = 256

var (
	// ErrBadMagic is returned when a stream does not start with Magic.
	ErrBadMagic = errors.New("stream: bad magic")

	// ErrCorrupt is returned when a header or payload cannot be decoded.
	ErrCorrupt = errors.New("stream: corrupt data")

	// ErrLengthMismatch is returned by Writer.Close when the number of
	// bytes written differs from the length announced in the header.
	ErrLengthMismatch = errors.New("stream: length mismatch")
)

// Header is the decoded form of a stream header.
type Header struct {
	Table  huffman.CodeTable[byte]
	Length uint64
}

func writeHeader(bw *bitio.Writer, h Header) error {
	numSymbols := len(h.Table)
	if numSymbols == 0 || numSymbols > MaxSymbols {
		return fmt.Errorf("stream: invalid table with %d entries", numSymbols)
	}

	bw.TryWriteBits(magicBits, 32)
	bw.TryWriteBits(uint64(numSymbols), 16)
	for _, symbol := range h.Table.Symbols() {
		hc := h.Table[symbol]
		if hc.Size == 0 || !hc.IsValid() {
			return fmt.Errorf("stream: invalid code %#v for byte %#02x", hc, symbol)
		}
		bw.TryWriteBits(uint64(symbol), 8)
		bw.TryWriteBits(uint64(hc.Size), 8)
		bw.TryWriteBits(hc.Bits, paddedSize(hc.Size))
	}
	bw.TryWriteBits(h.Length, 64)
	return bw.TryError
}

func readHeader(br *bitio.Reader) (Header, error) {
	magic := br.TryReadBits(32)
	if br.TryError != nil {
		return Header{}, unexpectedEOF(br.TryError)
	}
	if magic != magicBits {
		return Header{}, ErrBadMagic
	}

	numSymbols := int(br.TryReadBits(16))
	if br.TryError != nil {
		return Header{}, unexpectedEOF(br.TryError)
	}
	if numSymbols == 0 || numSymbols > MaxSymbols {
		return Header{}, fmt.Errorf("%w: header lists %d symbols", ErrCorrupt, numSymbols)
	}

	table := make(huffman.CodeTable[byte], numSymbols)
	for i := 0; i < numSymbols; i++ {
		symbol := byte(br.TryReadBits(8))
		size := byte(br.TryReadBits(8))
		if br.TryError != nil {
			return Header{}, unexpectedEOF(br.TryError)
		}
		if size == 0 || size > huffman.MaxCodeSize {
			return Header{}, fmt.Errorf("%w: byte %#02x has a code of %d bits", ErrCorrupt, symbol, size)
		}
		hc := huffman.MakeCode(size, br.TryReadBits(paddedSize(size)))
		if br.TryError != nil {
			return Header{}, unexpectedEOF(br.TryError)
		}
		if !hc.IsValid() {
			return Header{}, fmt.Errorf("%w: byte %#02x has stray bits in its code", ErrCorrupt, symbol)
		}
		if _, found := table[symbol]; found {
			return Header{}, fmt.Errorf("%w: byte %#02x listed twice", ErrCorrupt, symbol)
		}
		table[symbol] = hc
	}

	length := br.TryReadBits(64)
	if br.TryError != nil {
		return Header{}, unexpectedEOF(br.TryError)
	}
	return Header{Table: table, Length: length}, nil
}

// paddedSize rounds size up to a whole number of bytes.
func paddedSize(size byte) uint8 {
	return (size + 7) &^ 7
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
