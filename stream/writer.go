package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	huffman "github.com/chronos-tachyon/hufftree"
)

// Writer packs Huffman-coded bytes into a stream.
//
// Call WriteHeader once before any call to Write, and Close after the last.
// Close does not close the underlying io.Writer.
type Writer struct {
	bw            *bitio.Writer
	enc           *huffman.Encoder[byte]
	length        uint64
	written       uint64
	headerWritten bool
	closed        bool
}

// NewWriter returns a Writer that encodes with enc and writes to w.
func NewWriter(w io.Writer, enc *huffman.Encoder[byte]) *Writer {
	return &Writer{bw: bitio.NewWriter(w), enc: enc}
}

// WriteHeader writes the stream header, announcing that exactly length bytes
// will follow.
func (sw *Writer) WriteHeader(length uint64) error {
	if sw.headerWritten {
		return errors.New("stream: header already written")
	}
	sw.headerWritten = true
	sw.length = length
	return writeHeader(sw.bw, Header{Table: sw.enc.Table(), Length: length})
}

// Write encodes p.  Every byte of p must be part of the encoder's alphabet.
func (sw *Writer) Write(p []byte) (int, error) {
	if !sw.headerWritten {
		return 0, errors.New("stream: Write called before WriteHeader")
	}
	if sw.closed {
		return 0, errors.New("stream: Write called after Close")
	}
	for i, b := range p {
		hc, found := sw.enc.Encode(b)
		if !found {
			return i, fmt.Errorf("stream: byte %#02x is not in the code table", b)
		}
		if err := sw.bw.WriteBits(hc.Bits, hc.Size); err != nil {
			return i, err
		}
		sw.written++
	}
	return len(p), nil
}

// Close pads the payload to a byte boundary and flushes it.
func (sw *Writer) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true
	if err := sw.bw.Close(); err != nil {
		return err
	}
	if sw.written != sw.length {
		return fmt.Errorf("%w: header announced %d bytes, wrote %d", ErrLengthMismatch, sw.length, sw.written)
	}
	return nil
}

var _ io.WriteCloser = (*Writer)(nil)

// Compress builds the Huffman code for data and writes data to w as a
// complete stream.  Empty data is rejected with huffman.ErrEmptyInput.
func Compress(w io.Writer, data []byte) error {
	enc, err := huffman.NewEncoder(data)
	if err != nil {
		return err
	}

	sw := NewWriter(w, enc)
	if err := sw.WriteHeader(uint64(len(data))); err != nil {
		return err
	}
	if _, err := sw.Write(data); err != nil {
		return err
	}
	return sw.Close()
}
