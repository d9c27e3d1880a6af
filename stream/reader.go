package stream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"

	huffman "github.com/chronos-tachyon/hufftree"
)

// Reader decodes a stream produced by Writer.
type Reader struct {
	br        *bitio.Reader
	dec       *huffman.Decoder[byte]
	header    Header
	remaining uint64
	err       error
}

// NewReader returns a Reader that reads a stream from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

// ReadHeader reads and validates the stream header.  It is called
// implicitly by the first Read.
func (sr *Reader) ReadHeader() (Header, error) {
	if sr.dec != nil || sr.err != nil {
		return sr.header, sr.err
	}

	h, err := readHeader(sr.br)
	if err != nil {
		sr.err = err
		return Header{}, err
	}

	dec, err := huffman.NewDecoder(h.Table)
	if err != nil {
		sr.err = fmt.Errorf("%w: %v", ErrCorrupt, err)
		return Header{}, sr.err
	}

	sr.header = h
	sr.dec = dec
	sr.remaining = h.Length
	return h, nil
}

// Read decodes up to len(p) bytes.  It returns io.EOF once the number of
// bytes announced in the header has been decoded.
func (sr *Reader) Read(p []byte) (int, error) {
	if _, err := sr.ReadHeader(); err != nil {
		return 0, err
	}

	n := 0
	for n < len(p) && sr.remaining != 0 {
		b, err := sr.decodeOne()
		if err != nil {
			sr.err = err
			return n, err
		}
		p[n] = b
		n++
		sr.remaining--
	}
	if sr.remaining == 0 {
		return n, io.EOF
	}
	return n, nil
}

// decodeOne reads as few bits as the decoder says could complete a code,
// then asks again, until a symbol is found.
func (sr *Reader) decodeOne() (byte, error) {
	var hc huffman.Code
	need := sr.dec.MinSize()
	for {
		n := need - hc.Size
		bits, err := sr.br.ReadBits(n)
		if err != nil {
			return 0, unexpectedEOF(err)
		}
		hc = huffman.MakeCode(hc.Size+n, hc.Bits<<n|bits)

		symbol, ok, minSize, _ := sr.dec.Decode(hc)
		if ok {
			return symbol, nil
		}
		if minSize == 0 {
			return 0, fmt.Errorf("%w: unknown code %#v", ErrCorrupt, hc)
		}
		need = minSize
	}
}

var _ io.Reader = (*Reader)(nil)

// Decompress reads a complete stream from r and returns the decoded bytes.
func Decompress(r io.Reader) ([]byte, error) {
	sr := NewReader(r)
	h, err := sr.ReadHeader()
	if err != nil {
		return nil, err
	}

	// The announced length is untrusted; cap the preallocation.
	capacity := h.Length
	if capacity > 1<<20 {
		capacity = 1 << 20
	}

	buf := bytes.NewBuffer(make([]byte, 0, capacity))
	if _, err := buf.ReadFrom(sr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
