package stream

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	huffman "github.com/chronos-tachyon/hufftree"
)

func TestCompress_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := Compress(&buf, []byte("abracadabra")); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	// a=0 b=110 c=100 d=101 r=111
	//
	// payload: 0 110 111 0 100 0 101 0 110 111 0, then one bit of padding
	//        = 01101110 10001010 11011100
	expectHex := strings.Join([]string{
		"48554631", // magic
		"0005",     // count
		"6101" + "00",
		"6203" + "06",
		"6303" + "04",
		"6403" + "05",
		"7203" + "07",
		"000000000000000b", // length
		"6e8adc",           // payload
	}, "")
	actualHex := hex.EncodeToString(buf.Bytes())
	if expectHex != actualHex {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectHex, actualHex)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 4096)
	for i := range random {
		random[i] = byte(rng.Intn(256))
	}
	skewed := make([]byte, 4096)
	for i := range skewed {
		x := rng.Intn(64)
		skewed[i] = byte(x * x / 64)
	}

	testData := map[string][]byte{
		"single":   []byte("AAAA"),
		"one-byte": {0x00},
		"scenario": []byte(strings.Repeat("A", 40) + strings.Repeat("B", 35) + strings.Repeat("C", 20) + strings.Repeat("D", 5)),
		"text":     []byte("this is an example of a huffman tree"),
		"random":   random,
		"skewed":   skewed,
	}
	for name, data := range testData {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Compress(&buf, data); err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			actual, err := Decompress(&buf)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(data, actual) {
				t.Errorf("round trip mismatch:\n\texpect: %x\n\tactual: %x", data, actual)
			}
		})
	}
}

func TestCompress_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Compress(&buf, nil); !errors.Is(err, huffman.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %d bytes", buf.Len())
	}
}

func TestReader_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := Compress(&buf, []byte("abracadabra")); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	sr := NewReader(&buf)
	h, err := sr.ReadHeader()
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Length != 11 {
		t.Errorf("expected length 11, got %d", h.Length)
	}

	var dump strings.Builder
	_, _ = h.Table.Dump(&dump)
	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\t97: \"0\"\n",
		"\t98: \"110\"\n",
		"\t99: \"100\"\n",
		"\t100: \"101\"\n",
		"\t114: \"111\"\n",
		"}\n",
	}, "")
	if actualDump := dump.String(); expectDump != actualDump {
		t.Errorf("wrong table:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestDecompress_Errors(t *testing.T) {
	var good bytes.Buffer
	if err := Compress(&good, []byte("abracadabra")); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	raw := good.Bytes()

	type testRow struct {
		name   string
		data   []byte
		expect error
	}

	badMagic := append([]byte("HUF2"), raw[4:]...)
	truncatedHeader := raw[:10]
	truncatedPayload := raw[:len(raw)-1]
	zeroCount := append(append([]byte(nil), raw[:4]...), 0, 0)

	prefixTable := []byte("HUF1")
	prefixTable = append(prefixTable, 0x00, 0x02)
	prefixTable = append(prefixTable, 'a', 1, 0x01)
	prefixTable = append(prefixTable, 'b', 2, 0x02)
	prefixTable = append(prefixTable, 0, 0, 0, 0, 0, 0, 0, 1, 0x00)

	unknownCode := []byte("HUF1")
	unknownCode = append(unknownCode, 0x00, 0x02)
	unknownCode = append(unknownCode, 'a', 2, 0x00)
	unknownCode = append(unknownCode, 'b', 2, 0x01)
	unknownCode = append(unknownCode, 0, 0, 0, 0, 0, 0, 0, 1, 0xc0)

	testData := [...]testRow{
		{"bad-magic", badMagic, ErrBadMagic},
		{"empty", nil, io.ErrUnexpectedEOF},
		{"truncated-header", truncatedHeader, io.ErrUnexpectedEOF},
		{"truncated-payload", truncatedPayload, io.ErrUnexpectedEOF},
		{"zero-count", zeroCount, ErrCorrupt},
		{"prefix-table", prefixTable, ErrCorrupt},
		{"unknown-code", unknownCode, ErrCorrupt},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := Decompress(bytes.NewReader(row.data))
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
		})
	}
}

func TestWriter_LengthMismatch(t *testing.T) {
	enc, err := huffman.NewEncoder([]byte("abc"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	var buf bytes.Buffer
	sw := NewWriter(&buf, enc)
	if _, err := sw.Write([]byte("a")); err == nil {
		t.Errorf("expected Write before WriteHeader to fail")
	}
	if err := sw.WriteHeader(3); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if _, err := sw.Write([]byte("ab")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n, err := sw.Write([]byte("z")); err == nil || n != 0 {
		t.Errorf("expected Write of an unknown byte to fail, got n=%d err=%v", n, err)
	}
	if err := sw.Close(); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}
