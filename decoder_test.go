package huffman

import (
	"errors"
	"strings"
	"testing"
)

func makeTestDecoder() *Decoder[int] {
	d, err := NewDecoder(makeTestEncoder().Table())
	if err != nil {
		panic(err)
	}
	return d
}

func TestDecoder_Decode(t *testing.T) {
	d := makeTestDecoder()

	type testRow struct {
		size byte
		bits uint64
		min  byte
		max  byte
		ok   bool
		sym  int
	}

	testData := [...]testRow{
		{size: 0, bits: 0x00, min: 1, max: 4},
		{size: 1, bits: 0x00, min: 1, max: 1, ok: true, sym: 5},
		{size: 1, bits: 0x01, min: 3, max: 4},
		{size: 2, bits: 0x02, min: 3, max: 3},
		{size: 2, bits: 0x03, min: 3, max: 4},
		{size: 3, bits: 0x04, min: 3, max: 3, ok: true, sym: 2},
		{size: 3, bits: 0x05, min: 3, max: 3, ok: true, sym: 3},
		{size: 3, bits: 0x06, min: 4, max: 4},
		{size: 3, bits: 0x07, min: 3, max: 3, ok: true, sym: 4},
		{size: 4, bits: 0x0c, min: 4, max: 4, ok: true, sym: 0},
		{size: 4, bits: 0x0d, min: 4, max: 4, ok: true, sym: 1},
		{size: 2, bits: 0x00, min: 0, max: 0},
		{size: 4, bits: 0x0f, min: 0, max: 0},
	}
	for _, row := range testData {
		hc := MakeCode(row.size, row.bits)
		t.Run(hc.GoString(), func(t *testing.T) {
			sym, ok, min, max := d.Decode(hc)
			if ok != row.ok {
				t.Errorf("expected ok %v, got %v", row.ok, ok)
			}
			if ok && sym != row.sym {
				t.Errorf("expected symbol %d, got %d", row.sym, sym)
			}
			if min != row.min {
				t.Errorf("expected minimum size %d, got %d", row.min, min)
			}
			if max != row.max {
				t.Errorf("expected maximum size %d, got %d", row.max, max)
			}
		})
	}
}

func TestDecoder_Dump(t *testing.T) {
	d := makeTestDecoder()

	expectDump := strings.Join([]string{
		"Decoder{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tDecode(\"\") = {nil, 1, 4}\n",
		"\tDecode(\"0\") = {5, 1, 1}\n",
		"\tDecode(\"1\") = {nil, 3, 4}\n",
		"\tDecode(\"10\") = {nil, 3, 3}\n",
		"\tDecode(\"11\") = {nil, 3, 4}\n",
		"\tDecode(\"100\") = {2, 3, 3}\n",
		"\tDecode(\"101\") = {3, 3, 3}\n",
		"\tDecode(\"110\") = {nil, 4, 4}\n",
		"\tDecode(\"111\") = {4, 3, 3}\n",
		"\tDecode(\"1100\") = {0, 4, 4}\n",
		"\tDecode(\"1101\") = {1, 4, 4}\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = d.Dump(&buf)
	actualDump := buf.String()
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestDecoder_SingleSymbol(t *testing.T) {
	e, err := NewEncoder([]byte("zzzz"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	d, err := NewDecoder(e.Table())
	if err != nil {
		t.Fatalf("NewDecoder failed: %v", err)
	}

	sym, ok, min, max := d.Decode(MakeCode(1, 0))
	if !ok || sym != 'z' || min != 1 || max != 1 {
		t.Errorf("wrong decode: got {%q, %v, %d, %d}", sym, ok, min, max)
	}
	if _, ok, min, max = d.Decode(MakeCode(1, 1)); ok || min != 0 || max != 0 {
		t.Errorf("expected \"1\" to be rejected, got {%v, %d, %d}", ok, min, max)
	}
}

func TestNewDecoder_Errors(t *testing.T) {
	if _, err := NewDecoder(CodeTable[byte]{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err := NewDecoder(CodeTable[byte]{'a': MakeCode(2, 1), 'b': MakeCode(2, 1)})
	var pce *PrefixConflictError
	if !errors.As(err, &pce) {
		t.Errorf("expected *PrefixConflictError for duplicate codes, got %v", err)
	}

	if _, err := NewDecoder(CodeTable[byte]{'a': MakeCode(1, 2)}); err == nil {
		t.Errorf("expected an error for a code with stray bits")
	}
}
