package huffman

import (
	"testing"
)

func TestCodeword_String(t *testing.T) {
	type testRow struct {
		size   Depth
		bits   uint64
		expect string
	}

	testData := [...]testRow{
		{size: 0, bits: 0x00, expect: `""`},
		{size: 1, bits: 0x00, expect: `"0"`},
		{size: 3, bits: 0x04, expect: `"100"`},
		{size: 4, bits: 0x07, expect: `"0111"`},
	}
	for _, row := range testData {
		cw := MakeCodeword(row.size, row.bits)
		t.Run(row.expect, func(t *testing.T) {
			if actual := cw.String(); actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestCodeword_IsPrefixOf(t *testing.T) {
	type testRow struct {
		a, b   Codeword
		expect bool
	}

	testData := [...]testRow{
		{MakeCodeword(1, 0), MakeCodeword(3, 0x1), true},
		{MakeCodeword(1, 1), MakeCodeword(3, 0x1), false},
		{MakeCodeword(2, 0x2), MakeCodeword(4, 0xb), true},
		{MakeCodeword(3, 0x5), MakeCodeword(3, 0x5), true},
		{MakeCodeword(3, 0x5), MakeCodeword(2, 0x2), false},
		{MakeCodeword(0, 0), MakeCodeword(2, 0x3), true},
	}
	for _, row := range testData {
		t.Run(row.a.String()+"_"+row.b.String(), func(t *testing.T) {
			if actual := row.a.IsPrefixOf(row.b); actual != row.expect {
				t.Errorf("expected %v, got %v", row.expect, actual)
			}
		})
	}
}
