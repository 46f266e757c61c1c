package huffman

import (
	"errors"
	"testing"
)

func TestCheckLengths(t *testing.T) {
	type testRow struct {
		name    string
		lengths []Depth
		err     error
	}

	testData := [...]testRow{
		{"empty", nil, ErrEmptyCode},
		{"one-symbol", []Depth{0}, nil},
		{"two-symbols", []Depth{1, 1}, nil},
		{"deflate-example", []Depth{4, 4, 3, 3, 3, 1}, nil},
		{"any-order", []Depth{3, 1, 4, 3, 4, 3}, nil},
		{"incomplete", []Depth{1, 2}, ErrDegenerate},
		{"over-subscribed", []Depth{1, 1, 1}, ErrDegenerate},
		{"zero-among-many", []Depth{0, 1}, ErrDegenerate},
		{"too-long", []Depth{1, MaxDepth + 1}, ErrCodeTooLong},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			err := CheckLengths(row.lengths)
			if row.err == nil && err != nil {
				t.Errorf("expected success, got %v", err)
			}
			if row.err != nil && !errors.Is(err, row.err) {
				t.Errorf("expected %v, got %v", row.err, err)
			}
		})
	}
}

func TestCheckLengths_Deep(t *testing.T) {
	// A comb over MaxDepth+1 leaves is the deepest tree we can describe.
	lengths := make([]Depth, 0, int(MaxDepth)+1)
	for d := Depth(1); d <= MaxDepth; d++ {
		lengths = append(lengths, d)
	}
	lengths = append(lengths, MaxDepth)
	if err := CheckLengths(lengths); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}
