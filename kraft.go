package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCode is returned by CheckLengths when given no lengths.
	ErrEmptyCode = errors.New("empty code")

	// ErrCodeTooLong is returned by CheckLengths when a length exceeds
	// MaxDepth.
	ErrCodeTooLong = errors.New("invalid bit length")

	// ErrDegenerate is returned by CheckLengths when the lengths do not
	// describe a full binary tree.
	ErrDegenerate = errors.New("degenerate Huffman tree")
)

// CheckLengths verifies that the given codeword lengths, in any order, are
// the leaf depths of some full binary tree; that is, that they satisfy
// Kraft's equality, sum(2^-length) == 1.
//
// A single length of 0 is the degenerate code for a one-symbol alphabet and is
// permitted.  Lengths of 0 are otherwise invalid.
//
func CheckLengths(lengths []Depth) error {
	if len(lengths) == 0 {
		return ErrEmptyCode
	}
	if len(lengths) == 1 && lengths[0] == 0 {
		return nil
	}

	var countArray [MaxDepth + 1]uint64
	var maxSize Depth
	for _, size := range lengths {
		if size == 0 {
			return fmt.Errorf("%w: zero-length codeword among %d symbols", ErrDegenerate, len(lengths))
		}

		// forbid codes with sizes greater than MaxDepth
		if size > MaxDepth {
			return fmt.Errorf("%w: got %d, max %d", ErrCodeTooLong, size, MaxDepth)
		}

		if maxSize < size {
			maxSize = size
		}
		countArray[size]++
	}

	// Walk down the tree one level at a time.  available is the number of
	// nodes at depth bits that are not yet claimed by a leaf; each
	// unclaimed node splits into two at the next level.
	available := uint64(1)
	for bits := Depth(1); bits <= maxSize; bits++ {
		available <<= 1
		if countArray[bits] > available {
			return fmt.Errorf("%w: %d codewords of length %d, only %d available", ErrDegenerate, countArray[bits], bits, available)
		}
		available -= countArray[bits]
	}

	if available != 0 {
		return fmt.Errorf("%w: %d codewords of length %d unused", ErrDegenerate, available, maxSize)
	}
	return nil
}
