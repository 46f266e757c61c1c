package huffman

import (
	"fmt"
	"strconv"
)

// Codeword represents a sequence of bits.
type Codeword struct {
	// Size holds the number of valid bits.
	Size Depth

	// Bits holds the actual values of the bits.  The most significant of
	// the Size valid bits is the first bit.
	Bits uint64
}

// MakeCodeword is a convenience function that constructs a Codeword.
func MakeCodeword(size Depth, bits uint64) Codeword {
	return Codeword{Size: size, Bits: bits}
}

// IsPrefixOf returns true iff every bit of cw is also a leading bit of other.
// A codeword is a prefix of itself.
func (cw Codeword) IsPrefixOf(other Codeword) bool {
	if cw.Size > other.Size {
		return false
	}
	return other.Bits>>(other.Size-cw.Size) == cw.Bits
}

// String returns the string representation of this Codeword.
func (cw Codeword) String() string {
	if cw.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(cw.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, cw.Bits))
}

var _ fmt.Stringer = Codeword{}
