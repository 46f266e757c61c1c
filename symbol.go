package huffman

import (
	"math"
	"strconv"
)

// Symbol represents a symbol in an arbitrary alphabet.  Symbols are opaque
// labels; the only requirement is that they be unique within a Source.
type Symbol rune

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// String returns the symbol as a one-character string, or a quoted rune
// literal if the symbol is not printable.
func (s Symbol) String() string {
	if s == InvalidSymbol {
		return "<invalid>"
	}
	if strconv.IsPrint(rune(s)) {
		return string(rune(s))
	}
	return strconv.QuoteRune(rune(s))
}

// Weight is the (unnormalized) probability of a symbol.  Weights in a valid
// Source are always strictly positive.
type Weight uint32

// MaxWeight is the largest representable Weight.
const MaxWeight = Weight(math.MaxUint32)

// Depth is the depth of a leaf within a code tree, which is also the length
// in bits of that leaf's codeword.
type Depth uint8

// MaxDepth is the deepest leaf this package will represent.  A full binary
// tree over len(DefaultAlphabet) leaves is at most 51 levels deep.
const MaxDepth = Depth(63)

// DefaultAlphabet is the set of labels used by Sampler unless told
// otherwise.  Its length is the largest Source that Sampler can generate.
var DefaultAlphabet = []Symbol{
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm',
	'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
}
