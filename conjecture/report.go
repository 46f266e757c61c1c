package conjecture

import (
	"bytes"
	"fmt"
	"io"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
)

// LabeledCode is a Code together with the role it plays in a Counterexample.
type LabeledCode struct {
	Label string
	Code  huffman.Code
}

// Counterexample is a Source that refutes a Conjecture, together with the
// Codes that demonstrate it.
type Counterexample struct {
	Conjecture Conjecture
	Source     huffman.Source
	Codes      []LabeledCode
}

// Dump writes a human-readable report of this Counterexample to the given
// writer: the source, then each labeled code with every symbol's weight,
// depth, and canonical codeword.
func (cx *Counterexample) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "counterexample to %v\n", cx.Conjecture)
	fmt.Fprintf(&buf, "source: %v\n", cx.Source)
	for _, lc := range cx.Codes {
		fmt.Fprintf(&buf, "%s: %v\n", lc.Label, lc.Code)
		_, _ = lc.Code.Dump(&buf)
	}
	if len(cx.Codes) >= 2 {
		first, second := cx.Codes[0], cx.Codes[1]
		fmt.Fprintf(&buf, "%s vs %s: %v (advantage %d)\n",
			first.Label, second.Label,
			huffman.Duel(first.Code, second.Code),
			first.Code.Advantage(second.Code))
	}
	return buf.WriteTo(w)
}

// String returns a one-line summary.
func (cx *Counterexample) String() string {
	return fmt.Sprintf("%v counterexample for source [%v]", cx.Conjecture, cx.Source)
}

var _ fmt.Stringer = (*Counterexample)(nil)
