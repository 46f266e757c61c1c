package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// Outcome is the result of comparing two Codes competitively.
type Outcome int8

const (
	Loss Outcome = -1
	Tie  Outcome = 0
	Win  Outcome = 1
)

// String returns "loss", "tie", or "win".
func (o Outcome) String() string {
	switch o {
	case Loss:
		return "loss"
	case Tie:
		return "tie"
	case Win:
		return "win"
	default:
		return "invalid"
	}
}

// Advantage returns the competitive advantage of c over other: the total
// weight of the symbols to which c assigns a strictly shorter codeword, minus
// the total weight of the symbols to which other assigns a strictly shorter
// codeword.  Symbols of equal depth contribute nothing.
//
// Both Codes must cover the same (symbol, weight) pairs.
// c.Advantage(other) == -other.Advantage(c) always holds.
//
func (c Code) Advantage(other Code) int64 {
	assert.Assertf(len(c.entries) == len(other.entries), "Advantage: codes have %d and %d symbols", len(c.entries), len(other.entries))

	var sum int64
	for index, a := range c.entries {
		b := other.entries[index]
		assert.Assertf(a.Symbol == b.Symbol && a.Weight == b.Weight, "Advantage: codes disagree at %v:%d vs %v:%d", a.Symbol, a.Weight, b.Symbol, b.Weight)
		switch {
		case a.Depth < b.Depth:
			sum += int64(a.Weight)
		case a.Depth > b.Depth:
			sum -= int64(a.Weight)
		}
	}
	return sum
}

// Beats returns true iff c has a strictly positive advantage over other.
//
// Beats is not transitive: three Codes can each beat the next in a cycle.  It
// must never be used to sort Codes.
//
func (c Code) Beats(other Code) bool {
	return c.Advantage(other) > 0
}

// Loses returns true iff other beats c.
func (c Code) Loses(other Code) bool {
	return c.Advantage(other) < 0
}

// Ties returns true iff neither Code beats the other.
func (c Code) Ties(other Code) bool {
	return c.Advantage(other) == 0
}

// Duel returns the Outcome of comparing a against b.  Exactly one of
// a.Beats(b), a.Ties(b), a.Loses(b) holds, and Duel reports which.
func Duel(a, b Code) Outcome {
	switch adv := a.Advantage(b); {
	case adv > 0:
		return Win
	case adv < 0:
		return Loss
	default:
		return Tie
	}
}
