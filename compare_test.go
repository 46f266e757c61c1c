package huffman

import (
	"testing"
)

func TestCompetitive_Intransitive(t *testing.T) {
	source := makeSource(1, 2, 3, 4)
	codeA := makeCode(source, 3, 3, 2, 1)
	codeB := makeCode(source, 3, 2, 1, 3)
	codeC := makeCode(source, 3, 1, 3, 2)

	if !codeA.Beats(codeC) {
		t.Errorf("expected %v to beat %v", codeA, codeC)
	}
	if !codeC.Beats(codeB) {
		t.Errorf("expected %v to beat %v", codeC, codeB)
	}
	if !codeB.Beats(codeA) {
		t.Errorf("expected %v to beat %v", codeB, codeA)
	}
}

func TestCompetitive_Advantage(t *testing.T) {
	source := makeSource(1, 2, 3, 4)
	codeA := makeCode(source, 3, 3, 2, 1)
	codeB := makeCode(source, 3, 2, 1, 3)

	// b: +2 for B, c: +3 for B, d: +4 for A.
	if adv := codeB.Advantage(codeA); adv != 1 {
		t.Errorf("expected advantage 1, got %d", adv)
	}
	if adv := codeA.Advantage(codeA); adv != 0 {
		t.Errorf("expected advantage 0, got %d", adv)
	}
}

func TestCompetitive_Tournament(t *testing.T) {
	source := makeSource(1, 2, 2, 3, 5)
	codes := PossibleCodes(source, PossibleLengthProfiles(source.Len()))
	for _, a := range codes {
		for _, b := range codes {
			if x, y := a.Advantage(b), b.Advantage(a); x != -y {
				t.Fatalf("advantage not antisymmetric: %v vs %v: %d, %d", a, b, x, y)
			}

			var n int
			for _, holds := range []bool{a.Beats(b), a.Ties(b), a.Loses(b)} {
				if holds {
					n++
				}
			}
			if n != 1 {
				t.Fatalf("%v vs %v: %d of beats/ties/loses hold", a, b, n)
			}

			expect := Tie
			if a.Beats(b) {
				expect = Win
			} else if a.Loses(b) {
				expect = Loss
			}
			if o := Duel(a, b); o != expect {
				t.Fatalf("%v vs %v: expected %v, got %v", a, b, expect, o)
			}
		}
	}
}

func TestOutcome_String(t *testing.T) {
	type testRow struct {
		o      Outcome
		expect string
	}
	testData := [...]testRow{
		{Loss, "loss"},
		{Tie, "tie"},
		{Win, "win"},
		{Outcome(7), "invalid"},
	}
	for _, row := range testData {
		if actual := row.o.String(); actual != row.expect {
			t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
		}
	}
}

func TestCompetitive_Mismatch(t *testing.T) {
	a := makeCode(makeSource(1, 1), 1, 1)
	b := makeCode(makeSource(1, 1, 1), 1, 2, 2)
	c := makeCode(makeSource(1, 2), 1, 1)
	expectPanic(t, "different sizes", func() { a.Advantage(b) })
	expectPanic(t, "different weights", func() { a.Advantage(c) })
}
