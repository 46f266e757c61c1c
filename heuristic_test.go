package huffman

import (
	"testing"
)

func TestIsProbablyCompetitivelyOptimal(t *testing.T) {
	comb := makeLeaves(4, 3, 2, 1)
	pair := makeLeaves(4, 3, 2)
	lopsided := makeLeaves(1, 5)
	light := makeLeaves(1, 1, 4)

	type testRow struct {
		name   string
		tree   *Tree
		expect bool
	}

	testData := [...]testRow{
		{"single-leaf", Leaf(7, 'a'), true},
		{"two-leaves", Branch(lopsided[0], lopsided[1]), true},
		{"comb", Branch(comb[0], Branch(comb[1], Branch(comb[2], comb[3]))), false},
		{"leaf-vs-pair", Branch(pair[0], Branch(pair[1], pair[2])), true},
		{"balanced", Branch(Branch(comb[0], comb[3]), Branch(comb[1], comb[2])), true},
		{"light-pair", Branch(Branch(light[0], light[1]), light[2]), false},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			if actual := IsProbablyCompetitivelyOptimal(row.tree); actual != row.expect {
				t.Errorf("%v: expected %v, got %v", row.tree, row.expect, actual)
			}
		})
	}
}

func TestIsProbablyCompetitivelyOptimal_RejectsUnbeaten(t *testing.T) {
	source := makeSource(1, 1, 4)
	leaves := source.Leaves()
	tree := Branch(Branch(leaves[0], leaves[1]), leaves[2])
	code := Flatten(tree)

	if expect := makeCode(source, 2, 2, 1); !code.Equal(expect) {
		t.Fatalf("wrong code:\n\texpect: %v\n\tactual: %v", expect, code)
	}
	if !GloballyUnbeaten(code, source, PossibleLengthProfiles(3)) {
		t.Errorf("%v: expected globally unbeaten", code)
	}
	if IsProbablyCompetitivelyOptimal(tree) {
		t.Errorf("%v: expected the filter to reject it", tree)
	}
}
