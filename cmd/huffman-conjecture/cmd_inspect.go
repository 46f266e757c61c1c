package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	huffman "github.com/chronos-tachyon/huffman-conjecture"
)

func (a *app) reduceCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "reduce WEIGHT...",
		Short: "Print every Huffman tree of a source, its code, and their tournament",
		Args:  cobra.RangeArgs(1, len(huffman.DefaultAlphabet)),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseSource(args)
			if err != nil {
				return err
			}

			trees, err := huffman.Reducer{}.Reduce(cmd.Context(), source.Leaves())
			if err != nil {
				return err
			}
			a.logger.Debug("reduced source", "source", source.String(), "trees", len(trees))

			codes := make([]huffman.Code, len(trees))
			for index, tree := range trees {
				codes[index] = huffman.Flatten(tree)
			}

			w := a.stdout
			fmt.Fprintf(w, "source: %v\n", source)
			fmt.Fprintf(w, "%d Huffman trees\n", len(trees))

			tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "#\ttree\tcode\tmax depth\theuristic\tunbeaten")
			for index, tree := range trees {
				fmt.Fprintf(tw, "%d\t%v\t%v\t%d\t%t\t%t\n",
					index, tree, codes[index], codes[index].MaxDepth(),
					huffman.IsProbablyCompetitivelyOptimal(tree),
					huffman.Unbeaten(codes[index], codes))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(codes) > 1 {
				fmt.Fprintln(w, "tournament (row vs column):")
				tw = tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
				var header strings.Builder
				for index := range codes {
					fmt.Fprintf(&header, "\t%d", index)
				}
				fmt.Fprintln(tw, header.String())
				for i := range codes {
					fmt.Fprintf(tw, "%d", i)
					for j := range codes {
						fmt.Fprintf(tw, "\t%s", outcomeMark(i, j, codes))
					}
					fmt.Fprintln(tw)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if dump {
				for _, code := range codes {
					if _, err := code.Dump(w); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "also print each code's canonical codewords")
	return cmd
}

func outcomeMark(i, j int, codes []huffman.Code) string {
	if i == j {
		return "-"
	}
	switch huffman.Duel(codes[i], codes[j]) {
	case huffman.Win:
		return "W"
	case huffman.Loss:
		return "L"
	default:
		return "T"
	}
}

// maxProfileLeaves bounds the profiles command; the number of profiles grows
// exponentially with N.
const maxProfileLeaves = 24

func (a *app) profilesCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "profiles N",
		Short: "Print every length profile of N leaves and count their orderings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid leaf count %q: %w", args[0], err)
			}
			if n < 2 || n > maxProfileLeaves {
				return fmt.Errorf("leaf count %d outside [2, %d]", n, maxProfileLeaves)
			}

			profiles := huffman.DefaultProfileCache.Profiles(n)
			orderings := new(big.Int)
			for _, p := range profiles {
				count := countOrderings(p)
				orderings.Add(orderings, count)
				if !quiet {
					fmt.Fprintf(a.stdout, "%v\t%v orderings\n", p, count)
				}
			}
			fmt.Fprintf(a.stdout, "%d profiles, %v orderings\n", len(profiles), orderings)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the totals")
	return cmd
}

// countOrderings returns the multinomial len(p)! / (m1! m2! ...), where each
// m is the multiplicity of one depth in p.
func countOrderings(p huffman.Profile) *big.Int {
	out := new(big.Int).MulRange(1, int64(len(p)))
	run := int64(0)
	for index := range p {
		run++
		if index+1 == len(p) || p[index+1] != p[index] {
			out.Quo(out, new(big.Int).MulRange(1, run))
			run = 0
		}
	}
	return out
}

func parseSource(args []string) (huffman.Source, error) {
	pairs := make([]huffman.SymbolWeight, len(args))
	var total uint64
	for index, arg := range args {
		w, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return huffman.Source{}, fmt.Errorf("invalid weight %q: %w", arg, err)
		}
		if w == 0 {
			return huffman.Source{}, fmt.Errorf("weight %d of symbol %v must be positive", index, huffman.DefaultAlphabet[index])
		}
		total += w
		if total > uint64(huffman.MaxWeight) {
			return huffman.Source{}, fmt.Errorf("total weight %d exceeds %d", total, huffman.MaxWeight)
		}
		pairs[index] = huffman.SymbolWeight{Symbol: huffman.DefaultAlphabet[index], Weight: huffman.Weight(w)}
	}
	return huffman.NewSource(pairs...), nil
}
