// Package huffman searches for prefix codes that competitively dominate
// Huffman codes.
//
// One code beats another for a given source when the total weight of the
// symbols it gives strictly shorter codewords exceeds the total weight of the
// symbols it gives strictly longer ones.  This relation is a tournament, not
// an order: it is not transitive.
//
// The package enumerates every tree the Huffman algorithm can build when ties
// in weight leave the greedy choice open (Reduce), flattens trees into Codes
// (Flatten), compares Codes (Duel, Code.Beats), and enumerates every prefix
// code over a source from its length profiles (PossibleLengthProfiles,
// PossibleCodes) so that a Huffman code can be checked against all rivals.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/Kraft%E2%80%93McMillan_inequality>
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
