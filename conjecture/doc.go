// Package conjecture searches random weighted sources for counterexamples to
// conjectures about the competitive optimality of Huffman codes.
//
// A Harness draws Sources from a seeded huffman.Sampler per worker, skips
// those whose Huffman codes all tie, and tests the rest against one
// Conjecture.  The first counterexample found stops every worker.
//
// Runs are logged with log/slog, traced with OpenTelemetry, and counted in
// Prometheus collectors.
//
package conjecture
