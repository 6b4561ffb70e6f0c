// Package cfg builds control-flow graphs from C-like source snippets.
//
// The builder is deliberately not a language front end. Instead of a
// lexer and parser it runs a single forward pass over the source lines,
// classifying each trimmed line with a fixed-priority rule list and
// folding the results into basic blocks. A second structural pass over
// the block sequence derives the control-flow edges: fallthrough edges
// between consecutive blocks, and True/False branch edges for decision
// blocks.
//
// # Model
//
// A [Graph] pairs an ordered [Block] sequence with an [Edge] set. Block
// IDs come from a monotonic counter and reflect creation order. Every
// graph starts with a synthetic entry block and ends with at least one
// exit block.
//
// # Usage
//
//	g := cfg.Build(source)
//	for _, b := range g.Blocks {
//	    fmt.Println(b.ID, b.Kind, b.DisplayText())
//	}
//
// Extraction and synthesis are pure functions: they never fail, hold no
// shared state, and can be called concurrently on independent inputs.
// Unrecognized lines are dropped without error.
package cfg
