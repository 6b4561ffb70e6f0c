// Package io provides JSON import and export for control-flow graphs.
//
// The JSON format mirrors the in-memory [cfg.Graph] shape and is stable
// across runs: block declaration order and edge derivation order are
// preserved, so export → import → export round-trips byte-identically.
package io
