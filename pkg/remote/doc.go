// Package remote delegates graph construction to an external HTTP builder.
//
// # Overview
//
// A remote builder accepts source text and returns a pre-built graph as
// JSON. Different builders name things differently, so the raw payload
// is normalized into the canonical [cfg.Graph] shape before anything
// downstream sees it:
//
//   - Edge endpoints may arrive as from/to or as source/target; both are
//     unified into from/to.
//   - Missing edge colors are derived from the edge label.
//   - Missing labels default to the unconditional empty label.
//
// # Client
//
// [Client] handles the HTTP round trip with retry and response caching:
//
//	client := remote.NewClient("https://builder.example.com/api/build", cache)
//	graph, err := client.Build(ctx, source)
//
// Transient failures (network errors, 5xx, 429) are retried with
// exponential backoff. A malformed payload is reported as a single
// error; it never produces a partially normalized graph.
package remote
