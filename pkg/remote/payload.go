package remote

import (
	"github.com/flowsketch/flowsketch/pkg/cfg"
	"github.com/flowsketch/flowsketch/pkg/errors"
)

// Payload is the raw graph document returned by a remote builder,
// before normalization into the canonical [cfg.Graph] shape.
type Payload struct {
	Blocks []PayloadBlock `json:"blocks"`
	Edges  []PayloadEdge  `json:"edges"`
}

// PayloadBlock mirrors [cfg.Block] with a loosely typed kind.
type PayloadBlock struct {
	ID    int      `json:"id"`
	Kind  string   `json:"kind"`
	Lines []string `json:"lines,omitempty"`
	Label string   `json:"label,omitempty"`
}

// PayloadEdge carries edge endpoints under both naming conventions seen
// in the wild. Builders emit either from/to or source/target; pointer
// fields distinguish absent from zero, since 0 is a valid block id.
type PayloadEdge struct {
	From   *int   `json:"from,omitempty"`
	To     *int   `json:"to,omitempty"`
	Source *int   `json:"source,omitempty"`
	Target *int   `json:"target,omitempty"`
	Label  string `json:"label,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Normalize converts a raw remote payload into a canonical graph.
//
// Edge endpoints are unified into from/to, preferring the from/to pair
// when a builder redundantly emits both conventions. Missing colors are
// derived from the edge label, and an absent label stays empty, which
// marks an unconditional edge.
//
// Normalize validates the payload as a whole: unknown block kinds,
// duplicate block ids, edges without endpoints, and edges referencing
// missing blocks are all reported as a single error. It never returns a
// partially normalized graph.
func Normalize(p Payload) (*cfg.Graph, error) {
	if len(p.Blocks) == 0 {
		return nil, errors.New(errors.ErrCodeRemotePayload, "payload has no blocks")
	}

	seen := make(map[int]bool, len(p.Blocks))
	blocks := make([]cfg.Block, 0, len(p.Blocks))
	for i, pb := range p.Blocks {
		kind := cfg.Kind(pb.Kind)
		switch kind {
		case cfg.KindEntry, cfg.KindStatement, cfg.KindDecision, cfg.KindExit:
		default:
			return nil, errors.New(errors.ErrCodeRemotePayload, "block %d has unknown kind %q", i, pb.Kind)
		}
		if seen[pb.ID] {
			return nil, errors.New(errors.ErrCodeRemotePayload, "duplicate block id %d", pb.ID)
		}
		seen[pb.ID] = true
		blocks = append(blocks, cfg.Block{
			ID:    pb.ID,
			Kind:  kind,
			Lines: pb.Lines,
			Label: pb.Label,
		})
	}

	edges := make([]cfg.Edge, 0, len(p.Edges))
	for i, pe := range p.Edges {
		from, to, err := endpoints(pe)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRemotePayload, err, "edge %d", i)
		}
		if !seen[from] || !seen[to] {
			return nil, errors.New(errors.ErrCodeRemotePayload, "edge %d references unknown block (%d -> %d)", i, from, to)
		}
		switch pe.Label {
		case "", cfg.LabelTrue, cfg.LabelFalse:
		default:
			return nil, errors.New(errors.ErrCodeRemotePayload, "edge %d has unknown label %q", i, pe.Label)
		}
		color := pe.Color
		if color == "" {
			color = cfg.ColorFor(pe.Label)
		}
		edges = append(edges, cfg.Edge{
			From:  from,
			To:    to,
			Label: pe.Label,
			Color: color,
		})
	}

	return &cfg.Graph{Blocks: blocks, Edges: edges}, nil
}

// endpoints unifies the two endpoint naming conventions into a single
// from/to pair. The from/to pair wins when both are present.
func endpoints(e PayloadEdge) (from, to int, err error) {
	switch {
	case e.From != nil && e.To != nil:
		return *e.From, *e.To, nil
	case e.Source != nil && e.Target != nil:
		return *e.Source, *e.Target, nil
	}
	return 0, 0, errors.New(errors.ErrCodeRemotePayload, "missing endpoints (need from/to or source/target)")
}
