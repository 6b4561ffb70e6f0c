package cfg

import "strings"

// Kind classifies a basic block.
type Kind string

// Block kinds.
const (
	KindEntry     Kind = "entry"     // synthetic function entry point
	KindStatement Kind = "statement" // straight-line statements
	KindDecision  Kind = "decision"  // boolean branch (if / else if)
	KindExit      Kind = "exit"      // synthetic function exit point
)

// Edge labels. The empty label marks an unconditional fallthrough edge.
const (
	LabelTrue  = "True"
	LabelFalse = "False"
)

// Edge colors, derived deterministically from the edge label.
const (
	ColorTrue          = "green"
	ColorFalse         = "red"
	ColorUnconditional = "gray"
)

// Marker labels for the synthetic entry and exit blocks.
const (
	StartLabel = "START"
	ExitLabel  = "EXIT"
)

// Block is a basic block: a maximal straight-line run of source lines with
// a single entry and exit point in the control-flow graph.
//
// IDs are assigned from a monotonic counter starting at 0, in creation
// order, and are never reused or renumbered. Because the extractor may
// discard an empty accumulator block, the IDs appearing in a finished
// graph can have gaps; they are still strictly increasing.
type Block struct {
	ID    int      `json:"id"`
	Kind  Kind     `json:"kind"`
	Lines []string `json:"lines,omitempty"` // raw source lines, empty for synthetic blocks
	Label string   `json:"label,omitempty"` // condition text for decisions, START/EXIT markers
}

// DisplayText returns the label if set, otherwise the block's source lines
// joined with newlines. Synthetic blocks without lines or label render as
// an empty string.
func (b Block) DisplayText() string {
	if b.Label != "" {
		return b.Label
	}
	return strings.Join(b.Lines, "\n")
}

// Edge is a directed control-flow edge between two block IDs.
type Edge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label,omitempty"` // "", "True" or "False"
	Color string `json:"color,omitempty"` // derived from Label, informational only
}

// ColorFor returns the display color for an edge label.
// The mapping is fixed: True edges are green, False edges red, and
// unconditional fallthrough edges gray.
func ColorFor(label string) string {
	switch label {
	case LabelTrue:
		return ColorTrue
	case LabelFalse:
		return ColorFalse
	default:
		return ColorUnconditional
	}
}

// Graph is an ordered block sequence plus the edges connecting the blocks.
// A Graph is built fresh on every invocation and never mutated after it is
// returned; callers own their copy exclusively.
type Graph struct {
	Blocks []Block `json:"blocks"`
	Edges  []Edge  `json:"edges"`
}

// Block returns the block with the given ID, if present.
func (g Graph) Block(id int) (Block, bool) {
	for _, b := range g.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// Decisions returns the decision blocks in sequence order.
func (g Graph) Decisions() []Block {
	var out []Block
	for _, b := range g.Blocks {
		if b.Kind == KindDecision {
			out = append(out, b)
		}
	}
	return out
}

// Outgoing returns the edges leaving the block with the given ID,
// in derivation order.
func (g Graph) Outgoing(id int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}
