package cfg

// Synthesize derives the control-flow edges for an ordered block sequence.
// The derivation is purely structural: it reads only block order and kind,
// never the source text.
//
// Consecutive blocks are connected by unconditional fallthrough edges.
// A decision block instead gets a True edge to the block that follows it
// and a False edge to the first decision or exit block found by a bounded
// forward scan. When no qualifying block exists the decision is left
// dangling with only its True edge; that is a structurally valid, if
// semantically incomplete, graph.
func Synthesize(blocks []Block) []Edge {
	var edges []Edge
	for i := 0; i+1 < len(blocks); i++ {
		switch blocks[i].Kind {
		case KindDecision:
			edges = append(edges, newEdge(blocks[i].ID, blocks[i+1].ID, LabelTrue))
			if j, ok := falseTarget(blocks, i+2); ok {
				edges = append(edges, newEdge(blocks[i].ID, blocks[j].ID, LabelFalse))
			}
		case KindExit:
			// Exit blocks have no outgoing edges.
		default:
			edges = append(edges, newEdge(blocks[i].ID, blocks[i+1].ID, ""))
		}
	}
	return edges
}

// Build runs extraction and edge synthesis in one step, returning the
// finished graph for the given source text. Build is a total function:
// any string input yields a valid graph.
func Build(source string) Graph {
	blocks := Extract(source)
	return Graph{Blocks: blocks, Edges: Synthesize(blocks)}
}

// falseTarget scans forward from index start for the first decision or
// exit block. The scan is bounded by the sequence length; there is no
// merge-point or nesting analysis.
func falseTarget(blocks []Block, start int) (int, bool) {
	for j := start; j < len(blocks); j++ {
		if k := blocks[j].Kind; k == KindDecision || k == KindExit {
			return j, true
		}
	}
	return 0, false
}

func newEdge(from, to int, label string) Edge {
	return Edge{From: from, To: to, Label: label, Color: ColorFor(label)}
}
