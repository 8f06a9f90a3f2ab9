package layout

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of a placed layout tree.
//
// Node representation:
//   - Root: labeled "root", ellipse shape
//   - Pair nodes: labeled "i-j", box shape
//   - Unpaired leaves: labeled with the base index, rounded box shape
//   - Junctions: labeled "J", point-sized circle
//
// Every node label carries its placed position. A nil root produces an empty
// digraph.
func ToDOT(root *Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph LayoutTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if root != nil {
		writeDOTNode(&buf, root, 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, n *Node, id int) int {
	nodeID := fmt.Sprintf("n%d", id)
	next := id + 1
	pos := fmt.Sprintf("(%.1f, %.1f)", n.Pos.X, n.Pos.Y)

	switch n.Kind {
	case KindRoot:
		fmt.Fprintf(buf, "  %s [label=%q, shape=ellipse];\n", nodeID, "root\n"+pos)
	case KindPair:
		fmt.Fprintf(buf, "  %s [label=%q, shape=box];\n", nodeID, fmt.Sprintf("%d-%d\n%s", n.A, n.B, pos))
	case KindUnpaired:
		fmt.Fprintf(buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", nodeID, fmt.Sprintf("%d\n%s", n.A, pos))
	case KindJunction:
		fmt.Fprintf(buf, "  %s [label=%q, shape=circle, fillcolor=lightgrey];\n", nodeID, "J\n"+pos)
	}

	for _, c := range n.Children {
		fmt.Fprintf(buf, "  %s -> n%d;\n", nodeID, next)
		next = writeDOTNode(buf, c, next)
	}
	return next
}

// RenderTreeSVG renders the layout tree rooted at root as an SVG document.
// It requires the Graphviz runtime bundled with github.com/goccy/go-graphviz.
func RenderTreeSVG(ctx context.Context, root *Node) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(root)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
