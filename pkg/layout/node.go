package layout

// Kind distinguishes the variants of a tree [Node].
type Kind int

const (
	// KindRoot is the synthetic exterior node. It has no bases.
	KindRoot Kind = iota
	// KindPair holds two paired bases and sits at their midpoint.
	KindPair
	// KindUnpaired holds a single unpaired base at its own position.
	KindUnpaired
	// KindJunction is the placeholder for the loop enclosed by a pair. When it
	// has several children it sits at the centre of their circle.
	KindJunction
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindPair:
		return "pair"
	case KindUnpaired:
		return "unpaired"
	case KindJunction:
		return "junction"
	default:
		return "unknown"
	}
}

// Rotation is the handedness applied when turning a direction into the
// perpendicular used for pairs and arcs.
type Rotation int

// Rotation signs.
const (
	CounterClockwise Rotation = -1
	Clockwise        Rotation = 1
)

// Node is one element of the layout tree. A and B are base indices: pairs use
// both, unpaired leaves use A, and the remaining kinds leave both at -1.
//
// Pos, Dir and Rotation are zero until the tree is placed.
type Node struct {
	Kind     Kind
	A, B     int
	Children []*Node

	Pos      Point
	Dir      Point
	Rotation Rotation
}

func newNode(kind Kind, a, b int) *Node {
	return &Node{Kind: kind, A: a, B: b}
}

// Bases returns the base indices the node places, in 5' to 3' order.
func (n *Node) Bases() []int {
	switch n.Kind {
	case KindPair:
		return []int{n.A, n.B}
	case KindUnpaired:
		return []int{n.A}
	}
	return nil
}

// Walk calls fn for n and every descendant in depth-first pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}

// pairChildren returns how many children are pairs.
func (n *Node) pairChildren() int {
	count := 0
	for _, c := range n.Children {
		if c.Kind == KindPair {
			count++
		}
	}
	return count
}
