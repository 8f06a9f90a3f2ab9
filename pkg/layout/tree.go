package layout

import (
	"github.com/matzehuels/rnalayout/pkg/errors"
)

// DefaultMaxDepth bounds the nesting depth of the layout tree. Each enclosed
// helix adds one level, so real molecules stay far below it.
const DefaultMaxDepth = 100_000

// builder turns a symmetric, nested pairing map into a layout tree.
type builder struct {
	pairs    []int
	maxDepth int
}

// buildTree returns the root of the layout tree for pairs, or nil when pairs
// holds no base pair at all.
func buildTree(pairs []int, maxDepth int) (*Node, error) {
	if !anyPaired(pairs) {
		return nil, nil
	}
	b := builder{pairs: pairs, maxDepth: maxDepth}
	root := newNode(KindRoot, -1, -1)
	if err := b.scan(root, 0, len(pairs)-1, 0); err != nil {
		return nil, err
	}
	return root, nil
}

// add attaches the subtree for [start, end] to parent. A range closed by a
// pair becomes a pair node; anything else becomes a junction holding the
// scanned contents of the range.
func (b *builder) add(parent *Node, start, end, depth int) error {
	if start > end {
		return errors.New(errors.ErrCodeMalformedRange, "range start %d is past end %d", start, end)
	}
	if depth > b.maxDepth {
		return errors.New(errors.ErrCodeInvalidInput, "structure nests deeper than %d levels", b.maxDepth)
	}

	if b.pairs[start] == end {
		n := newNode(KindPair, start, end)
		if start+1 <= end-1 {
			if err := b.add(n, start+1, end-1, depth+1); err != nil {
				return err
			}
		}
		parent.Children = append(parent.Children, n)
		return nil
	}

	n := newNode(KindJunction, -1, -1)
	if err := b.scan(n, start, end, depth); err != nil {
		return err
	}
	parent.Children = append(parent.Children, n)
	return nil
}

// scan walks [start, end] left to right, adding unpaired leaves and pair
// subtrees to parent. A partner outside the range means two pairs cross.
func (b *builder) scan(parent *Node, start, end, depth int) error {
	for i := start; i <= end; i++ {
		j := b.pairs[i]
		switch {
		case j < 0:
			parent.Children = append(parent.Children, newNode(KindUnpaired, i, -1))
		case j > end || j < start:
			return errors.New(errors.ErrCodeMalformedRange,
				"pair (%d, %d) crosses the range [%d, %d]", i, j, start, end)
		case j < i:
			return errors.New(errors.ErrCodeMalformedRange,
				"base %d closes pair with %d before it was opened", i, j)
		default:
			if err := b.add(parent, i, j, depth+1); err != nil {
				return err
			}
			i = j
		}
	}
	return nil
}

func anyPaired(pairs []int) bool {
	for _, p := range pairs {
		if p >= 0 {
			return true
		}
	}
	return false
}
