package layout

import (
	"math"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

// Result holds the coordinates computed for every base, indexed by base
// position, together with the bounding box of all coordinates.
type Result struct {
	X       []float64
	Y       []float64
	BoundsX Bounds
	BoundsY Bounds

	// RotationSigns holds the rotation sign of the node that placed each
	// base. Consumers use it to orient base glyphs.
	RotationSigns []Rotation

	written []bool
}

func newResult(n int) *Result {
	return &Result{
		X:             make([]float64, n),
		Y:             make([]float64, n),
		BoundsX:       emptyBounds(),
		BoundsY:       emptyBounds(),
		RotationSigns: make([]Rotation, n),
		written:       make([]bool, n),
	}
}

// Len returns the number of bases in the layout.
func (r Result) Len() int { return len(r.X) }

// At returns the coordinates of base i.
func (r Result) At(i int) (x, y float64) { return r.X[i], r.Y[i] }

// Point returns the coordinates of base i as a [Point].
func (r Result) Point(i int) Point { return Point{r.X[i], r.Y[i]} }

// Width returns the horizontal extent of the layout.
func (r Result) Width() float64 { return r.BoundsX.Span() }

// Height returns the vertical extent of the layout.
func (r Result) Height() float64 { return r.BoundsY.Span() }

func (r *Result) set(i int, p Point, rot Rotation) {
	r.X[i], r.Y[i] = p.X, p.Y
	r.RotationSigns[i] = rot
	r.written[i] = true
	r.BoundsX.extend(p.X)
	r.BoundsY.extend(p.Y)
}

// extract writes the bases held by every node of the placed tree.
func (r *Result) extract(root *Node, pairSpacing float64) {
	root.Walk(func(n *Node) {
		switch n.Kind {
		case KindPair:
			offset := n.Dir.Perp(n.Rotation).Scale(pairSpacing / 2)
			r.set(n.A, n.Pos.Add(offset), n.Rotation)
			r.set(n.B, n.Pos.Sub(offset), n.Rotation)
		case KindUnpaired:
			r.set(n.A, n.Pos, n.Rotation)
		}
	})
}

// finish checks that every base was placed and normalizes empty bounds.
func (r *Result) finish() error {
	for i, ok := range r.written {
		if !ok {
			return errors.New(errors.ErrCodeInternal, "base %d was not placed", i)
		}
	}
	if math.IsInf(r.BoundsX.Min, 1) {
		r.BoundsX, r.BoundsY = Bounds{}, Bounds{}
	}
	r.written = nil
	return nil
}
