package layout

import "math"

// Point is a 2-D coordinate or vector.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Unit returns p scaled to length one. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return p.Scale(1 / l)
}

// Perp returns p rotated by 90 degrees and multiplied by the rotation sign.
func (p Point) Perp(r Rotation) Point {
	s := float64(r)
	return Point{-p.Y * s, p.X * s}
}

// Bounds is a closed interval on one axis.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (b Bounds) Span() float64 { return b.Max - b.Min }

func emptyBounds() Bounds { return Bounds{Min: math.Inf(1), Max: math.Inf(-1)} }

func (b *Bounds) extend(v float64) {
	b.Min = math.Min(b.Min, v)
	b.Max = math.Max(b.Max, v)
}
