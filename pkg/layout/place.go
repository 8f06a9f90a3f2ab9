package layout

import "math"

// placer assigns positions to a built tree.
type placer struct {
	primary float64
	pair    float64
}

// place positions n and its subtree. start is the position proposed by the
// parent and dir the unit direction the parent looks along.
func (p placer) place(n *Node, start, dir Point, rot Rotation) {
	n.Dir = dir
	n.Rotation = rot

	switch len(n.Children) {
	case 0:
		n.Pos = start
	case 1:
		n.Pos = start
		child := n.Children[0]
		next := start.Add(dir.Scale(p.primary))
		if child.Kind == KindJunction {
			next = start
		}
		p.place(child, next, dir, rot)
	default:
		p.placeLoop(n, start, dir, rot)
	}
}

// placeLoop spreads the children of n on a circle one radius beyond start.
// Each child takes one primary step of arc; pair children take an extra half
// pair step on either side.
func (p placer) placeLoop(n *Node, start, dir Point, rot Rotation) {
	circumference := float64(len(n.Children)+1)*p.primary + float64(n.pairChildren()+1)*p.pair
	radius := circumference / (2 * math.Pi)
	center := start.Add(dir.Scale(radius))
	n.Pos = center

	cross := dir.Perp(rot)
	walker := p.pair / 2
	for _, child := range n.Children {
		walker += p.primary
		if child.Kind == KindPair {
			walker += p.pair / 2
		}
		pos := onCircle(center, cross, dir, radius, walker/circumference)
		p.place(child, pos, pos.Sub(center).Unit(), rot)
		if child.Kind == KindPair {
			walker += p.pair / 2
		}
	}
}

// onCircle returns the point at fraction t of the way around the circle of
// radius r about center. The walk starts at the point opposite dir and turns
// towards cross.
func onCircle(center, cross, dir Point, r, t float64) Point {
	angle := t*2*math.Pi - math.Pi/2
	return center.
		Add(cross.Scale(math.Cos(angle) * r)).
		Add(dir.Scale(math.Sin(angle) * r))
}

// placeUnstructured lays out n bases that form no pair: a vertical line for
// short chains, otherwise a single circle.
func (p placer) placeUnstructured(res *Result) {
	n := res.Len()
	if n <= 4 {
		for i := range n {
			res.set(i, Point{0, float64(i) * p.primary}, Clockwise)
		}
		return
	}

	circumference := float64(n+1)*p.primary + p.pair
	radius := circumference / (2 * math.Pi)
	dir := Point{0, 1}
	center := dir.Scale(radius)
	cross := dir.Perp(Clockwise)
	walker := p.pair / 2
	for i := range n {
		walker += p.primary
		res.set(i, onCircle(center, cross, dir, radius, walker/circumference), Clockwise)
	}
}
