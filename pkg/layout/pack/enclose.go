package pack

import (
	"math"
	"math/rand/v2"
	"slices"
)

// enclose returns the smallest circle enclosing all circles, using the
// randomized incremental algorithm over a shuffled copy of the input.
func enclose(circles []*circle, rng *rand.Rand) circle {
	cs := make([]circle, len(circles))
	for i, c := range circles {
		cs[i] = *c
	}
	rng.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })

	var (
		basis []circle
		e     circle
		have  bool
	)
	for i := 0; i < len(cs); {
		p := cs[i]
		if have && enclosesWeak(e, p) {
			i++
			continue
		}
		next, ok := extendBasis(basis, p)
		if !ok {
			return boundingCircle(cs)
		}
		basis = next
		e, have, i = encloseBasis(basis), true, 0
	}
	return e
}

func extendBasis(basis []circle, p circle) ([]circle, bool) {
	if enclosesWeakAll(p, basis) {
		return []circle{p}, true
	}

	for _, b := range basis {
		if enclosesNot(p, b) && enclosesWeakAll(encloseBasis2(b, p), basis) {
			return []circle{b, p}, true
		}
	}

	for i := 0; i < len(basis)-1; i++ {
		for j := i + 1; j < len(basis); j++ {
			bi, bj := basis[i], basis[j]
			if enclosesNot(encloseBasis2(bi, bj), p) &&
				enclosesNot(encloseBasis2(bi, p), bj) &&
				enclosesNot(encloseBasis2(bj, p), bi) &&
				enclosesWeakAll(encloseBasis3(bi, bj, p), basis) {
				return []circle{bi, bj, p}, true
			}
		}
	}
	return nil, false
}

func enclosesNot(a, b circle) bool {
	dr := a.r - b.r
	dx, dy := b.x-a.x, b.y-a.y
	return dr < 0 || dr*dr < dx*dx+dy*dy
}

func enclosesWeak(a, b circle) bool {
	dr := a.r - b.r + math.Max(math.Max(a.r, b.r), 1)*1e-9
	dx, dy := b.x-a.x, b.y-a.y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

func enclosesWeakAll(a circle, basis []circle) bool {
	for _, b := range basis {
		if !enclosesWeak(a, b) {
			return false
		}
	}
	return true
}

func encloseBasis(basis []circle) circle {
	switch len(basis) {
	case 1:
		return basis[0]
	case 2:
		return encloseBasis2(basis[0], basis[1])
	default:
		return encloseBasis3(basis[0], basis[1], basis[2])
	}
}

func encloseBasis2(a, b circle) circle {
	x21, y21, r21 := b.x-a.x, b.y-a.y, b.r-a.r
	l := math.Sqrt(x21*x21 + y21*y21)
	if l == 0 {
		if a.r >= b.r {
			return a
		}
		return b
	}
	return circle{
		x: (a.x + b.x + x21/l*r21) / 2,
		y: (a.y + b.y + y21/l*r21) / 2,
		r: (l + a.r + b.r) / 2,
	}
}

// encloseBasis3 solves for the circle internally tangent to a, b and c.
func encloseBasis3(a, b, c circle) circle {
	a2, a3 := a.x-b.x, a.x-c.x
	b2, b3 := a.y-b.y, a.y-c.y
	c2, c3 := b.r-a.r, c.r-a.r
	d1 := a.x*a.x + a.y*a.y - a.r*a.r
	d2 := d1 - b.x*b.x - b.y*b.y + b.r*b.r
	d3 := d1 - c.x*c.x - c.y*c.y + c.r*c.r
	ab := a3*b2 - a2*b3
	if ab == 0 {
		// Collinear centres: the widest pair encloses the third.
		return slices.MaxFunc([]circle{encloseBasis2(a, b), encloseBasis2(a, c), encloseBasis2(b, c)},
			func(p, q circle) int {
				switch {
				case p.r < q.r:
					return -1
				case p.r > q.r:
					return 1
				}
				return 0
			})
	}

	xa := (b2*d3-b3*d2)/(ab*2) - a.x
	xb := (b3*c2 - b2*c3) / ab
	ya := (a3*d2-a2*d3)/(ab*2) - a.y
	yb := (a2*c3 - a3*c2) / ab
	qa := xb*xb + yb*yb - 1
	qb := 2 * (a.r + xa*xb + ya*yb)
	qc := xa*xa + ya*ya - a.r*a.r

	var r float64
	if math.Abs(qa) > 1e-6 {
		r = -(qb + math.Sqrt(qb*qb-4*qa*qc)) / (2 * qa)
	} else {
		r = -(qc / qb)
	}
	return circle{x: a.x + xa + xb*r, y: a.y + ya + yb*r, r: r}
}

// boundingCircle is a loose enclosing circle around the centroid, used
// only if the exact search cannot make progress on degenerate input.
func boundingCircle(cs []circle) circle {
	var cx, cy float64
	for _, c := range cs {
		cx += c.x
		cy += c.y
	}
	cx /= float64(len(cs))
	cy /= float64(len(cs))

	var r float64
	for _, c := range cs {
		r = math.Max(r, math.Hypot(c.x-cx, c.y-cy)+c.r)
	}
	return circle{x: cx, y: cy, r: r}
}
