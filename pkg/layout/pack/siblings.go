package pack

import (
	"math"
	"math/rand/v2"
)

// circle is a working circle in unscaled packing coordinates.
type circle struct {
	x, y, r float64
}

// chainNode is an element of the circular front-chain: the circles on the
// current outer boundary of the pack.
type chainNode struct {
	c          *circle
	next, prev *chainNode
}

// packSiblings places circles tangent to each other around the origin in
// slice order and returns the radius of their enclosing circle. On return
// the enclosing circle is centred on the origin.
func packSiblings(circles []*circle, rng *rand.Rand) float64 {
	n := len(circles)
	if n == 0 {
		return 0
	}

	a := circles[0]
	a.x, a.y = 0, 0
	if n == 1 {
		return a.r
	}

	b := circles[1]
	a.x, b.x, b.y = -b.r, a.r, 0
	if n == 2 {
		return a.r + b.r
	}

	place(b, a, circles[2])

	na := &chainNode{c: a}
	nb := &chainNode{c: b}
	nc := &chainNode{c: circles[2]}
	na.next, nc.prev = nb, nb
	nb.next, na.prev = nc, nc
	nc.next, nb.prev = na, na

pack:
	for i := 3; i < n; i++ {
		place(na.c, nb.c, circles[i])
		cn := &chainNode{c: circles[i]}

		// Find the closest intersecting circle on the front-chain, measured
		// by distance along the chain in either direction.
		j, k := nb.next, na.prev
		sj, sk := nb.c.r, na.c.r
		for {
			if sj <= sk {
				if intersects(j.c, cn.c) {
					nb = j
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sj += j.c.r
				j = j.next
			} else {
				if intersects(k.c, cn.c) {
					na = k
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sk += k.c.r
				k = k.prev
			}
			if j == k.next {
				break
			}
		}

		// Insert cn between na and nb.
		cn.prev, cn.next = na, nb
		na.next, nb.prev = cn, cn
		nb = cn

		// Move the insertion pair to the one closest to the centroid.
		best := score(na)
		for c := cn.next; c != nb; c = c.next {
			if s := score(c); s < best {
				na, best = c, s
			}
		}
		nb = na.next
	}

	front := []*circle{nb.c}
	for c := nb.next; c != nb; c = c.next {
		front = append(front, c.c)
	}
	e := enclose(front, rng)

	for _, c := range circles {
		c.x -= e.x
		c.y -= e.y
	}
	return e.r
}

// place positions c tangent to both a and b.
func place(b, a, c *circle) {
	dx, dy := b.x-a.x, b.y-a.y
	d2 := dx*dx + dy*dy
	if d2 == 0 {
		c.x, c.y = a.x+c.r, a.y
		return
	}

	a2 := (a.r + c.r) * (a.r + c.r)
	b2 := (b.r + c.r) * (b.r + c.r)
	if a2 > b2 {
		x := (d2 + b2 - a2) / (2 * d2)
		y := math.Sqrt(math.Max(0, b2/d2-x*x))
		c.x = b.x - x*dx - y*dy
		c.y = b.y - x*dy + y*dx
		return
	}
	x := (d2 + a2 - b2) / (2 * d2)
	y := math.Sqrt(math.Max(0, a2/d2-x*x))
	c.x = a.x + x*dx - y*dy
	c.y = a.y + x*dy + y*dx
}

func intersects(a, b *circle) bool {
	dr := a.r + b.r - 1e-6
	dx, dy := b.x-a.x, b.y-a.y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

// score is the squared distance from the origin to the weighted midpoint
// between a chain node and its successor.
func score(n *chainNode) float64 {
	a, b := n.c, n.next.c
	ab := a.r + b.r
	if ab == 0 {
		return a.x*a.x + a.y*a.y
	}
	dx := (a.x*b.r + b.x*a.r) / ab
	dy := (a.y*b.r + b.y*a.r) / ab
	return dx*dx + dy*dy
}
