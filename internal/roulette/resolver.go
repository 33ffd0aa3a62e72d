package roulette

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/roulette/pkg/math"
)

// Rect is an axis-aligned box in the horizontal XZ plane. Vec2.Y holds Z.
type Rect struct {
	Min, Max math.Vec2
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p math.Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// PocketRect bounds the four points of two neighbouring boundaries.
// This is a box, not the quadrilateral itself: near the corners it can claim
// ground that belongs to the next pocket.
func PocketRect(a, b PocketBoundary) Rect {
	r := Rect{
		Min: math.Vec2{X: gomath.Inf(1), Y: gomath.Inf(1)},
		Max: math.Vec2{X: gomath.Inf(-1), Y: gomath.Inf(-1)},
	}
	for _, v := range [4]math.Vec3{a[0], a[1], b[0], b[1]} {
		r.Min.X = min(r.Min.X, v.X)
		r.Max.X = max(r.Max.X, v.X)
		r.Min.Y = min(r.Min.Y, v.Z)
		r.Max.Y = max(r.Max.Y, v.Z)
	}
	return r
}

// Locate returns the index of the first pocket whose box contains ball.
// Pockets are the pairs (i, i+1); when closed is set the wrap-around pair
// (n-1, 0) is tried last.
func (t PocketTable) Locate(ball math.Vec2, closed bool) (int, bool) {
	n := len(t)
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		if PocketRect(t[i], t[(i+1)%n]).Contains(ball) {
			return i, true
		}
	}
	return 0, false
}

// Result is the outcome of one round.
type Result struct {
	Index  int
	Pocket Pocket
}

func (r Result) String() string {
	return fmt.Sprintf("pocket %d (%s)", r.Pocket.Number, r.Pocket.Color)
}

// Resolve maps the ball's horizontal position to a pocket of m.
// ok is false when no pocket contains the ball; that is a retry, not an error.
func Resolve(t PocketTable, m Mapping, ball math.Vec2, closed bool) (Result, bool) {
	i, ok := t.Locate(ball, closed)
	if !ok || i >= len(m) {
		return Result{}, false
	}
	return Result{Index: i, Pocket: m[i]}, true
}
