package roulette

import (
	"fmt"
	"sort"

	"github.com/Faultbox/roulette/pkg/math"
)

// PocketBoundary is one radial edge of a pocket: two points on the numbers ring.
type PocketBoundary [2]math.Vec3

// PocketTable holds the pocket boundaries in ring order. Index i lines up with
// entry i of the Mapping; the pocket between boundaries i and i+1 pays mapping[i].
type PocketTable []PocketBoundary

// GroupPockets pairs consecutive vertices into boundaries, sorts them by the
// x coordinate of their first point and shuffles the result into ring order.
func GroupPockets(vertices []math.Vec3) (PocketTable, error) {
	if len(vertices)%2 != 0 {
		return nil, fmt.Errorf("%w: %d vertices", ErrMalformedGeometry, len(vertices))
	}

	groups := make(PocketTable, 0, len(vertices)/2)
	for i := 0; i < len(vertices); i += 2 {
		groups = append(groups, PocketBoundary{vertices[i], vertices[i+1]})
	}
	if len(groups) < 2 {
		return nil, fmt.Errorf("%w: %d boundaries", ErrInsufficientGeometry, len(groups))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i][0].X < groups[j][0].X
	})

	return shuffle(groups), nil
}

// shuffle walks the x-sorted boundaries forward on even indices and back on
// odd ones. Sorting a ring by x puts its two halves at alternating positions,
// so this restores angular adjacency.
func shuffle(sorted PocketTable) PocketTable {
	n := len(sorted)
	out := make(PocketTable, 0, n)
	for i := 0; i < n; i += 2 {
		out = append(out, sorted[i])
	}
	// Largest odd index below n: n-2 for odd n, n-1 for even n.
	start := n - 1
	if start%2 == 0 {
		start--
	}
	for i := start; i > 0; i -= 2 {
		out = append(out, sorted[i])
	}
	return out
}

// BuildPocketTable runs extraction and grouping over a raw vertex buffer.
func BuildPocketTable(buf []float32) (PocketTable, error) {
	return GroupPockets(ExtractVertices(buf))
}

// Clone returns a deep copy of the table.
func (t PocketTable) Clone() PocketTable {
	out := make(PocketTable, len(t))
	copy(out, t)
	return out
}
