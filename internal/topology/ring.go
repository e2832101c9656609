package topology

// clockwise reports whether a closed, simple ring's vertex sequence
// winds clockwise in standard orientation (y axis upward) — spec.md
// §4.3. It treats the vertices as vectors from the first vertex and
// accumulates the signed cross product of consecutive difference
// vectors, equivalent to the shoelace-sign test without recomputing
// the first vertex.
//
// A sum of exactly zero is treated as clockwise per spec.md's explicit
// tie-break; spec.md flags this as a possibly-unintentional artifact
// of the source and directs implementers to treat degenerate
// (collinear) rings as invalid input rather than lean on the sign
// convention. This package does the latter: callers are expected to
// hand clockwise only closed, simple, non-degenerate rings, and a zero
// sum in practice means exactly that degenerate case, not a genuine
// ambiguous winding.
func clockwise(ring LineString) bool {
	origin := ring[0]
	var sum float64
	for i := 1; i+1 < len(ring); i++ {
		a := XY{ring[i].X - origin.X, ring[i].Y - origin.Y}
		b := XY{ring[i+1].X - origin.X, ring[i+1].Y - origin.Y}
		sum += a.X*b.Y - a.Y*b.X
	}
	return sum <= 0
}

// sameCoord compares two coordinates for exact (bit) equality, per
// spec.md §3's point-equality rule.
func sameCoord(a, b XY) bool { return a == b }

// orientation reports whether sec's coordinate sequence appears within
// ref (a closed, simple ring) in the same direction (true) or reversed
// (false) — spec.md §4.3. sec must be a contiguous subsequence of ref
// in one direction or the other; any other relationship is
// ErrOrientationMismatch.
func orientation(ref LineString, sec LineString) (bool, error) {
	n := len(ref) - 1 // ref is closed; n distinct vertices walking forward
	if n < 1 || len(sec) < 2 {
		return false, &ErrOrientationMismatch{RingLen: len(ref), EdgeLen: len(sec)}
	}

	findStart := func(p XY) (int, bool) {
		for i := 0; i < n; i++ {
			if sameCoord(ref[i], p) {
				return i, true
			}
		}
		return 0, false
	}

	matches := func(start, step int) bool {
		idx := start
		for i := 0; i < len(sec); i++ {
			if !sameCoord(ref[idx], sec[i]) {
				return false
			}
			idx = ((idx+step)%n + n) % n
		}
		return true
	}

	if start, ok := findStart(sec[0]); ok && matches(start, 1) {
		return true, nil
	}
	if start, ok := findStart(sec[0]); ok && matches(start, -1) {
		return false, nil
	}
	return false, &ErrOrientationMismatch{RingLen: len(ref), EdgeLen: len(sec)}
}

// ringEdge is one candidate edge offered to buildRing: its own
// coordinate sequence plus the label (an arbitrary caller-supplied
// value, usually a global edge index) to emit once placed.
type ringEdge struct {
	Geom  LineString
	Label int
}

// buildRing reconstructs the ordered, oriented cycle of edges whose
// union is target, from an unordered bag of candidate edges — spec.md
// §4.3's build_ring.
//
// Tie-break: per spec.md's documented Open Question, when more than
// one unplaced edge's endpoint meets the current pivot (only possible
// at a pinch point), this implementation picks the candidate with the
// smallest original index in edges — a deterministic, documented rule,
// not the source's unspecified iteration order.
func buildRing(target LineString, edges []ringEdge) ([]RingEdgeRef, error) {
	if len(edges) == 0 {
		return nil, &ErrRingReconstructionFailed{PlacedEdges: 0, RemainingEdges: 0}
	}

	placed := make([]bool, len(edges))

	dir0, err := orientation(target, edges[0].Geom)
	if err != nil {
		return nil, err
	}
	placed[0] = true
	result := []RingEdgeRef{{EdgeIndex: edges[0].Label, Forward: dir0}}
	pivot := farEndpoint(edges[0].Geom, dir0)

	for remaining := len(edges) - 1; remaining > 0; remaining-- {
		nextIdx := -1
		nextDir := true
		for i, e := range edges {
			if placed[i] {
				continue
			}
			if sameCoord(e.Geom.first(), pivot) {
				if nextIdx == -1 {
					nextIdx, nextDir = i, true
				}
			} else if sameCoord(e.Geom.last(), pivot) {
				if nextIdx == -1 {
					nextIdx, nextDir = i, false
				}
			}
			// Smallest-index tie-break: once nextIdx is set from an
			// earlier (smaller-index) candidate, later matches are
			// ignored, so the first match in index order always wins.
		}
		if nextIdx == -1 {
			return nil, &ErrRingReconstructionFailed{
				PlacedEdges:    len(edges) - remaining,
				RemainingEdges: remaining,
			}
		}
		placed[nextIdx] = true
		result = append(result, RingEdgeRef{EdgeIndex: edges[nextIdx].Label, Forward: nextDir})
		pivot = farEndpoint(edges[nextIdx].Geom, nextDir)
	}

	// Every edge is placed; the walk must end where the first edge began,
	// otherwise the bag does not close into a ring.
	if !sameCoord(pivot, farEndpoint(edges[0].Geom, !dir0)) {
		return nil, &ErrRingReconstructionFailed{PlacedEdges: len(edges), RemainingEdges: 0}
	}

	return result, nil
}

// farEndpoint returns the endpoint of e opposite to the one already
// consumed, given the direction e was traversed in.
func farEndpoint(e LineString, forward bool) XY {
	if forward {
		return e.last()
	}
	return e.first()
}
