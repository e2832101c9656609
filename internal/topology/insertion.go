package topology

import (
	"math"
	"sort"

	"github.com/go-spatial/planargraph/internal/spatialindex"
)

// InsertPoints snaps each of points into whichever of edges it lies
// within eps of, preserving each edge's segment order — spec.md §4.4.
// It is used only by the source-attribution pass (process_sources) to
// re-split the *original* input line strings at every derived node;
// the topological edges themselves never need this, they are already
// correct by construction.
//
// Points already coincident with an existing vertex of their target
// edge are skipped. Edges are returned in the same order and count as
// given; only their coordinate sequences are ever modified.
func InsertPoints(edges []LineString, points []XY, eps float64) []LineString {
	if len(points) == 0 || len(edges) == 0 {
		return edges
	}

	edgeIndex := spatialindex.New()
	for i, e := range edges {
		edgeIndex.Insert(i, e.bbox())
	}

	type insertion struct {
		segment  int
		distance float64 // distance of point from the segment's start vertex
		point    XY
	}
	perEdge := make(map[int][]insertion)

	for _, p := range points {
		bbox := spatialindex.Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}.Expanded(eps)
		for _, edgeID := range edgeIndex.Query(bbox) {
			e := edges[edgeID]
			if isVertexOf(e, p) {
				continue
			}
			seg, dist, segDist := nearestSegment(e, p)
			if seg == -1 || dist > eps {
				continue
			}
			perEdge[edgeID] = append(perEdge[edgeID], insertion{segment: seg, distance: segDist, point: p})
		}
	}

	out := make([]LineString, len(edges))
	copy(out, edges)

	for edgeID, ins := range perEdge {
		sort.Slice(ins, func(i, j int) bool {
			if ins[i].segment != ins[j].segment {
				return ins[i].segment > ins[j].segment
			}
			return ins[i].distance > ins[j].distance
		})
		geom := append(LineString(nil), out[edgeID]...)
		for _, in := range ins {
			at := in.segment + 1
			geom = append(geom[:at], append(LineString{in.point}, geom[at:]...)...)
		}
		out[edgeID] = geom
	}

	return out
}

func isVertexOf(e LineString, p XY) bool {
	for _, v := range e {
		if sameCoord(v, p) {
			return true
		}
	}
	return false
}

// nearestSegment returns the index of e's segment closest to p, the
// distance from p to that segment, and the distance from p's
// projection to the segment's start vertex (used to order same-segment
// insertions). Returns seg = -1 if e has fewer than two points.
func nearestSegment(e LineString, p XY) (seg int, dist float64, distFromStart float64) {
	seg = -1
	best := math.Inf(1)
	for i := 0; i+1 < len(e); i++ {
		d, t := distToSegment(e[i], e[i+1], p)
		if d < best {
			best = d
			seg = i
			segLen := math.Hypot(e[i+1].X-e[i].X, e[i+1].Y-e[i].Y)
			distFromStart = t * segLen
		}
	}
	return seg, best, distFromStart
}

// distToSegment returns the distance from p to segment a-b and the
// clamped projection parameter t in [0, 1] along that segment.
func distToSegment(a, b, p XY) (dist float64, t float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y), 0
	}
	t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX, projY := a.X+t*dx, a.Y+t*dy
	return math.Hypot(p.X-projX, p.Y-projY), t
}
