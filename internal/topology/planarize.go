package topology

import (
	"math"
	"sort"

	"github.com/go-spatial/planargraph/internal/geomkernel"
)

// collinearEps bounds how far from exactly zero a cross product may be
// for two segments meeting at a shared vertex to be considered
// collinear during the "merge collinear segments" half of spec.md
// §4.6 step 1. It is a tolerance on the cross product of unit-ish
// direction vectors, not a distance, so it stays dimensionless across
// differently-scaled inputs.
const collinearEps = 1e-9

// Unify implements spec.md §4.6 step 1: compute the merged union of
// all pending line strings (splitting at every crossing, via the
// kernel's Union), then merge runs of collinear segments into maximal
// edges. If only one line string is submitted, both operations are
// skipped, per spec.md's explicit short-circuit.
func Unify(lines []LineString) ([]LineString, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	if len(lines) == 1 {
		return []LineString{lines[0]}, nil
	}

	kernelLines := make([][]geomkernel.XY, len(lines))
	for i, ls := range lines {
		kernelLines[i] = toKernelXYs(ls)
	}
	noded, err := geomkernel.NodeAndMerge(kernelLines)
	if err != nil {
		return nil, err
	}

	pieces := make([]LineString, len(noded))
	for i, pts := range noded {
		ls := make(LineString, len(pts))
		for j, p := range pts {
			ls[j] = XY{X: p.X, Y: p.Y}
		}
		pieces[i] = ls
	}

	return mergeCollinear(pieces), nil
}

// mergeCollinear repeatedly fuses pairs of pieces that meet, end to
// end, at a degree-2 vertex with no change of direction, until no more
// fusions are possible. This is the purely combinatorial half of
// linemerge: the hard part (detecting where pieces actually meet) was
// already done by Union's noding.
func mergeCollinear(pieces []LineString) []LineString {
	active := make([]LineString, len(pieces))
	copy(active, pieces)

	for {
		degree := make(map[XY]int)
		endsAt := make(map[XY][2]int)
		endsCount := make(map[XY]int)
		for i, p := range active {
			if p == nil {
				continue
			}
			for _, end := range [2]XY{p.first(), p.last()} {
				degree[end]++
				if endsCount[end] < 2 {
					e := endsAt[end]
					e[endsCount[end]] = i
					endsAt[end] = e
					endsCount[end]++
				}
			}
		}

		mergedAny := false
		for c, d := range degree {
			if d != 2 {
				continue
			}
			ends := endsAt[c]
			i, j := ends[0], ends[1]
			if i == j {
				continue // a piece looping back on itself through c; leave it
			}
			merged, ok := tryMerge(active[i], active[j], c)
			if !ok {
				continue
			}
			active[i] = merged
			active[j] = nil
			mergedAny = true
			break
		}
		if !mergedAny {
			break
		}
	}

	out := make([]LineString, 0, len(active))
	for _, p := range active {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// tryMerge fuses a and b at their shared coordinate c if doing so does
// not introduce a kink (the two segments incident to c are collinear
// and point the same way through it).
func tryMerge(a, b LineString, c XY) (LineString, bool) {
	oa := orientToEnd(a, c)
	ob := orientFromStart(b, c)
	if oa == nil || ob == nil {
		return nil, false
	}
	if !collinear(oa[len(oa)-2], c, ob[1]) {
		return nil, false
	}
	out := append(append(LineString{}, oa...), ob[1:]...)
	return out, true
}

// orientToEnd returns a reoriented so it ends at c, or nil if c is not
// one of a's endpoints.
func orientToEnd(a LineString, c XY) LineString {
	switch {
	case sameCoord(a.last(), c) && !sameCoord(a.first(), c):
		return a
	case sameCoord(a.first(), c) && !sameCoord(a.last(), c):
		return a.reversed()
	default:
		return nil
	}
}

// orientFromStart returns b reoriented so it starts at c, or nil if c
// is not one of b's endpoints.
func orientFromStart(b LineString, c XY) LineString {
	switch {
	case sameCoord(b.first(), c) && !sameCoord(b.last(), c):
		return b
	case sameCoord(b.last(), c) && !sameCoord(b.first(), c):
		return b.reversed()
	default:
		return nil
	}
}

func collinear(p0, c, p1 XY) bool {
	v1 := XY{c.X - p0.X, c.Y - p0.Y}
	v2 := XY{p1.X - c.X, p1.Y - c.Y}
	cross := v1.X*v2.Y - v1.Y*v2.X
	dot := v1.X*v2.X + v1.Y*v2.Y
	len1 := math.Hypot(v1.X, v1.Y)
	len2 := math.Hypot(v2.X, v2.Y)
	if len1 == 0 || len2 == 0 {
		return false
	}
	return math.Abs(cross/(len1*len2)) < collinearEps && dot > 0
}

// halfEdge is one directed traversal of an Unify-produced edge.
type halfEdge struct {
	edge    int
	forward bool
	from, to XY
	angle   float64
}

func (h halfEdge) reverseKey() (int, bool) { return h.edge, !h.forward }

// Polygonize extracts the bounded faces of a set of already-noded,
// non-crossing edges — the part of spec.md §4.6 step 4 / §4.7 step 3
// that would otherwise be an external "polygonize" call. It is
// implemented natively here via the standard planar-subdivision face
// trace (a rotation system: sort each vertex's outgoing half-edges by
// angle, then for each directed half-edge the next half-edge on the
// same face boundary is the one immediately clockwise from that
// half-edge's reverse at its destination vertex). Each resulting cycle
// is a face if its signed area is strictly positive (a
// counterclockwise boundary, bounding a region on its left); cycles
// with zero or negative signed area are either a component's
// unbounded exterior or a dangling (floating) edge's degenerate
// back-and-forth, and are discarded — floating edges are picked up
// later as edges with no assigned face (spec.md §4.8).
//
// This function has no notion of holes: a face whose footprint
// geometrically contains another face's footprint (an annulus around
// an island) comes out as two independent, overlapping-by-area faces,
// exactly like spec.md says a polygonizer's output should (hole
// detection is the Hole classifier's job, §4.5/§4.8, not this one's).
func Polygonize(edges []LineString) []LineString {
	if len(edges) == 0 {
		return nil
	}

	byVertex := make(map[XY][]halfEdge)
	for i, e := range edges {
		if len(e) < 2 {
			continue
		}
		a, b := e.first(), e.last()
		byVertex[a] = append(byVertex[a], halfEdge{edge: i, forward: true, from: a, to: b, angle: angleOf(a, e[1])})
		byVertex[b] = append(byVertex[b], halfEdge{edge: i, forward: false, from: b, to: a, angle: angleOf(b, e[len(e)-2])})
	}
	for v, list := range byVertex {
		sort.Slice(list, func(i, j int) bool { return list[i].angle < list[j].angle })
		byVertex[v] = list
	}

	position := make(map[XY]map[int]int) // vertex -> (edge*2+dirBit) -> position in byVertex[vertex]
	keyOf := func(edge int, forward bool) int {
		if forward {
			return edge * 2
		}
		return edge*2 + 1
	}
	for v, list := range byVertex {
		m := make(map[int]int, len(list))
		for i, he := range list {
			m[keyOf(he.edge, he.forward)] = i
		}
		position[v] = m
	}

	visited := make(map[int]bool) // keyOf(edge,forward) -> visited, keyed globally by (edge,dir) since that's unique
	var faces []LineString

	nextHalfEdge := func(h halfEdge) halfEdge {
		list := byVertex[h.to]
		revEdge, revFwd := h.reverseKey()
		idx := position[h.to][keyOf(revEdge, revFwd)]
		prev := (idx - 1 + len(list)) % len(list)
		return list[prev]
	}

	for i, e := range edges {
		if len(e) < 2 {
			continue
		}
		for _, forward := range [2]bool{true, false} {
			k := keyOf(i, forward)
			if visited[k] {
				continue
			}
			var cycle []halfEdge
			h := halfEdge{edge: i, forward: forward, from: pick(forward, e.first(), e.last()), to: pick(forward, e.last(), e.first())}
			h.angle = angleOf(h.from, secondPoint(e, forward))
			for {
				kk := keyOf(h.edge, h.forward)
				if visited[kk] {
					break
				}
				visited[kk] = true
				cycle = append(cycle, h)
				h = nextHalfEdge(h)
			}
			if len(cycle) == 0 {
				continue
			}
			coords := cycleCoords(edges, cycle)
			if signedArea(coords) > 0 {
				faces = append(faces, coords)
			}
		}
	}

	return faces
}

func pick(forward bool, a, b XY) XY {
	if forward {
		return a
	}
	return b
}

func secondPoint(e LineString, forward bool) XY {
	if forward {
		return e[1]
	}
	return e[len(e)-2]
}

func angleOf(from, to XY) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// cycleCoords stitches a sequence of half-edges into one closed
// coordinate ring.
func cycleCoords(edges []LineString, cycle []halfEdge) LineString {
	var out LineString
	for _, h := range cycle {
		seg := edges[h.edge]
		if !h.forward {
			seg = seg.reversed()
		}
		if len(out) > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out
}

func signedArea(ring LineString) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i].X*ring[i+1].Y - ring[i+1].X*ring[i].Y
	}
	return sum / 2
}
