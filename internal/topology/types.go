// Package topology implements the planarization and topology-construction
// pipeline: edge unification, node splitting, face extraction, ring
// construction and orientation, hole detection, floating-edge
// classification, and source attribution. It is the engine behind
// pkg/planar's public Builder/Graph API.
package topology

import (
	"sort"

	"github.com/go-spatial/planargraph/internal/spatialindex"
)

// Rect is re-exported from internal/spatialindex so call sites in this
// package never need to import both packages just to spell a bounding box.
type Rect = spatialindex.Rect

// XY is a single coordinate pair. Unlike pkg/planar.Point this type is
// compared by value throughout the package (map keys, node dedup) so it
// carries no behavior beyond equality.
type XY struct {
	X, Y float64
}

// LineString is an ordered, non-empty sequence of coordinates. A closed
// LineString (a ring) repeats its first coordinate as its last.
type LineString []XY

func (ls LineString) first() XY { return ls[0] }
func (ls LineString) last() XY  { return ls[len(ls)-1] }

func (ls LineString) closed() bool {
	return len(ls) >= 2 && ls.first() == ls.last()
}

func (ls LineString) reversed() LineString {
	out := make(LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}

func (ls LineString) bbox() Rect {
	r := Rect{MinX: ls[0].X, MinY: ls[0].Y, MaxX: ls[0].X, MaxY: ls[0].Y}
	for _, p := range ls[1:] {
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.X > r.MaxX {
			r.MaxX = p.X
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.Y > r.MaxY {
			r.MaxY = p.Y
		}
	}
	return r
}

// OptionalIndex is a tagged value-or-absent integer index, used for every
// cross-reference in the graph (start_node, end_node, left_face,
// right_face, extring) that may legitimately be unset. Representing
// "unset" as a tag rather than a sentinel integer (e.g. -1) makes
// partial-construction states checkable: a zero OptionalIndex is always
// "unset", never index 0 misread as absent.
type OptionalIndex struct {
	value int
	set   bool
}

// SomeIndex returns a set OptionalIndex wrapping i.
func SomeIndex(i int) OptionalIndex { return OptionalIndex{value: i, set: true} }

// NoIndex returns an unset OptionalIndex.
func NoIndex() OptionalIndex { return OptionalIndex{} }

// Get returns the wrapped index and whether it is set.
func (o OptionalIndex) Get() (int, bool) { return o.value, o.set }

// IsSet reports whether the index is present.
func (o OptionalIndex) IsSet() bool { return o.set }

// Edge is a maximal, simple open polyline between two nodes produced by
// the planarizer. Geom always has at least two points; Start/End/Left/Right
// are populated incrementally as the topological pass proceeds.
type Edge struct {
	Geom    LineString
	Start   OptionalIndex
	End     OptionalIndex
	Left    OptionalIndex
	Right   OptionalIndex
	Sources []int // sorted, deduplicated input identifiers; nil if provenance disabled
}

// Node is a distinct endpoint coordinate.
type Node struct {
	Point XY
}

// RingEdgeRef is one step of a ring's boundary: the index of an edge in
// the owning Graph's edge list, and the direction to traverse it in.
// Direction true means "in the edge's stored coordinate order", false
// means reversed.
type RingEdgeRef struct {
	EdgeIndex int
	Forward   bool
}

// Ring is an oriented cycle of edges bounding one side of a face.
type Ring struct {
	Clockwise bool
	Edges     []RingEdgeRef
}

// Face is a simply-connected bounded region: one outer ring plus zero or
// more inner (hole) rings.
type Face struct {
	ExteriorRing OptionalIndex
	InteriorRings []int
	Geom          LineString // the outer-ring line string as produced by polygonization, for reuse by hole assignment and floating-edge classification
	Holes         []LineString
}

// Graph is the mutable scratch structure the topology pipeline builds up
// before pkg/planar.Builder.Finalize freezes it into the public model.
type Graph struct {
	Nodes []Node
	Edges []Edge
	Faces []Face
	Rings []Ring
}

// sortUniqueInts sorts ints in place and removes duplicates, used to keep
// Edge.Sources normalized per spec.md's "sorted set" requirement.
func sortUniqueInts(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	sort.Ints(xs)
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
