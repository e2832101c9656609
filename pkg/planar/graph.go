package planar

import "github.com/go-spatial/planargraph/internal/topology"

// OptionalIndex is a tagged value-or-absent index into a Graph's Nodes,
// Faces or Rings slice, used wherever a cross-reference (an edge's start
// node, a face's exterior ring, and so on) may legitimately be unset.
type OptionalIndex struct {
	value int
	set   bool
}

func someIndex(i int) OptionalIndex { return OptionalIndex{value: i, set: true} }

// Get returns the wrapped index and whether it is present.
func (o OptionalIndex) Get() (int, bool) { return o.value, o.set }

// IsSet reports whether the index is present.
func (o OptionalIndex) IsSet() bool { return o.set }

func fromTopologyIndex(o topology.OptionalIndex) OptionalIndex {
	if i, ok := o.Get(); ok {
		return someIndex(i)
	}
	return OptionalIndex{}
}

// Node is a distinct endpoint coordinate produced by the planarizer.
type Node struct {
	Point Point
}

// Edge is a maximal, simple open polyline between two nodes (or, for a
// floating edge, lying entirely within one face). Start/End are unset
// unless the graph was built with nodes enabled; Left/Right are unset
// unless it was built with topology enabled; Sources is nil unless
// source attribution was enabled.
type Edge struct {
	Geom    []Point
	Start   OptionalIndex
	End     OptionalIndex
	Left    OptionalIndex
	Right   OptionalIndex
	Sources []int
}

// RingEdgeRef is one step of a ring's boundary: an edge index into the
// owning Graph's Edges, and the direction to traverse it in (true =
// the edge's own stored coordinate order, false = reversed).
type RingEdgeRef struct {
	EdgeIndex int
	Forward   bool
}

// Ring is an oriented cycle of edges bounding one side of a face.
type Ring struct {
	Clockwise bool
	Edges     []RingEdgeRef
}

// Face is a simply-connected bounded region: an exterior ring plus
// zero or more interior (hole) rings.
type Face struct {
	ExteriorRing  OptionalIndex
	InteriorRings []int
}

// Graph is the immutable, read-only result of Builder.Finalize. Its
// zero value is never produced by this package; always obtain a Graph
// from Finalize.
type Graph struct {
	nodes []Node
	edges []Edge
	faces []Face
	rings []Ring
}

// Nodes returns the graph's distinct endpoint coordinates; the slice is
// empty if built without Options.BuildNodes.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the graph's maximal polylines.
func (g *Graph) Edges() []Edge { return g.edges }

// Faces returns the graph's bounded regions; the slice is empty if built
// without Options.BuildFaces.
func (g *Graph) Faces() []Face { return g.faces }

// Rings returns the graph's oriented edge cycles; the slice is empty if
// built without Options.BuildTopology.
func (g *Graph) Rings() []Ring { return g.rings }

func xyToPoint(p topology.XY) Point { return Point{X: p.X, Y: p.Y} }

func lineStringToPoints(ls topology.LineString) []Point {
	out := make([]Point, len(ls))
	for i, p := range ls {
		out[i] = xyToPoint(p)
	}
	return out
}

func newGraph(tg *topology.Graph) *Graph {
	g := &Graph{}

	g.nodes = make([]Node, len(tg.Nodes))
	for i, n := range tg.Nodes {
		g.nodes[i] = Node{Point: xyToPoint(n.Point)}
	}

	g.edges = make([]Edge, len(tg.Edges))
	for i, e := range tg.Edges {
		g.edges[i] = Edge{
			Geom:    lineStringToPoints(e.Geom),
			Start:   fromTopologyIndex(e.Start),
			End:     fromTopologyIndex(e.End),
			Left:    fromTopologyIndex(e.Left),
			Right:   fromTopologyIndex(e.Right),
			Sources: e.Sources,
		}
	}

	g.rings = make([]Ring, len(tg.Rings))
	for i, r := range tg.Rings {
		edges := make([]RingEdgeRef, len(r.Edges))
		for j, re := range r.Edges {
			edges[j] = RingEdgeRef{EdgeIndex: re.EdgeIndex, Forward: re.Forward}
		}
		g.rings[i] = Ring{Clockwise: r.Clockwise, Edges: edges}
	}

	g.faces = make([]Face, len(tg.Faces))
	for i, f := range tg.Faces {
		interior := make([]int, len(f.InteriorRings))
		copy(interior, f.InteriorRings)
		g.faces[i] = Face{
			ExteriorRing:  fromTopologyIndex(f.ExteriorRing),
			InteriorRings: interior,
		}
	}

	return g
}
