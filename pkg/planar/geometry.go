package planar

// Point is a pair of finite real coordinates in the Euclidean plane.
//
// Two points are equal iff both coordinates are bit-equal; epsilon-merging
// of near-coincident points happens earlier, during point insertion
// (internal/topology), never in comparison.
type Point struct {
	X, Y float64
}

// GeometryKind discriminates the variants accepted by Builder.AddGeometry.
type GeometryKind int

const (
	KindPoint GeometryKind = iota
	KindMultiPoint
	KindLineString
	KindMultiLineString
	KindPolygon
	KindMultiPolygon
	KindCollection
)

// Geometry is a small discriminated union over the geometry kinds this
// library accepts as input, mirroring simplefeatures' own type family
// (github.com/peterstace/simplefeatures/geom) kind for kind. Builder
// reduces every kind to its line strings (internal/topology.EdgesOf);
// internal/geomkernel only ever receives those coordinate sequences.
//
// Exactly one of the fields matching Kind is meaningful; the others are
// the zero value. A Polygon's Rings[0] is its exterior ring, Rings[1:]
// are interior rings (holes); each ring is a closed coordinate sequence
// (first point equals last). A Collection holds arbitrarily nested
// Geometry values, in document order.
type Geometry struct {
	Kind GeometryKind

	Point     Point
	Points    []Point
	Line      []Point
	Lines     [][]Point
	Rings     [][]Point
	Polygons  [][][]Point
	Collection []Geometry
}

// NewPointGeometry wraps a single point.
func NewPointGeometry(p Point) Geometry { return Geometry{Kind: KindPoint, Point: p} }

// NewLineStringGeometry wraps an open or closed polyline.
func NewLineStringGeometry(line []Point) Geometry { return Geometry{Kind: KindLineString, Line: line} }

// NewPolygonGeometry wraps a polygon as its exterior ring followed by zero
// or more interior (hole) rings, each a closed coordinate sequence.
func NewPolygonGeometry(rings [][]Point) Geometry { return Geometry{Kind: KindPolygon, Rings: rings} }

// NewMultiPolygonGeometry wraps a collection of polygons, each expressed as
// exterior-ring-then-holes per NewPolygonGeometry.
func NewMultiPolygonGeometry(polys [][][]Point) Geometry {
	return Geometry{Kind: KindMultiPolygon, Polygons: polys}
}

// NewCollectionGeometry wraps a heterogeneous, ordered bag of geometries.
func NewCollectionGeometry(geoms []Geometry) Geometry {
	return Geometry{Kind: KindCollection, Collection: geoms}
}
