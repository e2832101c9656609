package topology

// InputKind discriminates the geometry variants EdgesOf accepts. It
// mirrors pkg/planar.GeometryKind one-for-one; the public package
// translates its own Geometry value into an Input before calling in.
type InputKind int

const (
	InputPoint InputKind = iota
	InputMultiPoint
	InputLineString
	InputMultiLineString
	InputPolygon
	InputMultiPolygon
	InputCollection
)

// Input is the flattened form of pkg/planar.Geometry that EdgesOf
// consumes, expressed purely in terms of coordinate sequences so this
// package has no dependency on the public API package.
//
// Line is populated for InputLineString. Rings is populated for
// InputPolygon (Rings[0] exterior, Rings[1:] holes). Polygons is
// populated for InputMultiPolygon, each entry shaped like Rings.
// Children is populated for InputMultiLineString (each child is an
// InputLineString) and InputCollection (each child is any kind,
// recursively).
type Input struct {
	Kind     InputKind
	Points   []XY
	Line     []XY
	Rings    [][]XY
	Polygons [][][]XY
	Children []Input
}

// EdgesOf extracts the ordered list of line strings a geometry
// contributes to the pending-input list — spec.md §4.1.
//
//   - point / multi-point            → no line strings
//   - line string / linear ring      → one line string, (x, y) only
//   - multi–line string              → one per member, in order
//   - polygon                        → exterior, then each interior ring
//   - multi-polygon                  → concatenation over members, in order
//   - collection                     → recursive flattening, document order
//
// Any other InputKind value is rejected with ErrInvalidGeometryKind.
func EdgesOf(g Input) ([]LineString, error) {
	switch g.Kind {
	case InputPoint, InputMultiPoint:
		return nil, nil

	case InputLineString:
		return []LineString{LineString(g.Line)}, nil

	case InputMultiLineString:
		out := make([]LineString, len(g.Children))
		for i, c := range g.Children {
			out[i] = LineString(c.Line)
		}
		return out, nil

	case InputPolygon:
		out := make([]LineString, len(g.Rings))
		for i, r := range g.Rings {
			out[i] = LineString(r)
		}
		return out, nil

	case InputMultiPolygon:
		var out []LineString
		for _, poly := range g.Polygons {
			for _, r := range poly {
				out = append(out, LineString(r))
			}
		}
		return out, nil

	case InputCollection:
		var out []LineString
		for _, child := range g.Children {
			ls, err := EdgesOf(child)
			if err != nil {
				return nil, err
			}
			out = append(out, ls...)
		}
		return out, nil

	default:
		return nil, &ErrInvalidGeometryKind{Kind: int(g.Kind)}
	}
}
