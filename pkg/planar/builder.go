package planar

import "github.com/go-spatial/planargraph/internal/topology"

// Builder accumulates geometry and, on Finalize, computes a Graph
// according to its Options — spec.md §5's open/frozen lifecycle. A
// Builder is not safe for concurrent use; the parallelism in this
// library lives inside a single Finalize call, not across calls.
type Builder struct {
	opts      Options
	pending   [][]topology.LineString
	finalized bool
	graph     *Graph
	err       error
}

// NewBuilder creates a Builder configured by opts, normalized via
// NewOptions so the BuildSources ⇒ BuildTopology ⇒ (BuildNodes ∧
// BuildFaces) lattice always holds.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: NewOptions(opts)}
}

// AddGeometry appends g's constituent line strings to the pending
// input list — spec.md §4.1 — and returns the input identifier that
// will appear in derived edges' Sources once Finalize runs, if
// Options.BuildSources is set; otherwise it returns a nil pointer.
//
// A geometry that contributes no line strings (a Point or MultiPoint)
// is not added to the pending list at all and never receives an id —
// it can never be any derived edge's source, so §6's id numbering only
// advances for edge-producing inputs.
//
// Calling AddGeometry after Finalize returns ErrAlreadyFinalized; the
// geometry is not added.
func (b *Builder) AddGeometry(g Geometry) (*int, error) {
	if b.finalized {
		return nil, &ErrAlreadyFinalized{InputCount: len(b.pending)}
	}

	lines, err := topology.EdgesOf(geometryToInput(g))
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	id := len(b.pending)
	b.pending = append(b.pending, lines)

	if !b.opts.BuildSources {
		return nil, nil
	}
	return &id, nil
}

// Finalize freezes the builder and computes its Graph — spec.md §4.6
// through §4.9, gated by Options. Finalize is idempotent: a second
// call returns the already-computed Graph (or error) without
// recomputing, and every AddGeometry call made after the first
// Finalize is rejected regardless of how many times Finalize is
// called afterward.
func (b *Builder) Finalize() (*Graph, error) {
	if b.finalized {
		return b.graph, b.err
	}
	b.finalized = true

	tg, err := topology.Process(b.pending, topology.BuildOptions{
		BuildNodes:    b.opts.BuildNodes,
		BuildFaces:    b.opts.BuildFaces,
		BuildTopology: b.opts.BuildTopology,
		BuildSources:  b.opts.BuildSources,
	})
	if err != nil {
		b.err = err
		return nil, err
	}

	b.graph = newGraph(tg)
	return b.graph, nil
}

func toXYs(pts []Point) []topology.XY {
	out := make([]topology.XY, len(pts))
	for i, p := range pts {
		out[i] = topology.XY{X: p.X, Y: p.Y}
	}
	return out
}

func toRings(rings [][]Point) [][]topology.XY {
	out := make([][]topology.XY, len(rings))
	for i, r := range rings {
		out[i] = toXYs(r)
	}
	return out
}

func toPolygons(polys [][][]Point) [][][]topology.XY {
	out := make([][][]topology.XY, len(polys))
	for i, p := range polys {
		out[i] = toRings(p)
	}
	return out
}

// geometryToInput translates the public Geometry union into the
// internal topology package's equivalent, which EdgesOf consumes.
func geometryToInput(g Geometry) topology.Input {
	switch g.Kind {
	case KindPoint:
		return topology.Input{Kind: topology.InputPoint}

	case KindMultiPoint:
		return topology.Input{Kind: topology.InputMultiPoint}

	case KindLineString:
		return topology.Input{Kind: topology.InputLineString, Line: toXYs(g.Line)}

	case KindMultiLineString:
		children := make([]topology.Input, len(g.Lines))
		for i, l := range g.Lines {
			children[i] = topology.Input{Kind: topology.InputLineString, Line: toXYs(l)}
		}
		return topology.Input{Kind: topology.InputMultiLineString, Children: children}

	case KindPolygon:
		return topology.Input{Kind: topology.InputPolygon, Rings: toRings(g.Rings)}

	case KindMultiPolygon:
		return topology.Input{Kind: topology.InputMultiPolygon, Polygons: toPolygons(g.Polygons)}

	case KindCollection:
		children := make([]topology.Input, len(g.Collection))
		for i, c := range g.Collection {
			children[i] = geometryToInput(c)
		}
		return topology.Input{Kind: topology.InputCollection, Children: children}

	default:
		return topology.Input{Kind: topology.InputKind(int(g.Kind))}
	}
}
