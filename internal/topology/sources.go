package topology

import (
	"github.com/go-spatial/planargraph/internal/geomkernel"
	"github.com/go-spatial/planargraph/internal/spatialindex"
)

// sourceSplitEps is the tolerance process_sources re-splits original
// inputs at, per spec.md §4.9 — deliberately much tighter than any
// point-insertion epsilon a caller would use for real snapping, since
// here the split points are the graph's own node coordinates and
// should match exactly or not at all.
const sourceSplitEps = 1e-9

// AttributeSources implements spec.md §4.9's process_sources: each
// original input is re-split at every node coordinate the topology
// pass produced, then every derived edge collects the sorted,
// deduplicated set of input identifiers whose re-split traces meet it
// in exactly one dimension (is_1D_geometry, spec.md §4.10) rather than
// at an isolated point.
//
// inputs must be grouped the same way they were handed to Process: one
// slice of line strings per AddGeometry call, in call order, so the
// resulting Edge.Sources values are indices into that call sequence.
func AttributeSources(g *Graph, inputs [][]LineString) error {
	if len(inputs) == 0 {
		return nil
	}

	var nodeCoords []XY
	stops := make(map[XY]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		nodeCoords = append(nodeCoords, n.Point)
		stops[n.Point] = true
	}

	type piece struct {
		inputID int
		geom    LineString
	}
	var pieces []piece
	for inputID, lines := range inputs {
		for _, ls := range lines {
			if len(ls) < 2 {
				continue
			}
			inserted := InsertPoints([]LineString{ls}, nodeCoords, sourceSplitEps)[0]
			for _, sub := range splitAt(inserted, stops) {
				if len(sub) >= 2 {
					pieces = append(pieces, piece{inputID: inputID, geom: sub})
				}
			}
		}
	}

	idx := spatialindex.New()
	for i, p := range pieces {
		idx.Insert(i, p.geom.bbox())
	}

	for i := range g.Edges {
		e := &g.Edges[i]
		var sources []int
		for _, pi := range idx.Query(e.Geom.bbox()) {
			hit, err := geomkernel.Intersection1D(toKernelXYs(e.Geom), toKernelXYs(pieces[pi].geom))
			if err != nil || !hit {
				continue
			}
			sources = append(sources, pieces[pi].inputID)
		}
		e.Sources = sortUniqueInts(sources)
	}
	return nil
}

// splitAt cuts ls into maximal pieces at every interior vertex whose
// coordinate is in stops, leaving ls's own endpoints as the first and
// last piece's endpoints regardless of whether they are themselves
// stops.
func splitAt(ls LineString, stops map[XY]bool) []LineString {
	if len(ls) < 2 {
		return []LineString{ls}
	}
	var out []LineString
	current := LineString{ls[0]}
	for i := 1; i < len(ls); i++ {
		current = append(current, ls[i])
		if i != len(ls)-1 && stops[ls[i]] {
			out = append(out, current)
			current = LineString{ls[i]}
		}
	}
	out = append(out, current)
	return out
}
