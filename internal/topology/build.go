package topology

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/go-spatial/planargraph/internal/geomkernel"
	"github.com/go-spatial/planargraph/internal/spatialindex"
)

// BuildOptions mirrors pkg/planar.Options field-for-field. It is
// redeclared here, rather than imported, because pkg/planar imports
// this package and Go forbids the cycle; pkg/planar.Builder is
// responsible for normalizing its own Options (via NewOptions) before
// translating them into a BuildOptions for Process.
type BuildOptions struct {
	BuildNodes    bool
	BuildFaces    bool
	BuildTopology bool
	BuildSources  bool
}

// Process runs the full pipeline — spec.md §4.6, §4.7, §4.8, §4.9 — over
// a builder's pending inputs. inputs[i] is the flattened line strings
// EdgesOf extracted from the i-th AddGeometry call; that grouping is
// preserved only for source attribution, everything else operates on
// the flattened union of all of them.
//
// opts is assumed already normalized (BuildSources ⇒ BuildTopology ⇒
// BuildNodes ∧ BuildFaces); Process does not re-derive the lattice.
func Process(inputs [][]LineString, opts BuildOptions) (*Graph, error) {
	var flat []LineString
	for _, lines := range inputs {
		flat = append(flat, lines...)
	}

	unified, err := Unify(flat)
	if err != nil {
		return nil, err
	}

	g := &Graph{}
	g.Edges = make([]Edge, len(unified))
	for i, e := range unified {
		g.Edges[i] = Edge{Geom: e}
	}

	if opts.BuildNodes {
		collectNodes(g)
	}

	if opts.BuildFaces {
		for _, fp := range Polygonize(unified) {
			g.Faces = append(g.Faces, Face{ExteriorRing: NoIndex(), Geom: fp})
		}
	}

	if opts.BuildTopology {
		if err := buildTopology(g); err != nil {
			return nil, err
		}
	}

	if opts.BuildSources {
		if err := AttributeSources(g, inputs); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// collectNodes gathers the distinct coordinates that appear as some
// edge's first or last point into g.Nodes, in first-encountered order,
// and back-fills every Edge's Start/End — spec.md §4.7 step 1.
func collectNodes(g *Graph) {
	index := make(map[XY]int)
	var order []XY
	for _, e := range g.Edges {
		for _, p := range [2]XY{e.Geom.first(), e.Geom.last()} {
			if _, ok := index[p]; !ok {
				index[p] = len(order)
				order = append(order, p)
			}
		}
	}

	g.Nodes = make([]Node, len(order))
	for i, p := range order {
		g.Nodes[i] = Node{Point: p}
	}

	for i := range g.Edges {
		g.Edges[i].Start = SomeIndex(index[g.Edges[i].Geom.first()])
		g.Edges[i].End = SomeIndex(index[g.Edges[i].Geom.last()])
	}
}

// buildTopology runs the three stages that turn bare faces (outer
// geometry only) and bare edges (geometry only) into a fully
// cross-referenced graph: outer-ring reconstruction and left/right
// assignment, hole detection and inner-ring assignment, and
// floating-edge classification.
func buildTopology(g *Graph) error {
	edgeIdx := spatialindex.New()
	for i, e := range g.Edges {
		edgeIdx.Insert(i, e.Geom.bbox())
	}

	if err := buildOuterRings(g, edgeIdx); err != nil {
		return err
	}
	if err := assignHoles(g, edgeIdx); err != nil {
		return err
	}
	return classifyFloatingEdges(g)
}

// outerRingResult is one face's computed (but not yet applied) ring.
type outerRingResult struct {
	faceIndex int
	ring      Ring
	err       error
}

// buildOuterRings reconstructs each face's exterior ring from the bag
// of candidate edges near its bounding box, then assigns left/right
// face sides — spec.md §4.8's outer-ring half of process_rings.
//
// Per-face ring reconstruction (ringEdgesForFace + buildRing) touches
// only its own face and read-only edge geometry, so every face's ring
// is computed by an independent worker; only the final application of
// results back onto the shared Graph — which assigns Left/Right on
// shared Edge entries — runs single-threaded, back on the calling
// goroutine, so there is no concurrent writer to race. This mirrors
// the worker-pool-over-a-jobs-channel shape the source library uses
// for its own embarrassingly-parallel batch loads.
func buildOuterRings(g *Graph, edgeIdx *spatialindex.Index) error {
	n := len(g.Faces)
	if n == 0 {
		return nil
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	results := make(chan outerRingResult, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for fi := range jobs {
				target := g.Faces[fi].Geom
				candidates := ringEdgesForFace(target, g.Edges, edgeIdx)
				refs, err := buildRing(target, candidates)
				if err != nil {
					results <- outerRingResult{faceIndex: fi, err: err}
					continue
				}
				results <- outerRingResult{
					faceIndex: fi,
					ring:      Ring{Clockwise: clockwise(target), Edges: refs},
				}
			}
		}()
	}

	for fi := 0; fi < n; fi++ {
		jobs <- fi
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	computed := make([]outerRingResult, n)
	for r := range results {
		if r.err != nil {
			return r.err
		}
		computed[r.faceIndex] = r
	}

	for fi := 0; fi < n; fi++ {
		ringIdx := len(g.Rings)
		g.Rings = append(g.Rings, computed[fi].ring)
		g.Faces[fi].ExteriorRing = SomeIndex(ringIdx)
		assignSide(g, ringIdx, fi)
	}
	return nil
}

// ringEdgesForFace narrows candidates via bbox overlap, then keeps
// only those whose coordinate sequence is an exact contiguous
// subsequence of target (forward or reversed) — i.e. genuinely part of
// its boundary, not merely nearby. Sorted by edge index so buildRing's
// pivot tie-break is deterministic run to run.
func ringEdgesForFace(target LineString, edges []Edge, idx *spatialindex.Index) []ringEdge {
	var out []ringEdge
	for _, cand := range idx.Query(target.bbox()) {
		if _, err := orientation(target, edges[cand].Geom); err == nil {
			out = append(out, ringEdge{Geom: edges[cand].Geom, Label: cand})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// assignSide records faceIdx as the bounded-interior side of every edge
// in ring: Left if traveling the edge in its stored direction keeps the
// interior on the left, Right otherwise. Since every face ring produced
// by Polygonize is wound counterclockwise (Clockwise == false, positive
// signed area), this reduces to "Left unless the traversal is reversed
// relative to the ring's own winding".
func assignSide(g *Graph, ringIdx, faceIdx int) {
	ring := g.Rings[ringIdx]
	for _, r := range ring.Edges {
		e := &g.Edges[r.EdgeIndex]
		if r.Forward != ring.Clockwise {
			e.Left = SomeIndex(faceIdx)
		} else {
			e.Right = SomeIndex(faceIdx)
		}
	}
}

// assignHoles finds, for every face, the other faces whose exterior
// sits inside it, keeps only the locally-minimal ones (so a
// doubly-nested island isn't also recorded as a direct hole of the
// outermost face), and wires each as an interior ring — spec.md §4.8's
// inner-ring half of process_rings, dispatching to the Hole classifier
// (holes.go) for the actual containment search.
func assignHoles(g *Graph, edgeIdx *spatialindex.Index) error {
	facePolys := make([]facePolygon, len(g.Faces))
	holeCandidates := make([][]LineString, len(g.Faces))
	for i, f := range g.Faces {
		facePolys[i] = facePolygon{Exterior: f.Geom}
		holeCandidates[i] = []LineString{f.Geom}
	}
	contained := Holes(facePolys, holeCandidates)

	for fi := range g.Faces {
		var nested []int
		if len(contained[fi]) > 0 {
			nested = contained[fi][0]
		}
		minimal := minimalContainers(nested, g.Faces)
		if len(minimal) == 0 {
			continue
		}

		var ringIdx int
		if len(minimal) == 1 {
			idx, ok := g.Faces[minimal[0]].ExteriorRing.Get()
			if !ok {
				return &ErrInvariantViolated{Component: "hole assignment", Detail: "contained face has no exterior ring"}
			}
			ringIdx = idx
		} else {
			var err error
			ringIdx, err = synthesizeHoleRing(g, minimal, edgeIdx)
			if err != nil {
				return err
			}
		}

		g.Faces[fi].InteriorRings = append(g.Faces[fi].InteriorRings, ringIdx)
		g.Faces[fi].Holes = append(g.Faces[fi].Holes, g.Rings[ringIdx].edgesGeom(g))
		assignHoleSide(g, ringIdx, fi)
	}
	return nil
}

// edgesGeom reconstructs a ring's closed coordinate sequence from its
// edge references, for Face.Holes (read by classifyFloatingEdges to cut
// a face's holes out of its polygon).
func (r Ring) edgesGeom(g *Graph) LineString {
	var out LineString
	for _, ref := range r.Edges {
		seg := g.Edges[ref.EdgeIndex].Geom
		if !ref.Forward {
			seg = seg.reversed()
		}
		if len(out) > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out
}

// minimalContainers keeps only the entries of nested that are not
// themselves geometrically contained in some other entry of nested —
// the immediate holes of a face, excluding islands-within-islands.
func minimalContainers(nested []int, faces []Face) []int {
	contains := func(a, b int) (bool, error) {
		pa := geomkernel.Polygon{toKernelXYs(faces[a].Geom)}
		pb := geomkernel.Polygon{toKernelXYs(faces[b].Geom)}
		return geomkernel.Contains(pa, pb)
	}
	var minimal []int
	for _, a := range nested {
		nestedDeeper := false
		for _, b := range nested {
			if a == b {
				continue
			}
			if ok, err := contains(b, a); err == nil && ok {
				nestedDeeper = true
				break
			}
		}
		if !nestedDeeper {
			minimal = append(minimal, a)
		}
	}
	return minimal
}

// synthesizeHoleRing builds the new ring that bounds a hole jointly
// filled by several faces (spec.md §4.8: "if |H|>1, the new intring is
// the exterior of their union"). The candidate edges are exactly the
// union of the filling faces' own outer-ring edges; the ones on their
// mutual interior boundaries are excluded automatically because they
// are not part of the union's exterior coordinate sequence, so
// orientation() rejects them.
//
// This depends on geomkernel.UnionExterior's result retaining every
// collinear boundary vertex where two filling faces meet (e.g. the
// junction points along a shared wall), since orientation() matches
// candidate edges against the union's coordinate sequence vertex for
// vertex, not by re-simplifying collinear runs. If the kernel ever
// started dropping collinear vertices from a union result, no
// candidate edge would match and buildRing below would fail loudly
// with ErrRingReconstructionFailed rather than silently producing a
// wrong ring — but it would fail, so this is worth revisiting if the
// kernel's union behavior ever changes. TestHoleFilledByTwoRectangles
// is the only test that exercises this path.
func synthesizeHoleRing(g *Graph, minimal []int, edgeIdx *spatialindex.Index) (int, error) {
	polys := make([]geomkernel.Polygon, len(minimal))
	var candIdx = map[int]bool{}
	for i, fi := range minimal {
		polys[i] = geomkernel.Polygon{toKernelXYs(g.Faces[fi].Geom)}
		ringIdx, ok := g.Faces[fi].ExteriorRing.Get()
		if !ok {
			return 0, &ErrInvariantViolated{Component: "hole synthesis", Detail: "filling face has no exterior ring"}
		}
		for _, re := range g.Rings[ringIdx].Edges {
			candIdx[re.EdgeIndex] = true
		}
	}

	unionXY, err := geomkernel.UnionExterior(polys)
	if err != nil {
		return 0, err
	}
	target := make(LineString, len(unionXY))
	for i, p := range unionXY {
		target[i] = XY{X: p.X, Y: p.Y}
	}

	var candidates []ringEdge
	for eIdx := range candIdx {
		if _, err := orientation(target, g.Edges[eIdx].Geom); err == nil {
			candidates = append(candidates, ringEdge{Geom: g.Edges[eIdx].Geom, Label: eIdx})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Label < candidates[j].Label })

	refs, err := buildRing(target, candidates)
	if err != nil {
		return 0, err
	}
	ring := Ring{Clockwise: clockwise(target), Edges: refs}
	ringIdx := len(g.Rings)
	g.Rings = append(g.Rings, ring)
	return ringIdx, nil
}

// assignHoleSide records faceIdx on whichever of Left/Right is still
// unset on each of ring's edges. Exactly one side of every edge in a
// reused or synthesized hole ring was already claimed by the filling
// face(s) during buildOuterRings; the other is free for the containing
// face.
func assignHoleSide(g *Graph, ringIdx, faceIdx int) {
	for _, r := range g.Rings[ringIdx].Edges {
		e := &g.Edges[r.EdgeIndex]
		switch {
		case !e.Left.IsSet():
			e.Left = SomeIndex(faceIdx)
		case !e.Right.IsSet():
			e.Right = SomeIndex(faceIdx)
		}
	}
}

// classifyFloatingEdges assigns both sides of every still-unassigned
// edge to the single face that contains it — spec.md §4.8's floating
// edge pass. Zero containing faces is legal: the edge lies outside
// every face (e.g. a dangling line string off in open space) and is
// left with both sides unset. Each face is tested as its exterior with
// its holes (Face.Holes) cut out, so an island face and the face around
// it do not overlap. More than one containing face is an invariant
// violation: a floating edge cleanly inside two of them means the
// input itself was not planar.
func classifyFloatingEdges(g *Graph) error {
	if len(g.Faces) == 0 {
		return nil
	}
	faceIdx := spatialindex.New()
	for i, f := range g.Faces {
		faceIdx.Insert(i, f.Geom.bbox())
	}

	for i := range g.Edges {
		e := &g.Edges[i]
		if e.Left.IsSet() || e.Right.IsSet() {
			continue
		}

		var containing []int
		for _, fi := range faceIdx.Query(e.Geom.bbox()) {
			poly := geomkernel.Polygon{toKernelXYs(g.Faces[fi].Geom)}
			for _, h := range g.Faces[fi].Holes {
				poly = append(poly, toKernelXYs(h))
			}
			hit, err := geomkernel.Intersects(poly, toKernelXYs(e.Geom))
			if err != nil || !hit {
				continue
			}
			ok, err := geomkernel.ContainsLine(poly, toKernelXYs(e.Geom))
			if err != nil || !ok {
				continue
			}
			containing = append(containing, fi)
		}

		if len(containing) == 0 {
			continue
		}
		if len(containing) > 1 {
			return &ErrInvariantViolated{
				Component: "floating edge classification",
				Detail:    fmt.Sprintf("edge %d matched %d containing face(s), expected at most 1", i, len(containing)),
			}
		}
		e.Left = SomeIndex(containing[0])
		e.Right = SomeIndex(containing[0])
	}
	return nil
}
