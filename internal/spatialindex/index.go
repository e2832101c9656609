// Package spatialindex is a thin façade over a 2D bounding-box index,
// used by every neighborhood search in internal/topology: candidate
// edges near a ring, candidate faces near a hole, candidate inputs near
// a derived edge. It exposes exactly the two primitives spec.md §4.2
// requires — insert-by-bbox and query-by-bbox-overlap — so the rest of
// the pipeline never touches the underlying R-tree directly.
//
// Grounded on the teacher's ChartIndex (pkg/s57/index.go), which wraps
// the same library (github.com/dhconnelly/rtreego) the same way: a
// small Spatial adapter type plus NewTree/Insert/SearchIntersect.
package spatialindex

import (
	"github.com/dhconnelly/rtreego"
)

// Rect is an axis-aligned bounding box in the plane.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Expanded returns r grown by eps on every side. Used by point insertion
// (spec.md §4.4) to form the epsilon-square around a candidate point.
func (r Rect) Expanded(eps float64) Rect {
	return Rect{MinX: r.MinX - eps, MinY: r.MinY - eps, MaxX: r.MaxX + eps, MaxY: r.MaxY + eps}
}

func (r Rect) toRtreeRect() rtreego.Rect {
	point := rtreego.Point{r.MinX, r.MinY}
	lengths := []float64{
		maxf(r.MaxX-r.MinX, minSpan),
		maxf(r.MaxY-r.MinY, minSpan),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// minSpan is the smallest non-zero extent rtreego.NewRect accepts; a
// degenerate rect (a point, or a horizontal/vertical segment) is widened
// to this before insertion so the library never rejects it.
const minSpan = 1e-12

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// entry adapts an (id, bbox) pair to rtreego.Spatial.
type entry struct {
	id   int
	rect Rect
}

func (e entry) Bounds() rtreego.Rect { return e.rect.toRtreeRect() }

// Index is an insert-once-query-many bbox index over integer ids.
type Index struct {
	tree *rtreego.Rtree
}

// New creates an empty index. The branching factors (25, 50) match the
// teacher's ChartIndex, a reasonable default for the node/edge/face
// counts this package typically handles.
func New() *Index {
	return &Index{tree: rtreego.NewTree(2, 25, 50)}
}

// Insert adds id with the given bounding box.
func (idx *Index) Insert(id int, bbox Rect) {
	idx.tree.Insert(entry{id: id, rect: bbox})
}

// Query returns the ids of every entry whose bbox overlaps bbox.
func (idx *Index) Query(bbox Rect) []int {
	hits := idx.tree.SearchIntersect(bbox.toRtreeRect())
	ids := make([]int, len(hits))
	for i, h := range hits {
		ids[i] = h.(entry).id
	}
	return ids
}
