package topology

import (
	"github.com/go-spatial/planargraph/internal/geomkernel"
	"github.com/go-spatial/planargraph/internal/spatialindex"
)

// facePolygon is the minimal shape the hole classifier needs about a
// face: its outer-ring line string (closed) and, for the polygon
// predicates, the same ring expressed as a one-ring polygon (no holes
// — at this stage of the pipeline a face's own holes are irrelevant to
// whether *other* faces sit inside *its* hole).
type facePolygon struct {
	Exterior LineString
}

func (f facePolygon) asKernelPolygon() geomkernel.Polygon {
	return geomkernel.Polygon{toKernelXYs(f.Exterior)}
}

func toKernelXYs(ls LineString) []geomkernel.XY {
	out := make([]geomkernel.XY, len(ls))
	for i, p := range ls {
		out[i] = geomkernel.XY{X: p.X, Y: p.Y}
	}
	return out
}

// Holes computes, for each face's each interior-ring hole, the list of
// other face indices whose exteriors are fully contained in that hole
// — spec.md §4.5. holes[i] are the candidate hole line strings
// (closed rings) for face i, in the order they will become intrings;
// the result mirrors that shape: result[i][h] is the list of face
// indices contained in holes[i][h].
//
// A bbox index over all face exteriors narrows candidates before the
// exact, kernel-delegated intersects/contains checks.
func Holes(faces []facePolygon, holes [][]LineString) [][][]int {
	idx := spatialindex.New()
	for i, f := range faces {
		idx.Insert(i, f.Exterior.bbox())
	}

	result := make([][][]int, len(holes))
	for fi, faceHoles := range holes {
		result[fi] = make([][]int, len(faceHoles))
		for hi, hole := range faceHoles {
			holePoly := geomkernel.Polygon{toKernelXYs(hole)}
			var contained []int
			for _, candidate := range idx.Query(hole.bbox()) {
				if candidate == fi {
					continue
				}
				cand := faces[candidate]
				hits, err := geomkernel.Intersects(holePoly, []geomkernel.XY(toKernelXYs(cand.Exterior)))
				if err != nil || !hits {
					continue
				}
				ok, err := geomkernel.Contains(holePoly, cand.asKernelPolygon())
				if err != nil || !ok {
					continue
				}
				contained = append(contained, candidate)
			}
			result[fi][hi] = contained
		}
	}
	return result
}
