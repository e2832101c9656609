package topology

import "testing"

func TestMergeCollinearFusesStraightRun(t *testing.T) {
	pieces := []LineString{
		{{0, 0}, {5, 0}},
		{{5, 0}, {10, 0}},
	}
	merged := mergeCollinear(pieces)
	if len(merged) != 1 {
		t.Fatalf("mergeCollinear() produced %d piece(s), want 1", len(merged))
	}
	want := LineString{{0, 0}, {5, 0}, {10, 0}}
	got := merged[0]
	if len(got) != len(want) {
		t.Fatalf("merged piece has %d point(s), want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMergeCollinearLeavesKinkAlone(t *testing.T) {
	pieces := []LineString{
		{{0, 0}, {5, 0}},
		{{5, 0}, {5, 5}}, // turns 90 degrees at (5,0)
	}
	merged := mergeCollinear(pieces)
	if len(merged) != 2 {
		t.Fatalf("mergeCollinear() produced %d piece(s), want 2 (no fusion across a kink)", len(merged))
	}
}

func TestUnifySingleLineShortCircuits(t *testing.T) {
	line := LineString{{0, 0}, {1, 1}, {2, 0}}
	out, err := Unify([]LineString{line})
	if err != nil {
		t.Fatalf("Unify() error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Unify() with one input produced %d piece(s), want 1", len(out))
	}
	for i, p := range line {
		if out[0][i] != p {
			t.Errorf("point %d = %v, want %v (single input must pass through unchanged)", i, out[0][i], p)
		}
	}
}

func TestPolygonizeSquareYieldsOneBoundedFace(t *testing.T) {
	edges := []LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {10, 10}},
		{{10, 10}, {0, 10}},
		{{0, 10}, {0, 0}},
	}
	faces := Polygonize(edges)
	if len(faces) != 1 {
		t.Fatalf("Polygonize() produced %d face(s), want 1", len(faces))
	}
	if area := signedArea(faces[0]); area <= 0 {
		t.Errorf("face signed area = %v, want > 0 (counterclockwise)", area)
	}
}

func TestPolygonizeIgnoresFloatingEdge(t *testing.T) {
	edges := []LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {10, 10}},
		{{10, 10}, {0, 10}},
		{{0, 10}, {0, 0}},
		{{3, 3}, {7, 7}}, // floating, touches nothing
	}
	faces := Polygonize(edges)
	if len(faces) != 1 {
		t.Fatalf("Polygonize() produced %d face(s), want 1 (floating edge must not become a face)", len(faces))
	}
}

func TestPolygonizeTwoAdjacentSquares(t *testing.T) {
	// Unit squares [0,1]x[0,1] and [1,2]x[0,1], sharing the edge x=1.
	edges := []LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {1, 1}},
		{{1, 1}, {0, 1}},
		{{0, 1}, {0, 0}},
		{{1, 0}, {2, 0}},
		{{2, 0}, {2, 1}},
		{{2, 1}, {1, 1}},
	}
	faces := Polygonize(edges)
	if len(faces) != 2 {
		t.Fatalf("Polygonize() produced %d face(s), want 2", len(faces))
	}
}
