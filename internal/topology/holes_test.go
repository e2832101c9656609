package topology

import "testing"

func TestHolesDetectsNestedFace(t *testing.T) {
	outer := facePolygon{Exterior: square(0, 0, 10, 10)}
	inner := facePolygon{Exterior: square(3, 3, 7, 7)}
	faces := []facePolygon{outer, inner}

	holeCandidates := [][]LineString{
		{faces[0].Exterior},
		{faces[1].Exterior},
	}

	result := Holes(faces, holeCandidates)
	if len(result) != 2 {
		t.Fatalf("Holes() produced %d row(s), want 2", len(result))
	}
	if got := result[0][0]; len(got) != 1 || got[0] != 1 {
		t.Errorf("Holes()[0][0] = %v, want [1]", got)
	}
	if got := result[1][0]; len(got) != 0 {
		t.Errorf("Holes()[1][0] = %v, want empty (the inner square contains nothing)", got)
	}
}

func TestHolesNoOverlap(t *testing.T) {
	a := facePolygon{Exterior: square(0, 0, 1, 1)}
	b := facePolygon{Exterior: square(5, 5, 6, 6)}
	faces := []facePolygon{a, b}
	holeCandidates := [][]LineString{
		{faces[0].Exterior},
		{faces[1].Exterior},
	}
	result := Holes(faces, holeCandidates)
	if len(result[0][0]) != 0 || len(result[1][0]) != 0 {
		t.Errorf("Holes() found spurious containment between disjoint squares")
	}
}
