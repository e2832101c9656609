package topology

import "testing"

func square(x0, y0, x1, y1 float64) LineString {
	return LineString{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func TestClockwise(t *testing.T) {
	tests := []struct {
		name string
		ring LineString
		want bool
	}{
		{
			name: "counterclockwise square is not clockwise",
			ring: square(0, 0, 1, 1),
			want: false,
		},
		{
			name: "reversed square is clockwise",
			ring: square(0, 0, 1, 1).reversed(),
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clockwise(tt.ring); got != tt.want {
				t.Errorf("clockwise() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientation(t *testing.T) {
	ring := square(0, 0, 10, 10)

	tests := []struct {
		name    string
		sec     LineString
		want    bool
		wantErr bool
	}{
		{
			name: "forward subsequence",
			sec:  LineString{{0, 0}, {10, 0}},
			want: true,
		},
		{
			name: "reverse subsequence",
			sec:  LineString{{10, 0}, {0, 0}},
			want: false,
		},
		{
			name: "wrap-around forward subsequence",
			sec:  LineString{{10, 10}, {0, 10}, {0, 0}},
			want: true,
		},
		{
			name:    "not a contiguous subsequence",
			sec:     LineString{{0, 0}, {10, 10}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orientation(ring, tt.sec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("orientation() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("orientation() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("orientation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildRing(t *testing.T) {
	target := square(0, 0, 10, 10)
	edges := []ringEdge{
		{Geom: LineString{{0, 0}, {10, 0}}, Label: 100},
		{Geom: LineString{{10, 10}, {10, 0}}, Label: 101}, // stored reversed
		{Geom: LineString{{10, 10}, {0, 10}}, Label: 102},
		{Geom: LineString{{0, 10}, {0, 0}}, Label: 103},
	}

	refs, err := buildRing(target, edges)
	if err != nil {
		t.Fatalf("buildRing() error: %v", err)
	}
	if len(refs) != 4 {
		t.Fatalf("buildRing() produced %d refs, want 4", len(refs))
	}

	wantLabels := []int{100, 101, 102, 103}
	wantForward := []bool{true, false, true, true}
	for i, ref := range refs {
		if ref.EdgeIndex != wantLabels[i] {
			t.Errorf("ref[%d].EdgeIndex = %d, want %d", i, ref.EdgeIndex, wantLabels[i])
		}
		if ref.Forward != wantForward[i] {
			t.Errorf("ref[%d].Forward = %v, want %v", i, ref.Forward, wantForward[i])
		}
	}
}

func TestBuildRingStalls(t *testing.T) {
	target := square(0, 0, 10, 10)
	edges := []ringEdge{
		{Geom: LineString{{0, 0}, {10, 0}}, Label: 1},
		// missing the other three edges
	}
	if _, err := buildRing(target, edges); err == nil {
		t.Fatalf("buildRing() error = nil, want ErrRingReconstructionFailed")
	}
}

func TestBuildRingPivotTieBreakPicksSmallestIndex(t *testing.T) {
	// A figure-eight pinch point at (5,5): two candidate continuations
	// both start there. The smallest-index candidate must win.
	target := LineString{{0, 0}, {5, 5}, {10, 0}, {5, 5}, {0, 0}}
	edges := []ringEdge{
		{Geom: LineString{{0, 0}, {5, 5}}, Label: 0},
		{Geom: LineString{{5, 5}, {10, 0}}, Label: 1}, // should win the tie at (5,5)
		{Geom: LineString{{5, 5}, {0, 0}}, Label: 2},  // alternative continuation at (5,5)
		{Geom: LineString{{10, 0}, {5, 5}}, Label: 3},
	}
	refs, err := buildRing(target, edges)
	if err != nil {
		t.Fatalf("buildRing() error: %v", err)
	}
	if len(refs) != 4 {
		t.Fatalf("buildRing() produced %d refs, want 4", len(refs))
	}
	if refs[1].EdgeIndex != 1 {
		t.Errorf("at the pinch point, buildRing() picked edge %d, want smallest index 1", refs[1].EdgeIndex)
	}
}
