package planar_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/go-spatial/planargraph/pkg/planar"
)

// square returns a closed ring (exterior-ring orientation doesn't
// matter to the builder; it is normalized internally).
func square(x0, y0, x1, y1 float64) []planar.Point {
	return []planar.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	}
}

type BuilderSuite struct {
	suite.Suite
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

// A single polygon submitted alone never goes through noding (spec.md
// §4.6's one-input short-circuit), so its ring stays exactly what it
// was handed in as: one closed, self-looping edge whose start and end
// node are the same single node. Splitting it into per-corner edges
// would require some other geometry to actually share a corner with it.
func (s *BuilderSuite) TestSingleSquare() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(0, 0, 10, 10)}))
	require.NoError(s.T(), err)

	g, err := b.Finalize()
	require.NoError(s.T(), err)

	require.Len(s.T(), g.Nodes(), 1)
	require.Len(s.T(), g.Edges(), 1)
	require.Len(s.T(), g.Faces(), 1)
	require.Len(s.T(), g.Rings(), 1)

	edge := g.Edges()[0]
	start, startOK := edge.Start.Get()
	end, endOK := edge.End.Get()
	require.True(s.T(), startOK && endOK)
	require.Equal(s.T(), start, end, "an isolated ring's edge starts and ends at the same node")

	face := g.Faces()[0]
	_, ok := face.ExteriorRing.Get()
	require.True(s.T(), ok)
	require.Empty(s.T(), face.InteriorRings)

	left, leftOK := edge.Left.Get()
	right, rightOK := edge.Right.Get()
	require.True(s.T(), leftOK != rightOK, "exactly one side of a boundary edge of an isolated square should be set")
	if leftOK {
		require.Equal(s.T(), 0, left)
	}
	if rightOK {
		require.Equal(s.T(), 0, right)
	}
}

func (s *BuilderSuite) TestTwoAdjacentSquares() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(0, 0, 1, 1)}))
	require.NoError(s.T(), err)
	_, err = b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(1, 0, 2, 1)}))
	require.NoError(s.T(), err)

	g, err := b.Finalize()
	require.NoError(s.T(), err)

	require.Len(s.T(), g.Nodes(), 6)
	require.Len(s.T(), g.Edges(), 7)
	require.Len(s.T(), g.Faces(), 2)
}

func (s *BuilderSuite) TestSquareWithContainedHole() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(0, 0, 10, 10)}))
	require.NoError(s.T(), err)
	_, err = b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(3, 3, 7, 7)}))
	require.NoError(s.T(), err)

	g, err := b.Finalize()
	require.NoError(s.T(), err)

	require.Len(s.T(), g.Faces(), 2)

	var annulus, hole *planar.Face
	for i, f := range g.Faces() {
		if len(f.InteriorRings) > 0 {
			annulus = &g.Faces()[i]
		} else {
			hole = &g.Faces()[i]
		}
	}
	require.NotNil(s.T(), annulus, "one face should have the inner square as a hole")
	require.NotNil(s.T(), hole)
	require.Len(s.T(), annulus.InteriorRings, 1)
}

func (s *BuilderSuite) TestHoleFilledByTwoRectangles() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(0, 0, 10, 10)}))
	require.NoError(s.T(), err)
	_, err = b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(3, 3, 5, 7)}))
	require.NoError(s.T(), err)
	_, err = b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(5, 3, 7, 7)}))
	require.NoError(s.T(), err)

	g, err := b.Finalize()
	require.NoError(s.T(), err)

	require.Len(s.T(), g.Faces(), 3)

	var outer *planar.Face
	for i, f := range g.Faces() {
		if len(f.InteriorRings) > 0 {
			outer = &g.Faces()[i]
		}
	}
	require.NotNil(s.T(), outer, "the outer face should have a synthesized hole ring for the two filling rectangles")
	require.Len(s.T(), outer.InteriorRings, 1)
}

func (s *BuilderSuite) TestCrossingLinesCarrySourceProvenance() {
	b := planar.NewBuilder(planar.Options{BuildSources: true})
	id0, err := b.AddGeometry(planar.NewLineStringGeometry([]planar.Point{{X: 0, Y: 5}, {X: 10, Y: 5}}))
	require.NoError(s.T(), err)
	require.NotNil(s.T(), id0)
	require.Equal(s.T(), 0, *id0)

	id1, err := b.AddGeometry(planar.NewLineStringGeometry([]planar.Point{{X: 5, Y: 0}, {X: 5, Y: 10}}))
	require.NoError(s.T(), err)
	require.NotNil(s.T(), id1)
	require.Equal(s.T(), 1, *id1)

	g, err := b.Finalize()
	require.NoError(s.T(), err)

	require.Len(s.T(), g.Edges(), 4, "each original line should be split in two at the crossing")
	for _, e := range g.Edges() {
		require.Len(s.T(), e.Sources, 1, "each derived edge should trace back to exactly one original input")
	}
}

// The square and the diagonal never cross, so Unify's noding pass
// leaves both inputs whole: the square stays a single self-looping
// ring-edge and the diagonal stays its own edge. Only their face-side
// assignment is exercised here.
func (s *BuilderSuite) TestFloatingEdgeInsideFace() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(0, 0, 10, 10)}))
	require.NoError(s.T(), err)
	_, err = b.AddGeometry(planar.NewLineStringGeometry([]planar.Point{{X: 3, Y: 3}, {X: 7, Y: 7}}))
	require.NoError(s.T(), err)

	g, err := b.Finalize()
	require.NoError(s.T(), err)

	require.Len(s.T(), g.Faces(), 1)
	require.Len(s.T(), g.Edges(), 2)

	var floating *planar.Edge
	for i, e := range g.Edges() {
		if len(e.Geom) == 2 {
			floating = &g.Edges()[i]
		}
	}
	require.NotNil(s.T(), floating)
	left, leftOK := floating.Left.Get()
	right, rightOK := floating.Right.Get()
	require.True(s.T(), leftOK && rightOK, "a floating edge should have both sides set to its enclosing face")
	require.Equal(s.T(), left, right)
	require.Equal(s.T(), 0, left)
}

// A floating edge lying entirely outside every face matches zero
// containing faces, which spec.md §4.8 treats as legal: both sides
// stay unset rather than erroring.
func (s *BuilderSuite) TestFloatingEdgeOutsideAllFaces() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(0, 0, 10, 10)}))
	require.NoError(s.T(), err)
	_, err = b.AddGeometry(planar.NewLineStringGeometry([]planar.Point{{X: 20, Y: 20}, {X: 25, Y: 25}}))
	require.NoError(s.T(), err)

	g, err := b.Finalize()
	require.NoError(s.T(), err)

	require.Len(s.T(), g.Faces(), 1)
	require.Len(s.T(), g.Edges(), 2)

	var outside *planar.Edge
	for i, e := range g.Edges() {
		if len(e.Geom) == 2 {
			outside = &g.Edges()[i]
		}
	}
	require.NotNil(s.T(), outside)
	_, leftOK := outside.Left.Get()
	_, rightOK := outside.Right.Get()
	require.False(s.T(), leftOK, "an edge outside every face should have its left side left unset")
	require.False(s.T(), rightOK, "an edge outside every face should have its right side left unset")
}

func (s *BuilderSuite) TestFinalizeIsIdempotent() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.AddGeometry(planar.NewPolygonGeometry([][]planar.Point{square(0, 0, 1, 1)}))
	require.NoError(s.T(), err)

	g1, err := b.Finalize()
	require.NoError(s.T(), err)
	g2, err := b.Finalize()
	require.NoError(s.T(), err)
	require.Same(s.T(), g1, g2)
}

func (s *BuilderSuite) TestAddGeometryAfterFinalizeIsRejected() {
	b := planar.NewBuilder(planar.Options{BuildTopology: true})
	_, err := b.Finalize()
	require.NoError(s.T(), err)

	_, err = b.AddGeometry(planar.NewPointGeometry(planar.Point{X: 0, Y: 0}))
	require.Error(s.T(), err)
	var already *planar.ErrAlreadyFinalized
	require.ErrorAs(s.T(), err, &already)
}

func (s *BuilderSuite) TestOptionsLatticePromotesFlags() {
	opts := planar.NewOptions(planar.Options{BuildSources: true})
	require.True(s.T(), opts.BuildTopology)
	require.True(s.T(), opts.BuildNodes)
	require.True(s.T(), opts.BuildFaces)
}
