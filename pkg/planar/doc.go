// Package planar builds planar graphs — nodes, edges, faces, and
// oriented rings — out of heterogeneous 1D and 2D geometry.
//
// Create a Builder with NewBuilder, feed it geometry with AddGeometry,
// then call Finalize to get an immutable Graph.
//
// Example:
//
//	b := planar.NewBuilder(planar.Options{BuildTopology: true})
//	b.AddGeometry(planar.NewPolygonGeometry(rings))
//	g, err := b.Finalize()
//	for _, f := range g.Faces() {
//	    ...
//	}
package planar
