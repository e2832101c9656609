package planar

// Options configures what a Builder computes when its graph is finalized.
//
// The four flags form an implication lattice: BuildSources implies
// BuildTopology, and BuildTopology implies both BuildNodes and BuildFaces.
// NewOptions promotes a caller's request up the lattice rather than
// rejecting an inconsistent combination, matching the source library's
// behavior of normalizing configuration instead of erroring on it.
type Options struct {
	// BuildNodes causes distinct endpoint coordinates to be collected into
	// a Node list.
	BuildNodes bool

	// BuildFaces causes bounded regions to be polygonized into a Face list.
	BuildFaces bool

	// BuildTopology causes edges to carry endpoint node indices and
	// left/right face indices, with rings constructed and assigned.
	// Implies BuildNodes and BuildFaces.
	BuildTopology bool

	// BuildSources causes each derived edge to carry the sorted set of
	// input identifiers whose traces contributed to it. Implies
	// BuildTopology.
	BuildSources bool
}

// NewOptions normalizes opts by promoting flags up the dependency lattice:
// BuildSources ⇒ BuildTopology ⇒ (BuildNodes ∧ BuildFaces).
func NewOptions(opts Options) Options {
	if opts.BuildSources {
		opts.BuildTopology = true
	}
	if opts.BuildTopology {
		opts.BuildNodes = true
		opts.BuildFaces = true
	}
	return opts
}
