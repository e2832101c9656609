package planar

import "fmt"

// ErrAlreadyFinalized indicates AddGeometry was called after Finalize.
// spec.md's lifecycle says inputs are rejected once a graph is frozen;
// this gives that rejection a typed shape instead of a panic or a
// silently-ignored call.
type ErrAlreadyFinalized struct {
	// InputCount is the number of inputs that were already pending or
	// consumed at the time of the rejected call.
	InputCount int
}

func (e *ErrAlreadyFinalized) Error() string {
	return fmt.Sprintf("planar: graph already finalized (%d inputs consumed), cannot add more geometry", e.InputCount)
}
