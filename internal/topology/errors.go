package topology

import "fmt"

// ErrInvalidGeometryKind indicates EdgesOf was given a geometry of a kind
// it does not recognize.
type ErrInvalidGeometryKind struct {
	Kind int
}

func (e *ErrInvalidGeometryKind) Error() string {
	return fmt.Sprintf("topology: invalid geometry kind %d", e.Kind)
}

// ErrOrientationMismatch indicates orientation() was given an edge whose
// coordinate sequence is neither a forward nor a reverse contiguous
// subsequence of its reference ring.
type ErrOrientationMismatch struct {
	RingLen int
	EdgeLen int
}

func (e *ErrOrientationMismatch) Error() string {
	return fmt.Sprintf("topology: edge of length %d is not a contiguous subsequence (forward or reverse) of ring of length %d", e.EdgeLen, e.RingLen)
}

// ErrRingReconstructionFailed indicates buildRing could not find an edge
// whose endpoint meets the current pivot coordinate.
type ErrRingReconstructionFailed struct {
	PlacedEdges   int
	RemainingEdges int
}

func (e *ErrRingReconstructionFailed) Error() string {
	return fmt.Sprintf("topology: ring reconstruction stalled after placing %d edge(s); %d edge(s) remain unplaced and none meets the current pivot", e.PlacedEdges, e.RemainingEdges)
}

// ErrInvariantViolated indicates an assertion the topology builder
// depends on did not hold, e.g. a floating edge contained by more than
// one face's polygon.
type ErrInvariantViolated struct {
	Component string
	Detail    string
}

func (e *ErrInvariantViolated) Error() string {
	return fmt.Sprintf("topology: invariant violated in %s: %s", e.Component, e.Detail)
}
