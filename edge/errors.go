package edge

import "fmt"

// UnknownOperatorError is returned for an operator name outside the
// supported set.
type UnknownOperatorError struct {
	Name string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("edge: unknown edge embedding method %q (want hadamard, average, weightedL1 or weightedL2)", e.Name)
}

// MissingNodeError is returned when an edge endpoint has no embedding.
// Position is the index of the edge in the input list.
type MissingNodeError struct {
	Node     string
	Position int
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("edge: node %q of edge %d has no embedding", e.Node, e.Position)
}

// NonFiniteError is returned when an operator overflows to an infinite or
// NaN edge vector component.
type NonFiniteError struct {
	Src, Dst string
	Position int
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("edge: edge %d (%s, %s) has a non-finite edge vector", e.Position, e.Src, e.Dst)
}
