package edge

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Operator combines two endpoint vectors into an edge vector.
type Operator int

const (
	// Hadamard is the elementwise product.
	Hadamard Operator = iota
	// Average is the elementwise mean.
	Average
	// WeightedL1 is the elementwise absolute difference.
	WeightedL1
	// WeightedL2 is the elementwise squared difference.
	WeightedL2
)

var operatorNames = [...]string{
	Hadamard:   "hadamard",
	Average:    "average",
	WeightedL1: "weightedL1",
	WeightedL2: "weightedL2",
}

// Operators lists every supported operator.
func Operators() []Operator {
	return []Operator{Hadamard, Average, WeightedL1, WeightedL2}
}

// ParseOperator resolves an operator by its exact name.
func ParseOperator(name string) (Operator, error) {
	for op, n := range operatorNames {
		if n == name {
			return Operator(op), nil
		}
	}
	return 0, &UnknownOperatorError{Name: name}
}

// Valid reports whether op is one of the defined operators.
func (op Operator) Valid() bool {
	return op >= Hadamard && op <= WeightedL2
}

func (op Operator) String() string {
	if !op.Valid() {
		return "unknown"
	}
	return operatorNames[op]
}

// MarshalText implements encoding.TextMarshaler.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, &UnknownOperatorError{Name: op.String()}
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Apply writes the combination of a and b into dst. All three slices must
// have the same length; dst may alias neither input.
func (op Operator) Apply(dst, a, b []float64) {
	switch op {
	case Hadamard:
		floats.MulTo(dst, a, b)
	case Average:
		floats.AddTo(dst, a, b)
		floats.Scale(0.5, dst)
	case WeightedL1:
		floats.SubTo(dst, a, b)
		for i, v := range dst {
			dst[i] = math.Abs(v)
		}
	case WeightedL2:
		floats.SubTo(dst, a, b)
		floats.Mul(dst, dst)
	default:
		panic("edge: apply on invalid operator")
	}
}
