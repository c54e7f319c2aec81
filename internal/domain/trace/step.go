package trace

import "math/big"

// Operand is a named input of a Step
type Operand struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Step is the general-purpose record used by the number-theoretic algorithms:
// a label, the operands it consumed, the formula applied and the value produced.
type Step struct {
	Label       string    `json:"step"`
	Description string    `json:"description,omitempty"`
	Operands    []Operand `json:"operands,omitempty"`
	Formula     string    `json:"formula,omitempty"`
	Result      any       `json:"result,omitempty"`
}

// Op builds an Operand
func Op(name string, value any) Operand {
	return Operand{Name: name, Value: value}
}

// Clone copies the step, duplicating big integers and nested cloners so later
// arithmetic on the caller's values cannot leak into the trace.
func (s Step) Clone() Step {
	out := s
	if s.Operands != nil {
		out.Operands = make([]Operand, len(s.Operands))
		for i, op := range s.Operands {
			out.Operands[i] = Operand{Name: op.Name, Value: cloneValue(op.Value)}
		}
	}
	out.Result = cloneValue(s.Result)
	return out
}

type selfCloner interface {
	CloneAny() any
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case *big.Int:
		if x == nil {
			return x
		}
		return new(big.Int).Set(x)
	case []*big.Int:
		out := make([]*big.Int, len(x))
		for i, b := range x {
			if b != nil {
				out[i] = new(big.Int).Set(b)
			}
		}
		return out
	case []byte:
		return append([]byte(nil), x...)
	case selfCloner:
		return x.CloneAny()
	default:
		return v
	}
}

// CloneGrid returns a deep copy of a two-dimensional grid
func CloneGrid[T any](grid [][]T) [][]T {
	if grid == nil {
		return nil
	}
	out := make([][]T, len(grid))
	for i, row := range grid {
		out[i] = append([]T(nil), row...)
	}
	return out
}
