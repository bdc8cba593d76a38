package formulas

import (
	"math"
	"strconv"
)

// Operator is a binary arithmetic operator.
type Operator int8

const (
	opNone Operator = iota

	Add       // +
	Subtract  // -
	Multiply  // *
	Divide    // /
	Remainder // %, with the sign of the dividend like math.Mod
	Power     // ^

	numOperators
)

// Operators contains the runes which are lexed as operators.
const Operators = "+-*/%^"

// Symbol returns the source text of the operator.
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Remainder:
		return "%"
	case Power:
		return "^"
	default:
		return ""
	}
}

func (op Operator) String() string {
	switch op {
	case Add:
		return "Add"
	case Subtract:
		return "Subtract"
	case Multiply:
		return "Multiply"
	case Divide:
		return "Divide"
	case Remainder:
		return "Remainder"
	case Power:
		return "Power"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// operatorFor gets the operator for a token string, or opNone.
func operatorFor(text string) Operator {
	switch text {
	case "+":
		return Add
	case "-":
		return Subtract
	case "*":
		return Multiply
	case "/":
		return Divide
	case "%":
		return Remainder
	case "^":
		return Power
	default:
		return opNone
	}
}

// Apply computes lhs op rhs. It never fails: results outside the reals are
// NaN or ±Inf following IEEE-754, e.g. 1/0 is +Inf and 0/0 is NaN. Operands
// that are not numbers give NaN.
func (op Operator) Apply(lhs, rhs Value) Value {
	x, ok := lhs.Float64()
	if !ok {
		return Number(math.NaN())
	}
	y, ok := rhs.Float64()
	if !ok {
		return Number(math.NaN())
	}
	switch op {
	case Add:
		return Number(x + y)
	case Subtract:
		return Number(x - y)
	case Multiply:
		return Number(x * y)
	case Divide:
		return Number(x / y)
	case Remainder:
		return Number(math.Mod(x, y))
	case Power:
		return Number(math.Pow(x, y))
	default:
		panic("formulas: invalid operator " + op.String())
	}
}
