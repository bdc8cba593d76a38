package formulas

import (
	"errors"
	"strconv"
)

// Assoc is the associativity of an operator.
type Assoc int8

const (
	// Left groups a-b-c as (a-b)-c.
	Left Assoc = iota
	// Right groups a^b^c as a^(b^c).
	Right
)

// Level is a group of operators that bind equally tightly.
type Level struct {
	Assoc Assoc
	Ops   []Operator
}

// Precedence is an operator precedence table used to build expressions. It is
// a plain value; copies are independent and nothing modifies a table after
// it is created. The zero Precedence is not valid; use DefaultPrecedence or
// NewPrecedence.
type Precedence struct {
	ops [numOperators]operator
}

// NewPrecedence creates a precedence table from levels ordered from loosest
// to tightest binding. Every operator must appear exactly once.
func NewPrecedence(levels ...Level) (Precedence, error) {
	var p Precedence
	if len(levels) > 127 {
		return Precedence{}, errors.New("formulas: too many precedence levels")
	}
	for i, lv := range levels {
		for _, op := range lv.Ops {
			if op <= opNone || op >= numOperators {
				return Precedence{}, errors.New("formulas: invalid operator " + op.String() + " in precedence level " + strconv.Itoa(i))
			}
			if p.ops[op].op != opNone {
				return Precedence{}, errors.New("formulas: operator " + op.Symbol() + " appears in more than one precedence level")
			}
			p.ops[op] = operator{prec: int8(i), right: lv.Assoc == Right, op: op}
		}
	}
	for op := opNone + 1; op < numOperators; op++ {
		if p.ops[op].op == opNone {
			return Precedence{}, errors.New("formulas: no precedence for operator " + op.Symbol())
		}
	}
	return p, nil
}

// DefaultPrecedence returns the usual arithmetic table: + and - bind loosest,
// then * / and %, all left-associative, then right-associative ^.
func DefaultPrecedence() Precedence {
	return defaultPrecedence
}

var defaultPrecedence = mustPrecedence(
	Level{Left, []Operator{Add, Subtract}},
	Level{Left, []Operator{Multiply, Divide, Remainder}},
	Level{Right, []Operator{Power}},
)

func mustPrecedence(levels ...Level) Precedence {
	p, err := NewPrecedence(levels...)
	if err != nil {
		panic(err)
	}
	return p
}

// Of returns the level and associativity of op. Higher levels bind tighter.
func (p Precedence) Of(op Operator) (level int, assoc Assoc) {
	o := p.lookup(op)
	if o.right {
		assoc = Right
	}
	return int(o.prec), assoc
}

// valid reports whether p assigns every operator a level.
func (p Precedence) valid() bool {
	return p.ops[Add].op != opNone
}

// lookup gets the operator entry for op. If there is no such operator, then
// the result has an op of opNone.
func (p Precedence) lookup(op Operator) operator {
	if op <= opNone || op >= numOperators {
		return operator{}
	}
	return p.ops[op]
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operator to use when this entry is selected.
	op Operator
}

// moreBinding reports whether p takes the operand between it and than, where
// than is the operator to its left.
func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, opNone}
