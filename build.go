package formulas

import (
	"errors"
	"strconv"
)

// builder turns parse trees into expression trees by precedence climbing.
type builder struct {
	prec Precedence
}

// pairs iterates over a flat expression sequence.
type pairs struct {
	seq []pair
	i   int
}

func (it *pairs) peek() (pair, bool) {
	if it.i >= len(it.seq) {
		return pair{}, false
	}
	return it.seq[it.i], true
}

func (it *pairs) next() pair {
	p := it.seq[it.i]
	it.i++
	return p
}

// build builds the expression for a sequence of factors separated by
// operators, as produced by parseexpr.
func (b *builder) build(seq []pair) (Expr, error) {
	if len(seq) == 0 {
		panic("formulas: empty expression sequence")
	}
	it := &pairs{seq: seq}
	lhs, err := b.primary(it.next())
	if err != nil {
		return nil, err
	}
	n, err := b.climb(it, lhs, exprprec)
	if err != nil {
		return nil, err
	}
	if _, ok := it.peek(); ok {
		panic("formulas: unconsumed parse tree: " + seq[it.i].String())
	}
	return n, nil
}

// climb folds operators into lhs for as long as they bind more tightly than
// until. The right operand of each operator is climbed with that operator as
// the new limit, so left-associative operators of equal precedence fold
// left to right and right-associative ones nest to the right.
func (b *builder) climb(it *pairs, lhs Expr, until operator) (Expr, error) {
	for {
		tok, ok := it.peek()
		if !ok {
			return lhs, nil
		}
		if tok.rule != ruleOp {
			panic("formulas: expected operator in parse tree, got " + tok.String())
		}
		prec := b.prec.lookup(operatorFor(tok.text))
		if prec.op == opNone {
			panic("formulas: no precedence for operator " + strconv.Quote(tok.text))
		}
		if !prec.moreBinding(until) {
			return lhs, nil
		}
		it.next()
		rhs, err := b.primary(it.next())
		if err != nil {
			return nil, err
		}
		rhs, err = b.climb(it, rhs, prec)
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{Op: prec.op, Left: lhs, Right: rhs}
	}
}

// primary builds a leaf or a parenthesized subexpression.
func (b *builder) primary(p pair) (Expr, error) {
	switch p.rule {
	case ruleNum:
		v, err := parseValue(p)
		if err != nil {
			return nil, err
		}
		return &Literal{Value: v}, nil
	case ruleCell:
		c, err := resolveCoord(p.col, p.row)
		if err != nil {
			return nil, cellRefError(p.token(), err)
		}
		return &CellRef{At: c}, nil
	case ruleExpr:
		return b.build(p.inner)
	default:
		panic("formulas: expected factor in parse tree, got " + p.String())
	}
}

// parseValue converts number text to a Value. Numbers too large for a
// float64 become infinities rather than errors.
func parseValue(p pair) (Value, error) {
	f, err := strconv.ParseFloat(p.text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, &ValueError{Col: p.pos, Text: p.text, Err: err}
	}
	return Number(f), nil
}
