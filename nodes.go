package formulas

import (
	"strings"
)

// Expr is a node in the abstract syntax tree of a formula. It is one of
// *BinaryOp, *CellRef, or *Literal; no other types implement it. Each node
// owns its children, and trees are never modified after they are built.
type Expr interface {
	// String returns the tree with every node bracketed, alternating round
	// and square brackets by depth.
	String() string

	fmt(b *strings.Builder, square bool)
}

// BinaryOp applies an operator to two subexpressions.
type BinaryOp struct {
	Op    Operator
	Left  Expr
	Right Expr
}

// CellRef is the value of a cell.
type CellRef struct {
	At Coord
}

// Literal is a constant.
type Literal struct {
	Value Value
}

func (n *BinaryOp) String() string { return exprString(n) }
func (n *CellRef) String() string  { return exprString(n) }
func (n *Literal) String() string  { return exprString(n) }

func exprString(n Expr) string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}

func (n *BinaryOp) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	n.Left.fmt(b, !square)
	b.WriteByte(' ')
	b.WriteString(n.Op.Symbol())
	b.WriteByte(' ')
	n.Right.fmt(b, !square)
	b.WriteByte(r)
}

func (n *CellRef) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.At.String())
	b.WriteByte(r)
}

func (n *Literal) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(n.Value.String())
	b.WriteByte(r)
}
