package formulas

import (
	"io"
	"slices"
	"strings"
)

// Formula is a parsed formula that can be evaluated against a Resolver. A
// Formula is immutable and safe for concurrent use.
type Formula struct {
	// root is the root node of the expression.
	root Expr
	// deps is the sorted set of cells the expression references.
	deps []Coord
}

// Parse parses a formula from src. The given options are applied in order.
// If the formula is invalid, the result is nil and the error is a
// *SyntaxError, *CellRefError, or *ValueError; errors reading src are
// returned as they are.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Formula, error) {
	scan := lex(src)
	p := newParsectx(opts)
	seq, err := parseformula(scan, &p)
	if err != nil {
		return nil, syntaxError(err)
	}
	b := builder{prec: p.prec}
	n, err := b.build(seq)
	if err != nil {
		return nil, err
	}
	return &Formula{root: n, deps: Dependencies(n)}, nil
}

// New parses formula text.
func New(text string, opts ...ParseOption) (*Formula, error) {
	return Parse(strings.NewReader(text), opts...)
}

// Eval evaluates the formula, looking up cells with r. If r is nil, every
// cell is zero.
func (f *Formula) Eval(r Resolver) (Value, error) {
	return Evaluate(f.root, r)
}

// Dependencies returns the distinct cells the formula references, ordered by
// row and then column. The result is a copy.
func (f *Formula) Dependencies() []Coord {
	return append(([]Coord)(nil), f.deps...)
}

// DependsOn reports whether the formula references c.
func (f *Formula) DependsOn(c Coord) bool {
	_, ok := slices.BinarySearchFunc(f.deps, c, Coord.Compare)
	return ok
}

// Root returns the root of the formula's expression tree.
func (f *Formula) Root() Expr {
	return f.root
}

// String creates a string representation of the parsed formula, with
// alternating round and square brackets grouping each term.
func (f *Formula) String() string {
	return f.root.String()
}

// EvalString is a shortcut to parse and evaluate formula text.
func EvalString(text string, r Resolver) (Value, error) {
	f, err := New(text)
	if err != nil {
		return Value{}, err
	}
	return f.Eval(r)
}
