package formulas

// Resolver provides the current values of cells during evaluation. A Resolver
// used to evaluate formulas concurrently must be safe for concurrent Get
// calls.
type Resolver interface {
	// Get returns the value of the cell at c. Whether cells that have never
	// been set are an error or a default value is up to the Resolver.
	Get(c Coord) (Value, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(c Coord) (Value, error)

// Get calls f(c).
func (f ResolverFunc) Get(c Coord) (Value, error) {
	return f(c)
}

// Cells is a Resolver backed by a map. Cells that are not in the map have the
// value zero. A nil Cells is a valid Resolver in which every cell is zero.
type Cells map[Coord]Value

// Get returns the value at c, or zero if there is none. It never fails.
func (m Cells) Get(c Coord) (Value, error) {
	return m[c], nil
}

var (
	_ Resolver = ResolverFunc(nil)
	_ Resolver = Cells(nil)
)

// Evaluate computes the value of an expression, looking up cells with r. The
// left operand of each operator is evaluated before the right. The first
// error from r stops evaluation and is returned unchanged. A nil r is the
// same as Cells(nil), so every cell is zero.
func Evaluate(e Expr, r Resolver) (Value, error) {
	if r == nil {
		r = Cells(nil)
	}
	return evaluate(e, r)
}

func evaluate(e Expr, r Resolver) (Value, error) {
	switch n := e.(type) {
	case *Literal:
		return n.Value, nil
	case *CellRef:
		return r.Get(n.At)
	case *BinaryOp:
		lhs, err := evaluate(n.Left, r)
		if err != nil {
			return Value{}, err
		}
		rhs, err := evaluate(n.Right, r)
		if err != nil {
			return Value{}, err
		}
		return n.Op.Apply(lhs, rhs), nil
	default:
		// Only a nil Expr gets here.
		panic("formulas: evaluating nil expression")
	}
}
