package formulas

import "slices"

// Dependencies returns the distinct cells referenced by an expression, ordered
// by row and then column.
func Dependencies(e Expr) []Coord {
	seen := make(map[Coord]struct{})
	var deps []Coord
	collectDeps(e, seen, &deps)
	slices.SortFunc(deps, Coord.Compare)
	return deps
}

func collectDeps(e Expr, seen map[Coord]struct{}, deps *[]Coord) {
	switch n := e.(type) {
	case *Literal:
		// no cells
	case *CellRef:
		if _, ok := seen[n.At]; ok {
			return
		}
		seen[n.At] = struct{}{}
		*deps = append(*deps, n.At)
	case *BinaryOp:
		collectDeps(n.Left, seen, deps)
		collectDeps(n.Right, seen, deps)
	default:
		panic("formulas: collecting dependencies of nil expression")
	}
}
