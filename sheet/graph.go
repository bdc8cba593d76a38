package sheet

import (
	"slices"

	"github.com/zephyrtronium/formulas"
)

// graph tracks which formula cells reference which cells. Edges point from a
// formula cell to each of its precedents, with a reverse index of dependents.
type graph struct {
	// precedents maps each formula cell to the sorted cells it references.
	precedents map[formulas.Coord][]formulas.Coord
	// dependents maps each referenced cell to the formula cells that
	// reference it.
	dependents map[formulas.Coord]map[formulas.Coord]struct{}
}

func newGraph() *graph {
	return &graph{
		precedents: make(map[formulas.Coord][]formulas.Coord),
		dependents: make(map[formulas.Coord]map[formulas.Coord]struct{}),
	}
}

// setPrecedents replaces the edges out of c. deps must be sorted and free of
// duplicates, as from (*formulas.Formula).Dependencies. An empty deps removes
// c from the graph as a formula cell.
func (g *graph) setPrecedents(c formulas.Coord, deps []formulas.Coord) {
	for _, p := range g.precedents[c] {
		ds := g.dependents[p]
		delete(ds, c)
		if len(ds) == 0 {
			delete(g.dependents, p)
		}
	}
	if len(deps) == 0 {
		delete(g.precedents, c)
		return
	}
	g.precedents[c] = deps
	for _, p := range deps {
		ds := g.dependents[p]
		if ds == nil {
			ds = make(map[formulas.Coord]struct{})
			g.dependents[p] = ds
		}
		ds[c] = struct{}{}
	}
}

// cycle returns the cycle that giving c the precedents deps would create, or
// nil if there would be none. The result starts with c, and each cell in it
// references the next; the last references c.
func (g *graph) cycle(c formulas.Coord, deps []formulas.Coord) []formulas.Coord {
	visited := make(map[formulas.Coord]struct{})
	var path []formulas.Coord
	var visit func(d formulas.Coord) bool
	visit = func(d formulas.Coord) bool {
		if d == c {
			return true
		}
		if _, ok := visited[d]; ok {
			return false
		}
		visited[d] = struct{}{}
		path = append(path, d)
		for _, p := range g.precedents[d] {
			if visit(p) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	for _, d := range deps {
		if visit(d) {
			return append([]formulas.Coord{c}, path...)
		}
	}
	return nil
}

// affected returns c and every cell that transitively depends on it, in an
// order where each cell follows all of its precedents.
func (g *graph) affected(c formulas.Coord) []formulas.Coord {
	set := map[formulas.Coord]struct{}{c: {}}
	var collect func(formulas.Coord)
	collect = func(x formulas.Coord) {
		for d := range g.dependents[x] {
			if _, ok := set[d]; ok {
				continue
			}
			set[d] = struct{}{}
			collect(d)
		}
	}
	collect(c)
	return g.order(set)
}

// order sorts the cells of set so that each follows its precedents within the
// set. The graph must be acyclic.
func (g *graph) order(set map[formulas.Coord]struct{}) []formulas.Coord {
	cells := make([]formulas.Coord, 0, len(set))
	for c := range set {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, formulas.Coord.Compare)

	// Unvisited cells are absent from state, visiting ones are false, and
	// finished ones are true.
	state := make(map[formulas.Coord]bool, len(cells))
	order := make([]formulas.Coord, 0, len(cells))
	var visit func(formulas.Coord)
	visit = func(x formulas.Coord) {
		if done, ok := state[x]; ok {
			if !done {
				panic("sheet: cycle through " + x.String())
			}
			return
		}
		state[x] = false
		for _, p := range g.precedents[x] {
			if _, ok := set[p]; ok {
				visit(p)
			}
		}
		state[x] = true
		order = append(order, x)
	}
	for _, c := range cells {
		visit(c)
	}
	return order
}

// dependentsOf returns the cells directly referencing c, sorted.
func (g *graph) dependentsOf(c formulas.Coord) []formulas.Coord {
	ds := g.dependents[c]
	if len(ds) == 0 {
		return nil
	}
	r := make([]formulas.Coord, 0, len(ds))
	for d := range ds {
		r = append(r, d)
	}
	slices.SortFunc(r, formulas.Coord.Compare)
	return r
}
