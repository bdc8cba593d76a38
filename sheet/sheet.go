// Package sheet keeps a grid of cells holding numbers or formulas and
// recalculates formulas when the cells they reference change.
package sheet

import (
	"slices"
	"sync"

	multierror "github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru"

	"github.com/zephyrtronium/formulas"
)

// Sheet is a set of cells. Cells that were never set hold zero. A Sheet is
// safe for concurrent use; reads may run in parallel with each other.
type Sheet struct {
	mu    sync.RWMutex
	cells map[formulas.Coord]*cell
	deps  *graph
	cache *lru.Cache
	cfg   config
}

// cell is the content of one cell. A constant has a nil formula.
type cell struct {
	formula *formulas.Formula
	src     string
	value   formulas.Value
	err     error
}

// New creates an empty sheet.
func New(opts ...Option) *Sheet {
	s := &Sheet{
		cells: make(map[formulas.Coord]*cell),
		deps:  newGraph(),
		cfg:   newConfig(opts),
	}
	if s.cfg.cache > 0 {
		c, err := lru.New(s.cfg.cache)
		if err != nil {
			// Only non-positive sizes fail.
			panic(err)
		}
		s.cache = c
	}
	return s
}

var _ formulas.Resolver = (*Sheet)(nil)

// Get returns the current value of the cell at c. If c holds a formula that
// could not be computed, the error is the reason.
func (s *Sheet) Get(c formulas.Coord) (formulas.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(c)
}

// lookup is Get without locking.
func (s *Sheet) lookup(c formulas.Coord) (formulas.Value, error) {
	if err := s.check(c); err != nil {
		return formulas.Value{}, err
	}
	x := s.cells[c]
	if x == nil {
		return formulas.Value{}, nil
	}
	return x.value, x.err
}

func (s *Sheet) check(c formulas.Coord) error {
	if s.cfg.rows > 0 && (c.Row < 1 || c.Row > s.cfg.rows) || s.cfg.cols > 0 && (c.Col < 1 || c.Col > s.cfg.cols) {
		return &RangeError{At: c, Rows: s.cfg.rows, Cols: s.cfg.cols}
	}
	return nil
}

// SetValue stores a constant at c and recalculates the cells that depend on
// it.
func (s *Sheet) SetValue(c formulas.Coord, v formulas.Value) error {
	if err := s.check(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deps.setPrecedents(c, nil)
	s.cells[c] = &cell{value: v}
	s.recalc(c)
	return nil
}

// SetFormula parses text and stores it at c, then computes c and the cells
// that depend on it. If the text is not a valid formula, the error is from
// formulas.New. If the formula would make c depend on its own value, the
// error is a *formulas.CycleError. In either case the sheet is unchanged.
//
// Failing to compute the formula is not an error here; Get on c returns the
// reason.
func (s *Sheet) SetFormula(c formulas.Coord, text string) error {
	if err := s.check(c); err != nil {
		return err
	}
	f, err := s.parse(text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deps := f.Dependencies()
	if cyc := s.deps.cycle(c, deps); cyc != nil {
		return &formulas.CycleError{Cells: cyc}
	}
	s.deps.setPrecedents(c, deps)
	s.cells[c] = &cell{formula: f, src: text}
	s.recalc(c)
	return nil
}

// Clear empties the cell at c so that it holds zero and recalculates the
// cells that depend on it.
func (s *Sheet) Clear(c formulas.Coord) error {
	if err := s.check(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cells[c] == nil {
		return nil
	}
	s.deps.setPrecedents(c, nil)
	delete(s.cells, c)
	s.recalc(c)
	return nil
}

// Recalculate recomputes every formula in the sheet. The error lists a
// *CellError for each formula that failed.
func (s *Sheet) Recalculate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[formulas.Coord]struct{})
	for c, x := range s.cells {
		if x.formula != nil {
			set[c] = struct{}{}
		}
	}
	var errs *multierror.Error
	for _, c := range s.deps.order(set) {
		if err := s.compute(c); err != nil {
			errs = multierror.Append(errs, &CellError{At: c, Err: err})
		}
	}
	s.cfg.log.Debugf("recalculated %d formulas", len(set))
	return errs.ErrorOrNil()
}

// Formula returns the source text of the formula at c. ok is false if c does
// not hold a formula.
func (s *Sheet) Formula(c formulas.Coord) (text string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	x := s.cells[c]
	if x == nil || x.formula == nil {
		return "", false
	}
	return x.src, true
}

// Cells returns the coordinates of every cell that has been set, ordered by
// row and then column.
func (s *Sheet) Cells() []formulas.Coord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := make([]formulas.Coord, 0, len(s.cells))
	for c := range s.cells {
		r = append(r, c)
	}
	slices.SortFunc(r, formulas.Coord.Compare)
	return r
}

// Precedents returns the cells that the formula at c references directly.
func (s *Sheet) Precedents(c formulas.Coord) []formulas.Coord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.deps.precedents[c])
}

// Dependents returns the formula cells that reference c directly.
func (s *Sheet) Dependents(c formulas.Coord) []formulas.Coord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deps.dependentsOf(c)
}

// parse gets a formula from the cache or parses it.
func (s *Sheet) parse(text string) (*formulas.Formula, error) {
	if s.cache != nil {
		if f, ok := s.cache.Get(text); ok {
			return f.(*formulas.Formula), nil
		}
	}
	f, err := formulas.New(text)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(text, f)
	}
	return f, nil
}

// recalc recomputes the formulas affected by a change to c. The lock must be
// held.
func (s *Sheet) recalc(c formulas.Coord) {
	cells := s.deps.affected(c)
	for _, d := range cells {
		s.compute(d)
	}
	s.cfg.log.Debugf("%v changed, recalculated %d cells", c, len(cells))
}

// compute evaluates the formula at c, if there is one, and stores the result.
func (s *Sheet) compute(c formulas.Coord) error {
	x := s.cells[c]
	if x == nil || x.formula == nil {
		return nil
	}
	x.value, x.err = x.formula.Eval(formulas.ResolverFunc(s.lookup))
	if x.err != nil {
		s.cfg.log.Debugf("%v: %v", c, x.err)
	}
	return x.err
}
