package sheet

import (
	"strconv"

	"github.com/zephyrtronium/formulas"
)

// RangeError is returned for a cell outside the bounds set with Size.
type RangeError struct {
	At   formulas.Coord
	Rows int
	Cols int
}

func (err *RangeError) Error() string {
	return "sheet: cell " + err.At.String() + " outside " + bound(err.Rows) + " by " + bound(err.Cols) + " sheet"
}

func bound(n int) string {
	if n <= 0 {
		return "unbounded"
	}
	return strconv.Itoa(n)
}

// CellError is a failure to compute a formula cell.
type CellError struct {
	At  formulas.Coord
	Err error
}

func (err *CellError) Error() string {
	return err.At.String() + ": " + err.Err.Error()
}

func (err *CellError) Unwrap() error {
	return err.Err
}
