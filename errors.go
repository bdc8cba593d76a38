package formulas

import (
	"strconv"
	"strings"
)

// SyntaxError is returned when formula text does not match the grammar. Err
// describes what went wrong and where; use errors.As to inspect it.
type SyntaxError struct {
	Err InputError
}

func (err *SyntaxError) Error() string {
	return "syntax error at " + err.Err.Error()
}

func (err *SyntaxError) Pos() int {
	return err.Err.Pos()
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

// syntaxError wraps a diagnostic from the lexer or parser. Errors that are
// not InputErrors, e.g. read errors from the source, are returned unchanged.
func syntaxError(err error) error {
	if ie, ok := err.(InputError); ok {
		if _, ok := ie.(*SyntaxError); ok {
			return err
		}
		return &SyntaxError{Err: ie}
	}
	return err
}

// unexpected creates an error for a token the grammar does not allow.
func unexpected(tok lexToken, expected ...string) InputError {
	switch tok.kind {
	case tokenEOF:
		return &EmptyExpressionError{Col: tok.pos}
	case tokenClose:
		return &BracketError{Col: tok.pos, Right: tok.text}
	default:
		return &TokenError{Col: tok.pos, Got: tok.text, Expected: expected}
	}
}

// CellRefError is returned when the column or row of a grammatically valid
// cell reference cannot be decoded, e.g. because it is too large.
type CellRefError struct {
	// Col is the position of the cell reference.
	Col int
	// Text is the cell reference text.
	Text string
	// Err is the decoding error.
	Err error
}

func (err *CellRefError) Error() string {
	return errpos(err.Col, "invalid cell reference "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *CellRefError) Pos() int {
	return err.Col
}

func (err *CellRefError) Unwrap() error {
	return err.Err
}

func cellRefError(tok lexToken, err error) error {
	return &CellRefError{Col: tok.pos, Text: tok.text, Err: err}
}

// ValueError is returned when a numeric literal cannot be converted to a
// number.
type ValueError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal text.
	Text string
	// Err is the conversion error.
	Err error
}

func (err *ValueError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text)+": "+err.Err.Error())
}

func (err *ValueError) Pos() int {
	return err.Col
}

func (err *ValueError) Unwrap() error {
	return err.Err
}

// CycleError reports formulas that depend on their own results. Nothing in
// this package produces it, since a single formula has no cells of its own;
// it is produced by recalculation layers such as package sheet.
type CycleError struct {
	// Cells is the cycle in dependency order. The first cell depends on the
	// second, and so on; the last depends on the first.
	Cells []Coord
}

func (err *CycleError) Error() string {
	if len(err.Cells) == 0 {
		return "circular reference"
	}
	s := make([]string, 0, len(err.Cells)+1)
	for _, c := range err.Cells {
		s = append(s, c.String())
	}
	s = append(s, err.Cells[0].String())
	return "circular reference: " + strings.Join(s, " -> ")
}
