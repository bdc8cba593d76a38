package formulas

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int8

const (
	// KindNumber is a 64-bit floating-point number. It is the kind of the
	// zero Value.
	KindNumber Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating an expression or the content of a cell.
// The zero Value is the number 0.
//
// Number is currently the only kind. Code that inspects a Value should switch
// on Kind and treat unknown kinds as a programming error, so that adding a
// kind is caught everywhere it matters.
type Value struct {
	kind Kind
	num  float64
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Float64 returns the number held by v. ok is false if v is not a number, in
// which case f is NaN.
func (v Value) Float64() (f float64, ok bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	default:
		return math.NaN(), false
	}
}

// Equal reports whether v and w are the same value. Numbers compare with ==,
// so NaN is never equal to anything.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == w.num
	default:
		panic("formulas: invalid value kind " + v.kind.String())
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return "%!" + v.kind.String()
	}
}

// Format implements fmt.Formatter. Numbers format as float64 for every verb
// except %v and %s, which use String.
func (v Value) Format(s fmt.State, verb rune) {
	switch v.kind {
	case KindNumber:
		switch verb {
		case 'v', 's':
			fmt.Fprintf(s, fmt.FormatString(s, 's'), v.String())
		default:
			fmt.Fprintf(s, fmt.FormatString(s, verb), v.num)
		}
	default:
		fmt.Fprint(s, v.String())
	}
}
