package formulas

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	precopt struct {
		prec Precedence
	}
	eofopt struct {
		s  bool
		ws string
	}
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// prec is the operator table for the expression builder.
	prec Precedence
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
	// seof indicates whether a semicolon is allowed at the end of a formula.
	seof bool
	// hasprec indicates that an option has set prec.
	hasprec bool
}

// UsePrecedence sets the operator precedence table used to build the
// expression tree. The default is DefaultPrecedence. Panics if p is the zero
// Precedence.
func UsePrecedence(p Precedence) ParseOption {
	if !p.valid() {
		panic("formulas: invalid precedence table")
	}
	return &precopt{p}
}

func (o *precopt) parseOption(p parsectx) parsectx {
	p.prec = o.prec
	p.hasprec = true
	return p
}

// StopOn tells the parser to treat a list of characters as ending the
// formula, so that several formulas can be read from one source. Each rune
// must be a semicolon or whitespace codepoint. Whitespace does not end a
// formula where a term is expected, e.g. at the beginning of a formula or
// following an operator or open bracket.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	var o eofopt
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		switch {
		case r == ';':
			o.s = true
		case unicode.IsSpace(r):
			if have(r) {
				continue
			}
			v = append(v, r)
		default:
			panic("formulas: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.ws = string(v)
	return &o
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.seof = o.s
	p.wseof = o.ws
	return p
}

// ParsingPreset bundles parsing options so that they are resolved once when
// the same non-default options are used for many calls to Parse. Options
// given after a preset override it.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if o.hasprec {
		p.prec = o.prec
		p.hasprec = true
	}
	p.wseof = o.wseof
	p.seof = o.seof
	return p
}

// newParsectx applies options over the defaults.
func newParsectx(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	if !p.hasprec {
		p.prec = defaultPrecedence
	}
	return p
}
