package formulas

import (
	"strings"
)

// formula = expr EOF
// expr    = factor { op factor }
// op      = '+' | '-' | '*' | '/' | '%' | '^'
// factor  = num | cell | '(' expr ')'
// num     = [ '+' | '-' ] digit { digit } [ '.' { digit } ]
// cell    = letter { letter } digit { digit }
//
// The grammar is flat; operator precedence is applied afterward by the
// builder. A sign belongs to a number only when it touches the digits and
// appears where a factor is expected, so "2-3" and "2 - -3" are both
// subtractions.

type rule int8

const (
	ruleNone rule = iota

	ruleNum  // text is the number, including any sign
	ruleCell // text is the whole reference, col and row are its parts
	ruleOp   // text is the operator
	ruleExpr // inner is a parenthesized expr
)

// pair is a node of the parse tree produced by the structural parser.
type pair struct {
	rule  rule
	text  string
	col   string
	row   string
	pos   int
	inner []pair
}

func (p pair) token() lexToken {
	return lexToken{text: p.text, pos: p.pos}
}

// factorExpected describes the tokens allowed where a factor is expected.
var factorExpected = []string{"number", "cell reference", `"("`}

// opExpected describes the tokens allowed after a factor.
var opExpected = []string{"operator", `")"`, "end of input"}

// parseformula parses a whole formula into a flat sequence of factors and
// operators. If there is no error, the token that ended the formula has been
// consumed and was either EOF or an allowed separator.
func parseformula(scan *lexer, p *parsectx) ([]pair, error) {
	seq, err := parseexpr(scan, p)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenSep:
		if !p.seof {
			return nil, unexpected(tok, opExpected...)
		}
	default:
		// Only a close bracket with no open bracket can end up here.
		return nil, unexpected(tok, opExpected...)
	}
	return seq, nil
}

// parseexpr parses factors separated by operators. If there is no error, then
// parseexpr pushes the token that ended the expression.
func parseexpr(scan *lexer, p *parsectx) ([]pair, error) {
	var seq []pair
	for {
		f, err := parsefactor(scan, p)
		if err != nil {
			return nil, err
		}
		seq = append(seq, f)
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			seq = append(seq, pair{rule: ruleOp, text: tok.text, pos: tok.pos})
		case tokenClose, tokenSep, tokenEOF:
			scan.push(tok)
			return seq, nil
		case tokenNum, tokenCell, tokenOpen:
			return nil, unexpected(tok, opExpected...)
		default:
			panic("formulas: unknown token: " + tok.String())
		}
	}
}

// parsefactor parses a single number, cell reference, or parenthesized
// expression. Whitespace normally lexed as EOF is ignored, since a factor is
// required here.
func parsefactor(scan *lexer, p *parsectx) (pair, error) {
	tok, err := scan.next("")
	if err != nil {
		return pair{}, err
	}
	switch tok.kind {
	case tokenNum:
		return pair{rule: ruleNum, text: tok.text, pos: tok.pos}, nil
	case tokenCell:
		col, row := splitCell(tok.text)
		return pair{rule: ruleCell, text: tok.text, col: col, row: row, pos: tok.pos}, nil
	case tokenOp:
		if tok.text != "+" && tok.text != "-" {
			return pair{}, unexpected(tok, factorExpected...)
		}
		num, err := scan.next("")
		if err != nil {
			return pair{}, err
		}
		if num.kind != tokenNum || num.pos != tok.pos+1 {
			// Signs only attach to numbers, and only directly.
			return pair{}, unexpected(tok, factorExpected...)
		}
		return pair{rule: ruleNum, text: tok.text + num.text, pos: tok.pos}, nil
	case tokenOpen:
		inner, err := parseexpr(scan, p)
		if err != nil {
			return pair{}, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
		case tokenEOF:
			return pair{}, &BracketError{Col: end.pos, Left: tok.text}
		default:
			return pair{}, unexpected(end, opExpected...)
		}
		return pair{rule: ruleExpr, text: tok.text, pos: tok.pos, inner: inner}, nil
	case tokenClose:
		return pair{}, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		if p.seof {
			return pair{}, &EmptyExpressionError{Col: tok.pos, End: tok.text}
		}
		return pair{}, unexpected(tok, factorExpected...)
	case tokenEOF:
		return pair{}, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("formulas: unknown token: " + tok.String())
	}
}

// String renders the parse tree for debugging, e.g. "num:1 op:+ (cell:A1)".
func (p pair) String() string {
	var b strings.Builder
	p.write(&b)
	return b.String()
}

func (p pair) write(b *strings.Builder) {
	switch p.rule {
	case ruleNum:
		b.WriteString("num:" + p.text)
	case ruleCell:
		b.WriteString("cell:" + p.text)
	case ruleOp:
		b.WriteString("op:" + p.text)
	case ruleExpr:
		b.WriteByte('(')
		writeSeq(b, p.inner)
		b.WriteByte(')')
	default:
		b.WriteString("$invalid$")
	}
}

func writeSeq(b *strings.Builder, seq []pair) {
	for i, q := range seq {
		if i > 0 {
			b.WriteByte(' ')
		}
		q.write(b)
	}
}
