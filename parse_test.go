package formulas

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTree(t *testing.T) {
	cases := []struct {
		src  string
		tree string
	}{
		{"1", "num:1"},
		{"A1", "cell:A1"},
		{"1 + (A1 * 2)", "num:1 op:+ (cell:A1 op:* num:2)"},
		{"-1 - -2", "num:-1 op:- num:-2"},
		{"2-3", "num:2 op:- num:3"},
		{"2^+1", "num:2 op:^ num:+1"},
		{"((b7))", "((cell:b7))"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			p := newParsectx(nil)
			seq, err := parseformula(lex(strings.NewReader(c.src)), &p)
			require.NoError(t, err)
			var b strings.Builder
			writeSeq(&b, seq)
			assert.Equal(t, c.tree, b.String())
		})
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "(1)"},
		{"cell", "A1", "(A1)"},
		{"case", "aB3", "(AB3)"},
		{"frac", "1.5", "(1.5)"},
		{"dot", "1.", "(1)"},
		{"zeros", "007", "(7)"},
		{"plus", "+5", "(5)"},
		{"parens", "((1))", "(1)"},
		{"add", "1 + 2", "([1] + [2])"},
		{"sub-left", "1 - 2 - 3", "([(1) - (2)] - [3])"},
		{"pow-right", "2 ^ 3 ^ 2", "([2] ^ [(3) ^ (2)])"},
		{"add-mul", "2 + 3 * 4", "([2] + [(3) * (4)])"},
		{"mul-add", "2 * 3 + 4", "([(2) * (3)] + [4])"},
		{"grouped", "(2 + 3) * 4", "([(2) + (3)] * [4])"},
		{"div-rem", "8 / 4 % 3", "([(8) / (4)] % [3])"},
		{"neg-pow", "-2 ^ 2", "([-2] ^ [2])"},
		{"sub-neg", "2 - -3", "([2] - [-3])"},
		{"tight", "2-3", "([2] - [3])"},
		{"pow-neg", "2^-1", "([2] ^ [-1])"},
		{"mixed", "1 + 2 * 3 ^ 4 - 5", "([(1) + ([2] * [(3) ^ (4)])] - [5])"},
		{"spaces", " \tA1\t*\n2 ", "([A1] * [2])"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := New(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, f.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
	}{
		{"empty", "", &EmptyExpressionError{Col: 1}},
		{"blank", "   ", &EmptyExpressionError{Col: 4}},
		{"trailing-op", "1 +", &EmptyExpressionError{Col: 4}},
		{"empty-parens", "()", &EmptyExpressionError{Col: 2, End: ")"}},
		{"unclosed", "(1", &BracketError{Col: 3, Left: "("}},
		{"unopened", "1)", &BracketError{Col: 2, Right: ")"}},
		{"adjacent", "1 2", &TokenError{Col: 3, Got: "2", Expected: opExpected}},
		{"adjacent-cells", "A1 B1", &TokenError{Col: 4, Got: "B1", Expected: opExpected}},
		{"adjacent-inner", "(1 2)", &TokenError{Col: 4, Got: "2", Expected: opExpected}},
		{"cell-paren", "A1 (2)", &TokenError{Col: 4, Got: "(", Expected: opExpected}},
		{"leading-op", "* 2", &TokenError{Col: 1, Got: "*", Expected: factorExpected}},
		{"loose-sign", "- 2", &TokenError{Col: 1, Got: "-", Expected: factorExpected}},
		{"double-sign", "--1", &TokenError{Col: 1, Got: "-", Expected: factorExpected}},
		{"signed-cell", "-A1", &TokenError{Col: 1, Got: "-", Expected: factorExpected}},
		{"double-op", "1 * / 2", &TokenError{Col: 5, Got: "/", Expected: factorExpected}},
		{"sep", "1;2", &TokenError{Col: 2, Got: ";", Expected: opExpected}},
		{"sep-factor", "1 + ;", &TokenError{Col: 5, Got: ";", Expected: factorExpected}},
		{"num-letter", "1A", &LexError{Text: "1A", Kind: "number", Col: 2}},
		{"exponent", "1e5", &LexError{Text: "1e", Kind: "number", Col: 2}},
		{"column-only", "A + 1", &LexError{Text: "A", Kind: "cell reference", Col: 2}},
		{"symbol", "1 + $A$1", &LexError{Text: "$", Col: 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := New(c.src)
			assert.Nil(t, f)
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, c.err, se.Err)
			assert.Equal(t, c.err.Pos(), se.Pos())
		})
	}
}

func TestParseErrorMessages(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"", "syntax error at 1: no expression"},
		{"   ", "syntax error at 4: no expression"},
		{"1 +", "syntax error at 4: no expression"},
		{"()", `syntax error at 2: no expression up to ")"`},
		{"(1", "syntax error at 3: open bracket ( with no close bracket"},
		{"1)", "syntax error at 2: close bracket ) with no open bracket"},
		{"1 2", `syntax error at 3: unexpected "2", expected operator or ")" or end of input`},
		{"1A", `syntax error at 2: invalid number "1A"`},
		{"#", `syntax error at 1: invalid token "#"`},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := New(c.src)
			assert.EqualError(t, err, c.msg)
		})
	}
}

func TestParseCellRefErrors(t *testing.T) {
	t.Run("row", func(t *testing.T) {
		_, err := New("1 + A99999999999999999999")
		var ce *CellRefError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 5, ce.Pos())
		assert.Equal(t, "A99999999999999999999", ce.Text)
		assert.ErrorIs(t, err, strconv.ErrRange)
		var se *SyntaxError
		assert.False(t, errors.As(err, &se))
	})
	t.Run("column", func(t *testing.T) {
		_, err := New(strings.Repeat("Z", 14) + "1")
		var ce *CellRefError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 1, ce.Pos())
		assert.ErrorIs(t, err, errColumnRange)
	})
	t.Run("widest", func(t *testing.T) {
		f, err := New(strings.Repeat("Z", 13) + "1")
		require.NoError(t, err)
		assert.Len(t, f.Dependencies(), 1)
	})
}

func TestParseValue(t *testing.T) {
	f, err := New("1" + strings.Repeat("0", 400))
	require.NoError(t, err)
	v, err := f.Eval(nil)
	require.NoError(t, err)
	x, _ := v.Float64()
	assert.True(t, math.IsInf(x, 1))

	f, err = New("-1" + strings.Repeat("0", 400))
	require.NoError(t, err)
	v, err = f.Eval(nil)
	require.NoError(t, err)
	x, _ = v.Float64()
	assert.True(t, math.IsInf(x, -1))

	_, err = parseValue(pair{rule: ruleNum, text: "1..", pos: 3})
	var ve *ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 3, ve.Pos())
	assert.Equal(t, "1..", ve.Text)
}

func TestStopOn(t *testing.T) {
	t.Run("newline", func(t *testing.T) {
		src := strings.NewReader("1 + 2\n3 *\n4\n")
		f, err := Parse(src, StopOn('\n'))
		require.NoError(t, err)
		assert.Equal(t, "([1] + [2])", f.String())
		f, err = Parse(src, StopOn('\n'))
		require.NoError(t, err)
		assert.Equal(t, "([3] * [4])", f.String())
		_, err = Parse(src, StopOn('\n'))
		var ee *EmptyExpressionError
		assert.ErrorAs(t, err, &ee)
	})
	t.Run("semicolon", func(t *testing.T) {
		src := strings.NewReader("1;A2 ^ 2;")
		f, err := Parse(src, StopOn(';'))
		require.NoError(t, err)
		assert.Equal(t, "(1)", f.String())
		f, err = Parse(src, StopOn(';'))
		require.NoError(t, err)
		assert.Equal(t, "([A2] ^ [2])", f.String())
	})
	t.Run("empty", func(t *testing.T) {
		_, err := New(";", StopOn(';'))
		var ee *EmptyExpressionError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, &EmptyExpressionError{Col: 1, End: ";"}, ee)
	})
	t.Run("override", func(t *testing.T) {
		_, err := New("1;", StopOn(';'), StopOn())
		var te *TokenError
		assert.ErrorAs(t, err, &te)
	})
	t.Run("invalid", func(t *testing.T) {
		assert.Panics(t, func() { StopOn('x') })
	})
}

func TestPrecedence(t *testing.T) {
	def := DefaultPrecedence()
	for _, c := range []struct {
		op    Operator
		level int
		assoc Assoc
	}{
		{Add, 0, Left},
		{Subtract, 0, Left},
		{Multiply, 1, Left},
		{Divide, 1, Left},
		{Remainder, 1, Left},
		{Power, 2, Right},
	} {
		level, assoc := def.Of(c.op)
		assert.Equal(t, c.level, level, c.op.String())
		assert.Equal(t, c.assoc, assoc, c.op.String())
	}

	_, err := NewPrecedence(Level{Left, []Operator{Add, Subtract, Multiply, Divide, Remainder}})
	assert.Error(t, err, "missing ^")
	_, err = NewPrecedence(
		Level{Left, []Operator{Add, Subtract, Multiply, Divide, Remainder, Power}},
		Level{Right, []Operator{Power}},
	)
	assert.Error(t, err, "duplicate ^")
	_, err = NewPrecedence(Level{Left, []Operator{Add, Subtract, Multiply, Divide, Remainder, Power, numOperators}})
	assert.Error(t, err, "invalid operator")

	assert.Panics(t, func() { UsePrecedence(Precedence{}) })
}

func TestUsePrecedence(t *testing.T) {
	flat, err := NewPrecedence(Level{Left, []Operator{Add, Subtract, Multiply, Divide, Remainder, Power}})
	require.NoError(t, err)
	f, err := New("2 + 3 * 4", UsePrecedence(flat))
	require.NoError(t, err)
	assert.Equal(t, "([(2) + (3)] * [4])", f.String())
	v, err := f.Eval(nil)
	require.NoError(t, err)
	assert.True(t, v.Equal(Number(20)))

	loose, err := NewPrecedence(
		Level{Right, []Operator{Power}},
		Level{Left, []Operator{Add, Subtract}},
		Level{Left, []Operator{Multiply, Divide, Remainder}},
	)
	require.NoError(t, err)
	f, err = New("2 ^ 1 + 1", UsePrecedence(loose))
	require.NoError(t, err)
	assert.Equal(t, "([2] ^ [(1) + (1)])", f.String())

	// The default table is unaffected by other tables.
	f, err = New("2 + 3 * 4")
	require.NoError(t, err)
	assert.Equal(t, "([2] + [(3) * (4)])", f.String())
}

func TestParsingPreset(t *testing.T) {
	flat, err := NewPrecedence(Level{Left, []Operator{Add, Subtract, Multiply, Divide, Remainder, Power}})
	require.NoError(t, err)
	preset := ParsingPreset(StopOn(';'), UsePrecedence(flat))
	f, err := New("2 + 3 * 4;", preset)
	require.NoError(t, err)
	assert.Equal(t, "([(2) + (3)] * [4])", f.String())

	_, err = New("1;", preset, StopOn())
	assert.Error(t, err)

	f, err = New("1 + 2", nil)
	require.NoError(t, err)
	assert.Equal(t, "([1] + [2])", f.String())
}
