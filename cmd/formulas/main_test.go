package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/formulas"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errs bytes.Buffer
	app := newApp(strings.NewReader(stdin), &out, &errs)
	err = app.Run(append([]string{"formulas"}, args...))
	return out.String(), errs.String(), err
}

func TestEval(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"2 + 3 * 4", "(2 + 3) * 4"}, "14\n20\n"},
		{"command", "", []string{"eval", "5 / 0"}, "+Inf\n"},
		{"given", "", []string{"--given", "A1=3", "--given", "B1 = A1 * 2", "A1 + B1"}, "9\n"},
		{"given-later", "", []string{"--given", "B1=A1 * 2", "--given", "A1=4", "B1"}, "8\n"},
		{"missing", "", []string{"Z9 + 1"}, "1\n"},
		{"echo", "", []string{"--echo", "1 + 2"}, "([1] + [2]) : 3\n"},
		{"deps", "", []string{"--deps", "A1 - A1 + B2"}, "0 [A1 B2]\n"},
		{"fmt", "", []string{"--fmt", "%.2f", "1 / 3"}, "0.33\n"},
		{"stdin", "1 +\n 2\n", nil, "3\n"},
		{"lines", "1 + 1\n\n2 * 3\n", []string{"-n"}, "2\n6\n"},
		{"stdin-dash", "7", []string{"--in", "-"}, "7\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, _, err := run(t, c.stdin, c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestEvalFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(name, []byte("2 ^ 10\n3 % 2\n"), 0o644))
	out, _, err := run(t, "", "-n", "--in", name)
	require.NoError(t, err)
	assert.Equal(t, "1024\n1\n", out)

	out, _, err = run(t, "", "-n", "--in", name, "4")
	require.NoError(t, err)
	assert.Equal(t, "1024\n1\n4\n", out)
}

func TestEvalErrors(t *testing.T) {
	_, _, err := run(t, "", "1 +")
	var se *formulas.SyntaxError
	assert.ErrorAs(t, err, &se)

	_, _, err = run(t, "", "--given", "A1", "1")
	assert.ErrorContains(t, err, "CELL=formula")

	_, _, err = run(t, "", "--given", "A1=A1", "1")
	var ce *formulas.CycleError
	assert.ErrorAs(t, err, &ce)

	_, _, err = run(t, "", "--in", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVerbose(t *testing.T) {
	_, stderr, err := run(t, "", "--verbose", "--given", "A1=1", "A1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "A1 changed, recalculated 1 cells")

	_, stderr, err = run(t, "", "--given", "A1=1", "A1")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func writeSheet(t *testing.T, text string) string {
	name := filepath.Join(t.TempDir(), "sheet.yaml")
	require.NoError(t, os.WriteFile(name, []byte(text), 0o644))
	return name
}

func TestSheet(t *testing.T) {
	name := writeSheet(t, `
A1: 2
B1: 3
C1: "=A1 * B1"
D1: C1 + 1
A2: 0.5
`)
	out, _, err := run(t, "", "sheet", name)
	require.NoError(t, err)
	assert.Equal(t, "A1\t2\nB1\t3\nC1\t6\t=A1 * B1\nD1\t7\t=C1 + 1\nA2\t0.5\n", out)
}

func TestSheetBounds(t *testing.T) {
	name := writeSheet(t, "A1: 1\nB1: '=C1 + A1'\n")
	out, _, err := run(t, "", "sheet", "--cols", "2", "--cache", "0", name)
	require.NoError(t, err)
	assert.Equal(t, "A1\t1\nB1\t#ERROR sheet: cell C1 outside unbounded by 2 sheet\t=C1 + A1\n", out)
}

func TestSheetErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		msg  string
	}{
		{"cycle", "A1: \"=B1\"\nB1: \"=A1 + 1\"\n", ":2: circular reference: B1 -> A1 -> B1"},
		{"syntax", "A1: 1 +\n", ":1: syntax error at 4: no expression"},
		{"cell", "1A: 1\n", `:1: cell "1A"`},
		{"list", "- A1\n", ":1: cells must be a mapping"},
		{"nested", "A1: [1, 2]\n", ":1: cell A1 must be a number or formula"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			name := writeSheet(t, c.text)
			_, _, err := run(t, "", "sheet", name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestSheetEmpty(t *testing.T) {
	out, _, err := run(t, "", "sheet", writeSheet(t, ""))
	require.NoError(t, err)
	assert.Empty(t, out)
}
