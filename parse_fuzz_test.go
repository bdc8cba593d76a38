package formulas_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/formulas"
)

func FuzzParse(f *testing.F) {
	f.Add("A1 + 2")
	f.Add("(2 + 3) * 4 ^ -1")
	f.Add("1A")
	f.Add("ZZZZZZZZZZZZZZZ1")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := formulas.Parse(strings.NewReader(s))
		if err != nil {
			return
		}
		if e.String() == "" {
			t.Errorf("%q: empty rendering", s)
		}
		deps := e.Dependencies()
		for i, d := range deps {
			if !e.DependsOn(d) {
				t.Errorf("%q: dependency %v not found", s, d)
			}
			if i > 0 && deps[i-1].Compare(d) >= 0 {
				t.Errorf("%q: dependencies out of order: %v", s, deps)
			}
		}
	})
}
