package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/formulas"
	"github.com/zephyrtronium/formulas/sheet"
)

func sheetCommand() *cli.Command {
	return &cli.Command{
		Name:  "sheet",
		Usage: "load cells from a YAML file and print their values",
		Description: `FILE is a YAML mapping from cell references to numbers or formulas,
e.g.

    A1: 2
    B1: 3
    C1: "=A1 * B1"

A leading = on a formula is optional.`,
		ArgsUsage: "FILE",
		Flags: append(commonFlags(),
			&cli.IntFlag{
				Name:  "rows",
				Usage: "number of rows, 0 for unlimited",
			},
			&cli.IntFlag{
				Name:  "cols",
				Usage: "number of columns, 0 for unlimited",
			},
			&cli.IntFlag{
				Name:  "cache",
				Value: sheet.DefaultCacheSize,
				Usage: "number of parsed formulas to keep",
			},
		),
		Action: sheetAction,
	}
}

func sheetAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("sheet needs exactly one FILE", 2)
	}
	name := c.Args().First()
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	log := newLogger(c)
	s := sheet.New(
		sheet.Size(c.Int("rows"), c.Int("cols")),
		sheet.FormulaCache(c.Int("cache")),
		sheet.Log(log),
	)
	if err := load(s, name, b); err != nil {
		return err
	}
	if err := s.Recalculate(); err != nil {
		log.Debugf("recalculating %s: %v", name, err)
	}

	w := c.App.Writer
	verb := c.String(fmtFlag)
	for _, at := range s.Cells() {
		fmt.Fprintf(w, "%v\t", at)
		if v, err := s.Get(at); err != nil {
			fmt.Fprintf(w, "#ERROR %v", err)
		} else {
			fmt.Fprintf(w, verb, v)
		}
		if text, ok := s.Formula(at); ok {
			fmt.Fprintf(w, "\t=%s", text)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// load sets the cells described by a YAML document.
func load(s *sheet.Sheet, name string, b []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if doc.Kind == 0 {
		// Empty file.
		return nil
	}
	m := &doc
	if m.Kind == yaml.DocumentNode {
		m = m.Content[0]
	}
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("%s:%d: cells must be a mapping", name, m.Line)
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if err := loadCell(s, k, v); err != nil {
			return fmt.Errorf("%s:%d: %w", name, k.Line, err)
		}
	}
	return nil
}

func loadCell(s *sheet.Sheet, k, v *yaml.Node) error {
	at, err := formulas.ParseCoord(k.Value)
	if err != nil {
		return fmt.Errorf("cell %q: %w", k.Value, err)
	}
	if v.Kind != yaml.ScalarNode {
		return errors.New("cell " + at.String() + " must be a number or formula")
	}
	switch v.Tag {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(v.Value, 64)
		if err == nil {
			return s.SetValue(at, formulas.Number(f))
		}
		// Other YAML number forms, like 0x1F, go to the formula parser.
	}
	return s.SetFormula(at, strings.TrimPrefix(strings.TrimSpace(v.Value), "="))
}
