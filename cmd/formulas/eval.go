package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/urfave/cli/v2"

	"github.com/zephyrtronium/formulas"
	"github.com/zephyrtronium/formulas/sheet"
)

func evalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "evaluate formulas (the default command)",
		ArgsUsage: "[formula...]",
		Flags:     evalFlags(),
		Action:    evalAction,
	}
}

func evalFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:  "in",
			Usage: "input file, - for stdin (default stdin if no args given)",
		},
		&cli.StringSliceFlag{
			Name:  "given",
			Usage: "CELL=formula cell definition (any number of times)",
		},
		&cli.BoolFlag{
			Name:  "n",
			Usage: "parse separate input lines as separate formulas",
		},
		&cli.BoolFlag{
			Name:  "echo",
			Usage: "print parse trees",
		},
		&cli.BoolFlag{
			Name:  "deps",
			Usage: "print the cells each formula references",
		},
	)
}

func evalAction(c *cli.Context) error {
	log := newLogger(c)
	cells := sheet.New(sheet.Log(log))
	for _, d := range c.StringSlice("given") {
		at, text, err := splitGiven(d)
		if err != nil {
			return err
		}
		if err := cells.SetFormula(at, text); err != nil {
			return fmt.Errorf("setting %v: %w", at, err)
		}
	}
	if err := cells.Recalculate(); err != nil {
		return err
	}

	var ins []io.RuneScanner
	in, err := infile(c.App.Reader, c.String("in"), c.NArg() == 0)
	if err != nil {
		return err
	}
	if in != nil {
		ins = append(ins, in)
	}
	for _, arg := range c.Args().Slice() {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []formulas.ParseOption
	if c.Bool("n") {
		opts = append(opts, formulas.StopOn('\n'))
	}
	var fs []*formulas.Formula
	for _, in := range ins {
		for {
			done, err := skipSpace(in)
			if err != nil {
				return err
			}
			if done {
				break
			}
			f, err := formulas.Parse(in, opts...)
			if err != nil {
				return err
			}
			log.Debugf("parsed %v", f)
			fs = append(fs, f)
		}
	}

	w := c.App.Writer
	verb := c.String(fmtFlag)
	var failed int
	for _, f := range fs {
		if c.Bool("echo") {
			fmt.Fprintf(w, "%v : ", f)
		}
		v, err := f.Eval(cells)
		if err != nil {
			failed++
			fmt.Fprintln(w, err)
			continue
		}
		fmt.Fprintf(w, verb, v)
		if c.Bool("deps") {
			fmt.Fprintf(w, " %v", f.Dependencies())
		}
		fmt.Fprintln(w)
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d formulas failed", failed, len(fs)), 1)
	}
	return nil
}

// splitGiven splits a CELL=formula definition.
func splitGiven(s string) (formulas.Coord, string, error) {
	name, text, ok := strings.Cut(s, "=")
	if !ok {
		return formulas.Coord{}, "", fmt.Errorf(`cell definitions must be "CELL=formula", not %q`, s)
	}
	at, err := formulas.ParseCoord(name)
	if err != nil {
		return formulas.Coord{}, "", fmt.Errorf("cell definition %q: %w", s, err)
	}
	return at, strings.TrimSpace(text), nil
}

// skipSpace consumes leading whitespace from in. done is true if nothing
// else remains.
func skipSpace(in io.RuneScanner) (done bool, err error) {
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			if err == io.EOF {
				return true, nil
			}
			return false, err
		}
		if !unicode.IsSpace(r) {
			return false, in.UnreadRune()
		}
	}
}

func infile(stdin io.Reader, inname string, std bool) (io.RuneScanner, error) {
	switch {
	case inname != "" && inname != "-":
		b, err := os.ReadFile(inname)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(string(b)), nil
	case inname == "-", std:
		return bufio.NewReader(stdin), nil
	}
	return nil, nil
}
