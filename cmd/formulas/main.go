// Command formulas evaluates spreadsheet formulas from the command line.
package main

import (
	"io"
	"os"

	"github.com/jcgregorio/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	newApp(os.Stdin, os.Stdout, os.Stderr).RunAndExitOnError()
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "formulas",
		Usage:     "evaluate spreadsheet formulas",
		UsageText: "formulas [eval options] [formula...]\n   formulas sheet [options] FILE",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     evalFlags(),
		Action:    evalAction,
		Commands: []*cli.Command{
			evalCommand(),
			sheetCommand(),
		},
	}
}

const (
	fmtFlag     = "fmt"
	verboseFlag = "verbose"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  fmtFlag,
			Value: "%v",
			Usage: "result formatting verb",
		},
		&cli.BoolFlag{
			Name:  verboseFlag,
			Usage: "log recalculation to stderr",
		},
	}
}

// syncWriter adapts an io.Writer for the logger.
type syncWriter struct {
	io.Writer
}

func (w syncWriter) Sync() error {
	if s, ok := w.Writer.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

func newLogger(c *cli.Context) *logger.Logger {
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   syncWriter{c.App.ErrWriter},
		IncludeDebug: c.Bool(verboseFlag),
	})
}
