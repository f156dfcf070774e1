package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/someonegg/stablematch/school"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "school-match",
		Usage: "Utility for allocating students to schools",
		Commands: []*cli.Command{
			matchCmd,
		},
	}
}

// interactive reports whether the proposing side can be asked for.
var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var matchCmd = &cli.Command{
	Name:    "match",
	Usage:   "Compute a stable allocation of students to schools",
	Aliases: []string{"m"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "data",
			Required: true,
			Usage:    "specify the input data.json (or .jsonc, .yaml)",
		},
		&cli.StringFlag{
			Name:  "proposer",
			Usage: "specify the proposing side (students, schools), asked interactively if omitted",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "specify the output file, stdout if omitted",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "specify the output format (text, json, yaml, cbor)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: 1,
			Usage: "specify the number of goroutines resolving a round",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "trace every round",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			dataFile = ctx.String("data")
			proposer = ctx.String("proposer")
			outFile  = ctx.String("output")
			format   = ctx.String("format")
			workers  = ctx.Int("workers")
			verbose  = ctx.Bool("verbose")
		)
		switch format {
		case "text", "json", "yaml", "cbor":
		default:
			return errors.New("invalid format")
		}
		if workers < 1 {
			return errors.New("invalid workers")
		}

		var side school.Side
		var err error
		switch {
		case proposer != "":
			side, err = school.ParseSide(proposer)
		case interactive():
			side, err = selectSide(os.Stdin, os.Stdout)
		default:
			side = school.Students
		}
		if err != nil {
			return err
		}

		return doMatch(ctx.App.Writer, dataFile, outFile, format, side, workers, verbose)
	},
}
