package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hesusruiz/unimark/unimark"
)

var debug bool

// printOutline writes a plain-text outline of the element tree: one line
// per node, nesting shown by indentation. It is a debugging aid, not a
// renderer.
func printOutline(sb *strings.Builder, it unimark.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case it.IsString():
		sb.WriteString(indent)
		sb.WriteString(strconv.Quote(it.Str))
		sb.WriteByte('\n')
	case it.IsElement():
		e := it.Elem
		sb.WriteString(indent)
		sb.WriteString(e.Tag)
		for _, a := range e.Attr {
			sb.WriteString(fmt.Sprintf(" %v=%q", a.Key, a.Val))
		}
		sb.WriteByte('\n')
		for _, c := range e.Children {
			printOutline(sb, c, depth+1)
		}
	}
}

// parseFile parses one input file and returns the outline text plus the
// parser (for diagnostics and metadata).
func parseFile(fileName string, cfg unimark.ParseConfig) (string, *unimark.Parser, error) {
	src, err := os.ReadFile(fileName)
	if err != nil {
		return "", nil, err
	}
	p, err := unimark.ParseFromBytes(fileName, src, cfg)
	if err != nil {
		return "", p, err
	}
	var sb strings.Builder
	printOutline(&sb, p.Doc, 0)
	return sb.String(), p, nil
}

// processWatch re-parses the input whenever its modification time
// changes, printing the fresh outline. Useful while writing a document.
func processWatch(inputFileName string, cfg unimark.ParseConfig, sugar *zap.SugaredLogger) error {

	var old_timestamp time.Time
	var current_timestamp time.Time

	// Loop forever
	for {

		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		current_timestamp = info.ModTime()

		if old_timestamp.Before(current_timestamp) {
			old_timestamp = current_timestamp
			fmt.Println("************Processing*************")
			outline, p, err := parseFile(inputFileName, cfg)
			if err != nil {
				sugar.Errorw("parse failed", "file", inputFileName, "err", err)
			} else {
				fmt.Print(outline)
				reportDiagnostics(p)
			}
		}

		// Check again in one second
		time.Sleep(1 * time.Second)

	}
}

// reportDiagnostics prints the collected diagnostics to stderr.
func reportDiagnostics(p *unimark.Parser) {
	for _, d := range p.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	debug = c.Bool("debug")

	var z *zap.Logger
	var err error

	// Setup the logging system
	if debug {
		z, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	} else {
		z, err = zap.NewProduction()
		if err != nil {
			panic(err)
		}
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	if !c.Args().Present() {
		return fmt.Errorf("no input file provided")
	}
	inputFileName := c.Args().First()

	format, err := unimark.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	cfg := unimark.ParseConfig{
		Format:          format,
		Flavor:          c.String("flavor"),
		Strict:          c.Bool("strict"),
		CollectMetadata: c.Bool("metadata"),
		ResolveRefs:     !c.Bool("no-refs"),
		Logger:          sugar,
	}

	if c.Bool("watch") {
		return processWatch(inputFileName, cfg, sugar)
	}

	outline, p, err := parseFile(inputFileName, cfg)
	if err != nil {
		if p != nil {
			reportDiagnostics(p)
		}
		return err
	}

	if debug {
		fmt.Println(p.Summary())
	}
	if c.Bool("metadata") && p.Metadata != nil {
		fmt.Printf("title: %v\n", p.Metadata.String("title", ""))
	}

	if dumpFile := c.String("dump"); dumpFile != "" {
		if err := os.WriteFile(dumpFile, []byte(outline), 0664); err != nil {
			return err
		}
	} else {
		fmt.Print(outline)
	}
	reportDiagnostics(p)

	return nil
}

func main() {

	app := &cli.App{
		Name:      "unimark",
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		Usage:     "parse a lightweight markup document and print its element tree",
		UsageText: "unimark [options] INPUT_FILE",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "auto",
				Usage:   "input format: auto, markdown, rst, wiki, textile, org, asciidoc, man, typst",
			},
			&cli.StringFlag{
				Name:  "flavor",
				Value: "gfm",
				Usage: "format variant, e.g. commonmark or gfm",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "treat parse errors as hard failures",
			},
			&cli.BoolFlag{
				Name:    "metadata",
				Aliases: []string{"m"},
				Usage:   "collect frontmatter metadata",
			},
			&cli.BoolFlag{
				Name:  "no-refs",
				Usage: "disable the link-reference pre-scan",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.StringFlag{
				Name:  "dump",
				Usage: "write the tree outline to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		panic(err)
	}

}
