// Command versediff compares two or three editions of the scripture corpus
// and writes a structural difference report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/versediff/core/canon"
	"github.com/FocuswithJustin/versediff/core/compare"
	"github.com/FocuswithJustin/versediff/core/corpus"
	"github.com/FocuswithJustin/versediff/core/errors"
	"github.com/FocuswithJustin/versediff/core/selfcheck"
	"github.com/FocuswithJustin/versediff/internal/config"
	"github.com/FocuswithJustin/versediff/internal/edition"
	"github.com/FocuswithJustin/versediff/internal/logging"
	"github.com/FocuswithJustin/versediff/internal/report"
)

const version = "1.0.0"

// CLI defines the command-line interface for versediff.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error). Overrides VERSEDIFF_LOG_LEVEL."`
	LogFormat string `name:"log-format" help:"Log format (text, json). Overrides VERSEDIFF_LOG_FORMAT."`

	Compare CompareCmd `cmd:"" help:"Compare two or three editions and write a report"`
	Books   BooksCmd   `cmd:"" help:"List the books found in one or more editions"`
	Inspect InspectCmd `cmd:"" help:"Show per-book statistics for an edition"`
	Verify  VerifyCmd  `cmd:"" help:"Check an edition for missing books and chapters"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// app carries what every command needs.
type app struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	loader *edition.Loader
	now    func() time.Time
}

// newApp applies configuration from the environment and global flags.
func newApp(cli *CLI, out, errOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		if cfg.LogLevel, err = logging.ParseLevel(cli.LogLevel); err != nil {
			return nil, err
		}
	}
	if cli.LogFormat != "" {
		if cfg.LogFormat, err = logging.ParseFormat(cli.LogFormat); err != nil {
			return nil, err
		}
	}
	logging.SetOutput(errOut)
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	loader, err := edition.NewLoader(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &app{out: out, errOut: errOut, cfg: cfg, loader: loader, now: time.Now}, nil
}

// CompareCmd runs the structural differencer.
type CompareCmd struct {
	Editions []string `arg:"" optional:"" name:"edition" help:"Edition files (two or three)" type:"path"`
	Name     []string `short:"n" sep:"none" help:"Display name for each edition, in order (repeatable)"`
	Books    []string `short:"b" help:"Books to compare (comma separated)"`
	Common   bool     `help:"Compare only books present in every edition"`
	Out      string   `short:"o" help:"Output directory (default VERSEDIFF_OUTPUT_DIR or compared_results)" type:"path"`
	Stdout   bool     `help:"Write the report to stdout instead of a file"`
	Plan     string   `help:"YAML comparison plan" type:"existingfile"`
}

func (c *CompareCmd) Run(a *app) error {
	start := time.Now()

	if err := c.applyPlan(); err != nil {
		return err
	}
	if c.Common && len(c.Books) > 0 {
		return errors.NewValidation("books", "--books and --common are mutually exclusive")
	}
	if n := len(c.Editions); n < compare.MinEditions || n > compare.MaxEditions {
		return errors.NewArity(n, len(c.Name), "compare takes two or three editions")
	}

	runID := uuid.NewString()
	ctx := logging.WithRunID(context.Background(), runID)

	eds, err := a.loader.LoadAll(ctx, c.Editions, c.Name)
	if err != nil {
		return err
	}
	docs, names := documents(eds)

	common := canon.Common(docs...)
	var books []string
	switch {
	case len(c.Books) > 0:
		books = selectBooks(c.Books)
	case c.Common:
		books = common
	default:
		books = canon.Available(docs...)
	}
	if len(books) == 0 {
		return errors.NewValidation("books", "no books to compare")
	}

	result, err := compare.New(compare.Options{}).Run(docs, names, books)
	if err != nil {
		return err
	}

	header := report.NewHeader(eds, books, common, a.now())
	header.ID = runID
	rep := &report.Report{Header: header, Body: result.Lines}

	summaryOut := a.out
	path := ""
	if c.Stdout {
		if _, err := rep.WriteTo(a.out); err != nil {
			return errors.NewIO("write", "stdout", err)
		}
		summaryOut = a.errOut
	} else {
		dir := c.Out
		if dir == "" {
			dir = a.cfg.OutputDir
		}
		var size int64
		path, size, err = report.Write(dir, rep)
		if err != nil {
			return err
		}
		logging.ReportWritten(ctx, path, size)
	}

	elapsed := time.Since(start)
	logging.ComparisonFinished(ctx, len(eds), len(books), len(result.Lines), elapsed)
	printCompareSummary(summaryOut, eds, result.Summary, path, elapsed)
	return nil
}

// applyPlan fills unset flags from the plan file.
func (c *CompareCmd) applyPlan() error {
	if c.Plan == "" {
		return nil
	}
	if len(c.Editions) > 0 {
		return errors.NewValidation("plan", "edition arguments cannot be combined with --plan")
	}

	plan, err := config.LoadPlan(c.Plan)
	if err != nil {
		return err
	}
	c.Editions = plan.Paths()
	if len(c.Name) == 0 {
		c.Name = plan.Names()
	}
	if len(c.Books) == 0 && !c.Common {
		c.Books = plan.Books
		c.Common = plan.Common
	}
	if c.Out == "" {
		c.Out = plan.OutputDir
	}
	return nil
}

// BooksCmd lists books across editions.
type BooksCmd struct {
	Editions []string `arg:"" name:"edition" help:"Edition files" type:"path"`
	Name     []string `short:"n" sep:"none" help:"Display name for each edition, in order (repeatable)"`
}

func (c *BooksCmd) Run(a *app) error {
	eds, err := a.loader.LoadAll(context.Background(), c.Editions, c.Name)
	if err != nil {
		return err
	}
	printBooks(a.out, eds)
	return nil
}

// InspectCmd shows what the parser found in one edition.
type InspectCmd struct {
	Edition string `arg:"" help:"Edition file" type:"path"`
	Book    string `short:"b" help:"Show chapter statistics for one book"`
	JSON    bool   `help:"Output as JSON"`
}

// inspection is the JSON form of InspectCmd output.
type inspection struct {
	*edition.Edition
	SizeHuman string         `json:"size_human"`
	Totals    corpus.Stats   `json:"totals"`
	Books     []bookStats    `json:"books,omitempty"`
	Chapters  []chapterStats `json:"chapters,omitempty"`
}

type bookStats struct {
	Name      string `json:"name"`
	Canonical bool   `json:"canonical"`
	corpus.Stats
}

type chapterStats struct {
	Number    int      `json:"number"`
	Verses    int      `json:"verses"`
	Sentences int      `json:"sentences"`
	Citations []string `json:"citations,omitempty"`
}

func (c *InspectCmd) Run(a *app) error {
	ed, err := a.loader.Load(context.Background(), "", c.Edition)
	if err != nil {
		return err
	}

	info := inspection{
		Edition:   ed,
		SizeHuman: humanize.Bytes(uint64(ed.Size)),
		Totals:    ed.Doc.Stats(),
	}
	if c.Book != "" {
		book := ed.Doc.Book(c.Book)
		if book == nil {
			return errors.NewNotFound("book", c.Book)
		}
		info.Totals = book.Stats()
		info.Books = []bookStats{{Name: book.Name, Canonical: canon.IsCanonical(book.Name), Stats: info.Totals}}
		for _, n := range book.SortedChapters() {
			info.Chapters = append(info.Chapters, chapterInfo(book.Chapter(n)))
		}
	} else {
		for _, name := range append(canon.Available(ed.Doc), canon.Extra(ed.Doc)...) {
			info.Books = append(info.Books, bookStats{
				Name:      name,
				Canonical: canon.IsCanonical(name),
				Stats:     ed.Doc.Book(name).Stats(),
			})
		}
	}

	if c.JSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal inspection: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
		return nil
	}
	printInspection(a.out, info)
	return nil
}

func chapterInfo(ch *corpus.Chapter) chapterStats {
	cs := chapterStats{Number: ch.Number, Verses: len(ch.Verses)}
	for _, sentences := range ch.Verses {
		cs.Sentences += len(sentences)
	}
	for _, cit := range ch.Citations {
		cs.Citations = append(cs.Citations, cit.String())
	}
	return cs
}

// VerifyCmd runs the structural self-check on one edition.
type VerifyCmd struct {
	Edition string   `arg:"" help:"Edition file" type:"path"`
	Books   []string `short:"b" help:"Only check these books (comma separated)"`
	Strict  bool     `help:"Fail on warnings as well as errors"`
	JSON    bool     `help:"Output as JSON"`
}

func (c *VerifyCmd) Run(a *app) error {
	ed, err := a.loader.Load(context.Background(), "", c.Edition)
	if err != nil {
		return err
	}

	opts := selfcheck.Options{Books: c.Books}
	if c.Strict {
		opts.Budget = selfcheck.Strict()
	}
	rep := selfcheck.Check(ed.Doc, opts)

	if c.JSON {
		data, err := rep.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(a.out, string(data))
	} else {
		printVerify(a.out, ed, rep)
	}

	if rep.Status != selfcheck.StatusPass {
		return errors.ErrCheckFailed
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "versediff version %s\n", version)
	return nil
}

// documents splits loaded editions into the differencer's inputs.
func documents(eds []*edition.Edition) ([]*corpus.Document, []string) {
	docs := make([]*corpus.Document, len(eds))
	names := make([]string, len(eds))
	for i, ed := range eds {
		docs[i] = ed.Doc
		names[i] = ed.Name
	}
	return docs, names
}

// selectBooks puts canonical names in canonical order and keeps any other
// names after them in the order given.
func selectBooks(requested []string) []string {
	books := canon.Order(requested)
	seen := make(map[string]bool, len(requested))
	for _, b := range books {
		seen[b] = true
	}
	for _, b := range requested {
		if !seen[b] {
			logging.Warn("book is not in the canonical list", "book", b)
			books = append(books, b)
			seen[b] = true
		}
	}
	return books
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("versediff"),
		kong.Description("Structural comparison of scripture editions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	a, err := newApp(&cli, os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}
