// Package selfcheck verifies that a parsed edition is structurally complete:
// every canonical book present, every expected chapter present, and every
// citation line consistent with the chapter it opened.
package selfcheck

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/FocuswithJustin/versediff/core/canon"
	"github.com/FocuswithJustin/versediff/core/corpus"
)

// Version is the report format version.
const Version = "1.0.0"

// Status values for reports.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Severity grades a finding.
type Severity string

// Severity constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one observation about the edition.
type Finding struct {
	Severity Severity `json:"severity"`
	Book     string   `json:"book"`
	Chapter  int      `json:"chapter,omitempty"`
	Message  string   `json:"message"`
}

// String renders the finding as a single line.
func (f Finding) String() string {
	where := f.Book
	if f.Chapter > 0 {
		where = fmt.Sprintf("%s %d", f.Book, f.Chapter)
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, where, f.Message)
}

// Options restricts a check.
type Options struct {
	// Books limits the check to these canonical books, in the given order.
	// Empty means every canonical book.
	Books []string

	// Budget decides pass or fail. Nil means DefaultBudget.
	Budget *Budget
}

// Report is the output of a structural check.
type Report struct {
	ReportVersion string    `json:"report_version"`
	CreatedAt     string    `json:"created_at"`
	Status        string    `json:"status"`
	Errors        int       `json:"errors"`
	Warnings      int       `json:"warnings"`
	Findings      []Finding `json:"findings"`
}

// ToJSON serializes the report to JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Check runs the structural check of doc against the canonical book table.
func Check(doc *corpus.Document, opts Options) *Report {
	c := &checker{doc: doc}

	if len(opts.Books) == 0 {
		for _, b := range canon.Books() {
			c.book(b)
		}
		for _, name := range canon.Extra(doc) {
			c.add(SeverityInfo, name, 0, "book is not in the canonical list")
		}
	} else {
		for _, name := range opts.Books {
			b, ok := canon.Lookup(name)
			if !ok {
				c.add(SeverityError, name, 0, "not a canonical book name")
				continue
			}
			c.book(b)
		}
	}

	budget := opts.Budget
	if budget == nil {
		budget = DefaultBudget()
	}

	status := StatusPass
	if !budget.Allows(c.errors, c.warnings) {
		status = StatusFail
	}

	return &Report{
		ReportVersion: Version,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Status:        status,
		Errors:        c.errors,
		Warnings:      c.warnings,
		Findings:      c.findings,
	}
}

type checker struct {
	doc      *corpus.Document
	findings []Finding
	errors   int
	warnings int
}

func (c *checker) add(sev Severity, book string, chapter int, format string, args ...interface{}) {
	c.findings = append(c.findings, Finding{
		Severity: sev,
		Book:     book,
		Chapter:  chapter,
		Message:  fmt.Sprintf(format, args...),
	})
	switch sev {
	case SeverityError:
		c.errors++
	case SeverityWarning:
		c.warnings++
	}
}

func (c *checker) book(want canon.Book) {
	book := c.doc.Book(want.Name)
	if book == nil {
		c.add(SeverityError, want.Name, 0, "book is missing")
		return
	}

	for n := 1; n <= want.Chapters; n++ {
		chapter := book.Chapter(n)
		if chapter == nil {
			c.add(SeverityError, want.Name, n, "chapter is missing")
			continue
		}
		c.citations(want.Name, chapter)
	}

	var extra []int
	for _, n := range book.SortedChapters() {
		if n < 1 || n > want.Chapters {
			extra = append(extra, n)
		}
	}
	if len(extra) > 0 {
		c.add(SeverityWarning, want.Name, 0, "chapters beyond the expected %d: %v", want.Chapters, extra)
	}
}

func (c *checker) citations(book string, chapter *corpus.Chapter) {
	for _, cite := range chapter.Citations {
		// The parser files each citation under the chapter it names, so this
		// only fires for documents assembled by hand.
		if cite.Chapter != chapter.Number {
			c.add(SeverityError, book, chapter.Number,
				"citation %s names chapter %d", cite, cite.Chapter)
		}
		if cite.StartVerse < 1 {
			c.add(SeverityWarning, book, chapter.Number,
				"citation %s starts before verse 1", cite)
		}
		if cite.EndVerse > 0 && cite.EndVerse < cite.StartVerse {
			c.add(SeverityError, book, chapter.Number,
				"citation %s ends before it starts", cite)
		}
	}
}
