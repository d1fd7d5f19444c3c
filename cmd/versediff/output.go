package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/versediff/core/canon"
	"github.com/FocuswithJustin/versediff/core/compare"
	"github.com/FocuswithJustin/versediff/core/selfcheck"
	"github.com/FocuswithJustin/versediff/internal/edition"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// dimStyle for muted labels
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary boxes
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// printCompareSummary renders the outcome of a comparison. path is empty when
// the report went to stdout.
func printCompareSummary(w io.Writer, eds []*edition.Edition, s compare.Summary, path string, elapsed time.Duration) {
	names := make([]string, len(eds))
	for i, ed := range eds {
		names[i] = ed.Name
	}

	status := successStyle.Render("IDENTICAL")
	if !s.Identical() {
		status = warnStyle.Render("DIFFERENCES FOUND")
	}

	lines := []string{
		titleStyle.Render("Comparison Complete") + "  " + status,
		fmt.Sprintf("%s %s", dimStyle.Render("Editions:"), strings.Join(names, " vs ")),
		fmt.Sprintf("%s %d  %s %s",
			dimStyle.Render("Books:"), s.Books,
			dimStyle.Render("Time:"), elapsed.Round(time.Millisecond)),
		fmt.Sprintf("%s %d books, %d chapters, %d verses",
			dimStyle.Render("Missing:"), s.MissingBooks, s.MissingChapters, s.MissingVerses),
		fmt.Sprintf("%s %s", dimStyle.Render("Differing sentences:"), humanize.Comma(int64(s.DifferingSentences))),
	}
	if path != "" {
		lines = append(lines, fmt.Sprintf("%s %s", dimStyle.Render("Report:"), path))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// printBooks lists books in canonical order, flagging those absent from some
// editions, then any non-canonical books.
func printBooks(w io.Writer, eds []*edition.Edition) {
	docs, names := documents(eds)

	fmt.Fprintln(w, titleStyle.Render("Books in "+strings.Join(names, ", ")))
	for _, book := range canon.Available(docs...) {
		var missing []string
		for i, doc := range docs {
			if !doc.HasBook(book) {
				missing = append(missing, names[i])
			}
		}
		if len(missing) == 0 {
			fmt.Fprintf(w, "  %s\n", book)
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", book, warnStyle.Render("(missing in "+strings.Join(missing, ", ")+")"))
	}

	for i, doc := range docs {
		for _, book := range canon.Extra(doc) {
			fmt.Fprintf(w, "  %s %s\n", book, dimStyle.Render("(not canonical, in "+names[i]+")"))
		}
	}
}

// printInspection renders per-book statistics for one edition.
func printInspection(w io.Writer, info inspection) {
	header := fmt.Sprintf("%s %s\n%s %s  %s %s  %s %s\n%s %s",
		dimStyle.Render("Edition:"), titleStyle.Render(info.Name),
		dimStyle.Render("File:"), info.Path,
		dimStyle.Render("Encoding:"), info.Encoding,
		dimStyle.Render("Size:"), info.SizeHuman,
		dimStyle.Render("BLAKE3:"), info.Hash,
	)
	fmt.Fprintln(w, boxStyle.Render(header))

	for _, b := range info.Books {
		note := ""
		if !b.Canonical {
			note = " " + dimStyle.Render("(not canonical)")
		}
		fmt.Fprintf(w, "  %-16s %4d chapters %6s verses %6s sentences%s\n",
			b.Name, b.Chapters, humanize.Comma(int64(b.Verses)), humanize.Comma(int64(b.Sentences)), note)
	}
	for _, ch := range info.Chapters {
		fmt.Fprintf(w, "    %s %-4d %4d verses %5d sentences  %s\n",
			dimStyle.Render("Chapter"), ch.Number, ch.Verses, ch.Sentences,
			dimStyle.Render(strings.Join(ch.Citations, ", ")))
	}
	fmt.Fprintf(w, "%s %d books, %d chapters, %s verses, %s sentences\n",
		dimStyle.Render("Total:"), info.Totals.Books, info.Totals.Chapters,
		humanize.Comma(int64(info.Totals.Verses)), humanize.Comma(int64(info.Totals.Sentences)))
}

// printVerify renders a self-check report.
func printVerify(w io.Writer, ed *edition.Edition, rep *selfcheck.Report) {
	for _, f := range rep.Findings {
		var style lipgloss.Style
		switch f.Severity {
		case selfcheck.SeverityError:
			style = errorStyle
		case selfcheck.SeverityWarning:
			style = warnStyle
		default:
			style = dimStyle
		}
		fmt.Fprintln(w, style.Render(f.String()))
	}

	status := successStyle.Render("PASS")
	if rep.Status != selfcheck.StatusPass {
		status = errorStyle.Render("FAIL")
	}
	fmt.Fprintf(w, "%s %s  %s %d  %s %d  %s\n",
		dimStyle.Render("Edition:"), ed.Name,
		dimStyle.Render("Errors:"), rep.Errors,
		dimStyle.Render("Warnings:"), rep.Warnings,
		status)
}
