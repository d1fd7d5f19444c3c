// Package report assembles comparison reports and writes them to disk.
//
// A report is a fixed header naming the compared editions and books followed
// by the lines produced by the structural differencer.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/versediff/internal/edition"
	"github.com/FocuswithJustin/versediff/internal/validation"
)

const (
	// Title is the first line of every report.
	Title = "Bible Text Comparison Report"

	// AllBooksLine replaces the book list when every common book is compared.
	AllBooksLine = "  - All common available books"

	// DefaultDir is where reports are written when no directory is configured.
	DefaultDir = "compared_results"

	headerTimeLayout = "2006-01-02 15:04:05"
	fileTimeLayout   = "20060102_150405"
	ruleWidth        = 40
)

// Source identifies one compared edition in the header.
type Source struct {
	Name string
	File string
	Hash string
}

// Header is the preamble of a report.
type Header struct {
	ID        string
	Generated time.Time
	Sources   []Source
	Books     []string

	// AllBooks is set when Books is exactly the set of books common to every
	// edition. The header then says so instead of listing them, and the file
	// name carries "allbooks".
	AllBooks bool
}

// NewHeader builds a header for editions compared over books. common is the
// list of books present in all editions.
func NewHeader(editions []*edition.Edition, books, common []string, now time.Time) Header {
	sources := make([]Source, len(editions))
	for i, ed := range editions {
		sources[i] = Source{
			Name: ed.Name,
			File: filepath.Base(ed.Path),
			Hash: ed.ShortHash(),
		}
	}
	return Header{
		ID:        uuid.NewString(),
		Generated: now,
		Sources:   sources,
		Books:     append([]string(nil), books...),
		AllBooks:  sameSet(books, common),
	}
}

// Lines renders the header, ending with the rule and a blank line.
func (h Header) Lines() []string {
	lines := []string{
		Title,
		"Report ID: " + h.ID,
		"Report generated: " + h.Generated.Format(headerTimeLayout),
		"Files Compared:",
	}
	for _, s := range h.Sources {
		if s.Hash != "" {
			lines = append(lines, fmt.Sprintf("  - %s (%s, blake3:%s)", s.Name, s.File, s.Hash))
		} else {
			lines = append(lines, fmt.Sprintf("  - %s (%s)", s.Name, s.File))
		}
	}

	lines = append(lines, "", "Books Compared (in canonical order):")
	if h.AllBooks {
		lines = append(lines, AllBooksLine)
	} else {
		for _, b := range h.Books {
			lines = append(lines, "  - "+b)
		}
	}
	return append(lines, strings.Repeat("=", ruleWidth), "")
}

// FileName returns the report file name, for example
// "comparison_kjv_vs_web_allbooks_20260101_120000.txt".
func (h Header) FileName() (string, error) {
	parts := make([]string, len(h.Sources))
	for i, s := range h.Sources {
		name, err := validation.SanitizeFilename(s.Name)
		if err != nil {
			return "", fmt.Errorf("edition name %q: %w", s.Name, err)
		}
		parts[i] = name
	}

	scope := "custombooks"
	if h.AllBooks {
		scope = "allbooks"
	}
	name := fmt.Sprintf("comparison_%s_%s_%s.txt",
		strings.Join(parts, "_vs_"), scope, h.Generated.Format(fileTimeLayout))
	if err := validation.ValidateFilename(name); err != nil {
		return "", err
	}
	return name, nil
}

// Report is a header plus differencer output.
type Report struct {
	Header Header
	Body   []string
}

// WriteTo writes the report as newline-terminated lines.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, lines := range [][]string{r.Header.Lines(), r.Body} {
		for _, line := range lines {
			m, err := bw.WriteString(line + "\n")
			n += int64(m)
			if err != nil {
				return n, err
			}
		}
	}
	return n, bw.Flush()
}

// Write stores the report in dir under Header.FileName, creating dir if
// needed. The file is written to a temporary name first and renamed into
// place. It returns the final path and the number of bytes written.
func Write(dir string, r *Report) (string, int64, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := validation.ValidatePath(dir); err != nil {
		return "", 0, fmt.Errorf("invalid output directory: %w", err)
	}

	name, err := r.Header.FileName()
	if err != nil {
		return "", 0, err
	}
	rel, err := validation.SanitizePath(dir, name)
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, rel)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	n, err := r.WriteTo(tempFile)
	if err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return "", 0, fmt.Errorf("failed to write report: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return "", 0, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return "", 0, fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", 0, fmt.Errorf("failed to rename report: %w", err)
	}
	return path, n, nil
}

// sameSet reports whether a and b hold the same distinct names.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return len(set) == len(b)
}
