package corpus

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/versediff/core/errors"
)

const bookPrefix = "Book: "

// Parse builds a Document from the full text of one edition.
//
// Parsing never fails: lines that are neither a "Book:" line, a citation nor
// part of a chapter body are skipped.
func Parse(text string) *Document {
	p := &parser{
		doc:   NewDocument(),
		lines: splitLines(text),
	}
	p.run()
	return p.doc
}

// ParseReader reads r to the end and parses it. A read failure or text that is
// not valid UTF-8 yields a *errors.SourceUnavailableError and no document.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewSourceUnavailable("", "read", err)
	}
	if !utf8.Valid(data) {
		return nil, errors.NewSourceUnavailable("", "invalid UTF-8", nil)
	}
	return Parse(string(data)), nil
}

// ParseFile opens and parses the edition at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewSourceUnavailable(path, "open", err)
	}
	defer f.Close()

	doc, err := ParseReader(f)
	if err != nil {
		var su *errors.SourceUnavailableError
		if errors.As(err, &su) {
			su.Source = path
		}
		return nil, err
	}
	return doc, nil
}

// splitLines splits text into lines that keep their "\n" terminator.
// CRLF and lone CR endings are normalised to "\n" and a leading byte order mark is dropped.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// parser walks the lines of one edition.
type parser struct {
	doc   *Document
	lines []string
	pos   int
	book  *Book
}

func (p *parser) run() {
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])

		if name, ok := bookName(line); ok {
			p.book = p.doc.openBook(name)
			p.pos++
			p.skipBlank()
			continue
		}

		if citation, ok := ParseCitation(line); ok && p.book != nil {
			chapter := p.book.openChapter(citation.Chapter)
			chapter.Citations = append(chapter.Citations, citation)
			p.pos++
			p.skipBlank()
			p.readBody(chapter)
			continue
		}

		p.pos++
	}
}

// skipBlank consumes at most one blank line.
func (p *parser) skipBlank() {
	if p.pos < len(p.lines) && strings.TrimSpace(p.lines[p.pos]) == "" {
		p.pos++
	}
}

// readBody collects the chapter body that follows a citation and stores its
// verses. The body ends at a blank line, which is consumed, or at the next
// "Book:" or citation line, which is left for the main loop.
func (p *parser) readBody(chapter *Chapter) {
	var body strings.Builder
	for p.pos < len(p.lines) {
		raw := p.lines[p.pos]
		line := strings.TrimSpace(raw)
		if line == "" {
			p.pos++
			break
		}
		if isMarker(line) {
			break
		}
		body.WriteString(raw)
		p.pos++
	}

	for _, chunk := range splitVerses(strings.TrimSpace(body.String())) {
		chapter.Verses[chunk.number] = SplitSentences(chunk.text)
	}
}

// bookName extracts the name from a trimmed "Book: <Name>" line.
func bookName(line string) (string, bool) {
	if !strings.HasPrefix(line, bookPrefix) {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimPrefix(line, bookPrefix))
	return name, name != ""
}

// isMarker reports whether a trimmed line ends a chapter body.
func isMarker(line string) bool {
	if strings.HasPrefix(line, bookPrefix) {
		return true
	}
	_, ok := ParseCitation(line)
	return ok
}
