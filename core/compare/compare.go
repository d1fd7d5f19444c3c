// Package compare walks two or three parsed editions side by side and reports
// every structural and textual divergence as plain-text lines.
//
// Books are compared in the order the caller gives. Chapters and verses are
// visited in ascending order over the union of what any edition contains, so a
// number present in only some editions is always reported. Sentences are
// aligned by their position inside the verse.
package compare

import (
	"fmt"
	"sort"

	"github.com/FocuswithJustin/versediff/core/corpus"
	"github.com/FocuswithJustin/versediff/core/errors"
	"github.com/FocuswithJustin/versediff/core/textdiff"
)

// Placeholder stands in for a sentence position an edition does not have.
const Placeholder = "[SENTENCE ABSENT]"

const (
	// MinEditions is the fewest editions a comparison accepts.
	MinEditions = 2

	// MaxEditions is the most editions a comparison accepts.
	MaxEditions = 3
)

// Options configures a Differ.
type Options struct {
	// Placeholder replaces absent sentences. Defaults to Placeholder.
	Placeholder string

	// LineDiff produces the detailed diff of two differing sentences.
	// Defaults to textdiff.Lines.
	LineDiff func(a, b string) []string
}

// Summary counts what a comparison found.
type Summary struct {
	// Books is the number of books present in every edition and compared in depth.
	Books int `json:"books"`

	// MissingBooks counts book-missing notices, one per absent edition.
	MissingBooks int `json:"missing_books"`

	// MissingChapters counts chapter-missing notices.
	MissingChapters int `json:"missing_chapters"`

	// MissingVerses counts verse-missing notices.
	MissingVerses int `json:"missing_verses"`

	// DifferingSentences counts sentence positions whose texts differ.
	DifferingSentences int `json:"differing_sentences"`
}

// Identical reports whether the comparison found nothing to report.
func (s Summary) Identical() bool {
	return s.MissingBooks == 0 && s.MissingChapters == 0 &&
		s.MissingVerses == 0 && s.DifferingSentences == 0
}

// Result is the outcome of one comparison run.
type Result struct {
	// Lines is the report, one entry per line, without terminators.
	Lines []string `json:"lines"`

	// Summary counts the reported divergences.
	Summary Summary `json:"summary"`
}

// Differ compares parsed editions. It holds no per-run state and may be reused.
type Differ struct {
	placeholder string
	lineDiff    func(a, b string) []string
}

// New creates a Differ, filling unset options with defaults.
func New(opts Options) *Differ {
	d := &Differ{
		placeholder: opts.Placeholder,
		lineDiff:    opts.LineDiff,
	}
	if d.placeholder == "" {
		d.placeholder = Placeholder
	}
	if d.lineDiff == nil {
		d.lineDiff = textdiff.Lines
	}
	return d
}

// Compare runs a default Differ and returns the report lines.
func Compare(docs []*corpus.Document, names []string, books []string) ([]string, error) {
	res, err := New(Options{}).Run(docs, names, books)
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// Run compares docs, labelled by names, for each book in books. It fails with
// *errors.ArityError, and produces no report, unless there are two or three
// non-nil documents and exactly one name per document. Divergences are never
// errors; they are the content of the report.
func (d *Differ) Run(docs []*corpus.Document, names []string, books []string) (*Result, error) {
	if err := checkArity(docs, names); err != nil {
		return nil, err
	}

	r := &run{
		differ: d,
		docs:   docs,
		names:  names,
		pairs:  pairsByDistance(len(docs)),
	}
	for _, book := range books {
		r.book(book)
	}
	return &Result{Lines: r.w.lines, Summary: r.summary}, nil
}

func checkArity(docs []*corpus.Document, names []string) error {
	if len(docs) < MinEditions || len(docs) > MaxEditions {
		return errors.NewArity(len(docs), len(names),
			fmt.Sprintf("need %d or %d documents", MinEditions, MaxEditions))
	}
	if len(names) != len(docs) {
		return errors.NewArity(len(docs), len(names), "one name per document")
	}
	for i, doc := range docs {
		if doc == nil {
			return errors.NewArity(len(docs), len(names), fmt.Sprintf("document %d is nil", i))
		}
	}
	return nil
}

// pairsByDistance lists every unordered pair of participant indexes, nearest
// neighbours first: for three participants (0,1), (1,2), (0,2).
func pairsByDistance(n int) [][2]int {
	var pairs [][2]int
	for dist := 1; dist < n; dist++ {
		for i := 0; i+dist < n; i++ {
			pairs = append(pairs, [2]int{i, i + dist})
		}
	}
	return pairs
}

// run holds the state of a single comparison.
type run struct {
	differ  *Differ
	docs    []*corpus.Document
	names   []string
	pairs   [][2]int
	w       writer
	summary Summary
}

func (r *run) book(name string) {
	r.w.line("", fmt.Sprintf("--- Comparing Book: %s ---", name))

	books := make([]*corpus.Book, len(r.docs))
	complete := true
	for i, doc := range r.docs {
		books[i] = doc.Book(name)
		if books[i] == nil {
			r.w.line(fmt.Sprintf("  Book '%s' missing in %s", name, r.names[i]))
			r.summary.MissingBooks++
			complete = false
		}
	}
	if !complete {
		return
	}
	r.summary.Books++

	for _, number := range chapterUnion(books) {
		r.chapter(name, number, books)
	}
}

func (r *run) chapter(bookName string, number int, books []*corpus.Book) {
	hdr := newHeader(fmt.Sprintf("  -- Chapter %d (Book: %s) --", number, bookName))

	chapters := make([]*corpus.Chapter, len(books))
	var absent []int
	for i, b := range books {
		chapters[i] = b.Chapter(number)
		if chapters[i] == nil {
			absent = append(absent, i)
		}
	}
	if len(absent) > 0 {
		hdr.open(&r.w)
		for _, i := range absent {
			r.w.line("    Chapter missing in " + r.names[i])
			r.summary.MissingChapters++
		}
		return
	}

	for _, verse := range verseUnion(chapters) {
		r.verse(hdr, verse, chapters)
	}
}

func (r *run) verse(chapterHdr *header, number int, chapters []*corpus.Chapter) {
	hdr := newHeader(fmt.Sprintf("    Verse %d:", number))

	verses := make([][]string, len(chapters))
	longest := 0
	var absent []int
	for i, c := range chapters {
		sentences, ok := c.Verse(number)
		if !ok {
			absent = append(absent, i)
		}
		verses[i] = sentences
		if len(sentences) > longest {
			longest = len(sentences)
		}
	}

	if len(absent) > 0 {
		chapterHdr.open(&r.w)
		hdr.open(&r.w)
		for _, i := range absent {
			r.w.line("      Missing in " + r.names[i])
			r.summary.MissingVerses++
		}
	}

	texts := make([]string, len(verses))
	for pos := 0; pos < longest; pos++ {
		for i, sentences := range verses {
			if pos < len(sentences) {
				texts[i] = sentences[pos]
			} else {
				texts[i] = r.differ.placeholder
			}
		}
		if allEqual(texts) {
			continue
		}

		chapterHdr.open(&r.w)
		hdr.open(&r.w)
		r.sentence(pos, texts)
	}
}

// sentence reports one differing sentence position.
func (r *run) sentence(pos int, texts []string) {
	r.summary.DifferingSentences++
	r.w.line(fmt.Sprintf("      Sentence %d Differs:", pos+1))
	for i, text := range texts {
		r.w.line(fmt.Sprintf("        %s: %s", r.names[i], text))
	}

	diffed := false
	for _, p := range r.pairs {
		a, b := texts[p[0]], texts[p[1]]
		if a == b || a == r.differ.placeholder || b == r.differ.placeholder {
			continue
		}
		r.w.line(fmt.Sprintf("        Detailed Diff (%s vs %s):", r.names[p[0]], r.names[p[1]]))
		for _, l := range r.differ.lineDiff(a, b) {
			r.w.line("          " + l)
		}
		diffed = true
	}
	if diffed {
		r.w.line("        ----")
	}
}

func allEqual(texts []string) bool {
	for _, t := range texts[1:] {
		if t != texts[0] {
			return false
		}
	}
	return true
}

func chapterUnion(books []*corpus.Book) []int {
	seen := make(map[int]struct{})
	for _, b := range books {
		for n := range b.Chapters {
			seen[n] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func verseUnion(chapters []*corpus.Chapter) []int {
	seen := make(map[int]struct{})
	for _, c := range chapters {
		for n := range c.Verses {
			seen[n] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
