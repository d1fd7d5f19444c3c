package compare

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/versediff/core/corpus"
	vderrors "github.com/FocuswithJustin/versediff/core/errors"
)

// chapters maps chapter number to verse number to sentences.
type chapters map[int]map[int][]string

// newDoc builds a document from nested literals.
func newDoc(books map[string]chapters) *corpus.Document {
	doc := corpus.NewDocument()
	for name, chs := range books {
		book := &corpus.Book{Name: name, Chapters: make(map[int]*corpus.Chapter)}
		for n, verses := range chs {
			ch := &corpus.Chapter{Number: n, Verses: make(map[int][]string)}
			for v, sentences := range verses {
				ch.Verses[v] = sentences
			}
			book.Chapters[n] = ch
		}
		doc.Books[name] = book
	}
	return doc
}

// stubDiff makes detailed diffs easy to assert on.
func stubDiff(a, b string) []string {
	return []string{a + " | " + b}
}

func TestCompare_GenesisScenario(t *testing.T) {
	a := newDoc(map[string]chapters{"Genesis": {1: {1: {"In the beginning."}}}})
	b := newDoc(map[string]chapters{"Genesis": {1: {1: {"In the beginning God created."}}}})

	got, err := Compare([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Genesis"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	want := []string{
		"",
		"--- Comparing Book: Genesis ---",
		"  -- Chapter 1 (Book: Genesis) --",
		"    Verse 1:",
		"      Sentence 1 Differs:",
		"        A: In the beginning.",
		"        B: In the beginning God created.",
		"        Detailed Diff (A vs B):",
		"          - In the beginning.",
		"          + In the beginning God created.",
		"        ----",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compare() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestCompare_BookMissing(t *testing.T) {
	a := newDoc(map[string]chapters{"Exodus": {1: {1: {"Now these are the names."}}}})
	b := newDoc(map[string]chapters{"Genesis": {1: {1: {"In the beginning."}}}})

	got, err := Compare([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Exodus"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	want := []string{"", "--- Comparing Book: Exodus ---", "  Book 'Exodus' missing in B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compare() = %q, want %q", got, want)
	}
}

func TestCompare_BookMissingInTwoOfThree(t *testing.T) {
	a := newDoc(map[string]chapters{"Ruth": {1: {1: {"x."}}}})
	b := newDoc(nil)
	c := newDoc(nil)

	res, err := New(Options{}).Run([]*corpus.Document{a, b, c}, []string{"A", "B", "C"}, []string{"Ruth"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"",
		"--- Comparing Book: Ruth ---",
		"  Book 'Ruth' missing in B",
		"  Book 'Ruth' missing in C",
	}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Lines = %q, want %q", res.Lines, want)
	}
	if res.Summary.MissingBooks != 2 || res.Summary.Books != 0 {
		t.Errorf("Summary = %+v", res.Summary)
	}
}

func TestCompare_NoFalsePositives(t *testing.T) {
	books := map[string]chapters{
		"Jonah": {
			1: {1: {"Now the word came.", "Arise, go."}, 2: {"But Jonah rose up."}},
			2: {1: {"Then Jonah prayed."}},
			3: {},
		},
	}
	a, b, c := newDoc(books), newDoc(books), newDoc(books)

	for _, docs := range [][]*corpus.Document{{a, b}, {a, b, c}} {
		names := []string{"A", "B", "C"}[:len(docs)]
		res, err := New(Options{}).Run(docs, names, []string{"Jonah"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		want := []string{"", "--- Comparing Book: Jonah ---"}
		if !reflect.DeepEqual(res.Lines, want) {
			t.Errorf("%d-way Lines = %q, want %q", len(docs), res.Lines, want)
		}
		if !res.Summary.Identical() || res.Summary.Books != 1 {
			t.Errorf("%d-way Summary = %+v", len(docs), res.Summary)
		}
	}
}

func TestCompare_UnionCompleteness(t *testing.T) {
	a := newDoc(map[string]chapters{
		"Mark": {
			1: {1: {"One."}, 4: {"Only in A."}},
		},
	})
	b := newDoc(map[string]chapters{
		"Mark": {
			1: {1: {"One."}},
			2: {1: {"Chapter only in B."}},
		},
	})

	res, err := New(Options{LineDiff: stubDiff}).Run([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Mark"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"",
		"--- Comparing Book: Mark ---",
		"  -- Chapter 1 (Book: Mark) --",
		"    Verse 4:",
		"      Missing in B",
		"      Sentence 1 Differs:",
		"        A: Only in A.",
		"        B: [SENTENCE ABSENT]",
		"  -- Chapter 2 (Book: Mark) --",
		"    Chapter missing in A",
	}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Lines =\n%s\nwant\n%s", strings.Join(res.Lines, "\n"), strings.Join(want, "\n"))
	}

	wantSummary := Summary{Books: 1, MissingChapters: 1, MissingVerses: 1, DifferingSentences: 1}
	if res.Summary != wantSummary {
		t.Errorf("Summary = %+v, want %+v", res.Summary, wantSummary)
	}
}

func TestCompare_IdempotentHeaders(t *testing.T) {
	a := newDoc(map[string]chapters{
		"Luke": {2: {
			1: {"And it came to pass.", "That there went out a decree."},
			2: {"And this taxing was first made."},
		}},
	})
	b := newDoc(map[string]chapters{
		"Luke": {2: {
			1: {"And it came to pass,", "that there went out a decree."},
			2: {"This taxing was first made."},
		}},
	})

	got, err := New(Options{LineDiff: stubDiff}).Run([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Luke"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	counts := make(map[string]int)
	for _, line := range got.Lines {
		counts[line]++
	}
	for _, hdr := range []string{
		"--- Comparing Book: Luke ---",
		"  -- Chapter 2 (Book: Luke) --",
		"    Verse 1:",
		"    Verse 2:",
	} {
		if counts[hdr] != 1 {
			t.Errorf("header %q appears %d times, want 1", hdr, counts[hdr])
		}
	}
	if got.Summary.DifferingSentences != 3 {
		t.Errorf("DifferingSentences = %d, want 3", got.Summary.DifferingSentences)
	}
}

func TestCompare_PlaceholderSubstitution(t *testing.T) {
	two := []string{"First.", "Second."}
	three := []string{"First.", "Second.", "Third in B."}

	t.Run("two editions", func(t *testing.T) {
		a := newDoc(map[string]chapters{"Acts": {5: {3: two}}})
		b := newDoc(map[string]chapters{"Acts": {5: {3: three}}})

		got, err := New(Options{LineDiff: stubDiff}).Run([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Acts"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		want := []string{
			"",
			"--- Comparing Book: Acts ---",
			"  -- Chapter 5 (Book: Acts) --",
			"    Verse 3:",
			"      Sentence 3 Differs:",
			"        A: [SENTENCE ABSENT]",
			"        B: Third in B.",
		}
		if !reflect.DeepEqual(got.Lines, want) {
			t.Errorf("Lines =\n%s\nwant\n%s", strings.Join(got.Lines, "\n"), strings.Join(want, "\n"))
		}
	})

	t.Run("three editions diff the present pair", func(t *testing.T) {
		a := newDoc(map[string]chapters{"Acts": {5: {3: two}}})
		b := newDoc(map[string]chapters{"Acts": {5: {3: three}}})
		c := newDoc(map[string]chapters{"Acts": {5: {3: {"First.", "Second.", "Third in C."}}}})

		got, err := New(Options{LineDiff: stubDiff}).Run(
			[]*corpus.Document{a, b, c}, []string{"A", "B", "C"}, []string{"Acts"})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		want := []string{
			"",
			"--- Comparing Book: Acts ---",
			"  -- Chapter 5 (Book: Acts) --",
			"    Verse 3:",
			"      Sentence 3 Differs:",
			"        A: [SENTENCE ABSENT]",
			"        B: Third in B.",
			"        C: Third in C.",
			"        Detailed Diff (B vs C):",
			"          Third in B. | Third in C.",
			"        ----",
		}
		if !reflect.DeepEqual(got.Lines, want) {
			t.Errorf("Lines =\n%s\nwant\n%s", strings.Join(got.Lines, "\n"), strings.Join(want, "\n"))
		}
	})
}

func TestCompare_ThreeWayPairOrder(t *testing.T) {
	a := newDoc(map[string]chapters{"John": {1: {1: {"a"}}}})
	b := newDoc(map[string]chapters{"John": {1: {1: {"b"}}}})
	c := newDoc(map[string]chapters{"John": {1: {1: {"c"}}}})

	got, err := New(Options{LineDiff: stubDiff}).Run(
		[]*corpus.Document{a, b, c}, []string{"kjv", "web", "asv"}, []string{"John"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"",
		"--- Comparing Book: John ---",
		"  -- Chapter 1 (Book: John) --",
		"    Verse 1:",
		"      Sentence 1 Differs:",
		"        kjv: a",
		"        web: b",
		"        asv: c",
		"        Detailed Diff (kjv vs web):",
		"          a | b",
		"        Detailed Diff (web vs asv):",
		"          b | c",
		"        Detailed Diff (kjv vs asv):",
		"          a | c",
		"        ----",
	}
	if !reflect.DeepEqual(got.Lines, want) {
		t.Errorf("Lines =\n%s\nwant\n%s", strings.Join(got.Lines, "\n"), strings.Join(want, "\n"))
	}
}

func TestCompare_ThreeWaySkipsEqualPair(t *testing.T) {
	a := newDoc(map[string]chapters{"John": {1: {1: {"same"}}}})
	b := newDoc(map[string]chapters{"John": {1: {1: {"same"}}}})
	c := newDoc(map[string]chapters{"John": {1: {1: {"other"}}}})

	got, err := New(Options{LineDiff: stubDiff}).Run(
		[]*corpus.Document{a, b, c}, []string{"A", "B", "C"}, []string{"John"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var diffs []string
	for _, line := range got.Lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Detailed Diff") {
			diffs = append(diffs, strings.TrimSpace(line))
		}
	}
	want := []string{"Detailed Diff (B vs C):", "Detailed Diff (A vs C):"}
	if !reflect.DeepEqual(diffs, want) {
		t.Errorf("diff headers = %q, want %q", diffs, want)
	}
}

func TestCompare_EmptyChaptersCountAsPresent(t *testing.T) {
	a := newDoc(map[string]chapters{"Jude": {1: {}}})
	b := newDoc(map[string]chapters{"Jude": {1: {}}})
	c := newDoc(map[string]chapters{"Jude": {}})

	got, err := Compare([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Jude"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Compare() = %q, want only the book header", got)
	}

	got, err = Compare([]*corpus.Document{a, c}, []string{"A", "C"}, []string{"Jude"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	want := []string{"", "--- Comparing Book: Jude ---", "  -- Chapter 1 (Book: Jude) --", "    Chapter missing in C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compare() = %q, want %q", got, want)
	}
}

func TestCompare_BookOrderIsCallerOrder(t *testing.T) {
	books := map[string]chapters{"Genesis": {}, "Exodus": {}}
	a, b := newDoc(books), newDoc(books)

	got, err := Compare([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Exodus", "Genesis", "Leviticus"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	want := []string{
		"", "--- Comparing Book: Exodus ---",
		"", "--- Comparing Book: Genesis ---",
		"", "--- Comparing Book: Leviticus ---",
		"  Book 'Leviticus' missing in A",
		"  Book 'Leviticus' missing in B",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compare() = %q, want %q", got, want)
	}
}

func TestCompare_Deterministic(t *testing.T) {
	text := "Book: Psalms\n\n23:1-3\n\n1 The LORD is my shepherd; I shall not want. 2 He maketh me to lie down. He leadeth me. 3 He restoreth my soul.\n"
	other := "Book: Psalms\n\n23:1-3\n\n1 The Lord is my shepherd, I lack nothing. 2 He makes me lie down. 4 Even though I walk.\n"
	a, b := corpus.Parse(text), corpus.Parse(other)

	first, err := Compare([]*corpus.Document{a, b}, []string{"kjv", "niv"}, []string{"Psalms"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Compare([]*corpus.Document{a, b}, []string{"kjv", "niv"}, []string{"Psalms"})
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, strings.Join(first, "\n"), strings.Join(again, "\n"))
		}
	}
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	a := newDoc(map[string]chapters{"Amos": {1: {1: {"The words of Amos."}}}})
	b := newDoc(map[string]chapters{"Amos": {1: {1: {"The words of Amos.", "Extra."}, 2: {"More."}}}})

	if _, err := Compare([]*corpus.Document{a, b}, []string{"A", "B"}, []string{"Amos"}); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if got := a.Book("Amos").Chapter(1).SortedVerses(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("A verses = %v after comparison", got)
	}
	if got, _ := a.Book("Amos").Chapter(1).Verse(1); len(got) != 1 {
		t.Errorf("A 1:1 = %q after comparison", got)
	}
}

func TestCompare_Arity(t *testing.T) {
	doc := newDoc(nil)

	tests := []struct {
		name  string
		docs  []*corpus.Document
		names []string
	}{
		{"no documents", nil, nil},
		{"one document", []*corpus.Document{doc}, []string{"A"}},
		{"four documents", []*corpus.Document{doc, doc, doc, doc}, []string{"A", "B", "C", "D"}},
		{"too few names", []*corpus.Document{doc, doc}, []string{"A"}},
		{"too many names", []*corpus.Document{doc, doc}, []string{"A", "B", "C"}},
		{"nil document", []*corpus.Document{doc, nil}, []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Compare(tt.docs, tt.names, []string{"Genesis"})
			if lines != nil {
				t.Errorf("Compare() lines = %q, want nil", lines)
			}
			if !errors.Is(err, vderrors.ErrInvalidComparisonArity) {
				t.Fatalf("err = %v, want ErrInvalidComparisonArity", err)
			}
			var arity *vderrors.ArityError
			if !errors.As(err, &arity) {
				t.Fatalf("err = %T, want *ArityError", err)
			}
			if arity.Documents != len(tt.docs) || arity.Names != len(tt.names) {
				t.Errorf("ArityError = %+v", arity)
			}
		})
	}
}

func TestPairsByDistance(t *testing.T) {
	if got, want := pairsByDistance(2), [][2]int{{0, 1}}; !reflect.DeepEqual(got, want) {
		t.Errorf("pairsByDistance(2) = %v, want %v", got, want)
	}
	if got, want := pairsByDistance(3), [][2]int{{0, 1}, {1, 2}, {0, 2}}; !reflect.DeepEqual(got, want) {
		t.Errorf("pairsByDistance(3) = %v, want %v", got, want)
	}
}

func TestHeader_OpenOnce(t *testing.T) {
	var w writer
	h := newHeader("    Verse 7:")
	for i := 0; i < 3; i++ {
		h.open(&w)
	}
	if !reflect.DeepEqual(w.lines, []string{"    Verse 7:"}) {
		t.Errorf("lines = %q", w.lines)
	}
	if h.state != headerEmitted {
		t.Errorf("state = %v, want headerEmitted", h.state)
	}
}
