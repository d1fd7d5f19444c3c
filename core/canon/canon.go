// Package canon holds the canonical book list: the 66 books of the Protestant
// canon in canonical order, with the chapter count each book is expected to
// have.
//
// Names are matched exactly. The package does not resolve aliases such as
// "1 Cor" or "First Corinthians"; that is done before text reaches the parser.
package canon

import "github.com/FocuswithJustin/versediff/core/corpus"

// Testament identifies the half of the canon a book belongs to.
type Testament string

// Testament constants.
const (
	OldTestament Testament = "OT"
	NewTestament Testament = "NT"
)

// Book describes one canonical book.
type Book struct {
	// Name is the canonical book name, as written after "Book:" in an edition.
	Name string `json:"name"`

	// Order is the 1-based canonical position.
	Order int `json:"order"`

	// Chapters is the expected number of chapters.
	Chapters int `json:"chapters"`

	// Testament is OT or NT.
	Testament Testament `json:"testament"`
}

var books = []Book{
	{"Genesis", 1, 50, OldTestament},
	{"Exodus", 2, 40, OldTestament},
	{"Leviticus", 3, 27, OldTestament},
	{"Numbers", 4, 36, OldTestament},
	{"Deuteronomy", 5, 34, OldTestament},
	{"Joshua", 6, 24, OldTestament},
	{"Judges", 7, 21, OldTestament},
	{"Ruth", 8, 4, OldTestament},
	{"1 Samuel", 9, 31, OldTestament},
	{"2 Samuel", 10, 24, OldTestament},
	{"1 Kings", 11, 22, OldTestament},
	{"2 Kings", 12, 25, OldTestament},
	{"1 Chronicles", 13, 29, OldTestament},
	{"2 Chronicles", 14, 36, OldTestament},
	{"Ezra", 15, 10, OldTestament},
	{"Nehemiah", 16, 13, OldTestament},
	{"Esther", 17, 10, OldTestament},
	{"Job", 18, 42, OldTestament},
	{"Psalms", 19, 150, OldTestament},
	{"Proverbs", 20, 31, OldTestament},
	{"Ecclesiastes", 21, 12, OldTestament},
	{"Song of Solomon", 22, 8, OldTestament},
	{"Isaiah", 23, 66, OldTestament},
	{"Jeremiah", 24, 52, OldTestament},
	{"Lamentations", 25, 5, OldTestament},
	{"Ezekiel", 26, 48, OldTestament},
	{"Daniel", 27, 12, OldTestament},
	{"Hosea", 28, 14, OldTestament},
	{"Joel", 29, 3, OldTestament},
	{"Amos", 30, 9, OldTestament},
	{"Obadiah", 31, 1, OldTestament},
	{"Jonah", 32, 4, OldTestament},
	{"Micah", 33, 7, OldTestament},
	{"Nahum", 34, 3, OldTestament},
	{"Habakkuk", 35, 3, OldTestament},
	{"Zephaniah", 36, 3, OldTestament},
	{"Haggai", 37, 2, OldTestament},
	{"Zechariah", 38, 14, OldTestament},
	{"Malachi", 39, 4, OldTestament},
	{"Matthew", 40, 28, NewTestament},
	{"Mark", 41, 16, NewTestament},
	{"Luke", 42, 24, NewTestament},
	{"John", 43, 21, NewTestament},
	{"Acts", 44, 28, NewTestament},
	{"Romans", 45, 16, NewTestament},
	{"1 Corinthians", 46, 16, NewTestament},
	{"2 Corinthians", 47, 13, NewTestament},
	{"Galatians", 48, 6, NewTestament},
	{"Ephesians", 49, 6, NewTestament},
	{"Philippians", 50, 4, NewTestament},
	{"Colossians", 51, 4, NewTestament},
	{"1 Thessalonians", 52, 5, NewTestament},
	{"2 Thessalonians", 53, 3, NewTestament},
	{"1 Timothy", 54, 6, NewTestament},
	{"2 Timothy", 55, 4, NewTestament},
	{"Titus", 56, 3, NewTestament},
	{"Philemon", 57, 1, NewTestament},
	{"Hebrews", 58, 13, NewTestament},
	{"James", 59, 5, NewTestament},
	{"1 Peter", 60, 5, NewTestament},
	{"2 Peter", 61, 3, NewTestament},
	{"1 John", 62, 5, NewTestament},
	{"2 John", 63, 1, NewTestament},
	{"3 John", 64, 1, NewTestament},
	{"Jude", 65, 1, NewTestament},
	{"Revelation", 66, 22, NewTestament},
}

// byName maps a canonical name to its Book.
var byName = func() map[string]Book {
	m := make(map[string]Book, len(books))
	for _, b := range books {
		m[b.Name] = b
	}
	return m
}()

// Books returns a copy of the canonical table in canonical order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// Names returns the canonical book names in canonical order.
func Names() []string {
	names := make([]string, len(books))
	for i, b := range books {
		names[i] = b.Name
	}
	return names
}

// Lookup finds a book by its exact canonical name.
func Lookup(name string) (Book, bool) {
	b, ok := byName[name]
	return b, ok
}

// IsCanonical reports whether name is a canonical book name.
func IsCanonical(name string) bool {
	_, ok := byName[name]
	return ok
}

// Order filters available down to canonical names and returns them in
// canonical order. Duplicates and non-canonical names are dropped.
func Order(available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, name := range available {
		set[name] = struct{}{}
	}

	var ordered []string
	for _, b := range books {
		if _, ok := set[b.Name]; ok {
			ordered = append(ordered, b.Name)
		}
	}
	return ordered
}

// Available returns the canonical books found in any of docs, in canonical order.
func Available(docs ...*corpus.Document) []string {
	var names []string
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for name := range doc.Books {
			names = append(names, name)
		}
	}
	return Order(names)
}

// Common returns the canonical books present in every one of docs, in
// canonical order. With no documents the result is empty.
func Common(docs ...*corpus.Document) []string {
	if len(docs) == 0 {
		return nil
	}

	var common []string
	for _, b := range books {
		inAll := true
		for _, doc := range docs {
			if !doc.HasBook(b.Name) {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, b.Name)
		}
	}
	return common
}

// Extra returns the book names of doc that are not canonical, sorted.
func Extra(doc *corpus.Document) []string {
	var extra []string
	for _, name := range doc.BookNames() {
		if !IsCanonical(name) {
			extra = append(extra, name)
		}
	}
	return extra
}
