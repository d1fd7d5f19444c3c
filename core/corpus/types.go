package corpus

import "sort"

// Document is the parse result for one edition.
type Document struct {
	// Books maps a book name, exactly as written after "Book:", to its content.
	Books map[string]*Book `json:"books"`
}

// Book holds the chapters of one book.
type Book struct {
	// Name is the book name as it appeared in the source.
	Name string `json:"name"`

	// Chapters maps chapter number to chapter.
	Chapters map[int]*Chapter `json:"chapters"`
}

// Chapter holds the verses of one chapter.
type Chapter struct {
	// Number is the chapter number taken from the citation line.
	Number int `json:"number"`

	// Verses maps verse number to its ordered sentences.
	Verses map[int][]string `json:"verses"`

	// Citations lists every citation line that opened this chapter, in source
	// order. The verse range is informational and never used for alignment.
	Citations []Citation `json:"citations,omitempty"`
}

// Stats summarizes the size of a document.
type Stats struct {
	Books     int `json:"books"`
	Chapters  int `json:"chapters"`
	Verses    int `json:"verses"`
	Sentences int `json:"sentences"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Books: make(map[string]*Book)}
}

// Book returns the named book, or nil if the document does not contain it.
func (d *Document) Book(name string) *Book {
	if d == nil {
		return nil
	}
	return d.Books[name]
}

// HasBook reports whether the document contains the named book.
func (d *Document) HasBook(name string) bool {
	return d.Book(name) != nil
}

// BookNames returns the book names in lexical order.
func (d *Document) BookNames() []string {
	names := make([]string, 0, len(d.Books))
	for name := range d.Books {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats counts books, chapters, verses and sentences.
func (d *Document) Stats() Stats {
	var s Stats
	for _, b := range d.Books {
		s.Books++
		bs := b.Stats()
		s.Chapters += bs.Chapters
		s.Verses += bs.Verses
		s.Sentences += bs.Sentences
	}
	return s
}

// openBook returns the named book, creating it on first use.
func (d *Document) openBook(name string) *Book {
	if b, ok := d.Books[name]; ok {
		return b
	}
	b := &Book{Name: name, Chapters: make(map[int]*Chapter)}
	d.Books[name] = b
	return b
}

// Chapter returns the numbered chapter, or nil.
func (b *Book) Chapter(n int) *Chapter {
	if b == nil {
		return nil
	}
	return b.Chapters[n]
}

// SortedChapters returns the chapter numbers in ascending order.
func (b *Book) SortedChapters() []int {
	nums := make([]int, 0, len(b.Chapters))
	for n := range b.Chapters {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Stats counts the chapters, verses and sentences of the book.
func (b *Book) Stats() Stats {
	s := Stats{Books: 1}
	for _, c := range b.Chapters {
		s.Chapters++
		s.Verses += len(c.Verses)
		for _, sentences := range c.Verses {
			s.Sentences += len(sentences)
		}
	}
	return s
}

func (b *Book) openChapter(n int) *Chapter {
	if c, ok := b.Chapters[n]; ok {
		return c
	}
	c := &Chapter{Number: n, Verses: make(map[int][]string)}
	b.Chapters[n] = c
	return c
}

// Verse returns the sentences of the numbered verse and whether the verse exists.
// A verse can exist with no sentences.
func (c *Chapter) Verse(n int) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	sentences, ok := c.Verses[n]
	return sentences, ok
}

// SortedVerses returns the verse numbers in ascending order.
func (c *Chapter) SortedVerses() []int {
	nums := make([]int, 0, len(c.Verses))
	for n := range c.Verses {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
