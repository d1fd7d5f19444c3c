// Package edition loads edition files from disk into parsed documents.
//
// An edition is a plain-text rendering of one translation in the
// "Book:"/citation line format, optionally compressed with xz or gzip. The
// loader decodes the file, fingerprints the decoded text with BLAKE3 and keeps
// parsed documents in an LRU cache keyed by that fingerprint, so the same text
// named twice on a command line is parsed once.
package edition

import (
	"bytes"
	"context"
	"encoding/hex"
	"path/filepath"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/FocuswithJustin/versediff/core/corpus"
	"github.com/FocuswithJustin/versediff/core/errors"
	"github.com/FocuswithJustin/versediff/internal/logging"
	"github.com/FocuswithJustin/versediff/internal/validation"
)

// DefaultCacheSize is the number of parsed documents a Loader keeps.
const DefaultCacheSize = 8

// ShortHashLength is the number of hex digits shown in report headers.
const ShortHashLength = 16

// Edition is one loaded edition.
type Edition struct {
	// Name labels the edition in report lines.
	Name string `json:"name"`

	// Path is the file the edition was read from.
	Path string `json:"path"`

	// Encoding is the container the file used: text, xz or gzip.
	Encoding validation.FileType `json:"encoding"`

	// Size is the decoded size in bytes.
	Size int64 `json:"size"`

	// Hash is the hex BLAKE3-256 digest of the decoded text.
	Hash string `json:"blake3"`

	// Doc is the parsed document. It is shared with the cache and must not
	// be modified.
	Doc *corpus.Document `json:"-"`
}

// ShortHash returns the first ShortHashLength hex digits of Hash.
func (e *Edition) ShortHash() string {
	if len(e.Hash) <= ShortHashLength {
		return e.Hash
	}
	return e.Hash[:ShortHashLength]
}

// NameFromPath derives an edition label from its file name:
// "texts/kjv_edition.txt.xz" becomes "kjv".
func NameFromPath(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".xz", ".gz"} {
		name = strings.TrimSuffix(name, ext)
	}
	if trimmed := strings.TrimSuffix(name, "_edition.txt"); trimmed != name {
		return trimmed
	}
	return strings.TrimSuffix(name, ".txt")
}

// Loader reads and parses edition files.
type Loader struct {
	cache *lru.Cache[string, *corpus.Document]
}

// NewLoader returns a Loader caching up to cacheSize parsed documents.
// A cacheSize of zero or less disables caching.
func NewLoader(cacheSize int) (*Loader, error) {
	l := &Loader{}
	if cacheSize > 0 {
		c, err := lru.New[string, *corpus.Document](cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "create parse cache")
		}
		l.cache = c
	}
	return l, nil
}

// Cached returns the number of documents currently cached.
func (l *Loader) Cached() int {
	if l.cache == nil {
		return 0
	}
	return l.cache.Len()
}

// Load reads the edition at path. An empty name is derived from the path.
// Every failure is a *errors.SourceUnavailableError.
func (l *Loader) Load(ctx context.Context, name, path string) (*Edition, error) {
	if name == "" {
		name = NameFromPath(path)
	}

	ed, err := l.load(ctx, name, path)
	if err != nil {
		logging.EditionFailed(ctx, name, path, err)
		return nil, err
	}
	return ed, nil
}

// LoadAll loads each path in order. names may be empty or must match paths
// one to one; empty entries are derived from the path.
func (l *Loader) LoadAll(ctx context.Context, paths, names []string) ([]*Edition, error) {
	if len(names) != 0 && len(names) != len(paths) {
		return nil, errors.NewValidation("names", "need one name per edition")
	}

	editions := make([]*Edition, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var name string
		if len(names) != 0 {
			name = names[i]
		}
		ed, err := l.Load(ctx, name, path)
		if err != nil {
			return nil, err
		}
		editions = append(editions, ed)
	}
	return editions, nil
}

func (l *Loader) load(ctx context.Context, name, path string) (*Edition, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, errors.NewSourceUnavailable(path, "invalid path", err)
	}

	r, err := openReader(path)
	if err != nil {
		return nil, errors.NewSourceUnavailable(path, "open", err)
	}
	defer r.Close()

	data, err := r.readAll(validation.MaxEditionSize)
	if err != nil {
		return nil, errors.NewSourceUnavailable(path, "read", err)
	}
	if !utf8.Valid(data) {
		return nil, errors.NewSourceUnavailable(path, "invalid UTF-8", nil)
	}

	sum := blake3.Sum256(data)
	ed := &Edition{
		Name:     name,
		Path:     path,
		Encoding: r.fileType,
		Size:     int64(len(data)),
		Hash:     hex.EncodeToString(sum[:]),
	}

	cached := false
	if l.cache != nil {
		ed.Doc, cached = l.cache.Get(ed.Hash)
	}
	if !cached {
		doc, err := parse(data)
		if err != nil {
			return nil, errors.NewSourceUnavailable(path, "decode", err)
		}
		ed.Doc = doc
		if l.cache != nil {
			l.cache.Add(ed.Hash, doc)
		}
	}

	stats := ed.Doc.Stats()
	logging.EditionLoaded(ctx, name, path, ed.Size, stats.Books, stats.Chapters, stats.Verses,
		"encoding", string(ed.Encoding), "cached", cached)
	return ed, nil
}

// parse strips a UTF-8 byte order mark and parses the remaining text.
func parse(data []byte) (*corpus.Document, error) {
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return nil, err
	}
	return corpus.ParseReader(bytes.NewReader(text))
}
