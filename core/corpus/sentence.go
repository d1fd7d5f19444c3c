package corpus

import (
	"regexp"
	"strconv"
	"strings"
)

// space matches one Unicode white space character. RE2's \s is ASCII only.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	// verseStartPattern finds "digits followed by whitespace". Matching is
	// leftmost-first, so each hit is a whole run of digits. Whitespace is any
	// Unicode white space, NBSP included.
	verseStartPattern = regexp.MustCompile(`([0-9]+)` + space)

	// sentenceEndPattern finds terminal punctuation followed by whitespace.
	sentenceEndPattern = regexp.MustCompile(`[.?!]` + space + `+`)
)

// verseChunk is one verse cut out of a chapter body.
type verseChunk struct {
	number int
	text   string
}

// splitVerses cuts a chapter body into verse chunks. Text before the first
// verse number is discarded, as are chunks whose number does not fit an int
// and chunks with no text.
func splitVerses(body string) []verseChunk {
	starts := verseStartPattern.FindAllStringSubmatchIndex(body, -1)
	if len(starts) == 0 {
		return nil
	}

	chunks := make([]verseChunk, 0, len(starts))
	for i, loc := range starts {
		end := len(body)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}

		number, err := strconv.Atoi(body[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		// A bare number with no text is not a verse.
		text := strings.TrimSpace(body[loc[1]:end])
		if text == "" {
			continue
		}
		chunks = append(chunks, verseChunk{number: number, text: text})
	}
	return chunks
}

// SplitSentences splits verse text after every '.', '?' or '!' that is followed
// by whitespace. Fragments that are empty after trimming are dropped; order is
// preserved and nothing is deduplicated.
func SplitSentences(text string) []string {
	var sentences []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	pos := 0
	for _, loc := range sentenceEndPattern.FindAllStringIndex(text, -1) {
		// Keep the punctuation byte with the sentence it ends.
		add(text[pos : loc[0]+1])
		pos = loc[1]
	}
	add(text[pos:])

	if sentences == nil {
		return []string{}
	}
	return sentences
}
