package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Citation is a chapter marker line such as "16:1-16" or "3:1".
type Citation struct {
	// Chapter is the leading number; it selects the chapter being opened.
	Chapter int `json:"chapter"`

	// StartVerse is the first verse of the range.
	StartVerse int `json:"start_verse"`

	// EndVerse is the last verse of the range, 0 when the line names a single verse.
	EndVerse int `json:"end_verse,omitempty"`
}

// String renders the citation in source form.
func (c Citation) String() string {
	if c.EndVerse > 0 {
		return fmt.Sprintf("%d:%d-%d", c.Chapter, c.StartVerse, c.EndVerse)
	}
	return fmt.Sprintf("%d:%d", c.Chapter, c.StartVerse)
}

// citationGrammar is the participle grammar for a citation prefix.
// Examples: "1:1", "16:1-16", "3:16 For God so loved" (trailing text is ignored)
//
//nolint:govet // participle grammar tags are not standard struct tags
type citationGrammar struct {
	Chapter string  `@Int ":"`
	Start   string  `@Int`
	End     *string `( "-" @Int )?`
}

// citationLexer splits a line into numbers, the two separators, and everything else.
var citationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Text", Pattern: `[^0-9:\-]+`},
})

var citationParser = participle.MustBuild[citationGrammar](
	participle.Lexer(citationLexer),
	participle.UseLookahead(2),
)

// ParseCitation recognizes a citation at the start of line. Leading and
// trailing whitespace is ignored, as is anything after the verse range.
func ParseCitation(line string) (Citation, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] < '0' || line[0] > '9' {
		return Citation{}, false
	}

	parsed, err := citationParser.ParseString("", line, participle.AllowTrailing(true))
	if err != nil {
		return Citation{}, false
	}

	var c Citation
	if c.Chapter, err = strconv.Atoi(parsed.Chapter); err != nil {
		return Citation{}, false
	}
	if c.StartVerse, err = strconv.Atoi(parsed.Start); err != nil {
		return Citation{}, false
	}
	if parsed.End != nil {
		if c.EndVerse, err = strconv.Atoi(*parsed.End); err != nil {
			c.EndVerse = 0
		}
	}
	return c, true
}
