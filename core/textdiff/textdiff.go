// Package textdiff produces human-readable line deltas.
//
// Every output line starts with a two-character marker:
//
//	"  " line common to both inputs
//	"- " line only in the first input
//	"+ " line only in the second input
//	"? " intraline hints for a pair of similar lines
//
// Line alignment uses the longest-matching-block algorithm of
// github.com/pmezard/go-difflib. Within a replaced block the most similar
// pair of lines is used as a synchronisation point and annotated with
// "^" (changed), "-" (deleted) and "+" (inserted) hints.
package textdiff

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// pairCutoff is the similarity a pair of lines needs before it is
	// treated as a change of one line rather than a delete plus an insert.
	pairCutoff = 0.75

	// pairFloor is the starting score for the similar-pair search. Only
	// pairs scoring above it are considered at all.
	pairFloor = 0.74
)

// NDiff compares two sequences of lines and returns the delta. Lines are
// compared exactly as given, including any line terminators, and the output
// lines carry those terminators through. Hint lines always end in "\n".
func NDiff(a, b []string) []string {
	d := &differ{}
	m := difflib.NewMatcherWithJunk(a, b, true, nil)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r':
			d.fancyReplace(a, op.I1, op.I2, b, op.J1, op.J2)
		case 'd':
			d.dump('-', a, op.I1, op.I2)
		case 'i':
			d.dump('+', b, op.J1, op.J2)
		case 'e':
			d.dump(' ', a, op.I1, op.I2)
		}
	}
	return d.out
}

// Lines diffs two texts line by line and strips the trailing newlines from
// the result, ready to be embedded in a report.
func Lines(a, b string) []string {
	delta := NDiff(SplitLines(a), SplitLines(b))
	for i, line := range delta {
		delta[i] = strings.TrimRight(line, "\n")
	}
	return delta
}

// SplitLines splits s into lines, keeping each line's terminator. "\r\n" is
// one terminator; so are "\n", "\r", "\v", "\f", the file, group and record
// separators, NEL and the Unicode line and paragraph separators. An empty
// string has no lines.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if i < start || !isLineBreak(r) {
			continue
		}
		end := i + len(string(r))
		if r == '\r' && strings.HasPrefix(s[end:], "\n") {
			end++
		}
		lines = append(lines, s[start:end])
		start = end
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isCharJunk marks blanks and tabs as ignorable when aligning characters.
func isCharJunk(s string) bool {
	return s == " " || s == "\t"
}

// differ accumulates delta lines.
type differ struct {
	out []string
}

func (d *differ) dump(tag byte, x []string, lo, hi int) {
	for i := lo; i < hi; i++ {
		d.out = append(d.out, string(tag)+" "+x[i])
	}
}

// plainReplace emits the shorter block first, deletions winning ties.
func (d *differ) plainReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	if bhi-blo < ahi-alo {
		d.dump('+', b, blo, bhi)
		d.dump('-', a, alo, ahi)
		return
	}
	d.dump('-', a, alo, ahi)
	d.dump('+', b, blo, bhi)
}

// fancyReplace handles a block of a[alo:ahi] replaced by b[blo:bhi]. It looks
// for the most similar pair of lines, marks the intraline changes of that pair
// and recurses on the lines before and after it.
func (d *differ) fancyReplace(a []string, alo, ahi int, b []string, blo, bhi int) {
	best, bestI, bestJ := pairFloor, 0, 0
	eqI, eqJ := -1, -1

	cruncher := difflib.NewMatcherWithJunk(nil, nil, true, isCharJunk)
	for j := blo; j < bhi; j++ {
		cruncher.SetSeq2(chars(b[j]))
		for i := alo; i < ahi; i++ {
			if a[i] == b[j] {
				if eqI < 0 {
					eqI, eqJ = i, j
				}
				continue
			}
			cruncher.SetSeq1(chars(a[i]))
			if cruncher.RealQuickRatio() > best &&
				cruncher.QuickRatio() > best &&
				cruncher.Ratio() > best {
				best, bestI, bestJ = cruncher.Ratio(), i, j
			}
		}
	}

	if best < pairCutoff {
		if eqI < 0 {
			d.plainReplace(a, alo, ahi, b, blo, bhi)
			return
		}
		// No similar pair, but an identical one to synchronise on.
		bestI, bestJ = eqI, eqJ
	} else {
		eqI = -1
	}

	d.fancyHelper(a, alo, bestI, b, blo, bestJ)

	aLine, bLine := a[bestI], b[bestJ]
	if eqI < 0 {
		var aTags, bTags strings.Builder
		cruncher.SetSeqs(chars(aLine), chars(bLine))
		for _, op := range cruncher.GetOpCodes() {
			la, lb := op.I2-op.I1, op.J2-op.J1
			switch op.Tag {
			case 'r':
				aTags.WriteString(strings.Repeat("^", la))
				bTags.WriteString(strings.Repeat("^", lb))
			case 'd':
				aTags.WriteString(strings.Repeat("-", la))
			case 'i':
				bTags.WriteString(strings.Repeat("+", lb))
			case 'e':
				aTags.WriteString(strings.Repeat(" ", la))
				bTags.WriteString(strings.Repeat(" ", lb))
			}
		}
		d.qformat(aLine, bLine, aTags.String(), bTags.String())
	} else {
		d.out = append(d.out, "  "+aLine)
	}

	d.fancyHelper(a, bestI+1, ahi, b, bestJ+1, bhi)
}

func (d *differ) fancyHelper(a []string, alo, ahi int, b []string, blo, bhi int) {
	switch {
	case alo < ahi && blo < bhi:
		d.fancyReplace(a, alo, ahi, b, blo, bhi)
	case alo < ahi:
		d.dump('-', a, alo, ahi)
	case blo < bhi:
		d.dump('+', b, blo, bhi)
	}
}

// qformat emits a similar pair with its hint lines. Hints keep the tabs of
// the original line so they stay aligned when printed.
func (d *differ) qformat(aLine, bLine, aTags, bTags string) {
	aTags = strings.TrimRightFunc(keepWhitespace(aLine, aTags), unicode.IsSpace)
	bTags = strings.TrimRightFunc(keepWhitespace(bLine, bTags), unicode.IsSpace)

	d.out = append(d.out, "- "+aLine)
	if aTags != "" {
		d.out = append(d.out, "? "+aTags+"\n")
	}
	d.out = append(d.out, "+ "+bLine)
	if bTags != "" {
		d.out = append(d.out, "? "+bTags+"\n")
	}
}

// keepWhitespace copies whitespace characters of line into the blank
// positions of tags.
func keepWhitespace(line, tags string) string {
	var sb strings.Builder
	lineRunes := []rune(line)
	for i, tag := range []rune(tags) {
		if i >= len(lineRunes) {
			break
		}
		if c := lineRunes[i]; tag == ' ' && unicode.IsSpace(c) {
			sb.WriteRune(c)
			continue
		}
		sb.WriteRune(tag)
	}
	return sb.String()
}

// chars splits a line into its characters.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
