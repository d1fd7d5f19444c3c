// Package corpus parses plain-text scripture editions into a hierarchical model.
//
// An edition is a line-oriented text file in which structure is carried by a
// handful of markers embedded in otherwise free text:
//
//	Book: Genesis
//
//	1:1-31
//
//	1 In the beginning God created the heaven and the earth. 2 And the earth
//	was without form, and void.
//
// A "Book:" line opens a book, a citation line ("chapter:verse" or
// "chapter:verse-verse") opens a chapter, and the following block of non-blank
// lines is the chapter body. The body is cut into verses wherever a run of
// digits is followed by whitespace, and each verse is cut into sentences after
// '.', '?' or '!' followed by whitespace.
//
// # Model
//
//   - Document: one parsed edition, books keyed by name
//   - Book: chapters keyed by number
//   - Chapter: verses keyed by number, each an ordered list of sentences
//
// Sentence position inside a verse is significant: editions are aligned
// sentence by sentence on that index.
//
// # Known limitations
//
// Both splitters are heuristics. Verse text that legitimately contains a number
// followed by a space ("he was 12 years old") starts a new verse at that
// number, and abbreviations such as "Mr." end a sentence. These behaviours are
// kept as-is so that reports stay comparable across runs.
//
// Parsing is best-effort: lines that match no marker are skipped, and the
// parser never fails on readable text.
package corpus
