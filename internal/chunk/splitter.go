// Package chunk splits long messages into bounded-length pieces for
// sequential synthesis. Splitting prefers natural boundaries so the synthesis
// engine never receives a fragment cut mid-sentence when a better break
// exists.
package chunk

import (
	"iter"
	"unicode"
)

// Chunks returns a lazy sequence of substrings of text, each at most maxLen
// runes long, in left-to-right order. The concatenation of all produced
// chunks is exactly text: splitting never adds or removes characters.
//
// Within each window the splitter prefers, in order: a boundary after
// sentence-ending punctuation, after clause punctuation, after whitespace,
// and only then a hard cut at maxLen. A single word longer than maxLen is
// hard-cut rather than dropped. The sequence is restartable; ranging over it
// again re-splits from the beginning.
func Chunks(text string, maxLen int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		if maxLen < 1 {
			maxLen = 1
		}

		runes := []rune(text)
		for len(runes) > 0 {
			if len(runes) <= maxLen {
				yield(string(runes))
				return
			}

			cut := findCut(runes, maxLen)
			if !yield(string(runes[:cut])) {
				return
			}
			runes = runes[cut:]
		}
	}
}

// Split collects Chunks into a slice.
func Split(text string, maxLen int) []string {
	var chunks []string
	for c := range Chunks(text, maxLen) {
		chunks = append(chunks, c)
	}
	return chunks
}

// findCut picks the cut position (exclusive) for the next chunk within
// runes[:maxLen]. len(runes) > maxLen is the caller's invariant.
func findCut(runes []rune, maxLen int) int {
	// Boundaries in the left half of the window produce awkwardly short
	// chunks, so sentence and clause breaks are only taken past the midpoint.
	minCut := maxLen / 2

	var sentence, clause, space int

	for i := 0; i < maxLen; i++ {
		r := runes[i]
		switch {
		case isSentenceEnd(r):
			// Only the end of a punctuation run counts, so "?!" and "..."
			// stay together.
			if i+1 < len(runes) && isSentenceEnd(runes[i+1]) {
				continue
			}
			if e := extendBoundary(runes, i+1, maxLen); e > minCut && e > sentence {
				sentence = e
			}
		case isClause(r):
			if e := extendSpaces(runes, i+1, maxLen); e > minCut && e > clause {
				clause = e
			}
		case unicode.IsSpace(r):
			if e := extendSpaces(runes, i, maxLen); e > space {
				space = e
			}
		}
	}

	switch {
	case sentence > 0:
		return sentence
	case clause > 0:
		return clause
	case space > 0:
		return space
	default:
		// No acceptable boundary: hard cut. The rune slice keeps the cut off
		// any multi-byte sequence.
		return maxLen
	}
}

// extendBoundary advances past closing quotes or brackets and trailing
// whitespace after sentence punctuation, capped at maxLen.
func extendBoundary(runes []rune, from, maxLen int) int {
	i := from
	for i < maxLen && isClosing(runes[i]) {
		i++
	}
	return extendSpaces(runes, i, maxLen)
}

// extendSpaces advances past a whitespace run starting at from, capped at
// maxLen. Trailing whitespace belongs to the current chunk so the next chunk
// starts on a word.
func extendSpaces(runes []rune, from, maxLen int) int {
	i := from
	for i < maxLen && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClause(r rune) bool {
	return r == ',' || r == ';' || r == ':'
}

func isClosing(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == ']'
}
