// Package highlight anchors model-returned quotes in the essay text and
// partitions the text into renderable segments.
package highlight

import "strings"

// Match is a located quote: a byte offset into the essay plus the length
// of the matched characters. Offsets always point at characters that
// actually exist in the text, so slicing text[Start:Start+Length] yields
// the matched passage.
type Match struct {
	Start  int
	Length int
}

// End returns the exclusive end offset of the match.
func (m Match) End() int { return m.Start + m.Length }

// matcher is one strategy for finding a quote in the text. It returns the
// leftmost offset and the exact substring that was matched, or -1 when the
// strategy fails. Strategies are tried in order; the first hit wins.
type matcher func(text, quote string) (int, string)

func exactMatch(text, quote string) (int, string) {
	return strings.Index(text, quote), quote
}

func trimmedMatch(text, quote string) (int, string) {
	trimmed := strings.TrimSpace(quote)
	if trimmed == "" {
		return -1, ""
	}
	return strings.Index(text, trimmed), trimmed
}

// matchers is the ordered strategy chain. Deliberately shallow: anything
// fuzzier than whitespace trimming risks anchoring feedback to a passage
// the model never quoted.
var matchers = []matcher{exactMatch, trimmedMatch}

// Locate finds the leftmost occurrence of quote in text. The second return
// is false when the quote is empty or cannot be found by any strategy.
// Multiple occurrences are not disambiguated; the first one is taken.
func Locate(text, quote string) (Match, bool) {
	if text == "" || quote == "" {
		return Match{}, false
	}
	for _, m := range matchers {
		if idx, matched := m(text, quote); idx != -1 {
			return Match{Start: idx, Length: len(matched)}, true
		}
	}
	return Match{}, false
}
