package search

import (
	"unicode"
	"unicode/utf8"
)

// Span is a run of text that either matches the highlighted needle or not.
type Span struct {
	Match bool   `json:"match"`
	Text  string `json:"text"`
}

// Highlight splits text into alternating runs around case-insensitive,
// non-overlapping occurrences of needle. Text is scanned rune by rune and
// spans are slices of the original bytes, so they never split a multi-byte
// character and always join back to text, invalid UTF-8 included. Empty
// runs are not emitted.
func Highlight(text, needle string) []Span {
	if text == "" {
		return nil
	}
	if needle == "" {
		return []Span{{Text: text}}
	}

	pat := fold(needle)

	var spans []Span
	start := 0
	for i := 0; i < len(text); {
		end, ok := matchAt(text, i, pat)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		if i > start {
			spans = append(spans, Span{Text: text[start:i]})
		}
		spans = append(spans, Span{Match: true, Text: text[i:end]})
		i, start = end, end
	}
	if start < len(text) {
		spans = append(spans, Span{Text: text[start:]})
	}
	return spans
}

// Matches counts the match spans in spans.
func Matches(spans []Span) int {
	n := 0
	for _, s := range spans {
		if s.Match {
			n++
		}
	}
	return n
}

// matchAt reports whether pat matches text at byte offset i and returns the
// offset just past the match.
func matchAt(text string, i int, pat []rune) (int, bool) {
	for _, p := range pat {
		if i >= len(text) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.ToLower(r) != p {
			return 0, false
		}
		i += size
	}
	return i, true
}

func fold(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return out
}
