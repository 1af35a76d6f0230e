// Package search parses reader queries, runs them against a version's
// chapters and splits text into highlight spans.
//
// Matching is a full scan over stored chapter text on every query. There is
// no index, no cancellation and no time bound; a query is expected to finish
// within one UI update on corpora the size of a single version.
package search

import (
	"strings"
	"unicode/utf8"
)

// querySeparators split an optional book filter from the content filter.
const querySeparators = ":：&"

// Query is a parsed search: an optional book-name filter and the content
// filter. Both are literal substrings.
type Query struct {
	Book    string `json:"book"`
	Content string `json:"content"`
}

// Empty reports whether the query can match nothing.
func (q Query) Empty() bool { return q.Content == "" }

// ParseQuery splits raw at the first separator (':', '：' or '&'). Text before
// it is the book filter and text after it the content filter. Without a
// separator the whole of raw is the content filter.
func ParseQuery(raw string) Query {
	i := strings.IndexAny(raw, querySeparators)
	if i < 0 {
		return Query{Content: strings.TrimSpace(raw)}
	}
	_, sepLen := utf8.DecodeRuneInString(raw[i:])
	return Query{
		Book:    strings.TrimSpace(raw[:i]),
		Content: strings.TrimSpace(raw[i+sepLen:]),
	}
}
