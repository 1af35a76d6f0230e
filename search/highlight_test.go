package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlightCaseInsensitive(t *testing.T) {
	spans := Highlight("abcABCabc", "abc")
	assert.Equal(t, []Span{
		{Match: true, Text: "abc"},
		{Match: true, Text: "ABC"},
		{Match: true, Text: "abc"},
	}, spans)
	assert.Equal(t, 3, Matches(spans))
}

func TestHighlightGapsAndRemainder(t *testing.T) {
	spans := Highlight("God so loved the world, god", "God")
	assert.Equal(t, []Span{
		{Match: true, Text: "God"},
		{Text: " so loved the world, "},
		{Match: true, Text: "god"},
	}, spans)

	spans = Highlight("xx love yy", "love")
	assert.Equal(t, []Span{
		{Text: "xx "},
		{Match: true, Text: "love"},
		{Text: " yy"},
	}, spans)
}

func TestHighlightNonOverlapping(t *testing.T) {
	spans := Highlight("aaaa", "aa")
	assert.Equal(t, []Span{{Match: true, Text: "aa"}, {Match: true, Text: "aa"}}, spans)

	spans = Highlight("aaa", "aa")
	assert.Equal(t, []Span{{Match: true, Text: "aa"}, {Text: "a"}}, spans)
}

func TestHighlightMultiByte(t *testing.T) {
	spans := Highlight("神爱世人，爱是恒久忍耐", "爱")
	assert.Equal(t, []Span{
		{Text: "神"},
		{Match: true, Text: "爱"},
		{Text: "世人，"},
		{Match: true, Text: "爱"},
		{Text: "是恒久忍耐"},
	}, spans)

	var joined strings.Builder
	for _, s := range spans {
		joined.WriteString(s.Text)
	}
	assert.Equal(t, "神爱世人，爱是恒久忍耐", joined.String())
}

func TestHighlightEdgeCases(t *testing.T) {
	assert.Nil(t, Highlight("", "x"))
	assert.Equal(t, []Span{{Text: "abc"}}, Highlight("abc", ""))
	assert.Equal(t, []Span{{Text: "abc"}}, Highlight("abc", "zzz"))
	assert.Equal(t, []Span{{Text: "ab"}}, Highlight("ab", "abc"))
}

func TestHighlightKeepsInvalidBytes(t *testing.T) {
	text := "a\xffb爱\xfe爱"
	spans := Highlight(text, "爱")
	assert.Equal(t, []Span{
		{Text: "a\xffb"},
		{Match: true, Text: "爱"},
		{Text: "\xfe"},
		{Match: true, Text: "爱"},
	}, spans)

	var joined strings.Builder
	for _, s := range spans {
		joined.WriteString(s.Text)
	}
	assert.Equal(t, text, joined.String())
}
