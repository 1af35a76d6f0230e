package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw  string
		want Query
	}{
		{"约翰福音:爱", Query{Book: "约翰福音", Content: "爱"}},
		{"爱", Query{Content: "爱"}},
		{"约翰福音：爱", Query{Book: "约翰福音", Content: "爱"}},
		{" 创世记 & 起初 ", Query{Book: "创世记", Content: "起初"}},
		{"  神爱世人  ", Query{Content: "神爱世人"}},
		{"John:love:one another", Query{Book: "John", Content: "love:one another"}},
		{"约翰福音:", Query{Book: "约翰福音"}},
		{"", Query{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseQuery(tt.raw), "raw %q", tt.raw)
	}
}

func TestQueryEmpty(t *testing.T) {
	assert.True(t, ParseQuery("约翰福音:").Empty())
	assert.True(t, ParseQuery("   ").Empty())
	assert.False(t, ParseQuery("爱").Empty())
}
