package scripture

import (
	"fmt"
	"strconv"
	"strings"
)

// ContentNotFound is shown in place of a chapter that has no stored text.
const ContentNotFound = "（未找到章节内容）"

// Book is one canonical book of a version. Books are ordered by Number.
type Book struct {
	Number int    `json:"number"`
	Code   string `json:"code"` // OSIS abbreviation, e.g. "Gen"
	Name   string `json:"name"`
}

// Match is a chapter row returned by a content search, with its book joined in.
type Match struct {
	BookNumber int    `json:"book_number"`
	BookName   string `json:"book_name"`
	Reference  string `json:"reference"`
	Content    string `json:"content"`
}

// BookText is a book together with its chapter texts, used when building a version file.
type BookText struct {
	Book
	Chapters map[int]string
}

// ReferenceKey returns the chapter key "{code}.{chapter}".
func ReferenceKey(code string, chapter int) string {
	return fmt.Sprintf("%s.%d", code, chapter)
}

// ChapterNumber extracts the chapter number from a reference key. Anything
// unparsable yields 0.
func ChapterNumber(reference string) int {
	last := reference
	if i := strings.LastIndex(reference, "."); i >= 0 {
		last = reference[i+1:]
	}
	n, err := strconv.Atoi(last)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ChapterDisplayName is the label shown for a chapter; chapter 0 is the book introduction.
func ChapterDisplayName(chapter int) string {
	if chapter == 0 {
		return "简介"
	}
	return fmt.Sprintf("第 %d 章", chapter)
}
