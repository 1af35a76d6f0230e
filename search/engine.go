package search

import (
	"log/slog"
	"sort"
	"strings"

	"scripture-reader/scripture"
)

// Source yields the chapters matching a content filter and optional book filter.
// *scripture.Database implements it.
type Source interface {
	MatchChapters(content, book string) ([]scripture.Match, error)
}

// Result is one matching chapter.
type Result struct {
	BookNumber int    `json:"book_number"`
	BookName   string `json:"book_name"`
	Chapter    int    `json:"chapter"`
	Snippet    string `json:"snippet"`
}

type cacheKey struct {
	book    int
	chapter int
}

// Engine runs queries and keeps the full text of every chapter it matched,
// so opening a result shows exactly the text that was searched.
type Engine struct {
	query   Query
	results []Result
	cache   map[cacheKey]string
	log     *slog.Logger
}

// NewEngine returns an engine with an empty cache.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cache: make(map[cacheKey]string), log: logger}
}

// Search parses raw and executes it against src.
func (e *Engine) Search(src Source, raw string) []Result {
	return e.Execute(src, ParseQuery(raw))
}

// Execute replaces the previous results and cache with those of q. Results
// are ordered by book number, then chapter number. A failing source is
// logged and yields no results.
func (e *Engine) Execute(src Source, q Query) []Result {
	e.Reset()
	e.query = q
	if q.Empty() || src == nil {
		return nil
	}

	matches, err := src.MatchChapters(q.Content, q.Book)
	if err != nil {
		e.log.Error("search failed", "book", q.Book, "content", q.Content, "error", err)
		return nil
	}

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		ch := scripture.ChapterNumber(m.Reference)
		results = append(results, Result{
			BookNumber: m.BookNumber,
			BookName:   m.BookName,
			Chapter:    ch,
			Snippet:    Snippet(m.Content, q.Content),
		})
		key := cacheKey{m.BookNumber, ch}
		if _, ok := e.cache[key]; !ok {
			e.cache[key] = m.Content
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].BookNumber != results[j].BookNumber {
			return results[i].BookNumber < results[j].BookNumber
		}
		return results[i].Chapter < results[j].Chapter
	})

	e.results = results
	return results
}

// Query is the last executed query.
func (e *Engine) Query() Query { return e.query }

// Results are the results of the last executed query.
func (e *Engine) Results() []Result { return e.results }

// Cached returns the content captured for a chapter by the last query.
func (e *Engine) Cached(book, chapter int) (string, bool) {
	content, ok := e.cache[cacheKey{book, chapter}]
	return content, ok
}

// Reset drops the last query, its results and the content cache.
func (e *Engine) Reset() {
	e.query = Query{}
	e.results = nil
	clear(e.cache)
}

// Snippet returns the first line of content containing needle, or the whole
// content when no single line does.
func Snippet(content, needle string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, needle) {
			return strings.TrimRight(line, "\r")
		}
	}
	return content
}
