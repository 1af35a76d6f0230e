// Package notes stores user annotations anchored to reading positions.
package notes

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// VerseUnset marks a note anchored to a whole chapter rather than a verse.
const VerseUnset = -1

// DateLayout is the precision of note timestamps.
const DateLayout = "2006-01-02"

var (
	ErrUnknownCategory = errors.New("unknown note category")
	ErrInvalidPayload  = errors.New("invalid note payload")
)

// Category is a partition of the note store. Each category lives in its own table.
type Category string

const (
	// CategoryNotes holds notes appended to chapters and listed globally.
	CategoryNotes Category = "notes"
	// CategoryVerseNotes holds notes anchored to individual verses of a version.
	CategoryVerseNotes Category = "verse_notes"
)

// categoryTables is the allow-list of categories and the tables backing them.
var categoryTables = map[Category]string{
	CategoryNotes:      "notes",
	CategoryVerseNotes: "verse_notes",
}

// Categories lists the known categories.
func Categories() []Category { return []Category{CategoryNotes, CategoryVerseNotes} }

// ParseCategory validates s against the known categories.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryTables[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

func (c Category) table() (string, error) {
	table, ok := categoryTables[c]
	if !ok {
		return "", ErrUnknownCategory
	}
	return table, nil
}

// chapterScoped reports whether chapter lookups in c only return notes
// without a verse anchor.
func (c Category) chapterScoped() bool { return c != CategoryVerseNotes }

// Note is one annotation. BookNumber and CharOffset are nil when unset.
type Note struct {
	ID         string   `json:"id"`
	Category   Category `json:"category,omitempty"`
	BookNumber *int     `json:"book_number,omitempty"`
	BookName   string   `json:"book_name,omitempty"`
	Chapter    string   `json:"chapter,omitempty"`
	VerseStart int      `json:"verse_start"`
	CharOffset *int     `json:"char_offset,omitempty"`
	Title      string   `json:"title,omitempty"`
	Subject    string   `json:"subject,omitempty"`
	Keywords   string   `json:"keywords,omitempty"`
	Reference  string   `json:"reference,omitempty"`
	Body       string   `json:"body,omitempty"`
	Version    string   `json:"version,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

// ChapterScoped reports whether the note is anchored to a chapter as a whole.
func (n Note) ChapterScoped() bool { return n.VerseStart < 0 }

// New returns an unsaved chapter-scoped note for the given position.
func New(version string, bookNumber int, bookName string, chapter int, now time.Time) Note {
	offset := 0
	book := bookNumber
	return Note{
		ID:         uuid.NewString(),
		Category:   CategoryNotes,
		BookNumber: &book,
		BookName:   bookName,
		Chapter:    strconv.Itoa(chapter),
		VerseStart: VerseUnset,
		CharOffset: &offset,
		Version:    version,
		CreatedAt:  now.Format(DateLayout),
	}
}
