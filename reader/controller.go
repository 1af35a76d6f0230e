// Package reader ties the version session, navigation history, search
// engine and note store together behind the operations a reader UI needs.
package reader

import (
	"log/slog"
	"slices"
	"strconv"
	"time"

	"scripture-reader/navigation"
	"scripture-reader/notes"
	"scripture-reader/scripture"
	"scripture-reader/search"
)

// Controller owns the current reading position. Every explicit navigation
// records the position being left before moving; Back and Forward do not.
// Nothing it does returns an error: failures are logged and show up as
// empty lists or placeholder text.
type Controller struct {
	cfg     Config
	session *scripture.Session
	history navigation.History
	engine  *search.Engine
	notes   *notes.Store
	log     *slog.Logger
	now     func() time.Time

	current   navigation.Position
	books     []scripture.Book
	chapters  []int
	content   string
	highlight string

	highlightOn bool
	notesHidden bool
}

// New opens the note store and prepares a session over cfg.VersionsDir. No
// version is loaded until Start.
func New(cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		cfg:     cfg,
		session: scripture.NewSession(cfg.VersionsDir, logger),
		engine:  search.NewEngine(logger),
		notes:   notes.OpenStore(cfg.NotesPath, logger),
		log:     logger,
		now:     time.Now,
	}
}

// Close releases the version connection and the note store.
func (c *Controller) Close() error {
	serr := c.session.Close()
	nerr := c.notes.Close()
	if serr != nil {
		return serr
	}
	return nerr
}

// Start loads the preferred version, or the first one available. It does
// not touch the history.
func (c *Controller) Start() {
	versions := c.session.Versions()
	if len(versions) == 0 {
		c.log.Warn("no versions found", "dir", c.session.Dir())
		return
	}
	version := versions[0]
	for _, v := range versions {
		if v == c.cfg.PreferredVersion || scripture.DisplayName(v) == c.cfg.PreferredVersion {
			version = v
			break
		}
	}
	c.loadVersion(version)
}

// ---------------------------------------------------------------------------
// State
// ---------------------------------------------------------------------------

func (c *Controller) Position() navigation.Position { return c.current }
func (c *Controller) Versions() []string            { return c.session.Versions() }
func (c *Controller) Books() []scripture.Book       { return c.books }
func (c *Controller) Chapters() []int               { return c.chapters }
func (c *Controller) Content() string               { return c.content }
func (c *Controller) History() *navigation.History  { return &c.history }
func (c *Controller) NoteStore() *notes.Store       { return c.notes }

// BookName is the human name of the current book, or "".
func (c *Controller) BookName() string {
	for _, b := range c.books {
		if b.Number == c.current.Book {
			return b.Name
		}
	}
	return ""
}

// Highlighted splits the current content around the search term that led
// here. It is nil unless the chapter was opened from a search result and
// highlighting is on.
func (c *Controller) Highlighted() []search.Span {
	if c.highlight == "" || !c.highlightOn {
		return nil
	}
	return search.Highlight(c.content, c.highlight)
}

// SetHighlight turns highlighting of the current search term on or off and
// reports whether there is a term to highlight. Opening a search result
// turns it back on.
func (c *Controller) SetHighlight(on bool) bool {
	c.highlightOn = on
	return c.highlight != ""
}

// NotesVisible reports whether chapter notes are shown with the content.
func (c *Controller) NotesVisible() bool { return !c.notesHidden }

// SetNotesVisible shows or hides chapter notes under the content.
func (c *Controller) SetNotesVisible(on bool) { c.notesHidden = !on }

// ---------------------------------------------------------------------------
// Navigation
// ---------------------------------------------------------------------------

// SwitchVersion changes the version, keeping the current book and chapter
// when the new version has them.
func (c *Controller) SwitchVersion(version string) {
	c.history.Record(c.current)
	c.loadVersion(version)
}

// SelectBook opens the first chapter of book.
func (c *Controller) SelectBook(book int) {
	c.history.Record(c.current)
	c.highlight = ""
	c.current.Book = book
	c.chapters = c.session.Chapters(book)
	if len(c.chapters) == 0 {
		c.current.Chapter = 0
		c.content = ""
		return
	}
	c.current.Chapter = c.chapters[0]
	c.content = c.session.Content(book, c.current.Chapter)
}

// SelectChapter opens a chapter.
func (c *Controller) SelectChapter(book, chapter int) {
	c.history.Record(c.current)
	c.highlight = ""
	if book != c.current.Book {
		c.chapters = c.session.Chapters(book)
	}
	c.current.Book = book
	c.current.Chapter = chapter
	c.content = c.session.Content(book, chapter)
}

// Back returns to the previous position, reporting whether there was one.
func (c *Controller) Back() bool {
	pos, ok := c.history.Back(c.current)
	if ok {
		c.apply(pos)
	}
	return ok
}

// Forward undoes a Back.
func (c *Controller) Forward() bool {
	pos, ok := c.history.Forward(c.current)
	if ok {
		c.apply(pos)
	}
	return ok
}

func (c *Controller) apply(pos navigation.Position) {
	if pos.Version != c.session.Version() {
		c.session.Open(pos.Version)
		c.books = c.session.Books()
		c.engine.Reset()
	}
	c.highlight = ""
	c.current = pos
	c.chapters = c.session.Chapters(pos.Book)
	c.content = c.session.Content(pos.Book, pos.Chapter)
}

func (c *Controller) loadVersion(version string) {
	c.engine.Reset()
	c.highlight = ""

	c.session.Open(version)
	c.current.Version = version
	c.books = c.session.Books()

	if !slices.ContainsFunc(c.books, func(b scripture.Book) bool { return b.Number == c.current.Book }) {
		c.current.Book = 0
		if len(c.books) > 0 {
			c.current.Book = c.books[0].Number
		}
	}
	if c.current.Book == 0 {
		c.chapters = nil
		c.current.Chapter = 0
		c.content = ""
		return
	}

	c.chapters = c.session.Chapters(c.current.Book)
	if !slices.Contains(c.chapters, c.current.Chapter) && len(c.chapters) > 0 {
		c.current.Chapter = c.chapters[0]
	}
	c.content = c.session.Content(c.current.Book, c.current.Chapter)
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

// Search runs raw against the current version.
func (c *Controller) Search(raw string) []search.Result {
	var src search.Source
	if db := c.session.Database(); db != nil {
		src = db
	}
	return c.engine.Search(src, raw)
}

// Results are the results of the last search.
func (c *Controller) Results() []search.Result { return c.engine.Results() }

// OpenResult opens the i-th result of the last search with the content
// that was searched, highlighting the content filter.
func (c *Controller) OpenResult(i int) bool {
	results := c.engine.Results()
	if i < 0 || i >= len(results) {
		return false
	}
	r := results[i]

	c.history.Record(c.current)
	if r.BookNumber != c.current.Book {
		c.chapters = c.session.Chapters(r.BookNumber)
	}
	c.current.Book = r.BookNumber
	c.current.Chapter = r.Chapter
	if content, ok := c.engine.Cached(r.BookNumber, r.Chapter); ok {
		c.content = content
	} else {
		c.content = c.session.Content(r.BookNumber, r.Chapter)
	}
	c.highlight = c.engine.Query().Content
	c.highlightOn = true
	return true
}

// ---------------------------------------------------------------------------
// Notes
// ---------------------------------------------------------------------------

// ChapterNotes lists the notes appended to the current chapter.
func (c *Controller) ChapterNotes() []notes.Note {
	if !c.current.Valid() {
		return nil
	}
	return c.notes.LoadForChapter(notes.CategoryNotes, c.current.Version, c.current.Book, strconv.Itoa(c.current.Chapter))
}

// NewNote starts a note on the current chapter. It is not saved.
func (c *Controller) NewNote() notes.Note {
	return notes.New(c.current.Version, c.current.Book, c.BookName(), c.current.Chapter, c.now())
}

// EditNote prepares the hand-off of n to the editor. A note that cannot be
// serialized is logged and no request is produced.
func (c *Controller) EditNote(n notes.Note) (notes.EditRequest, bool) {
	req, err := notes.RequestEdit(n)
	if err != nil {
		c.log.Error("prepare note editor", "id", n.ID, "error", err)
		return notes.EditRequest{}, false
	}
	return req, true
}

// SearchNotes runs a note query over the global note list.
func (c *Controller) SearchNotes(raw string) []notes.Note {
	return c.notes.Search(notes.CategoryNotes, raw)
}
