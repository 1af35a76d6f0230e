package scripture

import (
	"database/sql"
	"errors"
	"log/slog"
)

// Session owns the connection to the active version. Switching versions
// closes the previous connection before the next one is opened. Failures are
// logged and degrade to empty results; a Session is always usable.
type Session struct {
	dir     string
	version string
	db      *Database
	log     *slog.Logger
}

// NewSession creates a session over the version files in dir. No version is open yet.
func NewSession(dir string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{dir: dir, log: logger}
}

// Dir is the directory holding the version files.
func (s *Session) Dir() string { return s.dir }

// Version is the name of the active version, or "" before the first Open.
func (s *Session) Version() string { return s.version }

// Database is the open connection, or nil when the active version could not be opened.
func (s *Session) Database() *Database { return s.db }

// Versions lists the available versions; an unreadable directory yields none.
func (s *Session) Versions() []string {
	versions, err := ListVersions(s.dir)
	if err != nil {
		s.log.Warn("list versions", "dir", s.dir, "error", err)
		return nil
	}
	return versions
}

// Open makes version the active one and reports whether its content is
// readable. Re-opening the active version keeps the existing connection.
func (s *Session) Open(version string) bool {
	if version == s.version && s.db != nil {
		return true
	}
	s.closeDB()
	s.version = version

	path, err := versionPath(s.dir, version)
	if err != nil {
		s.log.Warn("open version", "version", version, "error", err)
		return false
	}
	db, err := OpenDatabase(path)
	if err != nil {
		s.log.Warn("open version", "version", version, "error", err)
		return false
	}
	s.db = db
	s.log.Debug("version opened", "version", version)
	return true
}

// Close releases the active connection.
func (s *Session) Close() error {
	err := s.closeDB()
	s.version = ""
	return err
}

func (s *Session) closeDB() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		s.log.Warn("close version", "version", s.version, "error", err)
	}
	return err
}

// Books lists the books of the active version.
func (s *Session) Books() []Book {
	if s.db == nil {
		return nil
	}
	books, err := s.db.Books()
	if err != nil {
		s.log.Warn("load books", "version", s.version, "error", err)
		return nil
	}
	return books
}

// Chapters lists the chapter numbers of book in the active version.
func (s *Session) Chapters(book int) []int {
	if s.db == nil {
		return nil
	}
	chapters, err := s.db.Chapters(book)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("load chapters", "version", s.version, "book", book, "error", err)
		}
		return nil
	}
	return chapters
}

// Content returns the text of a chapter, or ContentNotFound.
func (s *Session) Content(book, chapter int) string {
	if s.db == nil {
		return ContentNotFound
	}
	content, err := s.db.ChapterContent(book, chapter)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("load chapter", "version", s.version, "book", book, "chapter", chapter, "error", err)
		}
		return ContentNotFound
	}
	return content
}
