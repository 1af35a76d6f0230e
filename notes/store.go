package notes

import (
	"log/slog"
)

// Store is the note store as the reader sees it: every failure is logged
// and turned into an empty result or a no-op.
type Store struct {
	db  *Database
	log *slog.Logger
}

// OpenStore opens the note store at path. If it cannot be opened the store
// still works but holds nothing.
func OpenStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := OpenDatabase(path)
	if err != nil {
		logger.Error("open note store", "path", path, "error", err)
		return &Store{log: logger}
	}
	return &Store{db: db, log: logger}
}

// NewStore wraps an already opened database.
func NewStore(db *Database, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger}
}

// Available reports whether the backing database is open.
func (s *Store) Available() bool { return s.db != nil }

// Close closes the backing database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores n and reports whether it was written.
func (s *Store) Save(n Note) (Note, bool) {
	if s.db == nil {
		return n, false
	}
	saved, err := s.db.Save(n)
	if err != nil {
		s.log.Error("save note", "id", n.ID, "category", n.Category, "error", err)
		return n, false
	}
	s.log.Info("note saved", "id", saved.ID, "category", saved.Category)
	return saved, true
}

// Delete removes a note and reports whether the delete ran.
func (s *Store) Delete(category Category, id string) bool {
	if s.db == nil {
		return false
	}
	if err := s.db.Delete(category, id); err != nil {
		s.log.Error("delete note", "id", id, "category", category, "error", err)
		return false
	}
	s.log.Info("note deleted", "id", id, "category", category)
	return true
}

// Get returns a note by id.
func (s *Store) Get(category Category, id string) (Note, bool) {
	if s.db == nil {
		return Note{}, false
	}
	n, err := s.db.Get(category, id)
	if err != nil {
		return Note{}, false
	}
	return n, true
}

// LoadForChapter lists the notes of a chapter.
func (s *Store) LoadForChapter(category Category, version string, bookNumber int, chapter string) []Note {
	if s.db == nil {
		return nil
	}
	notes, err := s.db.LoadForChapter(category, version, bookNumber, chapter)
	if err != nil {
		s.log.Warn("load chapter notes", "category", category, "version", version, "error", err)
		return nil
	}
	return notes
}

// LoadAll lists every note of a category.
func (s *Store) LoadAll(category Category) []Note {
	if s.db == nil {
		return nil
	}
	notes, err := s.db.LoadAll(category)
	if err != nil {
		s.log.Warn("load notes", "category", category, "error", err)
		return nil
	}
	return notes
}

// Search parses raw as a note query and runs it.
func (s *Store) Search(category Category, raw string) []Note {
	return s.Execute(category, ParseQuery(raw))
}

// Execute runs a parsed note query.
func (s *Store) Execute(category Category, q Query) []Note {
	if s.db == nil {
		return nil
	}
	notes, err := s.db.Search(category, q)
	if err != nil {
		s.log.Warn("search notes", "category", category, "error", err)
		return nil
	}
	return notes
}

// Apply carries out an editor's reply.
func (s *Store) Apply(a Action) bool {
	switch a.Kind {
	case ActionSave:
		if a.Note.Category == "" {
			a.Note.Category = CategoryNotes
		}
		_, ok := s.Save(a.Note)
		return ok
	case ActionDelete:
		category := a.Note.Category
		if category == "" {
			category = CategoryNotes
		}
		return s.Delete(category, a.Note.ID)
	default:
		s.log.Warn("unknown editor action", "action", a.Kind)
		return false
	}
}
