package notes

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"scripture-reader/sqlitefile"
)

// Database provides the note tables on top of a SQLite connection. Tables
// are created on first save; reads from a missing table return no notes.
type Database struct {
	db  *sql.DB
	now func() time.Time
}

// OpenDatabase opens (or creates) the note store at dbPath.
func OpenDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create notes dir: %w", err)
		}
	}

	dsn, err := sqlitefile.DSN(dbPath, url.Values{"_busy_timeout": {"5000"}})
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	return &Database{db: db, now: time.Now}, nil
}

// Close closes the DB.
func (d *Database) Close() error { return d.db.Close() }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

const noteColumns = `id, book_num, book_name, chapter, verse_start, char_offset,
        title, keywords, reference, body, subject, version, created_at, updated_at`

func (d *Database) ensureTable(table string) error {
	_, err := d.db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id TEXT PRIMARY KEY,
            book_num INTEGER,
            book_name TEXT,
            chapter TEXT,
            verse_start INTEGER,
            char_offset INTEGER,
            title TEXT,
            keywords TEXT,
            reference TEXT,
            body TEXT,
            subject TEXT,
            version TEXT,
            created_at TEXT,
            updated_at TEXT
        );`, table))
	if err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

func (d *Database) hasTable(table string) (bool, error) {
	var exists bool
	err := d.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type='table' AND name=?)`, table).Scan(&exists)
	return exists, err
}

// ---------------------------------------------------------------------------
// CRUD helpers
// ---------------------------------------------------------------------------

// Save upserts note by id into its category's table. UpdatedAt is stamped
// with today's date; the CreatedAt of an existing row is kept. The stored
// note is returned.
func (d *Database) Save(note Note) (Note, error) {
	table, err := note.Category.table()
	if err != nil {
		return Note{}, err
	}
	if note.ID == "" {
		return Note{}, fmt.Errorf("%w: empty id", ErrInvalidPayload)
	}
	if err := d.ensureTable(table); err != nil {
		return Note{}, err
	}

	today := d.now().Format(DateLayout)
	if note.CreatedAt == "" {
		note.CreatedAt = today
	}
	note.UpdatedAt = today

	tx, err := d.db.Begin()
	if err != nil {
		return Note{}, err
	}
	defer tx.Rollback()

	var existing sql.NullString
	err = tx.QueryRow(fmt.Sprintf(`SELECT created_at FROM %s WHERE id=?`, table), note.ID).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return Note{}, err
	case existing.String != "":
		note.CreatedAt = existing.String
	}

	_, err = tx.Exec(fmt.Sprintf(`INSERT OR REPLACE INTO %s (%s) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, table, noteColumns),
		note.ID,
		nullInt(note.BookNumber),
		note.BookName,
		note.Chapter,
		note.VerseStart,
		nullInt(note.CharOffset),
		note.Title,
		note.Keywords,
		note.Reference,
		note.Body,
		note.Subject,
		note.Version,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return Note{}, fmt.Errorf("save note %s: %w", note.ID, err)
	}
	return note, tx.Commit()
}

// Delete removes a note by id. Deleting an absent note is not an error.
func (d *Database) Delete(category Category, id string) error {
	table, err := category.table()
	if err != nil {
		return err
	}
	ok, err := d.hasTable(table)
	if err != nil || !ok {
		return err
	}
	_, err = d.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id=?`, table), id)
	return err
}

// Get fetches a single note. sql.ErrNoRows is returned when it is absent.
func (d *Database) Get(category Category, id string) (Note, error) {
	notes, err := d.query(category, `id = ?`, []any{id})
	if err != nil {
		return Note{}, err
	}
	if len(notes) == 0 {
		return Note{}, sql.ErrNoRows
	}
	return notes[0], nil
}

// LoadForChapter returns the notes of a chapter in one version, most
// recently updated first. Categories other than CategoryVerseNotes only
// return chapter-scoped notes.
func (d *Database) LoadForChapter(category Category, version string, bookNumber int, chapter string) ([]Note, error) {
	cond := `book_num = ? AND chapter = ? AND version = ?`
	if category.chapterScoped() {
		cond += ` AND verse_start < 0`
	}
	return d.query(category, cond, []any{bookNumber, chapter, version})
}

// LoadAll returns every note of a category, most recently updated first.
func (d *Database) LoadAll(category Category) ([]Note, error) {
	return d.query(category, "", nil)
}

// Search returns the notes matching every term of q. An empty query
// behaves like LoadAll.
func (d *Database) Search(category Category, q Query) ([]Note, error) {
	cond, args := q.where()
	return d.query(category, cond, args)
}

func (d *Database) query(category Category, cond string, args []any) ([]Note, error) {
	table, err := category.table()
	if err != nil {
		return nil, err
	}
	ok, err := d.hasTable(table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Note{}, nil
	}

	sqlText := fmt.Sprintf(`SELECT %s FROM %s`, noteColumns, table)
	if cond != "" {
		sqlText += " WHERE " + cond
	}
	sqlText += ` ORDER BY COALESCE(NULLIF(updated_at, ''), created_at) DESC, rowid DESC`

	rows, err := d.db.Query(sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		n.Category = category
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanNote(rows *sql.Rows) (Note, error) {
	var (
		n                                 Note
		bookNum, verseStart, charOffset   sql.NullInt64
		bookName, chapter, title, keyword sql.NullString
		reference, body, subject, version sql.NullString
		createdAt, updatedAt              sql.NullString
	)
	err := rows.Scan(&n.ID, &bookNum, &bookName, &chapter, &verseStart, &charOffset,
		&title, &keyword, &reference, &body, &subject, &version, &createdAt, &updatedAt)
	if err != nil {
		return Note{}, err
	}
	n.BookNumber = intPtr(bookNum)
	n.BookName = bookName.String
	n.Chapter = chapter.String
	n.VerseStart = VerseUnset
	if verseStart.Valid {
		n.VerseStart = int(verseStart.Int64)
	}
	n.CharOffset = intPtr(charOffset)
	n.Title = title.String
	n.Keywords = keyword.String
	n.Reference = reference.String
	n.Body = body.String
	n.Subject = subject.String
	n.Version = version.String
	n.CreatedAt = createdAt.String
	n.UpdatedAt = updatedAt.String
	return n, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
