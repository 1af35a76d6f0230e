package scripture

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"scripture-reader/sqlitefile"
)

// ErrNoVersion is returned when a version file is absent.
var ErrNoVersion = errors.New("version not found")

// Database provides read access to one version content file.
type Database struct {
	db   *sql.DB
	path string

	bookStmt    *sql.Stmt
	chapterStmt *sql.Stmt
	contentStmt *sql.Stmt
}

// OpenDatabase opens the version file at path read-only. A missing file is
// reported as ErrNoVersion; a file without the expected tables fails while
// preparing statements.
func OpenDatabase(path string) (*Database, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoVersion, path)
		}
		return nil, fmt.Errorf("stat version: %w", err)
	}

	dsn, err := sqlitefile.DSN(path, url.Values{"mode": {"ro"}, "_busy_timeout": {"5000"}})
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One reader on one UI thread.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping version: %w", err)
	}

	database := &Database{db: db, path: path}
	if err := database.prepareStatements(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	for _, stmt := range []*sql.Stmt{d.bookStmt, d.chapterStmt, d.contentStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return d.db.Close()
}

// Path is the file this database was opened from.
func (d *Database) Path() string { return d.path }

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.bookStmt, err = d.db.Prepare(`SELECT number, osis, human FROM books WHERE number=?`); err != nil {
		return fmt.Errorf("prepare books: %w", err)
	}
	if d.chapterStmt, err = d.db.Prepare(`SELECT reference_osis FROM chapters WHERE substr(reference_osis, 1, length(?1) + 1) = ?1 || '.'`); err != nil {
		return fmt.Errorf("prepare chapters: %w", err)
	}
	if d.contentStmt, err = d.db.Prepare(`SELECT content FROM chapters WHERE reference_osis=?`); err != nil {
		return fmt.Errorf("prepare content: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Books lists every book ordered by number.
func (d *Database) Books() ([]Book, error) {
	rows, err := d.db.Query(`SELECT number, osis, human FROM books ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.Number, &b.Code, &b.Name); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Book fetches a single book by number.
func (d *Database) Book(number int) (Book, error) {
	var b Book
	if err := d.bookStmt.QueryRow(number).Scan(&b.Number, &b.Code, &b.Name); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Chapters returns the chapter numbers of a book in ascending order, so the
// introduction (0) comes first.
func (d *Database) Chapters(bookNumber int) ([]int, error) {
	book, err := d.Book(bookNumber)
	if err != nil {
		return nil, err
	}

	rows, err := d.chapterStmt.Query(book.Code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []int
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		chapters = append(chapters, ChapterNumber(ref))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Ints(chapters)
	return chapters, nil
}

// ChapterContent returns the stored text of a chapter. sql.ErrNoRows is
// returned when either the book or the chapter is absent.
func (d *Database) ChapterContent(bookNumber, chapter int) (string, error) {
	book, err := d.Book(bookNumber)
	if err != nil {
		return "", err
	}
	var content string
	if err := d.contentStmt.QueryRow(ReferenceKey(book.Code, chapter)).Scan(&content); err != nil {
		return "", err
	}
	return content, nil
}

// MatchChapters returns every chapter whose content contains content, joined
// with its book. If book is non-empty the book's human name must contain it as
// well. Both are literal, case-sensitive substring tests. Rows come back in
// storage order; callers sort.
func (d *Database) MatchChapters(content, book string) ([]Match, error) {
	query := `
        SELECT b.number, b.human, c.reference_osis, c.content
        FROM chapters c
        JOIN books b ON substr(c.reference_osis, 1, length(b.osis) + 1) = b.osis || '.'
        WHERE instr(c.content, ?) > 0`
	args := []any{content}
	if book != "" {
		query += ` AND instr(b.human, ?) > 0`
		args = append(args, book)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.BookNumber, &m.BookName, &m.Reference, &m.Content); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ---------------------------------------------------------------------------
// Building version files
// ---------------------------------------------------------------------------

// Build writes a version content file at path containing books. Existing rows
// with the same keys are replaced.
func Build(path string, books []BookText) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create version dir: %w", err)
		}
	}

	dsn, err := sqlitefile.DSN(path, url.Values{"_busy_timeout": {"5000"}})
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            number INTEGER PRIMARY KEY,
            osis TEXT NOT NULL UNIQUE,
            human TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS chapters (
            reference_osis TEXT PRIMARY KEY,
            content TEXT NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	for _, b := range books {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO books(number, osis, human) VALUES(?,?,?)`, b.Number, b.Code, b.Name); err != nil {
			return fmt.Errorf("insert book %s: %w", b.Code, err)
		}
		for ch, text := range b.Chapters {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO chapters(reference_osis, content) VALUES(?,?)`, ReferenceKey(b.Code, ch), text); err != nil {
				return fmt.Errorf("insert chapter %s: %w", ReferenceKey(b.Code, ch), err)
			}
		}
	}
	return tx.Commit()
}
