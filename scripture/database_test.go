package scripture

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleBooks() []BookText {
	return []BookText{
		{
			Book: Book{Number: 43, Code: "John", Name: "约翰福音"},
			Chapters: map[int]string{
				0: "约翰福音简介",
				1: "太初有道\n道与神同在",
				3: "神爱世人\n甚至将他的独生子赐给他们",
			},
		},
		{
			Book: Book{Number: 1, Code: "Gen", Name: "创世记"},
			Chapters: map[int]string{
				1:  "起初神创造天地",
				2:  "天地万物都造齐了",
				10: "挪亚的儿子",
			},
		},
		{
			Book:     Book{Number: 62, Code: "1John", Name: "约翰一书"},
			Chapters: map[int]string{4: "神就是爱"},
		},
	}
}

func tempVersion(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "和合本.sqlite3")
	if err := Build(path, sampleBooks()); err != nil {
		t.Fatalf("build: %v", err)
	}
	return path
}

func tempDB(t *testing.T) *Database {
	t.Helper()
	db, err := OpenDatabase(tempVersion(t))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBooksOrderedByNumber(t *testing.T) {
	db := tempDB(t)
	books, err := db.Books()
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	var got []int
	for _, b := range books {
		got = append(got, b.Number)
	}
	if want := []int{1, 43, 62}; !reflect.DeepEqual(got, want) {
		t.Fatalf("book order = %v, want %v", got, want)
	}
	if books[1].Code != "John" || books[1].Name != "约翰福音" {
		t.Fatalf("unexpected book: %+v", books[1])
	}
}

func TestChaptersNumericOrder(t *testing.T) {
	db := tempDB(t)

	got, err := db.Chapters(1)
	if err != nil {
		t.Fatalf("chapters: %v", err)
	}
	if want := []int{1, 2, 10}; !reflect.DeepEqual(got, want) {
		t.Fatalf("chapters = %v, want %v", got, want)
	}

	got, err = db.Chapters(43)
	if err != nil {
		t.Fatalf("chapters: %v", err)
	}
	if want := []int{0, 1, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("chapters = %v, want %v", got, want)
	}
}

// "John" must not pick up chapters of "1John".
func TestChaptersDoNotLeakAcrossSimilarCodes(t *testing.T) {
	db := tempDB(t)
	got, err := db.Chapters(62)
	if err != nil {
		t.Fatalf("chapters: %v", err)
	}
	if want := []int{4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("chapters = %v, want %v", got, want)
	}
}

func TestChapterContent(t *testing.T) {
	db := tempDB(t)
	content, err := db.ChapterContent(43, 3)
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if content != "神爱世人\n甚至将他的独生子赐给他们" {
		t.Fatalf("content = %q", content)
	}

	if _, err := db.ChapterContent(43, 99); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("missing chapter err = %v, want sql.ErrNoRows", err)
	}
	if _, err := db.ChapterContent(99, 1); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("missing book err = %v, want sql.ErrNoRows", err)
	}
}

func TestMatchChapters(t *testing.T) {
	db := tempDB(t)

	matches, err := db.MatchChapters("爱", "")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("want 2 matches, got %d", len(matches))
	}

	matches, err = db.MatchChapters("爱", "约翰福音")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(matches) != 1 || matches[0].Reference != "John.3" || matches[0].BookName != "约翰福音" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	// Book filters match every book sharing the substring.
	matches, err = db.MatchChapters("神", "约翰")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("want 3 matches, got %d", len(matches))
	}
}

func TestMatchChaptersIsLiteral(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kjv.sqlite3")
	err := Build(path, []BookText{{
		Book:     Book{Number: 1, Code: "Gen", Name: "Genesis"},
		Chapters: map[int]string{1: "In the beginning God created", 2: "100% pure"},
	}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	db, err := OpenDatabase(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if m, _ := db.MatchChapters("god", ""); len(m) != 0 {
		t.Fatalf("match should be case-sensitive, got %d", len(m))
	}
	if m, _ := db.MatchChapters("God", ""); len(m) != 1 {
		t.Fatalf("want 1 match, got %d", len(m))
	}
	if m, _ := db.MatchChapters("%", ""); len(m) != 1 || m[0].Reference != "Gen.2" {
		t.Fatalf("wildcards should be literal, got %+v", m)
	}
}

func TestOpenMissingVersion(t *testing.T) {
	_, err := OpenDatabase(filepath.Join(t.TempDir(), "nope.sqlite3"))
	if !errors.Is(err, ErrNoVersion) {
		t.Fatalf("err = %v, want ErrNoVersion", err)
	}
}

func TestOpenCorruptVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.sqlite3")
	if err := os.WriteFile(path, []byte("not a database at all"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := OpenDatabase(path); err == nil {
		t.Fatalf("expected error opening corrupt version")
	}
}

func TestChapterHelpers(t *testing.T) {
	tests := []struct {
		ref  string
		want int
	}{
		{"Gen.1", 1},
		{"Gen.0", 0},
		{"1John.12", 12},
		{"Gen.x", 0},
		{"Gen", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ChapterNumber(tt.ref); got != tt.want {
			t.Errorf("ChapterNumber(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}

	if got := ChapterDisplayName(0); got != "简介" {
		t.Errorf("ChapterDisplayName(0) = %q", got)
	}
	if got := ChapterDisplayName(3); got != "第 3 章" {
		t.Errorf("ChapterDisplayName(3) = %q", got)
	}
	if got := ReferenceKey("Gen", 5); got != "Gen.5" {
		t.Errorf("ReferenceKey = %q", got)
	}
}

func TestVersionUnderSpecialCharacterDirs(t *testing.T) {
	for _, dir := range []string{"my#data", "a?b", "50% off"} {
		t.Run(dir, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), dir, "和合本.sqlite3")
			if err := Build(path, sampleBooks()); err != nil {
				t.Fatalf("build: %v", err)
			}
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("version file not at %s: %v", path, err)
			}

			db, err := OpenDatabase(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer db.Close()
			content, err := db.ChapterContent(62, 4)
			if err != nil || content != "神就是爱" {
				t.Fatalf("content = %q, %v", content, err)
			}
		})
	}
}
