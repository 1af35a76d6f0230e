package scripture

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempSession(t *testing.T) *Session {
	t.Helper()
	dir := t.TempDir()
	if err := Build(filepath.Join(dir, "和合本.sqlite3"), sampleBooks()); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := Build(filepath.Join(dir, "kjv.db"), []BookText{{
		Book:     Book{Number: 1, Code: "Gen", Name: "Genesis"},
		Chapters: map[int]string{1: "In the beginning"},
	}}); err != nil {
		t.Fatalf("build: %v", err)
	}
	s := NewSession(dir, nil)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionSwitchVersions(t *testing.T) {
	s := tempSession(t)

	if !s.Open("和合本.sqlite3") {
		t.Fatalf("open first version failed")
	}
	if len(s.Books()) != 3 {
		t.Fatalf("want 3 books, got %d", len(s.Books()))
	}
	first := s.Database()

	// Re-opening the active version keeps the handle.
	if !s.Open("和合本.sqlite3") || s.Database() != first {
		t.Fatalf("reopen replaced the connection")
	}

	for i := 0; i < 5; i++ {
		if !s.Open("kjv.db") {
			t.Fatalf("open kjv failed")
		}
		if !s.Open("和合本.sqlite3") {
			t.Fatalf("open cuv failed")
		}
	}
	if !s.Open("kjv.db") {
		t.Fatalf("open kjv failed")
	}
	if got := s.Content(1, 1); got != "In the beginning" {
		t.Fatalf("stale read after switch: %q", got)
	}
}

func TestSessionMissingVersionIsEmpty(t *testing.T) {
	s := tempSession(t)
	if s.Open("missing.sqlite3") {
		t.Fatalf("open missing version should report false")
	}
	if s.Version() != "missing.sqlite3" {
		t.Fatalf("version = %q", s.Version())
	}
	if books := s.Books(); len(books) != 0 {
		t.Fatalf("want no books, got %d", len(books))
	}
	if chapters := s.Chapters(1); len(chapters) != 0 {
		t.Fatalf("want no chapters, got %d", len(chapters))
	}
	if got := s.Content(1, 1); got != ContentNotFound {
		t.Fatalf("content = %q, want placeholder", got)
	}
}

func TestSessionRejectsPathNames(t *testing.T) {
	s := tempSession(t)
	if s.Open("../和合本.sqlite3") {
		t.Fatalf("path traversal should not open")
	}
}

func TestSessionContentPlaceholder(t *testing.T) {
	s := tempSession(t)
	s.Open("和合本.sqlite3")
	if got := s.Content(43, 42); got != ContentNotFound {
		t.Fatalf("content = %q, want placeholder", got)
	}
	if got := s.Chapters(43); !reflect.DeepEqual(got, []int{0, 1, 3}) {
		t.Fatalf("chapters = %v", got)
	}
}

func TestSessionVersions(t *testing.T) {
	s := tempSession(t)
	if err := os.WriteFile(filepath.Join(s.Dir(), "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got := s.Versions()
	if want := []string{"和合本.sqlite3", "kjv.db"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("versions = %v, want %v", got, want)
	}

	missing := NewSession(filepath.Join(t.TempDir(), "none"), nil)
	if v := missing.Versions(); len(v) != 0 {
		t.Fatalf("want no versions, got %v", v)
	}
}
