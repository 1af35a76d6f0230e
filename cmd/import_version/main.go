package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scripture-reader/reader"
	"scripture-reader/scripture"
)

func main() {
	if err := newImportCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var (
		dataDir string
		name    string
	)

	cmd := &cobra.Command{
		Use:   "import_version <source dir>",
		Short: "Build a version content file from plain-text chapters",
		Long: "The source directory holds books.tsv (ordinal, code and name separated by tabs)\n" +
			"and one {code}.{chapter}.txt file per chapter. Chapter 0 is the book introduction.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srcDir := args[0]
			if name == "" {
				name = filepath.Base(filepath.Clean(srcDir))
			}

			root, err := reader.DataRoot(dataDir)
			if err != nil {
				return err
			}
			cfg := reader.ConfigFor(root)
			if err := cfg.Prepare(); err != nil {
				return err
			}
			return importVersion(srcDir, filepath.Join(cfg.VersionsDir, name+".sqlite3"))
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "data root (default $"+reader.DataDirEnv+" or the user config dir)")
	cmd.Flags().StringVar(&name, "name", "", "version name (default the source directory name)")
	return cmd
}

func importVersion(srcDir, dest string) error {
	// Clean up any existing version file
	for _, file := range []string{dest, dest + "-shm", dest + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}

	books, err := readBooks(filepath.Join(srcDir, "books.tsv"))
	if err != nil {
		return err
	}
	fmt.Printf("Importing %d books from %s...\n", len(books), srcDir)

	texts := make([]scripture.BookText, 0, len(books))
	chapterCount := 0
	for _, b := range books {
		chapters, err := readChapters(srcDir, b.Code)
		if err != nil {
			return err
		}
		if len(chapters) == 0 {
			fmt.Printf("Warning: No chapters found for %s (%s)\n", b.Name, b.Code)
		}
		chapterCount += len(chapters)
		texts = append(texts, scripture.BookText{Book: b, Chapters: chapters})
	}

	if err := scripture.Build(dest, texts); err != nil {
		return err
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Version file: %s\n", dest)
	fmt.Printf("Books: %d, chapters: %d\n", len(books), chapterCount)

	db, err := scripture.OpenDatabase(dest)
	if err != nil {
		fmt.Printf("Error reopening version: %v\n", err)
		return nil
	}
	defer db.Close()

	imported, err := db.Books()
	if err != nil {
		fmt.Printf("Error retrieving books: %v\n", err)
		return nil
	}
	fmt.Printf("\n%-5s %-8s %-30s\n", "No.", "Code", "Name")
	fmt.Println(strings.Repeat("-", 45))
	for _, b := range imported {
		fmt.Printf("%-5d %-8s %-30s\n", b.Number, b.Code, b.Name)
	}
	return nil
}

// readBooks parses books.tsv. Blank lines and lines starting with # are skipped.
func readBooks(path string) ([]scripture.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book list: %w", err)
	}
	defer f.Close()

	var books []scripture.Book
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) != 3 {
			return nil, fmt.Errorf("%s:%d: want 3 columns, got %d", path, line, len(cols))
		}
		n, err := strconv.Atoi(strings.TrimSpace(cols[0]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: book number: %w", path, line, err)
		}
		books = append(books, scripture.Book{Number: n, Code: strings.TrimSpace(cols[1]), Name: strings.TrimSpace(cols[2])})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read book list: %w", err)
	}
	return books, nil
}

// readChapters loads every {code}.{n}.txt file in dir.
func readChapters(dir, code string) (map[int]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, code+".*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list chapters of %s: %w", code, err)
	}
	chapters := make(map[int]string, len(paths))
	for _, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), ".txt")
		n, err := strconv.Atoi(strings.TrimPrefix(base, code+"."))
		if err != nil {
			// not a chapter file, e.g. John.draft.txt
			continue
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		chapters[n] = strings.TrimRight(string(content), "\n")
	}
	return chapters, nil
}
