package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"scripture-reader/notes"
	"scripture-reader/reader"
	"scripture-reader/scripture"
	"scripture-reader/search"
)

const (
	highlightOn  = "\033[1;31m"
	highlightOff = "\033[0m"
)

func runREPL(ctl *reader.Controller, dataDir string) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fmt.Println("Welcome to the Scripture Reader!")
	fmt.Println("Available commands:")
	fmt.Println("  Versions: list versions, switch version")
	fmt.Println("  Reading: list books, open book, list chapters, open chapter, read")
	fmt.Println("  History: back, forward, history")
	fmt.Println("  Search: search, open result, highlight on|off")
	fmt.Println("  Notes: notes, notes on|off, add note, edit note, delete note, list notes, search notes")
	fmt.Println("  System: exit")
	fmt.Println()
	fmt.Println("Tips:")
	fmt.Println("  • Search with 'book:text' to limit results to matching books, e.g. 约翰福音:爱")
	fmt.Println("  • Search notes with 'title:x; keyword:y'; fields are title, content, keyword, subject")

	printPosition(ctl)

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "list versions":
			handleListVersions(ctl)
		case "switch version":
			handleSwitchVersion(scanner, ctl)
		case "list books":
			handleListBooks(ctl)
		case "open book":
			handleOpenBook(scanner, ctl)
		case "list chapters":
			handleListChapters(ctl)
		case "open chapter":
			handleOpenChapter(scanner, ctl)
		case "read":
			printChapter(ctl)
		case "back":
			if !ctl.Back() {
				fmt.Println("Nothing to go back to.")
				continue
			}
			printPosition(ctl)
		case "forward":
			if !ctl.Forward() {
				fmt.Println("Nothing to go forward to.")
				continue
			}
			printPosition(ctl)
		case "history":
			handleHistory(ctl)
		case "search":
			handleSearch(scanner, ctl)
		case "open result":
			handleOpenResult(scanner, ctl)
		case "highlight on", "highlight off":
			if !ctl.SetHighlight(cmd == "highlight on") {
				fmt.Println("Nothing to highlight. Open a search result first.")
				continue
			}
			printChapter(ctl)
		case "notes":
			printNotes(ctl.ChapterNotes())
		case "notes on", "notes off":
			ctl.SetNotesVisible(cmd == "notes on")
			printChapter(ctl)
		case "add note":
			if !ctl.Position().Valid() {
				fmt.Println("Open a chapter before adding a note.")
				continue
			}
			launchEditor(ctl, ctl.NewNote(), dataDir)
		case "edit note":
			handleEditNote(scanner, ctl, dataDir)
		case "delete note":
			handleDeleteNote(scanner, ctl)
		case "list notes":
			printNotes(ctl.NoteStore().LoadAll(notes.CategoryNotes))
		case "search notes":
			handleSearchNotes(scanner, ctl)
		case "exit":
			fmt.Println("Goodbye!")
			return
		case "":
			continue
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func handleListVersions(ctl *reader.Controller) {
	versions := ctl.Versions()
	if len(versions) == 0 {
		fmt.Println("No versions installed.")
		return
	}
	current := ctl.Position().Version
	for i, v := range versions {
		marker := " "
		if v == current {
			marker = "*"
		}
		fmt.Printf("%s %-3d %s\n", marker, i+1, scripture.DisplayName(v))
	}
}

func handleSwitchVersion(sc *bufio.Scanner, ctl *reader.Controller) {
	fmt.Print("Version (number or name): ")
	if !sc.Scan() {
		return
	}
	input := strings.TrimSpace(sc.Text())
	versions := ctl.Versions()

	version := ""
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(versions) {
		version = versions[n-1]
	} else {
		for _, v := range versions {
			if v == input || scripture.DisplayName(v) == input {
				version = v
				break
			}
		}
	}
	if version == "" {
		fmt.Printf("Unknown version: %s\n", input)
		return
	}

	ctl.SwitchVersion(version)
	printPosition(ctl)
}

func handleListBooks(ctl *reader.Controller) {
	books := ctl.Books()
	if len(books) == 0 {
		fmt.Println("No books in this version.")
		return
	}
	fmt.Printf("%-5s %-8s %s\n", "No.", "Code", "Name")
	fmt.Println(strings.Repeat("-", separatorWidth()/2))
	for _, b := range books {
		fmt.Printf("%-5d %-8s %s\n", b.Number, b.Code, b.Name)
	}
}

func handleOpenBook(sc *bufio.Scanner, ctl *reader.Controller) {
	fmt.Print("Book (number or name): ")
	if !sc.Scan() {
		return
	}
	book, ok := resolveBook(ctl, strings.TrimSpace(sc.Text()))
	if !ok {
		fmt.Println("Unknown book.")
		return
	}
	ctl.SelectBook(book)
	printPosition(ctl)
}

func handleListChapters(ctl *reader.Controller) {
	chapters := ctl.Chapters()
	if len(chapters) == 0 {
		fmt.Println("No chapters.")
		return
	}
	names := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		names = append(names, scripture.ChapterDisplayName(ch))
	}
	fmt.Printf("%s: %s\n", ctl.BookName(), strings.Join(names, ", "))
}

func handleOpenChapter(sc *bufio.Scanner, ctl *reader.Controller) {
	fmt.Print("Chapter: ")
	if !sc.Scan() {
		return
	}
	input := strings.TrimSpace(sc.Text())
	ch, err := strconv.Atoi(input)
	if err != nil {
		fmt.Printf("Invalid chapter: %s\n", input)
		return
	}
	if !ctl.Position().Valid() {
		fmt.Println("Open a book first.")
		return
	}
	ctl.SelectChapter(ctl.Position().Book, ch)
	printChapter(ctl)
}

func handleHistory(ctl *reader.Controller) {
	h := ctl.History()
	fmt.Printf("Back (%d):\n", len(h.BackStack()))
	for _, p := range h.BackStack() {
		fmt.Printf("  %s\n", p)
	}
	fmt.Printf("Forward (%d):\n", len(h.ForwardStack()))
	for _, p := range h.ForwardStack() {
		fmt.Printf("  %s\n", p)
	}
}

func handleSearch(sc *bufio.Scanner, ctl *reader.Controller) {
	fmt.Print("Query: ")
	if !sc.Scan() {
		return
	}
	query := strings.TrimSpace(sc.Text())

	results := ctl.Search(query)
	if len(results) == 0 {
		fmt.Printf("No chapters found matching '%s'.\n", query)
		return
	}

	needle := search.ParseQuery(query).Content
	version := scripture.DisplayName(ctl.Position().Version)
	fmt.Printf("Found %d chapter(s) matching '%s':\n", len(results), query)
	width := separatorWidth()
	for i, r := range results {
		head := fmt.Sprintf("%-4d %s %s %d: ", i+1, version, r.BookName, r.Chapter)
		fmt.Println(head + renderSpans(search.Highlight(truncateString(r.Snippet, width-len([]rune(head))), needle)))
	}
}

func handleOpenResult(sc *bufio.Scanner, ctl *reader.Controller) {
	if len(ctl.Results()) == 0 {
		fmt.Println("No search results. Use 'search' first.")
		return
	}
	fmt.Print("Result number: ")
	if !sc.Scan() {
		return
	}
	input := strings.TrimSpace(sc.Text())
	n, err := strconv.Atoi(input)
	if err != nil || !ctl.OpenResult(n-1) {
		fmt.Printf("Invalid result number: %s\n", input)
		return
	}
	printChapter(ctl)
}

func handleEditNote(sc *bufio.Scanner, ctl *reader.Controller, dataDir string) {
	n, ok := pickNote(sc, ctl)
	if !ok {
		return
	}
	launchEditor(ctl, n, dataDir)
}

func handleDeleteNote(sc *bufio.Scanner, ctl *reader.Controller) {
	n, ok := pickNote(sc, ctl)
	if !ok {
		return
	}
	if !ctl.NoteStore().Delete(n.Category, n.ID) {
		fmt.Println("Could not delete the note.")
		return
	}
	fmt.Printf("Deleted note '%s'.\n", n.Title)
}

func handleSearchNotes(sc *bufio.Scanner, ctl *reader.Controller) {
	fmt.Print("Note query: ")
	if !sc.Scan() {
		return
	}
	found := ctl.SearchNotes(strings.TrimSpace(sc.Text()))
	if len(found) == 0 {
		fmt.Println("No notes found.")
		return
	}
	printNotes(found)
}

// pickNote asks for a note from the current chapter by its list number.
func pickNote(sc *bufio.Scanner, ctl *reader.Controller) (notes.Note, bool) {
	chapterNotes := ctl.ChapterNotes()
	if len(chapterNotes) == 0 {
		fmt.Println("No notes on this chapter.")
		return notes.Note{}, false
	}
	printNotes(chapterNotes)
	fmt.Print("Note number: ")
	if !sc.Scan() {
		return notes.Note{}, false
	}
	input := strings.TrimSpace(sc.Text())
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(chapterNotes) {
		fmt.Printf("Invalid note number: %s\n", input)
		return notes.Note{}, false
	}
	return chapterNotes[n-1], true
}

func resolveBook(ctl *reader.Controller, input string) (int, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		for _, b := range ctl.Books() {
			if b.Number == n {
				return n, true
			}
		}
		return 0, false
	}
	for _, b := range ctl.Books() {
		if b.Name == input || strings.EqualFold(b.Code, input) {
			return b.Number, true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Output
// ---------------------------------------------------------------------------

func printPosition(ctl *reader.Controller) {
	p := ctl.Position()
	if !p.Valid() {
		fmt.Printf("📖 %s (no content)\n", scripture.DisplayName(p.Version))
		return
	}
	fmt.Printf("📖 %s · %s · %s\n", scripture.DisplayName(p.Version), ctl.BookName(), scripture.ChapterDisplayName(p.Chapter))
}

func printChapter(ctl *reader.Controller) {
	width := separatorWidth()
	fmt.Println(strings.Repeat("═", width))
	printPosition(ctl)
	fmt.Println(strings.Repeat("═", width))
	fmt.Println()

	if spans := ctl.Highlighted(); spans != nil {
		fmt.Println(renderSpans(spans))
	} else {
		fmt.Println(ctl.Content())
	}

	if !ctl.NotesVisible() {
		return
	}
	if appended := ctl.ChapterNotes(); len(appended) > 0 {
		fmt.Println()
		fmt.Println(strings.Repeat("─", width))
		printNotes(appended)
	}
}

func printNotes(list []notes.Note) {
	if len(list) == 0 {
		fmt.Println("No notes.")
		return
	}
	fmt.Printf("%-4s %-12s %-24s %-16s %s\n", "No.", "Updated", "Title", "Keywords", "Location")
	fmt.Println(strings.Repeat("-", separatorWidth()))
	for i, n := range list {
		updated := n.UpdatedAt
		if updated == "" {
			updated = n.CreatedAt
		}
		location := strings.TrimSpace(fmt.Sprintf("%s %s %s", scripture.DisplayName(n.Version), n.BookName, n.Chapter))
		fmt.Printf("%-4d %-12s %-24s %-16s %s\n", i+1, updated, truncateString(n.Title, 24), truncateString(n.Keywords, 16), location)
	}
}

// renderSpans marks matches with ANSI colour on a terminal and with
// brackets otherwise.
func renderSpans(spans []search.Span) string {
	open, closeMark := "【", "】"
	if term.IsTerminal(int(os.Stdout.Fd())) {
		open, closeMark = highlightOn, highlightOff
	}
	var sb strings.Builder
	for _, s := range spans {
		if s.Match {
			sb.WriteString(open + s.Text + closeMark)
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func separatorWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w
	}
	return 80
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(maxLen, 0)])
	}
	return string(r[:maxLen-3]) + "..."
}
