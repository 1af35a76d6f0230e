package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"scripture-reader/notes"
	"scripture-reader/reader"
)

// launchEditor hands n to a separate editor process attached to the
// terminal. The editor writes its save or delete straight to the note store.
func launchEditor(ctl *reader.Controller, n notes.Note, dataDir string) {
	req, ok := ctl.EditNote(n)
	if !ok {
		fmt.Println("Could not open the note editor.")
		return
	}
	if err := spawnEditor(req, dataDir); err != nil {
		slog.Error("run note editor", "id", n.ID, "error", err)
		fmt.Printf("Note editor failed: %v\n", err)
		return
	}
	fmt.Println("Back in the reader.")
}

func spawnEditor(req notes.EditRequest, dataDir string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	var args []string
	if dataDir != "" {
		args = append(args, "--data-dir", dataDir)
	}
	args = append(args, req.Args()...)

	cmd := exec.Command(exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func newNoteCmd(dataDir *string) *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "note",
		Short: "Edit a single note passed as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := notes.Unmarshal(payload)
			if err != nil {
				return fmt.Errorf("read note: %w", err)
			}

			cfg, err := loadConfig(*dataDir)
			if err != nil {
				return err
			}

			action, ok := editNote(bufio.NewScanner(cmd.InOrStdin()), cmd.OutOrStdout(), n)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
				return nil
			}

			store := notes.OpenStore(cfg.NotesPath, slog.Default())
			defer store.Close()
			if !store.Apply(action) {
				return fmt.Errorf("%s note %s failed", action.Kind, action.Note.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note %s: %s\n", action.Kind, action.Note.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&payload, strings.TrimPrefix(notes.NoteJSONFlag, "--"), "", "note to edit, as JSON")
	_ = cmd.MarkFlagRequired(strings.TrimPrefix(notes.NoteJSONFlag, "--"))
	return cmd
}

// editNote walks the user through the note's fields. Enter keeps the
// current value. It returns false when the user quits without an action.
func editNote(sc *bufio.Scanner, out io.Writer, n notes.Note) (notes.Action, bool) {
	fmt.Fprintf(out, "Editing note on %s %s (%s)\n", n.BookName, n.Chapter, n.Version)
	fmt.Fprintln(out, "Press Enter to keep a value.")

	fields := []struct {
		label string
		value *string
	}{
		{"Title", &n.Title},
		{"Subject", &n.Subject},
		{"Keywords", &n.Keywords},
		{"Reference", &n.Reference},
	}
	for _, f := range fields {
		if !promptField(sc, out, f.label, f.value) {
			return notes.Action{}, false
		}
	}

	fmt.Fprintln(out, "Body (end with a line containing only '.', or '.' alone to keep):")
	if n.Body != "" {
		fmt.Fprintln(out, n.Body)
	}
	var body []string
	for sc.Scan() {
		line := sc.Text()
		if line == "." {
			break
		}
		body = append(body, line)
	}
	if len(body) > 0 {
		n.Body = strings.Join(body, "\n")
	}

	for {
		fmt.Fprint(out, "save, delete or quit? ")
		if !sc.Scan() {
			return notes.Action{}, false
		}
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "save", "s":
			return notes.Action{Kind: notes.ActionSave, Note: n}, true
		case "delete", "d":
			return notes.Action{Kind: notes.ActionDelete, Note: n}, true
		case "quit", "q":
			return notes.Action{}, false
		}
	}
}

func promptField(sc *bufio.Scanner, out io.Writer, label string, value *string) bool {
	fmt.Fprintf(out, "%s [%s]: ", label, *value)
	if !sc.Scan() {
		return false
	}
	if input := strings.TrimSpace(sc.Text()); input != "" {
		*value = input
	}
	return true
}
