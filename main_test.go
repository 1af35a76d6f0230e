package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scripture-reader/notes"
)

func TestEditNoteSave(t *testing.T) {
	n := notes.Note{ID: "n1", Title: "old", Keywords: "k", Body: "old body"}
	input := strings.Join([]string{
		"new title", // title
		"",          // subject
		"",          // keywords
		"约 3:16",    // reference
		"line one",
		"line two",
		".",
		"save",
	}, "\n")

	var out bytes.Buffer
	action, ok := editNote(bufio.NewScanner(strings.NewReader(input)), &out, n)
	require.True(t, ok)
	assert.Equal(t, notes.ActionSave, action.Kind)
	assert.Equal(t, "new title", action.Note.Title)
	assert.Equal(t, "k", action.Note.Keywords)
	assert.Equal(t, "约 3:16", action.Note.Reference)
	assert.Equal(t, "line one\nline two", action.Note.Body)
	assert.Equal(t, "n1", action.Note.ID)
}

func TestEditNoteKeepsBody(t *testing.T) {
	n := notes.Note{ID: "n1", Body: "kept"}
	input := "\n\n\n\n.\nd\n"

	action, ok := editNote(bufio.NewScanner(strings.NewReader(input)), &bytes.Buffer{}, n)
	require.True(t, ok)
	assert.Equal(t, notes.ActionDelete, action.Kind)
	assert.Equal(t, "kept", action.Note.Body)
}

func TestEditNoteQuit(t *testing.T) {
	input := "\n\n\n\n.\nwhat\nq\n"
	_, ok := editNote(bufio.NewScanner(strings.NewReader(input)), &bytes.Buffer{}, notes.Note{ID: "n1"})
	assert.False(t, ok)

	_, ok = editNote(bufio.NewScanner(strings.NewReader("title only")), &bytes.Buffer{}, notes.Note{ID: "n1"})
	assert.False(t, ok, "input ending early is a quit")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcd...", truncateString("abcdefghij", 7))
	assert.Equal(t, "起初神...", truncateString("起初神创造天地", 6))
	assert.Equal(t, "起初", truncateString("起初神创造天地", 2))
}
