package notes

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes a note for hand-off to the editor process.
func Marshal(n Note) (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("marshal note: %w", err)
	}
	return string(b), nil
}

// Unmarshal decodes a payload produced by Marshal. Payloads without an id
// are rejected. A missing verse_start decodes as VerseUnset.
func Unmarshal(payload string) (Note, error) {
	n := Note{VerseStart: VerseUnset}
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return Note{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if n.ID == "" {
		return Note{}, fmt.Errorf("%w: missing id", ErrInvalidPayload)
	}
	if n.Category != "" {
		if _, err := n.Category.table(); err != nil {
			return Note{}, fmt.Errorf("%w: category %q", ErrInvalidPayload, n.Category)
		}
	}
	return n, nil
}
