package notes

import (
	"encoding/json"
	"fmt"
)

// NoteJSONFlag carries the serialized note to the editor process.
const NoteJSONFlag = "--note-json"

// EditRequest asks an external editor to edit a note. The editor answers
// with an Action; the reader does not wait for it.
type EditRequest struct {
	Note    Note
	Payload string
}

// RequestEdit serializes n for the editor. On failure no request is made
// and nothing else changes.
func RequestEdit(n Note) (EditRequest, error) {
	payload, err := Marshal(n)
	if err != nil {
		return EditRequest{}, err
	}
	return EditRequest{Note: n, Payload: payload}, nil
}

// Args are the command-line arguments for launching the editor subcommand.
func (r EditRequest) Args() []string {
	return []string{"note", NoteJSONFlag, r.Payload}
}

// ActionKind is what the editor decided to do with a note.
type ActionKind string

const (
	ActionSave   ActionKind = "save"
	ActionDelete ActionKind = "delete"
)

// Action is the editor's reply to an EditRequest.
type Action struct {
	Kind ActionKind `json:"action"`
	Note Note       `json:"note"`
}

// MarshalAction encodes an editor reply.
func MarshalAction(a Action) (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal action: %w", err)
	}
	return string(b), nil
}

// UnmarshalAction decodes an editor reply.
func UnmarshalAction(payload string) (Action, error) {
	a := Action{Note: Note{VerseStart: VerseUnset}}
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return Action{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	switch a.Kind {
	case ActionSave, ActionDelete:
	default:
		return Action{}, fmt.Errorf("%w: action %q", ErrInvalidPayload, a.Kind)
	}
	if a.Note.ID == "" {
		return Action{}, fmt.Errorf("%w: missing id", ErrInvalidPayload)
	}
	return a, nil
}
