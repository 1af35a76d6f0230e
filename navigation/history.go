// Package navigation keeps the back/forward history of reading positions.
package navigation

import "fmt"

// Position identifies what is being read: a version, a book and a chapter.
// Positions compare with ==.
type Position struct {
	Version string `json:"version"`
	Book    int    `json:"book"`
	Chapter int    `json:"chapter"`
}

// Valid reports whether p points at a book. Chapter 0 is the introduction
// and therefore valid.
func (p Position) Valid() bool { return p.Book > 0 }

func (p Position) String() string {
	return fmt.Sprintf("%s %d:%d", p.Version, p.Book, p.Chapter)
}

// History is a browser-style back/forward stack. The zero value is ready to use.
//
// Record is called with the position being left, once per explicit
// navigation. Back and Forward move between recorded positions and never
// call Record themselves.
type History struct {
	back    []Position
	forward []Position
}

// Record pushes current onto the back stack unless it equals the top, and
// always clears the forward stack. Invalid positions are not pushed.
func (h *History) Record(current Position) {
	if current.Valid() {
		h.pushBack(current)
	}
	h.forward = h.forward[:0]
}

// Back pops the back stack. When there is an entry, current is pushed onto
// the forward stack and the popped entry is returned as the new position.
func (h *History) Back(current Position) (Position, bool) {
	prev, ok := pop(&h.back)
	if !ok {
		return Position{}, false
	}
	if current.Valid() {
		h.forward = append(h.forward, current)
	}
	return prev, true
}

// Forward is the mirror of Back.
func (h *History) Forward(current Position) (Position, bool) {
	next, ok := pop(&h.forward)
	if !ok {
		return Position{}, false
	}
	if current.Valid() {
		h.pushBack(current)
	}
	return next, true
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool { return len(h.back) > 0 }

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool { return len(h.forward) > 0 }

// BackStack returns a copy of the back stack, oldest first.
func (h *History) BackStack() []Position { return append([]Position(nil), h.back...) }

// ForwardStack returns a copy of the forward stack, oldest first.
func (h *History) ForwardStack() []Position { return append([]Position(nil), h.forward...) }

func (h *History) pushBack(p Position) {
	if n := len(h.back); n > 0 && h.back[n-1] == p {
		return
	}
	h.back = append(h.back, p)
}

func pop(stack *[]Position) (Position, bool) {
	s := *stack
	if len(s) == 0 {
		return Position{}, false
	}
	p := s[len(s)-1]
	*stack = s[:len(s)-1]
	return p, true
}
