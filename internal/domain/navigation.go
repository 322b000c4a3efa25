package domain

import "math/rand/v2"

// NavigationState is the browsing position of the user
type NavigationState struct {
	Current *WordRecord // nil until words are loaded
	History []WordRecord
	Mode    Mode
}

// Navigator drives forward/back browsing over a loaded collection.
// It never mutates the collection it was given.
type Navigator struct {
	words Collection
	state NavigationState
	intn  func(int) int
}

// NewNavigator creates a navigator in its initial state: no current word,
// empty history, random mode.
func NewNavigator() *Navigator {
	return &Navigator{intn: rand.IntN}
}

// SetWords attaches a loaded collection. If no word is shown yet, a random
// one becomes current.
func (n *Navigator) SetWords(words Collection) {
	n.words = words
	if n.state.Current == nil {
		n.state.Current = n.pick()
	}
}

// Next pushes the current word onto history and picks a new random word
func (n *Navigator) Next() {
	if n.state.Current != nil {
		n.state.History = append(n.state.History, *n.state.Current)
	}
	n.state.Current = n.pick()
}

// Prev restores the most recent history entry. No-op on empty history.
func (n *Navigator) Prev() {
	last := len(n.state.History) - 1
	if last < 0 {
		return
	}
	prev := n.state.History[last]
	n.state.History = n.state.History[:last]
	n.state.Current = &prev
}

// SetMode changes the display mode only
func (n *Navigator) SetMode(m Mode) {
	n.state.Mode = m
}

// CanPrev reports whether Prev would change anything
func (n *Navigator) CanPrev() bool {
	return len(n.state.History) > 0
}

// Current returns the word being shown
func (n *Navigator) Current() (WordRecord, bool) {
	if n.state.Current == nil {
		return WordRecord{}, false
	}
	return *n.state.Current, true
}

// Mode returns the selected mode
func (n *Navigator) Mode() Mode {
	return n.state.Mode
}

// State returns a copy of the navigation state
func (n *Navigator) State() NavigationState {
	s := NavigationState{Mode: n.state.Mode}
	if n.state.Current != nil {
		cur := *n.state.Current
		s.Current = &cur
	}
	if len(n.state.History) > 0 {
		s.History = append([]WordRecord(nil), n.state.History...)
	}
	return s
}

func (n *Navigator) pick() *WordRecord {
	w, ok := pickWord(n.words, n.intn)
	if !ok {
		return nil
	}
	return &w
}
