package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// WordRecord is one dictionary entry
type WordRecord struct {
	Word        string `json:"word"`        // e.g., "爱"
	Pinyin      string `json:"pinyin"`      // e.g., "ài"
	Explanation string `json:"explanation"` // Definition text, may span lines
}

// Collection is the full ordered set of words for a session.
// Identity of a record is its position.
type Collection []WordRecord

// RandomWord picks a record uniformly at random.
// Returns false when the collection is empty.
func RandomWord(words Collection) (WordRecord, bool) {
	return pickWord(words, rand.IntN)
}

func pickWord(words Collection, intn func(int) int) (WordRecord, bool) {
	if len(words) == 0 {
		return WordRecord{}, false
	}
	return words[intn(len(words))], true
}

// Mode is the browsing mode selected by the user
type Mode int

const (
	ModeRandom Mode = iota
	ModeSequential
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeSearch:
		return "search"
	default:
		return "random"
	}
}

// ParseMode converts a mode name into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return ModeRandom, nil
	case "sequential":
		return ModeSequential, nil
	case "search":
		return ModeSearch, nil
	default:
		return ModeRandom, fmt.Errorf("unknown mode: %q", s)
	}
}

// Modes lists every mode in display order
var Modes = []Mode{ModeRandom, ModeSequential, ModeSearch}

// LoadProgress reports the state of an in-flight word load.
// Percent is in [0,100].
type LoadProgress struct {
	Loading bool
	Percent int
}
