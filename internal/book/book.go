// Package book implements the opening-book collaborator: a lookup from the
// game's move history to weighted candidate continuations. The book only
// suggests; the move selector verifies legality before trusting it.
package book

import (
	"math/rand"
	"sort"
	"strings"
)

// Entry is a candidate continuation with its selection weight.
type Entry struct {
	Move   string // long algebraic, e.g. "e2e4"
	Weight uint16
}

// Book maps a joined move-history prefix to its known continuations.
type Book struct {
	lines map[string][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{lines: make(map[string][]Entry)}
}

// Add records a continuation for the given history prefix.
func (b *Book) Add(history []string, move string, weight uint16) {
	key := strings.Join(history, " ")
	b.lines[key] = append(b.lines[key], Entry{Move: move, Weight: weight})
}

// Probe looks up the history prefix and returns a candidate move. With
// randomize off the heaviest continuation is returned; with it on a
// weighted random selection is made across all continuations.
func (b *Book) Probe(history []string, randomize bool) (string, bool) {
	if b == nil {
		return "", false
	}

	key := strings.Join(history, " ")
	entries, ok := b.lines[key]
	if !ok || len(entries) == 0 {
		return "", false
	}

	// Sort by weight (heaviest first) for deterministic ordering.
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})

	if !randomize {
		return sorted[0].Move, true
	}

	totalWeight := uint32(0)
	for _, e := range sorted {
		totalWeight += uint32(e.Weight)
	}
	if totalWeight == 0 {
		return sorted[0].Move, true
	}

	r := rand.Uint32() % totalWeight
	cumulative := uint32(0)
	for _, e := range sorted {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}
	return sorted[0].Move, true
}

// Size returns the number of known history prefixes.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.lines)
}

// mainLines holds the built-in opening table: a prefix of moves so far and
// its weighted continuations.
var mainLines = []struct {
	history string
	move    string
	weight  uint16
}{
	{"", "e2e4", 3},
	{"", "d2d4", 2},
	{"", "c2c4", 1},
	{"", "g1f3", 1},

	{"e2e4", "e7e5", 2},
	{"e2e4", "c7c5", 2},
	{"e2e4", "e7e6", 1},
	{"e2e4 e7e5", "g1f3", 3},
	{"e2e4 e7e5", "f1c4", 1},
	{"e2e4 e7e5 g1f3", "b8c6", 3},
	{"e2e4 e7e5 g1f3", "g8f6", 1},
	{"e2e4 e7e5 g1f3 b8c6", "f1b5", 2},
	{"e2e4 e7e5 g1f3 b8c6", "f1c4", 2},
	{"e2e4 e7e5 g1f3 b8c6", "d2d4", 1},
	{"e2e4 c7c5", "g1f3", 3},
	{"e2e4 c7c5", "b1c3", 1},
	{"e2e4 c7c5 g1f3", "d7d6", 2},
	{"e2e4 c7c5 g1f3", "b8c6", 2},
	{"e2e4 c7c5 g1f3", "e7e6", 1},

	{"d2d4", "d7d5", 2},
	{"d2d4", "g8f6", 2},
	{"d2d4 d7d5", "c2c4", 3},
	{"d2d4 d7d5", "g1f3", 1},
	{"d2d4 d7d5 c2c4", "e7e6", 2},
	{"d2d4 d7d5 c2c4", "c7c6", 2},
	{"d2d4 d7d5 c2c4", "d5c4", 1},
	{"d2d4 g8f6", "c2c4", 3},
	{"d2d4 g8f6", "g1f3", 1},

	{"c2c4", "g8f6", 2},
	{"c2c4", "e7e5", 1},
	{"c2c4", "c7c5", 1},
	{"g1f3", "d7d5", 2},
	{"g1f3", "g8f6", 2},
}

// Builtin returns the built-in mainline book covering the first few plies
// of the common openings.
func Builtin() *Book {
	b := New()
	for _, line := range mainLines {
		var history []string
		if line.history != "" {
			history = strings.Split(line.history, " ")
		}
		b.Add(history, line.move, line.weight)
	}
	return b
}
