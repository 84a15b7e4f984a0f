package engine

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// ttEntry is a cached search result for one position key.
type ttEntry struct {
	key   uint64
	depth int
	score float64
	flag  TTFlag
}

// ttEntrySize approximates the in-memory footprint of one entry, including
// its map and eviction-queue overhead, for the byte-based capacity budget.
const ttEntrySize = 64

// TransTable caches search results keyed by position hash and side to
// move. Capacity is fixed from a byte budget; on overflow the oldest
// inserted entry is evicted first, so callers must not assume the
// strongest entry survives. A table belongs to one search context at a
// time and is never shared across concurrent searches.
type TransTable struct {
	capacity int
	entries  map[uint64]ttEntry
	order    []uint64 // insertion order, oldest at head
	head     int
}

// NewTransTable creates a table with the given size budget in MB.
func NewTransTable(sizeMB int) *TransTable {
	capacity := sizeMB * 1024 * 1024 / ttEntrySize
	if capacity < 1 {
		capacity = 1
	}
	return &TransTable{
		capacity: capacity,
		entries:  make(map[uint64]ttEntry, capacity),
	}
}

// Store caches a completed node search. An existing entry for the same key
// is overwritten in place; otherwise the oldest entry is evicted when the
// table is full before the new one is inserted.
func (tt *TransTable) Store(key uint64, depth int, score float64, flag TTFlag) {
	if _, ok := tt.entries[key]; ok {
		tt.entries[key] = ttEntry{key: key, depth: depth, score: score, flag: flag}
		return
	}

	if len(tt.entries) >= tt.capacity {
		tt.evictOldest()
	}

	tt.entries[key] = ttEntry{key: key, depth: depth, score: score, flag: flag}
	tt.order = append(tt.order, key)
}

func (tt *TransTable) evictOldest() {
	for tt.head < len(tt.order) {
		key := tt.order[tt.head]
		tt.head++
		if _, ok := tt.entries[key]; ok {
			delete(tt.entries, key)
			break
		}
	}
	// Compact the queue once the consumed prefix dominates.
	if tt.head > len(tt.order)/2 && tt.head > 1024 {
		tt.order = append([]uint64(nil), tt.order[tt.head:]...)
		tt.head = 0
	}
}

// Probe looks up a cached score for the key. The hit is usable only when
// the stored depth is at least the requested depth and the bound type is
// compatible with the current window: EXACT always, LOWER only when the
// stored score is at or above beta, UPPER only when at or below alpha.
func (tt *TransTable) Probe(key uint64, depth int, alpha, beta float64) (float64, bool) {
	entry, ok := tt.entries[key]
	if !ok || entry.depth < depth {
		return 0, false
	}

	switch entry.flag {
	case TTExact:
		return entry.score, true
	case TTLowerBound:
		if entry.score >= beta {
			return entry.score, true
		}
	case TTUpperBound:
		if entry.score <= alpha {
			return entry.score, true
		}
	}
	return 0, false
}

// Clear resets the table. It must be called at the start of a new game so
// entries from a previous game never leak into the next one.
func (tt *TransTable) Clear() {
	tt.entries = make(map[uint64]ttEntry, tt.capacity)
	tt.order = tt.order[:0]
	tt.head = 0
}

// Len returns the number of cached entries.
func (tt *TransTable) Len() int {
	return len(tt.entries)
}

// Capacity returns the maximum number of entries.
func (tt *TransTable) Capacity() int {
	return tt.capacity
}
