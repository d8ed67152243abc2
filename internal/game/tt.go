package game

// ------------------------------------------------------------
// Transposition table
// ------------------------------------------------------------

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower
	ttUpper
)

type ttEntry struct {
	key   uint64 // first field, 8-byte aligned
	score int32
	depth int16
	flag  ttFlag
	best  Move
}

// TransTable caches search results keyed by Zobrist hash. It is sized to a
// power of two so the index is a mask. One searcher owns one table; there
// is no locking.
type TransTable struct {
	entries []ttEntry
	mask    uint64

	probes uint64
	hits   uint64
}

const defaultTTPow = 20 // 1 Mi entries

// NewTransTable allocates a table of 2^pow entries.
func NewTransTable(pow uint8) *TransTable {
	n := 1 << pow
	return &TransTable{
		entries: make([]ttEntry, n),
		mask:    uint64(n - 1),
	}
}

// Clear forgets all entries but keeps the allocation.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
	tt.probes, tt.hits = 0, 0
}

// Probe returns the stored score and bound for hash if the entry was
// searched at least as deep as depth. A stale hash is a miss.
func (tt *TransTable) Probe(hash uint64, depth int) (int, ttFlag, bool) {
	tt.probes++
	e := &tt.entries[hash&tt.mask]
	if e.key == hash && int(e.depth) >= depth {
		tt.hits++
		return int(e.score), e.flag, true
	}
	return 0, ttExact, false
}

// BestMove returns the cached best move for hash regardless of the entry's
// depth; a shallow hint still improves move ordering.
func (tt *TransTable) BestMove(hash uint64) (Move, bool) {
	e := &tt.entries[hash&tt.mask]
	if e.key == hash && !e.best.IsNone() {
		return e.best, true
	}
	return NoMove, false
}

// Store writes the entry, always replacing whatever occupied the slot.
func (tt *TransTable) Store(hash uint64, depth, score int, flag ttFlag, best Move) {
	tt.entries[hash&tt.mask] = ttEntry{
		key:   hash,
		score: int32(score),
		depth: int16(depth),
		flag:  flag,
		best:  best,
	}
}

// Stats reports probe and hit counts since the last Clear.
func (tt *TransTable) Stats() (probes, hits uint64) {
	return tt.probes, tt.hits
}

// ------------------------------------------------------------
// Mate score plumbing
// ------------------------------------------------------------

// Mate scores are distance-stamped (MateScore - ply), so a raw score is
// only meaningful relative to the ply it was found at. Entries store the
// distance from the entry's own node; probing converts back.

const (
	// MateScore is the value of a win at the root; a win n plies away
	// scores MateScore - n.
	MateScore = 30000

	mateBound = MateScore - 1000
)

func toTTScore(s, ply int) int {
	if s > mateBound {
		return s + ply
	}
	if s < -mateBound {
		return s - ply
	}
	return s
}

func fromTTScore(s, ply int) int {
	if s > mateBound {
		return s - ply
	}
	if s < -mateBound {
		return s + ply
	}
	return s
}
