package search

import "sync"

type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

type tableEntry struct {
	depth int
	score int
	bound Bound
}

// Table is a transposition table keyed by position hash. Safe for
// concurrent use by the parallel root workers.
type Table struct {
	mu      sync.RWMutex
	entries map[uint64]tableEntry
}

func NewTable() *Table {
	return &Table{entries: make(map[uint64]tableEntry)}
}

// Probe looks up a stored score usable at the given depth. Bound entries
// tighten the caller's window in place; the second return is true when the
// entry decides the node outright.
func (t *Table) Probe(key uint64, depth int, alpha, beta *int) (int, bool) {
	t.mu.RLock()
	e, ok := t.entries[key]
	t.mu.RUnlock()
	if !ok || e.depth < depth {
		return 0, false
	}
	switch e.bound {
	case BoundExact:
		return e.score, true
	case BoundLower:
		if e.score > *alpha {
			*alpha = e.score
		}
	case BoundUpper:
		if e.score < *beta {
			*beta = e.score
		}
	}
	if *alpha >= *beta {
		return e.score, true
	}
	return 0, false
}

// Store records a score. Mate scores are ply-relative and would corrupt
// other paths, so they are not cached. Shallower entries never overwrite
// deeper ones.
func (t *Table) Store(key uint64, depth, score int, bound Bound) {
	if score >= mateThreshold || score <= -mateThreshold {
		return
	}
	t.mu.Lock()
	if e, ok := t.entries[key]; !ok || e.depth <= depth {
		t.entries[key] = tableEntry{depth: depth, score: score, bound: bound}
	}
	t.mu.Unlock()
}

// boundFor classifies a fail-soft score against the original window.
func boundFor(score, alpha, beta int) Bound {
	if score <= alpha {
		return BoundUpper
	}
	if score >= beta {
		return BoundLower
	}
	return BoundExact
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
