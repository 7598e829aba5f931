package search

import "testing"

func TestTableStoreAndProbe(t *testing.T) {
	tbl := NewTable()
	tbl.Store(42, 3, 150, BoundExact)

	alpha, beta := -MateScore, MateScore
	score, ok := tbl.Probe(42, 3, &alpha, &beta)
	if !ok || score != 150 {
		t.Fatalf("probe = (%d, %v), want (150, true)", score, ok)
	}
	if _, ok := tbl.Probe(42, 4, &alpha, &beta); ok {
		t.Fatalf("shallow entry served a deeper probe")
	}
	if _, ok := tbl.Probe(7, 1, &alpha, &beta); ok {
		t.Fatalf("probe hit a missing key")
	}
}

func TestTableBoundsTightenWindow(t *testing.T) {
	tbl := NewTable()
	tbl.Store(1, 3, 200, BoundLower)
	alpha, beta := -MateScore, MateScore
	if _, ok := tbl.Probe(1, 3, &alpha, &beta); ok {
		t.Fatalf("lower bound alone should not decide the node")
	}
	if alpha != 200 {
		t.Fatalf("alpha = %d, want 200", alpha)
	}

	tbl.Store(2, 3, -80, BoundUpper)
	alpha, beta = -MateScore, MateScore
	if _, ok := tbl.Probe(2, 3, &alpha, &beta); ok {
		t.Fatalf("upper bound alone should not decide the node")
	}
	if beta != -80 {
		t.Fatalf("beta = %d, want -80", beta)
	}

	// A lower bound at or above beta produces an immediate cutoff.
	alpha, beta = -MateScore, 100
	if score, ok := tbl.Probe(1, 3, &alpha, &beta); !ok || score != 200 {
		t.Fatalf("expected cutoff from lower bound, got (%d, %v)", score, ok)
	}
}

func TestTableSkipsMateScoresAndShallowOverwrites(t *testing.T) {
	tbl := NewTable()
	tbl.Store(9, 5, MateScore-3, BoundExact)
	if tbl.Len() != 0 {
		t.Fatalf("mate score was cached")
	}

	tbl.Store(9, 5, 40, BoundExact)
	tbl.Store(9, 2, 999, BoundExact)
	alpha, beta := -MateScore, MateScore
	score, ok := tbl.Probe(9, 2, &alpha, &beta)
	if !ok || score != 40 {
		t.Fatalf("deep entry overwritten by shallow store: (%d, %v)", score, ok)
	}
}
