package game

import (
	"testing"

	"github.com/notnil/chess"
)

// referencePerft counts nodes with the notnil/chess generator so our
// standard-rules generation can be checked against an independent
// implementation.
func referencePerft(pos *chess.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range pos.ValidMoves() {
		nodes += referencePerft(pos.Update(m), depth-1)
	}
	return nodes
}

func TestGeneratorMatchesReferenceEngine(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{name: "initial position", fen: StartingFEN, depth: 3},
		{name: "kiwipete", fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", depth: 2},
		{name: "endgame with pins", fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", depth: 3},
		{name: "promotion race", fen: "8/P6k/8/8/8/8/6p1/K7 w - - 0 1", depth: 3},
		{name: "castling everywhere", fen: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", depth: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fenOpt, err := chess.FEN(tt.fen)
			if err != nil {
				t.Fatalf("reference rejected fen %q: %v", tt.fen, err)
			}
			refPos := chess.NewGame(fenOpt).Position()

			pos := mustFEN(t, tt.fen)
			for depth := 1; depth <= tt.depth; depth++ {
				got := perft(&pos, StandardRules(), depth)
				want := referencePerft(refPos, depth)
				if got != want {
					t.Fatalf("perft(%d) = %d, reference says %d", depth, got, want)
				}
			}
		})
	}
}

func TestMoveListMatchesReferenceEngine(t *testing.T) {
	fens := []string{
		StartingFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		fenOpt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("reference rejected fen %q: %v", fen, err)
		}
		refMoves := chess.NewGame(fenOpt).ValidMoves()

		want := make(map[string]bool, len(refMoves))
		for _, m := range refMoves {
			s := m.S1().String() + m.S2().String()
			if m.Promo() != chess.NoPieceType {
				s += m.Promo().String()
			}
			want[s] = true
		}

		pos := mustFEN(t, fen)
		moves := LegalMoves(&pos, StandardRules())
		if len(moves) != len(want) {
			t.Fatalf("%s: %d moves, reference has %d", fen, len(moves), len(want))
		}
		for _, m := range moves {
			if !want[m.String()] {
				t.Fatalf("%s: generated %s not in reference list", fen, m)
			}
		}
	}
}
