package game

import "testing"

func mustSquare(t *testing.T, coord string) Square {
	t.Helper()
	sq, ok := CoordToSquare(coord)
	if !ok {
		t.Fatalf("invalid coordinate %q", coord)
	}
	return sq
}

func mustFEN(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse %q: %v", fen, err)
	}
	return pos
}

func findMove(moves []Move, from, to Square) (Move, bool) {
	for _, m := range moves {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

func perft(pos *Position, rules Rules, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range LegalMoves(pos, rules) {
		undo := pos.MakeMove(m)
		nodes += perft(pos, rules, depth-1)
		pos.UnmakeMove(undo)
	}
	return nodes
}

func TestInitialPositionHasTwentyMoves(t *testing.T) {
	pos := StartingPosition()
	moves := LegalMoves(&pos, StandardRules())
	if len(moves) != 20 {
		t.Fatalf("expected 20 legal moves, got %d: %v", len(moves), moves)
	}
}

func TestPerftFromStart(t *testing.T) {
	expected := []int64{1, 20, 400, 8902}
	pos := StartingPosition()
	for depth, want := range expected {
		if got := perft(&pos, StandardRules(), depth); got != want {
			t.Fatalf("perft(%d) = %d, want %d", depth, got, want)
		}
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	fens := []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	}
	for _, fen := range fens {
		pos := mustFEN(t, fen)
		mover := pos.Turn()
		for _, m := range LegalMoves(&pos, StandardRules()) {
			next := Apply(pos, m)
			if IsInCheck(&next, mover) {
				t.Fatalf("%s: move %s leaves %s in check", fen, m, mover)
			}
		}
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	// Knight on e2 is pinned against the king by the rook on e8.
	pos := mustFEN(t, "4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1")
	moves := LegalMoves(&pos, StandardRules())
	for _, m := range moves {
		if m.Piece == Knight {
			t.Fatalf("pinned knight moved: %s", m)
		}
	}
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingside  bool
		queenside bool
	}{
		{
			name:      "both sides open",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			kingside:  true,
			queenside: true,
		},
		{
			name:      "kingside path attacked",
			fen:       "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1",
			kingside:  false,
			queenside: true,
		},
		{
			name:      "king in check",
			fen:       "r3k2r/8/8/8/8/4r3/8/R3K2R w KQkq - 0 1",
			kingside:  false,
			queenside: false,
		},
		{
			name:      "rights revoked",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1",
			kingside:  false,
			queenside: false,
		},
		{
			name:      "queenside blocked",
			fen:       "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1",
			kingside:  true,
			queenside: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			moves := LegalMoves(&pos, StandardRules())
			_, kingside := findMove(moves, mustSquare(t, "e1"), mustSquare(t, "g1"))
			_, queenside := findMove(moves, mustSquare(t, "e1"), mustSquare(t, "c1"))
			if kingside != tt.kingside {
				t.Errorf("kingside castle generated=%v, want %v", kingside, tt.kingside)
			}
			if queenside != tt.queenside {
				t.Errorf("queenside castle generated=%v, want %v", queenside, tt.queenside)
			}
		})
	}
}

func TestCastlingDisabledByRules(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	rules := StandardRules()
	rules.CastlingEnabled = false
	moves := LegalMoves(&pos, rules)
	if _, ok := findMove(moves, mustSquare(t, "e1"), mustSquare(t, "g1")); ok {
		t.Fatalf("castle generated with castling disabled")
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos := mustFEN(t, "k7/8/8/8/4p3/8/3P4/K7 w - - 0 1")
	moves := LegalMoves(&pos, StandardRules())
	double, ok := findMove(moves, mustSquare(t, "d2"), mustSquare(t, "d4"))
	if !ok {
		t.Fatalf("double push d2d4 not generated")
	}
	if !double.Is(FlagDoublePush) {
		t.Fatalf("d2d4 missing double-push flag")
	}
	pos.MakeMove(double)

	epSq, valid := pos.EnPassant().Square()
	if !valid || epSq != mustSquare(t, "d3") {
		t.Fatalf("expected en-passant target d3, got %s", pos.EnPassant())
	}

	replies := LegalMoves(&pos, StandardRules())
	ep, ok := findMove(replies, mustSquare(t, "e4"), mustSquare(t, "d3"))
	if !ok {
		t.Fatalf("en-passant capture e4d3 not generated")
	}
	if !ep.Is(FlagEnPassant) || !ep.Is(FlagCapture) {
		t.Fatalf("e4d3 flags = %b", ep.Flags)
	}

	pos.MakeMove(ep)
	if _, occupied := pos.PieceAt(mustSquare(t, "d4")); occupied {
		t.Fatalf("captured pawn still on d4")
	}
}

func TestEnPassantDisabledByRules(t *testing.T) {
	pos := mustFEN(t, "k7/8/8/8/4p3/8/3P4/K7 w - - 0 1")
	rules := StandardRules()
	rules.EnPassantEnabled = false
	double, _ := findMove(LegalMoves(&pos, rules), mustSquare(t, "d2"), mustSquare(t, "d4"))
	pos.MakeMove(double)
	if _, ok := findMove(LegalMoves(&pos, rules), mustSquare(t, "e4"), mustSquare(t, "d3")); ok {
		t.Fatalf("en-passant capture generated with en passant disabled")
	}
}

func TestPromotionChoicesGenerated(t *testing.T) {
	pos := mustFEN(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	moves := LegalMoves(&pos, StandardRules())

	var promotions []PieceType
	for _, m := range moves {
		if m.Is(FlagPromotion) {
			promotions = append(promotions, m.Promotion)
		}
	}
	want := []PieceType{Queen, Rook, Bishop, Knight}
	if len(promotions) != len(want) {
		t.Fatalf("expected %d promotion moves, got %d", len(want), len(promotions))
	}
	for i, pt := range want {
		if promotions[i] != pt {
			t.Fatalf("promotion order[%d] = %s, want %s", i, promotions[i], pt)
		}
	}

	rules := StandardRules()
	rules.Promotions = PromotionChoicesFromTypes(Knight)
	restricted := LegalMoves(&pos, rules)
	for _, m := range restricted {
		if m.Is(FlagPromotion) && m.Promotion != Knight {
			t.Fatalf("restricted promotion generated %s", m)
		}
	}
}

func TestBackRankMateHasNoMoves(t *testing.T) {
	pos := mustFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if moves := LegalMoves(&pos, StandardRules()); len(moves) != 0 {
		t.Fatalf("expected no legal moves, got %v", moves)
	}
	if !IsInCheck(&pos, Black) {
		t.Fatalf("expected black to be in check")
	}
}

func TestStalemateHasNoMovesAndNoCheck(t *testing.T) {
	pos := mustFEN(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if moves := LegalMoves(&pos, StandardRules()); len(moves) != 0 {
		t.Fatalf("expected no legal moves, got %v", moves)
	}
	if IsInCheck(&pos, Black) {
		t.Fatalf("stalemated king should not be in check")
	}
}

func TestDeterministicGenerationOrder(t *testing.T) {
	pos := StartingPosition()
	first := LegalMoves(&pos, StandardRules())
	for i := 0; i < 3; i++ {
		again := LegalMoves(&pos, StandardRules())
		if len(again) != len(first) {
			t.Fatalf("move count changed between runs")
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("move order changed at %d: %s vs %s", j, first[j], again[j])
			}
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i].From < first[i-1].From {
			t.Fatalf("moves not ordered by origin square: %s before %s", first[i-1], first[i])
		}
	}
}
