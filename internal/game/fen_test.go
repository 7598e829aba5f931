package game

import (
	"errors"
	"testing"
)

func TestStartingPositionFEN(t *testing.T) {
	pos := StartingPosition()
	if got := FEN(&pos); got != StartingFEN {
		t.Fatalf("FEN(start) = %q, want %q", got, StartingFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"k7/8/1Q6/8/8/8/8/7K b - - 12 34",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("parse %q: %v", fen, err)
		}
		if got := FEN(&pos); got != fen {
			t.Fatalf("round trip %q -> %q", fen, got)
		}
		if pos.Hash() != pos.computeHash() {
			t.Fatalf("%s: parsed hash inconsistent", fen)
		}
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{name: "too few fields", fen: "8/8/8/8/8/8/8/8 w -"},
		{name: "seven ranks", fen: "8/8/8/8/8/8/8 w - - 0 1"},
		{name: "rank too wide", fen: "9/8/8/8/8/8/8/8 w - - 0 1"},
		{name: "bad piece", fen: "x7/8/8/8/8/8/8/8 w - - 0 1"},
		{name: "bad side", fen: "k7/8/8/8/8/8/8/K7 x - - 0 1"},
		{name: "bad castling", fen: "k7/8/8/8/8/8/8/K7 w Z - 0 1"},
		{name: "bad en passant", fen: "k7/8/8/8/8/8/8/K7 w - e9 0 1"},
		{name: "negative halfmove", fen: "k7/8/8/8/8/8/8/K7 w - - -1 1"},
		{name: "zero fullmove", fen: "k7/8/8/8/8/8/8/K7 w - - 0 0"},
		{name: "no white king", fen: "k7/8/8/8/8/8/8/8 w - - 0 1"},
		{name: "two black kings", fen: "kk6/8/8/8/8/8/8/K7 w - - 0 1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.fen); err == nil {
				t.Fatalf("expected error for %q", tt.fen)
			} else if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseFENRelaxedAllowsMissingKing(t *testing.T) {
	pos, err := ParseFENRelaxed("k7/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("relaxed parse: %v", err)
	}
	if !pos.Pieces(White, King).Empty() {
		t.Fatalf("expected no white king")
	}
	if _, err := ParseFEN("k7/8/8/8/8/8/8/8 w - - 0 1"); err == nil {
		t.Fatalf("strict parse accepted a missing king")
	}
}
