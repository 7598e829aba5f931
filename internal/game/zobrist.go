package game

import "math/rand"

// Zobrist keys fingerprint a position for repetition detection and the
// search transposition table. The tables are seeded deterministically so
// hashes are stable across runs.
var (
	zobristPiece    [2][PieceTypeCount][64]uint64
	zobristCastling [32]uint64
	zobristEPFile   [8]uint64
	zobristSide     uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x5eed_c0de_2024))
	for c := 0; c < 2; c++ {
		for pt := 0; pt < PieceTypeCount; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][pt][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

func zobristEnPassantKey(ep EnPassantTarget) uint64 {
	sq, ok := ep.Square()
	if !ok {
		return 0
	}
	return zobristEPFile[sq.File()]
}

// computeHash rebuilds the fingerprint from scratch. MakeMove maintains it
// incrementally; this is the reference used at construction and parse time.
func (p *Position) computeHash() uint64 {
	var h uint64
	for c := Color(0); c < 2; c++ {
		for pt := PieceType(0); pt < PieceTypeCount; pt++ {
			p.pieces[c][pt].Iter(func(sq Square) {
				h ^= zobristPiece[c][pt][sq]
			})
		}
	}
	h ^= zobristCastling[p.castling]
	h ^= zobristEnPassantKey(p.enPassant)
	if p.turn == Black {
		h ^= zobristSide
	}
	return h
}
