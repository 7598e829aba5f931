package game

// Position is the full board state between moves: piece placement, side to
// move, castling rights, en-passant target and the move clocks. It is a
// plain value; copying by assignment yields an independent board, which is
// how the search explores branches without sharing mutable state.
type Position struct {
	pieces    [2][PieceTypeCount]Bitboard
	occupancy [2]Bitboard
	allOcc    Bitboard
	pieceAt   [64]Piece
	turn      Color
	castling  CastlingRights
	enPassant EnPassantTarget
	halfmove  int
	fullmove  int
	hash      uint64
}

// StartingPosition sets up the standard initial layout.
func StartingPosition() Position {
	var p Position
	setup := func(color Color, backRank, pawnRank int) {
		order := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
		for file, pt := range order {
			p.place(Piece{Type: pt, Color: color}, Square(backRank*8+file))
		}
		for file := 0; file < 8; file++ {
			p.place(Piece{Type: Pawn, Color: color}, Square(pawnRank*8+file))
		}
	}
	setup(Black, 7, 6)
	setup(White, 0, 1)
	p.turn = White
	p.castling = CastlingAll
	p.enPassant = NoEnPassantTarget()
	p.halfmove = 0
	p.fullmove = 1
	p.hash = p.computeHash()
	return p
}

func (p *Position) Turn() Color                { return p.turn }
func (p *Position) Castling() CastlingRights   { return p.castling }
func (p *Position) EnPassant() EnPassantTarget { return p.enPassant }
func (p *Position) HalfmoveClock() int         { return p.halfmove }
func (p *Position) FullmoveNumber() int        { return p.fullmove }
func (p *Position) Hash() uint64               { return p.hash }

// PieceAt reports the piece on sq, if any.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if !p.allOcc.Has(sq) {
		return Piece{}, false
	}
	return p.pieceAt[sq], true
}

func (p *Position) Pieces(color Color, pt PieceType) Bitboard { return p.pieces[color][pt] }
func (p *Position) Occupied(color Color) Bitboard             { return p.occupancy[color] }
func (p *Position) AllOccupied() Bitboard                     { return p.allOcc }

// KingSquare locates the king of the given color.
func (p *Position) KingSquare(color Color) (Square, bool) {
	bb := p.pieces[color][King]
	if bb.Empty() {
		return 0, false
	}
	sq, _ := bb.PopLSB()
	return sq, true
}

// WithSideToMove returns a copy of the position with the mover swapped.
// Used for mobility counting; the en-passant target is dropped because it
// only has meaning for the side that just saw the double push.
func (p Position) WithSideToMove(c Color) Position {
	if p.turn != c {
		p.hash ^= zobristSide
		p.turn = c
		if p.enPassant.Valid() {
			p.hash ^= zobristEnPassantKey(p.enPassant)
			p.enPassant = NoEnPassantTarget()
		}
	}
	return p
}

func (p *Position) place(pc Piece, sq Square) {
	p.pieceAt[sq] = pc
	p.pieces[pc.Color][pc.Type] = p.pieces[pc.Color][pc.Type].Add(sq)
	p.occupancy[pc.Color] = p.occupancy[pc.Color].Add(sq)
	p.allOcc = p.allOcc.Add(sq)
	p.hash ^= zobristPiece[pc.Color][pc.Type][sq]
}

func (p *Position) remove(sq Square) Piece {
	pc := p.pieceAt[sq]
	p.pieceAt[sq] = Piece{}
	p.pieces[pc.Color][pc.Type] = p.pieces[pc.Color][pc.Type].Remove(sq)
	p.occupancy[pc.Color] = p.occupancy[pc.Color].Remove(sq)
	p.allOcc = p.allOcc.Remove(sq)
	p.hash ^= zobristPiece[pc.Color][pc.Type][sq]
	return pc
}

func (p *Position) movePiece(from, to Square) {
	pc := p.remove(from)
	p.place(pc, to)
}

func (p *Position) setCastling(cr CastlingRights) {
	if cr == p.castling {
		return
	}
	p.hash ^= zobristCastling[p.castling]
	p.castling = cr
	p.hash ^= zobristCastling[cr]
}

func (p *Position) setEnPassant(ep EnPassantTarget) {
	if p.enPassant.Valid() {
		p.hash ^= zobristEnPassantKey(p.enPassant)
	}
	p.enPassant = ep
	if ep.Valid() {
		p.hash ^= zobristEnPassantKey(ep)
	}
}

func (p *Position) flipTurn() {
	p.turn = p.turn.Opposite()
	p.hash ^= zobristSide
}
