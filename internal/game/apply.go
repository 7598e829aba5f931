package game

// Undo captures everything MakeMove destroys so UnmakeMove can restore the
// position exactly, hash included.
type Undo struct {
	move       Move
	captured   Piece
	capturedSq Square
	castling   CastlingRights
	enPassant  EnPassantTarget
	halfmove   int
	fullmove   int
	hash       uint64
}

func (u Undo) Move() Move { return u.move }

// MakeMove applies m to the position in place. The move is trusted: callers
// obtain it from the generator, so no legality checks are repeated here.
func (p *Position) MakeMove(m Move) Undo {
	mover := p.turn
	undo := Undo{
		move:      m,
		castling:  p.castling,
		enPassant: p.enPassant,
		halfmove:  p.halfmove,
		fullmove:  p.fullmove,
		hash:      p.hash,
	}

	if m.Is(FlagCapture) {
		victimSq := m.To
		if m.Is(FlagEnPassant) {
			victimSq, _ = SquareFromCoords(m.From.Rank(), m.To.File())
		}
		undo.captured = p.remove(victimSq)
		undo.capturedSq = victimSq
	}

	p.movePiece(m.From, m.To)

	if m.Is(FlagPromotion) {
		p.remove(m.To)
		p.place(Piece{Type: m.Promotion, Color: mover}, m.To)
	}

	if m.Is(FlagCastle) {
		rookFrom, rookTo := castleRookSquares(m)
		p.movePiece(rookFrom, rookTo)
	}

	rights := p.castling
	if m.Piece == King {
		rights = rights.WithoutColor(mover)
	}
	rights = rights.Without(castlingRightForRookSquare(m.From))
	rights = rights.Without(castlingRightForRookSquare(m.To))
	p.setCastling(rights)

	if m.Is(FlagDoublePush) {
		mid := Square((int(m.From) + int(m.To)) / 2)
		p.setEnPassant(NewEnPassantTarget(mid))
	} else {
		p.setEnPassant(NoEnPassantTarget())
	}

	if m.Piece == Pawn || m.Is(FlagCapture) {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if mover == Black {
		p.fullmove++
	}
	p.flipTurn()
	return undo
}

// UnmakeMove reverses the most recent MakeMove. Undo records must be applied
// in reverse order of the moves they came from.
func (p *Position) UnmakeMove(u Undo) {
	m := u.move
	mover := p.turn.Opposite()
	p.turn = mover

	if m.Is(FlagCastle) {
		rookFrom, rookTo := castleRookSquares(m)
		p.movePiece(rookTo, rookFrom)
	}

	if m.Is(FlagPromotion) {
		p.remove(m.To)
		p.place(Piece{Type: Pawn, Color: mover}, m.From)
	} else {
		p.movePiece(m.To, m.From)
	}

	if m.Is(FlagCapture) {
		p.place(u.captured, u.capturedSq)
	}

	p.castling = u.castling
	p.enPassant = u.enPassant
	p.halfmove = u.halfmove
	p.fullmove = u.fullmove
	p.hash = u.hash
}

// Apply returns the position after m without mutating pos.
func Apply(pos Position, m Move) Position {
	pos.MakeMove(m)
	return pos
}

func castleRookSquares(m Move) (from, to Square) {
	rank := m.From.Rank()
	if m.To.File() > m.From.File() {
		from, _ = SquareFromCoords(rank, 7)
		to, _ = SquareFromCoords(rank, m.To.File()-1)
		return from, to
	}
	from, _ = SquareFromCoords(rank, 0)
	to, _ = SquareFromCoords(rank, m.To.File()+1)
	return from, to
}

// castlingRightForRookSquare maps a corner square to the right it anchors, so
// both moving a rook off its corner and capturing one on it revoke the right.
func castlingRightForRookSquare(sq Square) CastlingRights {
	switch sq {
	case Square(0):
		return CastlingWhiteQueenside
	case Square(7):
		return CastlingWhiteKingside
	case Square(56):
		return CastlingBlackQueenside
	case Square(63):
		return CastlingBlackKingside
	default:
		return CastlingNone
	}
}
