package game

// Rules are the variant toggles the generator honors. Drawback filters are
// layered on top by the caller; see Config.
type Rules struct {
	CastlingEnabled  bool
	EnPassantEnabled bool
	Promotions       PromotionChoices
}

func StandardRules() Rules {
	return Rules{CastlingEnabled: true, EnPassantEnabled: true, Promotions: PromotionAll}
}

func (r Rules) promotions() PromotionChoices {
	if r.Promotions == PromotionNone {
		return PromotionAll
	}
	return r.Promotions
}

type moveDelta struct {
	dr int
	df int
}

var (
	rookDirections = [...]moveDelta{
		{dr: 1, df: 0},
		{dr: -1, df: 0},
		{dr: 0, df: 1},
		{dr: 0, df: -1},
	}
	bishopDirections = [...]moveDelta{
		{dr: 1, df: 1},
		{dr: 1, df: -1},
		{dr: -1, df: 1},
		{dr: -1, df: -1},
	}
	knightOffsets = [...]moveDelta{
		{dr: 2, df: 1},
		{dr: 1, df: 2},
		{dr: -1, df: 2},
		{dr: -2, df: 1},
		{dr: -2, df: -1},
		{dr: -1, df: -2},
		{dr: 1, df: -2},
		{dr: 2, df: -1},
	}
	kingOffsets = [...]moveDelta{
		{dr: 1, df: 0}, {dr: 1, df: 1}, {dr: 0, df: 1}, {dr: -1, df: 1},
		{dr: -1, df: 0}, {dr: -1, df: -1}, {dr: 0, df: -1}, {dr: 1, df: -1},
	}
)

// LegalMoves generates every legal move for the side to move, in a
// deterministic order: ascending origin square, fixed per-kind direction
// order, promotions queen-first. Callers needing to distinguish checkmate
// from stalemate on an empty result use IsInCheck.
func LegalMoves(pos *Position, rules Rules) []Move {
	pseudo := PseudoLegalMoves(pos, rules)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if leavesKingExposed(pos, m) {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

// PseudoLegalMoves generates moves obeying piece-movement rules without the
// king-safety filter. Castling is fully validated here since its path
// conditions are part of the movement rule itself.
func PseudoLegalMoves(pos *Position, rules Rules) []Move {
	moves := make([]Move, 0, 48)
	mover := pos.turn
	for sq := Square(0); sq < 64; sq++ {
		pc, ok := pos.PieceAt(sq)
		if !ok || pc.Color != mover {
			continue
		}
		switch pc.Type {
		case Pawn:
			moves = appendPawnMoves(pos, rules, sq, moves)
		case Knight:
			moves = appendOffsetMoves(pos, sq, Knight, knightOffsets[:], moves)
		case Bishop:
			moves = appendSlidingMoves(pos, sq, Bishop, bishopDirections[:], moves)
		case Rook:
			moves = appendSlidingMoves(pos, sq, Rook, rookDirections[:], moves)
		case Queen:
			moves = appendSlidingMoves(pos, sq, Queen, rookDirections[:], moves)
			moves = appendSlidingMoves(pos, sq, Queen, bishopDirections[:], moves)
		case King:
			moves = appendOffsetMoves(pos, sq, King, kingOffsets[:], moves)
			if rules.CastlingEnabled {
				moves = appendCastleMoves(pos, sq, moves)
			}
		}
	}
	return moves
}

func appendPawnMoves(pos *Position, rules Rules, from Square, moves []Move) []Move {
	mover := pos.turn
	rank := from.Rank()
	file := from.File()
	dir := 1
	startRank := 1
	promoRank := 7
	if mover == Black {
		dir = -1
		startRank = 6
		promoRank = 0
	}

	push := func(m Move) []Move {
		if m.To.Rank() == promoRank {
			m.Flags |= FlagPromotion
			for _, pt := range rules.promotions().Types() {
				m.Promotion = pt
				moves = append(moves, m)
			}
			return moves
		}
		return append(moves, m)
	}

	if target, ok := SquareFromCoords(rank+dir, file); ok && !pos.allOcc.Has(target) {
		moves = push(Move{From: from, To: target, Piece: Pawn})
		if rank == startRank {
			if double, ok := SquareFromCoords(rank+2*dir, file); ok && !pos.allOcc.Has(double) {
				moves = append(moves, Move{From: from, To: double, Piece: Pawn, Flags: FlagDoublePush})
			}
		}
	}

	for _, df := range []int{-1, 1} {
		target, ok := SquareFromCoords(rank+dir, file+df)
		if !ok {
			continue
		}
		if victim, occupied := pos.PieceAt(target); occupied {
			if victim.Color != mover {
				moves = push(Move{From: from, To: target, Piece: Pawn, Captured: victim.Type, Flags: FlagCapture})
			}
			continue
		}
		if !rules.EnPassantEnabled {
			continue
		}
		epSq, valid := pos.enPassant.Square()
		if !valid || epSq != target {
			continue
		}
		victimSq, ok := SquareFromCoords(rank, file+df)
		if !ok {
			continue
		}
		if victim, occupied := pos.PieceAt(victimSq); occupied && victim.Color != mover && victim.Type == Pawn {
			moves = append(moves, Move{From: from, To: target, Piece: Pawn, Captured: Pawn, Flags: FlagCapture | FlagEnPassant})
		}
	}
	return moves
}

func appendOffsetMoves(pos *Position, from Square, pt PieceType, offsets []moveDelta, moves []Move) []Move {
	rank := from.Rank()
	file := from.File()
	for _, delta := range offsets {
		target, ok := SquareFromCoords(rank+delta.dr, file+delta.df)
		if !ok {
			continue
		}
		if occupant, occupied := pos.PieceAt(target); occupied {
			if occupant.Color != pos.turn {
				moves = append(moves, Move{From: from, To: target, Piece: pt, Captured: occupant.Type, Flags: FlagCapture})
			}
			continue
		}
		moves = append(moves, Move{From: from, To: target, Piece: pt})
	}
	return moves
}

func appendSlidingMoves(pos *Position, from Square, pt PieceType, directions []moveDelta, moves []Move) []Move {
	startRank := from.Rank()
	startFile := from.File()
	for _, delta := range directions {
		rank := startRank + delta.dr
		file := startFile + delta.df
		for {
			target, ok := SquareFromCoords(rank, file)
			if !ok {
				break
			}
			if occupant, occupied := pos.PieceAt(target); occupied {
				if occupant.Color != pos.turn {
					moves = append(moves, Move{From: from, To: target, Piece: pt, Captured: occupant.Type, Flags: FlagCapture})
				}
				break
			}
			moves = append(moves, Move{From: from, To: target, Piece: pt})
			rank += delta.dr
			file += delta.df
		}
	}
	return moves
}

func appendCastleMoves(pos *Position, from Square, moves []Move) []Move {
	for _, side := range []CastlingSide{CastleKingside, CastleQueenside} {
		if dest, ok := castleDestination(pos, from, side); ok {
			moves = append(moves, Move{From: from, To: dest, Piece: King, Flags: FlagCastle})
		}
	}
	return moves
}

func castleDestination(pos *Position, from Square, side CastlingSide) (Square, bool) {
	mover := pos.turn
	if !pos.castling.HasSide(mover, side) {
		return 0, false
	}
	rank := from.Rank()
	file := from.File()
	enemy := mover.Opposite()

	var rookFile int
	var travelFiles []int
	var emptyFiles []int
	var destFile int
	switch side {
	case CastleKingside:
		rookFile = 7
		travelFiles = []int{file + 1, file + 2}
		emptyFiles = []int{file + 1, file + 2}
		destFile = file + 2
	case CastleQueenside:
		rookFile = 0
		travelFiles = []int{file - 1, file - 2}
		emptyFiles = []int{file - 1, file - 2, file - 3}
		destFile = file - 2
	default:
		return 0, false
	}

	rookSq, ok := SquareFromCoords(rank, rookFile)
	if !ok {
		return 0, false
	}
	rook, occupied := pos.PieceAt(rookSq)
	if !occupied || rook.Color != mover || rook.Type != Rook {
		return 0, false
	}

	for _, f := range emptyFiles {
		sq, ok := SquareFromCoords(rank, f)
		if !ok {
			return 0, false
		}
		if pos.allOcc.Has(sq) {
			return 0, false
		}
	}

	if isSquareAttackedBy(pos, enemy, from) {
		return 0, false
	}
	for _, f := range travelFiles {
		sq, ok := SquareFromCoords(rank, f)
		if !ok {
			return 0, false
		}
		if isSquareAttackedBy(pos, enemy, sq) {
			return 0, false
		}
	}

	dest, ok := SquareFromCoords(rank, destFile)
	if !ok {
		return 0, false
	}
	return dest, true
}

// leavesKingExposed simulates m and reports whether the mover's own king is
// attacked afterwards.
func leavesKingExposed(pos *Position, m Move) bool {
	mover := pos.turn
	next := *pos
	next.MakeMove(m)
	kingSq, ok := next.KingSquare(mover)
	if !ok {
		return false
	}
	return isSquareAttackedBy(&next, mover.Opposite(), kingSq)
}

// IsInCheck reports whether the given color's king is currently attacked.
func IsInCheck(pos *Position, color Color) bool {
	kingSq, ok := pos.KingSquare(color)
	if !ok {
		return false
	}
	return isSquareAttackedBy(pos, color.Opposite(), kingSq)
}

// isSquareAttackedBy scans outward from target instead of generating the
// attacker's full move set; the search calls this on every node.
func isSquareAttackedBy(pos *Position, attacker Color, target Square) bool {
	rank := target.Rank()
	file := target.File()

	// Pawns attack diagonally toward their movement direction.
	pawnRank := rank - 1
	if attacker == Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if sq, ok := SquareFromCoords(pawnRank, file+df); ok {
			if pc, occupied := pos.PieceAt(sq); occupied && pc.Color == attacker && pc.Type == Pawn {
				return true
			}
		}
	}

	for _, delta := range knightOffsets {
		if sq, ok := SquareFromCoords(rank+delta.dr, file+delta.df); ok {
			if pc, occupied := pos.PieceAt(sq); occupied && pc.Color == attacker && pc.Type == Knight {
				return true
			}
		}
	}

	for _, delta := range kingOffsets {
		if sq, ok := SquareFromCoords(rank+delta.dr, file+delta.df); ok {
			if pc, occupied := pos.PieceAt(sq); occupied && pc.Color == attacker && pc.Type == King {
				return true
			}
		}
	}

	ray := func(directions []moveDelta, slider PieceType) bool {
		for _, delta := range directions {
			r := rank + delta.dr
			f := file + delta.df
			for {
				sq, ok := SquareFromCoords(r, f)
				if !ok {
					break
				}
				if pc, occupied := pos.PieceAt(sq); occupied {
					if pc.Color == attacker && (pc.Type == slider || pc.Type == Queen) {
						return true
					}
					break
				}
				r += delta.dr
				f += delta.df
			}
		}
		return false
	}
	if ray(rookDirections[:], Rook) {
		return true
	}
	return ray(bishopDirections[:], Bishop)
}
