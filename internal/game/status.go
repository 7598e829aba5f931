package game

const (
	StatusOngoing              = "ongoing"
	StatusCheck                = "check"
	StatusCheckmate            = "checkmate"
	StatusStalemate            = "stalemate"
	StatusInsufficientMaterial = "insufficient material"
	StatusFiftyMoveRule        = "fifty-move rule"
	StatusRepetition           = "repetition"
)

// Status summarizes the game result for the side to move.
type Status struct {
	InCheck   bool   `json:"inCheck"`
	GameOver  bool   `json:"gameOver"`
	HasWinner bool   `json:"hasWinner"`
	Winner    Color  `json:"winner"`
	Status    string `json:"status"`
}

// EvaluateStatus classifies the position given the side to move's legal
// moves. Draw conditions that depend on game history (repetition, the
// halfmove clock) are layered on by the controller; this covers what the
// position alone decides.
func EvaluateStatus(pos *Position, legal []Move) Status {
	current := pos.Turn()
	st := Status{
		InCheck: IsInCheck(pos, current),
		Status:  StatusOngoing,
	}
	if st.InCheck {
		st.Status = StatusCheck
	}
	if len(legal) == 0 {
		st.GameOver = true
		if st.InCheck {
			st.Status = StatusCheckmate
			st.HasWinner = true
			st.Winner = current.Opposite()
		} else {
			st.Status = StatusStalemate
		}
		return st
	}
	if InsufficientMaterial(pos) {
		st.GameOver = true
		st.Status = StatusInsufficientMaterial
	}
	return st
}

// InsufficientMaterial reports whether neither side can possibly deliver
// mate: bare kings, a lone minor piece, or same-colored lone bishops.
func InsufficientMaterial(pos *Position) bool {
	for _, c := range []Color{White, Black} {
		if !pos.Pieces(c, Pawn).Empty() || !pos.Pieces(c, Rook).Empty() || !pos.Pieces(c, Queen).Empty() {
			return false
		}
	}
	whiteMinors := pos.Pieces(White, Knight).Count() + pos.Pieces(White, Bishop).Count()
	blackMinors := pos.Pieces(Black, Knight).Count() + pos.Pieces(Black, Bishop).Count()
	if whiteMinors+blackMinors <= 1 {
		return true
	}
	if whiteMinors == 1 && blackMinors == 1 &&
		pos.Pieces(White, Bishop).Count() == 1 && pos.Pieces(Black, Bishop).Count() == 1 {
		wb, _ := pos.Pieces(White, Bishop).PopLSB()
		bb, _ := pos.Pieces(Black, Bishop).PopLSB()
		return squareShade(wb) == squareShade(bb)
	}
	return false
}

func squareShade(sq Square) int { return (sq.Rank() + sq.File()) & 1 }
