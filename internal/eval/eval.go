// Package eval scores positions in centipawns from White's point of view.
package eval

import "drawback_chess/internal/game"

// Weights tunes the evaluation terms. PieceValues is indexed by
// game.PieceType.
type Weights struct {
	PieceValues    [game.PieceTypeCount]int `json:"pieceValues"`
	Mobility       int                      `json:"mobility"`
	KingDanger     int                      `json:"kingDanger"`
	UsePieceSquare bool                     `json:"usePieceSquare"`
}

func DefaultWeights() Weights {
	return Weights{
		PieceValues:    [game.PieceTypeCount]int{100, 280, 320, 479, 929, 60000},
		Mobility:       2,
		KingDanger:     50,
		UsePieceSquare: true,
	}
}

// MoveGen produces the legal moves for the side to move. Pass the
// controller's Generator.Moves so drawback filters shape the mobility term
// the same way they shape the search.
type MoveGen func(pos *game.Position) []game.Move

// Evaluator is a stateless scorer; one instance is shared across search
// goroutines.
type Evaluator struct {
	weights Weights
	gen     MoveGen
}

func New(weights Weights, gen MoveGen) *Evaluator {
	if gen == nil {
		gen = standardMoves
	}
	return &Evaluator{weights: weights, gen: gen}
}

func NewDefault() *Evaluator { return New(DefaultWeights(), nil) }

func standardMoves(pos *game.Position) []game.Move {
	return game.LegalMoves(pos, game.StandardRules())
}

func (e *Evaluator) Weights() Weights { return e.weights }

// Evaluate returns a White-positive centipawn score. Positive favors White,
// negative favors Black. Terminal positions are the search's concern; a
// missing king (variant setups) scores as a decided game.
func (e *Evaluator) Evaluate(pos *game.Position) int {
	if pos.Pieces(game.White, game.King).Empty() {
		return -e.weights.PieceValues[game.King]
	}
	if pos.Pieces(game.Black, game.King).Empty() {
		return e.weights.PieceValues[game.King]
	}

	score := 0
	for pt := game.Pawn; pt < game.King; pt++ {
		value := e.weights.PieceValues[pt]
		score += value * pos.Pieces(game.White, pt).Count()
		score -= value * pos.Pieces(game.Black, pt).Count()
	}

	if e.weights.UsePieceSquare {
		for pt := game.Pawn; pt <= game.King; pt++ {
			table := &pieceSquareTables[pt]
			pos.Pieces(game.White, pt).Iter(func(sq game.Square) {
				score += table[sq]
			})
			pos.Pieces(game.Black, pt).Iter(func(sq game.Square) {
				score -= table[sq^56]
			})
		}
	}

	if e.weights.Mobility != 0 {
		white := pos.WithSideToMove(game.White)
		black := pos.WithSideToMove(game.Black)
		score += e.weights.Mobility * len(e.gen(&white))
		score -= e.weights.Mobility * len(e.gen(&black))
	}

	if e.weights.KingDanger != 0 {
		if game.IsInCheck(pos, game.White) {
			score -= e.weights.KingDanger
		}
		if game.IsInCheck(pos, game.Black) {
			score += e.weights.KingDanger
		}
	}
	return score
}
