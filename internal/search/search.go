// Package search implements adversarial move selection: depth-limited
// alpha-beta with iterative deepening over the filtered legal move set.
package search

import (
	"context"
	"errors"
	"sort"
	"time"

	"drawback_chess/internal/game"
)

// MateScore is the magnitude assigned to checkmate. Scores are offset by
// ply so nearer mates score higher.
const MateScore = 100_000

// mateThreshold separates mate scores from positional ones.
const mateThreshold = MateScore - 1_000

var ErrNoLegalMoves = errors.New("no legal moves")

// Generator produces the legal moves for the side to move. The controller's
// Generator.Moves satisfies this, so drawback filters apply inside the
// search too.
type Generator func(pos *game.Position) []game.Move

// Evaluator scores a position in White-positive centipawns.
type Evaluator interface {
	Evaluate(pos *game.Position) int
}

// Limits bounds a single search. Zero values mean unlimited, except
// MaxDepth, which defaults per Search.
type Limits struct {
	MaxDepth int
	MaxNodes int64
	MoveTime time.Duration
}

// Options selects search features. The zero value is a plain fixed-order
// minimax-equivalent alpha-beta, which the oracle tests rely on.
type Options struct {
	OrderMoves bool
	UseTable   bool
	Workers    int
	// HalfmoveLimit is the halfmove-clock draw threshold, matching the
	// controller's. Zero means the standard 100 halfmoves.
	HalfmoveLimit int
}

// Result is the outcome of a search. Move is always a legal move when the
// error is nil, even if every budget expired immediately. Truncated reports
// that a budget cut the last iteration short.
type Result struct {
	Move      game.Move
	Score     int
	Depth     int
	Nodes     int64
	Truncated bool
}

type Searcher struct {
	gen           Generator
	eval          Evaluator
	opts          Options
	halfmoveLimit int
	table         *Table
}

func New(gen Generator, eval Evaluator, opts Options) *Searcher {
	s := &Searcher{gen: gen, eval: eval, opts: opts, halfmoveLimit: opts.HalfmoveLimit}
	if s.halfmoveLimit <= 0 {
		s.halfmoveLimit = 100
	}
	if opts.UseTable {
		s.table = NewTable()
	}
	return s
}

// Search picks a move by iterative deepening. It is fail-soft: the best
// move from the deepest fully-scored iteration is returned when a budget
// expires, and the first legal move before any iteration completes.
func (s *Searcher) Search(ctx context.Context, pos *game.Position, limits Limits) (Result, error) {
	rootMoves := s.gen(pos)
	if len(rootMoves) == 0 {
		return Result{}, ErrNoLegalMoves
	}
	if s.opts.OrderMoves {
		rootMoves = s.ordered(rootMoves)
	}

	st := newSearchState(ctx, limits)
	res := Result{Move: rootMoves[0]}

	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		if limits.MaxNodes > 0 || limits.MoveTime > 0 {
			maxDepth = 64
		} else {
			maxDepth = 4
		}
	}

	for depth := 1; depth <= maxDepth; depth++ {
		move, score, scored, complete := s.searchRoot(st, pos, rootMoves, depth)
		if scored {
			res.Move = move
			res.Score = score
			res.Depth = depth
		}
		if !complete {
			res.Truncated = true
			break
		}
		if score >= mateThreshold || score <= -mateThreshold {
			break
		}
	}
	res.Nodes = st.nodes.Load()
	return res, nil
}

// Minimax is the unpruned oracle: it explores the full tree to the given
// depth and returns the same move alpha-beta would. Kept for cross-checking
// and debugging, not for play.
func (s *Searcher) Minimax(pos *game.Position, depth int) (Result, error) {
	rootMoves := s.gen(pos)
	if len(rootMoves) == 0 {
		return Result{}, ErrNoLegalMoves
	}
	st := newSearchState(context.Background(), Limits{})
	maximizing := pos.Turn() == game.White
	best := rootMoves[0]
	bestScore := 0
	for i, m := range rootMoves {
		child := *pos
		child.MakeMove(m)
		score := s.minimax(st, &child, depth-1, 1, []uint64{pos.Hash()})
		if i == 0 || better(maximizing, score, bestScore) {
			best = m
			bestScore = score
		}
	}
	return Result{Move: best, Score: bestScore, Depth: depth, Nodes: st.nodes.Load()}, nil
}

// searchRoot scores every root move with a full window so the chosen move
// matches the unpruned oracle exactly. Returns whether at least one move was
// fully scored and whether the iteration ran to completion.
func (s *Searcher) searchRoot(st *searchState, pos *game.Position, moves []game.Move, depth int) (game.Move, int, bool, bool) {
	if st.stopped() {
		return game.Move{}, 0, false, false
	}
	if s.opts.Workers > 1 {
		return s.searchRootParallel(st, pos, moves, depth)
	}
	maximizing := pos.Turn() == game.White
	line := []uint64{pos.Hash()}
	var best game.Move
	bestScore := 0
	scored := 0
	for _, m := range moves {
		child := *pos
		child.MakeMove(m)
		score := s.alphabeta(st, &child, depth-1, 1, -MateScore, MateScore, line)
		if st.stopped() {
			break
		}
		if scored == 0 || better(maximizing, score, bestScore) {
			best = m
			bestScore = score
		}
		scored++
	}
	return best, bestScore, scored > 0, scored == len(moves)
}

func (s *Searcher) alphabeta(st *searchState, pos *game.Position, depth, ply, alpha, beta int, line []uint64) int {
	if st.countNode() {
		return s.eval.Evaluate(pos)
	}
	hash := pos.Hash()
	for _, h := range line {
		if h == hash {
			return 0
		}
	}

	moves := s.gen(pos)
	if len(moves) == 0 {
		if game.IsInCheck(pos, pos.Turn()) {
			if pos.Turn() == game.White {
				return -(MateScore - ply)
			}
			return MateScore - ply
		}
		return 0
	}
	if s.drawnByRule(pos) {
		return 0
	}
	if depth <= 0 {
		return s.eval.Evaluate(pos)
	}

	alphaOrig, betaOrig := alpha, beta
	if s.opts.UseTable {
		if score, ok := s.table.Probe(hash, depth, &alpha, &beta); ok {
			return score
		}
	}
	if s.opts.OrderMoves {
		moves = s.ordered(moves)
	}

	line = append(line, hash)
	maximizing := pos.Turn() == game.White
	var best int
	if maximizing {
		best = -MateScore
	} else {
		best = MateScore
	}
	for _, m := range moves {
		child := *pos
		child.MakeMove(m)
		score := s.alphabeta(st, &child, depth-1, ply+1, alpha, beta, line)
		if st.stopped() {
			return best
		}
		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			break
		}
	}

	if s.opts.UseTable {
		s.table.Store(hash, depth, best, boundFor(best, alphaOrig, betaOrig))
	}
	return best
}

func (s *Searcher) minimax(st *searchState, pos *game.Position, depth, ply int, line []uint64) int {
	st.countNode()
	hash := pos.Hash()
	for _, h := range line {
		if h == hash {
			return 0
		}
	}
	moves := s.gen(pos)
	if len(moves) == 0 {
		if game.IsInCheck(pos, pos.Turn()) {
			if pos.Turn() == game.White {
				return -(MateScore - ply)
			}
			return MateScore - ply
		}
		return 0
	}
	if s.drawnByRule(pos) {
		return 0
	}
	if depth <= 0 {
		return s.eval.Evaluate(pos)
	}
	line = append(line, hash)
	maximizing := pos.Turn() == game.White
	var best int
	if maximizing {
		best = -MateScore
	} else {
		best = MateScore
	}
	for _, m := range moves {
		child := *pos
		child.MakeMove(m)
		score := s.minimax(st, &child, depth-1, ply+1, line)
		if better(maximizing, score, best) {
			best = score
		}
	}
	return best
}

// drawnByRule reports the rule draws a position carries on its own: the
// halfmove-clock limit and insufficient mating material. Checkmate takes
// precedence, so callers test this after the empty-move-list branch.
func (s *Searcher) drawnByRule(pos *game.Position) bool {
	return pos.HalfmoveClock() >= s.halfmoveLimit || game.InsufficientMaterial(pos)
}

func better(maximizing bool, score, best int) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

// ordered sorts captures first, most valuable victim with least valuable
// attacker leading. The sort is stable so equal moves keep generation order.
func (s *Searcher) ordered(moves []game.Move) []game.Move {
	out := make([]game.Move, len(moves))
	copy(out, moves)
	sort.SliceStable(out, func(i, j int) bool {
		return captureGain(out[i]) > captureGain(out[j])
	})
	return out
}

var orderValues = [game.PieceTypeCount]int{1, 3, 3, 5, 9, 20}

func captureGain(m game.Move) int {
	if !m.Is(game.FlagCapture) {
		return 0
	}
	return orderValues[m.Captured]*10 - orderValues[m.Piece]
}
