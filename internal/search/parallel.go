package search

import (
	"sync"

	"drawback_chess/internal/game"
)

// searchRootParallel scores root moves across Workers goroutines. Every
// move gets a full window and the winner is chosen by score with the lowest
// root index breaking ties, so the result matches the serial search.
func (s *Searcher) searchRootParallel(st *searchState, pos *game.Position, moves []game.Move, depth int) (game.Move, int, bool, bool) {
	type rootScore struct {
		score  int
		scored bool
	}
	results := make([]rootScore, len(moves))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				child := *pos
				child.MakeMove(moves[i])
				line := []uint64{pos.Hash()}
				score := s.alphabeta(st, &child, depth-1, 1, -MateScore, MateScore, line)
				if !st.stopped() {
					results[i] = rootScore{score: score, scored: true}
				}
			}
		}()
	}
	for i := range moves {
		if st.stopped() {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	maximizing := pos.Turn() == game.White
	var best game.Move
	bestScore := 0
	scored := 0
	for i, r := range results {
		if !r.scored {
			continue
		}
		if scored == 0 || better(maximizing, r.score, bestScore) {
			best = moves[i]
			bestScore = r.score
		}
		scored++
	}
	return best, bestScore, scored > 0, scored == len(moves)
}
