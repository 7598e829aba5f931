// Plays the engine against itself from the command line. Both sides use the
// same search; drawbacks and search settings come from flags or a JSON
// config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"drawback_chess/internal/eval"
	"drawback_chess/internal/game"
	"drawback_chess/internal/search"
	"drawback_chess/internal/variant"
)

func main() {
	configPath := flag.String("config", getenv("DCHESS_CONFIG", ""), "path to JSON game config")
	fen := flag.String("fen", getenv("DCHESS_FEN", ""), "starting position (default: standard)")
	maxMoves := flag.Int("max-moves", getenvInt("DCHESS_MAX_MOVES", 200), "stop after this many halfmoves")
	depth := flag.Int("depth", getenvInt("DCHESS_DEPTH", 0), "override search depth")
	moveTime := flag.Duration("movetime", 0, "override per-move time budget")
	whiteDrawback := flag.String("white-drawback", getenv("DCHESS_WHITE_DRAWBACK", ""), "drawback for White")
	blackDrawback := flag.String("black-drawback", getenv("DCHESS_BLACK_DRAWBACK", ""), "drawback for Black")
	quiet := flag.Bool("quiet", getenb("DCHESS_QUIET", false), "only print moves and the result")
	flag.Parse()

	cfg := variant.DefaultConfig()
	if *configPath != "" {
		loaded, err := variant.Load(*configPath)
		fatalIf(err, "config")
		cfg = loaded
	}
	if *whiteDrawback != "" {
		cfg.WhiteDrawback = *whiteDrawback
	}
	if *blackDrawback != "" {
		cfg.BlackDrawback = *blackDrawback
	}
	fatalIf(cfg.Validate(), "config")

	gameCfg, err := cfg.GameConfig()
	fatalIf(err, "config")

	eng := game.NewEngine()
	fatalIf(eng.Configure(gameCfg), "configure")
	if *fen != "" {
		fatalIf(eng.LoadFEN(*fen), "fen")
	}

	limits := cfg.SearchLimits()
	if *depth > 0 {
		limits.MaxDepth = *depth
	}
	if *moveTime > 0 {
		limits.MoveTime = *moveTime
	}

	evaluator := eval.New(cfg.EvalWeights(), eng.Generator().Moves)
	searcher := search.New(eng.Generator().Moves, evaluator, cfg.SearchOptions())

	if cfg.WhiteDrawback != "" || cfg.BlackDrawback != "" {
		log.Printf("Drawbacks: white=%s black=%s", orNone(cfg.WhiteDrawback), orNone(cfg.BlackDrawback))
	}
	if !*quiet {
		printBoard(eng.Position())
	}

	start := time.Now()
	played := 0
	for played < *maxMoves {
		state := eng.State()
		if state.GameOver {
			break
		}
		pos := eng.Position()
		result, err := searcher.Search(context.Background(), &pos, limits)
		fatalIf(err, "search")
		fatalIf(eng.MakeMove(result.Move), "move")
		played++

		log.Printf("%3d. %-5s %-7s score=%d depth=%d nodes=%d",
			played, result.Move, pos.Turn(), result.Score, result.Depth, result.Nodes)
		if !*quiet {
			printBoard(eng.Position())
		}
	}

	final := eng.State()
	log.Printf("Finished after %d halfmoves in %s: %s", played, time.Since(start).Round(time.Millisecond), final.Status)
	if final.HasWinner {
		log.Printf("Winner: %s", final.WinnerName)
	}
}

var (
	whitePiece = color.New(color.FgHiWhite, color.Bold)
	blackPiece = color.New(color.FgHiRed)
	boardFrame = color.New(color.FgHiBlack)
)

func printBoard(pos game.Position) {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		b.WriteString(boardFrame.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			sq, _ := game.SquareFromCoords(rank, file)
			pc, occupied := pos.PieceAt(sq)
			switch {
			case !occupied:
				b.WriteString(boardFrame.Sprint(". "))
			case pc.Color == game.White:
				b.WriteString(whitePiece.Sprintf("%s ", pc.Type))
			default:
				b.WriteString(blackPiece.Sprintf("%s ", pc.Type))
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(boardFrame.Sprint("  a b c d e f g h"))
	fmt.Println(b.String())
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func fatalIf(err error, label string) {
	if err != nil {
		log.Fatalf("%s: %v", label, err)
	}
}
