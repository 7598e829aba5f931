package game

import (
	"fmt"
	"strconv"
	"strings"
)

// StartingFEN is the standard initial layout in Forsyth-Edwards notation.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN renders the position in Forsyth-Edwards notation.
func FEN(pos *Position) string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq, _ := SquareFromCoords(rank, file)
			pc, occupied := pos.PieceAt(sq)
			if !occupied {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteString(pc.String())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
	fmt.Fprintf(&b, " %s %s %s %d %d",
		fenColor(pos.Turn()), pos.Castling(), pos.EnPassant(), pos.HalfmoveClock(), pos.FullmoveNumber())
	return b.String()
}

func fenColor(c Color) string {
	if c == White {
		return "w"
	}
	return "b"
}

// ParseFEN parses a FEN string, requiring exactly one king per side.
func ParseFEN(s string) (Position, error) { return parseFEN(s, false) }

// ParseFENRelaxed parses a FEN string without the king-count requirement,
// for variant setups that field fewer than two kings.
func ParseFENRelaxed(s string) (Position, error) { return parseFEN(s, true) }

func parseFEN(s string, allowMissingKing bool) (Position, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 4 || len(fields) > 6 {
		return Position{}, fmt.Errorf("%w: fen: expected 4 to 6 fields, got %d", ErrInvalidConfig, len(fields))
	}

	var p Position
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("%w: fen: expected 8 ranks, got %d", ErrInvalidConfig, len(ranks))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for _, r := range row {
			if r >= '1' && r <= '8' {
				file += int(r - '0')
				continue
			}
			pc, ok := pieceFromFENRune(r)
			if !ok {
				return Position{}, fmt.Errorf("%w: fen: invalid piece %q", ErrInvalidConfig, string(r))
			}
			sq, ok := SquareFromCoords(rank, file)
			if !ok {
				return Position{}, fmt.Errorf("%w: fen: rank %d overflows", ErrInvalidConfig, rank+1)
			}
			p.place(pc, sq)
			file++
		}
		if file != 8 {
			return Position{}, fmt.Errorf("%w: fen: rank %d covers %d files", ErrInvalidConfig, rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		p.turn = White
	case "b":
		p.turn = Black
	default:
		return Position{}, fmt.Errorf("%w: fen: invalid side to move %q", ErrInvalidConfig, fields[1])
	}

	castling, err := ParseCastlingRights(fields[2])
	if err != nil {
		return Position{}, fmt.Errorf("%w: fen: %v", ErrInvalidConfig, err)
	}
	p.castling = castling

	ep, err := ParseEnPassantTarget(fields[3])
	if err != nil {
		return Position{}, fmt.Errorf("%w: fen: %v", ErrInvalidConfig, err)
	}
	p.enPassant = ep

	p.halfmove = 0
	p.fullmove = 1
	if len(fields) > 4 {
		p.halfmove, err = strconv.Atoi(fields[4])
		if err != nil || p.halfmove < 0 {
			return Position{}, fmt.Errorf("%w: fen: invalid halfmove clock %q", ErrInvalidConfig, fields[4])
		}
	}
	if len(fields) > 5 {
		p.fullmove, err = strconv.Atoi(fields[5])
		if err != nil || p.fullmove < 1 {
			return Position{}, fmt.Errorf("%w: fen: invalid fullmove number %q", ErrInvalidConfig, fields[5])
		}
	}

	if !allowMissingKing {
		for _, c := range []Color{White, Black} {
			if n := p.Pieces(c, King).Count(); n != 1 {
				return Position{}, fmt.Errorf("%w: fen: %s has %d kings", ErrInvalidConfig, c, n)
			}
		}
	}

	p.hash = p.computeHash()
	return p, nil
}

func pieceFromFENRune(r rune) (Piece, bool) {
	color := White
	if r >= 'a' && r <= 'z' {
		color = Black
		r -= 'a' - 'A'
	}
	switch r {
	case 'P':
		return Piece{Type: Pawn, Color: color}, true
	case 'N':
		return Piece{Type: Knight, Color: color}, true
	case 'B':
		return Piece{Type: Bishop, Color: color}, true
	case 'R':
		return Piece{Type: Rook, Color: color}, true
	case 'Q':
		return Piece{Type: Queen, Color: color}, true
	case 'K':
		return Piece{Type: King, Color: color}, true
	default:
		return Piece{}, false
	}
}
