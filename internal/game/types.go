package game

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Index() int { return int(c) }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return 0, false
	}
}

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceTypeCount is the size of the closed piece-kind set.
const PieceTypeCount = 6

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("piece(%d)", p)
	}
}

// Piece pairs a kind with a color. The zero value is only meaningful
// together with an occupancy check; see Position.PieceAt.
type Piece struct {
	Type  PieceType
	Color Color
}

func (p Piece) String() string {
	s := p.Type.String()
	if p.Color == Black {
		return strings.ToLower(s)
	}
	return s
}

type Square uint8

func (s Square) Rank() int { return int(s) >> 3 }
func (s Square) File() int { return int(s) & 7 }

func (s Square) String() string {
	file := byte('a' + s.File())
	rank := byte('1' + s.Rank())
	return string([]byte{file, rank})
}

func CoordToSquare(coord string) (Square, bool) {
	if len(coord) != 2 {
		return 0, false
	}
	file := coord[0]
	rank := coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	r := int(rank - '1')
	c := int(file - 'a')
	return Square(r*8 + c), true
}

func SquareFromCoords(rank, file int) (Square, bool) {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return 0, false
	}
	return Square(rank*8 + file), true
}

type CastlingRights uint8

const (
	CastlingNone          CastlingRights = 0
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside
	CastlingAll = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

type CastlingSide uint8

const (
	CastleKingside CastlingSide = iota
	CastleQueenside
)

func (cs CastlingSide) String() string {
	switch cs {
	case CastleKingside:
		return "kingside"
	case CastleQueenside:
		return "queenside"
	default:
		return "?"
	}
}

func CastlingRight(color Color, side CastlingSide) CastlingRights {
	switch color {
	case White:
		if side == CastleQueenside {
			return CastlingWhiteQueenside
		}
		return CastlingWhiteKingside
	case Black:
		if side == CastleQueenside {
			return CastlingBlackQueenside
		}
		return CastlingBlackKingside
	default:
		return CastlingNone
	}
}

func CastlingRightsForColor(color Color) CastlingRights {
	switch color {
	case White:
		return CastlingWhiteKingside | CastlingWhiteQueenside
	case Black:
		return CastlingBlackKingside | CastlingBlackQueenside
	default:
		return CastlingNone
	}
}

func (cr CastlingRights) Has(right CastlingRights) bool { return cr&right != 0 }

func (cr CastlingRights) HasSide(color Color, side CastlingSide) bool {
	return cr.Has(CastlingRight(color, side))
}

func (cr CastlingRights) With(right CastlingRights) CastlingRights { return cr | right }

func (cr CastlingRights) Without(right CastlingRights) CastlingRights { return cr &^ right }

func (cr CastlingRights) WithoutColor(color Color) CastlingRights {
	return cr.Without(CastlingRightsForColor(color))
}

func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var b strings.Builder
	if cr.Has(CastlingWhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackQueenside) {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func ParseCastlingRights(s string) (CastlingRights, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" {
		return CastlingNone, nil
	}
	var rights CastlingRights
	for _, r := range trimmed {
		switch r {
		case 'K':
			rights |= CastlingWhiteKingside
		case 'Q':
			rights |= CastlingWhiteQueenside
		case 'k':
			rights |= CastlingBlackKingside
		case 'q':
			rights |= CastlingBlackQueenside
		default:
			return CastlingNone, fmt.Errorf("invalid castling flag %q", string(r))
		}
	}
	return rights, nil
}

func (cr CastlingRights) MarshalText() ([]byte, error) { return []byte(cr.String()), nil }

func (cr *CastlingRights) UnmarshalText(text []byte) error {
	parsed, err := ParseCastlingRights(string(text))
	if err != nil {
		return err
	}
	*cr = parsed
	return nil
}

type EnPassantTarget struct {
	square Square
	valid  bool
}

func NewEnPassantTarget(sq Square) EnPassantTarget { return EnPassantTarget{square: sq, valid: true} }

func NoEnPassantTarget() EnPassantTarget { return EnPassantTarget{} }

func (e EnPassantTarget) Valid() bool { return e.valid }

func (e EnPassantTarget) Square() (Square, bool) {
	if !e.valid {
		return 0, false
	}
	return e.square, true
}

func (e EnPassantTarget) String() string {
	if !e.valid {
		return "-"
	}
	return e.square.String()
}

func ParseEnPassantTarget(s string) (EnPassantTarget, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" {
		return EnPassantTarget{}, nil
	}
	sq, ok := CoordToSquare(strings.ToLower(trimmed))
	if !ok {
		return EnPassantTarget{}, fmt.Errorf("invalid en-passant square %q", s)
	}
	return NewEnPassantTarget(sq), nil
}

func (e EnPassantTarget) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EnPassantTarget) UnmarshalText(text []byte) error {
	parsed, err := ParseEnPassantTarget(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

type PromotionChoices uint8

const (
	PromotionNone  PromotionChoices = 0
	PromoteToQueen PromotionChoices = 1 << iota
	PromoteToRook
	PromoteToBishop
	PromoteToKnight
	PromotionAll = PromoteToQueen | PromoteToRook | PromoteToBishop | PromoteToKnight
)

func PromotionChoicesFromTypes(types ...PieceType) PromotionChoices {
	var choices PromotionChoices
	for _, pt := range types {
		choices = choices.WithPiece(pt)
	}
	return choices
}

func (pc PromotionChoices) WithPiece(pt PieceType) PromotionChoices {
	switch pt {
	case Queen:
		return pc | PromoteToQueen
	case Rook:
		return pc | PromoteToRook
	case Bishop:
		return pc | PromoteToBishop
	case Knight:
		return pc | PromoteToKnight
	default:
		return pc
	}
}

func (pc PromotionChoices) Contains(pt PieceType) bool {
	switch pt {
	case Queen:
		return pc&PromoteToQueen != 0
	case Rook:
		return pc&PromoteToRook != 0
	case Bishop:
		return pc&PromoteToBishop != 0
	case Knight:
		return pc&PromoteToKnight != 0
	default:
		return false
	}
}

func (pc PromotionChoices) Types() []PieceType {
	var out []PieceType
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if pc.Contains(pt) {
			out = append(out, pt)
		}
	}
	return out
}

func (pc PromotionChoices) Default() PieceType {
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if pc.Contains(pt) {
			return pt
		}
	}
	return Queen
}

func (pc PromotionChoices) String() string {
	if pc == PromotionNone {
		return "-"
	}
	var b strings.Builder
	if pc.Contains(Queen) {
		b.WriteByte('Q')
	}
	if pc.Contains(Rook) {
		b.WriteByte('R')
	}
	if pc.Contains(Bishop) {
		b.WriteByte('B')
	}
	if pc.Contains(Knight) {
		b.WriteByte('N')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func ParsePromotionPiece(s string) (PieceType, bool) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	switch trimmed {
	case "q", "queen":
		return Queen, true
	case "r", "rook":
		return Rook, true
	case "b", "bishop":
		return Bishop, true
	case "n", "knight":
		return Knight, true
	default:
		return 0, false
	}
}

func ParsePromotionChoices(s string) (PromotionChoices, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" {
		return PromotionNone, nil
	}
	var choices PromotionChoices
	for _, r := range trimmed {
		if r == ',' || r == ' ' || r == '/' {
			continue
		}
		pt, ok := ParsePromotionPiece(string(r))
		if !ok {
			return PromotionNone, fmt.Errorf("invalid promotion piece %q", string(r))
		}
		choices = choices.WithPiece(pt)
	}
	return choices, nil
}

func (pc PromotionChoices) MarshalText() ([]byte, error) { return []byte(pc.String()), nil }

func (pc *PromotionChoices) UnmarshalText(text []byte) error {
	parsed, err := ParsePromotionChoices(string(text))
	if err != nil {
		return err
	}
	*pc = parsed
	return nil
}

// MoveFlags records the special-move properties of a generated Move.
type MoveFlags uint8

const (
	FlagCapture MoveFlags = 1 << iota
	FlagEnPassant
	FlagCastle
	FlagDoublePush
	FlagPromotion
)

// Move is an immutable description of a single legal (or pseudo-legal) move.
// Captured is only meaningful when FlagCapture is set.
type Move struct {
	From      Square
	To        Square
	Piece     PieceType
	Promotion PieceType
	Captured  PieceType
	Flags     MoveFlags
}

func (m Move) Is(f MoveFlags) bool { return m.Flags&f != 0 }

// String renders long algebraic coordinates, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Is(FlagPromotion) {
		s += strings.ToLower(m.Promotion.String())
	}
	return s
}

// MoveFilter prunes a legal move list, the hook variant drawbacks plug into.
type MoveFilter func(pos *Position, moves []Move) []Move
