package game

import "fmt"

// Config is the per-game rule configuration. Filters implement drawback
// style restrictions: each side's legal moves pass through its filter before
// anything else sees them.
type Config struct {
	Rules               Rules
	WhiteFilter         MoveFilter
	BlackFilter         MoveFilter
	RepetitionThreshold int
	HalfmoveLimit       int
	AllowMissingKing    bool
}

func DefaultConfig() Config {
	return Config{
		Rules:               StandardRules(),
		RepetitionThreshold: 3,
		HalfmoveLimit:       100,
	}
}

func (c Config) normalized() Config {
	if c.RepetitionThreshold == 0 {
		c.RepetitionThreshold = 3
	}
	if c.HalfmoveLimit == 0 {
		c.HalfmoveLimit = 100
	}
	return c
}

func (c Config) validate() error {
	if c.RepetitionThreshold < 2 {
		return fmt.Errorf("%w: repetition threshold %d", ErrInvalidConfig, c.RepetitionThreshold)
	}
	if c.HalfmoveLimit < 1 {
		return fmt.Errorf("%w: halfmove limit %d", ErrInvalidConfig, c.HalfmoveLimit)
	}
	return nil
}

// Generator produces the filtered legal move list for a configuration. The
// search engine uses one directly so it explores exactly the moves the
// controller would accept.
type Generator struct {
	rules   Rules
	filters [2]MoveFilter
}

func NewGenerator(cfg Config) *Generator {
	cfg = cfg.normalized()
	return &Generator{
		rules:   cfg.Rules,
		filters: [2]MoveFilter{cfg.WhiteFilter, cfg.BlackFilter},
	}
}

// Moves returns the legal moves for the side to move, after its filter.
func (g *Generator) Moves(pos *Position) []Move {
	moves := LegalMoves(pos, g.rules)
	if filter := g.filters[pos.Turn().Index()]; filter != nil {
		moves = filter(pos, moves)
	}
	return moves
}

func (g *Generator) Rules() Rules { return g.rules }

// MoveRequest is passed in by an external layer to request a move.
type MoveRequest struct {
	From         Square
	To           Square
	Promotion    PieceType
	HasPromotion bool
}

// PieceState is a serializable representation of a piece on a square.
type PieceState struct {
	Color      Color     `json:"color"`
	ColorName  string    `json:"colorName"`
	Type       PieceType `json:"type"`
	TypeName   string    `json:"typeName"`
	Square     Square    `json:"square"`
	SquareName string    `json:"squareName"`
}

// BoardState is a serializable representation of the game state.
type BoardState struct {
	Pieces     []PieceState     `json:"pieces"`
	Turn       Color            `json:"turn"`
	TurnName   string           `json:"turnName"`
	LastNote   string           `json:"lastNote"`
	Locked     bool             `json:"locked"`
	InCheck    bool             `json:"inCheck"`
	GameOver   bool             `json:"gameOver"`
	Status     string           `json:"status"`
	HasWinner  bool             `json:"hasWinner"`
	Winner     Color            `json:"winner"`
	WinnerName string           `json:"winnerName"`
	Castling   CastlingRights   `json:"castling"`
	EnPassant  EnPassantTarget  `json:"enPassant"`
	Promotions PromotionChoices `json:"promotions"`
	Halfmove   int              `json:"halfmove"`
	Fullmove   int              `json:"fullmove"`
	FEN        string           `json:"fen"`
}

// Engine drives a single game: it owns the position, validates incoming
// moves against the filtered legal set, tracks history for undo and
// repetition, and keeps the game status current.
type Engine struct {
	cfg      Config
	gen      *Generator
	pos      Position
	history  []Undo
	seen     map[uint64]int
	locked   bool
	lastNote string
	status   Status
}

// NewEngine creates and initializes a new game engine.
func NewEngine() *Engine {
	eng := &Engine{cfg: DefaultConfig()}
	eng.Reset()
	return eng
}

// Reset clears the engine state and sets up a standard new game.
func (e *Engine) Reset() {
	e.gen = NewGenerator(e.cfg)
	e.pos = StartingPosition()
	e.history = e.history[:0]
	e.seen = map[uint64]int{e.pos.Hash(): 1}
	e.locked = false
	e.lastNote = "New game"
	e.updateStatus()
}

// Configure replaces the game configuration. Rejected once the first move
// has been made.
func (e *Engine) Configure(cfg Config) error {
	if e.locked {
		return ErrEngineLocked
	}
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return err
	}
	e.cfg = cfg
	e.gen = NewGenerator(cfg)
	e.lastNote = "Configured game rules"
	e.updateStatus()
	return nil
}

func (e *Engine) Config() Config { return e.cfg }

// Generator exposes the configured move generator for the search layer.
func (e *Engine) Generator() *Generator { return e.gen }

// LegalMoves lists the filtered legal moves for the side to move.
func (e *Engine) LegalMoves() []Move {
	return e.gen.Moves(&e.pos)
}

// Move is the primary entry point for making a move. The first accepted
// move locks the configuration.
func (e *Engine) Move(req MoveRequest) error {
	if e.status.GameOver {
		return ErrGameOver
	}
	chosen, ok := e.matchRequest(req)
	if !ok {
		return fmt.Errorf("%w: %s%s", ErrInvalidMove, req.From, req.To)
	}
	e.commit(chosen)
	return nil
}

// MakeMove applies a generator-produced move directly, for callers that
// already hold a Move value (the search driver).
func (e *Engine) MakeMove(m Move) error {
	if e.status.GameOver {
		return ErrGameOver
	}
	for _, legal := range e.gen.Moves(&e.pos) {
		if legal == m {
			e.commit(m)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidMove, m)
}

// Undo reverses the most recent move. Undoing the last move on the board
// unlocks the configuration again.
func (e *Engine) Undo() error {
	if len(e.history) == 0 {
		return ErrNothingToUndo
	}
	e.seen[e.pos.Hash()]--
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.pos.UnmakeMove(last)
	if len(e.history) == 0 {
		e.locked = false
	}
	e.lastNote = fmt.Sprintf("Undid %s", last.Move())
	e.updateStatus()
	return nil
}

// Position returns a copy of the current position.
func (e *Engine) Position() Position { return e.pos }

func (e *Engine) FEN() string { return FEN(&e.pos) }

// LoadFEN replaces the game with the given position. Like Reset, it
// discards history and unlocks the configuration.
func (e *Engine) LoadFEN(fen string) error {
	var pos Position
	var err error
	if e.cfg.AllowMissingKing {
		pos, err = ParseFENRelaxed(fen)
	} else {
		pos, err = ParseFEN(fen)
	}
	if err != nil {
		return err
	}
	e.pos = pos
	e.history = e.history[:0]
	e.seen = map[uint64]int{pos.Hash(): 1}
	e.locked = false
	e.lastNote = "Loaded position"
	e.updateStatus()
	return nil
}

// Status reports the current game status.
func (e *Engine) Status() Status { return e.status }

// State returns a serializable representation of the current game state.
func (e *Engine) State() BoardState {
	winnerName := ""
	if e.status.HasWinner {
		winnerName = e.status.Winner.String()
	}
	state := BoardState{
		Pieces:     make([]PieceState, 0, 32),
		Turn:       e.pos.Turn(),
		TurnName:   e.pos.Turn().String(),
		LastNote:   e.lastNote,
		Locked:     e.locked,
		InCheck:    e.status.InCheck,
		GameOver:   e.status.GameOver,
		Status:     e.status.Status,
		HasWinner:  e.status.HasWinner,
		Winner:     e.status.Winner,
		WinnerName: winnerName,
		Castling:   e.pos.Castling(),
		EnPassant:  e.pos.EnPassant(),
		Promotions: e.cfg.Rules.promotions(),
		Halfmove:   e.pos.HalfmoveClock(),
		Fullmove:   e.pos.FullmoveNumber(),
		FEN:        FEN(&e.pos),
	}
	for sq := Square(0); sq < 64; sq++ {
		pc, occupied := e.pos.PieceAt(sq)
		if !occupied {
			continue
		}
		state.Pieces = append(state.Pieces, PieceState{
			Color:      pc.Color,
			ColorName:  pc.Color.String(),
			Type:       pc.Type,
			TypeName:   pc.Type.String(),
			Square:     sq,
			SquareName: sq.String(),
		})
	}
	return state
}

func (e *Engine) matchRequest(req MoveRequest) (Move, bool) {
	for _, m := range e.gen.Moves(&e.pos) {
		if m.From != req.From || m.To != req.To {
			continue
		}
		if m.Is(FlagPromotion) {
			want := e.cfg.Rules.promotions().Default()
			if req.HasPromotion {
				want = req.Promotion
			}
			if m.Promotion != want {
				continue
			}
		}
		return m, true
	}
	return Move{}, false
}

func (e *Engine) commit(m Move) {
	e.locked = true
	undo := e.pos.MakeMove(m)
	e.history = append(e.history, undo)
	e.seen[e.pos.Hash()]++
	e.lastNote = describeMove(m)
	e.updateStatus()
}

func (e *Engine) updateStatus() {
	legal := e.gen.Moves(&e.pos)
	st := EvaluateStatus(&e.pos, legal)
	if !st.GameOver {
		if e.pos.HalfmoveClock() >= e.cfg.HalfmoveLimit {
			st.GameOver = true
			st.Status = StatusFiftyMoveRule
		} else if e.seen[e.pos.Hash()] >= e.cfg.RepetitionThreshold {
			st.GameOver = true
			st.Status = StatusRepetition
		}
	}
	e.status = st
}

func describeMove(m Move) string {
	switch {
	case m.Is(FlagCastle) && m.To.File() > m.From.File():
		return "Castled kingside"
	case m.Is(FlagCastle):
		return "Castled queenside"
	case m.Is(FlagPromotion):
		return fmt.Sprintf("Pawn promoted to %s", m.Promotion)
	case m.Is(FlagEnPassant):
		return fmt.Sprintf("Captured en passant on %s", m.To)
	case m.Is(FlagCapture):
		return fmt.Sprintf("%s takes on %s", m.Piece, m.To)
	default:
		return fmt.Sprintf("Moved %s to %s", m.Piece, m.To)
	}
}
