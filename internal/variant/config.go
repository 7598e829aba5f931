package variant

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"drawback_chess/internal/eval"
	"drawback_chess/internal/game"
	"drawback_chess/internal/search"
)

// Config is the JSON-loadable game setup. The zero value plays standard
// chess with default search settings.
type Config struct {
	DisableCastling     bool         `json:"disableCastling"`
	DisableEnPassant    bool         `json:"disableEnPassant"`
	Promotions          string       `json:"promotions"`
	RepetitionThreshold int          `json:"repetitionThreshold"`
	HalfmoveLimit       int          `json:"halfmoveLimit"`
	AllowMissingKing    bool         `json:"allowMissingKing"`
	WhiteDrawback       string       `json:"whiteDrawback"`
	BlackDrawback       string       `json:"blackDrawback"`
	Search              SearchConfig `json:"search"`
	Eval                EvalConfig   `json:"eval"`
}

type SearchConfig struct {
	MaxDepth       int   `json:"maxDepth"`
	MaxNodes       int64 `json:"maxNodes"`
	MoveTimeMillis int   `json:"moveTimeMillis"`
	OrderMoves     bool  `json:"orderMoves"`
	UseTable       bool  `json:"useTable"`
	Workers        int   `json:"workers"`
}

type EvalConfig struct {
	PieceValues    []int `json:"pieceValues,omitempty"`
	Mobility       int   `json:"mobility"`
	KingDanger     int   `json:"kingDanger"`
	UsePieceSquare bool  `json:"usePieceSquare"`
}

func DefaultConfig() Config {
	weights := eval.DefaultWeights()
	return Config{
		RepetitionThreshold: 3,
		HalfmoveLimit:       100,
		Search: SearchConfig{
			MaxDepth:   4,
			OrderMoves: true,
			UseTable:   true,
			Workers:    1,
		},
		Eval: EvalConfig{
			Mobility:       weights.Mobility,
			KingDanger:     weights.KingDanger,
			UsePieceSquare: weights.UsePieceSquare,
		},
	}
}

// Load reads and validates a config file, filling defaults for omitted
// fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RepetitionThreshold < 2 {
		return fmt.Errorf("%w: repetition threshold %d", game.ErrInvalidConfig, c.RepetitionThreshold)
	}
	if c.HalfmoveLimit < 1 {
		return fmt.Errorf("%w: halfmove limit %d", game.ErrInvalidConfig, c.HalfmoveLimit)
	}
	if c.Promotions != "" {
		if _, err := game.ParsePromotionChoices(c.Promotions); err != nil {
			return fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
		}
	}
	if len(c.Eval.PieceValues) != 0 && len(c.Eval.PieceValues) != game.PieceTypeCount {
		return fmt.Errorf("%w: expected %d piece values, got %d", game.ErrInvalidConfig, game.PieceTypeCount, len(c.Eval.PieceValues))
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("%w: workers %d", game.ErrInvalidConfig, c.Search.Workers)
	}
	for _, name := range []string{c.WhiteDrawback, c.BlackDrawback} {
		if name == "" {
			continue
		}
		if _, err := NewFilter(name); err != nil {
			return fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
		}
	}
	return nil
}

// GameConfig maps the variant settings onto the controller configuration.
func (c Config) GameConfig() (game.Config, error) {
	rules := game.StandardRules()
	rules.CastlingEnabled = !c.DisableCastling
	rules.EnPassantEnabled = !c.DisableEnPassant
	if c.Promotions != "" {
		choices, err := game.ParsePromotionChoices(c.Promotions)
		if err != nil {
			return game.Config{}, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
		}
		rules.Promotions = choices
	}

	cfg := game.Config{
		Rules:               rules,
		RepetitionThreshold: c.RepetitionThreshold,
		HalfmoveLimit:       c.HalfmoveLimit,
		AllowMissingKing:    c.AllowMissingKing,
	}
	if c.WhiteDrawback != "" {
		filter, err := NewFilter(c.WhiteDrawback)
		if err != nil {
			return game.Config{}, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
		}
		cfg.WhiteFilter = filter
	}
	if c.BlackDrawback != "" {
		filter, err := NewFilter(c.BlackDrawback)
		if err != nil {
			return game.Config{}, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
		}
		cfg.BlackFilter = filter
	}
	return cfg, nil
}

// SearchLimits maps the search settings onto per-move limits.
func (c Config) SearchLimits() search.Limits {
	return search.Limits{
		MaxDepth: c.Search.MaxDepth,
		MaxNodes: c.Search.MaxNodes,
		MoveTime: time.Duration(c.Search.MoveTimeMillis) * time.Millisecond,
	}
}

func (c Config) SearchOptions() search.Options {
	return search.Options{
		OrderMoves:    c.Search.OrderMoves,
		UseTable:      c.Search.UseTable,
		Workers:       c.Search.Workers,
		HalfmoveLimit: c.HalfmoveLimit,
	}
}

// EvalWeights maps the evaluation settings onto evaluator weights.
func (c Config) EvalWeights() eval.Weights {
	weights := eval.DefaultWeights()
	weights.Mobility = c.Eval.Mobility
	weights.KingDanger = c.Eval.KingDanger
	weights.UsePieceSquare = c.Eval.UsePieceSquare
	if len(c.Eval.PieceValues) == game.PieceTypeCount {
		copy(weights.PieceValues[:], c.Eval.PieceValues)
	}
	return weights
}
