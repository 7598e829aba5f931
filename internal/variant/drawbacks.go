// Package variant configures games of drawback chess: per-side move
// restrictions layered on the standard rules, plus search and evaluation
// settings, loadable from JSON.
package variant

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"drawback_chess/internal/game"
)

// FilterFactory constructs a fresh move filter for one game.
type FilterFactory func() game.MoveFilter

var (
	registryMu sync.RWMutex
	registry   map[string]FilterFactory

	// ErrDuplicateRegistration indicates a drawback name already has a factory.
	ErrDuplicateRegistration = errors.New("variant: drawback already registered")
	// ErrNilFactory indicates a registration attempt provided a nil constructor.
	ErrNilFactory = errors.New("variant: nil drawback factory")
	// ErrUnknownDrawback indicates no factory has been registered for the name.
	ErrUnknownDrawback = errors.New("variant: drawback not registered")
)

// Register associates a drawback name with a filter factory. Safe for
// concurrent use.
func Register(name string, ctor FilterFactory) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrNilFactory)
	}
	if ctor == nil {
		return ErrNilFactory
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if registry == nil {
		registry = make(map[string]FilterFactory)
	}
	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, name)
	}
	registry[name] = ctor
	return nil
}

// NewFilter creates a filter instance for the named drawback.
func NewFilter(name string) (game.MoveFilter, error) {
	registryMu.RLock()
	ctor := registry[name]
	registryMu.RUnlock()
	if ctor == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDrawback, name)
	}
	return ctor(), nil
}

// Names lists the registered drawbacks, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	mustRegisterBuiltin("no_knight_moves", func(m game.Move) bool { return m.Piece == game.Knight })
	mustRegisterBuiltin("no_queen_moves", func(m game.Move) bool { return m.Piece == game.Queen })
	mustRegisterBuiltin("no_castling", func(m game.Move) bool { return m.Is(game.FlagCastle) })
	mustRegisterBuiltin("no_pawn_double_push", func(m game.Move) bool { return m.Is(game.FlagDoublePush) })
}

func mustRegisterBuiltin(name string, forbidden func(game.Move) bool) {
	if err := Register(name, func() game.MoveFilter { return rejecting(forbidden) }); err != nil {
		panic(err)
	}
}

// rejecting builds a filter that removes every move the predicate matches.
// A drawback can empty the move list; the controller then scores the
// position as mate or stalemate like any other move-less position.
func rejecting(forbidden func(game.Move) bool) game.MoveFilter {
	return func(pos *game.Position, moves []game.Move) []game.Move {
		out := moves[:0]
		for _, m := range moves {
			if forbidden(m) {
				continue
			}
			out = append(out, m)
		}
		return out
	}
}
