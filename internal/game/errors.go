package game

import "errors"

var (
	ErrEngineLocked  = errors.New("engine locked")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidMove   = errors.New("invalid move")
	ErrGameOver      = errors.New("game over")
	ErrNothingToUndo = errors.New("nothing to undo")
)
