package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrUnexpectedAction = errors.New("action is not allowed in the current phase")
	ErrActionPending    = errors.New("previous action is still pending")
	ErrNotHumanPlayer   = errors.New("player is not controlled by a human")
	ErrUnknownPlayer    = errors.New("unknown player")

	ErrDedicatedNotImplemented = errors.New("dedicated server mode is not implemented")
)
