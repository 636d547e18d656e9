package errors

import "errors"

var (
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrCellOutOfBounds     = errors.New("cell out of bounds")
	ErrCellOccupied        = errors.New("cell already occupied")
	ErrGameAlreadyFinished = errors.New("game is already finished")
	ErrMalformedLayout     = errors.New("malformed layout")

	ErrNoLegalMoves       = errors.New("no legal moves left")
	ErrBotNotFound        = errors.New("bot not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionConflict    = errors.New("session was modified concurrently")
	ErrInvalidMode        = errors.New("invalid game mode")
	ErrBodyTooLarge       = errors.New("request body too large")
	ErrUnsupportedVersion = errors.New("unsupported api version")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUserExists         = errors.New("username already exists")
	ErrInternal           = errors.New("internal error")
)
