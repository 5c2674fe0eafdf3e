package model

import "errors"

// Common errors used across the application
var (
	// Move errors
	ErrGameOver      = errors.New("game is already over")
	ErrInvalidColumn = errors.New("column is out of range")

	// Game errors
	ErrInvalidDimensions = errors.New("board dimensions are out of range")
	ErrGameNotFound      = errors.New("game not found")
)
