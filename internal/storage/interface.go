package storage

import (
	"context"
	"errors"

	"github.com/mcoot/connectfour-go/internal/model"
)

var (
	// ErrSkipSave tells UpdateGame to leave the stored game as it was
	ErrSkipSave = errors.New("skip save")
	// ErrConflict means concurrent writers kept winning and the update gave up
	ErrConflict = errors.New("game changed concurrently")
)

// UpdateFunc changes game in place. It may run more than once when another
// writer changes the game between the read and the write.
type UpdateFunc func(game *model.Game) error

// Storage holds live games for as long as players are using them
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	// GetGame returns model.ErrGameNotFound for unknown or expired games
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	// UpdateGame loads a game, applies fn and saves the result as one atomic step.
	// If fn fails, nothing is saved and the game fn saw comes back with its error;
	// ErrSkipSave is swallowed.
	UpdateGame(ctx context.Context, id model.GameID, fn UpdateFunc) (*model.Game, error)
}
