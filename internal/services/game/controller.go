package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/connectfour-go/internal/dependencies/clock"
	"github.com/mcoot/connectfour-go/internal/dependencies/random"
	"github.com/mcoot/connectfour-go/internal/model"
	"github.com/mcoot/connectfour-go/internal/storage"
)

// Default player details used when the form leaves them blank
const (
	DefaultPlayer1Name  = "Player 1"
	DefaultPlayer2Name  = "Player 2"
	DefaultPlayer1Color = "red"
	DefaultPlayer2Color = "yellow"
)

// Controller owns live games: it creates them, applies moves and persists the results
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	locks   *gameLocks
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
		locks:   newGameLocks(),
	}
}

// CreateGame starts a new game between two players.
// A width or height of zero selects the default board size.
func (c *Controller) CreateGame(ctx context.Context, player1, player2 model.Player, width, height int) (*model.Game, error) {
	player1 = withDefaults(player1, DefaultPlayer1Name, DefaultPlayer1Color)
	player2 = withDefaults(player2, DefaultPlayer2Name, DefaultPlayer2Color)

	if width == 0 {
		width = model.DefaultWidth
	}
	if height == 0 {
		height = model.DefaultHeight
	}

	id := model.GameID(c.random.ID())
	game, err := model.NewGame(id, player1, player2, model.WithSize(width, height))
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game.CreatedAt = now
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("save game: %w", err)
	}

	c.logger.Info("game created",
		slog.String("game_id", string(id)),
		slog.String("player1", player1.Name),
		slog.String("player2", player2.Name),
		slog.Int("width", width),
		slog.Int("height", height),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID) error {
	release := c.locks.lock(id)
	defer release()

	if _, err := c.storage.GetGame(ctx, id); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	c.logger.Info("game deleted", slog.String("game_id", string(id)))
	return nil
}

// DropPiece drops the current player's piece into column and returns the
// updated game. A full column is reported through the result and leaves the
// stored game untouched.
// The local lock keeps moves in this process from racing each other; the
// storage update keeps other processes sharing the store from losing moves.
func (c *Controller) DropPiece(ctx context.Context, id model.GameID, column int) (*model.Game, model.DropResult, error) {
	release := c.locks.lock(id)
	defer release()

	var result model.DropResult
	var moveErr error
	game, err := c.storage.UpdateGame(ctx, id, func(game *model.Game) error {
		result, moveErr = game.DropPiece(column)
		if moveErr != nil {
			return moveErr
		}
		if !result.Placed() {
			return storage.ErrSkipSave
		}
		game.UpdatedAt = c.clock.Now()
		return nil
	})

	switch {
	case moveErr != nil:
		return game, model.DropResult{}, moveErr
	case errors.Is(err, model.ErrGameNotFound):
		return nil, model.DropResult{}, err
	case err != nil:
		c.logger.Error("failed to save game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, model.DropResult{}, fmt.Errorf("save game: %w", err)
	}

	if !result.Placed() {
		c.logger.Debug("column full",
			slog.String("game_id", string(id)),
			slog.Int("column", column),
		)
		return game, result, nil
	}

	c.logOutcome(game, result)
	return game, result, nil
}

func (c *Controller) logOutcome(game *model.Game, result model.DropResult) {
	attrs := []any{
		slog.String("game_id", string(game.ID)),
		slog.String("player", result.Player.Label()),
		slog.Int("row", result.Row),
		slog.Int("column", result.Column),
		slog.Int("move", game.MoveCount),
	}

	switch result.Outcome {
	case model.OutcomeWon:
		c.logger.Info("game won", attrs...)
	case model.OutcomeTied:
		c.logger.Info("game tied", attrs...)
	default:
		c.logger.Debug("piece placed", attrs...)
	}
}

// Rematch replaces a game with a fresh one for the same players and board size.
// The old game is deleted.
func (c *Controller) Rematch(ctx context.Context, id model.GameID) (*model.Game, error) {
	release := c.locks.lock(id)
	defer release()

	old, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game, err := c.CreateGame(ctx, old.Players[0], old.Players[1], old.Board.Width, old.Board.Height)
	if err != nil {
		return nil, err
	}

	if err := c.storage.DeleteGame(ctx, id); err != nil {
		c.logger.Warn("failed to delete finished game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
	}

	c.logger.Info("rematch started",
		slog.String("previous_game_id", string(id)),
		slog.String("game_id", string(game.ID)),
	)

	return game, nil
}

func withDefaults(p model.Player, name, color string) model.Player {
	if p.Name == "" {
		p.Name = name
	}
	if p.Color == "" {
		p.Color = color
	}
	return p
}
