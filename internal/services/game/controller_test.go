package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectfour-go/internal/dependencies/mocks"
	"github.com/mcoot/connectfour-go/internal/model"
	"github.com/mcoot/connectfour-go/internal/storage"
	"github.com/mcoot/connectfour-go/internal/storage/memory"
	"github.com/mcoot/connectfour-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
	alice      model.Player
	bob        model.Player
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
	s.alice = model.Player{Name: "Alice", Color: "red"}
	s.bob = model.Player{Name: "Bob", Color: "blue"}
}

func (s *ControllerSuite) createGame() *model.Game {
	game, err := s.controller.CreateGame(s.ctx, s.alice, s.bob, 0, 0)
	s.Require().NoError(err)
	return game
}

func (s *ControllerSuite) drop(id model.GameID, columns ...int) model.DropResult {
	var result model.DropResult
	for _, col := range columns {
		var err error
		_, result, err = s.controller.DropPiece(s.ctx, id, col)
		s.Require().NoError(err)
	}
	return result
}

// CreateGame tests

func (s *ControllerSuite) TestCreateGameSucceeds() {
	s.random.QueueID("abc123")

	game, err := s.controller.CreateGame(s.ctx, s.alice, s.bob, 0, 0)
	s.Require().NoError(err)

	s.Equal(model.GameID("abc123"), game.ID)
	s.Equal([2]model.Player{s.alice, s.bob}, game.Players)
	s.Equal(model.DefaultWidth, game.Board.Width)
	s.Equal(model.DefaultHeight, game.Board.Height)
	s.Equal(model.Seat1, game.Current)
	s.Equal(s.clock.Now(), game.CreatedAt)
	s.Equal(s.clock.Now(), game.UpdatedAt)
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	game := s.createGame()

	retrieved, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Players, retrieved.Players)
}

func (s *ControllerSuite) TestCreateGameFillsDefaults() {
	game, err := s.controller.CreateGame(s.ctx, model.Player{}, model.Player{Name: "Bob"}, 0, 0)
	s.Require().NoError(err)

	s.Equal(model.Player{Name: DefaultPlayer1Name, Color: DefaultPlayer1Color}, game.Players[0])
	s.Equal(model.Player{Name: "Bob", Color: DefaultPlayer2Color}, game.Players[1])
}

func (s *ControllerSuite) TestCreateGameWithCustomSize() {
	game, err := s.controller.CreateGame(s.ctx, s.alice, s.bob, 9, 8)
	s.Require().NoError(err)
	s.Equal(9, game.Board.Width)
	s.Equal(8, game.Board.Height)
}

func (s *ControllerSuite) TestCreateGameRejectsNegativeSize() {
	_, err := s.controller.CreateGame(s.ctx, s.alice, s.bob, -1, 6)
	s.ErrorIs(err, model.ErrInvalidDimensions)
	s.Zero(s.storage.Len())
}

func (s *ControllerSuite) TestCreateGameRejectsOversizedBoard() {
	_, err := s.controller.CreateGame(s.ctx, s.alice, s.bob, 2000, 2000)
	s.ErrorIs(err, model.ErrInvalidDimensions)

	_, err = s.controller.CreateGame(s.ctx, s.alice, s.bob, model.MaxWidth+1, 0)
	s.ErrorIs(err, model.ErrInvalidDimensions)
	s.Zero(s.storage.Len())
}

func (s *ControllerSuite) TestCreateGameAllowsMatchingColors() {
	game, err := s.controller.CreateGame(s.ctx, s.alice, model.Player{Name: "Carol", Color: "red"}, 0, 0)
	s.Require().NoError(err)

	result := s.drop(game.ID, 0, 0)
	s.Equal(model.Seat2, result.Seat)
	s.Equal("Carol", result.Player.Name)
}

// GetGame / DeleteGame tests

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestDeleteGame() {
	game := s.createGame()

	s.Require().NoError(s.controller.DeleteGame(s.ctx, game.ID))

	_, err := s.controller.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestDeleteMissingGameFails() {
	err := s.controller.DeleteGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// DropPiece tests

func (s *ControllerSuite) TestDropPiecePersistsMove() {
	game := s.createGame()
	s.clock.Advance(time.Minute)

	updated, result, err := s.controller.DropPiece(s.ctx, game.ID, 3)
	s.Require().NoError(err)

	s.Equal(model.OutcomeContinues, result.Outcome)
	s.Equal(model.DefaultHeight-1, result.Row)
	s.Equal(model.Seat2, updated.Current)

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(1, stored.MoveCount)
	s.Equal(model.Seat1, stored.Board.Get(model.Position{Row: model.DefaultHeight - 1, Col: 3}))
	s.Equal(s.clock.Now(), stored.UpdatedAt)
	s.True(stored.UpdatedAt.After(stored.CreatedAt))
}

func (s *ControllerSuite) TestDropPieceGameNotFound() {
	_, _, err := s.controller.DropPiece(s.ctx, "missing", 0)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestDropPieceInvalidColumn() {
	game := s.createGame()

	_, _, err := s.controller.DropPiece(s.ctx, game.ID, model.DefaultWidth)
	s.ErrorIs(err, model.ErrInvalidColumn)

	stored, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Zero(stored.MoveCount)
}

func (s *ControllerSuite) TestDropPieceFullColumnDoesNotSave() {
	game := s.createGame()
	s.drop(game.ID, 0, 0, 0, 0, 0, 0)
	before, _ := s.controller.GetGame(s.ctx, game.ID)
	s.clock.Advance(time.Minute)

	updated, result, err := s.controller.DropPiece(s.ctx, game.ID, 0)
	s.Require().NoError(err)

	s.Equal(model.OutcomeColumnFull, result.Outcome)
	s.False(result.Placed())
	s.Equal(model.Seat1, updated.Current)

	stored, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(before.UpdatedAt, stored.UpdatedAt)
	s.Equal(6, stored.MoveCount)
}

func (s *ControllerSuite) TestDropPieceWinEndsGame() {
	game := s.createGame()

	result := s.drop(game.ID, 0, 1, 0, 1, 0, 1, 0)
	s.Equal(model.OutcomeWon, result.Outcome)
	s.Equal(s.alice, result.Player)

	stored, _ := s.controller.GetGame(s.ctx, game.ID)
	s.True(stored.GameOver)
	s.Equal(model.GameStatusWon, stored.Status)

	_, _, err := s.controller.DropPiece(s.ctx, game.ID, 2)
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *ControllerSuite) TestOutcomesAreLogged() {
	logger, logs := testutil.BufferLogger()
	s.controller = NewController(s.storage, s.clock, s.random, logger)
	game := s.createGame()

	s.drop(game.ID, 0, 1, 0, 1, 0, 1)
	_, placed := logs.Find("piece placed")
	s.True(placed)

	s.drop(game.ID, 0)
	record, ok := logs.Find("game won")
	s.Require().True(ok)
	s.Equal("INFO", record["level"])
	s.Equal(string(game.ID), record["game_id"])
	s.Equal("Alice", record["player"])
	s.EqualValues(7, record["move"])
}

func (s *ControllerSuite) TestConcurrentDropsAreSerialized() {
	game := s.createGame()

	var wg sync.WaitGroup
	results := make(chan model.DropResult, model.DefaultHeight+1)
	for i := 0; i < model.DefaultHeight+1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, result, err := s.controller.DropPiece(s.ctx, game.ID, 0)
			if err == nil {
				results <- result
			}
		}()
	}
	wg.Wait()
	close(results)

	placed, full := 0, 0
	rows := map[int]bool{}
	for r := range results {
		if r.Placed() {
			placed++
			rows[r.Row] = true
		} else {
			full++
		}
	}

	s.Equal(model.DefaultHeight, placed)
	s.Equal(1, full)
	s.Len(rows, model.DefaultHeight, "each drop must land in its own row")

	stored, _ := s.controller.GetGame(s.ctx, game.ID)
	s.Equal(model.DefaultHeight, stored.MoveCount)
	s.Equal(model.DefaultHeight, stored.Board.ColumnHeight(0))
	s.Zero(s.controller.locks.len())
}

// Rematch tests

func (s *ControllerSuite) TestRematchKeepsPlayersAndSize() {
	game, err := s.controller.CreateGame(s.ctx, s.alice, s.bob, 5, 4)
	s.Require().NoError(err)
	s.drop(game.ID, 0, 1, 0, 1, 0, 1, 0)
	s.random.QueueID("rematch1")

	next, err := s.controller.Rematch(s.ctx, game.ID)
	s.Require().NoError(err)

	s.Equal(model.GameID("rematch1"), next.ID)
	s.Equal(game.Players, next.Players)
	s.Equal(5, next.Board.Width)
	s.Equal(4, next.Board.Height)
	s.False(next.GameOver)
	s.Zero(next.MoveCount)
	s.Equal(model.Seat1, next.Current)
}

func (s *ControllerSuite) TestRematchDeletesOldGame() {
	game := s.createGame()

	next, err := s.controller.Rematch(s.ctx, game.ID)
	s.Require().NoError(err)

	_, err = s.controller.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.controller.GetGame(s.ctx, next.ID)
	s.NoError(err)
	s.Equal(1, s.storage.Len())
}

func (s *ControllerSuite) TestRematchMissingGame() {
	_, err := s.controller.Rematch(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Storage failure tests

var errStorageDown = errors.New("storage down")

type failingStorage struct {
	storage.Storage
	failSave bool
}

func (f *failingStorage) SaveGame(ctx context.Context, game *model.Game) error {
	if f.failSave {
		return errStorageDown
	}
	return f.Storage.SaveGame(ctx, game)
}

func (f *failingStorage) UpdateGame(ctx context.Context, id model.GameID, fn storage.UpdateFunc) (*model.Game, error) {
	if f.failSave {
		return nil, errStorageDown
	}
	return f.Storage.UpdateGame(ctx, id, fn)
}

func (s *ControllerSuite) TestStorageErrorsAreWrapped() {
	store := &failingStorage{Storage: memory.New()}
	controller := NewController(store, s.clock, s.random, testutil.NopLogger())

	game, err := controller.CreateGame(s.ctx, s.alice, s.bob, 0, 0)
	s.Require().NoError(err)

	store.failSave = true

	_, _, err = controller.DropPiece(s.ctx, game.ID, 0)
	s.ErrorIs(err, errStorageDown)

	_, err = controller.CreateGame(s.ctx, s.alice, s.bob, 0, 0)
	s.ErrorIs(err, errStorageDown)
}
