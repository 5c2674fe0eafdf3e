package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/connectfour-go/internal/model"
	"github.com/mcoot/connectfour-go/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newGame(id model.GameID) *model.Game {
	game, err := model.NewGame(id,
		model.Player{Name: "Alice", Color: "red"},
		model.Player{Name: "Bob", Color: "yellow"},
		model.WithSize(5, 4),
	)
	s.Require().NoError(err)
	return game
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.newGame("game-1")
	game.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	game.UpdatedAt = game.CreatedAt
	_, err := game.DropPiece(2)
	s.Require().NoError(err)
	_, err = game.DropPiece(2)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Players, retrieved.Players)
	s.Equal(game.Board.Cells, retrieved.Board.Cells)
	s.Equal(5, retrieved.Board.Width)
	s.Equal(4, retrieved.Board.Height)
	s.Equal(model.Seat1, retrieved.Current)
	s.Equal(2, retrieved.MoveCount)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestRoundTripKeepsTerminalState() {
	game := s.newGame("game-1")
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		_, err := game.DropPiece(col)
		s.Require().NoError(err)
	}
	s.Require().True(game.GameOver)
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(retrieved.GameOver)
	s.Equal(model.GameStatusWon, retrieved.Status)
	s.Equal(model.Seat1, retrieved.Winner)

	_, err = retrieved.DropPiece(2)
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("game-1")))

	s.Require().NoError(s.storage.DeleteGame(s.ctx, "game-1"))

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameKeyHasTTL() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("game-1")))

	s.True(s.mini.Exists("c4:game:game-1"))
	s.Equal(time.Hour, s.mini.TTL("c4:game:game-1"))
}

func (s *StorageSuite) TestGameExpires() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("game-1")))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSaveRefreshesTTL() {
	game := s.newGame("game-1")
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	s.mini.FastForward(45 * time.Minute)
	_, err := game.DropPiece(0)
	s.Require().NoError(err)
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	s.mini.FastForward(45 * time.Minute)
	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.NoError(err)
}

func (s *StorageSuite) TestUpdateGameSavesChange() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("game-1")))

	updated, err := s.storage.UpdateGame(s.ctx, "game-1", func(game *model.Game) error {
		_, err := game.DropPiece(2)
		return err
	})
	s.Require().NoError(err)
	s.Equal(1, updated.MoveCount)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.Seat1, retrieved.Board.Get(model.Position{Row: 3, Col: 2}))
	s.Equal(time.Hour, s.mini.TTL("c4:game:game-1"))
}

func (s *StorageSuite) TestUpdateGameRetriesAfterConcurrentWrite() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("game-1")))

	// A second store on its own connection stands in for another server process
	otherClient := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	defer otherClient.Close()
	other := NewWithClient(otherClient, DefaultConfig())

	calls := 0
	updated, err := s.storage.UpdateGame(s.ctx, "game-1", func(game *model.Game) error {
		calls++
		if calls == 1 {
			rival := game.Clone()
			_, err := rival.DropPiece(0)
			s.Require().NoError(err)
			s.Require().NoError(other.SaveGame(s.ctx, rival))
		}
		_, err := game.DropPiece(1)
		return err
	})
	s.Require().NoError(err)
	s.Equal(2, calls)
	s.Equal(2, updated.MoveCount)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(2, retrieved.MoveCount)
	s.Equal(model.Seat1, retrieved.Board.Get(model.Position{Row: 3, Col: 0}))
	s.Equal(model.Seat2, retrieved.Board.Get(model.Position{Row: 3, Col: 1}))
}

func (s *StorageSuite) TestUpdateGameSkipSaveLeavesGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("game-1")))

	updated, err := s.storage.UpdateGame(s.ctx, "game-1", func(game *model.Game) error {
		_, _ = game.DropPiece(0)
		return storage.ErrSkipSave
	})
	s.Require().NoError(err)
	s.Equal(1, updated.MoveCount)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Zero(retrieved.MoveCount)
}

func (s *StorageSuite) TestUpdateGameReturnsFuncError() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, s.newGame("game-1")))

	game, err := s.storage.UpdateGame(s.ctx, "game-1", func(game *model.Game) error {
		_, err := game.DropPiece(9)
		return err
	})
	s.ErrorIs(err, model.ErrInvalidColumn)
	s.Require().NotNil(game)
	s.Equal(model.GameID("game-1"), game.ID)
}

func (s *StorageSuite) TestUpdateGameNotFound() {
	called := false
	_, err := s.storage.UpdateGame(s.ctx, "missing", func(*model.Game) error {
		called = true
		return nil
	})
	s.ErrorIs(err, model.ErrGameNotFound)
	s.False(called)
}
