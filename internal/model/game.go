package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusInProgress GameStatus = "in_progress" // Awaiting a move from Current
	GameStatusWon        GameStatus = "won"         // Winner completed a run
	GameStatusTied       GameStatus = "tied"        // Board filled with no run
)

// Game is the complete state of a single Connect Four game.
// It changes only through DropPiece.
type Game struct {
	ID      GameID
	Board   *Board
	Players [2]Player
	Current Seat // Seat to move next; the last mover once GameOver
	Status  GameStatus
	Winner  Seat // SeatNone unless Status is won
	// GameOver flips to true once, on a win or a tie
	GameOver  bool
	MoveCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GameOption customises a game at creation
type GameOption func(*gameOptions)

type gameOptions struct {
	width  int
	height int
}

// WithSize overrides the default 7x6 board
func WithSize(width, height int) GameOption {
	return func(o *gameOptions) {
		o.width = width
		o.height = height
	}
}

// NewGame creates a game awaiting a move from player1
func NewGame(id GameID, player1, player2 Player, opts ...GameOption) (*Game, error) {
	o := gameOptions{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 || o.width > MaxWidth || o.height > MaxHeight {
		return nil, ErrInvalidDimensions
	}

	return &Game{
		ID:      id,
		Board:   NewBoard(o.width, o.height),
		Players: [2]Player{player1, player2},
		Current: Seat1,
		Status:  GameStatusInProgress,
		Winner:  SeatNone,
	}, nil
}

// Player returns the player sitting in seat
func (g *Game) Player(seat Seat) Player {
	if !seat.Valid() {
		return Player{}
	}
	return g.Players[seat.index()]
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() Player {
	return g.Player(g.Current)
}

// WinningPlayer returns the winner, or false if the game was not won
func (g *Game) WinningPlayer() (Player, bool) {
	if g.Status != GameStatusWon {
		return Player{}, false
	}
	return g.Player(g.Winner), true
}

// IsFinished returns true once the game is won or tied
func (g *Game) IsFinished() bool {
	return g.GameOver
}

// DropPiece drops the current player's piece into column.
//
// A full column yields OutcomeColumnFull and leaves the game untouched.
// Errors are ErrGameOver once the game has finished and ErrInvalidColumn
// for a column outside [0, Width); neither changes state.
func (g *Game) DropPiece(column int) (DropResult, error) {
	if g.GameOver {
		return DropResult{}, ErrGameOver
	}
	if !g.Board.ValidColumn(column) {
		return DropResult{}, ErrInvalidColumn
	}

	row, ok := g.Board.FindSpot(column)
	if !ok {
		return DropResult{Row: -1, Column: column, Outcome: OutcomeColumnFull}, nil
	}

	mover := g.Current
	g.Board.Cells[row][column] = mover
	g.MoveCount++

	result := DropResult{
		Row:    row,
		Column: column,
		Seat:   mover,
		Player: g.Player(mover),
	}

	// Win takes precedence over tie when the last cell completes a run
	switch {
	case g.Board.CheckWin(mover):
		g.Status = GameStatusWon
		g.Winner = mover
		g.GameOver = true
		result.Outcome = OutcomeWon
	case g.Board.IsFull():
		g.Status = GameStatusTied
		g.GameOver = true
		result.Outcome = OutcomeTied
	default:
		g.Current = mover.Other()
		result.Outcome = OutcomeContinues
	}

	return result, nil
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	out := *g
	if g.Board != nil {
		out.Board = g.Board.Clone()
	}
	return &out
}
