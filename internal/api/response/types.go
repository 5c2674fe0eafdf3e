package response

import (
	"time"

	"github.com/mcoot/connectfour-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Game represents a game in API responses.
// Board cells hold 0 for empty or the occupying seat (1 or 2).
type Game struct {
	ID            string    `json:"id"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Board         [][]int   `json:"board"`
	Players       []Player  `json:"players"`
	CurrentPlayer int       `json:"current_player"`
	Status        string    `json:"status"`
	Winner        *int      `json:"winner"`
	GameOver      bool      `json:"game_over"`
	MoveCount     int       `json:"move_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameFromModel converts model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	board := make([][]int, g.Board.Height)
	for row := range board {
		board[row] = make([]int, g.Board.Width)
		for col := range board[row] {
			board[row][col] = int(g.Board.Cells[row][col])
		}
	}

	players := make([]Player, 0, len(g.Players))
	for i, p := range g.Players {
		players = append(players, Player{Seat: i + 1, Name: p.Name, Color: p.Color})
	}

	var winner *int
	if g.Status == model.GameStatusWon {
		w := int(g.Winner)
		winner = &w
	}

	return Game{
		ID:            string(g.ID),
		Width:         g.Board.Width,
		Height:        g.Board.Height,
		Board:         board,
		Players:       players,
		CurrentPlayer: int(g.Current),
		Status:        string(g.Status),
		Winner:        winner,
		GameOver:      g.GameOver,
		MoveCount:     g.MoveCount,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// DropResult describes the effect of a single drop.
// Row is -1 and Seat is 0 when the column was full.
type DropResult struct {
	Row     int    `json:"row"`
	Column  int    `json:"column"`
	Seat    int    `json:"seat"`
	Outcome string `json:"outcome"`
	Placed  bool   `json:"placed"`
}

// DropResultFromModel converts model.DropResult
func DropResultFromModel(r model.DropResult) DropResult {
	return DropResult{
		Row:     r.Row,
		Column:  r.Column,
		Seat:    int(r.Seat),
		Outcome: string(r.Outcome),
		Placed:  r.Placed(),
	}
}

// DropResponse is the response after dropping a piece
type DropResponse struct {
	Result DropResult `json:"result"`
	Game   Game       `json:"game"`
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
