package request

// Player describes one participant in a new game
type Player struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateGameRequest is the request body for creating a game.
// Zero width or height selects the default 7x6 board.
type CreateGameRequest struct {
	Player1 Player `json:"player1"`
	Player2 Player `json:"player2"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// DropRequest is the request body for dropping a piece.
// Column is a pointer so a missing field can be told apart from column 0.
type DropRequest struct {
	Column *int `json:"column"`
}
