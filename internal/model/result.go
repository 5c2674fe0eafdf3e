package model

// Outcome describes what a DropPiece call did to the game
type Outcome string

const (
	OutcomeContinues  Outcome = "continues"   // Piece placed, turn passed to the other player
	OutcomeWon        Outcome = "won"         // Piece placed and completed a run
	OutcomeTied       Outcome = "tied"        // Piece placed and filled the board
	OutcomeColumnFull Outcome = "column_full" // Nothing placed
)

// DropResult is the structured result adapters render from
type DropResult struct {
	Row     int // -1 when nothing was placed
	Column  int
	Seat    Seat
	Player  Player
	Outcome Outcome
}

// Placed returns true if a piece landed on the board
func (r DropResult) Placed() bool {
	return r.Outcome != "" && r.Outcome != OutcomeColumnFull
}

// Terminal returns true if this move ended the game
func (r DropResult) Terminal() bool {
	return r.Outcome == OutcomeWon || r.Outcome == OutcomeTied
}
