package model

// Seat identifies which of the two players a piece or turn belongs to
type Seat int

const (
	SeatNone Seat = iota // Empty cell
	Seat1                // Moves first
	Seat2
)

// Valid returns true for Seat1 and Seat2
func (s Seat) Valid() bool {
	return s == Seat1 || s == Seat2
}

// Other returns the opposing seat
func (s Seat) Other() Seat {
	switch s {
	case Seat1:
		return Seat2
	case Seat2:
		return Seat1
	default:
		return SeatNone
	}
}

// index returns the position of the seat in Game.Players
func (s Seat) index() int {
	return int(s) - 1
}

// Player is one of the two participants; immutable once the game starts
type Player struct {
	Name  string
	Color string // Any CSS colour, rendered as the piece colour
}

// Label returns the name the adapters show for this player
func (p Player) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Color
}
