package model

// Board dimensions
const (
	DefaultWidth  = 7
	DefaultHeight = 6
	MaxWidth      = 20
	MaxHeight     = 20

	// RunLength is the number of same-seat cells in a line that wins
	RunLength = 4
)

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Board is the grid of cells.
// Row 0 is the top row; pieces fall towards row Height-1.
type Board struct {
	Width  int
	Height int
	Cells  [][]Seat // Row-major: Cells[row][col], SeatNone means empty
}

// NewBoard creates an empty board of the given dimensions
func NewBoard(width, height int) *Board {
	cells := make([][]Seat, height)
	for i := range cells {
		cells[i] = make([]Seat, width)
	}
	return &Board{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// Get returns the seat occupying the given position, or SeatNone if empty or out of bounds
func (b *Board) Get(pos Position) Seat {
	if !b.InBounds(pos) {
		return SeatNone
	}
	return b.Cells[pos.Row][pos.Col]
}

// InBounds returns true if the position is on the board
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Height && pos.Col >= 0 && pos.Col < b.Width
}

// ValidColumn returns true if col is in [0, Width)
func (b *Board) ValidColumn(col int) bool {
	return col >= 0 && col < b.Width
}

// FindSpot returns the lowest empty row in the column.
// ok is false when the column is full or out of range.
func (b *Board) FindSpot(col int) (row int, ok bool) {
	if !b.ValidColumn(col) {
		return -1, false
	}
	for row := b.Height - 1; row >= 0; row-- {
		if b.Cells[row][col] == SeatNone {
			return row, true
		}
	}
	return -1, false
}

// ColumnHeight returns how many pieces are in the column
func (b *Board) ColumnHeight(col int) int {
	if !b.ValidColumn(col) {
		return 0
	}
	count := 0
	for row := 0; row < b.Height; row++ {
		if b.Cells[row][col] != SeatNone {
			count++
		}
	}
	return count
}

// IsFull returns true if all cells are occupied
func (b *Board) IsFull() bool {
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			if b.Cells[row][col] == SeatNone {
				return false
			}
		}
	}
	return true
}

// runDirections are the four (dRow, dCol) steps checked from every anchor cell:
// horizontal, vertical, diagonal down-right, diagonal down-left
var runDirections = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// CheckWin reports whether seat owns any run of RunLength cells.
// Every cell is used as an anchor; runs that leave the board never win.
func (b *Board) CheckWin(seat Seat) bool {
	if !seat.Valid() {
		return false
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			for _, d := range runDirections {
				if b.ownsRun(seat, y, x, d[0], d[1]) {
					return true
				}
			}
		}
	}
	return false
}

func (b *Board) ownsRun(seat Seat, y, x, dy, dx int) bool {
	for i := 0; i < RunLength; i++ {
		pos := Position{Row: y + i*dy, Col: x + i*dx}
		if !b.InBounds(pos) || b.Cells[pos.Row][pos.Col] != seat {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	out := &Board{
		Width:  b.Width,
		Height: b.Height,
		Cells:  make([][]Seat, len(b.Cells)),
	}
	for i := range b.Cells {
		out.Cells[i] = make([]Seat, len(b.Cells[i]))
		copy(out.Cells[i], b.Cells[i])
	}
	return out
}
