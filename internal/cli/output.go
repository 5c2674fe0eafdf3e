package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

func newCmdOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	if o.format == FormatJSON {
		return o.printJSON(data)
	}
	return o.printText(data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) error {
	if o.format == FormatJSON {
		return o.printJSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(o.w, msg)
	return err
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case response.Game:
		return o.printGame(v)
	case response.DropResponse:
		return o.printDrop(v)
	case response.Health:
		_, err := fmt.Fprintf(o.w, "Server status: %s\n", v.Status)
		return err
	default:
		return o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) error {
	symbols := pieceSymbols(g.Players)

	var b strings.Builder
	fmt.Fprintf(&b, "Game %s\n", g.ID)
	for i, p := range g.Players {
		fmt.Fprintf(&b, "  %s  %s (%s)\n", symbols[i], playerLabel(p), p.Color)
	}
	b.WriteString("\n")
	writeBoard(&b, g, symbols)
	b.WriteString("\n")
	b.WriteString(statusLine(g))
	b.WriteString("\n")

	_, err := io.WriteString(o.w, b.String())
	return err
}

func (o *Output) printDrop(d response.DropResponse) error {
	if !d.Result.Placed {
		if _, err := fmt.Fprintf(o.w, "Column %d is full\n\n", d.Result.Column+1); err != nil {
			return err
		}
	}
	return o.printGame(d.Game)
}

// writeBoard draws the grid with 1-based column numbers above it
func writeBoard(b *strings.Builder, g response.Game, symbols [2]string) {
	b.WriteString(" ")
	for col := 0; col < g.Width; col++ {
		fmt.Fprintf(b, " %d", (col+1)%10)
	}
	b.WriteString("\n")

	for _, row := range g.Board {
		b.WriteString("|")
		for _, cell := range row {
			b.WriteString(" ")
			switch cell {
			case 1, 2:
				b.WriteString(symbols[cell-1])
			default:
				b.WriteString(".")
			}
		}
		b.WriteString(" |\n")
	}

	b.WriteString("+")
	b.WriteString(strings.Repeat("-", g.Width*2+1))
	b.WriteString("+\n")
}

func statusLine(g response.Game) string {
	switch {
	case g.Winner != nil:
		return fmt.Sprintf("%s won!", seatLabel(g, *g.Winner))
	case g.GameOver:
		return "Tie!"
	default:
		return fmt.Sprintf("%s's turn", seatLabel(g, g.CurrentPlayer))
	}
}

func seatLabel(g response.Game, seat int) string {
	for _, p := range g.Players {
		if p.Seat == seat {
			return playerLabel(p)
		}
	}
	return fmt.Sprintf("Player %d", seat)
}

func playerLabel(p response.Player) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Color
}

// pieceSymbols picks each player's initial, falling back to X and O
// when the initials collide or a player has no usable name
func pieceSymbols(players []response.Player) [2]string {
	symbols := [2]string{"X", "O"}
	if len(players) != 2 {
		return symbols
	}

	a, b := initial(playerLabel(players[0])), initial(playerLabel(players[1]))
	if a == "" || b == "" || a == b || a == "." || b == "." {
		return symbols
	}
	return [2]string{a, b}
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsPrint(r) {
		return ""
	}
	return string(unicode.ToUpper(r))
}
