package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour-go/internal/api/response"
	"github.com/mcoot/connectfour-go/internal/factory"
	"github.com/mcoot/connectfour-go/internal/model"
)

func newPlayCmd() *cobra.Command {
	var flags playerFlags

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in this terminal",
		Long: `Play a hot-seat game in this terminal without a server.

Players take turns typing a column number. Type q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.width < 0 || flags.height < 0 {
				return fmt.Errorf("width and height must be positive")
			}
			return runPlay(cmd, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// session runs games against an in-process controller
type session struct {
	app     *factory.App
	out     *Output
	prompts io.Writer
	input   *bufio.Scanner
}

func runPlay(cmd *cobra.Command, flags playerFlags) error {
	app, err := factory.New(factory.Config{StorageType: factory.StorageTypeMemory})
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	s := &session{
		app:     app,
		out:     newCmdOutput(cmd),
		prompts: cmd.ErrOrStderr(),
		input:   bufio.NewScanner(cmd.InOrStdin()),
	}

	ctx := cmd.Context()
	game, err := app.GameController.CreateGame(ctx,
		model.Player{Name: flags.player1, Color: flags.color1},
		model.Player{Name: flags.player2, Color: flags.color2},
		flags.width, flags.height,
	)
	if err != nil {
		return err
	}

	for {
		if err := s.out.Print(response.GameFromModel(game)); err != nil {
			return err
		}

		if game.GameOver {
			if !s.confirm("Rematch? [y/N]: ") {
				return nil
			}
			if game, err = app.GameController.Rematch(ctx, game.ID); err != nil {
				return err
			}
			continue
		}

		column, ok := s.readColumn(game)
		if !ok {
			return nil
		}

		next, result, err := app.GameController.DropPiece(ctx, game.ID, column)
		if err != nil {
			return err
		}
		game = next

		if !result.Placed() {
			fmt.Fprintf(s.prompts, "Column %d is full, pick another\n", column+1)
		}
	}
}

// readColumn prompts until the current player picks a column on the board.
// ok is false when the player quits or input runs out.
func (s *session) readColumn(game *model.Game) (column int, ok bool) {
	width := game.Board.Width
	for {
		fmt.Fprintf(s.prompts, "%s, choose a column (1-%d, q to quit): ", game.CurrentPlayer().Label(), width)
		if !s.input.Scan() {
			return 0, false
		}

		line := strings.TrimSpace(s.input.Text())
		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return 0, false
		case "":
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > width {
			fmt.Fprintf(s.prompts, "Pick a column between 1 and %d\n", width)
			continue
		}
		return n - 1, true
	}
}

func (s *session) confirm(prompt string) bool {
	fmt.Fprint(s.prompts, prompt)
	if !s.input.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s.input.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
