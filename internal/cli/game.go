package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectfour-go/internal/api/request"
	"github.com/mcoot/connectfour-go/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameDropCmd())
	cmd.AddCommand(newGameRematchCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

// playerFlags are the flags shared by "game new" and "play"
type playerFlags struct {
	player1, color1 string
	player2, color2 string
	width, height   int
}

func (f *playerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.player1, "player1", "", "Name of the first player")
	cmd.Flags().StringVar(&f.color1, "color1", "", "Piece colour of the first player")
	cmd.Flags().StringVar(&f.player2, "player2", "", "Name of the second player")
	cmd.Flags().StringVar(&f.color2, "color2", "", "Piece colour of the second player")
	cmd.Flags().IntVar(&f.width, "width", 0, "Number of columns (default 7)")
	cmd.Flags().IntVar(&f.height, "height", 0, "Number of rows (default 6)")
}

func (f *playerFlags) request() request.CreateGameRequest {
	return request.CreateGameRequest{
		Player1: request.Player{Name: f.player1, Color: f.color1},
		Player2: request.Player{Name: f.player2, Color: f.color2},
		Width:   f.width,
		Height:  f.height,
	}
}

func newGameNewCmd() *cobra.Command {
	var flags playerFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new game on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.width < 0 || flags.height < 0 {
				return fmt.Errorf("width and height must be positive")
			}

			var result response.Game
			if err := client.Post(cmd.Context(), "/api/v1/games", flags.request(), &result); err != nil {
				return err
			}

			return newCmdOutput(cmd).Print(result)
		},
	}

	flags.register(cmd)
	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}

			return newCmdOutput(cmd).Print(result)
		},
	}
}

func newGameDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <id> <column>",
		Short: "Drop the current player's piece into a column",
		Long:  "Drop the current player's piece into a column. Columns are numbered from 1, as printed above the board.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := parseColumnArg(args[1])
			if err != nil {
				return err
			}

			req := request.DropRequest{Column: &column}
			var result response.DropResponse
			if err := client.Post(cmd.Context(), gamePath(args[0])+"/drop", req, &result); err != nil {
				return err
			}

			return newCmdOutput(cmd).Print(result)
		},
	}
}

func newGameRematchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rematch <id>",
		Short: "Start a new game with the same players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Post(cmd.Context(), gamePath(args[0])+"/rematch", nil, &result); err != nil {
				return err
			}

			return newCmdOutput(cmd).Print(result)
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), gamePath(args[0])); err != nil {
				return err
			}

			return newCmdOutput(cmd).PrintMessage(fmt.Sprintf("Deleted game %s", args[0]))
		},
	}
}

func gamePath(id string) string {
	return "/api/v1/games/" + url.PathEscape(id)
}

// parseColumnArg converts a 1-based column argument to the 0-based index the API expects
func parseColumnArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: must be a number", arg)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid column %d: columns start at 1", n)
	}
	return n - 1, nil
}
