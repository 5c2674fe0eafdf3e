package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectfour-go/internal/model"
	"github.com/mcoot/connectfour-go/internal/services/game"
	"github.com/mcoot/connectfour-go/internal/web/middleware"
	"github.com/mcoot/connectfour-go/internal/web/templates/layout"
	"github.com/mcoot/connectfour-go/internal/web/templates/pages"
)

// Flash messages shown after a drop
const (
	MsgTie          = "Tie!"
	MsgGameOver     = "The game is over! Start a rematch to play again."
	MsgGameNotFound = "Game not found"
	MsgBadColumn    = "Pick a column on the board"
	MsgBadSize      = "Board size must be between 1 and 20 columns and rows"
)

// WinMessage is the flash shown when player wins
func WinMessage(p model.Player) string {
	return p.Label() + " won!"
}

// ParseColumn converts a submitted column value to a column index in [0, width).
// Anything else yields model.ErrInvalidColumn.
func ParseColumn(value string, width int) (int, error) {
	col, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", value, model.ErrInvalidColumn)
	}
	if col < 0 || col >= width {
		return 0, fmt.Errorf("column %d: %w", col, model.ErrInvalidColumn)
	}
	return col, nil
}

// GameHandler handles game pages and actions
type GameHandler struct {
	gameController *game.Controller
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController *game.Controller, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Create handles the new game form
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	width, errW := formInt(r, "width")
	height, errH := formInt(r, "height")
	if errW != nil || errH != nil {
		middleware.SetFlash(w, middleware.FlashError, MsgBadSize)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	player1 := model.Player{
		Name:  strings.TrimSpace(r.FormValue("player1_name")),
		Color: strings.TrimSpace(r.FormValue("player1_color")),
	}
	player2 := model.Player{
		Name:  strings.TrimSpace(r.FormValue("player2_name")),
		Color: strings.TrimSpace(r.FormValue("player2_color")),
	}

	g, err := h.gameController.CreateGame(r.Context(), player1, player2, width, height)
	if err != nil {
		msg := "Could not start the game"
		if errors.Is(err, model.ErrInvalidDimensions) {
			msg = MsgBadSize
		} else {
			h.logger.Error("failed to create game", slog.String("error", err.Error()))
		}
		middleware.SetFlash(w, middleware.FlashError, msg)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, gamePath(g.ID), http.StatusSeeOther)
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	g, ok := h.loadGame(w, r)
	if !ok {
		return
	}

	data := pages.GameData{
		PageData: layout.PageData{
			Title: g.Players[0].Label() + " vs " + g.Players[1].Label(),
			Flash: middleware.GetFlash(r.Context()),
		},
		Game: g,
	}

	render(w, r, http.StatusOK, pages.Game(data))
}

// Drop handles a click on a column top
func (h *GameHandler) Drop(w http.ResponseWriter, r *http.Request) {
	g, ok := h.loadGame(w, r)
	if !ok {
		return
	}
	back := gamePath(g.ID)

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	col, err := ParseColumn(r.FormValue("column"), g.Board.Width)
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, MsgBadColumn)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	_, result, err := h.gameController.DropPiece(r.Context(), g.ID, col)
	switch {
	case errors.Is(err, model.ErrGameOver):
		middleware.SetFlash(w, middleware.FlashError, MsgGameOver)
	case errors.Is(err, model.ErrGameNotFound):
		middleware.SetFlash(w, middleware.FlashError, MsgGameNotFound)
		back = "/"
	case errors.Is(err, model.ErrInvalidColumn):
		middleware.SetFlash(w, middleware.FlashError, MsgBadColumn)
	case err != nil:
		h.logger.Error("failed to drop piece",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		middleware.SetFlash(w, middleware.FlashError, "Could not drop the piece")
	default:
		switch result.Outcome {
		case model.OutcomeWon:
			middleware.SetFlash(w, middleware.FlashSuccess, WinMessage(result.Player))
		case model.OutcomeTied:
			middleware.SetFlash(w, middleware.FlashInfo, MsgTie)
		}
	}

	http.Redirect(w, r, back, http.StatusSeeOther)
}

// Rematch replaces a game with a fresh one for the same players
func (h *GameHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.Rematch(r.Context(), id)
	if err != nil {
		if !errors.Is(err, model.ErrGameNotFound) {
			h.logger.Error("failed to start rematch",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
		middleware.SetFlash(w, middleware.FlashError, MsgGameNotFound)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, gamePath(g.ID), http.StatusSeeOther)
}

// loadGame fetches the game named in the path, redirecting home if it is gone
func (h *GameHandler) loadGame(w http.ResponseWriter, r *http.Request) (*model.Game, bool) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		if !errors.Is(err, model.ErrGameNotFound) {
			h.logger.Error("failed to load game",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
		middleware.SetFlash(w, middleware.FlashError, MsgGameNotFound)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	return g, true
}

func gamePath(id model.GameID) string {
	return "/game/" + string(id)
}

// formInt reads an optional board dimension; blank yields zero, which selects the default
func formInt(r *http.Request, key string) (int, error) {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, model.ErrInvalidDimensions
	}
	return n, nil
}
