package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectfour-go/internal/api/request"
	"github.com/mcoot/connectfour-go/internal/api/response"
	"github.com/mcoot/connectfour-go/internal/model"
	"github.com/mcoot/connectfour-go/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{gameController: gameController}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	// An empty body creates a default game
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(),
		model.Player{Name: req.Player1.Name, Color: req.Player1.Color},
		model.Player{Name: req.Player2.Name, Color: req.Player2.Color},
		req.Width, req.Height,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Drop handles POST /api/v1/games/{id}/drop
func (h *GameHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req request.DropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Column == nil {
		WriteError(w, NewInvalidRequestError("column is required"))
		return
	}

	g, result, err := h.gameController.DropPiece(r.Context(), gameID(r), *req.Column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DropResponse{
		Result: response.DropResultFromModel(result),
		Game:   response.GameFromModel(g),
	})
}

// Rematch handles POST /api/v1/games/{id}/rematch
func (h *GameHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Rematch(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.GameFromModel(g))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
