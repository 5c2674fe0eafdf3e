package handler

import (
	"net/http"

	"github.com/mcoot/connectfour-go/internal/model"
	"github.com/mcoot/connectfour-go/internal/services/game"
	"github.com/mcoot/connectfour-go/internal/web/middleware"
	"github.com/mcoot/connectfour-go/internal/web/templates/layout"
	"github.com/mcoot/connectfour-go/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "New game",
			Flash: middleware.GetFlash(r.Context()),
		},
		Player1: pages.PlayerForm{Color: game.DefaultPlayer1Color},
		Player2: pages.PlayerForm{Color: game.DefaultPlayer2Color},
		Width:   model.DefaultWidth,
		Height:  model.DefaultHeight,
	}

	render(w, r, http.StatusOK, pages.Home(data))
}

// NotFound renders the 404 page
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, pages.Error(pages.ErrorData{
		Status:  http.StatusNotFound,
		Message: "There is nothing here.",
	}))
}
