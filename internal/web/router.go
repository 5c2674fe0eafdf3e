package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	httpmw "github.com/mcoot/connectfour-go/internal/middleware"
	"github.com/mcoot/connectfour-go/internal/services/game"
	"github.com/mcoot/connectfour-go/internal/web/handler"
	"github.com/mcoot/connectfour-go/internal/web/middleware"
	"github.com/mcoot/connectfour-go/internal/web/static"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	// StaticDir overrides the embedded assets with files on disk (optional)
	StaticDir string
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the web routes on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	homeHandler := handler.NewHomeHandler()
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	// Static files
	var assets http.FileSystem
	if cfg.StaticDir != "" {
		assets = http.Dir(cfg.StaticDir)
	} else {
		assets = http.FS(static.FS)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(assets)))

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(httpmw.Logging(cfg.Logger, "web"))
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/game", gameHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/game/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/game/{id}/drop", gameHandler.Drop).Methods(http.MethodPost)
	pages.HandleFunc("/game/{id}/rematch", gameHandler.Rematch).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(homeHandler.NotFound)
}
