package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/connectfour-go/internal/api/apierr"
	"github.com/mcoot/connectfour-go/internal/api/handler"
	"github.com/mcoot/connectfour-go/internal/api/middleware"
	"github.com/mcoot/connectfour-go/internal/api/response"
	httpmw "github.com/mcoot/connectfour-go/internal/middleware"
	"github.com/mcoot/connectfour-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Prefix is the path every API route lives under
const Prefix = "/api/v1"

// Mount registers the API routes under Prefix on an existing router.
// Unknown paths under /api/ get a JSON 404 and known paths with the wrong method a JSON 405,
// whatever NotFoundHandler the root router carries.
func Mount(r *mux.Router, cfg RouterConfig) {
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Routes carry the full path. A PathPrefix subrouter copies its prefix matcher
	// into every route, which makes mux drop a method mismatch and answer 404.
	api := r.NewRoute().Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(httpmw.Logging(cfg.Logger, "api"))

	api.HandleFunc(Prefix+"/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc(Prefix+"/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc(Prefix+"/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc(Prefix+"/games/{id}/drop", gameHandler.Drop).Methods(http.MethodPost)
	api.HandleFunc(Prefix+"/games/{id}/rematch", gameHandler.Rematch).Methods(http.MethodPost)

	api.HandleFunc(Prefix+"/health", healthHandler).Methods(http.MethodGet)

	api.MethodNotAllowedHandler = httpmw.Logging(cfg.Logger, "api")(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			apierr.WriteError(w, apierr.NewMethodNotAllowedError())
		},
	))

	r.PathPrefix("/api/").Handler(httpmw.Logging(cfg.Logger, "api")(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			apierr.WriteError(w, apierr.NewNotFoundError())
		},
	)))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
