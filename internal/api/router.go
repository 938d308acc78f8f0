package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordhunt/internal/api/handler"
	"github.com/mcoot/wordhunt/internal/api/middleware"
	httpmw "github.com/mcoot/wordhunt/internal/middleware"
	"github.com/mcoot/wordhunt/internal/services/auth"
	"github.com/mcoot/wordhunt/internal/services/category"
	"github.com/mcoot/wordhunt/internal/services/reward"
	"github.com/mcoot/wordhunt/internal/services/round"
	"github.com/mcoot/wordhunt/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	CategoryService category.ServiceInterface
	RoundController *round.Controller
	RewardClient    reward.Client
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roundCfg := cfg.RoundController.Config()
	maxWordLen := max(roundCfg.Rows, roundCfg.Cols)

	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.RewardClient)
	categoryHandler := handler.NewCategoryHandler(cfg.CategoryService, maxWordLen)
	roundHandler := handler.NewRoundHandler(cfg.RoundController, cfg.HubManager)

	authMiddleware := middleware.Auth(cfg.AuthService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(httpmw.Logging(cfg.Logger))

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me/address", playerHandler.UpdateAddress).Methods(http.MethodPut)
	playerProtected.HandleFunc("/me/balance", playerHandler.Balance).Methods(http.MethodGet)

	// Categories can be browsed without an account
	api.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id}", categoryHandler.Get).Methods(http.MethodGet)
	categoryProtected := api.PathPrefix("/categories").Subrouter()
	categoryProtected.Use(authMiddleware)
	categoryProtected.HandleFunc("/generate", categoryHandler.Generate).Methods(http.MethodPost)

	rounds := api.PathPrefix("/rounds").Subrouter()
	rounds.Use(authMiddleware)
	rounds.HandleFunc("", roundHandler.Start).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}", roundHandler.Get).Methods(http.MethodGet)
	rounds.HandleFunc("/{id}", roundHandler.Abandon).Methods(http.MethodDelete)
	rounds.HandleFunc("/{id}/press", roundHandler.Press).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/extend", roundHandler.Extend).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/release", roundHandler.Release).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/abort", roundHandler.Abort).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/claim", roundHandler.Claim).Methods(http.MethodPost)
	rounds.HandleFunc("/{id}/events", roundHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
