package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkrella/matchroom/internal/api/handler"
	apimiddleware "github.com/mkrella/matchroom/internal/api/middleware"
	"github.com/mkrella/matchroom/internal/middleware"
	"github.com/mkrella/matchroom/internal/services/auth"
	"github.com/mkrella/matchroom/internal/services/room"
	"github.com/mkrella/matchroom/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	RoomController *room.Controller
	StatsService   *stats.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes (no auth required for registering/logging in)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	userProtected := api.PathPrefix("/users").Subrouter()
	userProtected.Use(authMiddleware)
	userProtected.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/start", roomHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/state", roomHandler.UpdateState).Methods(http.MethodPost)

	// Stats routes (require auth)
	api.Handle("/history", authMiddleware(http.HandlerFunc(statsHandler.History))).Methods(http.MethodGet)
	api.Handle("/leaderboard", authMiddleware(http.HandlerFunc(statsHandler.Leaderboard))).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// CORS wraps the whole router so preflight requests are answered
	// even though no route matches OPTIONS
	return middleware.CORS()(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
