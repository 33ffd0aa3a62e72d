package feed

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Faultbox/roulette/internal/game"
	"github.com/Faultbox/roulette/internal/logger"
)

// Controller is the part of the game the HTTP surface drives.
type Controller interface {
	RequestReset()
	Status() game.Status
}

// RouterDeps bundles what the router serves.
type RouterDeps struct {
	Game           Controller
	History        *History
	Hub            *Hub
	AllowedOrigins []string
}

// NewRouter builds the HTTP API:
//
//	GET  /healthz
//	GET  /status
//	GET  /results?limit=n
//	POST /reset
//	GET  /ws
func NewRouter(deps RouterDeps) chi.Router {
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	h := &handler{deps: deps, log: logger.Named("http")}

	r.Get("/healthz", h.health)
	r.Get("/status", h.status)
	r.Get("/results", h.results)
	r.Post("/reset", h.reset)
	if deps.Hub != nil {
		r.Method(http.MethodGet, "/ws", deps.Hub)
	}

	return r
}

type handler struct {
	deps RouterDeps
	log  *zap.Logger
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Game.Status())
}

func (h *handler) results(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	events := []game.Event{}
	if h.deps.History != nil {
		events = h.deps.History.Recent(limit)
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *handler) reset(w http.ResponseWriter, r *http.Request) {
	h.deps.Game.RequestReset()
	h.log.Info("reset requested over http", zap.String("remote", r.RemoteAddr))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "reset scheduled"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response", zap.Error(err))
	}
}
