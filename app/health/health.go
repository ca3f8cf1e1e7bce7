// Package health exposes liveness and readiness endpoints for the menu bot.
package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response is the body returned by the health endpoint.
type Response struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	LiveMenus int       `json:"live_menus"`
}

// Handler serves the health endpoints. menuCount reports how many menus
// are currently live; readiness reports whether dependencies are usable.
type Handler struct {
	startTime time.Time
	service   string
	menuCount func() int
	readiness func() error
}

// NewHandler creates a health handler. Both callbacks may be nil.
func NewHandler(service string, menuCount func() int, readiness func() error) *Handler {
	return &Handler{
		startTime: time.Now(),
		service:   service,
		menuCount: menuCount,
		readiness: readiness,
	}
}

// Health reports liveness along with basic runtime stats.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count := 0
	if h.menuCount != nil {
		count = h.menuCount()
	}
	response := Response{
		Status:    "healthy",
		Service:   h.service,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).String(),
		LiveMenus: count,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// Ready reports whether the bot's dependencies are usable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	code := http.StatusOK
	if h.readiness != nil {
		if err := h.readiness(); err != nil {
			status = "not ready: " + err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// StartServer starts the health check HTTP server.
func (h *Handler) StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	return server.ListenAndServe()
}
