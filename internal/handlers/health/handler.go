package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"todos/transport/http/response"
)

type HealthResponse struct {
	OK     bool    `json:"ok"`
	Uptime float64 `json:"uptime"`
}

type Handler struct {
	startedAt time.Time
}

func New() Handler {
	return Handler{
		startedAt: time.Now(),
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports liveness and seconds of uptime since process start.
func (handler *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, HealthResponse{
		OK:     true,
		Uptime: time.Since(handler.startedAt).Seconds(),
	})
}
