package handler

import (
	"net/http"

	"github.com/filedepot/filedepot-go/internal/service"
)

// AppHandler answers the liveness and stats endpoints.
type AppHandler struct {
	stats *service.StatsService
}

// NewAppHandler creates a new AppHandler.
func NewAppHandler(stats *service.StatsService) *AppHandler {
	return &AppHandler{stats: stats}
}

// HandleStatus handles GET /status requests.
func (h *AppHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Status(r.Context()))
}

// HandleStats handles GET /stats requests.
func (h *AppHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stats.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
