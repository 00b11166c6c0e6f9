package stats

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/pkg/response"
)

// Handler handles stats HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates stats handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Overview handles GET /stats
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to aggregate moderation stats")
		response.InternalError(w)
		return
	}
	response.OK(w, overview)
}
