package moderation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/domain/admin"
	"github.com/campushub/campushub-api/internal/domain/user"
	"github.com/campushub/campushub-api/internal/pkg/response"
)

// Handler handles moderation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates moderation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Ban handles PUT /users/{uid}/ban
func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	caller, ok := admin.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	uid, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		response.BadRequest(w, "Invalid user uid")
		return
	}

	var req BanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Reason == "" {
		response.BadRequest(w, "Ban reason is required")
		return
	}

	if err := h.service.Ban(r.Context(), caller, uid, req.Reason, req.Duration); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrReasonRequired):
			response.BadRequest(w, "Ban reason is required")
		default:
			log.Error().Err(err).Str("uid", uid.String()).Msg("Failed to ban user")
			response.InternalError(w)
		}
		return
	}
	response.OK(w, BanResponse{UID: uid.String(), Banned: true, Message: "User banned"})
}

// Unban handles PUT /users/{uid}/unban
func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	caller, ok := admin.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	uid, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		response.BadRequest(w, "Invalid user uid")
		return
	}

	if err := h.service.Unban(r.Context(), caller, uid); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Str("uid", uid.String()).Msg("Failed to unban user")
		response.InternalError(w)
		return
	}
	response.OK(w, BanResponse{UID: uid.String(), Banned: false, Message: "User unbanned"})
}

// ListBanned handles GET /users/banned
func (h *Handler) ListBanned(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListBanned(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list banned users")
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{"banned": records, "total": len(records)})
}
