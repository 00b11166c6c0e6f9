package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/domain/user"
	"github.com/campushub/campushub-api/internal/pkg/response"
	"github.com/campushub/campushub-api/internal/pkg/validator"
)

// Handler handles admin lifecycle HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates admin handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /admins
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list admins")
		response.InternalError(w)
		return
	}

	out := make([]*AdminResponse, len(admins))
	for i, a := range admins {
		out[i] = AdminResponseFromEntity(a)
	}
	response.OK(w, map[string]interface{}{"admins": out, "total": len(out)})
}

// Get handles GET /admins/{uid}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		response.BadRequest(w, "Invalid admin uid")
		return
	}

	record, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			response.NotFound(w, "Admin not found")
			return
		}
		log.Error().Err(err).Str("uid", uid.String()).Msg("Failed to get admin")
		response.InternalError(w)
		return
	}
	response.OK(w, AdminResponseFromEntity(record))
}

// Promote handles POST /admins/promote-user
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}
	if req.UID == nil && req.Email == "" {
		response.BadRequest(w, "Either uid or email is required")
		return
	}

	record, err := h.service.Promote(r.Context(), caller, &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrAlreadyAdmin):
			response.BadRequest(w, "User is already an admin")
		case errors.Is(err, ErrInvalidRole):
			response.BadRequest(w, "Invalid role")
		default:
			log.Error().Err(err).Msg("Failed to promote user")
			response.InternalError(w)
		}
		return
	}
	response.Created(w, AdminResponseFromEntity(record))
}

// Update handles PUT /admins/{uid}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	uid, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		response.BadRequest(w, "Invalid admin uid")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}
	if req.Role == nil && req.Permissions == nil {
		response.BadRequest(w, "Nothing to update")
		return
	}

	record, err := h.service.Update(r.Context(), caller, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdminNotFound):
			response.NotFound(w, "Admin not found")
		case errors.Is(err, ErrInvalidRole):
			response.BadRequest(w, "Invalid role")
		default:
			log.Error().Err(err).Str("uid", uid.String()).Msg("Failed to update admin")
			response.InternalError(w)
		}
		return
	}
	response.OK(w, AdminResponseFromEntity(record))
}

// Suspend handles PUT /admins/{uid}/suspend
func (h *Handler) Suspend(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	uid, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		response.BadRequest(w, "Invalid admin uid")
		return
	}

	var req SuspendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	record, err := h.service.Suspend(r.Context(), caller, uid, &req)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			response.NotFound(w, "Admin not found")
			return
		}
		log.Error().Err(err).Str("uid", uid.String()).Msg("Failed to suspend admin")
		response.InternalError(w)
		return
	}
	response.OK(w, AdminResponseFromEntity(record))
}

// Unsuspend handles PUT /admins/{uid}/unsuspend
func (h *Handler) Unsuspend(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	uid, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		response.BadRequest(w, "Invalid admin uid")
		return
	}

	record, err := h.service.Unsuspend(r.Context(), caller, uid)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			response.NotFound(w, "Admin not found")
			return
		}
		log.Error().Err(err).Str("uid", uid.String()).Msg("Failed to unsuspend admin")
		response.InternalError(w)
		return
	}
	response.OK(w, AdminResponseFromEntity(record))
}

// Remove handles DELETE /admins/{uid}
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	uid, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		response.BadRequest(w, "Invalid admin uid")
		return
	}

	var req RemoveRequest
	if r.Body != nil {
		// Reason is optional, an empty body is fine
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	removed, err := h.service.Remove(r.Context(), caller, uid, req.Reason)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			response.NotFound(w, "Admin not found")
			return
		}
		log.Error().Err(err).Str("uid", uid.String()).Msg("Failed to remove admin")
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{"removed_admin": AdminResponseFromEntity(removed)})
}
