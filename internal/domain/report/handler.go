package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/domain/admin"
	"github.com/campushub/campushub-api/internal/pkg/response"
	"github.com/campushub/campushub-api/internal/pkg/validator"
)

// Handler handles report HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates report handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the report router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}/status", h.UpdateStatus)

	return r
}

// List handles GET /reports
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := Filter{
		Status:   q.Get("status"),
		Severity: q.Get("severity"),
	}
	if filter.Status != "" && !Status(filter.Status).Valid() {
		response.BadRequest(w, "Invalid status filter")
		return
	}
	if filter.Severity != "" && !Severity(filter.Severity).Valid() {
		response.BadRequest(w, "Invalid severity filter")
		return
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	reports, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reports")
		response.InternalError(w)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	response.WithMeta(w, map[string]interface{}{"reports": reports}, response.NewMeta(total, page, limit))
}

// Create handles POST /reports
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	report, err := h.service.Create(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create report")
		response.InternalError(w)
		return
	}
	response.Created(w, report)
}

// Get handles GET /reports/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report id")
		return
	}

	report, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.NotFound(w, "Report not found")
			return
		}
		log.Error().Err(err).Str("id", id.String()).Msg("Failed to get report")
		response.InternalError(w)
		return
	}
	response.OK(w, report)
}

// UpdateStatus handles PUT /reports/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := admin.CallerFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	report, err := h.service.UpdateStatus(r.Context(), caller, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.BadRequest(w, "Invalid status. Must be: pending, resolved, or dismissed")
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		default:
			log.Error().Err(err).Str("id", id.String()).Msg("Failed to update report status")
			response.InternalError(w)
		}
		return
	}
	response.OK(w, report)
}
