package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campushub/campushub-api/internal/pkg/response"
)

// Handler handles audit log HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns audit log routes; the caller wraps them with the
// admin authorization gate.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}

// List handles GET /audit-logs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Search: r.URL.Query().Get("search"),
	}

	if v := r.URL.Query().Get("adminUid"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.AdminUID = &id
		} else {
			response.BadRequest(w, "Invalid adminUid filter")
			return
		}
	}
	if v := r.URL.Query().Get("targetUid"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.TargetUID = &id
		} else {
			response.BadRequest(w, "Invalid targetUid filter")
			return
		}
	}
	if v := r.URL.Query().Get("action"); v != "" {
		filter.Action = &v
	}
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Days = n
		}
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	logs, total, err := h.service.List(r.Context(), filter)
	if err != nil {
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

	response.OK(w, map[string]interface{}{
		"logs":       logs,
		"pagination": response.NewMeta(total, page, limit),
		"filters": map[string]interface{}{
			"adminUid":  r.URL.Query().Get("adminUid"),
			"action":    r.URL.Query().Get("action"),
			"targetUid": r.URL.Query().Get("targetUid"),
			"days":      filter.Days,
			"search":    filter.Search,
		},
	})
}

// Get handles GET /audit-logs/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		if err == ErrEntryNotFound {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, entry)
}
