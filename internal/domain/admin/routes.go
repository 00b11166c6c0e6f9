package admin

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the admin lifecycle router. All routes require the
// superadmin gate, mounted by the caller inside RequireAdmin.
func (h *Handler) Routes(repo Repository) chi.Router {
	r := chi.NewRouter()
	r.Use(RequireSuperadmin(repo))

	r.Get("/", h.List)
	r.Post("/promote-user", h.Promote)
	r.Get("/{uid}", h.Get)
	r.Put("/{uid}", h.Update)
	r.Put("/{uid}/suspend", h.Suspend)
	r.Put("/{uid}/unsuspend", h.Unsuspend)
	r.Delete("/{uid}", h.Remove)

	return r
}
