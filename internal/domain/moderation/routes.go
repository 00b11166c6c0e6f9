package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub-api/internal/domain/admin"
	"github.com/campushub/campushub-api/internal/middleware"
	"github.com/campushub/campushub-api/internal/pkg/ratelimit"
)

// Routes returns the moderation router. Ban and unban share one
// per-actor sliding window so a single admin cannot mass-moderate.
func (h *Handler) Routes(limiter *ratelimit.ActorLimiter) chi.Router {
	r := chi.NewRouter()

	r.Get("/banned", h.ListBanned)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, actorKey))
		r.Put("/{uid}/ban", h.Ban)
		r.Put("/{uid}/unban", h.Unban)
	})

	return r
}

func actorKey(r *http.Request) string {
	caller, ok := admin.CallerFromContext(r.Context())
	if !ok {
		return ""
	}
	return caller.Identity.UID.String()
}
