package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/pkg/identity"
	"github.com/campushub/campushub-api/internal/pkg/response"
)

type contextKey string

const callerKey contextKey = "admin_caller"

// Caller is the authenticated administrator attached to the request
// context after the gate has passed. Role and status come from the
// admin record, not from token claims.
type Caller struct {
	Identity identity.Identity
	Admin    *Admin
}

// WithCaller attaches the caller to the context
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFromContext retrieves the caller set by RequireAdmin
func CallerFromContext(ctx context.Context) (*Caller, bool) {
	c, ok := ctx.Value(callerKey).(*Caller)
	return c, ok
}

// RequireAdmin is the two stage authorization gate. Stage one verifies
// the bearer token and rejects revoked sessions; stage two reads the
// admin record and requires it to exist with active status. Token
// claims only gate entry to stage two, the record is authoritative.
func RequireAdmin(verifier *identity.Verifier, redisClient *redis.Client, repo Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			id, err := verifier.Verify(parts[1])
			if err != nil {
				if errors.Is(err, identity.ErrExpiredToken) {
					response.Unauthorized(w, "Token expired")
					return
				}
				response.Unauthorized(w, "Invalid token")
				return
			}

			if identity.SessionsRevoked(r.Context(), redisClient, id.UID) {
				response.Unauthorized(w, "Session revoked")
				return
			}

			if !id.Admin && !id.Superadmin {
				response.Forbidden(w, "Admin access required")
				return
			}

			record, err := repo.GetByUID(r.Context(), id.UID)
			if err != nil {
				log.Error().Err(err).Str("uid", id.UID.String()).Msg("admin gate: record lookup failed")
				response.InternalError(w)
				return
			}
			if record == nil {
				response.Forbidden(w, "Admin access required")
				return
			}
			if record.Status != StatusActive {
				response.Forbidden(w, "Admin account suspended")
				return
			}

			if err := repo.TouchLastActive(r.Context(), id.UID); err != nil {
				log.Warn().Err(err).Str("uid", id.UID.String()).Msg("admin gate: failed to touch last_active")
			}

			ctx := WithCaller(r.Context(), &Caller{Identity: *id, Admin: record})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperadmin re-reads the admin record on every request so a
// role downgrade takes effect immediately, regardless of what the
// caller's token still says. Must be mounted inside RequireAdmin.
func RequireSuperadmin(repo Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			record, err := repo.GetByUID(r.Context(), caller.Identity.UID)
			if err != nil {
				log.Error().Err(err).Str("uid", caller.Identity.UID.String()).Msg("superadmin gate: record lookup failed")
				response.InternalError(w)
				return
			}
			if record == nil || record.Status != StatusActive || record.Role != RoleSuperadmin {
				response.Forbidden(w, "Superadmin access required")
				return
			}

			ctx := WithCaller(r.Context(), &Caller{Identity: caller.Identity, Admin: record})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
