package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/pkg/ratelimit"
	"github.com/campushub/campushub-api/internal/pkg/response"
)

// KeyFunc derives the limiter key for a request. Returning "" falls
// back to the client IP.
type KeyFunc func(r *http.Request) string

// RateLimit returns middleware that caps an action class per actor.
// A nil limiter disables the throttle (non-production profiles).
func RateLimit(limiter *ratelimit.ActorLimiter, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				k = ClientIP(r)
			}

			if !limiter.Allow(k) {
				log.Warn().
					Str("actor", k).
					Str("path", r.URL.Path).
					Msg("Rate limit exceeded")
				response.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
