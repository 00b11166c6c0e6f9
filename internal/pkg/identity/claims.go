package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const revokedKeyPrefix = "auth:revoked:"

// ClaimService manages the admin capability claims carried by issued
// tokens. Assertion writes the flags onto the user row so the next token
// issuance picks them up; revocation clears them and best-effort marks
// the subject's outstanding sessions revoked in Redis so stale tokens
// stop working before they expire.
type ClaimService struct {
	db       *sqlx.DB
	redis    *redis.Client
	tokenTTL time.Duration
}

// NewClaimService creates a claim service. The Redis client may be nil.
func NewClaimService(db *sqlx.DB, redisClient *redis.Client, tokenTTL time.Duration) *ClaimService {
	return &ClaimService{db: db, redis: redisClient, tokenTTL: tokenTTL}
}

// Assert grants the admin capability claim for the subject.
// superadmin=true additionally grants the superadmin claim.
func (s *ClaimService) Assert(ctx context.Context, uid uuid.UUID, superadmin bool) error {
	query := `UPDATE users SET is_admin = true, is_superadmin = $2 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, uid, superadmin)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrInvalidToken
	}

	// Outstanding tokens carry the old claims until they expire; the
	// gate treats the admin record as authoritative in the meantime.
	return nil
}

// Revoke clears the admin capability claims for the subject
func (s *ClaimService) Revoke(ctx context.Context, uid uuid.UUID) error {
	query := `UPDATE users SET is_admin = false, is_superadmin = false WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, uid); err != nil {
		return err
	}

	s.RevokeSessions(ctx, uid)
	return nil
}

// RevokeSessions marks the subject's outstanding sessions revoked.
// Best-effort: a miss only means stale tokens live until expiry, and the
// authorization gate still rejects them against the admin record.
func (s *ClaimService) RevokeSessions(ctx context.Context, uid uuid.UUID) {
	if s.redis == nil {
		return
	}
	key := revokedKeyPrefix + uid.String()
	if err := s.redis.Set(ctx, key, time.Now().Unix(), s.tokenTTL).Err(); err != nil {
		log.Warn().Err(err).Str("uid", uid.String()).Msg("Failed to mark sessions revoked")
	}
}

// SessionsRevoked reports whether the subject's sessions were revoked
// after their current token was issued
func SessionsRevoked(ctx context.Context, redisClient *redis.Client, uid uuid.UUID) bool {
	if redisClient == nil {
		return false
	}
	n, err := redisClient.Exists(ctx, revokedKeyPrefix+uid.String()).Result()
	if err != nil {
		// Redis trouble must not lock admins out; the record check
		// downstream is the authoritative gate.
		log.Warn().Err(err).Msg("Session revocation check failed")
		return false
	}
	return n > 0
}
