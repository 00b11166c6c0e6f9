package moderation

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/domain/admin"
	"github.com/campushub/campushub-api/internal/domain/audit"
	"github.com/campushub/campushub-api/internal/domain/user"
)

// ActionCounter bumps the acting admin's actions_count
type ActionCounter interface {
	IncrementActions(ctx context.Context, uid uuid.UUID) error
}

// ProfileDirectory resolves the platform user being moderated
type ProfileDirectory interface {
	GetProfile(ctx context.Context, uid uuid.UUID) (*user.Profile, error)
}

// Service implements user bans
type Service struct {
	repo     Repository
	profiles ProfileDirectory
	auditor  audit.Recorder
	counter  ActionCounter
}

// NewService creates moderation service
func NewService(repo Repository, profiles ProfileDirectory, auditor audit.Recorder, counter ActionCounter) *Service {
	return &Service{repo: repo, profiles: profiles, auditor: auditor, counter: counter}
}

// Ban flags the user and writes the banned_users record. Both writes
// must land before the ban counts as complete: a partial failure is
// logged per write, never rolled back, and surfaced to the caller so
// the moderator retries. No audit entry is appended on failure.
func (s *Service) Ban(ctx context.Context, actor *admin.Caller, targetUID uuid.UUID, reason, duration string) error {
	if reason == "" {
		return ErrReasonRequired
	}

	profile, err := s.profiles.GetProfile(ctx, targetUID)
	if err != nil {
		return err
	}
	if profile == nil {
		return user.ErrUserNotFound
	}

	flagErr := s.repo.SetBanned(ctx, targetUID, reason)
	if flagErr != nil {
		log.Error().
			Err(flagErr).
			Str("target_uid", targetUID.String()).
			Msg("Ban: failed to set ban flag on user")
	}

	recordErr := s.repo.UpsertBanRecord(ctx, &BanRecord{
		UID:          targetUID,
		Email:        profile.Email,
		Name:         profile.Name,
		Reason:       reason,
		Duration:     duration,
		Status:       BanStatusActive,
		BannedBy:     actor.Identity.UID,
		BannedByName: actor.Admin.Name,
		BannedAt:     time.Now(),
	})
	if recordErr != nil {
		log.Error().
			Err(recordErr).
			Str("target_uid", targetUID.String()).
			Msg("Ban: failed to write banned_users record")
	}

	if flagErr != nil || recordErr != nil {
		return ErrBanWriteFailed
	}

	s.record(ctx, actor, audit.ActionBanUser, profile, reason, duration,
		audit.FieldChangeJSON("is_banned", false, true))
	s.countAction(ctx, actor)
	return nil
}

// Unban clears the flag and removes the registry record. Unbanning a
// user with no registry record is a no-op: the clears still run so
// retries and racing moderators converge on the same state. Both
// writes must succeed before the unban counts as complete.
func (s *Service) Unban(ctx context.Context, actor *admin.Caller, targetUID uuid.UUID) error {
	profile, err := s.profiles.GetProfile(ctx, targetUID)
	if err != nil {
		return err
	}
	if profile == nil {
		return user.ErrUserNotFound
	}

	existing, err := s.repo.GetBanRecord(ctx, targetUID)
	if err != nil {
		return err
	}
	if existing == nil {
		log.Info().
			Str("target_uid", targetUID.String()).
			Msg("Unban: no ban record on file, clearing flags anyway")
	}

	flagErr := s.repo.ClearBanned(ctx, targetUID)
	if flagErr != nil {
		log.Error().
			Err(flagErr).
			Str("target_uid", targetUID.String()).
			Msg("Unban: failed to clear ban flag on user")
	}

	recordErr := s.repo.DeleteBanRecord(ctx, targetUID)
	if recordErr != nil {
		log.Error().
			Err(recordErr).
			Str("target_uid", targetUID.String()).
			Msg("Unban: failed to delete banned_users record")
	}

	if flagErr != nil || recordErr != nil {
		return ErrBanWriteFailed
	}

	s.record(ctx, actor, audit.ActionUnbanUser, profile, "", "",
		audit.FieldChangeJSON("is_banned", true, false))
	s.countAction(ctx, actor)
	return nil
}

// ListBanned returns the ban registry
func (s *Service) ListBanned(ctx context.Context) ([]*BanRecord, error) {
	return s.repo.ListBanRecords(ctx)
}

func (s *Service) record(ctx context.Context, actor *admin.Caller, action string, target *user.Profile, reason, duration string, changes json.RawMessage) {
	_ = s.auditor.Record(ctx, &audit.Entry{
		AdminUID:    actor.Identity.UID,
		AdminName:   actor.Admin.Name,
		Action:      action,
		TargetUID:   uuid.NullUUID{UUID: target.UID, Valid: true},
		TargetName:  sql.NullString{String: target.Name, Valid: target.Name != ""},
		TargetEmail: sql.NullString{String: target.Email, Valid: target.Email != ""},
		Changes:     changes,
		Reason:      sql.NullString{String: reason, Valid: reason != ""},
		Duration:    sql.NullString{String: duration, Valid: duration != ""},
	})
}

func (s *Service) countAction(ctx context.Context, actor *admin.Caller) {
	if err := s.counter.IncrementActions(ctx, actor.Identity.UID); err != nil {
		log.Warn().Err(err).Str("uid", actor.Identity.UID.String()).Msg("Failed to increment admin actions count")
	}
}
