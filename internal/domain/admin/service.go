package admin

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/domain/audit"
	"github.com/campushub/campushub-api/internal/domain/user"
)

// ClaimManager mirrors admin privilege onto the identity layer so that
// freshly issued tokens carry the right hints. The admin record stays
// authoritative either way.
type ClaimManager interface {
	Assert(ctx context.Context, uid uuid.UUID, superadmin bool) error
	Revoke(ctx context.Context, uid uuid.UUID) error
}

// ProfileDirectory resolves platform users targeted by promotions
type ProfileDirectory interface {
	GetProfile(ctx context.Context, uid uuid.UUID) (*user.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*user.Profile, error)
}

// Service implements the admin lifecycle
type Service struct {
	repo     Repository
	profiles ProfileDirectory
	claims   ClaimManager
	auditor  audit.Recorder
}

// NewService creates admin service
func NewService(repo Repository, profiles ProfileDirectory, claims ClaimManager, auditor audit.Recorder) *Service {
	return &Service{repo: repo, profiles: profiles, claims: claims, auditor: auditor}
}

// List returns all admin records
func (s *Service) List(ctx context.Context) ([]*Admin, error) {
	return s.repo.List(ctx)
}

// Get returns one admin record
func (s *Service) Get(ctx context.Context, uid uuid.UUID) (*Admin, error) {
	record, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrAdminNotFound
	}
	return record, nil
}

// Promote grants admin privilege to a platform user. A leftover
// suspended record is overwritten rather than rejected; an active one
// is a conflict. The claim assertion is fatal here: a promotion whose
// privilege hints never land is worse than no promotion at all.
func (s *Service) Promote(ctx context.Context, actor *Caller, req *PromoteRequest) (*Admin, error) {
	target, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	role := Role(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	existing, err := s.repo.GetByUID(ctx, target.UID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == StatusActive {
		return nil, ErrAlreadyAdmin
	}

	perms := PermissionMap(req.Permissions)
	if len(perms) == 0 {
		perms = DefaultPermissions(role)
	}

	record := &Admin{
		UID:         target.UID,
		Email:       target.Email,
		Name:        target.Name,
		Role:        role,
		Status:      StatusActive,
		Permissions: perms,
		PromotedBy:  uuid.NullUUID{UUID: actor.Identity.UID, Valid: true},
		PromotedAt:  time.Now(),
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	if err := s.claims.Assert(ctx, target.UID, role == RoleSuperadmin); err != nil {
		log.Error().
			Err(err).
			Str("target_uid", target.UID.String()).
			Str("role", string(role)).
			Msg("Failed to assert admin claim after promotion")
		return nil, ErrClaimAssertFailed
	}

	s.record(ctx, &audit.Entry{
		AdminUID:    actor.Identity.UID,
		AdminName:   actor.Admin.Name,
		Action:      audit.ActionPromoteAdmin,
		TargetUID:   uuid.NullUUID{UUID: target.UID, Valid: true},
		TargetName:  sql.NullString{String: target.Name, Valid: target.Name != ""},
		TargetEmail: sql.NullString{String: target.Email, Valid: target.Email != ""},
		Changes:     audit.FieldChangeJSON("role", "user", string(role)),
		Reason:      sql.NullString{String: req.Reason, Valid: req.Reason != ""},
	})
	s.countAction(ctx, actor)

	return record, nil
}

// Update changes an admin's role and/or permission set
func (s *Service) Update(ctx context.Context, actor *Caller, targetUID uuid.UUID, req *UpdateRequest) (*Admin, error) {
	record, err := s.repo.GetByUID(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrAdminNotFound
	}

	before := ObjectSnapshot(record)

	newRole := record.Role
	if req.Role != nil {
		newRole = Role(*req.Role)
		if !newRole.Valid() {
			return nil, ErrInvalidRole
		}
	}
	newPerms := record.Permissions
	if req.Permissions != nil {
		newPerms = PermissionMap(*req.Permissions)
	}

	if err := s.repo.UpdateRoleAndPermissions(ctx, targetUID, newRole, newPerms); err != nil {
		return nil, err
	}

	if newRole != record.Role {
		if err := s.claims.Assert(ctx, targetUID, newRole == RoleSuperadmin); err != nil {
			log.Error().
				Err(err).
				Str("target_uid", targetUID.String()).
				Str("role", string(newRole)).
				Msg("Failed to assert admin claim after role change")
			return nil, ErrClaimAssertFailed
		}
	}

	record.Role = newRole
	record.Permissions = newPerms

	s.record(ctx, &audit.Entry{
		AdminUID:    actor.Identity.UID,
		AdminName:   actor.Admin.Name,
		Action:      audit.ActionUpdateAdmin,
		TargetUID:   uuid.NullUUID{UUID: targetUID, Valid: true},
		TargetName:  sql.NullString{String: record.Name, Valid: record.Name != ""},
		TargetEmail: sql.NullString{String: record.Email, Valid: record.Email != ""},
		Changes:     audit.ObjectChangeJSON(before, ObjectSnapshot(record)),
	})
	s.countAction(ctx, actor)

	return record, nil
}

// Suspend pauses an admin without destroying the record. The gate reads
// status per request, so suspension takes effect immediately even while
// the target's token still carries admin hints.
func (s *Service) Suspend(ctx context.Context, actor *Caller, targetUID uuid.UUID, req *SuspendRequest) (*Admin, error) {
	record, err := s.repo.GetByUID(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrAdminNotFound
	}

	now := time.Now()
	if err := s.repo.SetSuspended(ctx, targetUID, now, req.Reason, req.Duration); err != nil {
		return nil, err
	}

	record.Status = StatusSuspended
	record.SuspendedAt = sql.NullTime{Time: now, Valid: true}
	record.SuspendedReason = sql.NullString{String: req.Reason, Valid: true}
	record.SuspendedDuration = sql.NullString{String: req.Duration, Valid: true}

	s.record(ctx, &audit.Entry{
		AdminUID:    actor.Identity.UID,
		AdminName:   actor.Admin.Name,
		Action:      audit.ActionSuspendAdmin,
		TargetUID:   uuid.NullUUID{UUID: targetUID, Valid: true},
		TargetName:  sql.NullString{String: record.Name, Valid: record.Name != ""},
		TargetEmail: sql.NullString{String: record.Email, Valid: record.Email != ""},
		Changes:     audit.FieldChangeJSON("status", string(StatusActive), string(StatusSuspended)),
		Reason:      sql.NullString{String: req.Reason, Valid: req.Reason != ""},
		Duration:    sql.NullString{String: req.Duration, Valid: req.Duration != ""},
	})
	s.countAction(ctx, actor)

	return record, nil
}

// Unsuspend reactivates a suspended admin
func (s *Service) Unsuspend(ctx context.Context, actor *Caller, targetUID uuid.UUID) (*Admin, error) {
	record, err := s.repo.GetByUID(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrAdminNotFound
	}

	if err := s.repo.SetActive(ctx, targetUID); err != nil {
		return nil, err
	}

	record.Status = StatusActive
	record.SuspendedAt = sql.NullTime{}
	record.SuspendedReason = sql.NullString{}
	record.SuspendedDuration = sql.NullString{}

	s.record(ctx, &audit.Entry{
		AdminUID:    actor.Identity.UID,
		AdminName:   actor.Admin.Name,
		Action:      audit.ActionUnsuspendAdmin,
		TargetUID:   uuid.NullUUID{UUID: targetUID, Valid: true},
		TargetName:  sql.NullString{String: record.Name, Valid: record.Name != ""},
		TargetEmail: sql.NullString{String: record.Email, Valid: record.Email != ""},
		Changes:     audit.FieldChangeJSON("status", string(StatusSuspended), string(StatusActive)),
	})
	s.countAction(ctx, actor)

	return record, nil
}

// Remove deletes the admin record, demoting the subject to a regular
// user, and returns the snapshot of the record that was removed. The
// audit entry is written before any destructive step so the trail
// survives a partial failure. Claim revocation is best effort: once
// the record is gone the gate rejects the subject regardless of what
// the lingering token claims say.
func (s *Service) Remove(ctx context.Context, actor *Caller, targetUID uuid.UUID, reason string) (*Admin, error) {
	record, err := s.repo.GetByUID(ctx, targetUID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrAdminNotFound
	}

	entry := &audit.Entry{
		AdminUID:    actor.Identity.UID,
		AdminName:   actor.Admin.Name,
		Action:      audit.ActionRemoveAdmin,
		TargetUID:   uuid.NullUUID{UUID: targetUID, Valid: true},
		TargetName:  sql.NullString{String: record.Name, Valid: record.Name != ""},
		TargetEmail: sql.NullString{String: record.Email, Valid: record.Email != ""},
		Changes:     audit.FieldChangeJSON("role", string(record.Role), "user"),
		Reason:      sql.NullString{String: reason, Valid: reason != ""},
	}
	if err := s.auditor.Record(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.claims.Revoke(ctx, targetUID); err != nil {
		log.Warn().
			Err(err).
			Str("target_uid", targetUID.String()).
			Msg("Failed to revoke admin claim during removal, continuing")
	}

	if err := s.repo.Delete(ctx, targetUID); err != nil {
		return nil, err
	}

	s.countAction(ctx, actor)
	return record, nil
}

func (s *Service) resolveTarget(ctx context.Context, req *PromoteRequest) (*user.Profile, error) {
	var profile *user.Profile
	var err error
	switch {
	case req.UID != nil:
		profile, err = s.profiles.GetProfile(ctx, *req.UID)
	case req.Email != "":
		profile, err = s.profiles.GetProfileByEmail(ctx, req.Email)
	default:
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, user.ErrUserNotFound
	}
	return profile, nil
}

// record appends an audit entry after a completed mutation. Failures
// are already logged by the auditor and do not undo the mutation.
func (s *Service) record(ctx context.Context, entry *audit.Entry) {
	_ = s.auditor.Record(ctx, entry)
}

func (s *Service) countAction(ctx context.Context, actor *Caller) {
	if err := s.repo.IncrementActions(ctx, actor.Identity.UID); err != nil {
		log.Warn().Err(err).Str("uid", actor.Identity.UID.String()).Msg("Failed to increment admin actions count")
	}
}

// ObjectSnapshot captures the auditable fields of a record for
// before/after change payloads
func ObjectSnapshot(a *Admin) map[string]interface{} {
	return map[string]interface{}{
		"role":        string(a.Role),
		"permissions": a.Permissions,
	}
}
