package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/domain/user"
)

// Recorder is the write side of the ledger, consumed by every domain
// that performs privileged mutations.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
}

// ProfileResolver resolves display names for enrichment
type ProfileResolver interface {
	GetProfile(ctx context.Context, uid uuid.UUID) (*user.Profile, error)
}

// ReporterResolver resolves the reporter behind a report-keyed entry
type ReporterResolver interface {
	GetReporter(ctx context.Context, reportID uuid.UUID) (uuid.UUID, error)
}

// Filter bounds and narrows an audit log read
type Filter struct {
	AdminUID  *uuid.UUID
	Action    *string
	TargetUID *uuid.UUID
	Search    string
	Days      int
	Page      int
	Limit     int
}

// Service handles audit ledger writes and enriched reads
type Service struct {
	repo        Repository
	profiles    ProfileResolver
	reports     ReporterResolver
	defaultDays int
}

// NewService creates the audit service
func NewService(repo Repository, profiles ProfileResolver, reports ReporterResolver, defaultDays int) *Service {
	if defaultDays <= 0 {
		defaultDays = 30
	}
	return &Service{repo: repo, profiles: profiles, reports: reports, defaultDays: defaultDays}
}

// Record appends one entry to the ledger. Callers sequence their state
// writes before calling Record (Remove is the exception: it records
// before deleting so the trail survives a failed delete).
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Status == "" {
		entry.Status = StatusCompleted
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().
			Err(err).
			Str("action", entry.Action).
			Str("admin_uid", entry.AdminUID.String()).
			Msg("Failed to append audit entry")
		return err
	}
	return nil
}

// List returns one page of enriched entries plus the total count after
// filtering. The primary fetch is the indexed time-range scan; admin,
// action, target and search predicates run in-memory over that window
// because the store's composite-filter support is limited.
func (s *Service) List(ctx context.Context, filter Filter) ([]*EnrichedEntry, int, error) {
	days := filter.Days
	if days <= 0 {
		days = s.defaultDays
	}
	since := time.Now().AddDate(0, 0, -days)

	raw, err := s.repo.ListSince(ctx, since)
	if err != nil {
		return nil, 0, err
	}

	filtered := raw[:0:0]
	for _, e := range raw {
		if !matches(e, filter) {
			continue
		}
		filtered = append(filtered, e)
	}

	total := len(filtered)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageEntries := filtered[start:end]
	enriched := make([]*EnrichedEntry, len(pageEntries))
	for i, e := range pageEntries {
		enriched[i] = &EnrichedEntry{Entry: e, AffectedUserName: s.affectedUserName(ctx, e)}
	}

	return enriched, total, nil
}

// Get returns a single enriched entry
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*EnrichedEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return &EnrichedEntry{Entry: entry, AffectedUserName: s.affectedUserName(ctx, entry)}, nil
}

func matches(e *Entry, f Filter) bool {
	if f.AdminUID != nil && e.AdminUID != *f.AdminUID {
		return false
	}
	if f.Action != nil && e.Action != *f.Action {
		return false
	}
	if f.TargetUID != nil && (!e.TargetUID.Valid || e.TargetUID.UUID != *f.TargetUID) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(e.AdminName + " " + e.Action + " " + e.TargetName.String + " " + e.TargetEmail.String)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

// affectedUserName resolves a display name for the entry's target.
// Lookup failures degrade to the stored target name, never to an error:
// the trail must stay readable after referenced identities are deleted.
func (s *Service) affectedUserName(ctx context.Context, e *Entry) string {
	fallback := "N/A"
	if e.TargetName.Valid && e.TargetName.String != "" {
		fallback = e.TargetName.String
	}

	switch {
	case e.TargetUID.Valid:
		profile, err := s.profiles.GetProfile(ctx, e.TargetUID.UUID)
		if err != nil || profile == nil || profile.Name == "" {
			return fallback
		}
		return profile.Name

	case e.TargetReportID.Valid:
		reporter, err := s.reports.GetReporter(ctx, e.TargetReportID.UUID)
		if err != nil || reporter == uuid.Nil {
			return fallback
		}
		profile, err := s.profiles.GetProfile(ctx, reporter)
		if err != nil || profile == nil || profile.Name == "" {
			return fallback
		}
		return profile.Name

	default:
		return fallback
	}
}
