package audit

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub-api/internal/domain/user"
)

type fakeAuditRepo struct {
	entries   []*Entry
	createErr error
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListSince(ctx context.Context, since time.Time) ([]*Entry, error) {
	out := []*Entry{}
	for _, e := range f.entries {
		if e.CreatedAt.After(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAuditRepo) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

type fakeProfileResolver struct {
	profiles map[uuid.UUID]*user.Profile
	err      error
}

func (f *fakeProfileResolver) GetProfile(ctx context.Context, uid uuid.UUID) (*user.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[uid], nil
}

type fakeReporterResolver struct {
	reporters map[uuid.UUID]uuid.UUID
	err       error
}

func (f *fakeReporterResolver) GetReporter(ctx context.Context, reportID uuid.UUID) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.reporters[reportID], nil
}

func TestRecordFillsDefaults(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, &fakeProfileResolver{}, &fakeReporterResolver{}, 30)

	entry := &Entry{AdminUID: uuid.New(), AdminName: "Mod", Action: ActionBanUser}
	if err := svc.Record(context.Background(), entry); err != nil {
		t.Fatalf("record: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("expected id assigned")
	}
	if entry.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", entry.Status)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("expected created_at stamped")
	}
}

func TestRecordPropagatesStoreError(t *testing.T) {
	repo := &fakeAuditRepo{createErr: errors.New("down")}
	svc := NewService(repo, &fakeProfileResolver{}, &fakeReporterResolver{}, 30)

	if err := svc.Record(context.Background(), &Entry{AdminUID: uuid.New(), Action: ActionBanUser}); err == nil {
		t.Fatal("expected error")
	}
}

func seedEntries(repo *fakeAuditRepo) (adminA, adminB uuid.UUID) {
	adminA = uuid.New()
	adminB = uuid.New()
	now := time.Now()
	for i, e := range []*Entry{
		{AdminUID: adminA, AdminName: "Alice", Action: ActionBanUser, TargetName: sql.NullString{String: "Troll", Valid: true}},
		{AdminUID: adminA, AdminName: "Alice", Action: ActionUnbanUser},
		{AdminUID: adminB, AdminName: "Bob", Action: ActionBanUser},
		{AdminUID: adminB, AdminName: "Bob", Action: ActionPromoteAdmin},
	} {
		e.ID = uuid.New()
		e.Status = StatusCompleted
		e.CreatedAt = now.Add(-time.Duration(i) * time.Hour)
		repo.entries = append(repo.entries, e)
	}
	return adminA, adminB
}

func TestListFiltersByAdminAndAction(t *testing.T) {
	repo := &fakeAuditRepo{}
	adminA, _ := seedEntries(repo)
	svc := NewService(repo, &fakeProfileResolver{}, &fakeReporterResolver{}, 30)

	action := ActionBanUser
	entries, total, err := svc.List(context.Background(), Filter{AdminUID: &adminA, Action: &action})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Fatalf("expected 1 entry, got total=%d len=%d", total, len(entries))
	}
	if entries[0].AdminUID != adminA || entries[0].Action != ActionBanUser {
		t.Fatalf("wrong entry: %+v", entries[0].Entry)
	}
}

func TestListSearchMatchesAdminName(t *testing.T) {
	repo := &fakeAuditRepo{}
	seedEntries(repo)
	svc := NewService(repo, &fakeProfileResolver{}, &fakeReporterResolver{}, 30)

	_, total, err := svc.List(context.Background(), Filter{Search: "bob"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 matches for bob, got %d", total)
	}
}

func TestListPaginates(t *testing.T) {
	repo := &fakeAuditRepo{}
	seedEntries(repo)
	svc := NewService(repo, &fakeProfileResolver{}, &fakeReporterResolver{}, 30)

	entries, total, err := svc.List(context.Background(), Filter{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry on page 2, got %d", len(entries))
	}
}

func TestEnrichmentResolvesTargetProfile(t *testing.T) {
	repo := &fakeAuditRepo{}
	target := uuid.New()
	repo.entries = append(repo.entries, &Entry{
		ID:        uuid.New(),
		AdminUID:  uuid.New(),
		Action:    ActionBanUser,
		TargetUID: uuid.NullUUID{UUID: target, Valid: true},
		CreatedAt: time.Now(),
	})
	profiles := &fakeProfileResolver{profiles: map[uuid.UUID]*user.Profile{
		target: {UID: target, Name: "Fresh Name"},
	}}
	svc := NewService(repo, profiles, &fakeReporterResolver{}, 30)

	entries, _, err := svc.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if entries[0].AffectedUserName != "Fresh Name" {
		t.Fatalf("expected live profile name, got %q", entries[0].AffectedUserName)
	}
}

// Enrichment must degrade, never fail: a broken profile store falls
// back to the stored snapshot, and an entry with nothing stored reads
// as N/A.
func TestEnrichmentDegradesOnLookupFailure(t *testing.T) {
	repo := &fakeAuditRepo{}
	withSnapshot := uuid.New()
	repo.entries = append(repo.entries,
		&Entry{
			ID:         uuid.New(),
			AdminUID:   uuid.New(),
			Action:     ActionBanUser,
			TargetUID:  uuid.NullUUID{UUID: withSnapshot, Valid: true},
			TargetName: sql.NullString{String: "Stored Name", Valid: true},
			CreatedAt:  time.Now(),
		},
		&Entry{
			ID:        uuid.New(),
			AdminUID:  uuid.New(),
			Action:    ActionBanUser,
			TargetUID: uuid.NullUUID{UUID: uuid.New(), Valid: true},
			CreatedAt: time.Now(),
		},
	)
	profiles := &fakeProfileResolver{err: errors.New("profile store down")}
	svc := NewService(repo, profiles, &fakeReporterResolver{}, 30)

	entries, _, err := svc.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("list must not fail on enrichment errors: %v", err)
	}

	names := map[string]bool{}
	for _, e := range entries {
		names[e.AffectedUserName] = true
	}
	if !names["Stored Name"] || !names["N/A"] {
		t.Fatalf("expected fallback names, got %v", names)
	}
}

func TestEnrichmentResolvesReporterThroughReport(t *testing.T) {
	repo := &fakeAuditRepo{}
	reportID := uuid.New()
	reporter := uuid.New()
	repo.entries = append(repo.entries, &Entry{
		ID:             uuid.New(),
		AdminUID:       uuid.New(),
		Action:         ActionUpdateReportStatus,
		TargetReportID: uuid.NullUUID{UUID: reportID, Valid: true},
		CreatedAt:      time.Now(),
	})
	profiles := &fakeProfileResolver{profiles: map[uuid.UUID]*user.Profile{
		reporter: {UID: reporter, Name: "Reporter Name"},
	}}
	reports := &fakeReporterResolver{reporters: map[uuid.UUID]uuid.UUID{reportID: reporter}}
	svc := NewService(repo, profiles, reports, 30)

	entries, _, err := svc.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if entries[0].AffectedUserName != "Reporter Name" {
		t.Fatalf("expected reporter name, got %q", entries[0].AffectedUserName)
	}
}

func TestGetUnknownEntryIsNotFound(t *testing.T) {
	svc := NewService(&fakeAuditRepo{}, &fakeProfileResolver{}, &fakeReporterResolver{}, 30)

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
