package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub-api/internal/domain/audit"
	"github.com/campushub/campushub-api/internal/domain/user"
	"github.com/campushub/campushub-api/internal/pkg/identity"
)

type fakeAdminRepo struct {
	records map[uuid.UUID]*Admin

	upsertErr  error
	deleteErr  error
	deletedUID uuid.UUID
	deleted    bool
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{records: map[uuid.UUID]*Admin{}}
}

func (f *fakeAdminRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*Admin, error) {
	return f.records[uid], nil
}

func (f *fakeAdminRepo) List(ctx context.Context) ([]*Admin, error) {
	out := []*Admin{}
	for _, a := range f.records {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAdminRepo) Upsert(ctx context.Context, a *Admin) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *a
	f.records[a.UID] = &cp
	return nil
}

func (f *fakeAdminRepo) UpdateRoleAndPermissions(ctx context.Context, uid uuid.UUID, role Role, perms PermissionMap) error {
	if r, ok := f.records[uid]; ok {
		r.Role = role
		r.Permissions = perms
	}
	return nil
}

func (f *fakeAdminRepo) SetSuspended(ctx context.Context, uid uuid.UUID, at time.Time, reason, duration string) error {
	if r, ok := f.records[uid]; ok {
		r.Status = StatusSuspended
	}
	return nil
}

func (f *fakeAdminRepo) SetActive(ctx context.Context, uid uuid.UUID) error {
	if r, ok := f.records[uid]; ok {
		r.Status = StatusActive
	}
	return nil
}

func (f *fakeAdminRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
	f.deletedUID = uid
	delete(f.records, uid)
	return nil
}

func (f *fakeAdminRepo) TouchLastActive(ctx context.Context, uid uuid.UUID) error { return nil }
func (f *fakeAdminRepo) IncrementActions(ctx context.Context, uid uuid.UUID) error {
	return nil
}

type fakeProfiles struct {
	byUID   map[uuid.UUID]*user.Profile
	byEmail map[string]*user.Profile
}

func (f *fakeProfiles) GetProfile(ctx context.Context, uid uuid.UUID) (*user.Profile, error) {
	return f.byUID[uid], nil
}

func (f *fakeProfiles) GetProfileByEmail(ctx context.Context, email string) (*user.Profile, error) {
	return f.byEmail[email], nil
}

type fakeClaims struct {
	assertErr error
	revokeErr error

	asserted    bool
	assertedUID uuid.UUID
	superadmin  bool
	revoked     bool
}

func (f *fakeClaims) Assert(ctx context.Context, uid uuid.UUID, superadmin bool) error {
	if f.assertErr != nil {
		return f.assertErr
	}
	f.asserted = true
	f.assertedUID = uid
	f.superadmin = superadmin
	return nil
}

func (f *fakeClaims) Revoke(ctx context.Context, uid uuid.UUID) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = true
	return nil
}

type fakeRecorder struct {
	entries []*audit.Entry
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, entry *audit.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func testCaller() *Caller {
	uid := uuid.New()
	return &Caller{
		Identity: identity.Identity{UID: uid, Email: "super@campus.edu", Name: "Super Admin", Admin: true, Superadmin: true},
		Admin:    &Admin{UID: uid, Name: "Super Admin", Role: RoleSuperadmin, Status: StatusActive},
	}
}

func TestPromoteCreatesRecordAndAssertsClaims(t *testing.T) {
	target := &user.Profile{UID: uuid.New(), Email: "student@campus.edu", Name: "Student"}
	repo := newFakeAdminRepo()
	claims := &fakeClaims{}
	recorder := &fakeRecorder{}
	svc := NewService(repo, &fakeProfiles{byUID: map[uuid.UUID]*user.Profile{target.UID: target}}, claims, recorder)

	record, err := svc.Promote(context.Background(), testCaller(), &PromoteRequest{UID: &target.UID, Role: "moderator"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Role != RoleModerator || record.Status != StatusActive {
		t.Fatalf("unexpected record: role=%s status=%s", record.Role, record.Status)
	}
	if !claims.asserted || claims.assertedUID != target.UID || claims.superadmin {
		t.Fatalf("claims not asserted correctly: %+v", claims)
	}
	if len(record.Permissions) == 0 {
		t.Fatal("expected default permissions")
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != audit.ActionPromoteAdmin {
		t.Fatalf("expected one promote_admin audit entry, got %+v", recorder.entries)
	}
}

func TestPromoteExistingActiveAdminIsConflict(t *testing.T) {
	target := &user.Profile{UID: uuid.New(), Email: "mod@campus.edu", Name: "Mod"}
	repo := newFakeAdminRepo()
	repo.records[target.UID] = &Admin{UID: target.UID, Role: RoleModerator, Status: StatusActive}
	svc := NewService(repo, &fakeProfiles{byUID: map[uuid.UUID]*user.Profile{target.UID: target}}, &fakeClaims{}, &fakeRecorder{})

	_, err := svc.Promote(context.Background(), testCaller(), &PromoteRequest{UID: &target.UID, Role: "moderator"})
	if !errors.Is(err, ErrAlreadyAdmin) {
		t.Fatalf("expected ErrAlreadyAdmin, got %v", err)
	}
}

func TestPromoteOverwritesSuspendedRecord(t *testing.T) {
	target := &user.Profile{UID: uuid.New(), Email: "back@campus.edu", Name: "Comeback"}
	repo := newFakeAdminRepo()
	repo.records[target.UID] = &Admin{UID: target.UID, Role: RoleModerator, Status: StatusSuspended}
	svc := NewService(repo, &fakeProfiles{byUID: map[uuid.UUID]*user.Profile{target.UID: target}}, &fakeClaims{}, &fakeRecorder{})

	record, err := svc.Promote(context.Background(), testCaller(), &PromoteRequest{UID: &target.UID, Role: "superadmin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Status != StatusActive || record.Role != RoleSuperadmin {
		t.Fatalf("expected clean active superadmin record, got %+v", record)
	}
}

func TestPromoteUnknownUserIsNotFound(t *testing.T) {
	svc := NewService(newFakeAdminRepo(), &fakeProfiles{byUID: map[uuid.UUID]*user.Profile{}}, &fakeClaims{}, &fakeRecorder{})

	missing := uuid.New()
	_, err := svc.Promote(context.Background(), testCaller(), &PromoteRequest{UID: &missing, Role: "moderator"})
	if !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPromoteClaimAssertionFailureIsFatal(t *testing.T) {
	target := &user.Profile{UID: uuid.New(), Email: "x@campus.edu", Name: "X"}
	repo := newFakeAdminRepo()
	claims := &fakeClaims{assertErr: errors.New("identity backend down")}
	svc := NewService(repo, &fakeProfiles{byUID: map[uuid.UUID]*user.Profile{target.UID: target}}, claims, &fakeRecorder{})

	_, err := svc.Promote(context.Background(), testCaller(), &PromoteRequest{UID: &target.UID, Role: "moderator"})
	if !errors.Is(err, ErrClaimAssertFailed) {
		t.Fatalf("expected ErrClaimAssertFailed, got %v", err)
	}
}

func TestSuspendAndUnsuspendTransitions(t *testing.T) {
	target := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[target] = &Admin{UID: target, Name: "Mod", Role: RoleModerator, Status: StatusActive}
	recorder := &fakeRecorder{}
	svc := NewService(repo, &fakeProfiles{}, &fakeClaims{}, recorder)
	caller := testCaller()

	record, err := svc.Suspend(context.Background(), caller, target, &SuspendRequest{Duration: "7d", Reason: "spamming"})
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if record.Status != StatusSuspended {
		t.Fatalf("expected suspended, got %s", record.Status)
	}

	record, err = svc.Unsuspend(context.Background(), caller, target)
	if err != nil {
		t.Fatalf("unsuspend: %v", err)
	}
	if record.Status != StatusActive {
		t.Fatalf("expected active, got %s", record.Status)
	}

	if len(recorder.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(recorder.entries))
	}
	if recorder.entries[0].Action != audit.ActionSuspendAdmin || recorder.entries[1].Action != audit.ActionUnsuspendAdmin {
		t.Fatalf("unexpected audit actions: %s, %s", recorder.entries[0].Action, recorder.entries[1].Action)
	}
}

func TestSuspendUnknownAdminIsNotFound(t *testing.T) {
	svc := NewService(newFakeAdminRepo(), &fakeProfiles{}, &fakeClaims{}, &fakeRecorder{})

	_, err := svc.Suspend(context.Background(), testCaller(), uuid.New(), &SuspendRequest{Duration: "1d", Reason: "r"})
	if !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestRemoveAuditsBeforeDeleting(t *testing.T) {
	target := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[target] = &Admin{UID: target, Name: "Mod", Role: RoleModerator, Status: StatusActive}
	recorder := &fakeRecorder{}
	claims := &fakeClaims{}
	svc := NewService(repo, &fakeProfiles{}, claims, recorder)

	removed, err := svc.Remove(context.Background(), testCaller(), target, "policy violation")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed == nil || removed.UID != target || removed.Role != RoleModerator {
		t.Fatalf("expected removed record snapshot, got %+v", removed)
	}
	if !repo.deleted || repo.deletedUID != target {
		t.Fatal("expected record deleted")
	}
	if !claims.revoked {
		t.Fatal("expected claims revoked")
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != audit.ActionRemoveAdmin {
		t.Fatalf("expected one remove_admin entry, got %+v", recorder.entries)
	}
}

func TestRemoveAbortsWhenAuditFails(t *testing.T) {
	target := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[target] = &Admin{UID: target, Name: "Mod", Role: RoleModerator, Status: StatusActive}
	recorder := &fakeRecorder{err: errors.New("ledger unavailable")}
	svc := NewService(repo, &fakeProfiles{}, &fakeClaims{}, recorder)

	_, err := svc.Remove(context.Background(), testCaller(), target, "")
	if err == nil {
		t.Fatal("expected error when audit write fails")
	}
	if repo.deleted {
		t.Fatal("record must not be deleted when the audit write fails")
	}
}

func TestRemoveClaimRevocationFailureIsNonFatal(t *testing.T) {
	target := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[target] = &Admin{UID: target, Name: "Mod", Role: RoleModerator, Status: StatusActive}
	claims := &fakeClaims{revokeErr: errors.New("identity backend down")}
	svc := NewService(repo, &fakeProfiles{}, claims, &fakeRecorder{})

	if _, err := svc.Remove(context.Background(), testCaller(), target, ""); err != nil {
		t.Fatalf("remove should succeed despite revoke failure: %v", err)
	}
	if !repo.deleted {
		t.Fatal("expected record deleted")
	}
}

func TestUpdateChangesRoleAndAssertsClaims(t *testing.T) {
	target := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[target] = &Admin{UID: target, Name: "Mod", Role: RoleModerator, Status: StatusActive, Permissions: DefaultPermissions(RoleModerator)}
	claims := &fakeClaims{}
	svc := NewService(repo, &fakeProfiles{}, claims, &fakeRecorder{})

	role := "superadmin"
	record, err := svc.Update(context.Background(), testCaller(), target, &UpdateRequest{Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if record.Role != RoleSuperadmin {
		t.Fatalf("expected superadmin, got %s", record.Role)
	}
	if !claims.asserted || !claims.superadmin {
		t.Fatal("expected superadmin claim asserted")
	}
}
