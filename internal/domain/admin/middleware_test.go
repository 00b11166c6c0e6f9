package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub-api/internal/pkg/identity"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, v *identity.Verifier, id identity.Identity) string {
	t.Helper()
	token, err := v.GenerateToken(id)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func gateTestServer(repo Repository) (*identity.Verifier, http.Handler, *bool) {
	verifier := identity.NewVerifier(testSecret, time.Hour)
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return verifier, RequireAdmin(verifier, nil, repo)(next), &reached
}

func TestGateRejectsMissingAuthorization(t *testing.T) {
	_, handler, _ := gateTestServer(newFakeAdminRepo())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGateRejectsMalformedToken(t *testing.T) {
	_, handler, _ := gateTestServer(newFakeAdminRepo())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestGateRejectsNonAdminClaims(t *testing.T) {
	verifier, handler, _ := gateTestServer(newFakeAdminRepo())

	token := mintToken(t, verifier, identity.Identity{UID: uuid.New(), Email: "u@campus.edu"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

// Token claims are hints only: an admin claim with no backing record
// must not pass the gate.
func TestGateRejectsClaimWithoutRecord(t *testing.T) {
	verifier, handler, reached := gateTestServer(newFakeAdminRepo())

	token := mintToken(t, verifier, identity.Identity{UID: uuid.New(), Admin: true})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if *reached {
		t.Fatal("handler must not be reached")
	}
}

func TestGateRejectsSuspendedRecord(t *testing.T) {
	uid := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[uid] = &Admin{UID: uid, Role: RoleModerator, Status: StatusSuspended}
	verifier, handler, _ := gateTestServer(repo)

	token := mintToken(t, verifier, identity.Identity{UID: uid, Admin: true})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestGatePassesActiveAdminAndAttachesCaller(t *testing.T) {
	uid := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[uid] = &Admin{UID: uid, Name: "Mod", Role: RoleModerator, Status: StatusActive}
	verifier := identity.NewVerifier(testSecret, time.Hour)

	var got *Caller
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin(verifier, nil, repo)(next)

	token := mintToken(t, verifier, identity.Identity{UID: uid, Admin: true})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got == nil || got.Identity.UID != uid || got.Admin.Name != "Mod" {
		t.Fatalf("caller not attached correctly: %+v", got)
	}
}

// A role downgrade must take effect on the very next request even
// though the stage-one record was read moments earlier.
func TestSuperadminGateReReadsRecord(t *testing.T) {
	uid := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[uid] = &Admin{UID: uid, Role: RoleModerator, Status: StatusActive}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireSuperadmin(repo)(next)

	caller := &Caller{
		Identity: identity.Identity{UID: uid, Admin: true, Superadmin: true},
		Admin:    &Admin{UID: uid, Role: RoleSuperadmin, Status: StatusActive},
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithCaller(context.Background(), caller))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for downgraded superadmin, got %d", rr.Code)
	}
}

func TestSuperadminGatePassesCurrentSuperadmin(t *testing.T) {
	uid := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[uid] = &Admin{UID: uid, Role: RoleSuperadmin, Status: StatusActive}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireSuperadmin(repo)(next)

	caller := &Caller{
		Identity: identity.Identity{UID: uid, Admin: true, Superadmin: true},
		Admin:    repo.records[uid],
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithCaller(context.Background(), caller))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
