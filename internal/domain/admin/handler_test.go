package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestRemoveHandlerReturnsRemovedAdmin(t *testing.T) {
	target := uuid.New()
	repo := newFakeAdminRepo()
	repo.records[target] = &Admin{UID: target, Email: "mod@campus.edu", Name: "Mod", Role: RoleModerator, Status: StatusActive}
	svc := NewService(repo, &fakeProfiles{}, &fakeClaims{}, &fakeRecorder{})
	h := NewHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/"+target.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uid", target.String())
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	req = req.WithContext(WithCaller(ctx, testCaller()))

	rr := httptest.NewRecorder()
	h.Remove(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			RemovedAdmin *AdminResponse `json:"removed_admin"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success envelope")
	}
	removed := body.Data.RemovedAdmin
	if removed == nil || removed.UID != target || removed.Role != string(RoleModerator) {
		t.Fatalf("expected removed admin snapshot, got %+v", removed)
	}
	if !repo.deleted {
		t.Fatal("expected record deleted")
	}
}
