package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/campushub/campushub-api/internal/domain/admin"
)

func TestUpdateStatusHandlerRejectsUnknownState(t *testing.T) {
	repo := newFakeReportRepo()
	existing := &Report{ID: uuid.New(), ReporterUID: uuid.New(), Status: StatusPending}
	repo.reports[existing.ID] = existing
	router := NewHandler(NewService(repo, &fakeRecorder{}, &fakeCounter{})).Routes()

	raw, _ := json.Marshal(map[string]string{"status": "escalated"})
	req := httptest.NewRequest(http.MethodPut, "/"+existing.ID.String()+"/status", bytes.NewReader(raw))
	req = req.WithContext(admin.WithCaller(context.Background(), testCaller()))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpdateStatusHandlerResolvesReport(t *testing.T) {
	repo := newFakeReportRepo()
	existing := &Report{ID: uuid.New(), ReporterUID: uuid.New(), Status: StatusPending}
	repo.reports[existing.ID] = existing
	router := NewHandler(NewService(repo, &fakeRecorder{}, &fakeCounter{})).Routes()

	raw, _ := json.Marshal(map[string]string{"status": "resolved", "resolution_note": "done"})
	req := httptest.NewRequest(http.MethodPut, "/"+existing.ID.String()+"/status", bytes.NewReader(raw))
	req = req.WithContext(admin.WithCaller(context.Background(), testCaller()))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if repo.reports[existing.ID].Status != StatusResolved {
		t.Fatalf("expected resolved, got %s", repo.reports[existing.ID].Status)
	}
}

func TestListHandlerRejectsBadStatusFilter(t *testing.T) {
	router := NewHandler(NewService(newFakeReportRepo(), &fakeRecorder{}, &fakeCounter{})).Routes()

	req := httptest.NewRequest(http.MethodGet, "/?status=bogus", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateHandlerDefaultsSeverity(t *testing.T) {
	repo := newFakeReportRepo()
	router := NewHandler(NewService(repo, &fakeRecorder{}, &fakeCounter{})).Routes()

	raw, _ := json.Marshal(map[string]interface{}{
		"reporter_uid": uuid.New(),
		"category":     "spam",
		"description":  "spamming the study group chat",
	})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	for _, r := range repo.reports {
		if r.Severity != SeverityLow {
			t.Fatalf("expected default severity low, got %s", r.Severity)
		}
	}
}
