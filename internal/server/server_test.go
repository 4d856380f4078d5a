package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/gateway/memory"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

func newTestServer(t *testing.T) (*Server, *memory.Gateway) {
	t.Helper()
	gw := memory.New()
	if err := gateway.SeedDemo(context.Background(), gw, time.Now()); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	return New(gw, WithAccessLog(nil)), gw
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response failed: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateAndListTasks(t *testing.T) {
	s, _ := newTestServer(t)
	row := gateway.TaskToRow(models.Task{
		Title:       "Logo refresh",
		Category:    models.CategoryBranding,
		Priority:    models.PriorityNormal,
		Status:      models.StatusTodo,
		Points:      1,
		Requester:   "Harry",
		Sprint:      "Sprint 24",
		RequestDate: models.Day(time.Now()),
	})
	rec := doJSON(t, s, http.MethodPost, "/api/tasks", row)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[gateway.TaskRow](t, rec)
	if created.ID == "" || created.Title != "Logo refresh" || created.CreatedAt == nil {
		t.Fatalf("unexpected created row: %+v", created)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/tasks?sprint=Sprint+24", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rows := decode[[]gateway.TaskRow](t, rec)
	if len(rows) != 4 {
		t.Fatalf("expected 4 tasks in Sprint 24, got %d", len(rows))
	}
}

func TestCreateRejectsInvalidRow(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/team_members", map[string]any{"email": "not-an-email"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode[map[string]string](t, rec)
	if body["error"] == "" {
		t.Fatalf("expected error message in body")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/tasks?limit=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestPatchUnknownIsNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPatch, "/api/tasks/missing", map[string]any{"title": "x"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPatchClearsCompletionDate(t *testing.T) {
	s, gw := newTestServer(t)
	tasks, _ := gw.Tasks().List(context.Background(), gateway.Filter{})
	var done models.Task
	for _, task := range tasks {
		if task.Status == models.StatusDone {
			done = task
		}
	}
	rec := doJSON(t, s, http.MethodPatch, "/api/tasks/"+done.ID, map[string]any{"status": "Review", "completion_date": nil})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	row := decode[gateway.TaskRow](t, rec)
	if row.Status != "Review" || row.CompletionDate != nil {
		t.Fatalf("patch not applied: %+v", row)
	}
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	s, gw := newTestServer(t)
	ctx := context.Background()
	cps, _ := gw.Counterparties().List(ctx, gateway.Filter{})
	id := cps[0].ID

	rec := doJSON(t, s, http.MethodPost, "/api/counterparties/"+id+"/delete", map[string]string{"deleted_by": "admin"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	since := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	rec = doJSON(t, s, http.MethodGet, "/api/counterparties?is_deleted=true&since="+since, nil)
	deleted := decode[[]gateway.CounterpartyRow](t, rec)
	if len(deleted) != 1 || deleted[0].ID != id || !deleted[0].IsDeleted || deleted[0].DeletedBy == nil || *deleted[0].DeletedBy != "admin" {
		t.Fatalf("unexpected deleted listing: %+v", deleted)
	}

	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	rec = doJSON(t, s, http.MethodGet, "/api/counterparties?is_deleted=true&since="+future, nil)
	if rows := decode[[]gateway.CounterpartyRow](t, rec); len(rows) != 0 {
		t.Fatalf("since filter ignored: %+v", rows)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/counterparties/"+id+"/restore", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodGet, "/api/counterparties", nil)
	if rows := decode[[]gateway.CounterpartyRow](t, rec); len(rows) != 3 {
		t.Fatalf("expected 3 active counterparties, got %d", len(rows))
	}
}

func TestHardDelete(t *testing.T) {
	s, gw := newTestServer(t)
	members, _ := gw.TeamMembers().List(context.Background(), gateway.Filter{})
	rec := doJSON(t, s, http.MethodDelete, "/api/team_members/"+members[0].ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodDelete, "/api/team_members/"+members[0].ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestActivateSprint(t *testing.T) {
	s, gw := newTestServer(t)
	ctx := context.Background()
	sprints, _ := gw.Sprints().List(ctx, gateway.Filter{})
	var target models.Sprint
	for _, sp := range sprints {
		if !sp.IsActive {
			target = sp
			break
		}
	}

	rec := doJSON(t, s, http.MethodPost, "/api/sprints/"+target.ID+"/activate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sprints, _ = gw.Sprints().List(ctx, gateway.Filter{})
	for _, sp := range sprints {
		if sp.IsActive != (sp.ID == target.ID) {
			t.Fatalf("sprint %s active=%v after activating %s", sp.Name, sp.IsActive, target.Name)
		}
	}

	rec = doJSON(t, s, http.MethodPost, "/api/sprints/missing/activate", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeactivateOthers(t *testing.T) {
	s, gw := newTestServer(t)
	ctx := context.Background()
	sprints, _ := gw.Sprints().List(ctx, gateway.Filter{})
	rec := doJSON(t, s, http.MethodPost, "/api/sprints/"+sprints[0].ID+"/deactivate_others", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	sprints, _ = gw.Sprints().List(ctx, gateway.Filter{})
	for _, sp := range sprints[1:] {
		if sp.IsActive {
			t.Fatalf("sprint %s still active", sp.Name)
		}
	}
}

func TestMemberUpdateIsBroadcast(t *testing.T) {
	s, gw := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := s.Hub().Subscribe(ctx)

	members, _ := gw.TeamMembers().List(ctx, gateway.Filter{})
	rec := doJSON(t, s, http.MethodPatch, "/api/team_members/"+members[0].ID, map[string]any{"name": "Renamed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case ev := <-events:
		if ev.EntityType != models.EntityTeamMember {
			t.Fatalf("unexpected entity type %q", ev.EntityType)
		}
		m, err := gateway.DecodeTeamMember(ev.Record)
		if err != nil {
			t.Fatalf("DecodeTeamMember failed: %v", err)
		}
		if m.ID != members[0].ID || m.Name != "Renamed" {
			t.Fatalf("unexpected member in event: %+v", m)
		}
	case <-time.After(time.Second):
		t.Fatalf("no realtime event")
	}

	// Non-member writes stay off the channel.
	tasks, _ := gw.Tasks().List(ctx, gateway.Filter{})
	doJSON(t, s, http.MethodPatch, "/api/tasks/"+tasks[0].ID, map[string]any{"title": "x"})
	select {
	case ev := <-events:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDropsClosedSubscribers(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	ch := h.Subscribe(ctx)
	if h.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber")
	}
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel should close after cancel")
	}
	if h.Subscribers() != 0 {
		t.Fatalf("subscriber not removed")
	}
	h.Publish(gateway.Event{EntityType: models.EntityTeamMember})
}
