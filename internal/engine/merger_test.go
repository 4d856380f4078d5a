package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

func TestMergerRewritesDesignerFromRemoteEdit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e, s, gw := newMemoryEngine(t)

	m, err := e.CreateTeamMember(ctx, models.TeamMember{Name: "Mila"})
	if err != nil {
		t.Fatalf("CreateTeamMember failed: %v", err)
	}
	task, err := e.CreateTask(ctx, models.TaskDraft{Title: "Logo", Designer: &models.TeamMember{ID: m.ID}})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	events, err := gw.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	// Another client renames the member behind our back.
	if _, err := gw.TeamMembers().Update(ctx, m.ID, models.TeamMemberPatch{Name: util.Ptr("Mila R.")}); err != nil {
		t.Fatalf("remote Update failed: %v", err)
	}

	merger := NewMerger(s, gw, nil)
	select {
	case ev := <-events:
		if !merger.Apply(ev) {
			t.Fatalf("event not applied: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no realtime event delivered")
	}

	got, _ := s.Task(task.ID)
	if got.Designer == nil || got.Designer.Name != "Mila R." {
		t.Fatalf("designer not rewritten: %+v", got.Designer)
	}
	member, _ := s.TeamMember(m.ID)
	if member.Name != "Mila R." {
		t.Fatalf("member not replaced: %+v", member)
	}
}

func TestMergerDropsMalformedEvents(t *testing.T) {
	_, s, gw := newMemoryEngine(t)
	s.PutTeamMember(models.TeamMember{ID: "m1", Name: "Mila"})
	merger := NewMerger(s, gw, nil)

	cases := []gateway.Event{
		{EntityType: models.EntityTeamMember, Record: json.RawMessage(`{"name": 12}`)},
		{EntityType: models.EntityTeamMember, Record: json.RawMessage(`{"name": "No id"}`)},
		{EntityType: models.EntityTeamMember, Record: json.RawMessage(`not json`)},
		{EntityType: models.EntityTask, Record: json.RawMessage(`{"id": "t1"}`)},
	}
	for _, ev := range cases {
		if merger.Apply(ev) {
			t.Fatalf("event should have been dropped: %s", ev.Record)
		}
	}
	if m, _ := s.TeamMember("m1"); m.Name != "Mila" {
		t.Fatalf("store changed by dropped event: %+v", m)
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("task event should not be merged")
	}
}

func TestMergerRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, s, gw := newMemoryEngine(t)
	merger := NewMerger(s, gw, nil)

	done := make(chan error, 1)
	go func() { done <- merger.Run(ctx) }()

	raw, _ := json.Marshal(gateway.TeamMemberToRow(models.TeamMember{ID: "m9", Name: "Kathe", Role: models.RoleDesigner}))
	deadline := time.Now().Add(time.Second)
	for {
		gw.Publish(gateway.Event{EntityType: models.EntityTeamMember, Record: raw})
		if _, ok := s.TeamMember("m9"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("merger never applied the event")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestLoadKeepsPendingTasks(t *testing.T) {
	ctx := context.Background()
	e, s, gw := newMemoryEngine(t)
	if err := gateway.SeedDemo(ctx, gw, fixedNow); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	s.PutTask(models.Task{ID: "local-abc", Title: "In flight", Pending: true})
	s.PutTask(models.Task{ID: "stale", Title: "Gone remotely"})

	if err := e.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if e.Loading() {
		t.Fatalf("Loading should be false after Load returns")
	}
	if _, ok := s.Task("stale"); ok {
		t.Fatalf("unknown task should be dropped by Load")
	}
	if _, ok := s.Task("local-abc"); !ok {
		t.Fatalf("pending task lost by Load")
	}
	remote, _ := gw.Tasks().List(ctx, gateway.Filter{})
	if len(s.Tasks()) != len(remote)+1 {
		t.Fatalf("expected %d tasks, got %d", len(remote)+1, len(s.Tasks()))
	}
	if active, ok := s.ActiveSprint(); !ok || active.Name != "Sprint 24" {
		t.Fatalf("unexpected active sprint: %+v", active)
	}
	if len(s.TeamMembers()) != 2 || len(s.Counterparties()) != 3 {
		t.Fatalf("people not loaded")
	}
}

func TestLoadIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	e, s, gw := newMemoryEngine(t)
	s.PutTask(models.Task{ID: "keep"})
	gw.SetFault(func(entity models.EntityType, op string) error {
		if entity == models.EntityCounterparty && op == "list_deleted" {
			return &gateway.Error{Kind: gateway.KindValidation, Err: gateway.ErrNotFound}
		}
		return nil
	})
	if err := e.Load(ctx); err == nil {
		t.Fatalf("expected Load failure")
	}
	if _, ok := s.Task("keep"); !ok {
		t.Fatalf("failed Load must not replace the store")
	}
	if e.Err() == nil {
		t.Fatalf("Load failure should fill the error slot")
	}

	gw.SetFault(nil)
	if err := e.Retry(ctx); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if _, ok := s.Task("keep"); ok {
		t.Fatalf("successful reload should replace the store")
	}
}
