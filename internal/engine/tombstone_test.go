package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
)

func TestDeleteRestoreTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	e, s, gw := newMemoryEngine(t)
	task, err := e.CreateTask(ctx, models.TaskDraft{Title: "Logo refresh", Requester: "Harry"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := e.DeleteTask(ctx, task.ID, ""); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, ok := s.Task(task.ID); ok {
		t.Fatalf("deleted task still active")
	}
	deleted, ok := s.DeletedTask(task.ID)
	if !ok || deleted.Tombstone == nil || deleted.Tombstone.DeletedBy != "user-1" || !deleted.Tombstone.DeletedAt.Equal(fixedNow) {
		t.Fatalf("unexpected tombstone: %+v", deleted.Tombstone)
	}
	remoteDeleted, _ := gw.Tasks().ListDeleted(ctx)
	if len(remoteDeleted) != 1 {
		t.Fatalf("remote soft delete not issued")
	}

	restored, err := e.RestoreTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("RestoreTask failed: %v", err)
	}
	if restored.Tombstone != nil {
		t.Fatalf("tombstone not cleared")
	}
	restored.UpdatedAt = task.UpdatedAt
	if restored.Title != task.Title || restored.Requester != task.Requester || restored.ID != task.ID {
		t.Fatalf("restore changed the entity: %+v vs %+v", restored, task)
	}
	remoteActive, _ := gw.Tasks().List(ctx, gateway.Filter{})
	if len(remoteActive) != 1 || remoteActive[0].Tombstone != nil {
		t.Fatalf("remote restore not issued")
	}
}

func TestRestoreNonDeletedMakesNoRemoteCall(t *testing.T) {
	// The mock has no expectations for Restore, so any remote call fails the test.
	e, s, _ := newMockEngine(t)
	s.PutTask(models.Task{ID: "t1"})
	s.PutSprint(models.Sprint{ID: "s1"})

	_, err := e.RestoreTask(context.Background(), "t1")
	if !errors.Is(err, store.ErrNotDeleted) {
		t.Fatalf("expected ErrNotDeleted, got %v", err)
	}
	if _, err := e.RestoreSprint(context.Background(), "s1"); !errors.Is(err, store.ErrNotDeleted) {
		t.Fatalf("expected ErrNotDeleted, got %v", err)
	}
	if e.Err() != nil {
		t.Fatalf("local precondition failures must not fill the error slot")
	}
}

func TestDeleteUnknownIsNotFound(t *testing.T) {
	e, _, _ := newMockEngine(t)
	if err := e.DeleteTask(context.Background(), "missing", ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSprintLeavesTasksAlone(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	sprint, err := e.CreateSprint(ctx, models.Sprint{Name: "Sprint 24"})
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	task, err := e.CreateTask(ctx, models.TaskDraft{Title: "Banner", Sprint: "Sprint 24"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := e.DeleteSprint(ctx, sprint.ID, "admin"); err != nil {
		t.Fatalf("DeleteSprint failed: %v", err)
	}
	got, _ := s.Task(task.ID)
	if got.Sprint != "Sprint 24" {
		t.Fatalf("task label changed: %q", got.Sprint)
	}
	if len(s.DeletedSprints()) != 1 {
		t.Fatalf("sprint not tombstoned")
	}
}

func TestDeleteRestorePeople(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	m, err := e.CreateTeamMember(ctx, models.TeamMember{Name: "Mila"})
	if err != nil {
		t.Fatalf("CreateTeamMember failed: %v", err)
	}
	c, err := e.CreateCounterparty(ctx, models.Counterparty{Name: "Harry"})
	if err != nil {
		t.Fatalf("CreateCounterparty failed: %v", err)
	}

	if err := e.DeleteTeamMember(ctx, m.ID, ""); err != nil {
		t.Fatalf("DeleteTeamMember failed: %v", err)
	}
	if err := e.DeleteCounterparty(ctx, c.ID, ""); err != nil {
		t.Fatalf("DeleteCounterparty failed: %v", err)
	}
	if len(s.TeamMembers()) != 0 || len(s.Counterparties()) != 0 {
		t.Fatalf("entities not moved to deleted partition")
	}

	if _, err := e.RestoreTeamMember(ctx, m.ID); err != nil {
		t.Fatalf("RestoreTeamMember failed: %v", err)
	}
	if _, err := e.RestoreCounterparty(ctx, c.ID); err != nil {
		t.Fatalf("RestoreCounterparty failed: %v", err)
	}
	if len(s.TeamMembers()) != 1 || len(s.Counterparties()) != 1 {
		t.Fatalf("entities not restored")
	}
}

func TestDeleteFailureKeepsTombstoneAndRetries(t *testing.T) {
	ctx := context.Background()
	e, s, gw := newMemoryEngine(t)
	task, err := e.CreateTask(ctx, models.TaskDraft{Title: "Banner"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	gw.SetFault(func(entity models.EntityType, op string) error {
		if op == "soft_delete" {
			return &gateway.Error{Kind: gateway.KindNotFound, Err: gateway.ErrNotFound}
		}
		return nil
	})
	if err := e.DeleteTask(ctx, task.ID, ""); err == nil {
		t.Fatalf("expected delete failure")
	}
	if _, ok := s.DeletedTask(task.ID); !ok {
		t.Fatalf("optimistic tombstone should stay")
	}

	gw.SetFault(nil)
	if err := e.Retry(ctx); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	remote, _ := gw.Tasks().ListDeleted(ctx)
	if len(remote) != 1 {
		t.Fatalf("retry did not soft delete remotely")
	}
}
