package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

func activeIDs(sprints []models.Sprint) []string {
	var ids []string
	for _, s := range sprints {
		if s.IsActive {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestSetActiveSprintSwitchesLocallyFirst(t *testing.T) {
	ctx := context.Background()
	e, s, m := newMockEngine(t)
	s.PutSprint(models.Sprint{ID: "A", Name: "A", IsActive: true})
	s.PutSprint(models.Sprint{ID: "B", Name: "B"})

	gomock.InOrder(
		m.sprints.EXPECT().DeactivateAllExcept(gomock.Any(), "B").DoAndReturn(
			func(context.Context, string) error {
				ids := activeIDs(s.Sprints())
				if len(ids) != 1 || ids[0] != "B" {
					t.Fatalf("store should show only B active before remote calls, got %v", ids)
				}
				return nil
			}),
		m.sprints.EXPECT().Update(gomock.Any(), "B", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, p models.SprintPatch) (models.Sprint, error) {
				if p.IsActive == nil || !*p.IsActive {
					t.Fatalf("second step must set is_active")
				}
				return models.Sprint{ID: "B", Name: "B", IsActive: true}, nil
			}),
	)

	if err := e.SetActiveSprint(ctx, "B"); err != nil {
		t.Fatalf("SetActiveSprint failed: %v", err)
	}
	if ids := activeIDs(s.Sprints()); len(ids) != 1 || ids[0] != "B" {
		t.Fatalf("expected B active, got %v", ids)
	}
}

func TestSetActiveSprintDetectsZeroActive(t *testing.T) {
	ctx := context.Background()
	e, s, m := newMockEngine(t)
	s.PutSprint(models.Sprint{ID: "A", Name: "A", IsActive: true})
	s.PutSprint(models.Sprint{ID: "B", Name: "B"})

	m.sprints.EXPECT().DeactivateAllExcept(gomock.Any(), "B").Return(nil)
	m.sprints.EXPECT().Update(gomock.Any(), "B", gomock.Any()).
		Return(models.Sprint{}, &gateway.Error{Kind: gateway.KindConflict, Err: errors.New("row locked")})
	m.sprints.EXPECT().List(gomock.Any(), gomock.Any()).Return([]models.Sprint{
		{ID: "A", Name: "A"},
		{ID: "B", Name: "B"},
	}, nil)

	err := e.SetActiveSprint(ctx, "B")
	if gateway.KindOf(err) != gateway.KindInvariant {
		t.Fatalf("expected invariant error, got %v", err)
	}
	if !errors.Is(e.Err(), gateway.ErrNoActiveSprint) {
		t.Fatalf("error slot should carry ErrNoActiveSprint, got %v", e.Err())
	}
	if ids := activeIDs(s.Sprints()); len(ids) != 1 || ids[0] != "B" {
		t.Fatalf("local store must keep exactly one active sprint, got %v", ids)
	}
}

func TestSetActiveSprintStepTwoFailsButRemoteStillActive(t *testing.T) {
	ctx := context.Background()
	e, s, m := newMockEngine(t)
	s.PutSprint(models.Sprint{ID: "A", Name: "A", IsActive: true})
	s.PutSprint(models.Sprint{ID: "B", Name: "B"})

	m.sprints.EXPECT().DeactivateAllExcept(gomock.Any(), "B").Return(nil)
	m.sprints.EXPECT().Update(gomock.Any(), "B", gomock.Any()).
		Return(models.Sprint{}, &gateway.Error{Kind: gateway.KindValidation, Err: errors.New("bad")})
	m.sprints.EXPECT().List(gomock.Any(), gomock.Any()).Return([]models.Sprint{{ID: "B", IsActive: true}}, nil)

	err := e.SetActiveSprint(ctx, "B")
	if gateway.KindOf(err) != gateway.KindValidation {
		t.Fatalf("expected the original error, got %v", err)
	}
}

func TestSetActiveSprintTransactional(t *testing.T) {
	ctx := context.Background()
	e, s, gw := newMemoryEngine(t)
	a, err := e.CreateSprint(ctx, models.Sprint{Name: "A", IsActive: true})
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	b, err := e.CreateSprint(ctx, models.Sprint{Name: "B"})
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	if ids := activeIDs(s.Sprints()); len(ids) != 1 || ids[0] != a.ID {
		t.Fatalf("expected A active, got %v", ids)
	}

	if err := e.SetActiveSprint(ctx, b.ID); err != nil {
		t.Fatalf("SetActiveSprint failed: %v", err)
	}
	if ids := activeIDs(s.Sprints()); len(ids) != 1 || ids[0] != b.ID {
		t.Fatalf("expected B active locally, got %v", ids)
	}
	remote, _ := gw.Sprints().List(ctx, gateway.Filter{})
	if ids := activeIDs(remote); len(ids) != 1 || ids[0] != b.ID {
		t.Fatalf("expected B active remotely, got %v", ids)
	}
}

func TestSetActiveSprintUnknown(t *testing.T) {
	e, _, _ := newMockEngine(t)
	if err := e.SetActiveSprint(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error for unknown sprint")
	}
}

func TestRenameSprintRelabelsTasks(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	sp, err := e.CreateSprint(ctx, models.Sprint{Name: "Sprint 24"})
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	in, _ := e.CreateTask(ctx, models.TaskDraft{Title: "In", Sprint: "Sprint 24"})
	out, _ := e.CreateTask(ctx, models.TaskDraft{Title: "Out", Sprint: "Sprint 23"})

	if _, err := e.UpdateSprint(ctx, sp.ID, models.SprintPatch{Name: util.Ptr("Sprint 24b")}); err != nil {
		t.Fatalf("UpdateSprint failed: %v", err)
	}
	got, _ := s.Task(in.ID)
	if got.Sprint != "Sprint 24b" {
		t.Fatalf("task not relabelled: %q", got.Sprint)
	}
	got, _ = s.Task(out.ID)
	if got.Sprint != "Sprint 23" {
		t.Fatalf("unrelated task relabelled: %q", got.Sprint)
	}
}

func TestUpdateSprintActivate(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	a, _ := e.CreateSprint(ctx, models.Sprint{Name: "A", IsActive: true})
	b, _ := e.CreateSprint(ctx, models.Sprint{Name: "B"})

	got, err := e.UpdateSprint(ctx, b.ID, models.SprintPatch{IsActive: util.Ptr(true)})
	if err != nil {
		t.Fatalf("UpdateSprint failed: %v", err)
	}
	if !got.IsActive {
		t.Fatalf("B should be active")
	}
	prev, _ := s.Sprint(a.ID)
	if prev.IsActive {
		t.Fatalf("A should be inactive")
	}
}

func TestRenameCounterpartyRewritesRequester(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	c, err := e.CreateCounterparty(ctx, models.Counterparty{Name: "Harry"})
	if err != nil {
		t.Fatalf("CreateCounterparty failed: %v", err)
	}
	task, _ := e.CreateTask(ctx, models.TaskDraft{Title: "Logo", Requester: "Harry"})

	if _, err := e.UpdateCounterparty(ctx, c.ID, models.CounterpartyPatch{Name: util.Ptr("Harold")}); err != nil {
		t.Fatalf("UpdateCounterparty failed: %v", err)
	}
	got, _ := s.Task(task.ID)
	if got.Requester != "Harold" {
		t.Fatalf("requester not rewritten: %q", got.Requester)
	}
}

func TestUpdateTeamMemberRewritesDesigner(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	m, err := e.CreateTeamMember(ctx, models.TeamMember{Name: "Mila"})
	if err != nil {
		t.Fatalf("CreateTeamMember failed: %v", err)
	}
	task, _ := e.CreateTask(ctx, models.TaskDraft{Title: "Logo", Designer: &models.TeamMember{ID: m.ID}})
	if task.Designer == nil || task.Designer.Name != "Mila" {
		t.Fatalf("designer not resolved on create: %+v", task.Designer)
	}

	if _, err := e.UpdateTeamMember(ctx, m.ID, models.TeamMemberPatch{Name: util.Ptr("Mila R.")}); err != nil {
		t.Fatalf("UpdateTeamMember failed: %v", err)
	}
	got, _ := s.Task(task.ID)
	if got.Designer == nil || got.Designer.Name != "Mila R." {
		t.Fatalf("embedded designer not rewritten: %+v", got.Designer)
	}
}
