package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/gateway/memory"
	"github.com/akyairhashvil/sprintboard/internal/gateway/mocks"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

var fixedNow = time.Date(2024, 6, 3, 10, 30, 0, 0, time.Local)

func fastPolicy() gateway.Policy {
	return gateway.Policy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func transient(msg string) error {
	return &gateway.Error{Kind: gateway.KindTransient, Err: errors.New(msg)}
}

type mockSet struct {
	gw             *mocks.MockGateway
	tasks          *mocks.MockTaskGateway
	sprints        *mocks.MockSprintGateway
	members        *mocks.MockTeamMemberGateway
	counterparties *mocks.MockCounterpartyGateway
}

func newMockEngine(t *testing.T) (*Engine, *store.Store, mockSet) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mockSet{
		gw:             mocks.NewMockGateway(ctrl),
		tasks:          mocks.NewMockTaskGateway(ctrl),
		sprints:        mocks.NewMockSprintGateway(ctrl),
		members:        mocks.NewMockTeamMemberGateway(ctrl),
		counterparties: mocks.NewMockCounterpartyGateway(ctrl),
	}
	m.gw.EXPECT().Tasks().Return(m.tasks).AnyTimes()
	m.gw.EXPECT().Sprints().Return(m.sprints).AnyTimes()
	m.gw.EXPECT().TeamMembers().Return(m.members).AnyTimes()
	m.gw.EXPECT().Counterparties().Return(m.counterparties).AnyTimes()

	s := store.New()
	e := New(s, m.gw,
		WithPolicy(fastPolicy()),
		WithClock(func() time.Time { return fixedNow }),
		WithActor("user-1"),
	)
	return e, s, m
}

func newMemoryEngine(t *testing.T) (*Engine, *store.Store, *memory.Gateway) {
	t.Helper()
	gw := memory.New(memory.WithClock(func() time.Time { return fixedNow }))
	s := store.New()
	e := New(s, gw,
		WithPolicy(fastPolicy()),
		WithClock(func() time.Time { return fixedNow }),
		WithActor("user-1"),
	)
	return e, s, gw
}

func TestCreateTaskVisibleBeforeConfirmation(t *testing.T) {
	ctx := context.Background()
	e, s, m := newMockEngine(t)
	today := models.Day(fixedNow)

	m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in models.Task) (models.Task, error) {
			tasks := s.Tasks()
			if len(tasks) != 1 {
				t.Fatalf("expected optimistic task in store, got %d", len(tasks))
			}
			local := tasks[0]
			if !local.Pending || local.ID != in.ID {
				t.Fatalf("expected pending placeholder, got %+v", local)
			}
			in.ID = "srv-1"
			in.Pending = false
			in.CreatedAt = fixedNow
			return in, nil
		})

	got, err := e.CreateTask(ctx, models.TaskDraft{Title: "Logo refresh", Requester: "Harry"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if got.ID != "srv-1" {
		t.Fatalf("expected confirmed id, got %s", got.ID)
	}
	if got.Status != models.StatusTodo || got.Points != 1 || got.Category != models.CategoryOther || got.Priority != models.PriorityNormal {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if !got.RequestDate.Equal(today) || !got.DueDate.Equal(today.AddDate(0, 0, 7)) {
		t.Fatalf("unexpected dates: request %v due %v", got.RequestDate, got.DueDate)
	}
	if got.Sprint != "Backlog" || got.Manager != "Unassigned" {
		t.Fatalf("unexpected sprint/manager: %q %q", got.Sprint, got.Manager)
	}

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "srv-1" || tasks[0].Pending {
		t.Fatalf("placeholder not replaced: %+v", tasks)
	}
}

func TestCreateTaskUsesActiveSprint(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	s.PutSprint(models.Sprint{ID: "s24", Name: "Sprint 24", IsActive: true})

	got, err := e.CreateTask(ctx, models.TaskDraft{Title: "Banner"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if got.Sprint != "Sprint 24" {
		t.Fatalf("Sprint = %q, want active sprint", got.Sprint)
	}
	if got.Requester != "Unknown" || got.Title != "Banner" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestCreateTaskFailureKeepsPlaceholder(t *testing.T) {
	ctx := context.Background()
	e, s, m := newMockEngine(t)

	first := m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Task{}, transient("timeout")).Times(4)
	m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in models.Task) (models.Task, error) {
			in.ID = "srv-9"
			return in, nil
		}).After(first)

	_, err := e.CreateTask(ctx, models.TaskDraft{Title: "Landing"})
	if err == nil {
		t.Fatalf("expected error after retries")
	}
	var syncErr *SyncError
	if !errors.As(err, &syncErr) || syncErr.Op != "create" {
		t.Fatalf("expected create SyncError, got %v", err)
	}
	if e.Err() == nil {
		t.Fatalf("error slot should be set")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || !tasks[0].Pending {
		t.Fatalf("placeholder should remain, got %+v", tasks)
	}

	if err := e.Retry(ctx); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if e.Err() != nil {
		t.Fatalf("error slot should be clear after a successful retry")
	}
	tasks = s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "srv-9" || tasks[0].Pending {
		t.Fatalf("retry did not confirm the task: %+v", tasks)
	}
}

func TestNonRetryableErrorCalledOnce(t *testing.T) {
	ctx := context.Background()
	e, _, m := newMockEngine(t)
	m.tasks.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.Task{}, &gateway.Error{Kind: gateway.KindValidation, Err: errors.New("bad")}).Times(1)

	if _, err := e.CreateTask(ctx, models.TaskDraft{Title: "x"}); gateway.KindOf(err) != gateway.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateTaskDoneSetsCompletionBeforeDispatch(t *testing.T) {
	ctx := context.Background()
	e, s, m := newMockEngine(t)
	s.PutTask(models.Task{ID: "t1", Title: "Logo", Status: models.StatusReview})
	today := models.Day(fixedNow)

	m.tasks.EXPECT().Update(gomock.Any(), "t1", gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, p models.TaskPatch) (models.Task, error) {
			if p.CompletionDate == nil || !p.CompletionDate.Equal(today) {
				t.Fatalf("dispatched patch lacks derived completion date: %+v", p)
			}
			local, _ := s.Task(id)
			if local.Status != models.StatusDone || local.CompletionDate == nil {
				t.Fatalf("store not updated before dispatch: %+v", local)
			}
			return p.Apply(local), nil
		})

	got, err := e.MoveTask(ctx, "t1", models.StatusDone)
	if err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	if got.CompletionDate == nil || !got.CompletionDate.Equal(today) {
		t.Fatalf("CompletionDate = %v", got.CompletionDate)
	}
}

func TestUpdateTaskNonDoneClearsCompletion(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)
	task, err := e.CreateTask(ctx, models.TaskDraft{Title: "Logo"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := e.MoveTask(ctx, task.ID, models.StatusDone); err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	got, err := e.MoveTask(ctx, task.ID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("MoveTask failed: %v", err)
	}
	if got.CompletionDate != nil {
		t.Fatalf("completion date should be cleared, got %v", got.CompletionDate)
	}
	stored, _ := s.Task(task.ID)
	if stored.CompletionDate != nil {
		t.Fatalf("store kept completion date")
	}
}

func TestUpdateTaskFailureLeavesOptimisticValue(t *testing.T) {
	ctx := context.Background()
	e, s, m := newMockEngine(t)
	s.PutTask(models.Task{ID: "t1", Title: "Old"})
	m.tasks.EXPECT().Update(gomock.Any(), "t1", gomock.Any()).
		Return(models.Task{}, &gateway.Error{Kind: gateway.KindConflict, Err: errors.New("conflict")})

	_, err := e.UpdateTask(ctx, "t1", models.TaskPatch{Title: util.Ptr("New")})
	if err == nil {
		t.Fatalf("expected error")
	}
	got, _ := s.Task("t1")
	if got.Title != "New" {
		t.Fatalf("optimistic value rolled back: %q", got.Title)
	}
	e.ClearErr()
	if e.Err() != nil {
		t.Fatalf("ClearErr did not clear the slot")
	}
}

func TestMoveTaskRejectsInvalidStatus(t *testing.T) {
	e, s, _ := newMockEngine(t)
	s.PutTask(models.Task{ID: "t1"})
	if _, err := e.MoveTask(context.Background(), "t1", models.Status("Blocked")); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func rejectCreates(entities ...models.EntityType) memory.FaultFunc {
	return func(entity models.EntityType, op string) error {
		if op != "create" {
			return nil
		}
		for _, want := range entities {
			if entity == want {
				return &gateway.Error{Kind: gateway.KindValidation, Err: errors.New("rejected")}
			}
		}
		return nil
	}
}

func remoteTaskTitles(t *testing.T, gw *memory.Gateway) []string {
	t.Helper()
	tasks, err := gw.Tasks().List(context.Background(), gateway.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	return titles
}

func TestUpdatePendingTaskCreatesMergedRecord(t *testing.T) {
	ctx := context.Background()
	e, s, gw := newMemoryEngine(t)
	gw.SetFault(rejectCreates(models.EntityTask))

	draft, err := e.CreateTask(ctx, models.TaskDraft{Title: "Draft"})
	if err == nil {
		t.Fatalf("expected create failure")
	}
	gw.SetFault(nil)

	got, err := e.UpdateTask(ctx, draft.ID, models.TaskPatch{Title: util.Ptr("Edited")})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if got.Pending || got.ID == draft.ID || got.Title != "Edited" {
		t.Fatalf("edit did not confirm the task: %+v", got)
	}
	if _, ok := s.Task(draft.ID); ok {
		t.Fatalf("placeholder should be replaced")
	}
	if titles := remoteTaskTitles(t, gw); len(titles) != 1 || titles[0] != "Edited" {
		t.Fatalf("unexpected remote tasks: %v", titles)
	}
	if e.Err() != nil || len(e.Pending()) != 0 {
		t.Fatalf("nothing should be left pending: %v %v", e.Err(), e.Pending())
	}
}

func TestUpdatePendingTaskKeepsRetryWhileFailing(t *testing.T) {
	ctx := context.Background()
	e, s, gw := newMemoryEngine(t)
	gw.SetFault(rejectCreates(models.EntityTask))

	draft, _ := e.CreateTask(ctx, models.TaskDraft{Title: "Draft"})
	if _, err := e.UpdateTask(ctx, draft.ID, models.TaskPatch{Title: util.Ptr("Edited")}); err == nil {
		t.Fatalf("expected create failure on edit")
	}
	if e.Err() == nil {
		t.Fatalf("edit must not clear the failed create")
	}
	local, ok := s.Task(draft.ID)
	if !ok || !local.Pending || local.Title != "Edited" {
		t.Fatalf("optimistic edit lost: %+v", local)
	}

	gw.SetFault(nil)
	if err := e.Retry(ctx); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if titles := remoteTaskTitles(t, gw); len(titles) != 1 || titles[0] != "Edited" {
		t.Fatalf("retry did not send the edited record: %v", titles)
	}
}

func TestCreateTaskRejectsUnknownDesigner(t *testing.T) {
	ctx := context.Background()
	e, s, _ := newMemoryEngine(t)

	_, err := e.CreateTask(ctx, models.TaskDraft{Title: "Logo", Designer: &models.TeamMember{ID: "ghost", Name: "Ghost"}})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("rejected task must not be stored")
	}
	if e.Err() != nil {
		t.Fatalf("a rejected draft should not fill the error slot")
	}

	task, err := e.CreateTask(ctx, models.TaskDraft{Title: "Logo"})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	_, err = e.UpdateTask(ctx, task.ID, models.TaskPatch{Designer: &models.TeamMember{ID: "ghost"}})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if got, _ := s.Task(task.ID); got.Designer != nil {
		t.Fatalf("unknown designer stored: %+v", got.Designer)
	}
}
