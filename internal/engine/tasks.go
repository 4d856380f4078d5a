package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/akyairhashvil/sprintboard/internal/board"
	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
)

// newTask fills the draft's missing fields. A designer that is not a known
// team member is rejected.
func (e *Engine) newTask(d models.TaskDraft) (models.Task, error) {
	designer, err := e.resolveDesigner(d.Designer)
	if err != nil {
		return models.Task{}, err
	}
	today := models.Day(e.now())
	t := models.Task{
		Title:           strings.TrimSpace(d.Title),
		Category:        d.Category,
		Priority:        d.Priority,
		Status:          models.StatusTodo,
		Points:          d.Points,
		Description:     d.Description,
		Requester:       strings.TrimSpace(d.Requester),
		Manager:         strings.TrimSpace(d.Manager),
		Designer:        designer,
		Sprint:          strings.TrimSpace(d.Sprint),
		RequestDate:     d.RequestDate,
		DueDate:         d.DueDate,
		ReferenceLinks:  append([]string{}, d.ReferenceLinks...),
		ReferenceImages: append([]string{}, d.ReferenceImages...),
	}
	if t.Title == "" {
		t.Title = config.DefaultTitle
	}
	if !t.Category.Valid() {
		t.Category = models.CategoryOther
	}
	if !t.Priority.Valid() {
		t.Priority = models.PriorityNormal
	}
	if t.Points <= 0 {
		t.Points = config.DefaultPoints
	}
	if t.Requester == "" {
		t.Requester = config.DefaultRequester
	}
	if t.Manager == "" {
		t.Manager = config.DefaultManager
	}
	if t.RequestDate.IsZero() {
		t.RequestDate = today
	} else {
		t.RequestDate = models.Day(t.RequestDate)
	}
	if t.DueDate.IsZero() {
		t.DueDate = t.RequestDate.AddDate(0, 0, config.DefaultDueDays)
	}
	if t.Sprint == "" {
		t.Sprint = config.BacklogSprintLabel
		if active, ok := e.store.ActiveSprint(); ok {
			t.Sprint = active.Name
		}
	}
	return t, nil
}

// resolveDesigner replaces a designer stub with the stored team member. It
// fails with store.ErrNotFound when no active member has the stub's id.
func (e *Engine) resolveDesigner(d *models.TeamMember) (*models.TeamMember, error) {
	if d == nil {
		return nil, nil
	}
	m, ok := e.store.TeamMember(d.ID)
	if !ok {
		return nil, fmt.Errorf("designer %q: %w", d.ID, store.ErrNotFound)
	}
	return &m, nil
}

// fillDesigner completes a designer stub echoed by the remote. Unknown ids
// keep the stub, since the record is already stored remotely.
func (e *Engine) fillDesigner(d *models.TeamMember) *models.TeamMember {
	if m, err := e.resolveDesigner(d); err == nil {
		return m
	}
	c := d.Clone()
	return &c
}

// CreateTask stores the task under a local placeholder id, then creates it
// remotely and swaps in the confirmed record. On failure the placeholder
// stays in the store with Pending set.
func (e *Engine) CreateTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	e.begin()
	t, err := e.newTask(draft)
	if err != nil {
		return models.Task{}, reject("create", models.EntityTask, "", err)
	}
	t.ID = e.localID()
	t.Pending = true
	e.store.PutTask(t)
	return e.confirmTask(ctx, t)
}

func (e *Engine) confirmTask(ctx context.Context, t models.Task) (models.Task, error) {
	localID := t.ID
	confirmed, err := gateway.RetryValue(ctx, e.policy, "create task", func(ctx context.Context) (models.Task, error) {
		return e.gw.Tasks().Create(ctx, t)
	})
	if err != nil {
		return t, e.fail("create", models.EntityTask, localID, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.Task(localID)
			if !ok || !current.Pending {
				return nil
			}
			_, err := e.confirmTask(ctx, current)
			return err
		})
	}
	confirmed.Pending = false
	if deleted, ok := e.store.DeletedTask(localID); ok {
		// Deleted while the create was in flight: keep it deleted remotely too.
		confirmed.Tombstone = deleted.Tombstone
		e.store.ReplaceTask(localID, confirmed)
		return confirmed, e.sendSoftDelete(ctx, models.EntityTask, confirmed.ID, deleted.Tombstone.DeletedBy, e.gw.Tasks().SoftDelete)
	}
	e.store.ReplaceTask(localID, confirmed)
	return confirmed, nil
}

// UpdateTask merges patch into the stored task and sends it. The completion
// date is derived from the status before anything is written, so the remote
// call carries it too. A pending task is created with the merged record.
func (e *Engine) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	e.begin()
	return e.updateTask(ctx, id, patch)
}

func (e *Engine) updateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	current, ok := e.store.Task(id)
	if !ok {
		return models.Task{}, reject("update", models.EntityTask, id, store.ErrNotFound)
	}
	patch = board.DeriveCompletion(current.Status, patch, e.now())
	if patch.Designer != nil && !patch.ClearDesigner {
		designer, err := e.resolveDesigner(patch.Designer)
		if err != nil {
			return current, reject("update", models.EntityTask, id, err)
		}
		patch.Designer = designer
	}
	updated := patch.Apply(current)
	e.store.PutTask(updated)

	if current.Pending {
		// The create was never confirmed, so the merged record is created instead.
		return e.confirmTask(ctx, updated)
	}
	return e.sendTaskPatch(ctx, id, patch, updated)
}

func (e *Engine) sendTaskPatch(ctx context.Context, id string, patch models.TaskPatch, local models.Task) (models.Task, error) {
	server, err := gateway.RetryValue(ctx, e.policy, "update task", func(ctx context.Context) (models.Task, error) {
		return e.gw.Tasks().Update(ctx, id, patch)
	})
	if err != nil {
		return local, e.fail("update", models.EntityTask, id, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.Task(id)
			if !ok {
				return nil
			}
			_, err := e.sendTaskPatch(ctx, id, patch, current)
			return err
		})
	}
	if server.Designer != nil && server.Designer.Name == "" {
		server.Designer = e.fillDesigner(server.Designer)
	}
	if _, stillActive := e.store.Task(id); stillActive {
		e.store.PutTask(server)
	}
	return server, nil
}

// MoveTask applies a resolved drag-and-drop intent.
func (e *Engine) MoveTask(ctx context.Context, id string, status models.Status) (models.Task, error) {
	if !status.Valid() {
		return models.Task{}, reject("move", models.EntityTask, id, errInvalidStatus(status))
	}
	return e.UpdateTask(ctx, id, models.TaskPatch{Status: &status})
}

// VisibleTasks filters the active tasks and splits the result into the
// board and the archive.
func (e *Engine) VisibleTasks(f board.TaskFilter) (visible, archived []models.Task) {
	return board.Segment(board.Filter(e.store.Tasks(), f))
}

func errInvalidStatus(s models.Status) error {
	return fmt.Errorf("invalid status %q", s)
}
