package engine

import (
	"context"
	"strings"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// isLocal reports whether id is a placeholder the remote store has never seen.
func isLocal(id string) bool {
	return strings.HasPrefix(id, config.LocalIDPrefix)
}

func (e *Engine) sendSoftDelete(ctx context.Context, entity models.EntityType, id, actorID string, fn func(ctx context.Context, id, actorID string) error) error {
	err := gateway.Retry(ctx, e.policy, "soft delete "+string(entity), func(ctx context.Context) error {
		return fn(ctx, id, actorID)
	})
	if err != nil {
		return e.fail("delete", entity, id, err, func(ctx context.Context) error {
			e.begin()
			return e.sendSoftDelete(ctx, entity, id, actorID, fn)
		})
	}
	return nil
}

func (e *Engine) sendRestore(ctx context.Context, entity models.EntityType, id string, fn func(ctx context.Context, id string) error) error {
	err := gateway.Retry(ctx, e.policy, "restore "+string(entity), func(ctx context.Context) error {
		return fn(ctx, id)
	})
	if err != nil {
		return e.fail("restore", entity, id, err, func(ctx context.Context) error {
			e.begin()
			return e.sendRestore(ctx, entity, id, fn)
		})
	}
	return nil
}

// DeleteTask moves the task to the deleted partition, stamped with actorID
// (or the engine's actor when empty), then soft-deletes it remotely.
func (e *Engine) DeleteTask(ctx context.Context, id, actorID string) error {
	e.begin()
	t, err := e.store.TombstoneTask(id, e.tombstone(actorID))
	if err != nil {
		return reject("delete", models.EntityTask, id, err)
	}
	if isLocal(id) {
		return nil
	}
	return e.sendSoftDelete(ctx, models.EntityTask, id, t.Tombstone.DeletedBy, e.gw.Tasks().SoftDelete)
}

// RestoreTask clears the tombstone of a deleted task. Restoring a task that
// is not deleted fails with store.ErrNotDeleted and makes no remote call.
func (e *Engine) RestoreTask(ctx context.Context, id string) (models.Task, error) {
	e.begin()
	t, err := e.store.RestoreTask(id)
	if err != nil {
		return models.Task{}, reject("restore", models.EntityTask, id, err)
	}
	if isLocal(id) {
		return t, nil
	}
	return t, e.sendRestore(ctx, models.EntityTask, id, e.gw.Tasks().Restore)
}

// DeleteSprint soft-deletes a sprint. Tasks labelled with it are untouched.
func (e *Engine) DeleteSprint(ctx context.Context, id, actorID string) error {
	e.begin()
	s, err := e.store.TombstoneSprint(id, e.tombstone(actorID))
	if err != nil {
		return reject("delete", models.EntitySprint, id, err)
	}
	if isLocal(id) {
		return nil
	}
	return e.sendSoftDelete(ctx, models.EntitySprint, id, s.Tombstone.DeletedBy, e.gw.Sprints().SoftDelete)
}

// RestoreSprint restores a deleted sprint. A sprint deleted while active comes
// back inactive if another sprint has become active since, and the remote
// flag is cleared to match.
func (e *Engine) RestoreSprint(ctx context.Context, id string) (models.Sprint, error) {
	e.begin()
	before, _ := e.store.DeletedSprint(id)
	s, err := e.store.RestoreSprint(id)
	if err != nil {
		return models.Sprint{}, reject("restore", models.EntitySprint, id, err)
	}
	if isLocal(id) {
		return s, nil
	}
	if err := e.sendRestore(ctx, models.EntitySprint, id, e.gw.Sprints().Restore); err != nil {
		return s, err
	}
	if before.IsActive && !s.IsActive {
		patch := models.SprintPatch{IsActive: util.Ptr(false)}
		if _, err := e.sendSprintPatch(ctx, id, patch, s); err != nil {
			return s, err
		}
	}
	return s, nil
}

func (e *Engine) DeleteTeamMember(ctx context.Context, id, actorID string) error {
	e.begin()
	m, err := e.store.TombstoneTeamMember(id, e.tombstone(actorID))
	if err != nil {
		return reject("delete", models.EntityTeamMember, id, err)
	}
	if isLocal(id) {
		return nil
	}
	return e.sendSoftDelete(ctx, models.EntityTeamMember, id, m.Tombstone.DeletedBy, e.gw.TeamMembers().SoftDelete)
}

func (e *Engine) RestoreTeamMember(ctx context.Context, id string) (models.TeamMember, error) {
	e.begin()
	m, err := e.store.RestoreTeamMember(id)
	if err != nil {
		return models.TeamMember{}, reject("restore", models.EntityTeamMember, id, err)
	}
	if isLocal(id) {
		return m, nil
	}
	return m, e.sendRestore(ctx, models.EntityTeamMember, id, e.gw.TeamMembers().Restore)
}

func (e *Engine) DeleteCounterparty(ctx context.Context, id, actorID string) error {
	e.begin()
	c, err := e.store.TombstoneCounterparty(id, e.tombstone(actorID))
	if err != nil {
		return reject("delete", models.EntityCounterparty, id, err)
	}
	if isLocal(id) {
		return nil
	}
	return e.sendSoftDelete(ctx, models.EntityCounterparty, id, c.Tombstone.DeletedBy, e.gw.Counterparties().SoftDelete)
}

func (e *Engine) RestoreCounterparty(ctx context.Context, id string) (models.Counterparty, error) {
	e.begin()
	c, err := e.store.RestoreCounterparty(id)
	if err != nil {
		return models.Counterparty{}, reject("restore", models.EntityCounterparty, id, err)
	}
	if isLocal(id) {
		return c, nil
	}
	return c, e.sendRestore(ctx, models.EntityCounterparty, id, e.gw.Counterparties().Restore)
}
