package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// CreateSprint stores the sprint under a placeholder id and creates it
// remotely. Missing dates default to a one-week sprint starting today. A
// sprint created active is activated through SetActiveSprint once confirmed.
func (e *Engine) CreateSprint(ctx context.Context, s models.Sprint) (models.Sprint, error) {
	e.begin()
	s.Name = strings.TrimSpace(s.Name)
	if s.StartDate.IsZero() {
		s.StartDate = models.Day(e.now())
	}
	if s.EndDate.IsZero() {
		s.EndDate = s.StartDate.AddDate(0, 0, 6)
	}
	s.Tombstone = nil
	s.ID = e.localID()
	e.store.PutSprint(s)
	return e.confirmSprint(ctx, s)
}

// confirmSprint creates the placeholder s remotely and swaps in the confirmed
// record. The active flag is sent afterwards through setActiveSprint.
func (e *Engine) confirmSprint(ctx context.Context, s models.Sprint) (models.Sprint, error) {
	localID := s.ID
	wantActive := s.IsActive
	remote := s
	remote.IsActive = false
	confirmed, err := gateway.RetryValue(ctx, e.policy, "create sprint", func(ctx context.Context) (models.Sprint, error) {
		return e.gw.Sprints().Create(ctx, remote)
	})
	if err != nil {
		return s, e.fail("create", models.EntitySprint, localID, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.Sprint(localID)
			if !ok {
				return nil
			}
			_, err := e.confirmSprint(ctx, current)
			return err
		})
	}
	if deleted, ok := e.store.DeletedSprint(localID); ok {
		confirmed.Tombstone = deleted.Tombstone
		e.store.ReplaceSprint(localID, confirmed)
		return confirmed, e.sendSoftDelete(ctx, models.EntitySprint, confirmed.ID, deleted.Tombstone.DeletedBy, e.gw.Sprints().SoftDelete)
	}
	if current, ok := e.store.Sprint(localID); ok {
		wantActive = current.IsActive
	}
	confirmed.IsActive = wantActive
	e.store.ReplaceSprint(localID, confirmed)
	if wantActive {
		if err := e.setActiveSprint(ctx, confirmed.ID); err != nil {
			return confirmed, err
		}
	}
	return confirmed, nil
}

// UpdateSprint merges patch into the stored sprint. Setting IsActive to true
// goes through SetActiveSprint. Renaming relabels every task that carried the
// old name.
func (e *Engine) UpdateSprint(ctx context.Context, id string, patch models.SprintPatch) (models.Sprint, error) {
	e.begin()
	current, ok := e.store.Sprint(id)
	if !ok {
		return models.Sprint{}, reject("update", models.EntitySprint, id, store.ErrNotFound)
	}
	activate := patch.IsActive != nil && *patch.IsActive
	if activate {
		patch.IsActive = nil
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}

	updated := patch.Apply(current)
	e.store.PutSprint(updated)

	var errs []error
	if !isLocal(id) && patch != (models.SprintPatch{}) {
		server, err := e.sendSprintPatch(ctx, id, patch, updated)
		if err != nil {
			errs = append(errs, err)
		} else {
			updated = server
		}
	}
	if patch.Name != nil && *patch.Name != current.Name {
		if err := e.relabelTasks(ctx, current.Name, *patch.Name); err != nil {
			errs = append(errs, err)
		}
	}
	if activate {
		if err := e.setActiveSprint(ctx, id); err != nil {
			errs = append(errs, err)
		}
		updated, _ = e.store.Sprint(id)
	}
	if isLocal(id) {
		// Never confirmed: create the edited record instead of patching.
		if latest, ok := e.store.Sprint(id); ok {
			server, err := e.confirmSprint(ctx, latest)
			if err != nil {
				errs = append(errs, err)
			} else {
				updated = server
			}
		}
	}
	return updated, errors.Join(errs...)
}

func (e *Engine) sendSprintPatch(ctx context.Context, id string, patch models.SprintPatch, local models.Sprint) (models.Sprint, error) {
	server, err := gateway.RetryValue(ctx, e.policy, "update sprint", func(ctx context.Context) (models.Sprint, error) {
		return e.gw.Sprints().Update(ctx, id, patch)
	})
	if err != nil {
		return local, e.fail("update", models.EntitySprint, id, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.Sprint(id)
			if !ok {
				return nil
			}
			_, err := e.sendSprintPatch(ctx, id, patch, current)
			return err
		})
	}
	if current, ok := e.store.Sprint(id); ok {
		// The local flag is authoritative until the next activation or load.
		server.IsActive = current.IsActive
		e.store.PutSprint(server)
	}
	return server, nil
}

// relabelTasks rewrites the sprint label of every active task still carrying
// oldName. Each task goes through the regular task update path.
func (e *Engine) relabelTasks(ctx context.Context, oldName, newName string) error {
	var errs []error
	for _, t := range e.store.Tasks() {
		if t.Sprint != oldName {
			continue
		}
		if _, err := e.updateTask(ctx, t.ID, models.TaskPatch{Sprint: util.Ptr(newName)}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetActiveSprint makes id the only active sprint. The store is switched in a
// single pass before any remote call, so local readers never see two active
// sprints. Remotely the switch is one transaction when the gateway supports
// it; otherwise every other sprint is deactivated first and the target
// activated second. If that second step fails the remote sprints are re-read,
// and an invariant error is recorded when none of them is active.
func (e *Engine) SetActiveSprint(ctx context.Context, id string) error {
	e.begin()
	return e.setActiveSprint(ctx, id)
}

func (e *Engine) setActiveSprint(ctx context.Context, id string) error {
	if err := e.store.ActivateSprint(id); err != nil {
		return reject("activate", models.EntitySprint, id, err)
	}
	if isLocal(id) {
		return nil
	}
	retry := func(ctx context.Context) error { return e.SetActiveSprint(ctx, id) }

	sprints := e.gw.Sprints()
	if activator, ok := sprints.(gateway.SprintActivator); ok {
		err := gateway.Retry(ctx, e.policy, "activate sprint", func(ctx context.Context) error {
			return activator.ActivateSprint(ctx, id)
		})
		if err != nil {
			return e.fail("activate", models.EntitySprint, id, err, retry)
		}
		return nil
	}

	err := gateway.Retry(ctx, e.policy, "deactivate other sprints", func(ctx context.Context) error {
		return sprints.DeactivateAllExcept(ctx, id)
	})
	if err != nil {
		return e.fail("activate", models.EntitySprint, id, err, retry)
	}

	active := true
	_, err = gateway.RetryValue(ctx, e.policy, "activate sprint", func(ctx context.Context) (models.Sprint, error) {
		return sprints.Update(ctx, id, models.SprintPatch{IsActive: &active})
	})
	if err == nil {
		return nil
	}
	return e.fail("activate", models.EntitySprint, id, e.checkActiveInvariant(ctx, id, err), retry)
}

// checkActiveInvariant re-reads the remote sprints after a failed activation.
// It upgrades cause to an invariant error when no remote sprint is active.
func (e *Engine) checkActiveInvariant(ctx context.Context, id string, cause error) error {
	remote, err := gateway.RetryValue(ctx, e.policy, "list sprints", func(ctx context.Context) ([]models.Sprint, error) {
		return e.gw.Sprints().List(ctx, gateway.Filter{})
	})
	if err != nil {
		e.logger.Warn("could not verify active sprint after failed activation", "error", err.Error())
		return cause
	}
	for _, s := range remote {
		if s.IsActive {
			return cause
		}
	}
	return &gateway.Error{
		Op:     "activate",
		Entity: models.EntitySprint,
		ID:     id,
		Kind:   gateway.KindInvariant,
		Err:    errors.Join(gateway.ErrNoActiveSprint, cause),
	}
}

