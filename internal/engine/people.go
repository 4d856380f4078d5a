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

func (e *Engine) CreateTeamMember(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	e.begin()
	m.Name = strings.TrimSpace(m.Name)
	if m.Role == "" {
		m.Role = models.RoleDesigner
	}
	m.Tombstone = nil
	m.ID = e.localID()
	e.store.PutTeamMember(m)

	return e.confirmTeamMember(ctx, m)
}

func (e *Engine) confirmTeamMember(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	localID := m.ID
	confirmed, err := gateway.RetryValue(ctx, e.policy, "create team member", func(ctx context.Context) (models.TeamMember, error) {
		return e.gw.TeamMembers().Create(ctx, m)
	})
	if err != nil {
		return m, e.fail("create", models.EntityTeamMember, localID, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.TeamMember(localID)
			if !ok {
				return nil
			}
			_, err := e.confirmTeamMember(ctx, current)
			return err
		})
	}
	if deleted, ok := e.store.DeletedTeamMember(localID); ok {
		confirmed.Tombstone = deleted.Tombstone
		e.store.ReplaceTeamMember(localID, confirmed)
		return confirmed, e.sendSoftDelete(ctx, models.EntityTeamMember, confirmed.ID, deleted.Tombstone.DeletedBy, e.gw.TeamMembers().SoftDelete)
	}
	e.store.ReplaceTeamMember(localID, confirmed)
	return confirmed, nil
}

// UpdateTeamMember merges patch into the member and into the designer copy
// embedded in every task assigned to it.
func (e *Engine) UpdateTeamMember(ctx context.Context, id string, patch models.TeamMemberPatch) (models.TeamMember, error) {
	e.begin()
	current, ok := e.store.TeamMember(id)
	if !ok {
		return models.TeamMember{}, reject("update", models.EntityTeamMember, id, store.ErrNotFound)
	}
	updated := patch.Apply(current)
	e.store.MergeTeamMember(updated)
	if isLocal(id) {
		return e.confirmTeamMember(ctx, updated)
	}
	return e.sendTeamMemberPatch(ctx, id, patch, updated)
}

func (e *Engine) sendTeamMemberPatch(ctx context.Context, id string, patch models.TeamMemberPatch, local models.TeamMember) (models.TeamMember, error) {
	server, err := gateway.RetryValue(ctx, e.policy, "update team member", func(ctx context.Context) (models.TeamMember, error) {
		return e.gw.TeamMembers().Update(ctx, id, patch)
	})
	if err != nil {
		return local, e.fail("update", models.EntityTeamMember, id, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.TeamMember(id)
			if !ok {
				return nil
			}
			_, err := e.sendTeamMemberPatch(ctx, id, patch, current)
			return err
		})
	}
	if _, ok := e.store.TeamMember(id); ok {
		e.store.MergeTeamMember(server)
	}
	return server, nil
}

func (e *Engine) CreateCounterparty(ctx context.Context, c models.Counterparty) (models.Counterparty, error) {
	e.begin()
	c.Name = strings.TrimSpace(c.Name)
	c.Tombstone = nil
	c.ID = e.localID()
	e.store.PutCounterparty(c)

	return e.confirmCounterparty(ctx, c)
}

func (e *Engine) confirmCounterparty(ctx context.Context, c models.Counterparty) (models.Counterparty, error) {
	localID := c.ID
	confirmed, err := gateway.RetryValue(ctx, e.policy, "create counterparty", func(ctx context.Context) (models.Counterparty, error) {
		return e.gw.Counterparties().Create(ctx, c)
	})
	if err != nil {
		return c, e.fail("create", models.EntityCounterparty, localID, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.Counterparty(localID)
			if !ok {
				return nil
			}
			_, err := e.confirmCounterparty(ctx, current)
			return err
		})
	}
	if deleted, ok := e.store.DeletedCounterparty(localID); ok {
		confirmed.Tombstone = deleted.Tombstone
		e.store.ReplaceCounterparty(localID, confirmed)
		return confirmed, e.sendSoftDelete(ctx, models.EntityCounterparty, confirmed.ID, deleted.Tombstone.DeletedBy, e.gw.Counterparties().SoftDelete)
	}
	e.store.ReplaceCounterparty(localID, confirmed)
	return confirmed, nil
}

// UpdateCounterparty merges patch into the counterparty. Renaming rewrites
// the requester of every active task that named the old counterparty.
func (e *Engine) UpdateCounterparty(ctx context.Context, id string, patch models.CounterpartyPatch) (models.Counterparty, error) {
	e.begin()
	current, ok := e.store.Counterparty(id)
	if !ok {
		return models.Counterparty{}, reject("update", models.EntityCounterparty, id, store.ErrNotFound)
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	updated := patch.Apply(current)
	e.store.PutCounterparty(updated)

	var errs []error
	if isLocal(id) {
		server, err := e.confirmCounterparty(ctx, updated)
		if err != nil {
			errs = append(errs, err)
		} else {
			updated = server
		}
	} else {
		server, err := e.sendCounterpartyPatch(ctx, id, patch, updated)
		if err != nil {
			errs = append(errs, err)
		} else {
			updated = server
		}
	}
	if patch.Name != nil && *patch.Name != current.Name {
		for _, t := range e.store.Tasks() {
			if t.Requester != current.Name {
				continue
			}
			if _, err := e.updateTask(ctx, t.ID, models.TaskPatch{Requester: util.Ptr(*patch.Name)}); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return updated, errors.Join(errs...)
}

func (e *Engine) sendCounterpartyPatch(ctx context.Context, id string, patch models.CounterpartyPatch, local models.Counterparty) (models.Counterparty, error) {
	server, err := gateway.RetryValue(ctx, e.policy, "update counterparty", func(ctx context.Context) (models.Counterparty, error) {
		return e.gw.Counterparties().Update(ctx, id, patch)
	})
	if err != nil {
		return local, e.fail("update", models.EntityCounterparty, id, err, func(ctx context.Context) error {
			e.begin()
			current, ok := e.store.Counterparty(id)
			if !ok {
				return nil
			}
			_, err := e.sendCounterpartyPatch(ctx, id, patch, current)
			return err
		})
	}
	if _, ok := e.store.Counterparty(id); ok {
		e.store.PutCounterparty(server)
	}
	return server, nil
}
