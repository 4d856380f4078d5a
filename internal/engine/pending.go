package engine

import (
	"context"
	"errors"

	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
)

// PendingRef names a record whose create the remote has not confirmed.
type PendingRef struct {
	Entity models.EntityType
	ID     string
}

// placeholders holds the unconfirmed records of every collection, in store
// order.
type placeholders struct {
	tasks          []models.Task
	sprints        []models.Sprint
	members        []models.TeamMember
	counterparties []models.Counterparty
}

func (e *Engine) heldPlaceholders() placeholders {
	var p placeholders
	for _, t := range e.store.Tasks() {
		if t.Pending {
			p.tasks = append(p.tasks, t)
		}
	}
	for _, s := range e.store.Sprints() {
		if isLocal(s.ID) {
			p.sprints = append(p.sprints, s)
		}
	}
	for _, m := range e.store.TeamMembers() {
		if isLocal(m.ID) {
			p.members = append(p.members, m)
		}
	}
	for _, c := range e.store.Counterparties() {
		if isLocal(c.ID) {
			p.counterparties = append(p.counterparties, c)
		}
	}
	return p
}

// restore puts the placeholders back after a reload. Puts prepend, so each
// list is walked backwards to keep the original order.
func (p placeholders) restore(s *store.Store) {
	for i := len(p.members) - 1; i >= 0; i-- {
		s.PutTeamMember(p.members[i])
	}
	for i := len(p.counterparties) - 1; i >= 0; i-- {
		s.PutCounterparty(p.counterparties[i])
	}
	for i := len(p.sprints) - 1; i >= 0; i-- {
		s.PutSprint(p.sprints[i])
	}
	for i := len(p.tasks) - 1; i >= 0; i-- {
		s.PutTask(p.tasks[i])
	}
}

// Pending lists the records still waiting for their create to be confirmed.
// People come first, then sprints, then tasks.
func (e *Engine) Pending() []PendingRef {
	p := e.heldPlaceholders()
	var refs []PendingRef
	for _, m := range p.members {
		refs = append(refs, PendingRef{Entity: models.EntityTeamMember, ID: m.ID})
	}
	for _, c := range p.counterparties {
		refs = append(refs, PendingRef{Entity: models.EntityCounterparty, ID: c.ID})
	}
	for _, s := range p.sprints {
		refs = append(refs, PendingRef{Entity: models.EntitySprint, ID: s.ID})
	}
	for _, t := range p.tasks {
		refs = append(refs, PendingRef{Entity: models.EntityTask, ID: t.ID})
	}
	return refs
}

// ConfirmPending re-sends the create of every unconfirmed record, using its
// current stored value. Each record is tried once per call; the failures are
// joined and the error slot holds the last one.
func (e *Engine) ConfirmPending(ctx context.Context) error {
	e.begin()
	var errs []error
	for _, ref := range e.Pending() {
		var err error
		switch ref.Entity {
		case models.EntityTeamMember:
			if m, ok := e.store.TeamMember(ref.ID); ok {
				_, err = e.confirmTeamMember(ctx, m)
			}
		case models.EntityCounterparty:
			if c, ok := e.store.Counterparty(ref.ID); ok {
				_, err = e.confirmCounterparty(ctx, c)
			}
		case models.EntitySprint:
			if s, ok := e.store.Sprint(ref.ID); ok {
				_, err = e.confirmSprint(ctx, s)
			}
		case models.EntityTask:
			if t, ok := e.store.Task(ref.ID); ok && t.Pending {
				_, err = e.confirmTask(ctx, t)
			}
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
