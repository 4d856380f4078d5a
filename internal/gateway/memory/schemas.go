package memory

import (
	"strings"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

var taskSchema = schema[models.Task, models.TaskPatch]{
	id:           func(t models.Task) string { return t.ID },
	setID:        func(t models.Task, id string) models.Task { t.ID = id; t.Pending = false; return t },
	tombstone:    func(t models.Task) *models.Tombstone { return t.Tombstone },
	setTombstone: func(t models.Task, ts *models.Tombstone) models.Task { t.Tombstone = ts; return t },
	apply:        models.TaskPatch.Apply,
	clone:        models.Task.Clone,
	stamp: func(t models.Task, now time.Time, created bool) models.Task {
		if created {
			t.CreatedAt = now
		}
		t.UpdatedAt = now
		return t
	},
	row: func(t models.Task) any { return gateway.TaskToRow(t) },
	match: func(t models.Task, f gateway.Filter) bool {
		if f.Sprint != "" && !strings.EqualFold(t.Sprint, f.Sprint) {
			return false
		}
		if f.DesignerID != "" && (t.Designer == nil || t.Designer.ID != f.DesignerID) {
			return false
		}
		return true
	},
}

var sprintSchema = schema[models.Sprint, models.SprintPatch]{
	id:           func(s models.Sprint) string { return s.ID },
	setID:        func(s models.Sprint, id string) models.Sprint { s.ID = id; return s },
	tombstone:    func(s models.Sprint) *models.Tombstone { return s.Tombstone },
	setTombstone: func(s models.Sprint, ts *models.Tombstone) models.Sprint { s.Tombstone = ts; return s },
	apply:        models.SprintPatch.Apply,
	clone:        models.Sprint.Clone,
	stamp: func(s models.Sprint, now time.Time, created bool) models.Sprint {
		if created {
			s.CreatedAt = now
		}
		return s
	},
	row: func(s models.Sprint) any { return gateway.SprintToRow(s) },
}

var memberSchema = schema[models.TeamMember, models.TeamMemberPatch]{
	id:           func(m models.TeamMember) string { return m.ID },
	setID:        func(m models.TeamMember, id string) models.TeamMember { m.ID = id; return m },
	tombstone:    func(m models.TeamMember) *models.Tombstone { return m.Tombstone },
	setTombstone: func(m models.TeamMember, ts *models.Tombstone) models.TeamMember { m.Tombstone = ts; return m },
	apply:        models.TeamMemberPatch.Apply,
	clone:        models.TeamMember.Clone,
	stamp:        func(m models.TeamMember, _ time.Time, _ bool) models.TeamMember { return m },
	row:          func(m models.TeamMember) any { return gateway.TeamMemberToRow(m) },
}

var counterpartySchema = schema[models.Counterparty, models.CounterpartyPatch]{
	id:           func(c models.Counterparty) string { return c.ID },
	setID:        func(c models.Counterparty, id string) models.Counterparty { c.ID = id; return c },
	tombstone:    func(c models.Counterparty) *models.Tombstone { return c.Tombstone },
	setTombstone: func(c models.Counterparty, ts *models.Tombstone) models.Counterparty { c.Tombstone = ts; return c },
	apply:        models.CounterpartyPatch.Apply,
	clone:        models.Counterparty.Clone,
	stamp:        func(c models.Counterparty, _ time.Time, _ bool) models.Counterparty { return c },
	row:          func(c models.Counterparty) any { return gateway.CounterpartyToRow(c) },
}
