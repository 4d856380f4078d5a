package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

var taskColumns = []string{
	"id", "title", "type", "priority", "status", "points", "description", "requester",
	"manager", "designer_id", "sprint", "request_date", "due_date", "delivery_link",
	"completion_date", "reference_links", "reference_images", "is_deleted", "deleted_at",
	"deleted_by", "created_at", "updated_at",
}

var taskSchema = schema[models.Task, models.TaskPatch]{
	entity:  models.EntityTask,
	table:   "tasks",
	columns: taskColumns,
	orderBy: "created_at DESC",
	values: func(t models.Task) ([]any, error) {
		r := gateway.TaskToRow(t)
		links, err := encodeList(r.ReferenceLinks)
		if err != nil {
			return nil, err
		}
		images, err := encodeList(r.ReferenceImages)
		if err != nil {
			return nil, err
		}
		return []any{
			r.ID, r.Title, r.Type, r.Priority, r.Status, r.Points,
			toNullableArg(r.Description), r.Requester, toNullableArg(r.Manager),
			toNullableArg(r.DesignerID), toNullableArg(r.Sprint), r.RequestDate,
			toNullableArg(r.DueDate), toNullableArg(r.DeliveryLink), toNullableArg(r.CompletionDate),
			links, images, r.IsDeleted, formatTime(r.DeletedAt), toNullableArg(r.DeletedBy),
			formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
		}, nil
	},
	scan: func(s rowScanner) (models.Task, error) {
		var (
			r                           gateway.TaskRow
			links, images               string
			deletedAt, created, updated sql.NullString
		)
		err := s.Scan(
			&r.ID, &r.Title, &r.Type, &r.Priority, &r.Status, &r.Points,
			&r.Description, &r.Requester, &r.Manager, &r.DesignerID, &r.Sprint, &r.RequestDate,
			&r.DueDate, &r.DeliveryLink, &r.CompletionDate, &links, &images,
			&r.IsDeleted, &deletedAt, &r.DeletedBy, &created, &updated,
		)
		if err != nil {
			return models.Task{}, err
		}
		if r.ReferenceLinks, err = decodeList(links); err != nil {
			return models.Task{}, err
		}
		if r.ReferenceImages, err = decodeList(images); err != nil {
			return models.Task{}, err
		}
		if r.DeletedAt, err = parseTime(deletedAt); err != nil {
			return models.Task{}, err
		}
		if r.CreatedAt, err = parseTime(created); err != nil {
			return models.Task{}, err
		}
		if r.UpdatedAt, err = parseTime(updated); err != nil {
			return models.Task{}, err
		}
		return gateway.TaskFromRow(r)
	},
	filter: func(q *selectQuery, f gateway.Filter) {
		if f.Sprint != "" {
			q.Where("sprint = ? COLLATE NOCASE", f.Sprint)
		}
		if f.DesignerID != "" {
			q.Where("designer_id = ?", f.DesignerID)
		}
	},
	id:    func(t models.Task) string { return t.ID },
	setID: func(t models.Task, id string) models.Task { t.ID = id; t.Pending = false; return t },
	apply: models.TaskPatch.Apply,
	stamp: func(t models.Task, now time.Time, created bool) models.Task {
		if created {
			t.CreatedAt = now
			t.Tombstone = nil
		}
		t.UpdatedAt = now
		return t
	},
}

var sprintSchema = schema[models.Sprint, models.SprintPatch]{
	entity:  models.EntitySprint,
	table:   "sprints",
	columns: []string{"id", "name", "start_date", "end_date", "is_active", "is_deleted", "deleted_at", "deleted_by", "created_at"},
	orderBy: "start_date DESC",
	values: func(s models.Sprint) ([]any, error) {
		r := gateway.SprintToRow(s)
		return []any{
			r.ID, r.Name, r.StartDate, r.EndDate, r.IsActive,
			r.IsDeleted, formatTime(r.DeletedAt), toNullableArg(r.DeletedBy), formatTime(r.CreatedAt),
		}, nil
	},
	scan: func(s rowScanner) (models.Sprint, error) {
		var (
			r                  gateway.SprintRow
			deletedAt, created sql.NullString
		)
		if err := s.Scan(&r.ID, &r.Name, &r.StartDate, &r.EndDate, &r.IsActive,
			&r.IsDeleted, &deletedAt, &r.DeletedBy, &created); err != nil {
			return models.Sprint{}, err
		}
		var err error
		if r.DeletedAt, err = parseTime(deletedAt); err != nil {
			return models.Sprint{}, err
		}
		if r.CreatedAt, err = parseTime(created); err != nil {
			return models.Sprint{}, err
		}
		return gateway.SprintFromRow(r)
	},
	id:    func(s models.Sprint) string { return s.ID },
	setID: func(s models.Sprint, id string) models.Sprint { s.ID = id; return s },
	apply: models.SprintPatch.Apply,
	stamp: func(s models.Sprint, now time.Time, created bool) models.Sprint {
		if created {
			s.CreatedAt = now
			s.Tombstone = nil
		}
		return s
	},
}

var memberColumns = []string{"id", "name", "avatar", "email", "role", "is_deleted", "deleted_at", "deleted_by"}

func scanMemberRow(s rowScanner) (gateway.TeamMemberRow, error) {
	var (
		r         gateway.TeamMemberRow
		deletedAt sql.NullString
	)
	if err := s.Scan(&r.ID, &r.Name, &r.Avatar, &r.Email, &r.Role, &r.IsDeleted, &deletedAt, &r.DeletedBy); err != nil {
		return r, err
	}
	var err error
	r.DeletedAt, err = parseTime(deletedAt)
	return r, err
}

var memberSchema = schema[models.TeamMember, models.TeamMemberPatch]{
	entity:  models.EntityTeamMember,
	table:   "team_members",
	columns: memberColumns,
	orderBy: "name COLLATE NOCASE ASC",
	values: func(m models.TeamMember) ([]any, error) {
		r := gateway.TeamMemberToRow(m)
		return []any{
			r.ID, r.Name, toNullableArg(r.Avatar), toNullableArg(r.Email), toNullableArg(r.Role),
			r.IsDeleted, formatTime(r.DeletedAt), toNullableArg(r.DeletedBy),
		}, nil
	},
	scan: func(s rowScanner) (models.TeamMember, error) {
		r, err := scanMemberRow(s)
		if err != nil {
			return models.TeamMember{}, err
		}
		return gateway.TeamMemberFromRow(r), nil
	},
	id:    func(m models.TeamMember) string { return m.ID },
	setID: func(m models.TeamMember, id string) models.TeamMember { m.ID = id; return m },
	apply: models.TeamMemberPatch.Apply,
	stamp: func(m models.TeamMember, _ time.Time, created bool) models.TeamMember {
		if created {
			m.Tombstone = nil
		}
		return m
	},
}

var counterpartySchema = schema[models.Counterparty, models.CounterpartyPatch]{
	entity:  models.EntityCounterparty,
	table:   "counterparties",
	columns: []string{"id", "name", "avatar", "bio", "email", "is_deleted", "deleted_at", "deleted_by"},
	orderBy: "name COLLATE NOCASE ASC",
	values: func(c models.Counterparty) ([]any, error) {
		r := gateway.CounterpartyToRow(c)
		return []any{
			r.ID, r.Name, toNullableArg(r.Avatar), toNullableArg(r.Bio), toNullableArg(r.Email),
			r.IsDeleted, formatTime(r.DeletedAt), toNullableArg(r.DeletedBy),
		}, nil
	},
	scan: func(s rowScanner) (models.Counterparty, error) {
		var (
			r         gateway.CounterpartyRow
			deletedAt sql.NullString
		)
		if err := s.Scan(&r.ID, &r.Name, &r.Avatar, &r.Bio, &r.Email, &r.IsDeleted, &deletedAt, &r.DeletedBy); err != nil {
			return models.Counterparty{}, err
		}
		var err error
		if r.DeletedAt, err = parseTime(deletedAt); err != nil {
			return models.Counterparty{}, err
		}
		return gateway.CounterpartyFromRow(r), nil
	},
	id:    func(c models.Counterparty) string { return c.ID },
	setID: func(c models.Counterparty, id string) models.Counterparty { c.ID = id; return c },
	apply: models.CounterpartyPatch.Apply,
	stamp: func(c models.Counterparty, _ time.Time, created bool) models.Counterparty {
		if created {
			c.Tombstone = nil
		}
		return c
	},
}

// resolveDesigners replaces designer stubs with the stored team member.
// Unknown ids are left as stubs.
func (d *Database) resolveDesigners(ctx context.Context, q queryer, tasks []models.Task) ([]models.Task, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range tasks {
		if t.Designer != nil && !seen[t.Designer.ID] {
			seen[t.Designer.ID] = true
			ids = append(ids, t.Designer.ID)
		}
	}
	if len(ids) == 0 {
		return tasks, nil
	}

	query, args := newSelectQuery("team_members", memberColumns).WhereIn("id", ids).Build()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make(map[string]models.TeamMember, len(ids))
	for rows.Next() {
		r, err := scanMemberRow(rows)
		if err != nil {
			return nil, err
		}
		m := gateway.TeamMemberFromRow(r)
		m.Tombstone = nil
		members[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, t := range tasks {
		if t.Designer == nil {
			continue
		}
		if m, ok := members[t.Designer.ID]; ok {
			tasks[i].Designer = &m
		}
	}
	return tasks, nil
}
