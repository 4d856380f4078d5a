package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

// schema describes how the generic table reads and writes one entity type.
type schema[T any, P any] struct {
	id           func(T) string
	setID        func(T, string) T
	tombstone    func(T) *models.Tombstone
	setTombstone func(T, *models.Tombstone) T
	apply        func(P, T) T
	clone        func(T) T
	stamp        func(v T, now time.Time, created bool) T
	row          func(T) any
	match        func(T, gateway.Filter) bool
}

type table[T any, P any] struct {
	g      *Gateway
	entity models.EntityType
	schema schema[T, P]
	rows   map[string]T
	order  []string // newest first

	resolve func(T) T
	onWrite func(T)
}

func newTable[T any, P any](g *Gateway, entity models.EntityType, s schema[T, P]) *table[T, P] {
	return &table[T, P]{g: g, entity: entity, schema: s, rows: make(map[string]T)}
}

func (t *table[T, P]) notFound(op, id string) error {
	return &gateway.Error{Op: op, Entity: t.entity, ID: id, Kind: gateway.KindNotFound, Err: gateway.ErrNotFound}
}

func (t *table[T, P]) List(ctx context.Context, f gateway.Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if err := t.g.checkFault(t.entity, "list"); err != nil {
		return nil, err
	}
	wantDeleted := f.IsDeleted != nil && *f.IsDeleted
	limit := f.Limit
	if limit <= 0 {
		limit = config.ActiveListLimit
	}
	var out []T
	for _, id := range t.order {
		v := t.rows[id]
		if (t.schema.tombstone(v) != nil) != wantDeleted {
			continue
		}
		if t.schema.match != nil && !t.schema.match(v, f) {
			continue
		}
		out = append(out, t.schema.clone(v))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListDeleted returns rows deleted within config.DeletedLookback, newest
// deletion first, capped at config.DeletedListLimit.
func (t *table[T, P]) ListDeleted(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if err := t.g.checkFault(t.entity, "list_deleted"); err != nil {
		return nil, err
	}
	cutoff := t.g.now().Add(-config.DeletedLookback)
	var out []T
	for _, id := range t.order {
		v := t.rows[id]
		ts := t.schema.tombstone(v)
		if ts == nil || ts.DeletedAt.Before(cutoff) {
			continue
		}
		out = append(out, t.schema.clone(v))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return t.schema.tombstone(out[i]).DeletedAt.After(t.schema.tombstone(out[j]).DeletedAt)
	})
	if len(out) > config.DeletedListLimit {
		out = out[:config.DeletedListLimit]
	}
	return out, nil
}

// Create stores v under a fresh server id. Any id on v is ignored.
func (t *table[T, P]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.g.mu.Lock()
	if err := t.g.checkFault(t.entity, "create"); err != nil {
		t.g.mu.Unlock()
		return zero, err
	}
	if err := gateway.ValidateRow("create", t.entity, t.schema.row(v)); err != nil {
		t.g.mu.Unlock()
		return zero, err
	}
	v = t.schema.setID(t.schema.clone(v), uuid.NewString())
	v = t.schema.setTombstone(v, nil)
	v = t.schema.stamp(v, t.g.now(), true)
	if t.resolve != nil {
		v = t.resolve(v)
	}
	id := t.schema.id(v)
	t.rows[id] = v
	t.order = append([]string{id}, t.order...)
	out := t.schema.clone(v)
	t.g.mu.Unlock()

	if t.onWrite != nil {
		t.onWrite(out)
	}
	return out, nil
}

func (t *table[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	t.g.mu.Lock()
	if err := t.g.checkFault(t.entity, "update"); err != nil {
		t.g.mu.Unlock()
		return zero, err
	}
	v, ok := t.rows[id]
	if !ok {
		t.g.mu.Unlock()
		return zero, t.notFound("update", id)
	}
	v = t.schema.apply(patch, v)
	v = t.schema.stamp(v, t.g.now(), false)
	if t.resolve != nil {
		v = t.resolve(v)
	}
	t.rows[id] = v
	out := t.schema.clone(v)
	t.g.mu.Unlock()

	if t.onWrite != nil {
		t.onWrite(out)
	}
	return out, nil
}

func (t *table[T, P]) SoftDelete(ctx context.Context, id, actorID string) error {
	return t.setTombstone(ctx, "soft_delete", id, &models.Tombstone{DeletedBy: actorID})
}

func (t *table[T, P]) Restore(ctx context.Context, id string) error {
	return t.setTombstone(ctx, "restore", id, nil)
}

func (t *table[T, P]) setTombstone(ctx context.Context, op, id string, ts *models.Tombstone) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if err := t.g.checkFault(t.entity, op); err != nil {
		return err
	}
	v, ok := t.rows[id]
	if !ok {
		return t.notFound(op, id)
	}
	if ts != nil {
		ts.DeletedAt = t.g.now()
	}
	t.rows[id] = t.schema.setTombstone(v, ts)
	return nil
}

func (t *table[T, P]) HardDelete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if err := t.g.checkFault(t.entity, "hard_delete"); err != nil {
		return err
	}
	if _, ok := t.rows[id]; !ok {
		return t.notFound("hard_delete", id)
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

type sprintTable struct {
	*table[models.Sprint, models.SprintPatch]
}

func (s *sprintTable) DeactivateAllExcept(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if err := s.g.checkFault(models.EntitySprint, "deactivate_others"); err != nil {
		return err
	}
	for sid, sp := range s.rows {
		if sid != id && sp.IsActive {
			sp.IsActive = false
			s.rows[sid] = sp
		}
	}
	return nil
}

// ActivateSprint switches the active sprint under a single lock, so no
// reader ever observes zero or two active sprints.
func (s *sprintTable) ActivateSprint(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if err := s.g.checkFault(models.EntitySprint, "activate"); err != nil {
		return err
	}
	target, ok := s.rows[id]
	if !ok || target.Tombstone != nil {
		return s.notFound("activate", id)
	}
	for sid, sp := range s.rows {
		sp.IsActive = sid == id
		s.rows[sid] = sp
	}
	return nil
}
