package store

import (
	"sort"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

// collection keeps one entity type split into an active and a deleted partition.
// An id lives in at most one partition. order holds every id, newest first.
type collection[T any] struct {
	active  map[string]T
	deleted map[string]T
	order   []string

	id           func(T) string
	clone        func(T) T
	tombstone    func(T) *models.Tombstone
	setTombstone func(T, *models.Tombstone) T
	less         func(a, b T) bool
}

func newCollection[T any](
	id func(T) string,
	clone func(T) T,
	tombstone func(T) *models.Tombstone,
	setTombstone func(T, *models.Tombstone) T,
	less func(a, b T) bool,
) *collection[T] {
	return &collection[T]{
		active:       make(map[string]T),
		deleted:      make(map[string]T),
		id:           id,
		clone:        clone,
		tombstone:    tombstone,
		setTombstone: setTombstone,
		less:         less,
	}
}

func (c *collection[T]) list(partition map[string]T) []T {
	out := make([]T, 0, len(partition))
	for _, id := range c.order {
		if v, ok := partition[id]; ok {
			out = append(out, c.clone(v))
		}
	}
	if c.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return c.less(out[i], out[j]) })
	}
	return out
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.active[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

func (c *collection[T]) getDeleted(id string) (T, bool) {
	v, ok := c.deleted[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

// put upserts v into the partition its tombstone selects.
func (c *collection[T]) put(v T) {
	id := c.id(v)
	if !c.known(id) {
		c.order = append([]string{id}, c.order...)
	}
	c.place(id, c.clone(v))
}

// replace swaps oldID for v in the same ordering slot.
func (c *collection[T]) replace(oldID string, v T) {
	newID := c.id(v)
	if oldID == newID || !c.known(oldID) {
		c.put(v)
		return
	}
	delete(c.active, oldID)
	delete(c.deleted, oldID)
	if c.known(newID) {
		// The confirmed record already arrived by another path; drop the old slot.
		c.order = removeID(c.order, oldID)
	} else {
		for i, id := range c.order {
			if id == oldID {
				c.order[i] = newID
				break
			}
		}
	}
	c.place(newID, c.clone(v))
}

func (c *collection[T]) remove(id string) bool {
	if !c.known(id) {
		return false
	}
	delete(c.active, id)
	delete(c.deleted, id)
	c.order = removeID(c.order, id)
	return true
}

func (c *collection[T]) replaceAll(active, deleted []T) {
	c.active = make(map[string]T, len(active))
	c.deleted = make(map[string]T, len(deleted))
	c.order = c.order[:0]
	for _, v := range active {
		id := c.id(v)
		if _, dup := c.active[id]; dup {
			continue
		}
		c.order = append(c.order, id)
		c.active[id] = c.clone(c.setTombstone(v, nil))
	}
	for _, v := range deleted {
		id := c.id(v)
		if c.known(id) {
			continue
		}
		c.order = append(c.order, id)
		ts := c.tombstone(v)
		if ts == nil {
			ts = &models.Tombstone{}
		}
		c.deleted[id] = c.clone(c.setTombstone(v, ts))
	}
}

// moveToDeleted tombstones an active entity.
func (c *collection[T]) moveToDeleted(id string, ts models.Tombstone) (T, error) {
	v, ok := c.active[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(c.active, id)
	v = c.setTombstone(v, &ts)
	c.deleted[id] = v
	return c.clone(v), nil
}

// moveToActive clears the tombstone of a deleted entity.
func (c *collection[T]) moveToActive(id string) (T, error) {
	v, ok := c.deleted[id]
	if !ok {
		var zero T
		return zero, ErrNotDeleted
	}
	delete(c.deleted, id)
	v = c.setTombstone(v, nil)
	c.active[id] = v
	return c.clone(v), nil
}

// updateWhere rewrites every active entity matching pred and returns their ids.
func (c *collection[T]) updateWhere(pred func(T) bool, fn func(T) T) []string {
	var ids []string
	for _, id := range c.order {
		v, ok := c.active[id]
		if !ok || !pred(v) {
			continue
		}
		c.active[id] = c.clone(fn(c.clone(v)))
		ids = append(ids, id)
	}
	return ids
}

func (c *collection[T]) known(id string) bool {
	if _, ok := c.active[id]; ok {
		return true
	}
	_, ok := c.deleted[id]
	return ok
}

func (c *collection[T]) place(id string, v T) {
	if c.tombstone(v) != nil {
		delete(c.active, id)
		c.deleted[id] = v
		return
	}
	delete(c.deleted, id)
	c.active[id] = v
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
