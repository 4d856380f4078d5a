// Package store holds the in-memory mirror of the four synchronized
// collections. It is the single source of truth read by every consumer and is
// written only by the engine.
package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

var (
	ErrNotFound   = errors.New("entity not found")
	ErrNotDeleted = errors.New("entity is not deleted")
)

// ChangeOp describes what happened to an entity in the store.
type ChangeOp string

const (
	OpPut     ChangeOp = "put"
	OpReplace ChangeOp = "replace"
	OpRemove  ChangeOp = "remove"
	OpDelete  ChangeOp = "delete"
	OpRestore ChangeOp = "restore"
	OpReload  ChangeOp = "reload"
)

// Change is a store notification delivered to subscribers.
type Change struct {
	Entity models.EntityType
	ID     string
	Op     ChangeOp
}

// Snapshot is a consistent copy of every collection.
type Snapshot struct {
	Tasks                 []models.Task
	DeletedTasks          []models.Task
	Sprints               []models.Sprint
	DeletedSprints        []models.Sprint
	TeamMembers           []models.TeamMember
	DeletedTeamMembers    []models.TeamMember
	Counterparties        []models.Counterparty
	DeletedCounterparties []models.Counterparty
}

// Store is safe for concurrent use. Every read returns copies.
type Store struct {
	mu             sync.RWMutex
	tasks          *collection[models.Task]
	sprints        *collection[models.Sprint]
	members        *collection[models.TeamMember]
	counterparties *collection[models.Counterparty]

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int
}

func New() *Store {
	return &Store{
		tasks: newCollection(
			func(t models.Task) string { return t.ID },
			models.Task.Clone,
			func(t models.Task) *models.Tombstone { return t.Tombstone },
			func(t models.Task, ts *models.Tombstone) models.Task { t.Tombstone = ts; return t },
			nil,
		),
		sprints: newCollection(
			func(s models.Sprint) string { return s.ID },
			models.Sprint.Clone,
			func(s models.Sprint) *models.Tombstone { return s.Tombstone },
			func(s models.Sprint, ts *models.Tombstone) models.Sprint { s.Tombstone = ts; return s },
			func(a, b models.Sprint) bool { return a.StartDate.After(b.StartDate) },
		),
		members: newCollection(
			func(m models.TeamMember) string { return m.ID },
			models.TeamMember.Clone,
			func(m models.TeamMember) *models.Tombstone { return m.Tombstone },
			func(m models.TeamMember, ts *models.Tombstone) models.TeamMember { m.Tombstone = ts; return m },
			func(a, b models.TeamMember) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
		),
		counterparties: newCollection(
			func(c models.Counterparty) string { return c.ID },
			models.Counterparty.Clone,
			func(c models.Counterparty) *models.Tombstone { return c.Tombstone },
			func(c models.Counterparty, ts *models.Tombstone) models.Counterparty { c.Tombstone = ts; return c },
			func(a, b models.Counterparty) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
		),
		subs: make(map[int]chan Change),
	}
}

// Subscribe registers an observer. Notifications are dropped for a subscriber
// whose buffer is full; observers re-read the store rather than replaying events.
func (s *Store) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 64)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) notify(entity models.EntityType, op ChangeOp, ids ...string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if len(ids) == 0 {
		ids = []string{""}
	}
	for _, id := range ids {
		for _, ch := range s.subs {
			select {
			case ch <- Change{Entity: entity, ID: id, Op: op}:
			default:
			}
		}
	}
}

// Snapshot returns a consistent copy of every collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Tasks:                 s.tasks.list(s.tasks.active),
		DeletedTasks:          s.tasks.list(s.tasks.deleted),
		Sprints:               s.sprints.list(s.sprints.active),
		DeletedSprints:        s.sprints.list(s.sprints.deleted),
		TeamMembers:           s.members.list(s.members.active),
		DeletedTeamMembers:    s.members.list(s.members.deleted),
		Counterparties:        s.counterparties.list(s.counterparties.active),
		DeletedCounterparties: s.counterparties.list(s.counterparties.deleted),
	}
}

// --- Tasks ---

func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.list(s.tasks.active)
}

func (s *Store) DeletedTasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.list(s.tasks.deleted)
}

// Task returns an active task.
func (s *Store) Task(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.get(id)
}

func (s *Store) DeletedTask(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.getDeleted(id)
}

func (s *Store) PutTask(t models.Task) {
	s.mu.Lock()
	s.tasks.put(t)
	s.mu.Unlock()
	s.notify(models.EntityTask, OpPut, t.ID)
}

// ReplaceTask swaps the record stored under oldID for t, keeping its position.
func (s *Store) ReplaceTask(oldID string, t models.Task) {
	s.mu.Lock()
	s.tasks.replace(oldID, t)
	s.mu.Unlock()
	s.notify(models.EntityTask, OpReplace, t.ID)
}

func (s *Store) RemoveTask(id string) bool {
	s.mu.Lock()
	ok := s.tasks.remove(id)
	s.mu.Unlock()
	if ok {
		s.notify(models.EntityTask, OpRemove, id)
	}
	return ok
}

func (s *Store) ReplaceTasks(active, deleted []models.Task) {
	s.mu.Lock()
	s.tasks.replaceAll(active, deleted)
	s.mu.Unlock()
	s.notify(models.EntityTask, OpReload)
}

func (s *Store) TombstoneTask(id string, ts models.Tombstone) (models.Task, error) {
	s.mu.Lock()
	t, err := s.tasks.moveToDeleted(id, ts)
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntityTask, OpDelete, id)
	}
	return t, err
}

func (s *Store) RestoreTask(id string) (models.Task, error) {
	s.mu.Lock()
	t, err := s.tasks.moveToActive(id)
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntityTask, OpRestore, id)
	}
	return t, err
}

// UpdateTasksWhere rewrites every active task matching pred in one atomic step
// and returns the ids it touched.
func (s *Store) UpdateTasksWhere(pred func(models.Task) bool, fn func(models.Task) models.Task) []string {
	s.mu.Lock()
	ids := s.tasks.updateWhere(pred, fn)
	s.mu.Unlock()
	if len(ids) > 0 {
		s.notify(models.EntityTask, OpPut, ids...)
	}
	return ids
}

// --- Sprints ---

func (s *Store) Sprints() []models.Sprint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sprints.list(s.sprints.active)
}

func (s *Store) DeletedSprints() []models.Sprint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sprints.list(s.sprints.deleted)
}

func (s *Store) Sprint(id string) (models.Sprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sprints.get(id)
}

func (s *Store) DeletedSprint(id string) (models.Sprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sprints.getDeleted(id)
}

// ActiveSprint returns the active sprint among non-deleted sprints, if any.
func (s *Store) ActiveSprint() (models.Sprint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.sprints.list(s.sprints.active) {
		if sp.IsActive {
			return sp, true
		}
	}
	return models.Sprint{}, false
}

// PutSprint upserts a sprint. An active sprint deactivates every other sprint
// in the same step so the store never holds two active sprints.
func (s *Store) PutSprint(sp models.Sprint) {
	s.mu.Lock()
	if sp.IsActive {
		s.deactivateOthersLocked(sp.ID)
	}
	s.sprints.put(sp)
	s.mu.Unlock()
	s.notify(models.EntitySprint, OpPut, sp.ID)
}

func (s *Store) ReplaceSprint(oldID string, sp models.Sprint) {
	s.mu.Lock()
	if sp.IsActive {
		s.deactivateOthersLocked(oldID, sp.ID)
	}
	s.sprints.replace(oldID, sp)
	s.mu.Unlock()
	s.notify(models.EntitySprint, OpReplace, sp.ID)
}

func (s *Store) RemoveSprint(id string) bool {
	s.mu.Lock()
	ok := s.sprints.remove(id)
	s.mu.Unlock()
	if ok {
		s.notify(models.EntitySprint, OpRemove, id)
	}
	return ok
}

// ReplaceSprints loads sprints from the remote store. If the remote data
// carries more than one active sprint, only the first in display order stays
// active locally.
func (s *Store) ReplaceSprints(active, deleted []models.Sprint) {
	s.mu.Lock()
	s.sprints.replaceAll(active, deleted)
	if list := s.sprints.list(s.sprints.active); len(list) > 0 {
		for _, sp := range list {
			if sp.IsActive {
				s.deactivateOthersLocked(sp.ID)
				break
			}
		}
	}
	s.mu.Unlock()
	s.notify(models.EntitySprint, OpReload)
}

// ActivateSprint recomputes every sprint's active flag in one pass:
// active = (sprint.ID == id). It fails if id is not an active-partition sprint.
func (s *Store) ActivateSprint(id string) error {
	s.mu.Lock()
	if _, ok := s.sprints.active[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	ids := s.setActiveLocked(id)
	s.mu.Unlock()
	s.notify(models.EntitySprint, OpPut, ids...)
	return nil
}

func (s *Store) TombstoneSprint(id string, ts models.Tombstone) (models.Sprint, error) {
	s.mu.Lock()
	sp, err := s.sprints.moveToDeleted(id, ts)
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntitySprint, OpDelete, id)
	}
	return sp, err
}

// RestoreSprint moves a sprint back to the active partition. A restored sprint
// that was active before deletion keeps its flag only if no other sprint is
// active now.
func (s *Store) RestoreSprint(id string) (models.Sprint, error) {
	s.mu.Lock()
	sp, err := s.sprints.moveToActive(id)
	if err == nil && sp.IsActive {
		for otherID, other := range s.sprints.active {
			if otherID != id && other.IsActive {
				sp.IsActive = false
				s.sprints.active[id] = sp
				break
			}
		}
	}
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntitySprint, OpRestore, id)
	}
	return sp, err
}

// setActiveLocked applies active = (id == target) to every sprint in both partitions.
func (s *Store) setActiveLocked(target string) []string {
	var ids []string
	for _, part := range []map[string]models.Sprint{s.sprints.active, s.sprints.deleted} {
		for id, sp := range part {
			want := id == target
			if sp.IsActive != want {
				sp.IsActive = want
				part[id] = sp
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (s *Store) deactivateOthersLocked(keep ...string) {
	skip := make(map[string]bool, len(keep))
	for _, id := range keep {
		skip[id] = true
	}
	for _, part := range []map[string]models.Sprint{s.sprints.active, s.sprints.deleted} {
		for id, sp := range part {
			if !skip[id] && sp.IsActive {
				sp.IsActive = false
				part[id] = sp
			}
		}
	}
}

// --- Team members ---

func (s *Store) TeamMembers() []models.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.list(s.members.active)
}

func (s *Store) DeletedTeamMembers() []models.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.list(s.members.deleted)
}

func (s *Store) TeamMember(id string) (models.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.get(id)
}

func (s *Store) DeletedTeamMember(id string) (models.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.getDeleted(id)
}

func (s *Store) PutTeamMember(m models.TeamMember) {
	s.mu.Lock()
	s.members.put(m)
	s.mu.Unlock()
	s.notify(models.EntityTeamMember, OpPut, m.ID)
}

func (s *Store) ReplaceTeamMember(oldID string, m models.TeamMember) {
	s.mu.Lock()
	s.members.replace(oldID, m)
	s.mu.Unlock()
	s.notify(models.EntityTeamMember, OpReplace, m.ID)
}

func (s *Store) RemoveTeamMember(id string) bool {
	s.mu.Lock()
	ok := s.members.remove(id)
	s.mu.Unlock()
	if ok {
		s.notify(models.EntityTeamMember, OpRemove, id)
	}
	return ok
}

func (s *Store) ReplaceTeamMembers(active, deleted []models.TeamMember) {
	s.mu.Lock()
	s.members.replaceAll(active, deleted)
	s.mu.Unlock()
	s.notify(models.EntityTeamMember, OpReload)
}

func (s *Store) TombstoneTeamMember(id string, ts models.Tombstone) (models.TeamMember, error) {
	s.mu.Lock()
	m, err := s.members.moveToDeleted(id, ts)
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntityTeamMember, OpDelete, id)
	}
	return m, err
}

func (s *Store) RestoreTeamMember(id string) (models.TeamMember, error) {
	s.mu.Lock()
	m, err := s.members.moveToActive(id)
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntityTeamMember, OpRestore, id)
	}
	return m, err
}

// MergeTeamMember stores m (in whichever partition its current copy lives)
// and rewrites the embedded designer of every task assigned to m.ID, in one
// atomic step. It returns the ids of the rewritten tasks.
func (s *Store) MergeTeamMember(m models.TeamMember) []string {
	s.mu.Lock()
	if current, ok := s.members.deleted[m.ID]; ok && m.Tombstone == nil {
		m.Tombstone = current.Tombstone
	}
	s.members.put(m)
	ref := m.Clone()
	ref.Tombstone = nil
	taskIDs := s.tasks.updateWhere(
		func(t models.Task) bool { return t.Designer != nil && t.Designer.ID == m.ID },
		func(t models.Task) models.Task {
			d := ref
			t.Designer = &d
			return t
		},
	)
	for id, t := range s.tasks.deleted {
		if t.Designer != nil && t.Designer.ID == m.ID {
			d := ref
			t.Designer = &d
			s.tasks.deleted[id] = t
		}
	}
	s.mu.Unlock()
	s.notify(models.EntityTeamMember, OpPut, m.ID)
	if len(taskIDs) > 0 {
		s.notify(models.EntityTask, OpPut, taskIDs...)
	}
	return taskIDs
}

// --- Counterparties ---

func (s *Store) Counterparties() []models.Counterparty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counterparties.list(s.counterparties.active)
}

func (s *Store) DeletedCounterparties() []models.Counterparty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counterparties.list(s.counterparties.deleted)
}

func (s *Store) Counterparty(id string) (models.Counterparty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counterparties.get(id)
}

func (s *Store) DeletedCounterparty(id string) (models.Counterparty, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counterparties.getDeleted(id)
}

func (s *Store) PutCounterparty(c models.Counterparty) {
	s.mu.Lock()
	s.counterparties.put(c)
	s.mu.Unlock()
	s.notify(models.EntityCounterparty, OpPut, c.ID)
}

func (s *Store) ReplaceCounterparty(oldID string, c models.Counterparty) {
	s.mu.Lock()
	s.counterparties.replace(oldID, c)
	s.mu.Unlock()
	s.notify(models.EntityCounterparty, OpReplace, c.ID)
}

func (s *Store) RemoveCounterparty(id string) bool {
	s.mu.Lock()
	ok := s.counterparties.remove(id)
	s.mu.Unlock()
	if ok {
		s.notify(models.EntityCounterparty, OpRemove, id)
	}
	return ok
}

func (s *Store) ReplaceCounterparties(active, deleted []models.Counterparty) {
	s.mu.Lock()
	s.counterparties.replaceAll(active, deleted)
	s.mu.Unlock()
	s.notify(models.EntityCounterparty, OpReload)
}

func (s *Store) TombstoneCounterparty(id string, ts models.Tombstone) (models.Counterparty, error) {
	s.mu.Lock()
	c, err := s.counterparties.moveToDeleted(id, ts)
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntityCounterparty, OpDelete, id)
	}
	return c, err
}

func (s *Store) RestoreCounterparty(id string) (models.Counterparty, error) {
	s.mu.Lock()
	c, err := s.counterparties.moveToActive(id)
	s.mu.Unlock()
	if err == nil {
		s.notify(models.EntityCounterparty, OpRestore, id)
	}
	return c, err
}

// NewTombstone stamps a deletion by actorID at now.
func NewTombstone(actorID string, now time.Time) models.Tombstone {
	return models.Tombstone{DeletedAt: now, DeletedBy: actorID}
}
