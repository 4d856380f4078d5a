// Package engine applies every mutation to the local store first and then to
// the remote gateway. A failed remote call is recorded in the engine's error
// slot and the optimistic local change is left in place.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// SyncError describes a failed engine operation.
type SyncError struct {
	Op     string
	Entity models.EntityType
	ID     string
	Err    error
}

func (e *SyncError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

type Engine struct {
	store   *store.Store
	gw      gateway.Gateway
	policy  gateway.Policy
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
	actorID string

	mu      sync.Mutex
	err     error
	retry   func(context.Context) error
	loading bool
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithPolicy(p gateway.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithActor sets the actor recorded as deleted_by when callers pass none.
func WithActor(id string) Option {
	return func(e *Engine) { e.actorID = id }
}

// WithIDGenerator replaces the generator of local placeholder ids.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

func New(s *store.Store, gw gateway.Gateway, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		gw:      gw,
		policy:  gateway.DefaultPolicy(),
		logger:  util.DiscardLogger(),
		now:     time.Now,
		newID:   uuid.NewString,
		actorID: config.DefaultActorID,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.policy.Logger == nil {
		e.policy.Logger = e.logger
	}
	return e
}

func (e *Engine) Store() *store.Store { return e.store }

// Err returns the most recent failure, or nil.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// ClearErr empties the error slot and forgets the failed intent.
func (e *Engine) ClearErr() {
	e.mu.Lock()
	e.err = nil
	e.retry = nil
	e.mu.Unlock()
}

// Loading reports whether a Load is in progress.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Retry re-issues the intent that produced the current error. It is a no-op
// when the slot is empty.
func (e *Engine) Retry(ctx context.Context) error {
	e.mu.Lock()
	fn := e.retry
	e.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// begin clears the error slot; every intent starts from a clean slot.
func (e *Engine) begin() {
	e.ClearErr()
}

// fail records err in the error slot together with the intent that can be
// re-issued, and returns the wrapped error.
func (e *Engine) fail(op string, entity models.EntityType, id string, err error, retry func(context.Context) error) error {
	syncErr := &SyncError{Op: op, Entity: entity, ID: id, Err: err}
	e.mu.Lock()
	e.err = syncErr
	e.retry = retry
	e.mu.Unlock()
	e.logger.Error("remote sync failed",
		slog.String("op", op),
		slog.String("entity", string(entity)),
		slog.String("id", id),
		slog.String("error", err.Error()))
	return syncErr
}

// reject returns a local precondition failure. The error slot is not touched.
func reject(op string, entity models.EntityType, id string, err error) error {
	return &SyncError{Op: op, Entity: entity, ID: id, Err: err}
}

func (e *Engine) localID() string {
	return config.LocalIDPrefix + e.newID()
}

func (e *Engine) tombstone(actorID string) models.Tombstone {
	if actorID == "" {
		actorID = e.actorID
	}
	return store.NewTombstone(actorID, e.now())
}

type loadResult struct {
	tasks, deletedTasks                   []models.Task
	sprints, deletedSprints               []models.Sprint
	members, deletedMembers               []models.TeamMember
	counterparties, deletedCounterparties []models.Counterparty
}

// Load fetches every collection (active and recently deleted) and replaces
// the store. Nothing is replaced unless all fetches succeed. Records still
// waiting for their create to be confirmed are kept in every collection.
func (e *Engine) Load(ctx context.Context) error {
	e.begin()
	e.mu.Lock()
	e.loading = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.loading = false
		e.mu.Unlock()
	}()

	var (
		res  loadResult
		wg   sync.WaitGroup
		errs = make([]error, 8)
	)
	run := func(i int, op string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = gateway.Retry(ctx, e.policy, op, fn)
		}()
	}
	run(0, "list tasks", func(ctx context.Context) (err error) {
		res.tasks, err = e.gw.Tasks().List(ctx, gateway.Filter{Limit: config.ActiveListLimit})
		return err
	})
	run(1, "list deleted tasks", func(ctx context.Context) (err error) {
		res.deletedTasks, err = e.gw.Tasks().ListDeleted(ctx)
		return err
	})
	run(2, "list sprints", func(ctx context.Context) (err error) {
		res.sprints, err = e.gw.Sprints().List(ctx, gateway.Filter{})
		return err
	})
	run(3, "list deleted sprints", func(ctx context.Context) (err error) {
		res.deletedSprints, err = e.gw.Sprints().ListDeleted(ctx)
		return err
	})
	run(4, "list team members", func(ctx context.Context) (err error) {
		res.members, err = e.gw.TeamMembers().List(ctx, gateway.Filter{})
		return err
	})
	run(5, "list deleted team members", func(ctx context.Context) (err error) {
		res.deletedMembers, err = e.gw.TeamMembers().ListDeleted(ctx)
		return err
	})
	run(6, "list counterparties", func(ctx context.Context) (err error) {
		res.counterparties, err = e.gw.Counterparties().List(ctx, gateway.Filter{})
		return err
	})
	run(7, "list deleted counterparties", func(ctx context.Context) (err error) {
		res.deletedCounterparties, err = e.gw.Counterparties().ListDeleted(ctx)
		return err
	})
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return e.fail("load", "all", "", err, e.Load)
	}

	held := e.heldPlaceholders()
	e.store.ReplaceTeamMembers(res.members, res.deletedMembers)
	e.store.ReplaceCounterparties(res.counterparties, res.deletedCounterparties)
	e.store.ReplaceSprints(res.sprints, res.deletedSprints)
	e.store.ReplaceTasks(res.tasks, res.deletedTasks)
	held.restore(e.store)
	e.logger.Info("store loaded",
		slog.Int("tasks", len(res.tasks)),
		slog.Int("sprints", len(res.sprints)),
		slog.Int("team_members", len(res.members)),
		slog.Int("counterparties", len(res.counterparties)))
	return nil
}
