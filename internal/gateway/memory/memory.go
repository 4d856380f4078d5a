// Package memory is an in-process Gateway. It backs local-only mode and
// tests, and follows the same soft-delete and activation rules as the
// networked service.
package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// FaultFunc is consulted before every call; a non-nil error fails the call.
type FaultFunc func(entity models.EntityType, op string) error

type Gateway struct {
	mu    sync.Mutex
	now   func() time.Time
	fault FaultFunc

	tasks          *table[models.Task, models.TaskPatch]
	sprints        *sprintTable
	members        *table[models.TeamMember, models.TeamMemberPatch]
	counterparties *table[models.Counterparty, models.CounterpartyPatch]

	subMu   sync.Mutex
	subs    map[int]chan gateway.Event
	nextSub int
	logger  *slog.Logger
}

type Option func(*Gateway)

// WithClock replaces time.Now for server-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

func New(opts ...Option) *Gateway {
	g := &Gateway{
		now:    time.Now,
		subs:   make(map[int]chan gateway.Event),
		logger: util.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.tasks = newTable(g, models.EntityTask, taskSchema)
	g.tasks.resolve = g.resolveDesigner
	g.sprints = &sprintTable{table: newTable(g, models.EntitySprint, sprintSchema)}
	g.members = newTable(g, models.EntityTeamMember, memberSchema)
	g.members.onWrite = g.publishMember
	g.counterparties = newTable(g, models.EntityCounterparty, counterpartySchema)
	return g
}

func (g *Gateway) Tasks() gateway.TaskGateway                 { return g.tasks }
func (g *Gateway) Sprints() gateway.SprintGateway             { return g.sprints }
func (g *Gateway) TeamMembers() gateway.TeamMemberGateway     { return g.members }
func (g *Gateway) Counterparties() gateway.CounterpartyGateway { return g.counterparties }

// SetFault installs (or with nil, removes) a fault hook.
func (g *Gateway) SetFault(fn FaultFunc) {
	g.mu.Lock()
	g.fault = fn
	g.mu.Unlock()
}

// Subscribe returns a channel of change events that closes when ctx is done.
func (g *Gateway) Subscribe(ctx context.Context) (<-chan gateway.Event, error) {
	ch := make(chan gateway.Event, 64)
	g.subMu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = ch
	g.subMu.Unlock()

	go func() {
		<-ctx.Done()
		g.subMu.Lock()
		delete(g.subs, id)
		g.subMu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// Publish delivers ev to every subscriber. Slow subscribers lose events.
func (g *Gateway) Publish(ev gateway.Event) {
	g.subMu.Lock()
	defer g.subMu.Unlock()
	for _, ch := range g.subs {
		select {
		case ch <- ev:
		default:
			g.logger.Warn("dropping realtime event for slow subscriber", slog.String("entity", string(ev.EntityType)))
		}
	}
}

func (g *Gateway) publishMember(m models.TeamMember) {
	raw, err := json.Marshal(gateway.TeamMemberToRow(m))
	if err != nil {
		util.LogError(g.logger, "encode team member event", err)
		return
	}
	g.Publish(gateway.Event{EntityType: models.EntityTeamMember, Record: raw})
}

// resolveDesigner fills a designer stub from the team member table.
// Called with g.mu held.
func (g *Gateway) resolveDesigner(t models.Task) models.Task {
	if t.Designer == nil {
		return t
	}
	if m, ok := g.members.rows[t.Designer.ID]; ok {
		d := m.Clone()
		d.Tombstone = nil
		t.Designer = &d
	}
	return t
}

func (g *Gateway) checkFault(entity models.EntityType, op string) error {
	if g.fault == nil {
		return nil
	}
	return g.fault(entity, op)
}
