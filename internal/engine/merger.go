package engine

import (
	"context"
	"log/slog"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/store"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// Merger applies realtime change events from the gateway to the store. The
// last event observed wins over any local value.
type Merger struct {
	store  *store.Store
	gw     gateway.Gateway
	logger *slog.Logger
}

func NewMerger(s *store.Store, gw gateway.Gateway, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = util.DiscardLogger()
	}
	return &Merger{store: s, gw: gw, logger: logger}
}

// Run subscribes and merges events until ctx is done or the channel closes.
func (m *Merger) Run(ctx context.Context) error {
	events, err := m.gw.Subscribe(ctx)
	if err != nil {
		return err
	}
	m.logger.Debug("realtime merger started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				m.logger.Debug("realtime channel closed")
				return nil
			}
			m.Apply(ev)
		}
	}
}

// Apply merges one event and reports whether it changed the store. Malformed
// records and entity types without a merge rule are logged and dropped.
func (m *Merger) Apply(ev gateway.Event) bool {
	switch ev.EntityType {
	case models.EntityTeamMember:
		member, err := gateway.DecodeTeamMember(ev.Record)
		if err != nil {
			m.logger.Warn("dropping malformed realtime event",
				slog.String("entity", string(ev.EntityType)),
				slog.String("error", err.Error()))
			return false
		}
		tasks := m.store.MergeTeamMember(member)
		m.logger.Debug("merged team member",
			slog.String("id", member.ID),
			slog.Int("tasks_rewritten", len(tasks)))
		return true
	default:
		m.logger.Debug("ignoring realtime event", slog.String("entity", string(ev.EntityType)))
		return false
	}
}
