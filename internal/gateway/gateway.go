// Package gateway defines the boundary between the local store and the remote
// persistence service: per-entity CRUD with soft delete, sprint activation,
// the realtime change channel, the error taxonomy every implementation maps
// its failures into, and the retry policy the engine wraps calls in.
package gateway

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/akyairhashvil/sprintboard/internal/gateway Gateway,TaskGateway,SprintGateway,TeamMemberGateway,CounterpartyGateway

import (
	"context"
	"encoding/json"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

// Filter narrows a List call. IsDeleted nil lists the active partition.
type Filter struct {
	IsDeleted  *bool
	Sprint     string
	DesignerID string
	Limit      int
}

// Collection is the contract shared by every synchronized entity. T is the
// entity and P its partial update.
type Collection[T any, P any] interface {
	List(ctx context.Context, f Filter) ([]T, error)
	// ListDeleted returns recently tombstoned entities, newest deletion first.
	ListDeleted(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	SoftDelete(ctx context.Context, id, actorID string) error
	Restore(ctx context.Context, id string) error
	// HardDelete removes the record permanently. Administrative only.
	HardDelete(ctx context.Context, id string) error
}

type TaskGateway interface {
	Collection[models.Task, models.TaskPatch]
}

type SprintGateway interface {
	Collection[models.Sprint, models.SprintPatch]
	// DeactivateAllExcept clears is_active on every sprint other than id.
	DeactivateAllExcept(ctx context.Context, id string) error
}

type TeamMemberGateway interface {
	Collection[models.TeamMember, models.TeamMemberPatch]
}

type CounterpartyGateway interface {
	Collection[models.Counterparty, models.CounterpartyPatch]
}

// SprintActivator is implemented by sprint gateways that can switch the
// active sprint in a single transaction.
type SprintActivator interface {
	ActivateSprint(ctx context.Context, id string) error
}

// Event is one realtime change notification. Record holds the changed row in
// its wire (snake_case) form.
type Event struct {
	EntityType models.EntityType `json:"entity_type"`
	Record     json.RawMessage   `json:"record"`
}

// Collections bundles the four entity collections.
type Collections interface {
	Tasks() TaskGateway
	Sprints() SprintGateway
	TeamMembers() TeamMemberGateway
	Counterparties() CounterpartyGateway
}

// Gateway adds the realtime channel to the collections. An implementation
// is chosen once at construction time.
type Gateway interface {
	Collections
	// Subscribe streams change events until ctx is done.
	Subscribe(ctx context.Context) (<-chan Event, error)
}
