// Package remote is the networked Gateway: a JSON-over-HTTP client of the
// sprintboard service with a server-sent-events realtime channel.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// Collection paths under /api.
const (
	PathTasks          = "tasks"
	PathSprints        = "sprints"
	PathTeamMembers    = "team_members"
	PathCounterparties = "counterparties"
	PathRealtime       = "realtime"
)

type Client struct {
	baseURL string
	http    *http.Client
	// stream has no timeout; it carries the long-lived realtime connection.
	stream *http.Client
	logger *slog.Logger

	tasks          *resource[models.Task, models.TaskPatch, gateway.TaskRow]
	sprints        *sprintResource
	members        *resource[models.TeamMember, models.TeamMemberPatch, gateway.TeamMemberRow]
	counterparties *resource[models.Counterparty, models.CounterpartyPatch, gateway.CounterpartyRow]
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c; cl.stream = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) { cl.logger = logger }
}

// New returns a client of the service at baseURL (for example
// http://localhost:8080).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		stream:  &http.Client{},
		logger:  util.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.tasks = &resource[models.Task, models.TaskPatch, gateway.TaskRow]{
		c: c, path: PathTasks, entity: models.EntityTask,
		toRow:    gateway.TaskToRow,
		fromRow:  gateway.TaskFromRow,
		patchRow: gateway.TaskPatchToRow,
	}
	c.sprints = &sprintResource{resource: &resource[models.Sprint, models.SprintPatch, gateway.SprintRow]{
		c: c, path: PathSprints, entity: models.EntitySprint,
		toRow:    gateway.SprintToRow,
		fromRow:  gateway.SprintFromRow,
		patchRow: gateway.SprintPatchToRow,
	}}
	c.members = &resource[models.TeamMember, models.TeamMemberPatch, gateway.TeamMemberRow]{
		c: c, path: PathTeamMembers, entity: models.EntityTeamMember,
		toRow:    gateway.TeamMemberToRow,
		fromRow:  infallible(gateway.TeamMemberFromRow),
		patchRow: gateway.TeamMemberPatchToRow,
	}
	c.counterparties = &resource[models.Counterparty, models.CounterpartyPatch, gateway.CounterpartyRow]{
		c: c, path: PathCounterparties, entity: models.EntityCounterparty,
		toRow:    gateway.CounterpartyToRow,
		fromRow:  infallible(gateway.CounterpartyFromRow),
		patchRow: gateway.CounterpartyPatchToRow,
	}
	return c
}

func (c *Client) Tasks() gateway.TaskGateway                 { return c.tasks }
func (c *Client) Sprints() gateway.SprintGateway             { return c.sprints }
func (c *Client) TeamMembers() gateway.TeamMemberGateway     { return c.members }
func (c *Client) Counterparties() gateway.CounterpartyGateway { return c.counterparties }

func infallible[R any, T any](fn func(R) T) func(R) (T, error) {
	return func(r R) (T, error) { return fn(r), nil }
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends one request. body is JSON-encoded when non-nil and out, when
// non-nil, receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, op string, entity models.EntityType, id string) error {
	u := c.baseURL + "/api/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &gateway.Error{Op: op, Entity: entity, ID: id, Kind: gateway.KindValidation, Err: err}
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &gateway.Error{Op: op, Entity: entity, ID: id, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &gateway.Error{Op: op, Entity: entity, ID: id, Kind: gateway.KindTransient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		cause := errors.New(msg)
		if resp.StatusCode == http.StatusNotFound {
			cause = fmt.Errorf("%w: %s", gateway.ErrNotFound, msg)
		}
		return &gateway.Error{
			Op:     op,
			Entity: entity,
			ID:     id,
			Kind:   gateway.KindForStatus(resp.StatusCode),
			Status: resp.StatusCode,
			Err:    cause,
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &gateway.Error{Op: op, Entity: entity, ID: id, Kind: gateway.KindTransient, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
