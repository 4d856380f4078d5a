package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
)

// BoardExport is a full dump of the service tables, deleted rows included,
// in wire form.
type BoardExport struct {
	Version        string                    `json:"version"`
	ExportedAt     time.Time                 `json:"exported_at"`
	Tasks          []gateway.TaskRow         `json:"tasks"`
	Sprints        []gateway.SprintRow       `json:"sprints"`
	TeamMembers    []gateway.TeamMemberRow   `json:"team_members"`
	Counterparties []gateway.CounterpartyRow `json:"counterparties"`
}

// Export serialises every table to indented JSON.
func (d *Database) Export(ctx context.Context) ([]byte, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	version, _ := d.GetSetting(ctx, "schema_version")
	out := BoardExport{Version: version, ExportedAt: d.now().UTC()}

	tasks, err := d.tasks.query(ctx, d.DB, newSelectQuery("tasks", taskColumns).OrderBy("created_at ASC"))
	if err != nil {
		return nil, wrapErr("export", "task", "", err)
	}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, gateway.TaskToRow(t))
	}

	sprints, err := d.sprints.query(ctx, d.DB, newSelectQuery("sprints", sprintSchema.columns).OrderBy("start_date ASC"))
	if err != nil {
		return nil, wrapErr("export", "sprint", "", err)
	}
	for _, s := range sprints {
		out.Sprints = append(out.Sprints, gateway.SprintToRow(s))
	}

	members, err := d.members.query(ctx, d.DB, newSelectQuery("team_members", memberColumns).OrderBy("name ASC"))
	if err != nil {
		return nil, wrapErr("export", "teammember", "", err)
	}
	for _, m := range members {
		out.TeamMembers = append(out.TeamMembers, gateway.TeamMemberToRow(m))
	}

	counterparties, err := d.counterparties.query(ctx, d.DB, newSelectQuery("counterparties", counterpartySchema.columns).OrderBy("name ASC"))
	if err != nil {
		return nil, wrapErr("export", "counterparty", "", err)
	}
	for _, c := range counterparties {
		out.Counterparties = append(out.Counterparties, gateway.CounterpartyToRow(c))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}
