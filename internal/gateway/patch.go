package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

// A PatchRow is the wire form of a partial update: only present keys change,
// and a JSON null clears an optional column.
type PatchRow map[string]any

func TaskPatchToRow(p models.TaskPatch) PatchRow {
	row := PatchRow{}
	if p.Title != nil {
		row["title"] = *p.Title
	}
	if p.Category != nil {
		row["type"] = string(*p.Category)
	}
	if p.Priority != nil {
		row["priority"] = string(*p.Priority)
	}
	if p.Status != nil {
		row["status"] = string(*p.Status)
	}
	if p.Points != nil {
		row["points"] = *p.Points
	}
	if p.Description != nil {
		row["description"] = strPtr(*p.Description)
	}
	if p.Requester != nil {
		row["requester"] = *p.Requester
	}
	if p.Manager != nil {
		row["manager"] = strPtr(*p.Manager)
	}
	if p.Sprint != nil {
		row["sprint"] = strPtr(*p.Sprint)
	}
	if p.ClearDesigner {
		row["designer_id"] = nil
	} else if p.Designer != nil {
		row["designer_id"] = p.Designer.ID
	}
	if p.RequestDate != nil {
		row["request_date"] = dateString(*p.RequestDate)
	}
	if p.DueDate != nil {
		row["due_date"] = datePtr(*p.DueDate)
	}
	if p.DeliveryLink != nil {
		row["delivery_link"] = strPtr(*p.DeliveryLink)
	}
	if p.ClearCompletionDate {
		row["completion_date"] = nil
	} else if p.CompletionDate != nil {
		row["completion_date"] = dateString(*p.CompletionDate)
	}
	if p.ReferenceLinks != nil {
		row["reference_links"] = nonNil(*p.ReferenceLinks)
	}
	if p.ReferenceImages != nil {
		row["reference_images"] = nonNil(*p.ReferenceImages)
	}
	return row
}

type rawPatch map[string]json.RawMessage

func (r rawPatch) has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r rawPatch) null(key string) bool {
	v, ok := r[key]
	return ok && string(v) == "null"
}

func (r rawPatch) str(key string) (*string, error) {
	v, ok := r[key]
	if !ok {
		return nil, nil
	}
	if string(v) == "null" {
		s := ""
		return &s, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &s, nil
}

func (r rawPatch) strings(key string) (*[]string, error) {
	v, ok := r[key]
	if !ok {
		return nil, nil
	}
	out := []string{}
	if string(v) != "null" {
		if err := json.Unmarshal(v, &out); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return &out, nil
}

// TaskPatchFromRow decodes a task PATCH body. designer_id is returned as a
// designer stub holding only the id; callers resolve the rest.
func TaskPatchFromRow(data []byte) (models.TaskPatch, error) {
	var r rawPatch
	if err := json.Unmarshal(data, &r); err != nil {
		return models.TaskPatch{}, err
	}
	var (
		p   models.TaskPatch
		err error
	)
	if p.Title, err = r.str("title"); err != nil {
		return p, err
	}
	if v, err := r.str("type"); err != nil {
		return p, err
	} else if v != nil {
		c := models.Category(*v)
		p.Category = &c
	}
	if v, err := r.str("priority"); err != nil {
		return p, err
	} else if v != nil {
		pr := models.Priority(*v)
		p.Priority = &pr
	}
	if v, err := r.str("status"); err != nil {
		return p, err
	} else if v != nil {
		s := models.Status(*v)
		p.Status = &s
	}
	if r.has("points") {
		var pts int
		if err := json.Unmarshal(r["points"], &pts); err != nil {
			return p, fmt.Errorf("points: %w", err)
		}
		p.Points = &pts
	}
	if p.Description, err = r.str("description"); err != nil {
		return p, err
	}
	if p.Requester, err = r.str("requester"); err != nil {
		return p, err
	}
	if p.Manager, err = r.str("manager"); err != nil {
		return p, err
	}
	if p.Sprint, err = r.str("sprint"); err != nil {
		return p, err
	}
	if r.null("designer_id") {
		p.ClearDesigner = true
	} else if v, err := r.str("designer_id"); err != nil {
		return p, err
	} else if v != nil {
		if *v == "" {
			p.ClearDesigner = true
		} else {
			p.Designer = &models.TeamMember{ID: *v}
		}
	}
	if v, err := r.str("request_date"); err != nil {
		return p, err
	} else if v != nil {
		d, err := parseDate("request_date", *v)
		if err != nil {
			return p, err
		}
		p.RequestDate = &d
	}
	if v, err := r.str("due_date"); err != nil {
		return p, err
	} else if v != nil {
		d, err := parseDate("due_date", *v)
		if err != nil {
			return p, err
		}
		p.DueDate = &d
	}
	if p.DeliveryLink, err = r.str("delivery_link"); err != nil {
		return p, err
	}
	if r.null("completion_date") {
		p.ClearCompletionDate = true
	} else if v, err := r.str("completion_date"); err != nil {
		return p, err
	} else if v != nil {
		if *v == "" {
			p.ClearCompletionDate = true
		} else {
			d, err := parseDate("completion_date", *v)
			if err != nil {
				return p, err
			}
			p.CompletionDate = &d
		}
	}
	if p.ReferenceLinks, err = r.strings("reference_links"); err != nil {
		return p, err
	}
	if p.ReferenceImages, err = r.strings("reference_images"); err != nil {
		return p, err
	}
	return p, nil
}

func SprintPatchToRow(p models.SprintPatch) PatchRow {
	row := PatchRow{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.StartDate != nil {
		row["start_date"] = dateString(*p.StartDate)
	}
	if p.EndDate != nil {
		row["end_date"] = dateString(*p.EndDate)
	}
	if p.IsActive != nil {
		row["is_active"] = *p.IsActive
	}
	return row
}

func SprintPatchFromRow(data []byte) (models.SprintPatch, error) {
	var r rawPatch
	if err := json.Unmarshal(data, &r); err != nil {
		return models.SprintPatch{}, err
	}
	var (
		p   models.SprintPatch
		err error
	)
	if p.Name, err = r.str("name"); err != nil {
		return p, err
	}
	if v, err := r.str("start_date"); err != nil {
		return p, err
	} else if v != nil {
		d, err := parseDate("start_date", *v)
		if err != nil {
			return p, err
		}
		p.StartDate = &d
	}
	if v, err := r.str("end_date"); err != nil {
		return p, err
	} else if v != nil {
		d, err := parseDate("end_date", *v)
		if err != nil {
			return p, err
		}
		p.EndDate = &d
	}
	if r.has("is_active") {
		var active bool
		if err := json.Unmarshal(r["is_active"], &active); err != nil {
			return p, fmt.Errorf("is_active: %w", err)
		}
		p.IsActive = &active
	}
	return p, nil
}

func TeamMemberPatchToRow(p models.TeamMemberPatch) PatchRow {
	row := PatchRow{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.Avatar != nil {
		row["avatar"] = strPtr(*p.Avatar)
	}
	if p.Email != nil {
		row["email"] = strPtr(*p.Email)
	}
	if p.Role != nil {
		row["role"] = strPtr(string(*p.Role))
	}
	return row
}

func TeamMemberPatchFromRow(data []byte) (models.TeamMemberPatch, error) {
	var r rawPatch
	if err := json.Unmarshal(data, &r); err != nil {
		return models.TeamMemberPatch{}, err
	}
	var (
		p   models.TeamMemberPatch
		err error
	)
	if p.Name, err = r.str("name"); err != nil {
		return p, err
	}
	if p.Avatar, err = r.str("avatar"); err != nil {
		return p, err
	}
	if p.Email, err = r.str("email"); err != nil {
		return p, err
	}
	if v, err := r.str("role"); err != nil {
		return p, err
	} else if v != nil {
		role := models.Role(*v)
		p.Role = &role
	}
	return p, nil
}

func CounterpartyPatchToRow(p models.CounterpartyPatch) PatchRow {
	row := PatchRow{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.Avatar != nil {
		row["avatar"] = strPtr(*p.Avatar)
	}
	if p.Bio != nil {
		row["bio"] = strPtr(*p.Bio)
	}
	if p.Email != nil {
		row["email"] = strPtr(*p.Email)
	}
	return row
}

func CounterpartyPatchFromRow(data []byte) (models.CounterpartyPatch, error) {
	var r rawPatch
	if err := json.Unmarshal(data, &r); err != nil {
		return models.CounterpartyPatch{}, err
	}
	var (
		p   models.CounterpartyPatch
		err error
	)
	if p.Name, err = r.str("name"); err != nil {
		return p, err
	}
	if p.Avatar, err = r.str("avatar"); err != nil {
		return p, err
	}
	if p.Bio, err = r.str("bio"); err != nil {
		return p, err
	}
	if p.Email, err = r.str("email"); err != nil {
		return p, err
	}
	return p, nil
}
