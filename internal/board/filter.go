package board

import (
	"strings"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// TaskFilter narrows the board. Empty fields match everything.
type TaskFilter struct {
	Query      string
	DesignerID string
	Designer   string
	Requester  string
	Category   models.Category
	Priority   models.Priority
	Status     models.Status
	Sprint     string
	From       time.Time
	To         time.Time
}

// ParseFilter reads a search box string such as
// `designer:Mila sprint:"Sprint 24" logo` into a filter. Unknown categories,
// priorities and statuses are kept as free text.
func ParseFilter(query string) TaskFilter {
	sq := util.ParseSearchQuery(query)
	f := TaskFilter{}
	text := sq.Text
	if len(sq.Designer) > 0 {
		f.Designer = sq.Designer[0]
	}
	if len(sq.Requester) > 0 {
		f.Requester = sq.Requester[0]
	}
	if len(sq.Sprint) > 0 {
		f.Sprint = sq.Sprint[0]
	}
	if len(sq.Type) > 0 {
		if c := matchCategory(sq.Type[0]); c != "" {
			f.Category = c
		} else {
			text = append(text, sq.Type[0])
		}
	}
	if len(sq.Priority) > 0 {
		if p := models.Priority(titleCase(sq.Priority[0])); p.Valid() {
			f.Priority = p
		} else {
			text = append(text, sq.Priority[0])
		}
	}
	if len(sq.Status) > 0 {
		if s := matchStatus(sq.Status[0]); s != "" {
			f.Status = s
		} else {
			text = append(text, sq.Status[0])
		}
	}
	f.Query = strings.Join(text, " ")
	return f
}

// Filter returns the tasks matching every populated field of f.
func Filter(tasks []models.Task, f TaskFilter) []models.Task {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	var out []models.Task
	for _, t := range tasks {
		if q != "" && !matchesText(t, q) {
			continue
		}
		if f.DesignerID != "" && (t.Designer == nil || t.Designer.ID != f.DesignerID) {
			continue
		}
		if f.Designer != "" && (t.Designer == nil || !strings.EqualFold(t.Designer.Name, f.Designer)) {
			continue
		}
		if f.Requester != "" && !strings.EqualFold(t.Requester, f.Requester) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Sprint != "" && !strings.EqualFold(t.Sprint, f.Sprint) {
			continue
		}
		if !f.From.IsZero() || !f.To.IsZero() {
			d := t.DueDate
			if d.IsZero() {
				d = t.RequestDate
			}
			if !f.From.IsZero() && d.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && d.After(f.To) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func matchesText(t models.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.Requester), q) {
		return true
	}
	return t.Designer != nil && strings.Contains(strings.ToLower(t.Designer.Name), q)
}

func matchCategory(v string) models.Category {
	for _, c := range models.Categories {
		if strings.EqualFold(string(c), v) || strings.EqualFold(strings.ReplaceAll(string(c), " ", ""), v) {
			return c
		}
	}
	return ""
}

func matchStatus(v string) models.Status {
	for _, s := range models.Statuses {
		if strings.EqualFold(string(s), v) || strings.EqualFold(strings.ReplaceAll(string(s), " ", ""), v) {
			return s
		}
	}
	return ""
}

func titleCase(v string) string {
	if v == "" {
		return v
	}
	v = strings.ToLower(v)
	return strings.ToUpper(v[:1]) + v[1:]
}
