package board

import (
	"sort"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

// Segment splits an already-filtered task list into the tasks shown on the
// board and the completed tasks folded into the archive. Lists at or below
// config.ArchiveThreshold are shown whole. Larger lists are walked newest
// request first: every unfinished task stays visible, and only the first
// config.VisibleDoneLimit Done tasks do. The input slice is not modified.
func Segment(tasks []models.Task) (visible, archived []models.Task) {
	if len(tasks) <= config.ArchiveThreshold {
		return append([]models.Task(nil), tasks...), nil
	}

	sorted := append([]models.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RequestDate.After(sorted[j].RequestDate)
	})

	visible = make([]models.Task, 0, len(sorted))
	done := 0
	for _, t := range sorted {
		if t.Status != models.StatusDone {
			visible = append(visible, t)
			continue
		}
		if done < config.VisibleDoneLimit {
			visible = append(visible, t)
			done++
			continue
		}
		archived = append(archived, t)
	}
	return visible, archived
}

// Column returns the visible tasks in one status column. Unfinished columns
// are ordered Critical, High, Normal; ties and the Done column keep input
// order.
func Column(tasks []models.Task, status models.Status) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	if status != models.StatusDone {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	}
	return out
}
