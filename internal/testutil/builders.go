package testutil

import (
	"time"

	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// TaskBuilder provides fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTask() *TaskBuilder {
	today := models.Day(time.Now())
	return &TaskBuilder{
		task: models.Task{
			Title:       "Test Task",
			Category:    models.CategoryOther,
			Priority:    models.PriorityNormal,
			Status:      models.StatusTodo,
			Points:      1,
			Requester:   "Unknown",
			Manager:     "Unassigned",
			RequestDate: today,
			DueDate:     today.AddDate(0, 0, 7),
			CreatedAt:   time.Now(),
		},
	}
}

func (b *TaskBuilder) WithID(id string) *TaskBuilder {
	b.task.ID = id
	return b
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.task.Title = title
	return b
}

func (b *TaskBuilder) WithStatus(s models.Status) *TaskBuilder {
	b.task.Status = s
	return b
}

func (b *TaskBuilder) WithPriority(p models.Priority) *TaskBuilder {
	b.task.Priority = p
	return b
}

func (b *TaskBuilder) WithPoints(n int) *TaskBuilder {
	b.task.Points = n
	return b
}

func (b *TaskBuilder) WithSprint(name string) *TaskBuilder {
	b.task.Sprint = name
	return b
}

func (b *TaskBuilder) WithDesigner(m models.TeamMember) *TaskBuilder {
	b.task.Designer = &m
	return b
}

// Done marks the task Done and completed on day.
func (b *TaskBuilder) Done(day time.Time) *TaskBuilder {
	b.task.Status = models.StatusDone
	b.task.CompletionDate = util.Ptr(models.Day(day))
	return b
}

func (b *TaskBuilder) Deleted(by string, at time.Time) *TaskBuilder {
	b.task.Tombstone = &models.Tombstone{DeletedAt: at, DeletedBy: by}
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task.Clone()
}

// SprintBuilder provides fluent API for creating test sprints.
type SprintBuilder struct {
	sprint models.Sprint
}

func NewSprint() *SprintBuilder {
	start := models.Day(time.Now())
	return &SprintBuilder{
		sprint: models.Sprint{
			Name:      "Sprint 1",
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 6),
			CreatedAt: time.Now(),
		},
	}
}

func (b *SprintBuilder) WithID(id string) *SprintBuilder {
	b.sprint.ID = id
	return b
}

func (b *SprintBuilder) WithName(name string) *SprintBuilder {
	b.sprint.Name = name
	return b
}

// Starting sets a one-week range beginning on start.
func (b *SprintBuilder) Starting(start time.Time) *SprintBuilder {
	b.sprint.StartDate = models.Day(start)
	b.sprint.EndDate = b.sprint.StartDate.AddDate(0, 0, 6)
	return b
}

func (b *SprintBuilder) Active() *SprintBuilder {
	b.sprint.IsActive = true
	return b
}

func (b *SprintBuilder) Build() models.Sprint {
	return b.sprint.Clone()
}

// NewDesigner returns a designer team member.
func NewDesigner(id, name string) models.TeamMember {
	return models.TeamMember{ID: id, Name: name, Role: models.RoleDesigner}
}
