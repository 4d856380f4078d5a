package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

// SeedDemo fills an empty backend with a small demo team, three weekly
// sprints around now (the middle one active) and a handful of tasks. It does
// nothing if any sprint already exists.
func SeedDemo(ctx context.Context, gw Collections, now time.Time) error {
	existing, err := gw.Sprints().List(ctx, Filter{Limit: 1})
	if err != nil {
		return fmt.Errorf("seed: list sprints: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	var designers []models.TeamMember
	for _, name := range []string{"Mila", "Kathe"} {
		m, err := gw.TeamMembers().Create(ctx, models.TeamMember{
			Name:   name,
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + name,
			Role:   models.RoleDesigner,
		})
		if err != nil {
			return fmt.Errorf("seed: create team member %s: %w", name, err)
		}
		designers = append(designers, m)
	}
	for _, name := range []string{"Milher", "Harry", "Jesus"} {
		if _, err := gw.Counterparties().Create(ctx, models.Counterparty{Name: name}); err != nil {
			return fmt.Errorf("seed: create counterparty %s: %w", name, err)
		}
	}

	start := models.Day(now).AddDate(0, 0, -7)
	var active models.Sprint
	for i, name := range []string{"Sprint 23", "Sprint 24", "Sprint 25"} {
		s := models.Sprint{
			Name:      name,
			StartDate: start.AddDate(0, 0, 7*i),
			EndDate:   start.AddDate(0, 0, 7*i+6),
			IsActive:  i == 1,
		}
		created, err := gw.Sprints().Create(ctx, s)
		if err != nil {
			return fmt.Errorf("seed: create sprint %s: %w", name, err)
		}
		if s.IsActive {
			active = created
		}
	}
	if err := gw.Sprints().DeactivateAllExcept(ctx, active.ID); err != nil {
		return fmt.Errorf("seed: activate %s: %w", active.Name, err)
	}

	today := models.Day(now)
	completed := today.AddDate(0, 0, -2)
	tasks := []models.Task{
		{Title: "Seguro Auto Texas", Category: models.CategorySearchArbitrage, Priority: models.PriorityHigh, Status: models.StatusInProgress, Points: 5, Designer: &designers[0], Requester: "Milher", Manager: "Carlos M.", Sprint: "Sprint 24", Description: "High CTR focus for Texas demographic.", ReferenceLinks: []string{"https://example.com/competitor1"}},
		{Title: "Logotipo Agencia", Category: models.CategoryBranding, Priority: models.PriorityNormal, Status: models.StatusReview, Points: 3, Designer: &designers[1], Requester: "Harry", Manager: "Sarah Jenkins", Sprint: "Sprint 24", Description: "Minimalist rebrand exploration. Flat colors only."},
		{Title: "Skin Care Q4", Category: models.CategorySocialMedia, Priority: models.PriorityNormal, Status: models.StatusDone, Points: 1, Designer: &designers[0], Requester: "Jesus", Manager: "David Lee", Sprint: "Sprint 23", CompletionDate: &completed},
		{Title: "Landing Page Hero", Category: models.CategorySearchArbitrage, Priority: models.PriorityNormal, Status: models.StatusTodo, Points: 2, Requester: "Milher", Sprint: "Sprint 24"},
	}
	for i, t := range tasks {
		t.RequestDate = today.AddDate(0, 0, -i-1)
		t.DueDate = t.RequestDate.AddDate(0, 0, 7)
		if _, err := gw.Tasks().Create(ctx, t); err != nil {
			return fmt.Errorf("seed: create task %q: %w", t.Title, err)
		}
	}
	return nil
}
