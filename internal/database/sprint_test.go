package database

import (
	"context"
	"errors"
	"testing"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

func createSprints(t *testing.T, ctx context.Context, db *Database, names ...string) []models.Sprint {
	t.Helper()
	var out []models.Sprint
	start := models.Day(testNow.Local())
	for i, name := range names {
		s, err := db.Sprints().Create(ctx, models.Sprint{
			Name:      name,
			StartDate: start.AddDate(0, 0, 7*i),
			EndDate:   start.AddDate(0, 0, 7*i+6),
		})
		if err != nil {
			t.Fatalf("Create sprint %s failed: %v", name, err)
		}
		out = append(out, s)
	}
	return out
}

func activeSprintIDs(t *testing.T, ctx context.Context, db *Database) []string {
	t.Helper()
	sprints, err := db.Sprints().List(ctx, gateway.Filter{})
	if err != nil {
		t.Fatalf("List sprints failed: %v", err)
	}
	var ids []string
	for _, s := range sprints {
		if s.IsActive {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestActivateSprintIsExclusive(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	sprints := createSprints(t, ctx, db, "A", "B", "C")
	activator := db.Sprints().(gateway.SprintActivator)

	if err := activator.ActivateSprint(ctx, sprints[0].ID); err != nil {
		t.Fatalf("ActivateSprint failed: %v", err)
	}
	if err := activator.ActivateSprint(ctx, sprints[2].ID); err != nil {
		t.Fatalf("ActivateSprint failed: %v", err)
	}
	ids := activeSprintIDs(t, ctx, db)
	if len(ids) != 1 || ids[0] != sprints[2].ID {
		t.Fatalf("expected only C active, got %v", ids)
	}
}

func TestActivateSprintMissingOrDeleted(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	sprints := createSprints(t, ctx, db, "A", "B")
	activator := db.Sprints().(gateway.SprintActivator)
	if err := activator.ActivateSprint(ctx, sprints[0].ID); err != nil {
		t.Fatalf("ActivateSprint failed: %v", err)
	}

	if err := activator.ActivateSprint(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := db.Sprints().SoftDelete(ctx, sprints[1].ID, "u"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if err := activator.ActivateSprint(ctx, sprints[1].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted sprint, got %v", err)
	}
	if ids := activeSprintIDs(t, ctx, db); len(ids) != 1 || ids[0] != sprints[0].ID {
		t.Fatalf("failed activation changed the active sprint: %v", ids)
	}
}

func TestSecondActiveSprintConflicts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	sprints := createSprints(t, ctx, db, "A", "B")
	if _, err := db.Sprints().Update(ctx, sprints[0].ID, models.SprintPatch{IsActive: util.Ptr(true)}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	_, err := db.Sprints().Update(ctx, sprints[1].ID, models.SprintPatch{IsActive: util.Ptr(true)})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if gateway.KindOf(err) != gateway.KindConflict {
		t.Fatalf("KindOf = %v", gateway.KindOf(err))
	}

	// The two-step switch goes through.
	if err := db.Sprints().DeactivateAllExcept(ctx, sprints[1].ID); err != nil {
		t.Fatalf("DeactivateAllExcept failed: %v", err)
	}
	if ids := activeSprintIDs(t, ctx, db); len(ids) != 0 {
		t.Fatalf("expected no active sprint between steps, got %v", ids)
	}
	if _, err := db.Sprints().Update(ctx, sprints[1].ID, models.SprintPatch{IsActive: util.Ptr(true)}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if ids := activeSprintIDs(t, ctx, db); len(ids) != 1 || ids[0] != sprints[1].ID {
		t.Fatalf("expected B active, got %v", ids)
	}
}

func TestRestoreActiveSprintWhenTaken(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	sprints := createSprints(t, ctx, db, "A", "B")
	activator := db.Sprints().(gateway.SprintActivator)
	if err := activator.ActivateSprint(ctx, sprints[0].ID); err != nil {
		t.Fatalf("ActivateSprint failed: %v", err)
	}
	if err := db.Sprints().SoftDelete(ctx, sprints[0].ID, "u"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	// A deleted sprint keeps its flag and does not count against the index.
	if _, err := db.Sprints().Update(ctx, sprints[1].ID, models.SprintPatch{IsActive: util.Ptr(true)}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := db.Sprints().Restore(ctx, sprints[0].ID); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if ids := activeSprintIDs(t, ctx, db); len(ids) != 1 || ids[0] != sprints[1].ID {
		t.Fatalf("restore must not create a second active sprint, got %v", ids)
	}
}

func TestSprintsOrderedByStartDesc(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	createSprints(t, ctx, db, "Sprint 23", "Sprint 24", "Sprint 25")
	sprints, err := db.Sprints().List(ctx, gateway.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if sprints[0].Name != "Sprint 25" || sprints[2].Name != "Sprint 23" {
		t.Fatalf("unexpected order: %+v", sprints)
	}
}
