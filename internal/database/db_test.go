package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

var testNow = time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T, ctx context.Context) *Database {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := Open(ctx, dbPath, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := db.Close(); err != nil {
		t.Fatalf("db close failed: %v", err)
	}
	again, err := Open(ctx, db.dbFile)
	if err != nil {
		t.Fatalf("Open second run failed: %v", err)
	}
	defer again.Close()
	if v, ok := again.GetSetting(ctx, "schema_version"); !ok || v != schemaVersion {
		t.Fatalf("schema_version = %q, %v", v, ok)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO counterparties (id, name) VALUES (?, ?)", "c-tx", "Tx"); err != nil {
			return err
		}
		return fmt.Errorf("force rollback")
	})
	if err == nil {
		t.Fatalf("expected error from WithTx")
	}

	var count int
	if err := db.DB.QueryRowContext(ctx, "SELECT COUNT(1) FROM counterparties WHERE id = ?", "c-tx").Scan(&count); err != nil {
		t.Fatalf("query count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to remove counterparty, got count %d", count)
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if _, ok := db.GetSetting(ctx, "missing"); ok {
		t.Fatalf("expected missing setting")
	}
	if err := db.SetSetting(ctx, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := db.SetSetting(ctx, "theme", "light"); err != nil {
		t.Fatalf("SetSetting overwrite failed: %v", err)
	}
	if v, ok := db.GetSetting(ctx, "theme"); !ok || v != "light" {
		t.Fatalf("GetSetting = %q, %v", v, ok)
	}
}

func TestNullableHelpers(t *testing.T) {
	if got := nullableString(""); got.Valid {
		t.Fatalf("expected nullableString(\"\") to be invalid, got valid")
	}
	if got := nullableString("note"); !got.Valid || got.String != "note" {
		t.Fatalf("expected nullableString(\"note\") to be valid, got %+v", got)
	}
	if got := toNullableArg[int](nil); got != nil {
		t.Fatalf("expected toNullableArg(nil) to return nil, got %v", got)
	}
	value := "x"
	if got := toNullableArg(&value); got != "x" {
		t.Fatalf("expected toNullableArg(&x) to return x, got %v", got)
	}
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	parsed, err := parseTime(sql.NullString{String: formatTime(&ts).(string), Valid: true})
	if err != nil || !parsed.Equal(ts) {
		t.Fatalf("time round trip failed: %v %v", parsed, err)
	}
	if got := formatTime(nil); got != nil {
		t.Fatalf("formatTime(nil) = %v", got)
	}
}

func TestClassify(t *testing.T) {
	if !errors.Is(classify(sql.ErrNoRows), ErrNotFound) {
		t.Fatalf("ErrNoRows should map to ErrNotFound")
	}
	err := wrapErr("update", "task", "t1", sql.ErrNoRows)
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.ID != "t1" {
		t.Fatalf("expected OpError, got %v", err)
	}
	if gateway.KindOf(err) != gateway.KindNotFound {
		t.Fatalf("KindOf = %v", gateway.KindOf(err))
	}
	if wrapErr("x", "y", "", nil) != nil {
		t.Fatalf("wrapErr(nil) should be nil")
	}
}

func TestQueryBuilder(t *testing.T) {
	q, args := newSelectQuery("tasks", []string{"id", "title"}).
		WhereDeleted(false).
		Where("sprint = ?", "Sprint 24").
		WhereIn("designer_id", []string{"a", "b"}).
		OrderBy("created_at DESC").
		Limit(10).
		Build()
	want := "SELECT id, title FROM tasks WHERE is_deleted = 0 AND sprint = ? AND designer_id IN (?, ?) ORDER BY created_at DESC LIMIT 10"
	if q != want {
		t.Fatalf("query = %q", q)
	}
	if len(args) != 3 {
		t.Fatalf("args = %v", args)
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t, ctx)
	if err := gateway.SeedDemo(ctx, db, testNow); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	data, err := db.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var export BoardExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if len(export.Tasks) != 4 || len(export.Sprints) != 3 || len(export.TeamMembers) != 2 || len(export.Counterparties) != 3 {
		t.Fatalf("unexpected export sizes: %d %d %d %d",
			len(export.Tasks), len(export.Sprints), len(export.TeamMembers), len(export.Counterparties))
	}
	if export.Version != schemaVersion {
		t.Fatalf("Version = %q", export.Version)
	}
}

func sampleTask(title string) models.Task {
	return models.Task{
		Title:       title,
		Category:    models.CategoryBranding,
		Priority:    models.PriorityNormal,
		Status:      models.StatusTodo,
		Points:      1,
		Requester:   "Harry",
		RequestDate: models.Day(testNow.Local()),
		DueDate:     models.Day(testNow.Local()).AddDate(0, 0, 7),
	}
}
