// Package database is the sqlite persistence of the sprintboard service. It
// implements the gateway collection contract over four tables with
// snake_case columns and is_deleted/deleted_at/deleted_by soft deletion.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

const (
	defaultDBTimeout = 5 * time.Second
	schemaVersion    = "1"
)

type Database struct {
	DB     *sql.DB
	dbFile string
	logger *slog.Logger
	now    func() time.Time

	tasks          *table[models.Task, models.TaskPatch]
	sprints        *sprintTable
	members        *table[models.TeamMember, models.TeamMemberPatch]
	counterparties *table[models.Counterparty, models.CounterpartyPatch]
}

type Option func(*Database)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Database) { d.logger = logger }
}

// WithClock overrides the source of created_at, updated_at and deleted_at.
func WithClock(now func() time.Time) Option {
	return func(d *Database) { d.now = now }
}

// Open opens (creating if needed) the sqlite file at path and migrates it.
func Open(ctx context.Context, path string, opts ...Option) (*Database, error) {
	if path == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite serialises writers; one connection keeps transactions simple.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	d := &Database{DB: conn, dbFile: path, logger: util.DiscardLogger(), now: time.Now}
	for _, opt := range opts {
		opt(d)
	}

	pingCtx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := d.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	d.tasks = newTable(d, taskSchema)
	d.tasks.resolve = d.resolveDesigners
	d.sprints = &sprintTable{table: newTable(d, sprintSchema)}
	d.sprints.beforeRestore = d.sprints.clearActiveIfTaken
	d.members = newTable(d, memberSchema)
	d.counterparties = newTable(d, counterpartySchema)
	return d, nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) Tasks() gateway.TaskGateway                 { return d.tasks }
func (d *Database) Sprints() gateway.SprintGateway             { return d.sprints }
func (d *Database) TeamMembers() gateway.TeamMemberGateway     { return d.members }
func (d *Database) Counterparties() gateway.CounterpartyGateway { return d.counterparties }

// Ping reports whether the database answers.
func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return d.DB.PingContext(ctx)
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// WithTx runs fn in a transaction, committing when fn returns nil.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		return rollbackWithLog(d.logger, tx, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func rollbackWithLog(logger *slog.Logger, tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		util.LogError(logger, "rollback failed", rbErr)
	}
	return err
}

func (d *Database) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS team_members (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			avatar TEXT,
			email TEXT,
			role TEXT,
			is_deleted INTEGER NOT NULL DEFAULT 0,
			deleted_at TEXT,
			deleted_by TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS counterparties (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			avatar TEXT,
			bio TEXT,
			email TEXT,
			is_deleted INTEGER NOT NULL DEFAULT 0,
			deleted_at TEXT,
			deleted_by TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS sprints (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 0,
			is_deleted INTEGER NOT NULL DEFAULT 0,
			deleted_at TEXT,
			deleted_by TEXT,
			created_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			priority TEXT NOT NULL,
			status TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 1,
			description TEXT,
			requester TEXT NOT NULL DEFAULT '',
			manager TEXT,
			designer_id TEXT REFERENCES team_members(id) ON DELETE SET NULL,
			sprint TEXT,
			request_date TEXT NOT NULL,
			due_date TEXT,
			delivery_link TEXT,
			completion_date TEXT,
			reference_links TEXT NOT NULL DEFAULT '[]',
			reference_images TEXT NOT NULL DEFAULT '[]',
			is_deleted INTEGER NOT NULL DEFAULT 0,
			deleted_at TEXT,
			deleted_by TEXT,
			created_at TEXT,
			updated_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_deleted_created ON tasks(is_deleted, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_sprint ON tasks(sprint);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_designer ON tasks(designer_id);`,
		// At most one live sprint may be active.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sprints_single_active ON sprints(is_active)
			WHERE is_active = 1 AND is_deleted = 0;`,
	}

	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	for _, stmt := range stmts {
		if _, err := d.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	if err := d.SetSetting(ctx, "schema_version", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}
