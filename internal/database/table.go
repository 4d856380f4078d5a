package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

// schema describes how one entity type maps onto its table. columns lists
// every column, id first, in the order values produces them and scan reads
// them.
type schema[T any, P any] struct {
	entity  models.EntityType
	table   string
	columns []string
	orderBy string

	values func(T) ([]any, error)
	scan   func(rowScanner) (T, error)
	filter func(q *selectQuery, f gateway.Filter)

	id    func(T) string
	setID func(T, string) T
	apply func(P, T) T
	stamp func(v T, now time.Time, created bool) T
}

type table[T any, P any] struct {
	d      *Database
	schema schema[T, P]

	// resolve post-processes rows read from the table, with q as the reader.
	resolve func(ctx context.Context, q queryer, vs []T) ([]T, error)
	// beforeRestore runs inside the restore transaction.
	beforeRestore func(ctx context.Context, tx *sql.Tx, id string) error
}

func newTable[T any, P any](d *Database, s schema[T, P]) *table[T, P] {
	return &table[T, P]{d: d, schema: s}
}

func (t *table[T, P]) resource() string {
	return strings.ToLower(string(t.schema.entity))
}

func (t *table[T, P]) query(ctx context.Context, q queryer, sq *selectQuery) ([]T, error) {
	query, args := sq.Build()
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := t.schema.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.resource(), err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if t.resolve != nil {
		return t.resolve(ctx, q, out)
	}
	return out, nil
}

func (t *table[T, P]) get(ctx context.Context, q queryer, id string) (T, error) {
	sq := newSelectQuery(t.schema.table, t.schema.columns).Where("id = ?", id)
	vs, err := t.query(ctx, q, sq)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(vs) == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return vs[0], nil
}

func (t *table[T, P]) List(ctx context.Context, f gateway.Filter) ([]T, error) {
	ctx, cancel := t.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	limit := f.Limit
	if limit <= 0 {
		limit = config.ActiveListLimit
	}
	sq := newSelectQuery(t.schema.table, t.schema.columns).
		WhereDeleted(f.IsDeleted != nil && *f.IsDeleted).
		OrderBy(t.schema.orderBy).
		Limit(limit)
	if t.schema.filter != nil {
		t.schema.filter(sq, f)
	}
	vs, err := t.query(ctx, t.d.DB, sq)
	return vs, wrapErr("list", t.resource(), "", err)
}

// ListDeleted returns rows deleted within the lookback window, newest
// deletion first.
func (t *table[T, P]) ListDeleted(ctx context.Context) ([]T, error) {
	ctx, cancel := t.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	since := t.d.now().Add(-config.DeletedLookback)
	sq := newSelectQuery(t.schema.table, t.schema.columns).
		WhereDeleted(true).
		Where("deleted_at >= ?", formatTime(&since)).
		OrderBy("deleted_at DESC").
		Limit(config.DeletedListLimit)
	vs, err := t.query(ctx, t.d.DB, sq)
	return vs, wrapErr("list_deleted", t.resource(), "", err)
}

// Create inserts v under a fresh id and returns the stored row.
func (t *table[T, P]) Create(ctx context.Context, v T) (T, error) {
	ctx, cancel := t.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	v = t.schema.setID(v, uuid.NewString())
	v = t.schema.stamp(v, t.d.now(), true)
	id := t.schema.id(v)

	var out T
	err := t.d.WithTx(ctx, func(tx *sql.Tx) error {
		args, err := t.schema.values(v)
		if err != nil {
			return err
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(t.schema.columns)), ", ")
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.schema.table, strings.Join(t.schema.columns, ", "), marks)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		out, err = t.get(ctx, tx, id)
		return err
	})
	if err != nil {
		var zero T
		return zero, wrapErr("create", t.resource(), id, err)
	}
	return out, nil
}

// Update merges patch into the stored row, deleted or not.
func (t *table[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	ctx, cancel := t.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	var out T
	err := t.d.WithTx(ctx, func(tx *sql.Tx) error {
		current, err := t.get(ctx, tx, id)
		if err != nil {
			return err
		}
		next := t.schema.stamp(t.schema.apply(patch, current), t.d.now(), false)
		args, err := t.schema.values(next)
		if err != nil {
			return err
		}
		sets := make([]string, 0, len(t.schema.columns)-1)
		for _, col := range t.schema.columns[1:] {
			sets = append(sets, col+" = ?")
		}
		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.schema.table, strings.Join(sets, ", "))
		if _, err := tx.ExecContext(ctx, query, append(args[1:], id)...); err != nil {
			return err
		}
		out, err = t.get(ctx, tx, id)
		return err
	})
	if err != nil {
		var zero T
		return zero, wrapErr("update", t.resource(), id, err)
	}
	return out, nil
}

func (t *table[T, P]) SoftDelete(ctx context.Context, id, actorID string) error {
	ctx, cancel := t.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	now := t.d.now()
	query := fmt.Sprintf("UPDATE %s SET is_deleted = 1, deleted_at = ?, deleted_by = ? WHERE id = ?", t.schema.table)
	res, err := t.d.DB.ExecContext(ctx, query, formatTime(&now), nullableString(actorID), id)
	return wrapErr("soft_delete", t.resource(), id, requireRow(res, err))
}

func (t *table[T, P]) Restore(ctx context.Context, id string) error {
	ctx, cancel := t.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	err := t.d.WithTx(ctx, func(tx *sql.Tx) error {
		if t.beforeRestore != nil {
			if err := t.beforeRestore(ctx, tx, id); err != nil {
				return err
			}
		}
		query := fmt.Sprintf("UPDATE %s SET is_deleted = 0, deleted_at = NULL, deleted_by = NULL WHERE id = ?", t.schema.table)
		res, err := tx.ExecContext(ctx, query, id)
		return requireRow(res, err)
	})
	return wrapErr("restore", t.resource(), id, err)
}

func (t *table[T, P]) HardDelete(ctx context.Context, id string) error {
	ctx, cancel := t.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.schema.table)
	res, err := t.d.DB.ExecContext(ctx, query, id)
	return wrapErr("hard_delete", t.resource(), id, requireRow(res, err))
}

// requireRow turns an update that touched nothing into ErrNotFound.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
