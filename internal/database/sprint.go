package database

import (
	"context"
	"database/sql"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

type sprintTable struct {
	*table[models.Sprint, models.SprintPatch]
}

// DeactivateAllExcept clears is_active on every sprint other than id.
func (s *sprintTable) DeactivateAllExcept(ctx context.Context, id string) error {
	ctx, cancel := s.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	_, err := s.d.DB.ExecContext(ctx, "UPDATE sprints SET is_active = 0 WHERE id != ? AND is_active = 1", id)
	return wrapErr("deactivate_others", "sprint", id, err)
}

// ActivateSprint makes id the only active sprint in one transaction. A
// missing or deleted sprint is not found and nothing changes.
func (s *sprintTable) ActivateSprint(ctx context.Context, id string) error {
	ctx, cancel := s.d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	err := s.d.WithTx(ctx, func(tx *sql.Tx) error {
		var deleted bool
		if err := tx.QueryRowContext(ctx, "SELECT is_deleted FROM sprints WHERE id = ?", id).Scan(&deleted); err != nil {
			return err
		}
		if deleted {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, "UPDATE sprints SET is_active = 0 WHERE id != ? AND is_active = 1", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "UPDATE sprints SET is_active = 1 WHERE id = ?", id)
		return err
	})
	if err == nil {
		s.d.logger.Debug("sprint activated", "id", id)
	}
	return wrapErr("activate", "sprint", id, err)
}

// clearActiveIfTaken drops the active flag of a sprint being restored when
// another live sprint is already active.
func (s *sprintTable) clearActiveIfTaken(ctx context.Context, tx *sql.Tx, id string) error {
	var taken int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sprints WHERE is_active = 1 AND is_deleted = 0 AND id != ?", id).Scan(&taken)
	if err != nil {
		return err
	}
	if taken == 0 {
		return nil
	}
	_, err = tx.ExecContext(ctx, "UPDATE sprints SET is_active = 0 WHERE id = ?", id)
	return err
}
