package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

// resource implements gateway.Collection over one REST collection. R is the
// wire row type.
type resource[T any, P any, R any] struct {
	c        *Client
	path     string
	entity   models.EntityType
	toRow    func(T) R
	fromRow  func(R) (T, error)
	patchRow func(P) gateway.PatchRow
}

func (r *resource[T, P, R]) decode(op, id string, row R) (T, error) {
	v, err := r.fromRow(row)
	if err != nil {
		var zero T
		return zero, &gateway.Error{Op: op, Entity: r.entity, ID: id, Kind: gateway.KindValidation, Err: err}
	}
	return v, nil
}

func (r *resource[T, P, R]) decodeAll(op string, rows []R) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := r.decode(op, "", row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *resource[T, P, R]) List(ctx context.Context, f gateway.Filter) ([]T, error) {
	q := url.Values{}
	if f.IsDeleted != nil {
		q.Set("is_deleted", strconv.FormatBool(*f.IsDeleted))
	}
	if f.Sprint != "" {
		q.Set("sprint", f.Sprint)
	}
	if f.DesignerID != "" {
		q.Set("designer_id", f.DesignerID)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	var rows []R
	if err := r.c.do(ctx, http.MethodGet, r.path, q, nil, &rows, "list", r.entity, ""); err != nil {
		return nil, err
	}
	return r.decodeAll("list", rows)
}

func (r *resource[T, P, R]) ListDeleted(ctx context.Context) ([]T, error) {
	q := url.Values{}
	q.Set("is_deleted", "true")
	q.Set("since", time.Now().Add(-config.DeletedLookback).UTC().Format(time.RFC3339))
	q.Set("limit", strconv.Itoa(config.DeletedListLimit))
	var rows []R
	if err := r.c.do(ctx, http.MethodGet, r.path, q, nil, &rows, "list_deleted", r.entity, ""); err != nil {
		return nil, err
	}
	return r.decodeAll("list_deleted", rows)
}

func (r *resource[T, P, R]) Create(ctx context.Context, v T) (T, error) {
	var row R
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, r.toRow(v), &row, "create", r.entity, ""); err != nil {
		var zero T
		return zero, err
	}
	return r.decode("create", "", row)
}

func (r *resource[T, P, R]) Update(ctx context.Context, id string, patch P) (T, error) {
	var row R
	if err := r.c.do(ctx, http.MethodPatch, r.path+"/"+url.PathEscape(id), nil, r.patchRow(patch), &row, "update", r.entity, id); err != nil {
		var zero T
		return zero, err
	}
	return r.decode("update", id, row)
}

func (r *resource[T, P, R]) SoftDelete(ctx context.Context, id, actorID string) error {
	body := map[string]string{"deleted_by": actorID}
	return r.c.do(ctx, http.MethodPost, r.path+"/"+url.PathEscape(id)+"/delete", nil, body, nil, "soft_delete", r.entity, id)
}

func (r *resource[T, P, R]) Restore(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodPost, r.path+"/"+url.PathEscape(id)+"/restore", nil, nil, nil, "restore", r.entity, id)
}

func (r *resource[T, P, R]) HardDelete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil, "hard_delete", r.entity, id)
}

type sprintResource struct {
	*resource[models.Sprint, models.SprintPatch, gateway.SprintRow]
}

func (s *sprintResource) DeactivateAllExcept(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodPost, s.path+"/"+url.PathEscape(id)+"/deactivate_others", nil, nil, nil, "deactivate_others", s.entity, id)
}

// ActivateSprint asks the service to switch the active sprint in one
// transaction.
func (s *sprintResource) ActivateSprint(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodPost, s.path+"/"+url.PathEscape(id)+"/activate", nil, nil, nil, "activate", s.entity, id)
}
