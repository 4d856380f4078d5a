package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

// collectionHandler serves one entity collection. R is the wire row.
type collectionHandler[T any, P any, R any] struct {
	s      *Server
	entity models.EntityType
	coll   gateway.Collection[T, P]

	toRow     func(T) R
	fromRow   func(R) (T, error)
	patch     func([]byte) (P, error)
	tombstone func(T) *models.Tombstone
	// onWrite runs after a successful create or update.
	onWrite func(T)
}

func (h *collectionHandler[T, P, R]) register(g *gin.RouterGroup) {
	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.POST("/:id/delete", h.softDelete)
	g.POST("/:id/restore", h.restore)
	g.DELETE("/:id", h.hardDelete)
}

func (h *collectionHandler[T, P, R]) invalid(op, id string, err error) error {
	return gateway.Wrap(op, h.entity, id, gateway.KindValidation, err)
}

// list answers GET with optional is_deleted, sprint, designer_id, limit and
// since (RFC 3339, deleted listings only).
func (h *collectionHandler[T, P, R]) list(c *gin.Context) {
	var f gateway.Filter
	if raw := c.Query("is_deleted"); raw != "" {
		deleted, err := strconv.ParseBool(raw)
		if err != nil {
			h.s.respondError(c, h.invalid("list", "", fmt.Errorf("is_deleted: %w", err)))
			return
		}
		f.IsDeleted = &deleted
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.s.respondError(c, h.invalid("list", "", fmt.Errorf("invalid limit %q", raw)))
			return
		}
		f.Limit = limit
	}
	f.Sprint = c.Query("sprint")
	f.DesignerID = c.Query("designer_id")

	ctx := c.Request.Context()
	var (
		vs  []T
		err error
	)
	if raw := c.Query("since"); raw != "" && f.IsDeleted != nil && *f.IsDeleted {
		since, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			h.s.respondError(c, h.invalid("list_deleted", "", fmt.Errorf("since: %w", perr)))
			return
		}
		vs, err = h.coll.ListDeleted(ctx)
		vs = h.deletedSince(vs, since, f.Limit)
	} else {
		vs, err = h.coll.List(ctx, f)
	}
	if err != nil {
		h.s.respondError(c, err)
		return
	}
	rows := make([]R, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, h.toRow(v))
	}
	c.JSON(http.StatusOK, rows)
}

func (h *collectionHandler[T, P, R]) deletedSince(vs []T, since time.Time, limit int) []T {
	out := vs[:0]
	for _, v := range vs {
		if ts := h.tombstone(v); ts != nil && !ts.DeletedAt.Before(since) {
			out = append(out, v)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (h *collectionHandler[T, P, R]) create(c *gin.Context) {
	var row R
	if err := c.ShouldBindJSON(&row); err != nil {
		h.s.respondError(c, h.invalid("create", "", err))
		return
	}
	if err := gateway.ValidateRow("create", h.entity, row); err != nil {
		h.s.respondError(c, err)
		return
	}
	v, err := h.fromRow(row)
	if err != nil {
		h.s.respondError(c, h.invalid("create", "", err))
		return
	}
	created, err := h.coll.Create(c.Request.Context(), v)
	if err != nil {
		h.s.respondError(c, err)
		return
	}
	if h.onWrite != nil {
		h.onWrite(created)
	}
	c.JSON(http.StatusCreated, h.toRow(created))
}

func (h *collectionHandler[T, P, R]) update(c *gin.Context) {
	id := c.Param("id")
	data, err := c.GetRawData()
	if err != nil {
		h.s.respondError(c, h.invalid("update", id, err))
		return
	}
	patch, err := h.patch(data)
	if err != nil {
		h.s.respondError(c, h.invalid("update", id, err))
		return
	}
	updated, err := h.coll.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.s.respondError(c, err)
		return
	}
	if h.onWrite != nil {
		h.onWrite(updated)
	}
	c.JSON(http.StatusOK, h.toRow(updated))
}

type deleteRequest struct {
	DeletedBy string `json:"deleted_by"`
}

func (h *collectionHandler[T, P, R]) softDelete(c *gin.Context) {
	id := c.Param("id")
	var req deleteRequest
	if data, err := c.GetRawData(); err != nil {
		h.s.respondError(c, h.invalid("soft_delete", id, err))
		return
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			h.s.respondError(c, h.invalid("soft_delete", id, err))
			return
		}
	}
	if err := h.coll.SoftDelete(c.Request.Context(), id, req.DeletedBy); err != nil {
		h.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *collectionHandler[T, P, R]) restore(c *gin.Context) {
	if err := h.coll.Restore(c.Request.Context(), c.Param("id")); err != nil {
		h.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}

// hardDelete removes the record permanently.
func (h *collectionHandler[T, P, R]) hardDelete(c *gin.Context) {
	if err := h.coll.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		h.s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "purged"})
}
