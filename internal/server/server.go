// Package server is the reference persistence service of sprintboard: a gin
// JSON API over a gateway backend plus a server-sent-events realtime channel.
package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// Pinger is implemented by backends that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server provides HTTP handlers for the board service.
type Server struct {
	engine  *gin.Engine
	backend gateway.Collections
	hub     *Hub
	logger  *slog.Logger
}

type Option func(*serverOptions)

type serverOptions struct {
	logger    *slog.Logger
	accessLog io.Writer
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *serverOptions) { o.logger = logger }
}

// WithAccessLog sets the writer of the gin request log. nil disables it.
func WithAccessLog(w io.Writer) Option {
	return func(o *serverOptions) { o.accessLog = w }
}

// New constructs the HTTP server with routes and middleware configured.
func New(backend gateway.Collections, opts ...Option) *Server {
	o := serverOptions{logger: util.DiscardLogger(), accessLog: gin.DefaultWriter}
	for _, opt := range opts {
		opt(&o)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if o.accessLog != nil {
		router.Use(gin.LoggerWithWriter(o.accessLog, "/api/healthz"))
	}

	s := &Server{
		engine:  router,
		backend: backend,
		hub:     NewHub(o.logger),
		logger:  o.logger,
	}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Hub exposes the realtime hub so other writers can publish through it.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/healthz", s.handleHealth)
	api.GET("/realtime", s.handleRealtime)

	tasks := &collectionHandler[models.Task, models.TaskPatch, gateway.TaskRow]{
		s: s, entity: models.EntityTask, coll: s.backend.Tasks(),
		toRow:     gateway.TaskToRow,
		fromRow:   gateway.TaskFromRow,
		patch:     gateway.TaskPatchFromRow,
		tombstone: func(t models.Task) *models.Tombstone { return t.Tombstone },
	}
	tasks.register(api.Group("/tasks"))

	sprints := &collectionHandler[models.Sprint, models.SprintPatch, gateway.SprintRow]{
		s: s, entity: models.EntitySprint, coll: s.backend.Sprints(),
		toRow:     gateway.SprintToRow,
		fromRow:   gateway.SprintFromRow,
		patch:     gateway.SprintPatchFromRow,
		tombstone: func(sp models.Sprint) *models.Tombstone { return sp.Tombstone },
	}
	group := api.Group("/sprints")
	sprints.register(group)
	group.POST("/:id/deactivate_others", s.handleDeactivateOthers)
	group.POST("/:id/activate", s.handleActivate)

	members := &collectionHandler[models.TeamMember, models.TeamMemberPatch, gateway.TeamMemberRow]{
		s: s, entity: models.EntityTeamMember, coll: s.backend.TeamMembers(),
		toRow:     gateway.TeamMemberToRow,
		fromRow:   infallible(gateway.TeamMemberFromRow),
		patch:     gateway.TeamMemberPatchFromRow,
		tombstone: func(m models.TeamMember) *models.Tombstone { return m.Tombstone },
		onWrite:   s.broadcastMember,
	}
	members.register(api.Group("/team_members"))

	counterparties := &collectionHandler[models.Counterparty, models.CounterpartyPatch, gateway.CounterpartyRow]{
		s: s, entity: models.EntityCounterparty, coll: s.backend.Counterparties(),
		toRow:     gateway.CounterpartyToRow,
		fromRow:   infallible(gateway.CounterpartyFromRow),
		patch:     gateway.CounterpartyPatchFromRow,
		tombstone: func(c models.Counterparty) *models.Tombstone { return c.Tombstone },
	}
	counterparties.register(api.Group("/counterparties"))
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	if p, ok := s.backend.(Pinger); ok {
		if err := p.Ping(c.Request.Context()); err != nil {
			s.respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps a backend error onto an HTTP status.
func statusFor(err error) int {
	switch gateway.KindOf(err) {
	case gateway.KindValidation:
		return http.StatusBadRequest
	case gateway.KindNotFound:
		return http.StatusNotFound
	case gateway.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	} else {
		s.logger.Debug("request rejected", slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func infallible[R any, T any](fn func(R) T) func(R) (T, error) {
	return func(r R) (T, error) { return fn(r), nil }
}
