package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

var errNoActivator = errors.New("backend cannot activate sprints transactionally")

func (s *Server) handleDeactivateOthers(c *gin.Context) {
	if err := s.backend.Sprints().DeactivateAllExcept(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleActivate switches the active sprint in one backend transaction.
// Backends without one answer 501 so clients fall back to the two-step path.
func (s *Server) handleActivate(c *gin.Context) {
	activator, ok := s.backend.Sprints().(gateway.SprintActivator)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": errNoActivator.Error()})
		return
	}
	id := c.Param("id")
	if err := activator.ActivateSprint(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	s.logger.Info("sprint activated", "entity", models.EntitySprint, "id", id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
