// Package practitioner serves the practitioner-facing read endpoints.
package practitioner

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/dashboard"
	"github.com/ayursutra/clinic-api/internal/handler"
	"github.com/ayursutra/clinic-api/internal/middleware"
	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/repository"
)

type Handler struct {
	dashboards *dashboard.Service
	users      repository.UserRepository
}

func NewHandler(dashboards *dashboard.Service, users repository.UserRepository) *Handler {
	return &Handler{dashboards: dashboards, users: users}
}

// List returns the active practitioners as public profiles, for patients
// choosing who to request time with.
func (h *Handler) List(c *gin.Context) {
	practitioners, err := h.users.ListPractitioners(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	profiles := make([]*model.PublicProfile, 0, len(practitioners))
	for _, p := range practitioners {
		profiles = append(profiles, p.Public())
	}
	c.JSON(http.StatusOK, handler.NewListResponse(profiles, len(profiles)))
}

// Dashboard serves /practitioners/:id/dashboard; ":id" may be the literal
// "me" for the caller's own view.
func (h *Handler) Dashboard(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var explicitID *uuid.UUID
	if raw := c.Param("id"); raw != "" && raw != "me" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id must be a valid id"))
			return
		}
		explicitID = &id
	}

	dash, err := h.dashboards.ForPractitioner(c.Request.Context(), actor, explicitID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(dash))
}
