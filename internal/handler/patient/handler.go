// Package patient serves the patient-facing endpoints, including the
// self-serve booking path.
package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/dashboard"
	"github.com/ayursutra/clinic-api/internal/handler"
	"github.com/ayursutra/clinic-api/internal/middleware"
	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/scheduling"
)

type Handler struct {
	scheduler  *scheduling.Service
	dashboards *dashboard.Service
}

func NewHandler(scheduler *scheduling.Service, dashboards *dashboard.Service) *Handler {
	return &Handler{scheduler: scheduler, dashboards: dashboards}
}

// Dashboard serves /patients/:id/dashboard; ":id" may be "me".
func (h *Handler) Dashboard(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	explicitID, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id must be a valid id"))
		return
	}

	dash, err := h.dashboards.ForPatient(c.Request.Context(), actor, explicitID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(dash))
}

// Appointments serves /patients/:id/appointments; ":id" may be "me".
func (h *Handler) Appointments(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	explicitID, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id must be a valid id"))
		return
	}
	start, end, limit, err := handler.ListParams(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	appointments, err := h.scheduler.ListForPatient(c.Request.Context(), actor, explicitID, start, end, limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewListResponse(appointments, len(appointments)))
}

// RequestAppointment is the patient booking endpoint. The booking engine
// enforces who may call it and the practitioner assignment rules.
func (h *Handler) RequestAppointment(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.RequestAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	detail, err := h.scheduler.RequestAppointment(c.Request.Context(), actor, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(detail))
}

// pathID resolves the :id segment, treating "me" and absence as "self".
func pathID(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Param("id")
	if raw == "" || raw == "me" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
