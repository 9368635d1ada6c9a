// Package appointment exposes the booking engine over HTTP.
package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/handler"
	"github.com/ayursutra/clinic-api/internal/middleware"
	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/scheduling"
)

type Handler struct {
	scheduler *scheduling.Service
}

func NewHandler(scheduler *scheduling.Service) *Handler {
	return &Handler{scheduler: scheduler}
}

// Create books an appointment on behalf of a practitioner. Admins must
// name the practitioner explicitly.
func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	detail, err := h.scheduler.CreateAppointment(c.Request.Context(), actor, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(detail))
}

// List returns a practitioner calendar slice. Practitioners see their own;
// admins pass practitioner_id.
func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	explicitID, err := handler.OptionalIDParam(c, "practitioner_id")
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	start, end, limit, err := handler.ListParams(c)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	appointments, err := h.scheduler.ListForPractitioner(c.Request.Context(), actor, explicitID, start, end, limit)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewListResponse(appointments, len(appointments)))
}

// UpdateStatus moves a scheduled appointment to a terminal state.
func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id must be a valid id"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("status must be one of completed, cancelled, no_show"))
		return
	}
	status, valid := model.ParseAppointmentStatus(req.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("status must be one of completed, cancelled, no_show"))
		return
	}

	detail, err := h.scheduler.UpdateStatus(c.Request.Context(), actor, id, status)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(detail))
}
