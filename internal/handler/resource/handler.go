// Package resource serves the bookable rooms and equipment list.
package resource

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/handler"
	"github.com/ayursutra/clinic-api/internal/repository"
)

type Handler struct {
	resources repository.ResourceRepository
}

func NewHandler(resources repository.ResourceRepository) *Handler {
	return &Handler{resources: resources}
}

func (h *Handler) List(c *gin.Context) {
	resources, err := h.resources.ListActive(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewListResponse(resources, len(resources)))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("id must be a valid id"))
		return
	}

	res, err := h.resources.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("resource not found"))
			return
		}
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(res))
}
