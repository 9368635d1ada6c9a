// Package treatment serves the read-only therapy catalog.
package treatment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayursutra/clinic-api/internal/handler"
	"github.com/ayursutra/clinic-api/internal/treatment"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) List(c *gin.Context) {
	treatments := treatment.All()
	c.JSON(http.StatusOK, handler.NewListResponse(treatments, len(treatments)))
}

func (h *Handler) Get(c *gin.Context) {
	t, ok := treatment.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("treatment not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(t))
}
