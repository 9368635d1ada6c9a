// Package auth exposes registration and login.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authservice "github.com/ayursutra/clinic-api/internal/auth"
	"github.com/ayursutra/clinic-api/internal/handler"
	"github.com/ayursutra/clinic-api/internal/model"
)

type Handler struct {
	auth *authservice.Service
}

func NewHandler(auth *authservice.Service) *Handler {
	return &Handler{auth: auth}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	token, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(token))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindError(c, err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(token))
}
