// Package handler holds the shared HTTP response envelope and the base
// system endpoints. Domain handlers live in sub-packages.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func NewSuccessResponse(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func NewErrorResponse(message string) Response {
	return Response{Success: false, Error: message}
}

// ListMeta accompanies list payloads.
type ListMeta struct {
	Count int `json:"count"`
}

func NewListResponse(data interface{}, count int) Response {
	return Response{Success: true, Data: data, Meta: ListMeta{Count: count}}
}

// RespondBindError turns a gin binding failure into a readable 400.
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request: "+strings.Join(parts, "; ")))
		return
	}
	c.JSON(http.StatusBadRequest, NewErrorResponse("invalid request body"))
}

// RespondError maps a service error onto the wire. Domain errors carry
// their own status; anything else is a 500 with a generic message.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}
