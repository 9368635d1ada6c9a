package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayursutra/clinic-api/internal/model"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

// OptionalIDParam reads an optional uuid query parameter.
func OptionalIDParam(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.Validationf("%s must be a valid id", name)
	}
	return &id, nil
}

// ListParams reads the start/end/limit window shared by list endpoints.
// Absent values stay zero; bounds are applied by the service.
func ListParams(c *gin.Context) (start, end time.Time, limit int, err error) {
	if start, err = model.ParseInstant(c.Query("start")); err != nil {
		return start, end, limit, apperrors.Validation("start must be a valid date")
	}
	if end, err = model.ParseInstant(c.Query("end")); err != nil {
		return start, end, limit, apperrors.Validation("end must be a valid date")
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return start, end, limit, apperrors.Validation("limit must be a positive number")
		}
	}
	return start, end, limit, nil
}
