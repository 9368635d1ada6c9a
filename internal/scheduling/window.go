package scheduling

import (
	"time"

	"github.com/ayursutra/clinic-api/internal/model"
	apperrors "github.com/ayursutra/clinic-api/pkg/errors"
)

// ValidateWindow checks a proposed [start, end) session window. Zero
// instants mean the client sent nothing parseable. Pure function.
func ValidateWindow(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		return time.Time{}, time.Time{}, apperrors.Validation("startTime must be a valid date")
	}
	if end.IsZero() {
		return time.Time{}, time.Time{}, apperrors.Validation("endTime must be a valid date")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, apperrors.Validation("endTime must be after startTime")
	}
	return start, end, nil
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) overlap
// iff s1 < e2 AND s2 < e1. Touching boundaries do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// BuildListWindow validates an optional query window and limit for list
// operations. The limit is capped; an open bound stays open.
func BuildListWindow(start, end time.Time, limit int) (model.ListWindow, error) {
	if limit < 0 {
		return model.ListWindow{}, apperrors.Validation("limit must be a positive number")
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		return model.ListWindow{}, apperrors.Validation("end must be after start")
	}

	if limit == 0 {
		limit = model.DefaultListLimit
	}
	if limit > model.MaxListLimit {
		limit = model.MaxListLimit
	}

	return model.ListWindow{Start: start, End: end, Limit: limit}, nil
}
