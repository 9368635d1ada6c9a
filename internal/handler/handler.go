package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// SystemHandler serves liveness and readiness probes.
type SystemHandler struct {
	db      *sqlx.DB
	started time.Time
	version string
}

func NewSystemHandler(db *sqlx.DB, version string) *SystemHandler {
	return &SystemHandler{db: db, started: time.Now(), version: version}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	}))
}

// Ready pings the database so the probe fails when storage is unreachable.
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, NewErrorResponse("database unavailable"))
			return
		}
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"status": "ready"}))
}
