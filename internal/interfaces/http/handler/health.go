package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler reports service liveness and backing-service reachability
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a new health handler. The cache pinger may be
// nil when no external cache is configured.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// RegisterRoutes registers the health endpoint
func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
}

// Health answers 200 when the service and its database are up. A cache
// outage is reported but does not fail the check, since address lookups
// degrade to the store without it.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	body := gin.H{"database": "ok"}
	if err := h.db.Ping(); err != nil {
		body["database"] = "unreachable"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		body["cache"] = "ok"
		if err := h.cache.Ping(); err != nil {
			body["cache"] = "unreachable"
			if status == "ok" {
				status = "degraded"
			}
		}
	}

	body["status"] = status
	c.JSON(code, body)
}
