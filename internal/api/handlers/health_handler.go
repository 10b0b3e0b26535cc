package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/database"
	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/version"
)

// HealthHandler reports liveness along with database reachability.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	body := gin.H{
		"status":     "ok",
		"service":    version.Name,
		"version":    version.Version,
		"git_commit": version.GitCommit,
		"build_time": version.BuildTime,
	}

	if err := database.Ping(h.db); err != nil {
		logger.Component("health").WithError(err).Warn("database ping failed")
		body["status"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
