package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/api/handlers"
	"github.com/jouerflux/jouerflux/internal/config"
	"github.com/jouerflux/jouerflux/internal/database"
	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/services"
)

// Register migrates the schema and wires every API route onto router.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) error {
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	health := handlers.NewHealthHandler(db)
	router.GET("/health", health.Check)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/health")
	})

	firewalls := handlers.NewFirewallHandler(services.NewFirewallService(db), cfg.MaxPerPage)
	collection(router, http.MethodGet, "/firewalls", firewalls.List)
	collection(router, http.MethodPost, "/firewalls", firewalls.Create)
	router.GET("/firewalls/:id", firewalls.Get)
	router.DELETE("/firewalls/:id", firewalls.Delete)

	policies := handlers.NewPolicyHandler(services.NewPolicyService(db), cfg.MaxPerPage)
	collection(router, http.MethodGet, "/policies", policies.List)
	collection(router, http.MethodPost, "/policies", policies.Create)
	router.GET("/policies/:id", policies.Get)
	router.DELETE("/policies/:id", policies.Delete)

	rules := handlers.NewRuleHandler(services.NewRuleService(db))
	router.GET("/rules/policy/:policy_id", rules.ListByPolicy)
	router.POST("/rules/policy/:policy_id", rules.Create)
	router.GET("/rules/:id", rules.Get)
	router.DELETE("/rules/:id", rules.Delete)

	assoc := handlers.NewAssociationHandler(services.NewAssociationService(db), cfg.MaxPerPage)
	fp := router.Group("/firewall-policy/:firewall_id")
	fp.POST("/add/:policy_id", assoc.Attach)
	fp.DELETE("/remove/:policy_id", assoc.Detach)
	fp.GET("/policies", assoc.ListPolicies)

	logger.Component("routes").WithField("routes", len(router.Routes())).Debug("routes registered")
	return nil
}

// collection registers handler on path both with and without a trailing
// slash, so neither form is answered with a redirect.
func collection(router *gin.Engine, method, path string, handler gin.HandlerFunc) {
	path = strings.TrimSuffix(path, "/")
	router.Handle(method, path, handler)
	router.Handle(method, path+"/", handler)
}
