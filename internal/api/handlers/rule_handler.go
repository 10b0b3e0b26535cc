package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/validation"
)

// RuleManager is the rule service as seen by the HTTP layer.
type RuleManager interface {
	ListByPolicy(ctx context.Context, policyID uint) ([]models.Rule, error)
	Get(ctx context.Context, id uint) (*models.Rule, error)
	Create(ctx context.Context, policyID uint, in validation.RuleInput) (*models.Rule, error)
	Delete(ctx context.Context, id uint) (*models.Rule, error)
}

type RuleHandler struct {
	service RuleManager
}

func NewRuleHandler(service RuleManager) *RuleHandler {
	return &RuleHandler{service: service}
}

// ListByPolicy handles GET /rules/policy/:policy_id
func (h *RuleHandler) ListByPolicy(c *gin.Context) {
	policyID, ok := parseID(c, "policy_id")
	if !ok {
		return
	}

	rules, err := h.service.ListByPolicy(c.Request.Context(), policyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

// Create handles POST /rules/policy/:policy_id
func (h *RuleHandler) Create(c *gin.Context) {
	policyID, ok := parseID(c, "policy_id")
	if !ok {
		return
	}

	var in validation.RuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.service.Create(c.Request.Context(), policyID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// Get handles GET /rules/:id
func (h *RuleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rule, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

// Delete handles DELETE /rules/:id
func (h *RuleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
