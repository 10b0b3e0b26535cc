package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
)

// AssociationManager attaches policies to firewalls.
type AssociationManager interface {
	Attach(ctx context.Context, firewallID, policyID uint) error
	Detach(ctx context.Context, firewallID, policyID uint) error
	ListPoliciesForFirewall(ctx context.Context, firewallID uint, page, perPage int) (*repository.Page[models.Policy], error)
}

// AssociationHandler serves /firewall-policy. Attach and detach failures
// are reported under "message" rather than "error".
type AssociationHandler struct {
	service    AssociationManager
	maxPerPage int
}

func NewAssociationHandler(service AssociationManager, maxPerPage int) *AssociationHandler {
	return &AssociationHandler{service: service, maxPerPage: maxPerPage}
}

func (h *AssociationHandler) pair(c *gin.Context) (uint, uint, bool) {
	firewallID, ok := parseID(c, "firewall_id")
	if !ok {
		return 0, 0, false
	}
	policyID, ok := parseID(c, "policy_id")
	if !ok {
		return 0, 0, false
	}
	return firewallID, policyID, true
}

// Attach handles POST /firewall-policy/:firewall_id/add/:policy_id
func (h *AssociationHandler) Attach(c *gin.Context) {
	firewallID, policyID, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.service.Attach(c.Request.Context(), firewallID, policyID); err != nil {
		writeError(c, "message", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Policy added to firewall"})
}

// Detach handles DELETE /firewall-policy/:firewall_id/remove/:policy_id
func (h *AssociationHandler) Detach(c *gin.Context) {
	firewallID, policyID, ok := h.pair(c)
	if !ok {
		return
	}

	if err := h.service.Detach(c.Request.Context(), firewallID, policyID); err != nil {
		writeError(c, "message", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPolicies handles GET /firewall-policy/:firewall_id/policies
func (h *AssociationHandler) ListPolicies(c *gin.Context) {
	firewallID, ok := parseID(c, "firewall_id")
	if !ok {
		return
	}
	page, perPage, ok := parsePagination(c, defaultPoliciesPerPage, h.maxPerPage)
	if !ok {
		return
	}

	result, err := h.service.ListPoliciesForFirewall(c.Request.Context(), firewallID, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPagedResponse(result, toPolicyDetail))
}
