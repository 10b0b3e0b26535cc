package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
)

const defaultPoliciesPerPage = 25

// PolicyManager is the policy service as seen by the HTTP layer.
type PolicyManager interface {
	List(ctx context.Context, name string, page, perPage int) (*repository.Page[models.Policy], error)
	Get(ctx context.Context, id uint) (*models.Policy, error)
	Create(ctx context.Context, name string) (*models.Policy, error)
	Delete(ctx context.Context, id uint) (*models.Policy, error)
}

type PolicyHandler struct {
	service    PolicyManager
	maxPerPage int
}

func NewPolicyHandler(service PolicyManager, maxPerPage int) *PolicyHandler {
	return &PolicyHandler{service: service, maxPerPage: maxPerPage}
}

// List handles GET /policies
func (h *PolicyHandler) List(c *gin.Context) {
	page, perPage, ok := parsePagination(c, defaultPoliciesPerPage, h.maxPerPage)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), c.Query("name"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPagedResponse(result, toPolicyDetail))
}

// Get handles GET /policies/:id
func (h *PolicyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPolicyDetail(*p))
}

// Create handles POST /policies
func (h *PolicyHandler) Create(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPolicySummary(*p))
}

// Delete handles DELETE /policies/:id. Rules and firewall links go with it.
func (h *PolicyHandler) Delete(c *gin.Context) {
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
