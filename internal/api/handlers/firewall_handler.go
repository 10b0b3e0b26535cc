package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
)

const defaultFirewallsPerPage = 10

// FirewallManager is the firewall service as seen by the HTTP layer.
type FirewallManager interface {
	List(ctx context.Context, name string, page, perPage int) (*repository.Page[models.Firewall], error)
	Get(ctx context.Context, id uint) (*models.Firewall, error)
	Create(ctx context.Context, name string) (*models.Firewall, error)
	Delete(ctx context.Context, id uint) (*models.Firewall, error)
}

type FirewallHandler struct {
	service    FirewallManager
	maxPerPage int
}

func NewFirewallHandler(service FirewallManager, maxPerPage int) *FirewallHandler {
	return &FirewallHandler{service: service, maxPerPage: maxPerPage}
}

type createNamedRequest struct {
	Name string `json:"name"`
}

// List handles GET /firewalls
func (h *FirewallHandler) List(c *gin.Context) {
	page, perPage, ok := parsePagination(c, defaultFirewallsPerPage, h.maxPerPage)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), c.Query("name"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPagedResponse(result, toFirewallSummary))
}

// Get handles GET /firewalls/:id
func (h *FirewallHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	fw, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFirewallDetail(*fw))
}

// Create handles POST /firewalls
func (h *FirewallHandler) Create(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fw, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFirewallSummary(*fw))
}

// Delete handles DELETE /firewalls/:id
func (h *FirewallHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	fw, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, "Firewall %s (%d) deleted", fw.Name, fw.ID)
}
