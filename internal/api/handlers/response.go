package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jouerflux/jouerflux/internal/logger"
	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
	"github.com/jouerflux/jouerflux/internal/util"
	"github.com/jouerflux/jouerflux/internal/validation"
)

const (
	msgInvalidID         = "invalid ID"
	msgInvalidPagination = "Invalid pagination parameters"
	msgInternal          = "internal server error"
)

// pageQuery is bound from ?page=&per_page=. PerPage is a pointer so each
// endpoint can apply its own default.
type pageQuery struct {
	Page    int  `form:"page,default=1" binding:"min=1"`
	PerPage *int `form:"per_page" binding:"omitempty,min=1"`
}

type pagedResponse[T any] struct {
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Results []T   `json:"results"`
}

func newPagedResponse[T, U any](p *repository.Page[T], fn func(T) U) pagedResponse[U] {
	m := repository.MapPage(p, fn)
	return pagedResponse[U]{
		Total:   m.Total,
		Pages:   m.Pages,
		Page:    m.Page,
		PerPage: m.PerPage,
		Results: m.Items,
	}
}

type firewallSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type firewallDetail struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Policies []policySummary `json:"policies"`
}

type policySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type policyDetail struct {
	ID    uint          `json:"id"`
	Name  string        `json:"name"`
	Rules []models.Rule `json:"rules"`
}

func toFirewallSummary(fw models.Firewall) firewallSummary {
	return firewallSummary{ID: fw.ID, Name: fw.Name}
}

func toFirewallDetail(fw models.Firewall) firewallDetail {
	policies := make([]policySummary, 0, len(fw.Policies))
	for _, p := range fw.Policies {
		policies = append(policies, toPolicySummary(p))
	}
	return firewallDetail{ID: fw.ID, Name: fw.Name, Policies: policies}
}

func toPolicySummary(p models.Policy) policySummary {
	return policySummary{ID: p.ID, Name: p.Name}
}

func toPolicyDetail(p models.Policy) policyDetail {
	rules := p.Rules
	if rules == nil {
		rules = []models.Rule{}
	}
	return policyDetail{ID: p.ID, Name: p.Name, Rules: rules}
}

// parseID reads a numeric path parameter and writes a 400 when it is not one.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return 0, false
	}
	return uint(id), true
}

// parsePagination binds page and per_page, applying defaultPerPage and
// clamping per_page to maxPerPage.
func parsePagination(c *gin.Context, defaultPerPage, maxPerPage int) (int, int, bool) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidPagination})
		return 0, 0, false
	}
	perPage := defaultPerPage
	if q.PerPage != nil {
		perPage = *q.PerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return q.Page, perPage, true
}

func respondError(c *gin.Context, err error) {
	writeError(c, "error", err)
}

// writeError maps an error kind to a status and writes {key: message}.
// Persistence failures are logged and hidden behind a generic message.
func writeError(c *gin.Context, key string, err error) {
	switch {
	case errors.Is(err, validation.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{key: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{key: err.Error()})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{key: err.Error()})
	case errors.Is(err, repository.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{key: msgInvalidPagination})
	default:
		logger.Component("api").WithError(err).WithField("path", util.SanitizeForLog(c.Request.URL.Path)).
			Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{key: msgInternal})
	}
}
