package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jouerflux/jouerflux/internal/models"
	"github.com/jouerflux/jouerflux/internal/repository"
	"github.com/jouerflux/jouerflux/internal/validation"
)

var errStoreDown = fmt.Errorf("create firewall: %w", repository.ErrPersistence)

type mockFirewallManager struct{ mock.Mock }

func (m *mockFirewallManager) List(ctx context.Context, name string, page, perPage int) (*repository.Page[models.Firewall], error) {
	args := m.Called(ctx, name, page, perPage)
	p, _ := args.Get(0).(*repository.Page[models.Firewall])
	return p, args.Error(1)
}

func (m *mockFirewallManager) Get(ctx context.Context, id uint) (*models.Firewall, error) {
	args := m.Called(ctx, id)
	fw, _ := args.Get(0).(*models.Firewall)
	return fw, args.Error(1)
}

func (m *mockFirewallManager) Create(ctx context.Context, name string) (*models.Firewall, error) {
	args := m.Called(ctx, name)
	fw, _ := args.Get(0).(*models.Firewall)
	return fw, args.Error(1)
}

func (m *mockFirewallManager) Delete(ctx context.Context, id uint) (*models.Firewall, error) {
	args := m.Called(ctx, id)
	fw, _ := args.Get(0).(*models.Firewall)
	return fw, args.Error(1)
}

type mockRuleManager struct{ mock.Mock }

func (m *mockRuleManager) ListByPolicy(ctx context.Context, policyID uint) ([]models.Rule, error) {
	args := m.Called(ctx, policyID)
	rules, _ := args.Get(0).([]models.Rule)
	return rules, args.Error(1)
}

func (m *mockRuleManager) Get(ctx context.Context, id uint) (*models.Rule, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Rule)
	return r, args.Error(1)
}

func (m *mockRuleManager) Create(ctx context.Context, policyID uint, in validation.RuleInput) (*models.Rule, error) {
	args := m.Called(ctx, policyID, in)
	r, _ := args.Get(0).(*models.Rule)
	return r, args.Error(1)
}

func (m *mockRuleManager) Delete(ctx context.Context, id uint) (*models.Rule, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Rule)
	return r, args.Error(1)
}

func TestFirewallHandler_PersistenceFailureIsHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockFirewallManager)
	svc.On("Create", mock.Anything, "edge").Return(nil, errStoreDown)
	svc.On("List", mock.Anything, "", 1, 10).Return(nil, errStoreDown)

	h := NewFirewallHandler(svc, testMaxPerPage)
	router := gin.New()
	router.POST("/firewalls", h.Create)
	router.GET("/firewalls", h.List)

	w := doRequest(router, http.MethodPost, "/firewalls", map[string]string{"name": "edge"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "persistence")

	w = doRequest(router, http.MethodGet, "/firewalls", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	svc.AssertExpectations(t)
}

func TestRuleHandler_PersistenceFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockRuleManager)
	svc.On("Create", mock.Anything, uint(7), mock.AnythingOfType("validation.RuleInput")).
		Return(nil, errors.New("disk I/O error"))
	svc.On("Delete", mock.Anything, uint(3)).Return(nil, fmt.Errorf("delete rule: %w", repository.ErrPersistence))

	h := NewRuleHandler(svc)
	router := gin.New()
	router.POST("/rules/policy/:policy_id", h.Create)
	router.DELETE("/rules/:id", h.Delete)

	w := doRequest(router, http.MethodPost, "/rules/policy/7", map[string]interface{}{"action": "ALLOW"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk")

	w = doRequest(router, http.MethodDelete, "/rules/3", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	svc.AssertExpectations(t)
}

func TestFirewallHandler_ForwardsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockFirewallManager)
	svc.On("List", mock.Anything, "paris", 2, 7).
		Return(&repository.Page[models.Firewall]{Items: []models.Firewall{{ID: 8, Name: "paris-1"}}, Total: 8, Pages: 2, Page: 2, PerPage: 7}, nil)

	h := NewFirewallHandler(svc, testMaxPerPage)
	router := gin.New()
	router.GET("/firewalls", h.List)

	w := doRequest(router, http.MethodGet, "/firewalls?name=paris&page=2&per_page=7", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":8,"pages":2,"page":2,"per_page":7,"results":[{"id":8,"name":"paris-1"}]}`, w.Body.String())
	svc.AssertExpectations(t)
}
