package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jouerflux/jouerflux/internal/services"
	"github.com/jouerflux/jouerflux/internal/testutil"
)

const testMaxPerPage = 100

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	fw := NewFirewallHandler(services.NewFirewallService(db), testMaxPerPage)
	router.GET("/firewalls", fw.List)
	router.POST("/firewalls", fw.Create)
	router.GET("/firewalls/:id", fw.Get)
	router.DELETE("/firewalls/:id", fw.Delete)

	pol := NewPolicyHandler(services.NewPolicyService(db), testMaxPerPage)
	router.GET("/policies", pol.List)
	router.POST("/policies", pol.Create)
	router.GET("/policies/:id", pol.Get)
	router.DELETE("/policies/:id", pol.Delete)

	rules := NewRuleHandler(services.NewRuleService(db))
	router.GET("/rules/policy/:policy_id", rules.ListByPolicy)
	router.POST("/rules/policy/:policy_id", rules.Create)
	router.GET("/rules/:id", rules.Get)
	router.DELETE("/rules/:id", rules.Delete)

	assoc := NewAssociationHandler(services.NewAssociationService(db), testMaxPerPage)
	router.POST("/firewall-policy/:firewall_id/add/:policy_id", assoc.Attach)
	router.DELETE("/firewall-policy/:firewall_id/remove/:policy_id", assoc.Detach)
	router.GET("/firewall-policy/:firewall_id/policies", assoc.ListPolicies)

	return router, db
}

func doRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
