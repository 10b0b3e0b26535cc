package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jouerflux/jouerflux/internal/logger"
)

func TestRequestLoggerIncludesRequestIDAndRoute(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.GET("/firewalls/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/firewalls/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d", w.Code)
	}

	out := buf.String()
	for _, want := range []string{`"request_id"`, `"handled request"`, `"route":"/firewalls/:id"`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to include %s: %s", want, out)
		}
	}
}

func TestRequestLoggerLevelFollowsStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if !strings.Contains(buf.String(), `"level":"warning"`) {
		t.Fatalf("expected warning level for 404: %s", buf.String())
	}

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error level for 500: %s", buf.String())
	}
}
