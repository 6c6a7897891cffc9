package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
	pkgserver "github.com/DjordjeVuckovic/rag-eval/pkg/server"
)

type downChecker struct{}

func (downChecker) Healthy(context.Context) bool { return false }

func testConfig() *Config {
	return &Config{Port: DefaultPort, CorsOrigins: []string{"*"}}
}

func TestSetupHealthChecks(t *testing.T) {
	tests := []struct {
		name       string
		checker    pkgserver.HealthChecker
		wantStatus int
		wantBody   string
	}{
		{"healthy", pkgserver.NewOkHealthChecker(), http.StatusOK, `{"status":"ok"}`},
		{"unhealthy", downChecker{}, http.StatusServiceUnavailable, `{"status":"unhealthy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testConfig(), tt.checker).SetupMiddlewares().SetupHealthChecks("/health")

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			s.Echo.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestSetupErrorHandler(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).SetupErrorHandler()
	s.Echo.GET("/bad", func(c echo.Context) error {
		return apperr.NewValidation("min_recall must be a number")
	})
	s.Echo.GET("/boom", func(c echo.Context) error {
		return assert.AnError
	})

	req := httptest.NewRequest(http.MethodGet, "/bad", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_recall must be a number")

	req = httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("USE_HTTP2", "")

		cfg, err := configFromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Port)
		assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
		assert.False(t, cfg.UseHttp2)
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("CORS_ORIGINS", " http://localhost:3000 , ,https://dash.example.com")
		t.Setenv("USE_HTTP2", "true")

		cfg, err := configFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, []string{"http://localhost:3000", "https://dash.example.com"}, cfg.CorsOrigins)
		assert.True(t, cfg.UseHttp2)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("PORT", "99999")
		_, err := configFromEnv()
		assert.ErrorContains(t, err, "between 1 and 65535")
	})
}
