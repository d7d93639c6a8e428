package bootstrap_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docquery-backend/internal/bootstrap"
	"docquery-backend/internal/shared/config"
)

func TestBuildDevFallsBackToMemoryBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LocalStoreURL:   "http://localhost:8080/objects",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.Router == nil {
		t.Fatalf("expected router")
	}
	if app.DB != nil {
		t.Fatalf("expected no database without DATABASE_URL")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.Code)
	}

	// Routes under the authenticated group reject anonymous callers.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("documents without token: expected 401, got %d", resp.Code)
	}
}

func TestBuildProductionRequiresDatabase(t *testing.T) {
	cfg := config.Config{
		Env:             "production",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}

	if _, err := bootstrap.Build(cfg); err == nil {
		t.Fatalf("expected build to fail without DATABASE_URL in production")
	}
}
