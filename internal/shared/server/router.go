package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docquery-backend/internal/documents"
	"docquery-backend/internal/queries"
	"docquery-backend/internal/shared/config"
	"docquery-backend/internal/shared/metrics"
	"docquery-backend/internal/shared/server/middleware"
	"docquery-backend/internal/shared/server/respond"
	"docquery-backend/internal/shared/storage/object"
	"docquery-backend/internal/shared/telemetry"
	"docquery-backend/internal/users"
)

// RouterDeps collects the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	Store            object.Store
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	QueriesHandler   *queries.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Health and metrics live outside the authenticated group.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/api/v1/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	// Stored binaries are addressed by public locator, so downloads are
	// not behind auth.
	if deps.Store != nil {
		r.GET("/objects/*key", serveObject(deps.Store))
	}

	api := r.Group("/api/v1", middleware.Auth())
	deps.UsersHandler.RegisterRoutes(api)
	deps.DocumentsHandler.RegisterRoutes(api)
	deps.QueriesHandler.RegisterRoutes(api)

	return r
}

func serveObject(store object.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			respond.Error(c, http.StatusNotFound, "not_found", "object not found", nil)
			return
		}

		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "not_found", "object not found", nil)
			return
		}
		defer rc.Close()

		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, rc); err != nil {
			telemetry.Error("object.stream_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
