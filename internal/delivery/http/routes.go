package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/shopassist/backend/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/", handler.Index)

	// Submissions reach the model, so they share one per-IP budget
	submitLimit := RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP))

	router.POST("/", submitLimit, handler.SubmitForm)

	v1 := router.Group("/api/v1")
	{
		shopping := v1.Group("/shopping")
		{
			shopping.POST("/extract", submitLimit, handler.ExtractProducts)
		}
	}

	return router
}
