package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/codequest/streak-engine/internal/adapters/handler/http/middleware"
)

// HealthCheck pings one backing service.
type HealthCheck func(ctx context.Context) error

type RouterDependencies struct {
	AuthHandler   *AuthHandler
	StreakHandler *StreakHandler
	AnswerHandler *AnswerHandler
	Tokens        middleware.TokenValidator

	// Redis enables rate limiting when set.
	Redis           *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration

	HealthChecks map[string]HealthCheck
	StartTime    time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, "+TimezoneHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", healthHandler(deps.HealthChecks, deps.StartTime))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var limiter gin.HandlerFunc
	if deps.Redis != nil && deps.RateLimit > 0 {
		limiter = middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateLimitWindow)
	}

	apiV1 := router.Group("/api/v1")

	public := apiV1.Group("")
	if limiter != nil {
		public.Use(limiter)
	}
	deps.AuthHandler.RegisterRoutes(public)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	if limiter != nil {
		protected.Use(limiter)
	}
	{
		deps.StreakHandler.RegisterRoutes(protected)
		deps.AnswerHandler.RegisterRoutes(protected)
	}

	return router
}

func healthHandler(checks map[string]HealthCheck, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		statusCode := http.StatusOK
		components := make(gin.H, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				components[name] = "unreachable"
				statusCode = http.StatusServiceUnavailable
				continue
			}
			components[name] = "connected"
		}

		status := "ok"
		if statusCode != http.StatusOK {
			status = "degraded"
		}

		c.JSON(statusCode, gin.H{
			"status":     status,
			"components": components,
			"uptime":     time.Since(startTime).String(),
		})
	}
}
