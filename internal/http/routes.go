package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, limiter Limiter, rateLimitPerMin int, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		rl := RateLimit(limiter, rateLimitPerMin, logger)
		api.POST("/register", rl, h.Register)
		api.POST("/login", rl, h.Login)

		protected := api.Group("", AuthJWT(h.JWTSecret, logger))
		{
			protected.POST("/plans", h.CreatePlan)
			protected.GET("/plans", h.ListPlans)
		}
	}
	return r
}
