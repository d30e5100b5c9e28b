package app

import (
	"time"

	"roadmap_learner_backend/docs"
	"roadmap_learner_backend/internal/middleware"
	"roadmap_learner_backend/pkg/monitoring"
	"roadmap_learner_backend/pkg/security"
	"roadmap_learner_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupRouter() *gin.Engine {
	docs.SwaggerInfo.BasePath = "/"

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(security.CORS(a.Config.CORS.AllowedOrigins))
	r.Use(security.Secure())
	r.Use(monitoring.MetricsMiddleware())

	if a.Config.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}

	if a.Config.RateLimit.MaxRequests > 0 {
		window := time.Duration(a.Config.RateLimit.WindowMinutes) * time.Minute
		r.Use(security.RateLimiter(a.Config.RateLimit.MaxRequests, window))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", monitoring.PrometheusHandler())

	api := r.Group("/api")
	{
		api.POST("/register", a.authController.Register)
		api.POST("/login", a.authController.Login)
		api.GET("/health", a.healthController.Check)
	}

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(a.Config))
	{
		auth.GET("/profile", a.authController.GetProfile)

		auth.GET("/users", a.userController.List)
		auth.GET("/users/:userId", a.userController.Get)
		auth.PATCH("/users/:userId", a.userController.Update)
		auth.DELETE("/users/:userId", a.userController.Delete)

		auth.GET("/roadmaps", a.roadmapController.List)
		auth.POST("/roadmaps", a.roadmapController.Create)
		auth.GET("/roadmaps/:roadmapId", a.roadmapController.Get)
		auth.PATCH("/roadmaps/:roadmapId", a.roadmapController.Update)
		auth.DELETE("/roadmaps/:roadmapId", a.roadmapController.Delete)

		auth.GET("/roadmaps/:roadmapId/blocks", a.blockController.ListByRoadmap)
		auth.POST("/roadmaps/:roadmapId/blocks", a.blockController.Create)
		auth.GET("/blocks/:blockId", a.blockController.Get)
		auth.PATCH("/blocks/:blockId", a.blockController.Update)
		auth.DELETE("/blocks/:blockId", a.blockController.Delete)

		auth.GET("/blocks/:blockId/cards", a.cardController.ListByBlock)
		auth.POST("/blocks/:blockId/cards", a.cardController.Create)
		auth.GET("/cards/:cardId", a.cardController.Get)
		auth.PATCH("/cards/:cardId", a.cardController.Update)
		auth.DELETE("/cards/:cardId", a.cardController.Delete)

		auth.GET("/sessions", a.sessionController.List)
		auth.POST("/sessions", a.sessionController.Create)
		auth.GET("/sessions/:sessionId", a.sessionController.Get)
		auth.DELETE("/sessions/:sessionId", a.sessionController.Delete)
		auth.GET("/sessions/:sessionId/next-card", a.sessionController.NextCard)
		auth.PATCH("/sessions/:sessionId/answer", a.sessionController.SubmitAnswer)
		auth.POST("/sessions/:sessionId/finish", a.sessionController.Finish)
		auth.POST("/sessions/:sessionId/abandon", a.sessionController.Abandon)

		admin := auth.Group("/admin")
		admin.Use(middleware.SuperuserMiddleware())
		{
			admin.GET("/users", a.adminController.ListUsers)
			admin.GET("/roadmaps", a.adminController.ListRoadmaps)
			admin.GET("/blocks", a.adminController.ListBlocks)
			admin.GET("/cards", a.adminController.ListCards)
			admin.GET("/sessions", a.adminController.ListSessions)
		}
	}

	return r
}
