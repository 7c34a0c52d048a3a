package app

import (
	"atomic_sensei_backend/docs"
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/middleware"
	"atomic_sensei_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerRoadmapRoutes(authGroup, c)
		a.registerContentRoutes(authGroup, c)
		a.registerQuizRoutes(authGroup, c)
		a.registerTimerRoutes(authGroup, c)
		a.registerNotificationRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	users := rg.Group("/users")
	{
		users.GET("/profile", c.user.GetProfile)
		users.PUT("/profile", c.user.UpdateProfile)
		users.PUT("/password", c.user.ChangePassword)
	}
}

func (a *App) registerRoadmapRoutes(rg *gin.RouterGroup, c *controllers) {
	roadmaps := rg.Group("/roadmaps")
	{
		roadmaps.POST("", c.roadmap.CreateRoadmap)
		roadmaps.GET("", c.roadmap.ListRoadmaps)
		roadmaps.GET("/:id", c.roadmap.GetRoadmap)
		roadmaps.DELETE("/:id", c.roadmap.DeleteRoadmap)
		roadmaps.PUT("/:id/progress", c.roadmap.UpdateTopicProgress)
		roadmaps.GET("/:id/progress", c.roadmap.GetProgress)
		roadmaps.PUT("/:id/progress/subtopic", c.roadmap.UpdateSubtopicProgress)
		roadmaps.GET("/:id/next-unit", c.roadmap.GetNextUnit)
		roadmaps.GET("/:id/export", c.roadmap.ExportRoadmap)
	}
}

func (a *App) registerContentRoutes(rg *gin.RouterGroup, c *controllers) {
	content := rg.Group("/content")
	{
		content.POST("/generate", c.content.GenerateContent)
		content.GET("/roadmap/:roadmapId/module/:m/topic/:t", c.content.GetContentByUnit)
		content.GET("/roadmap/:roadmapId/module/:m/topic/:t/subtopic/:s", c.content.GetContentByUnit)
		content.GET("/:id", c.content.GetContent)
		content.PUT("/:id", c.content.UpdateContent)
		content.DELETE("/:id", c.content.DeleteContent)
	}
}

func (a *App) registerQuizRoutes(rg *gin.RouterGroup, c *controllers) {
	quizzes := rg.Group("/quizzes")
	{
		quizzes.POST("/generate", c.quiz.GenerateQuiz)
		quizzes.GET("/roadmap/:roadmapId/module/:m/topic/:t", c.quiz.GetQuizByUnit)
		quizzes.GET("/roadmap/:roadmapId/module/:m/topic/:t/subtopic/:s", c.quiz.GetQuizByUnit)
		quizzes.GET("/results/:quizId", c.quiz.GetResults)
		quizzes.GET("/:id", c.quiz.GetQuiz)
		quizzes.POST("/:id/submit", c.quiz.SubmitQuiz)
	}
}

func (a *App) registerTimerRoutes(rg *gin.RouterGroup, c *controllers) {
	timers := rg.Group("/timers")
	{
		timers.POST("", c.timer.CreateTimer)
		timers.POST("/suggest", c.timer.SuggestTimer)
		timers.GET("/active", c.timer.GetActiveTimers)
		timers.GET("/current", c.timer.GetCurrentTimer)
		timers.GET("/history", c.timer.GetTimerHistory)
		timers.GET("/next", c.timer.GetNextContent)
		timers.PUT("/:id/delivered", c.timer.MarkDelivered)
		timers.PUT("/:id/snooze", c.timer.SnoozeTimer)
		timers.DELETE("/:id", c.timer.DeleteTimer)
	}
}

func (a *App) registerNotificationRoutes(rg *gin.RouterGroup, c *controllers) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", c.notification.ListNotifications)
		notifications.GET("/unread-count", c.notification.UnreadCount)
		notifications.PUT("/:id/read", c.notification.MarkRead)
		notifications.DELETE("", c.notification.ClearNotifications)
	}
}
