package routes

import (
	"github.com/campulist/campulist/internal/app/controllers"
	"github.com/campulist/campulist/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	campusController *controllers.CampusController,
	sessionController *controllers.SessionController,
	postController *controllers.PostController,
	chatController *controllers.ChatController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Health and reference data do not depend on the caller
	v1.GET("/health", healthController.Health)
	v1.GET("/campuses", campusController.ListCampuses)

	// Everything else acts as the token's session, or the default one
	api := v1.Group("")
	api.Use(authMiddleware.SessionAuth())

	session := api.Group("/session")
	{
		session.GET("", sessionController.GetSession)
		session.POST("/mock-login", sessionController.MockLogin)
		session.GET("/me", sessionController.GetCurrentUser)
		session.GET("/categories", sessionController.AllowedCategories)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", postController.ListPosts)
		posts.POST("", postController.CreatePost)
		posts.GET("/:id", postController.GetPost)
		posts.PATCH("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
		posts.POST("/:id/promote", postController.PromotePost)
	}

	chats := api.Group("/chats")
	{
		chats.GET("", chatController.ListMyChats)
		chats.POST("/start", chatController.StartChat)
		chats.GET("/:id/messages", chatController.ListMessages)
		chats.POST("/:id/messages", chatController.SendMessage)
		chats.GET("/:id/ws", chatController.HandleWebSocket)
	}

	reports := api.Group("/reports")
	{
		reports.POST("", reportController.CreateReport)
		reports.GET("", reportController.ListReports)
		reports.POST("/:id/resolve", reportController.ResolveReport)
	}
}
