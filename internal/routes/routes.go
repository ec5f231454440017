package routes

import (
	"github.com/gin-gonic/gin"

	"panal/internal/handlers"
	"panal/internal/middleware"
	"panal/internal/models"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	categoryHandler *handlers.CategoryHandler,
	taskHandler *handlers.TaskHandler,
	commentHandler *handlers.CommentHandler,
	channelHandler *handlers.ChannelHandler,
	notificationHandler *handlers.NotificationHandler,
) *gin.Engine {

	// ---- público
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", userHandler.Register)

	// ---- protegido
	r.Use(middleware.AuthMiddleware())

	// USERS
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
		users.GET("/search", userHandler.Search)
	}

	// administración de la plataforma
	admin := r.Group("/admin/users", middleware.RequireGlobalRoles(models.GlobalAdmin))
	{
		admin.GET("/", userHandler.List)
		admin.DELETE("/:id", userHandler.Delete)
	}

	// PROJECTS
	projects := r.Group("/projects")
	{
		projects.POST("/", projectHandler.Create)
		projects.GET("/", projectHandler.List)
		projects.GET("/:id", projectHandler.GetByID)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)

		projects.POST("/:id/collaborators", projectHandler.AddCollaborator)
		projects.PUT("/:id/collaborators/:userId", projectHandler.ChangeCollaboratorRole)
		projects.DELETE("/:id/collaborators/:userId", projectHandler.RemoveCollaborator)

		projects.POST("/:id/categories", categoryHandler.Create)
		projects.GET("/:id/board", categoryHandler.Board)

		projects.POST("/:id/channels", channelHandler.Create)
		projects.GET("/:id/channels", channelHandler.ListByProject)

		projects.GET("/:id/report", projectHandler.Report)
	}

	// CATEGORIES
	categories := r.Group("/categories")
	{
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
		categories.POST("/:id/tasks", taskHandler.Create)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.GET("/", taskHandler.List)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.PUT("/:id/move", taskHandler.Move)
		tasks.DELETE("/:id", taskHandler.Delete)

		tasks.POST("/:id/comments", commentHandler.Create)
		tasks.GET("/:id/comments", commentHandler.ListByTask)
	}

	// COMMENTS
	comments := r.Group("/comments")
	{
		comments.PUT("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	// CHANNELS
	channels := r.Group("/channels")
	{
		channels.PUT("/:id", channelHandler.Update)
		channels.DELETE("/:id", channelHandler.Delete)
		channels.POST("/:id/messages", channelHandler.PostMessage)
		channels.GET("/:id/messages", channelHandler.ListMessages)
	}
	r.GET("/ws/channels/:id", channelHandler.Subscribe)

	// NOTIFICATIONS
	notifications := r.Group("/notifications")
	{
		notifications.GET("/", notificationHandler.List)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	return r
}
