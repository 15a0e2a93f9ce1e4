package app

import (
	"seangkatan_backend/internal/config"
	"seangkatan_backend/internal/middleware"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	api.GET("/health", c.health.Health)
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/auth/profile", c.auth.Profile)
		auth.PUT("/auth/profile", c.auth.UpdateProfile)
		auth.PUT("/auth/password", c.auth.ChangePassword)

		auth.GET("/classes", c.class.List)
		auth.GET("/classes/:id", c.class.Get)

		auth.GET("/events", c.event.List)
		auth.GET("/events/:id", c.event.Get)
		auth.POST("/events/:id/bookings", c.event.Book)
		auth.GET("/bookings", c.event.MyBookings)
		auth.DELETE("/bookings/:id", c.event.CancelBooking)

		auth.GET("/quizzes", c.quiz.List)
		auth.GET("/quizzes/:id", c.quiz.Get)
		auth.GET("/quizzes/:id/questions", c.quiz.Questions)

		student := auth.Group("")
		student.Use(middleware.RoleMiddleware(model.RoleStudent))
		{
			student.POST("/quizzes/:id/attempts", c.attempt.Start)
			student.POST("/attempts/:id/answers", c.attempt.SubmitAnswer)
			student.POST("/attempts/:id/complete", c.attempt.Complete)
		}
		auth.GET("/attempts/:id", c.attempt.Results)
		auth.GET("/attempts", c.attempt.History)

		auth.GET("/badges", c.badge.List)
		auth.GET("/users/:id/badges", c.badge.UserBadges)

		auth.GET("/posts", c.post.List)
		auth.GET("/posts/:id", c.post.Get)
		auth.POST("/posts", c.post.Create)
		auth.PUT("/posts/:id", c.post.Update)
		auth.DELETE("/posts/:id", c.post.Delete)
		auth.POST("/posts/:id/like", c.post.Like)
		auth.GET("/posts/:id/comments", c.post.Comments)
		auth.POST("/posts/:id/comments", c.post.AddComment)
		auth.POST("/comments/:id/like", c.post.LikeComment)

		auth.GET("/albums", c.album.List)
		auth.GET("/albums/:id", c.album.Get)
		auth.GET("/albums/:id/photos", c.album.Photos)
		auth.GET("/photos/:id", c.album.GetPhoto)
		auth.DELETE("/photos/:id", c.album.DeletePhoto)
		auth.POST("/photos/:id/like", c.album.LikePhoto)

		chat := auth.Group("/chat")
		{
			chat.GET("/rooms", c.chat.Rooms)
			chat.PUT("/rooms/:id", c.chat.UpdateRoom)
			chat.DELETE("/rooms/:id", c.chat.DeleteRoom)
			chat.POST("/rooms/:id/join", c.chat.Join)
			chat.POST("/rooms/:id/leave", c.chat.Leave)
			chat.GET("/rooms/:id/messages", c.chat.Messages)
			chat.POST("/rooms/:id/messages", c.chat.SendMessage)
			chat.GET("/rooms/:id/online", c.chat.OnlineMembers)
			chat.PUT("/messages/:id", c.chat.EditMessage)
			chat.DELETE("/messages/:id", c.chat.DeleteMessage)
			chat.POST("/messages/:id/reactions", c.chat.React)
			chat.GET("/stickers", c.chat.Stickers)
			chat.GET("/settings", c.chat.Settings)
			chat.PUT("/settings", c.chat.UpdateSettings)
			chat.GET("/ws", c.chat.Connect)
		}

		staff := auth.Group("")
		staff.Use(middleware.StaffOnly())
		{
			staff.GET("/classes/:id/students", c.class.Students)

			staff.POST("/chat/rooms", c.chat.CreateRoom)

			staff.POST("/events", c.event.Create)
			staff.PUT("/events/:id", c.event.Update)
			staff.POST("/events/:id/cancel", c.event.Cancel)
			staff.GET("/events/:id/bookings", c.event.Bookings)
			staff.POST("/bookings/:id/confirm", c.event.ConfirmBooking)

			staff.POST("/quizzes", c.quiz.Create)
			staff.PUT("/quizzes/:id", c.quiz.Update)
			staff.DELETE("/quizzes/:id", c.quiz.Delete)
			staff.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
			staff.PUT("/questions/:id", c.quiz.UpdateQuestion)
			staff.DELETE("/questions/:id", c.quiz.DeleteQuestion)

			staff.POST("/users/:id/badges/:badge_id", c.badge.Award)

			staff.POST("/posts/:id/moderate", c.post.Moderate)
			staff.POST("/comments/:id/moderate", c.post.ModerateComment)

			staff.POST("/albums", c.album.Create)
			staff.PUT("/albums/:id", c.album.Update)
			staff.DELETE("/albums/:id", c.album.Delete)
			staff.POST("/albums/:id/photos", c.album.UploadPhotos)
		}

		admin := auth.Group("")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/classes", c.class.Create)
			admin.PUT("/classes/:id", c.class.Update)
			admin.DELETE("/classes/:id", c.class.Delete)

			admin.POST("/badges", c.badge.Create)
			admin.PUT("/badges/:id", c.badge.Update)
			admin.DELETE("/badges/:id", c.badge.Delete)
			admin.DELETE("/users/:id/badges/:badge_id", c.badge.Revoke)

			admin.POST("/chat/stickers", c.chat.CreateSticker)
			admin.PUT("/chat/stickers/:id", c.chat.UpdateSticker)
			admin.DELETE("/chat/stickers/:id", c.chat.DeleteSticker)
		}
	}
}
