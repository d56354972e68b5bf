package app

import (
	"songday_backend/docs"
	"songday_backend/internal/config"
	"songday_backend/internal/middleware"
	"songday_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 全站分享流允许游客浏览
		public.GET("/songs", middleware.TryAuthMiddleware(cfg), c.song.Feed)
		public.GET("/songs/:id", middleware.TryAuthMiddleware(cfg), c.song.GetSong)
		public.GET("/users/:id", middleware.TryAuthMiddleware(cfg), c.user.GetProfile)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)

		authGroup.GET("/users/search", c.friendship.SearchUsers)

		authGroup.GET("/friendships", c.friendship.ListFriendships)
		authGroup.POST("/friendships", c.friendship.SendRequest)
		authGroup.POST("/friendships/:id/respond", c.friendship.Respond)
		authGroup.DELETE("/friendships/:id", c.friendship.Remove)

		authGroup.GET("/conversations", c.chat.ListConversations)
		authGroup.POST("/conversations", c.chat.GetOrCreatePrivateChat)
		authGroup.GET("/conversations/:id/messages", c.chat.GetMessages)
		authGroup.POST("/conversations/:id/messages", c.chat.SendMessage)

		authGroup.POST("/songs", c.song.CreateSong)
		authGroup.PUT("/songs/:id", c.song.UpdateSong)
		authGroup.DELETE("/songs/:id", c.song.DeleteSong)
		authGroup.GET("/songs/friends", c.song.FriendsFeed)
		authGroup.GET("/songs/mine", c.song.MySongs)

		authGroup.GET("/search/tracks", c.search.SearchTracks)

		authGroup.GET("/notifications", c.notification.List)
		authGroup.GET("/notifications/unread", c.notification.UnreadCount)
		authGroup.POST("/notifications/:id/read", c.notification.MarkRead)
	}
}
