package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sparkdate/spark-server/internal/config"
	"github.com/sparkdate/spark-server/internal/handlers"
	"github.com/sparkdate/spark-server/internal/middleware"
	"github.com/sparkdate/spark-server/internal/realtime"
	"github.com/sparkdate/spark-server/internal/services"
)

// Services bundles everything the router needs.
type Services struct {
	Auth     *services.AuthService
	Profiles *services.ProfileService
	Blocks   *services.BlockService
	Feed     *services.FeedService
	Swipes   *services.SwipeService
	Matches  *services.MatchService
	Messages *services.MessageService
	Hub      *realtime.Hub
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, svc *Services, cfg *config.Config) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)

	authHandler := handlers.NewAuthHandler(svc.Auth)
	profileHandler := handlers.NewProfileHandler(svc.Profiles, svc.Blocks)
	feedHandler := handlers.NewFeedHandler(svc.Feed, cfg)
	swipeHandler := handlers.NewSwipeHandler(svc.Swipes)
	matchHandler := handlers.NewMatchHandler(svc.Matches, cfg)
	messageHandler := handlers.NewMessageHandler(svc.Messages, cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	public := router.Group("/api/v1")
	public.Use(middleware.RateLimitMiddleware(limiter))
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg), middleware.RateLimitMiddleware(limiter))
	{
		private.POST("/auth/logout-all", authHandler.LogoutAll)

		profile := private.Group("/profile")
		{
			profile.GET("/me", profileHandler.Me)
			profile.PATCH("/me", profileHandler.UpdateMe)
			profile.PUT("/me/location", profileHandler.UpdateLocation)
		}

		users := private.Group("/users")
		{
			users.GET("/:id", profileHandler.PublicProfile)
			users.POST("/:id/block", profileHandler.Block)
			users.DELETE("/:id/block", profileHandler.Unblock)
		}

		private.GET("/feed", feedHandler.List)
		private.POST("/swipes", swipeHandler.Swipe)

		matches := private.Group("/matches")
		{
			matches.GET("", matchHandler.List)
			matches.GET("/:id", matchHandler.Details)
			matches.DELETE("/:id", matchHandler.Unmatch)
			matches.GET("/:id/messages", messageHandler.List)
			matches.POST("/:id/messages", messageHandler.Send)
			matches.POST("/:id/messages/read", messageHandler.MarkRead)
		}
	}

	// Websocket endpoint authenticates via query token; see realtime.ServeWS.
	router.GET("/ws", realtime.ServeWS(svc.Hub, cfg))
}
