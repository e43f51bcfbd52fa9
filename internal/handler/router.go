package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"real_estate/internal/config"
	"real_estate/internal/middleware"
	"real_estate/pkg/logger"
)

func SetupRouter(
	handlers *Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", handlers.Health.Check)

	if cfg.Upload.Dir != "" && strings.HasPrefix(cfg.Upload.BaseURL, "/") {
		router.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)
	}

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			limited := auth.Group("", rateLimitMiddleware.Limit())
			limited.POST("/signup", handlers.Auth.SignUp)
			limited.POST("/signin", handlers.Auth.SignIn)
			limited.POST("/signin-broker", handlers.Auth.SignInBroker)
			limited.POST("/google-auth", handlers.Auth.GoogleAuth)
			limited.POST("/admin-login", handlers.Auth.AdminLogin)

			auth.POST("/signout", authMiddleware.RequireAuth(), handlers.Auth.SignOut)
		}

		listing := api.Group("/listing")
		{
			listing.GET("/get/:id", handlers.Listing.Get)
			listing.GET("/search", handlers.Listing.Search)

			owned := listing.Group("", authMiddleware.RequireAuth())
			owned.POST("/create-listing", handlers.Listing.Create)
			owned.POST("/edit/:id", handlers.Listing.Edit)
			owned.DELETE("/delete/:id", handlers.Listing.Delete)
			owned.GET("/userListings/:id", handlers.Listing.UserListings)
		}

		user := api.Group("/user", authMiddleware.RequireAuth())
		{
			user.PUT("/update/:id", handlers.User.Update)
			user.POST("/save-listing", handlers.User.SaveListing)
			user.POST("/unsave-listing", handlers.User.UnsaveListing)
			user.GET("/get-saved/:id", handlers.User.GetSaved)
			user.POST("/save-preferences", handlers.User.SavePreferences)
			user.GET("/get-preferences/:userId", handlers.User.GetPreferences)

			user.GET("/get-all-preferences", handlers.Broker.AllPreferences)
			user.GET("/get-interested-users/:brokerId", handlers.Broker.InterestedUsers)
			user.GET("/preference-analytics", handlers.Broker.PreferenceAnalytics)
		}

		chats := api.Group("/chats", authMiddleware.RequireAuth())
		{
			chats.POST("/start", handlers.Chat.Start)
			chats.POST("/send", handlers.Chat.Send)
			chats.GET("/:chatRoomId/messages", handlers.Chat.Messages)
			chats.GET("/my/:userId", handlers.Chat.MyChats)
		}

		admin := api.Group("/admin", authMiddleware.RequireAdmin())
		{
			admin.GET("/listings", handlers.Admin.Listings)
			admin.GET("/users", handlers.Admin.Users)
			admin.PATCH("/verify/:id", handlers.Admin.ToggleVerified)
			admin.DELETE("/user/:id", handlers.Admin.DeleteUser)
			admin.DELETE("/listing/:id", handlers.Admin.DeleteListing)
			admin.GET("/userListings/:id", handlers.Admin.UserListings)
		}
	}

	router.GET("/ws", authMiddleware.RequireSocketAuth(), handlers.WebSocket.Serve)

	return router
}
