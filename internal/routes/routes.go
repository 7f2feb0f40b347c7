package routes

import (
	"github.com/gin-gonic/gin"

	"mindzy/internal/handlers"
	"mindzy/internal/middleware"
	"mindzy/internal/utils"
)

func SetupRoutes(
	r *gin.Engine,
	tokens *utils.TokenIssuer,
	chatRequestsPerMinute int,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	taskHandler *handlers.TaskHandler,
	rewardHandler *handlers.RewardHandler,
	chatHandler *handlers.ChatHandler,
	eventHandler *handlers.EventHandler,
	navHandler *handlers.NavigationHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", handlers.Healthz)
	r.POST("/login", authHandler.Login)
	r.GET("/psychologists", handlers.Psychologists)

	// ---- protected
	r.Use(middleware.AuthMiddleware(tokens))

	// PROFILE
	profile := r.Group("/profile")
	{
		profile.GET("", profileHandler.Get)
		profile.PUT("/name", profileHandler.Rename)
		profile.PUT("/telegram", profileHandler.LinkTelegram)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/completed", taskHandler.Completed)
		tasks.GET("/overdue", taskHandler.Overdue)
		tasks.POST("/:id/complete", taskHandler.Complete)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// REWARDS
	rewards := r.Group("/rewards")
	{
		rewards.GET("", rewardHandler.List)
		rewards.POST("", rewardHandler.Create)
		rewards.GET("/:id/quote", rewardHandler.Quote)
		rewards.POST("/:id/redeem", rewardHandler.Redeem)
		rewards.DELETE("/:id", rewardHandler.Delete)
	}

	// CHAT (rate limited per device)
	chat := r.Group("/chat", middleware.DeviceRateLimit(chatRequestsPerMinute))
	{
		chat.POST("/sessions", chatHandler.Start)
		chat.GET("/sessions/:id", chatHandler.Get)
		chat.POST("/sessions/:id/messages", chatHandler.Send)
	}

	// EVENTS
	events := r.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.POST("/sort", eventHandler.Sort)
		events.GET("/:id", eventHandler.Get)
		events.POST("/:id/checkout", eventHandler.StartCheckout)
	}
	checkouts := r.Group("/checkouts")
	{
		checkouts.GET("/:id", eventHandler.GetCheckout)
		checkouts.POST("/:id/pay", eventHandler.Pay)
		checkouts.GET("/:id/ticket", eventHandler.Ticket)
	}

	// NAVIGATION
	nav := r.Group("/navigation")
	{
		nav.GET("", navHandler.Current)
		nav.POST("", navHandler.Navigate)
		nav.POST("/select", navHandler.SelectEvent)
		nav.POST("/back", navHandler.Back)
	}

	return r
}
