package routes

import (
	"github.com/gin-gonic/gin"

	supporthandlers "parley/internal/interfaces/http/handlers/support"
	"parley/internal/interfaces/http/middleware"
)

type SupportRouteConfig struct {
	UserHandler     *supporthandlers.UserHandler
	AdminHandler    *supporthandlers.AdminHandler
	AuthMiddleware  *middleware.AuthMiddleware
	NonceMiddleware *middleware.NonceMiddleware
}

func SetupSupportRoutes(engine *gin.Engine, config *SupportRouteConfig) {
	support := engine.Group("/support")
	support.Use(config.AuthMiddleware.RequireAuth())
	{
		support.GET("/nonce", config.UserHandler.GetNonce)
		support.GET("/ticket", config.UserHandler.GetTicket)
		support.POST("/message", config.UserHandler.PostMessage)
		support.GET("/unread_count", config.UserHandler.UnreadCount)

		// State-changing endpoints driven by background polling carry a
		// per-session nonce on top of the auth token.
		support.POST("/mark_read",
			config.NonceMiddleware.RequireNonce(),
			config.UserHandler.MarkRead)
		support.POST("/translate",
			config.NonceMiddleware.RequireNonce(),
			config.UserHandler.Translate)
	}

	admin := support.Group("/admin")
	admin.Use(config.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/tickets", config.AdminHandler.ListTickets)
		admin.POST("/reply", config.AdminHandler.Reply)
		admin.POST("/close", config.AdminHandler.Close)
		admin.POST("/delete", config.AdminHandler.Delete)

		admin.GET("/broadcast", config.AdminHandler.BroadcastTargets)
		admin.POST("/broadcast",
			config.NonceMiddleware.RequireNonce(),
			config.AdminHandler.Broadcast)

		// Legacy status endpoint kept for older admin panels.
		admin.POST("/status/:id", config.AdminHandler.ChangeStatus)

		// Parameterized routes last to avoid conflicts with the fixed paths.
		admin.GET("/tickets/:id", config.AdminHandler.GetTicket)
	}
}
