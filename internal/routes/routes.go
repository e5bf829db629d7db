package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vaaltic/crm/internal/handlers"
	"github.com/vaaltic/crm/internal/middleware"
)

// SetupRoutes wires the /api surface. The auth middleware is installed
// globally with a public-path allowlist, so every route below except
// register/login requires a bearer token.
func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	leadHandler *handlers.LeadHandler,
	contactHandler *handlers.ContactHandler,
	dealHandler *handlers.DealHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	loginLimiter *middleware.LoginRateLimiter,
) *gin.Engine {

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		auth.GET("/me", authHandler.Me)
	}

	leads := api.Group("/leads")
	{
		leads.POST("", leadHandler.Create)
		leads.GET("", leadHandler.List)
		leads.PUT("/:id", leadHandler.Update)
		leads.DELETE("/:id", leadHandler.Delete)
	}

	contacts := api.Group("/contacts")
	{
		contacts.POST("", contactHandler.Create)
		contacts.GET("", contactHandler.List)
		contacts.PUT("/:id", contactHandler.Update)
		contacts.DELETE("/:id", contactHandler.Delete)
	}

	deals := api.Group("/deals")
	{
		deals.POST("", dealHandler.Create)
		deals.GET("", dealHandler.List)
		deals.PUT("/:id", dealHandler.Update)
		deals.DELETE("/:id", dealHandler.Delete)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/dashboard", analyticsHandler.Dashboard)
		analytics.GET("/dashboard/export", analyticsHandler.Export)
	}

	return r
}
