package routes

import (
	"net/http"
	"time"

	"futsal/handlers"
	"futsal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSlotRoutes registers the public slot catalog plus its manager CRUD.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.GET("", hb.ListSlotsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(middleware.RoleManager))
		protected.POST("", hb.CreateSlotHandler)
		protected.PUT("/:id", hb.UpdateSlotHandler)
		protected.DELETE("/:id", hb.DeleteSlotHandler)
	}
}

// RegisterBookingRoutes registers client booking endpoints and the manager
// console.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListMyBookingsHandler)

		manager := api.Group("/manage")
		manager.Use(middleware.RequireRole(middleware.RoleManager))
		manager.GET("", hb.ListBookingsHandler)
		manager.POST("", hb.CreateBookingByManagerHandler)
		manager.PUT("/:id", hb.UpdateBookingHandler)
		manager.DELETE("/:id", hb.DeleteBookingHandler)
	}
}

// RegisterSubscriptionRoutes registers client subscription endpoints and the
// manager console.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateSubscriptionHandler)
		api.GET("", hb.ListMySubscriptionsHandler)
		api.PUT("/:id/cancel", hb.CancelSubscriptionHandler)

		manager := api.Group("/manage")
		manager.Use(middleware.RequireRole(middleware.RoleManager))
		manager.GET("", hb.ListSubscriptionsHandler)
		manager.POST("", hb.CreateSubscriptionByManagerHandler)
		manager.PUT("/:id", hb.UpdateSubscriptionHandler)
		manager.DELETE("/:id", hb.DeleteSubscriptionHandler)
	}
}

// RegisterAccessRoutes registers the gate verification endpoint.
func RegisterAccessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/access")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/verify", hb.VerifyAccessHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSlotRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterAccessRoutes(r, hb)
}
