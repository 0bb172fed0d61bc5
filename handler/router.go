package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"smartstore-backend/admin"
	"smartstore-backend/auth"
	"smartstore-backend/customer"
	"smartstore-backend/entity"
	"smartstore-backend/middleware"
	"smartstore-backend/order"
)

type Deps struct {
	Customers      *customer.Service
	Admins         *admin.Service
	Orders         *order.Service
	CustomerLoader middleware.Loader[*entity.Customer]
	AdminLoader    middleware.Loader[*entity.Admin]
	Tokens         *auth.Tokens
	Carrier        auth.SessionCarrier
	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	customerGate := middleware.NewGate(auth.KindCustomer, d.Carrier, d.Tokens, d.CustomerLoader)
	meGate := middleware.NewGate(auth.KindCustomer, d.Carrier, d.Tokens, d.CustomerLoader, middleware.MissingPrincipalNotFound())
	adminGate := middleware.NewGate(auth.KindAdmin, d.Carrier, d.Tokens, d.AdminLoader)

	authHandler := NewAuthHandler(d.Customers, d.Carrier)
	userHandler := NewUserHandler(d.Customers, d.Orders)
	adminHandler := NewAdminHandler(d.Admins, d.Customers, d.Orders, d.Carrier)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register())
		authGroup.POST("/login", authHandler.Login())
		authGroup.POST("/logout", authHandler.Logout())
		authGroup.GET("/me", meGate.Handler(), authHandler.Me())
	}

	user := api.Group("/user", customerGate.Handler())
	{
		user.GET("/profile", userHandler.Profile())
		user.PUT("/profile", userHandler.UpdateProfile())
		user.GET("/order", userHandler.Orders())
		user.POST("/orders", userHandler.PlaceOrder())
		user.PUT("/order/cancel/:id", userHandler.CancelOrder())
		user.POST("/wishlist", userHandler.ToggleWishlist())
	}

	adminGroup := api.Group("/admin")
	{
		adminGroup.POST("/login", adminHandler.Login())
		adminGroup.POST("/logout", adminHandler.Logout())

		console := adminGroup.Group("", adminGate.Handler())
		console.GET("/dashboard", adminHandler.Dashboard())
		console.GET("/users", adminHandler.Users())
		console.DELETE("/users/:id", adminHandler.DeleteUser())
		console.GET("/orders", adminHandler.Orders())
		console.PUT("/orders/:id", adminHandler.UpdateOrderStatus())
		console.DELETE("/orders/:orderId", adminHandler.DeleteOrder())
	}

	return r
}
