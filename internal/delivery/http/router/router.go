// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	productHandler *handler.ProductHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		productHandler: params.ProductHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Identity routes
	userGroup := e.Group("/user")
	{
		userGroup.POST("/register", r.userHandler.Register)
		userGroup.POST("/login", r.userHandler.Login)
	}

	// Cart routes; every operation acts on the authenticated caller's cart.
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.POST("/add", r.cartHandler.AddItem)
		cartGroup.POST("/remove", r.cartHandler.RemoveItem)
		cartGroup.GET("", r.cartHandler.GetCart)
	}

	// Order routes
	orderGroup := e.Group("/order")
	{
		orderGroup.POST("/place", r.orderHandler.Place, r.authMiddleware.Authenticate)
		orderGroup.POST("/place/direct", r.orderHandler.PlaceDirect, r.authMiddleware.Authenticate)
		orderGroup.GET("/userOrders", r.orderHandler.ListUserOrders, r.authMiddleware.Authenticate)
		orderGroup.GET("/list", r.orderHandler.ListOrders)
		orderGroup.PATCH("/updateStatus/:orderId", r.orderHandler.UpdateStatus)
	}

	// Catalog routes
	productGroup := e.Group("/products")
	{
		productGroup.POST("/add", r.productHandler.Add)
		productGroup.GET("/list", r.productHandler.List)
		productGroup.DELETE("/remove/:id", r.productHandler.Remove)
	}
}
