// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pixelstore/internal/delivery/http/middleware"
	"pixelstore/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler: params.CatalogHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		reviewHandler:  params.ReviewHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Storefront catalog, read-only
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.catalogHandler.ListProducts)
		productGroup.GET("/:id", r.catalogHandler.GetProduct)
	}

	// Session cart
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:productID", r.cartHandler.ChangeQuantity)
		cartGroup.DELETE("/items/:productID", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Checkout
	e.POST("/checkout", r.orderHandler.Checkout)

	// Review gate
	reviewGroup := e.Group("/reviews")
	{
		reviewGroup.GET("", r.reviewHandler.ListReviews)
		reviewGroup.GET("/verify/:orderNumber", r.reviewHandler.VerifyOrder)
		reviewGroup.POST("", r.reviewHandler.SubmitReview)
	}

	// Admin login is the only open admin route
	e.POST("/admin/login", r.adminHandler.Login)

	// Admin console routes require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)         // First, check if logged in
	adminGroup.Use(r.authMiddleware.RequireRole("admin")) // Then, check for the role
	{
		adminGroup.GET("/stats", r.adminHandler.Stats)

		adminGroup.POST("/products", r.catalogHandler.CreateProduct)
		adminGroup.PUT("/products/:id", r.catalogHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.catalogHandler.DeleteProduct)
		adminGroup.POST("/products/images", r.catalogHandler.UploadImage)

		adminGroup.GET("/orders", r.orderHandler.ListOrders)
		adminGroup.GET("/orders/:id", r.orderHandler.GetOrder)
		adminGroup.PATCH("/orders/:id/status", r.orderHandler.AdvanceStatus)
		adminGroup.DELETE("/orders/:id", r.orderHandler.DeleteOrder)

		adminGroup.DELETE("/reviews/:id", r.reviewHandler.DeleteReview)
	}
}
