package router

import (
	"github.com/labstack/echo/v4"

	"shopmate/internal/rest"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.GET("/me", handler.Me, authRequired)
}

func SetupAppRoutes(
	api *echo.Group,
	chatHandler *rest.ChatHandler,
	dealsHandler *rest.DealsHandler,
	ordersHandler *rest.OrdersHandler,
	paymentsHandler *rest.PaymentsHandler,
	authRequired echo.MiddlewareFunc,
) {
	app := api.Group("/app", authRequired)

	app.POST("/chat", chatHandler.Chat)
	app.GET("/chat/history", chatHandler.ChatHistory)
	app.GET("/deals", dealsHandler.GetDeals)
	app.GET("/orders", ordersHandler.GetOrders)
	app.GET("/payments", paymentsHandler.GetPayments)
}
