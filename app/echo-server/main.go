package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopmate/app/echo-server/router"
	"shopmate/business/chat"
	"shopmate/business/deals"
	"shopmate/business/orders"
	"shopmate/business/payments"
	userService "shopmate/business/user"
	"shopmate/internal/middleware"
	"shopmate/internal/repository/actions"
	"shopmate/internal/repository/groq"
	psqlRepo "shopmate/internal/repository/postgres"
	redisRepo "shopmate/internal/repository/redis"
	"shopmate/internal/rest"
	"shopmate/pkg/config"
	"shopmate/pkg/database"
	redisdb "shopmate/pkg/database/redis"
	"shopmate/pkg/logger"
	"shopmate/pkg/metrics"
	"shopmate/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ShopMate", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		_ = redisdb.CloseRedisClient(redisClient)
	}()

	metrics.Init()

	// Init external gateways
	groqRepo := groq.NewGroqRepository(groq.GroqConfig{
		APIKey:  cfg.Groq.APIKey,
		BaseURL: cfg.Groq.BaseURL,
		Model:   cfg.Groq.Model,
	})

	actionsClient := actions.NewActionsClient(actions.ActionsConfig{
		BaseURL: cfg.Server.BaseURL,
	})

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	dealRepo := psqlRepo.NewDealRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	paymentsRepo := psqlRepo.NewPaymentsRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)

	// Init service
	usersService := userService.NewUserService(userRepo, validate, cfg.JWT.SecretKey)
	dealsService := deals.NewDealsService(dealRepo, groqRepo)
	ordersService := orders.NewOrdersService(ordersRepo, groqRepo)
	paymentsService := payments.NewPaymentsService(paymentsRepo)
	chatService := chat.NewChatService(groqRepo, actionsClient, sessionRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usersService)
	dealsHandler := rest.NewDealsHandler(dealsService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	paymentsHandler := rest.NewPaymentsHandler(paymentsService)
	chatHandler := rest.NewChatHandler(chatService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:4000"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, response.Success("Chatbot API Server is running", nil))
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)

	// Setup routes
	api := e.Group("/api")
	router.SetupAuthRoutes(api, userHandler, authRequired)
	router.SetupAppRoutes(api, chatHandler, dealsHandler, ordersHandler, paymentsHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
