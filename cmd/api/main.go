package main

import (
	"fmt"
	"net/http"
	"os"

	"nivesh/internal/config"
	"nivesh/internal/database"
	"nivesh/internal/handlers"
	"nivesh/internal/logger"
	"nivesh/internal/middleware"
	"nivesh/internal/services"
	"nivesh/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           Nivesh API
// @version         1.0
// @description     Nivesh is a personal investment tracker for Indian savers: one place for deposits, provident funds, small savings schemes, insurance, and market holdings, valued on demand.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use APP_ENV if available, default to development)
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	settingsService := services.NewSettingsService(db)
	investmentService := services.NewInvestmentService(db)
	portfolioService := services.NewPortfolioService(db, settingsService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, portfolioService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		if err := dbManager.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Kind registry is public; clients need it to render forms pre-login
	v1.GET("/investments/kinds", investmentHandler.ListKinds)

	// Price feed routes, guarded by API key instead of user auth
	pricefeed := v1.Group("/pricefeed")
	pricefeed.Use(middleware.PriceFeedAuthMiddleware(appConfig.PriceFeedAPIKey))
	pricefeed.POST("/prices", investmentHandler.ApplyPriceFeed)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)
	investments.PUT("/:id/price", investmentHandler.UpdatePrice)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("/summary", portfolioHandler.GetSummary)
	portfolio.GET("/allocation", portfolioHandler.GetAllocation)
	portfolio.GET("/highlights", portfolioHandler.GetHighlights)
	portfolio.GET("/interest/yearly", portfolioHandler.GetYearlyInterest)
	portfolio.GET("/interest/monthly", portfolioHandler.GetMonthlyInterest)

	// Settings routes
	protected.GET("/settings", settingsHandler.GetSettings)
	protected.PUT("/settings", settingsHandler.UpdateSettings)

	log.Infof("Starting Nivesh backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
