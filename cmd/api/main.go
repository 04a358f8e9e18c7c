package main

import (
	"fmt"
	"net/http"
	"os"

	"farmbook/internal/config"
	"farmbook/internal/database"
	"farmbook/internal/handlers"
	"farmbook/internal/logger"
	"farmbook/internal/middleware"
	"farmbook/internal/models"
	"farmbook/internal/services"
	"farmbook/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "farmbook/internal/docs" // Import swagger docs
)

// @title           Farmbook API
// @version         1.0
// @description     Farmbook is a farm management backend covering farms, plots, growing seasons, expenses, harvests, incidents, field tasks, supply inventory, and an owner dashboard.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
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

	// Seed reference roles and bootstrap accounts
	db := dbManager.DB()
	if err := database.Seed(db); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	authService := services.NewAuthService(db, appConfig)
	userService := services.NewUserService(db)
	ownershipService := services.NewOwnershipService(db)
	farmService := services.NewFarmService(db, ownershipService)
	plotService := services.NewPlotService(db, ownershipService)
	seasonService := services.NewSeasonService(db, ownershipService)
	expenseService := services.NewExpenseService(db, ownershipService)
	harvestService := services.NewHarvestService(db, ownershipService)
	incidentService := services.NewIncidentService(db, ownershipService)
	taskService := services.NewTaskService(db, ownershipService)
	inventoryService := services.NewInventoryService(db, ownershipService)
	dashboardService := services.NewDashboardService(db, ownershipService)
	documentService := services.NewDocumentService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(userService)
	farmHandler := handlers.NewFarmHandler(farmService)
	plotHandler := handlers.NewPlotHandler(plotService)
	seasonHandler := handlers.NewSeasonHandler(seasonService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	harvestHandler := handlers.NewHarvestHandler(harvestService)
	incidentHandler := handlers.NewIncidentHandler(incidentService)
	taskHandler := handlers.NewTaskHandler(taskService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	documentHandler := handlers.NewDocumentHandler(documentService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/introspect", authHandler.Introspect)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.Auth(authService))

	protected.GET("/auth/me", authHandler.Me)

	// Farm routes
	farms := protected.Group("/farms")
	farms.POST("", farmHandler.CreateFarm)
	farms.GET("", farmHandler.ListFarms)
	farms.GET("/:id", farmHandler.GetFarm)
	farms.PUT("/:id", farmHandler.UpdateFarm)
	farms.DELETE("/:id", farmHandler.DeactivateFarm)
	farms.POST("/:id/plots", plotHandler.CreatePlot)
	farms.GET("/:id/plots", plotHandler.ListFarmPlots)
	farms.POST("/:id/warehouses", inventoryHandler.CreateWarehouse)
	farms.GET("/:id/warehouses", inventoryHandler.ListFarmWarehouses)

	// Plot routes
	plots := protected.Group("/plots")
	plots.GET("/:id", plotHandler.GetPlot)
	plots.PUT("/:id", plotHandler.UpdatePlot)
	plots.DELETE("/:id", plotHandler.DeletePlot)
	plots.POST("/:id/seasons", seasonHandler.CreateSeason)

	// Crop catalog
	protected.GET("/crops", seasonHandler.ListCrops)

	// Knowledge-base documents
	protected.GET("/documents", documentHandler.ListDocuments)

	// Season routes
	seasons := protected.Group("/seasons")
	seasons.GET("", seasonHandler.ListSeasons)
	seasons.GET("/:id", seasonHandler.GetSeason)
	seasons.PUT("/:id", seasonHandler.UpdateSeason)
	seasons.PUT("/:id/status", seasonHandler.TransitionSeason)
	seasons.POST("/:id/expenses", expenseHandler.CreateExpense)
	seasons.GET("/:id/expenses", expenseHandler.ListSeasonExpenses)
	seasons.POST("/:id/harvests", harvestHandler.RecordHarvest)
	seasons.GET("/:id/harvests", harvestHandler.ListSeasonHarvests)
	seasons.GET("/:id/harvests/summary", harvestHandler.SeasonHarvestSummary)
	seasons.POST("/:id/incidents", incidentHandler.ReportIncident)
	seasons.GET("/:id/incidents", incidentHandler.ListSeasonIncidents)
	seasons.POST("/:id/tasks", taskHandler.CreateTask)
	seasons.GET("/:id/tasks", taskHandler.ListSeasonTasks)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Harvest routes
	harvests := protected.Group("/harvests")
	harvests.DELETE("/:id", harvestHandler.DeleteHarvest)

	// Incident routes
	incidents := protected.Group("/incidents")
	incidents.PUT("/:id/status", incidentHandler.UpdateIncidentStatus)

	// Task routes
	tasks := protected.Group("/tasks")
	tasks.PUT("/:id/complete", taskHandler.CompleteTask)
	tasks.PUT("/:id/cancel", taskHandler.CancelTask)

	// Inventory routes
	supplies := protected.Group("/supplies")
	supplies.POST("/items", inventoryHandler.CreateSupplyItem)
	supplies.POST("/lots", inventoryHandler.CreateSupplyLot)

	warehouses := protected.Group("/warehouses")
	warehouses.POST("/:id/movements", inventoryHandler.RecordMovement)
	warehouses.GET("/:id/lots/:lot_id/on-hand", inventoryHandler.OnHand)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/overview", dashboardHandler.Overview)
	dashboard.GET("/tasks/today", dashboardHandler.TodayTasks)
	dashboard.GET("/tasks/upcoming", dashboardHandler.UpcomingTasks)
	dashboard.GET("/plots/status", dashboardHandler.PlotStatus)
	dashboard.GET("/inventory/low-stock", dashboardHandler.LowStock)

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.POST("/documents", documentHandler.CreateDocument)
	admin.GET("/documents", documentHandler.ListAllDocuments)
	admin.PUT("/documents/:id", documentHandler.UpdateDocument)
	admin.DELETE("/documents/:id", documentHandler.DeleteDocument)
	admin.PATCH("/documents/:id/active", documentHandler.SetDocumentActive)

	log.Infof("Starting Farmbook backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
