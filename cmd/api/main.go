package main

import (
	"fmt"
	"net/http"
	"os"

	"fieldtrack/internal/config"
	"fieldtrack/internal/database"
	"fieldtrack/internal/handlers"
	"fieldtrack/internal/logger"
	"fieldtrack/internal/middleware"
	"fieldtrack/internal/services"
	"fieldtrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fieldtrack/internal/docs" // Import swagger docs
)

// @title           Fieldtrack API
// @version         1.0
// @description     Fieldtrack tracks field-operations employees through the onboarding pipeline: phase dashboards, spreadsheet import with field-level audit, and planning reports.
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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	employeeService := services.NewEmployeeService(db, auditService)
	importService := services.NewImportService(db, auditService)
	exportService := services.NewExportService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	uploadHandler := handlers.NewUploadHandler(importService)
	exportHandler := handlers.NewExportHandler(exportService)
	auditHandler := handlers.NewAuditHandler(auditService)
	reportHandler := handlers.NewReportHandler(reportService)

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

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Profile)

	// Employee routes
	employees := protected.Group("/employees")
	employees.GET("", employeeHandler.ListEmployees)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employees.PUT("/:id", employeeHandler.UpdateEmployee)
	employees.DELETE("/:id", middleware.AdminRequired(), employeeHandler.DeleteEmployee)
	employees.POST("/batch-delete", middleware.AdminRequired(), employeeHandler.BatchDeleteEmployees)

	// Import and export
	protected.POST("/upload", middleware.AdminRequired(), uploadHandler.Upload)
	protected.GET("/export", exportHandler.ExportEmployees)
	protected.GET("/export/template", exportHandler.DownloadTemplate)

	// Audit log
	audit := protected.Group("/audit")
	audit.GET("", auditHandler.Query)
	audit.GET("/fields", auditHandler.ChangedFields)
	audit.POST("/purge", middleware.AdminRequired(), auditHandler.Purge)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.PhaseDashboard)
	reports.GET("/managers", reportHandler.ManagerReport)
	reports.GET("/loading", reportHandler.LoadingSchedule)

	// User administration
	users := protected.Group("/users")
	users.Use(middleware.AdminRequired())
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.ListUsers)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	log.Infof("Starting Fieldtrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
