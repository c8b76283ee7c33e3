package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/handlers"
	"taskhub/internal/logging"
	"taskhub/internal/middleware"
	"taskhub/internal/repository"
	"taskhub/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging with file rotation
	logging.Init(cfg.LogDir)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	activityService := services.NewActivityService(activityRepo, projectRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, userRepo, activityService)
	taskService := services.NewTaskService(taskRepo, projectRepo, activityService, aiService)
	statsService := services.NewStatsService(projectRepo, taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	activityHandler := handlers.NewActivityHandler(activityService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logging.Logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskHub API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProjectAccess(projectRepo), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.DeleteProject)
			projects.POST("/:id/members", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.RemoveMember)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", middleware.RequireTaskAccess(taskRepo), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(taskRepo), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(taskRepo), taskHandler.DeleteTask)
		}

		// Dashboard routes (protected)
		api.GET("/stats", middleware.RequireAuth(tokens), statsHandler.GetSummary)
		api.GET("/activity", middleware.RequireAuth(tokens), activityHandler.GetFeed)
	}

	// Start server
	logging.Logger.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
