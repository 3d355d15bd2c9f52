package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/buildly/construction-api/internal/auth"
	"github.com/buildly/construction-api/internal/config"
	"github.com/buildly/construction-api/internal/database"
	"github.com/buildly/construction-api/internal/handlers"
	"github.com/buildly/construction-api/internal/middleware"
	"github.com/buildly/construction-api/internal/repository"
	"github.com/buildly/construction-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database. A server without a store is useless, so a
	// startup connection failure is fatal.
	manager := database.NewManager(cfg)
	db, err := manager.EnsureConnected()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokens)
	activityService := services.NewActivityService(activityRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, activityService)
	taskService := services.NewTaskService(taskRepo, activityService)
	aiService := services.NewAIService(cfg.OpenAIAPIKey)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	activityHandler := handlers.NewActivityHandler(activityService)
	chatHandler := handlers.NewChatHandler(aiService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Construction API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// AI chat (public, stateless)
		api.POST("/chat", chatHandler.Chat)

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Activity routes (protected)
		activities := api.Group("/activities")
		activities.Use(middleware.RequireAuth(tokens))
		{
			activities.GET("", activityHandler.ListActivities)
			activities.DELETE("", activityHandler.ClearActivities)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
