package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"wellspring/internal/auth"
	"wellspring/internal/database"
	"wellspring/internal/handlers"
	"wellspring/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// This is our main function - the entry point of our application
func main() {
	// Load .env in development; in production variables come from the platform
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Initialize Google OAuth and token encryption
	if err := auth.InitOAuth(); err != nil {
		log.Fatal("Failed to initialize OAuth:", err)
	}
	if err := auth.InitCrypto(); err != nil {
		log.Fatal("Failed to initialize token encryption:", err)
	}

	// Wire the reminder job invoked by the cron trigger endpoint
	handlers.SetReminderJob(services.NewReminderService())

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// Allow the web client to call the API with cookies
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Auth routes (no auth required)
	router.GET("/auth/login", handlers.LoginHandler)
	router.GET("/auth/callback", handlers.GoogleCallbackHandler)
	router.GET("/auth/logout", handlers.LogoutHandler)

	// Reminder trigger, invoked by the hourly cron scheduler
	router.GET("/internal/reminders/run", handlers.RunReminders)

	// Protected routes (auth required)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Account
		api.GET("/me", handlers.GetCurrentUser)
		api.POST("/profile", handlers.CompleteProfile)
		api.PUT("/settings/reminders", handlers.UpdateReminderSettings)
		api.POST("/me/avatar", handlers.UploadAvatar)

		// Journal
		api.POST("/journal", handlers.SaveJournalEntry)
		api.GET("/journal", handlers.GetJournalEntries)
		api.GET("/journal/search", handlers.SearchJournalEntries)
		api.GET("/journal/:date", handlers.GetJournalEntry)
		api.DELETE("/journal/:date", handlers.DeleteJournalEntry)

		// Habits and daily intake
		api.POST("/habits", handlers.CreateHabit)
		api.GET("/habits", handlers.GetHabits)
		api.PUT("/habits/:id/archive", handlers.ArchiveHabit)
		api.DELETE("/habits/:id", handlers.DeleteHabit)
		api.POST("/habit-entries", handlers.SaveHabitEntry)
		api.GET("/habit-entries", handlers.GetHabitEntries)

		// Sleep and mood logs
		api.POST("/sleep", handlers.SaveSleepEntry)
		api.GET("/sleep", handlers.GetSleepEntries)
		api.POST("/mood", handlers.SaveMoodEntry)
		api.GET("/mood", handlers.GetMoodEntries)

		// Tasks
		api.POST("/tasks", handlers.CreateTask)
		api.GET("/tasks", handlers.GetTasks)
		api.PUT("/tasks/:id", handlers.UpdateTask)
		api.PUT("/tasks/:id/toggle", handlers.ToggleTaskComplete)
		api.DELETE("/tasks/:id", handlers.DeleteTask)
	}

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Server starting on port %s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
