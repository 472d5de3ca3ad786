package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"gym_crm_backend/internal/database"
	appRouter "gym_crm_backend/internal/router"
	"gym_crm_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// The whole installation lives next to the binary: database file and
	// member photos alike.
	dbPath := utils.Getenv("DB_PATH", "horsepower_gym.db")
	photoBaseDir := utils.Getenv("DATA_DIR", ".")

	// Initialize Database
	database.InitDB(dbPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"path": dbPath})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"} // Default origins
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	appRouter.Setup(engine, database.GetDB(), photoBaseDir)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})
	utils.LogInfo("Desk frontend should call the API", map[string]interface{}{"url": "http://localhost:" + port + "/api/v1"})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
