package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/carlafber/APIsupermercado/db"
	"github.com/carlafber/APIsupermercado/routes"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("No .env file found, using process environment")
	}

	conn, err := db.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	if err := db.Migrate(conn); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate the database")
	}
	if err := db.Seed(conn); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed the database")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SupermarketRoutes(router, conn)
	routes.CategoryRoutes(router, conn)
	routes.ProductRoutes(router, conn)
	routes.UserRoutes(router, conn)
	routes.ShoppingListRoutes(router, conn)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Server running")
	if err := router.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
