package main

import (
	"log"

	"github.com/Gundeep-repos/Developer-Connector/internal/config"
	"github.com/Gundeep-repos/Developer-Connector/internal/db"
	"github.com/Gundeep-repos/Developer-Connector/internal/router"

	"github.com/gin-gonic/gin"
)

func main() {
	// Process configuration, read once
	cfg := config.Load()

	// Initialize database
	db.Init(cfg.DatabaseURL)

	// Initialize Gin
	r := gin.Default()

	router.RegisterRoutes(r, cfg)

	log.Printf("API server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
