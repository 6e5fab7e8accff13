package main

import (
	"log"
	"os"

	"github.com/emprendo/copiloto/internal/logger"
	"github.com/emprendo/copiloto/internal/pipeline"
	"github.com/emprendo/copiloto/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logConfig := logger.DefaultConfig()
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	// The server's pipeline lives in memory for the process lifetime.
	store := pipeline.NewStore()
	if os.Getenv("COPILOTO_DEMO") == "true" {
		if err := store.Seed(); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	srv := server.New(store, os.Getenv("COPILOTO_API_TOKEN"))

	log.Printf("Copiloto API server starting on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
