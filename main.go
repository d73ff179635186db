package main

import (
	"context"
	"log"

	"github.com/elijahkato/booklab-backend/internal/config"
	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
	"github.com/elijahkato/booklab-backend/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := mongodb.NewDB(client, cfg.MongoDbName)
	catalog := googlebooks.NewClient(cfg.GoogleBaseURL, cfg.GoogleAPIKey)

	if err := server.ListenAndServe(db, catalog, cfg); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
