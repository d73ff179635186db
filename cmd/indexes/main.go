// Creates the MongoDB indexes the application relies on. Run with -reset
// to drop and recreate indexes that already exist.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/elijahkato/booklab-backend/internal/config"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
	"github.com/joho/godotenv"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate existing indexes")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := mongodb.NewDB(client, cfg.MongoDbName)
	if err := mongodb.CreateAllIndexes(ctx, db.Database(), *reset); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	log.Println("Indexes created successfully")
}
