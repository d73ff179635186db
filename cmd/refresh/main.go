// Refreshes the cached book snapshots from the Google Books API. Ratings,
// comments and average ratings are community data and are left untouched.
package main

import (
	"context"
	"log"
	"sync"

	"github.com/elijahkato/booklab-backend/internal/config"
	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
	"github.com/elijahkato/booklab-backend/internal/services/books"
	"github.com/joho/godotenv"
)

const workerCount = 5

func main() {
	_ = godotenv.Load()

	log.Println("Starting cached book refresh...")

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

	volumeIds, err := db.GetAllBookIds(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch book ids: %v", err)
	}
	log.Printf("Found %d cached books to refresh", len(volumeIds))

	jobs := make(chan string, len(volumeIds))
	wg := sync.WaitGroup{}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for volumeId := range jobs {
				changed, err := books.RefreshCachedBook(db, catalog, ctx, volumeId)
				if err != nil {
					log.Printf("failed refreshing %s: %v", volumeId, err)
					continue
				}
				if changed {
					log.Printf("Refreshed book %s (fields changed)", volumeId)
				}
			}
		}()
	}

	for _, volumeId := range volumeIds {
		jobs <- volumeId
	}

	close(jobs)
	wg.Wait()

	log.Println("Refresh completed successfully")
}
