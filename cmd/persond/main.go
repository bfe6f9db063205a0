package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rosterd/rosterd/internal/database"
	"github.com/rosterd/rosterd/internal/person/handler"
	"github.com/rosterd/rosterd/internal/person/service"
	"github.com/rosterd/rosterd/internal/person/store"
)

// Minimal standalone entry: just the person CRUD routes, no metrics or rate
// limiting. Prefers a Mongo-backed store when MONGODB_URI is set and falls
// back to the flat file otherwise.
func main() {
	port := os.Getenv("PERSON_SERVICE_PORT")
	if port == "" {
		port = "5010"
	}
	path := os.Getenv("STORE_PATH")
	if path == "" {
		path = "db.json"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	ctx := context.Background()
	var backend store.Backend = store.NewFileBackend(path)
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		client, err := database.ConnectMongo(ctx, uri, 10*time.Second)
		if err != nil {
			log.Printf("warning: cannot connect to MongoDB (%v) — using file-backed store", err)
		} else {
			col := client.Database(os.Getenv("MONGODB_DATABASE")).Collection("documents")
			backend = store.NewMongoBackend(col)
		}
	}

	st, err := store.Open(ctx, backend)
	if err != nil {
		log.Fatalf("cannot open person store: %v", err)
	}
	handler.RegisterPersonRoutes(r, service.New(st))

	log.Printf("person service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
