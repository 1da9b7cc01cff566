// migrate applies the embedded database migrations.
// Run: go run ./cmd/migrate
package main

import (
	"context"
	"log"
	"os"

	"github.com/lunorlabs/lunor/internal/infrastructure/postgres"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := postgres.Migrate(context.Background(), dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migrations applied")
}
