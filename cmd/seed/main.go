// seed inserts sample catalog rows and a test user into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"github.com/lunorlabs/lunor/internal/infrastructure/postgres"
	"github.com/lunorlabs/lunor/internal/password"
)

const (
	seedUsername = "seed-user"
	seedPassword = "secret1"
	seedCountry  = "US"
)

type seedProduct struct {
	id       string
	name     string
	brand    string
	rating   float64
	reviews  int
	price    float64
	sale     float64 // 0 means not on sale
	primary  string
	outStock bool
}

var products = []seedProduct{
	// Featured brand, shows up on the home page
	{"P473671", "Emerald Glow Oil", "Herbivore", 4.6, 1820, 48, 0, "Skincare", false},
	{"P473672", "Lapis Balancing Oil", "Herbivore", 4.5, 1340, 72, 0, "Skincare", false},
	{"P473673", "Pink Cloud Moisture Cream", "Herbivore", 4.4, 960, 44, 0, "Skincare", false},
	{"P473674", "Blue Tansy Resurfacing Mask", "Herbivore", 4.3, 770, 48, 38, "Skincare", false},

	// Other brands for shop/search
	{"P420652", "Lip Sleeping Mask", "LANEIGE", 4.4, 16300, 24, 0, "Skincare", false},
	{"P442563", "Protini Polypeptide Cream", "Drunk Elephant", 4.2, 5200, 68, 0, "Skincare", false},
	{"P455123", "Soy Face Cleanser", "fresh", 4.5, 9800, 39, 0, "Skincare", false},
	{"P411840", "Luminous Silk Foundation", "Armani Beauty", 4.4, 4100, 69, 0, "Makeup", false},
	{"P467602", "Cloud Paint Blush", "Glossier", 4.3, 2100, 20, 15, "Makeup", false},
	{"P482210", "Santal 33 Eau de Parfum", "Le Labo", 4.7, 1300, 198, 0, "Fragrance", false},
	{"P390211", "Beach Waves Spray", "OUAI", 4.0, 880, 28, 0, "Hair", true},
	{"P461204", "Niacinamide 10% + Zinc 1%", "The Ordinary", 4.1, 11200, 6, 0, "Skincare", false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := password.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, country)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING`,
		seedUsername, hash, seedCountry,
	)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	for _, p := range products {
		var sale *float64
		if p.sale > 0 {
			sale = &p.sale
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, name, brand, rating, reviews, price_usd, sale_price_usd,
				out_of_stock, primary_category, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			p.id, p.name, p.brand, p.rating, p.reviews, p.price, sale,
			p.outStock, p.primary, "/static/products/"+p.id+".jpg",
		)
		if err != nil {
			log.Fatalf("seed product %s: %v", p.id, err)
		}
	}

	log.Printf("seeded %d products and user %q (password %q)", len(products), seedUsername, seedPassword)
}
