package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/velora-shop/velora-api/config"
	"github.com/velora-shop/velora-api/pkg/helpers"
)

type seedProduct struct {
	name     string
	image    string
	category string
	newPrice float64
	oldPrice float64
}

var products = []seedProduct{
	{"Striped Flutter Sleeve Blouse", "https://cdn.velora.shop/img/women_01.png", "women", 50.0, 80.5},
	{"Peplum Overlap Collar Blouse", "https://cdn.velora.shop/img/women_02.png", "women", 85.0, 120.5},
	{"Zip-Front Colorblock Hoodie", "https://cdn.velora.shop/img/men_01.png", "men", 60.0, 100.5},
	{"Slim Fit Bomber Jacket", "https://cdn.velora.shop/img/men_02.png", "men", 145.0, 190.0},
	{"Mouse Print Sweatshirt", "https://cdn.velora.shop/img/kid_01.png", "kid", 40.0, 60.0},
	{"Hooded Puffer Jacket", "https://cdn.velora.shop/img/kid_02.png", "kid", 65.0, 85.0},
	{"Ruffle Hem Wrap Dress", "https://cdn.velora.shop/img/women_03.png", "women", 75.0, 110.0},
	{"Relaxed Linen Shirt", "https://cdn.velora.shop/img/men_03.png", "men", 55.0, 78.0},
	{"Cargo Jogger Pants", "https://cdn.velora.shop/img/kid_03.png", "kid", 38.0, 52.0},
	{"Satin Slip Skirt", "https://cdn.velora.shop/img/women_04.png", "women", 68.0, 95.0},
	{"Crewneck Logo Tee", "https://cdn.velora.shop/img/men_04.png", "men", 25.0, 40.0},
	{"Quilted Vest", "https://cdn.velora.shop/img/kid_04.png", "kid", 48.0, 70.0},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@velora.shop"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, cart)
		VALUES ($1, $2, $3, '{}'::jsonb)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	var count int
	if err := db.QueryRow(`SELECT count(*) FROM products`).Scan(&count); err != nil {
		log.Fatalf("failed to count products: %v", err)
	}
	if count > 0 {
		fmt.Printf("products already present (%d), skipping catalog seed\n", count)
		return
	}

	for _, p := range products {
		if _, err := db.Exec(`
			INSERT INTO products (name, image, category, new_price, old_price, description)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.name, p.image, p.category, p.newPrice, p.oldPrice, "A product from the new collection."); err != nil {
			log.Fatalf("failed to seed product %q: %v", p.name, err)
		}
	}
	fmt.Printf("seeded %d products\n", len(products))
}
