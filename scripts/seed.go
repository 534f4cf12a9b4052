package main

import (
	"context"
	"log"
	"os"

	"github.com/lynxshop/backend/internal/adapters/database"
	"github.com/lynxshop/backend/internal/domain/entities"
	"github.com/lynxshop/backend/internal/infrastructure/clients/postgres"
	"github.com/lynxshop/backend/pkg/config"
)

// Development seed data: a small storefront catalog covering every semantic
// category plus a few admin synonyms. Run with: go run scripts/seed.go

type seedProduct struct {
	name     string
	price    float64
	stock    int
	category string
	image    string
	synonyms []string
}

var seedCategories = []string{"Frutas", "Bebidas", "Snacks", "Golosinas", "Papeleria"}

var seedProducts = []seedProduct{
	{"Manzana Roja", 10.00, 25, "Frutas", "manzana_roja.png", nil},
	{"Platano Chiapas", 7.50, 40, "Frutas", "platano.png", []string{"banana"}},
	{"Limón Colima", 5.00, 60, "Frutas", "limon.png", nil},
	{"Agua Natural 600ml", 8.00, 50, "Bebidas", "agua_natural.png", []string{"h2o", "aguita"}},
	{"Refresco de Cola 355ml", 14.00, 45, "Bebidas", "refresco_cola.png", []string{"chesco"}},
	{"Té Verde Frío 500ml", 17.00, 18, "Bebidas", "te_verde.png", nil},
	{"Doritos Nacho", 18.00, 30, "Snacks", "doritos.png", []string{"chetos"}},
	{"Papas Adobadas", 16.00, 22, "Snacks", "papas_adobadas.png", []string{"papitas"}},
	{"Chocolate con Leche", 12.00, 35, "Golosinas", "chocolate.png", nil},
	{"Gomitas de Frutas", 9.00, 28, "Golosinas", "gomitas.png", nil},
	{"Cuaderno Profesional", 32.00, 15, "Papeleria", "cuaderno.png", []string{"libreta"}},
	{"Pluma de Gel Negra", 11.00, 80, "Papeleria", "pluma_gel.png", []string{"boligrafo"}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				search_metrics,
				product_synonyms,
				products,
				categories
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	categoryIDs := make(map[string]int, len(seedCategories))
	for _, name := range seedCategories {
		var id int
		err := pgClient.DB().QueryRowContext(ctx, `
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name).Scan(&id)
		if err != nil {
			log.Fatalf("Failed to seed category %q: %v", name, err)
		}
		categoryIDs[name] = id
	}
	log.Printf("Seeded %d categories", len(categoryIDs))

	synonymRepo := database.NewSynonymAdapter(pgClient)

	productCount := 0
	synonymCount := 0
	for _, p := range seedProducts {
		var productID int
		err := pgClient.DB().QueryRowContext(ctx, `
			INSERT INTO products (name, price, stock, category_id, image_filename)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, p.name, p.price, p.stock, categoryIDs[p.category], p.image).Scan(&productID)
		if err != nil {
			log.Fatalf("Failed to seed product %q: %v", p.name, err)
		}
		productCount++

		for _, text := range p.synonyms {
			synonym := &entities.Synonym{
				ProductID: productID,
				Text:      text,
				Source:    entities.SynonymSourceAdmin,
				Precision: 0.8,
				Active:    true,
			}
			if err := synonymRepo.Create(ctx, synonym); err != nil {
				log.Fatalf("Failed to seed synonym %q: %v", text, err)
			}
			synonymCount++
		}
	}

	log.Printf("Seeded %d products and %d synonyms", productCount, synonymCount)
}
