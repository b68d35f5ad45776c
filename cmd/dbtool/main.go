package main

import (
	"context"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/platform/db"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

// dbtool initializes the schema and optionally seeds packages, then exits.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	seedPath := config.Get("SEED_PATH", cfg.Database.SeedPath)
	initAndSeed(context.Background(), database, seedPath)
}

func initAndSeed(ctx context.Context, database *sqlx.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		log.Println("No seed path configured; skipping seed.")
		return
	}

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, repositories.NewSQLPackageRepository(database), seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
