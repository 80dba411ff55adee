package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/WagerBot_Go/internal/bootstrap"
	"github.com/osse101/WagerBot_Go/internal/config"
	"github.com/osse101/WagerBot_Go/internal/database/postgres"
	"github.com/osse101/WagerBot_Go/internal/region"
	"github.com/osse101/WagerBot_Go/internal/validation"
)

// setup creates the database when missing, applies migrations and loads the
// region catalogue
func main() {
	cfg, err := config.LoadBase()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	ctx := context.Background()

	// 1. Connect to default 'postgres' database to create the new database
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	// 2. Check if database exists
	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if !exists {
		fmt.Printf("Creating database %s...\n", cfg.DBName)
		if _, err = conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		fmt.Println("Database created successfully.")
	} else {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
	}
	conn.Close(ctx)

	// 3. Connect to the new database and run migrations
	fmt.Println("Running migrations...")
	pool, _, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to migrate %s: %v", cfg.DBName, err)
	}
	defer pool.Close()
	fmt.Println("Migrations completed successfully.")

	// 4. Load the region catalogue
	regions := region.NewService(postgres.NewStore(pool), validation.NewSchemaValidator(), cfg.RegionsFile, cfg.RegionsSchemaFile)
	n, err := regions.Reload(ctx)
	if err != nil {
		log.Fatalf("Failed to load regions from %s: %v", cfg.RegionsFile, err)
	}
	fmt.Printf("Loaded %d regions from %s.\n", n, cfg.RegionsFile)
}
