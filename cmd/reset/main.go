package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/WagerBot_Go/internal/config"
)

// reset drops and recreates the game database. Run setup afterwards to apply
// migrations and load the region catalogue.
func main() {
	force := flag.Bool("force", false, "allow resetting a production database")
	flag.Parse()

	cfg, err := config.LoadBase()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}
	if cfg.Environment == "production" && !*force {
		log.Fatalf("Refusing to reset %s in production without -force", cfg.DBName)
	}

	ctx := context.Background()

	// Connect to the server's maintenance database to manage the game database
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, serverConnString)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL server: %v", err)
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{cfg.DBName}.Sanitize()

	log.Printf("Terminating existing connections to database %s...\n", cfg.DBName)
	_, err = conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()
	`, cfg.DBName)
	if err != nil {
		log.Printf("Warning: Failed to terminate connections: %v\n", err)
	}

	log.Printf("Dropping database %s if it exists...\n", cfg.DBName)
	if _, err = conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}

	log.Printf("Creating database %s...\n", cfg.DBName)
	if _, err = conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	log.Println("\n✅ Database reset complete!")
	log.Println("Next step: run 'go run ./cmd/setup' to apply migrations and load regions")
}
