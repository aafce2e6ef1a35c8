package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/database"
)

// reset drops and recreates the game database. Every session is lost.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to reset a production database")
	}

	// Connect to PostgreSQL server (postgres database to manage other databases)
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	serverPool, err := database.NewPool(serverConnString, 2, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL server: %v", err)
	}
	defer serverPool.Close()

	ctx := context.Background()
	dbIdent := pgx.Identifier{cfg.DBName}.Sanitize()

	log.Printf("Terminating existing connections to database %s...\n", cfg.DBName)
	_, err = serverPool.Exec(ctx, `
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = $1
		AND pid <> pg_backend_pid()
	`, cfg.DBName)
	if err != nil {
		log.Printf("Warning: Failed to terminate connections: %v\n", err)
	}

	log.Printf("Dropping database %s if it exists...\n", cfg.DBName)
	if _, err := serverPool.Exec(ctx, "DROP DATABASE IF EXISTS "+dbIdent); err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}

	log.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := serverPool.Exec(ctx, "CREATE DATABASE "+dbIdent); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	log.Println("\n✅ Database reset complete!")
	log.Println("Next step: run 'go run ./cmd/setup' to migrate and seed the catalog")
}
