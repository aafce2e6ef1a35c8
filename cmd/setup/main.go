package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/CloverPit_Go/internal/bootstrap"
	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/database"
	"github.com/osse101/CloverPit_Go/internal/database/postgres"
	"github.com/osse101/CloverPit_Go/migrations"
)

// setup creates the database if needed, applies migrations and seeds the shop catalog
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	// 1. Connect to the default 'postgres' database to create the game database
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	// 2. Create it if missing
	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		conn.Close(ctx)
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if !exists {
		fmt.Printf("Creating database %s...\n", cfg.DBName)
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
			conn.Close(ctx)
			log.Fatalf("Failed to create database: %v", err)
		}
	} else {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
	}
	conn.Close(ctx)

	// 3. Migrate and seed
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", cfg.DBName, err)
	}
	defer pool.Close()

	fmt.Println("Running migrations...")
	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	result, err := bootstrap.SyncItems(ctx, postgres.NewCatalogRepository(pool), cfg.ItemsConfigPath)
	if err != nil {
		log.Fatalf("Failed to seed shop catalog: %v", err)
	}

	fmt.Printf("Setup completed: %d items inserted, %d updated.\n", result.ItemsInserted, result.ItemsUpdated)
}
