package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/database"
	"github.com/osse101/CloverPit_Go/migrations"
)

const usage = `Usage: migrate <command> [version]

Commands:
  up            apply all pending migrations
  up-to V       apply migrations up to version V
  down          roll back the latest migration
  down-to V     roll back to version V
  status        list migrations and whether they are applied
  version       print the current database version
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := run(context.Background(), cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string) error {
	pool, err := database.NewPool(cfg.GetDBConnString(), 2, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		printResults(results)
		return err
	case "up-to":
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		results, err := provider.UpTo(ctx, version)
		printResults(results)
		return err
	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			printResults([]*goose.MigrationResult{result})
		}
		return err
	case "down-to":
		version, err := versionArg(args)
		if err != nil {
			return err
		}
		results, err := provider.DownTo(ctx, version)
		printResults(results)
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-6d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
		}
		return nil
	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func versionArg(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("version argument required")
	}
	return strconv.ParseInt(args[0], 10, 64)
}

func printResults(results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Println("no migrations to run")
		return
	}
	for _, r := range results {
		fmt.Printf("%s %s (%s)\n", r.Direction, r.Source.Path, r.Duration)
	}
}
