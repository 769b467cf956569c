package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"violations-dashboard/internal/config"
	"violations-dashboard/internal/models"
	"violations-dashboard/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// store is a database the importer can write violations to.
type store interface {
	SaveViolations(ctx context.Context, violations []models.Violation) error
	CountViolations(ctx context.Context) (int, error)
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	target := flag.String("target", config.SourcePostgres, "Database to import into: postgres or sqlite")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	ctx := context.Background()
	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := repository.NewCSVRepository(*file).LoadViolations(ctx)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB and ensure the table exists
	db, closeDB, err := openStore(ctx, *target, cfg)
	if err != nil {
		fmt.Printf("Error preparing database: %v\n", err)
		os.Exit(1)
	}
	defer closeDB()

	before, err := db.CountViolations(ctx)
	if err != nil {
		fmt.Printf("Error counting existing records: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	if err := db.SaveViolations(ctx, records); err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	if err := verifyImport(ctx, db, before+len(records)); err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records into %s\n", len(records), *target)
}

func openStore(ctx context.Context, target string, cfg config.Config) (store, func(), error) {
	switch target {
	case config.SourcePostgres:
		if cfg.DBSource == "" {
			return nil, nil, fmt.Errorf("DB_SOURCE is not set")
		}
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo := repository.NewPostgresRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repo, conn.Close, nil
	case config.SourceSQLite:
		repo, err := repository.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown target %q", target)
	}
}

func verifyImport(ctx context.Context, db store, expectedCount int) error {
	count, err := db.CountViolations(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}
	return nil
}
