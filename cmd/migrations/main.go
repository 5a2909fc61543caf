package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/pollgate/internal/config"
)

var migrationsDir = filepath.Join("internal", "adapters", "repository", "postgres", "migrations")

// Usage: migrations <name> [flags], e.g. migrations create_ledger.up
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		logger.Error("a migration name is required")
		os.Exit(2)
	}
	migrationName := os.Args[1]

	cfg, err := config.Load("migrations", os.Args[2:])
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg.Postgres.ConnString(), migrationsDir, migrationName); err != nil {
		logger.Error("migration failed", "migration", migrationName, "error", err)
		os.Exit(1)
	}

	logger.Info("migration file executed successfully", "migration", migrationName)
}

func run(connStr, basePath, migrationName string) error {
	content, err := migrationFileContent(basePath, migrationName)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute SQL file: %w", err)
	}
	return nil
}

func migrationFileContent(basePath string, migrationName string) ([]byte, error) {
	fileName, err := migrationFileName(basePath, migrationName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(basePath, fileName))
}

func migrationFileName(basePath string, migrationName string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	files, err := os.ReadDir(basePath)
	if err != nil {
		return "", fmt.Errorf("failed to read migrations directory: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if regex.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file %q not found", migrationName)
}
