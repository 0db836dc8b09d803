// Command setup prepares the configured database: for PostgreSQL it creates
// the database when missing, then it creates every ledger table and index.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/NemoBot_Go/internal/bootstrap"
	"github.com/osse101/NemoBot_Go/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	if cfg.DBDriver == config.DriverPostgres {
		if err := ensurePostgresDatabase(ctx, cfg); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
	}

	store, err := bootstrap.OpenDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("Setup failed: %v", err)
	}
	defer store.DB().Close()

	fmt.Println("Schema is up to date.")
}

// ensurePostgresDatabase connects to the server's maintenance database and
// creates cfg.DBName if it does not exist yet.
func ensurePostgresDatabase(ctx context.Context, cfg *config.Config) error {
	admin := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:     "/postgres",
		RawQuery: url.Values{"sslmode": []string{cfg.DBSSLMode}}.Encode(),
	}
	conn, err := pgx.Connect(ctx, admin.String())
	if err != nil {
		return fmt.Errorf("connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return err
	}
	fmt.Println("Database created successfully.")
	return nil
}
