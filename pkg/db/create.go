package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// maintenanceDB is the database used to issue CREATE DATABASE, since
// PostgreSQL cannot create a database from inside itself.
const maintenanceDB = "postgres"

// EnsureDatabase creates the database named in the connection URL if it does
// not already exist. Everything else in the URL (host, credentials, TLS) is
// reused for the maintenance connection.
func EnsureDatabase(ctx context.Context, url string) error {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	target := config.Database
	if target == "" || target == maintenanceDB {
		return nil
	}
	config.Database = maintenanceDB

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", target,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database %s: %w", target, err)
	}
	if exists {
		return nil
	}

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{target}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database %s: %w", target, err)
	}

	return nil
}
