package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/staffdesk/staffdesk/config"
	"github.com/staffdesk/staffdesk/internal/storage/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS view_settings (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// init-settings bootstraps the Postgres-backed view settings store.
// The server never creates its own tables.
func main() {
	cfg := config.Load()

	var (
		db  *postgres.Client
		err error
	)
	if cfg.Settings.DatabaseURL != "" {
		db, err = postgres.NewClientFromURL(cfg.Settings.DatabaseURL)
	} else {
		db, err = postgres.NewClient(&cfg.Database)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.DB.ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create view_settings table: %v", err)
	}

	fmt.Println("view_settings table is ready")
}
