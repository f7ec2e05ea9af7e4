package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Two independently keyed collections: role assignments by user_id and
// orders by tracking_id. The tracking_id primary key enforces handle
// uniqueness at the storage layer; the secondary indexes back the
// listing-scope queries.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS role_assignments (
		user_id      TEXT PRIMARY KEY,
		role         TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		tracking_id             TEXT PRIMARY KEY,
		customer_id             TEXT NOT NULL,
		driver_id               TEXT,
		pickup_address          TEXT NOT NULL,
		pickup_lat              DOUBLE PRECISION NOT NULL,
		pickup_lng              DOUBLE PRECISION NOT NULL,
		delivery_address        TEXT NOT NULL,
		delivery_lat            DOUBLE PRECISION NOT NULL,
		delivery_lng            DOUBLE PRECISION NOT NULL,
		item_description        TEXT NOT NULL,
		weight                  DOUBLE PRECISION,
		preferred_delivery_time TEXT,
		special_instructions    TEXT,
		delivery_fee            DOUBLE PRECISION NOT NULL,
		distance_km             DOUBLE PRECISION NOT NULL,
		status                  TEXT NOT NULL,
		delivery_pin            TEXT NOT NULL,
		pickup_at               TIMESTAMPTZ,
		delivered_at            TIMESTAMPTZ,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status_driver ON orders (status, driver_id)`,
}

// Migrate applies the schema at startup. Statements are idempotent, so
// re-running on every boot is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
