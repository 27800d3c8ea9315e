package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	return pool, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS pallets (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		master_container_id TEXT NOT NULL DEFAULT '',
		capacity INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS container_pool (
		id BIGSERIAL PRIMARY KEY,
		container_id TEXT NOT NULL UNIQUE,
		assigned BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS boxes (
		id BIGSERIAL PRIMARY KEY,
		container_id TEXT NOT NULL DEFAULT '',
		pallet_id BIGINT NOT NULL REFERENCES pallets(id),
		image_filename TEXT NOT NULL DEFAULT '',
		ocr_confidence INT,
		purchase_order TEXT NOT NULL DEFAULT '',
		style TEXT NOT NULL DEFAULT '',
		item_description TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		sku_number TEXT NOT NULL DEFAULT '',
		quantity TEXT NOT NULL DEFAULT '',
		net_weight_kg TEXT NOT NULL DEFAULT '',
		gross_weight_kg TEXT NOT NULL DEFAULT '',
		measurement TEXT NOT NULL DEFAULT '',
		consigned_to TEXT NOT NULL DEFAULT '',
		deliver_to TEXT NOT NULL DEFAULT '',
		deliver_to_address TEXT NOT NULL DEFAULT '',
		country_of_origin TEXT NOT NULL DEFAULT '',
		carton_no TEXT NOT NULL DEFAULT '',
		appointment_order TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_boxes_pallet_id ON boxes (pallet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_boxes_purchase_order ON boxes (LOWER(TRIM(purchase_order)))`,
	`CREATE INDEX IF NOT EXISTS idx_container_pool_unassigned ON container_pool (id) WHERE assigned = FALSE`,
}

// Migrate applies the schema. Statements are idempotent, so reruns on an
// existing database are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	log.Println("Database schema up to date")
	return nil
}
