package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the bootstrap DDL. Every statement is IF NOT EXISTS.
func Schema() string {
	return schemaSQL
}

// EnsureSchema creates missing tables and indexes. It does not alter
// existing ones.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	// Simple protocol so the multi-statement script runs in one round trip.
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Msg("database schema ensured")
	return nil
}
