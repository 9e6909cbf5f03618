// Package postgres keeps an audit trail of factory initializations in
// Postgres, for fleets that want a durable record of which machine ID
// and epoch every named factory was last brought up with — not a
// machine-ID allocator, just a log a deployment can cross-check itself
// against after the fact.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Record is one row of the factory init audit log.
type Record struct {
	Name             string
	MachineID        uint16
	EpochMs          int64
	PBKDF2Iterations int
	InitializedAt    time.Time
}

// Migrate creates the audit table if it does not already exist. It is
// idempotent and safe to call on every process startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS nonce_factory_init (
			name               text PRIMARY KEY,
			machine_id         int NOT NULL,
			epoch_ms           bigint NOT NULL,
			pbkdf2_iterations  int NOT NULL,
			initialized_at     timestamptz NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("nonce/registry/postgres: create audit table: %w", err)
	}
	return nil
}

// RecordInit upserts the audit row for a factory's most recent Init
// call, overwriting whatever was recorded for that name before.
func RecordInit(ctx context.Context, db *sql.DB, r Record) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO nonce_factory_init (name, machine_id, epoch_ms, pbkdf2_iterations, initialized_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			machine_id        = EXCLUDED.machine_id,
			epoch_ms          = EXCLUDED.epoch_ms,
			pbkdf2_iterations = EXCLUDED.pbkdf2_iterations,
			initialized_at    = EXCLUDED.initialized_at
	`, r.Name, r.MachineID, r.EpochMs, r.PBKDF2Iterations, r.InitializedAt)
	if err != nil {
		return fmt.Errorf("nonce/registry/postgres: record init for %q: %w", r.Name, err)
	}
	return nil
}

// ListFactories returns every audited factory's most recent init
// record, ordered by name.
func ListFactories(ctx context.Context, db *sql.DB) ([]Record, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name, machine_id, epoch_ms, pbkdf2_iterations, initialized_at
		FROM nonce_factory_init
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("nonce/registry/postgres: list factories: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var machineID int
		if err := rows.Scan(&r.Name, &machineID, &r.EpochMs, &r.PBKDF2Iterations, &r.InitializedAt); err != nil {
			return nil, fmt.Errorf("nonce/registry/postgres: scan record: %w", err)
		}
		r.MachineID = uint16(machineID)
		out = append(out, r)
	}
	return out, rows.Err()
}
