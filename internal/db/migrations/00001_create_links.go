package migrations

// The links table needs an auto-increment primary key, whose syntax differs
// by database. Ids must start at 1: id 0 is reserved and never assigned.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateLinks, downCreateLinks)
}

func upCreateLinks(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS links (
    id     BIGSERIAL PRIMARY KEY,
    value  TEXT NOT NULL,
    clicks BIGINT NOT NULL DEFAULT 0
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS links (
    id     BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    value  TEXT NOT NULL,
    clicks BIGINT NOT NULL DEFAULT 0
)`
	default: // sqlite3
		// AUTOINCREMENT keeps ids monotonic and never reuses them.
		ddl = `CREATE TABLE IF NOT EXISTS links (
    id     INTEGER PRIMARY KEY AUTOINCREMENT,
    value  TEXT NOT NULL,
    clicks INTEGER NOT NULL DEFAULT 0
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create links table: %w", err)
	}
	return nil
}

func downCreateLinks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS links`)
	return err
}
