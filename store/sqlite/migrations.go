package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the SQLite snapshot store.
var Migrations = migrate.NewGroup("rotawatch")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_rotation_snapshots",
			Version: "20260101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS rotation_snapshots (
    slot        TEXT PRIMARY KEY,
    rotation_id TEXT NOT NULL,
    payload     TEXT NOT NULL,
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS rotation_snapshots`)
				return err
			},
		},
	)
}
