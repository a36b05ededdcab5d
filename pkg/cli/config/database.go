package config

import (
	"context"
	"log/slog"

	"github.com/scanbook/scanbook/pkg/repository/postgres"
	"github.com/urfave/cli/v3"
)

type Database struct {
	dsn string
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "database-dsn",
			Usage:       "Postgres connection string (uses in-memory store when empty)",
			Category:    "Database",
			Sources:     cli.EnvVars("SCANBOOK_DATABASE_DSN"),
			Destination: &x.dsn,
		},
	}
}

func (x *Database) Enabled() bool {
	return x.dsn != ""
}

func (x *Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.Enabled()),
	)
}

func (x *Database) NewRepository(ctx context.Context) (*postgres.Repository, error) {
	return postgres.New(ctx, x.dsn)
}
