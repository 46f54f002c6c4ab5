package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zllibrary/library-service/library/migrations"
	"github.com/zllibrary/library-service/pkg/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations embedded in the binary.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back the last migration
  status  - Show migration status`,
}

func migrateCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context(), name)
		},
	}
}

func init() {
	migrateCmd.AddCommand(
		migrateCommand("up", "Apply pending migrations"),
		migrateCommand("down", "Roll back the last migration"),
		migrateCommand("status", "Show migration status"),
	)
}

func migrate(ctx context.Context, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, nil)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()
	return postgres.Migrate(ctx, db, cfg.Database.Schema, migrations.MigrationFiles, command)
}
