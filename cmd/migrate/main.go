package main

import (
	"context"
	"flag"
	"os"

	pgledger "github.com/muhammadchandra19/batch-matcher/internal/infrastructure/postgresql/ledger"
	"github.com/muhammadchandra19/batch-matcher/pkg/config"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	migrationpg "github.com/muhammadchandra19/batch-matcher/pkg/migration-pg"
	"github.com/muhammadchandra19/batch-matcher/pkg/postgresql"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up or down")
		steps     = flag.Int("steps", 0, "Number of steps to migrate (0 = all, up only)")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := migrate(context.Background(), log, *direction, *steps); err != nil {
		log.Error(err, logger.Field{Key: "direction", Value: *direction})
		_ = log.Sync()
		os.Exit(1)
	}
}

func migrate(ctx context.Context, log *logger.Logger, direction string, steps int) error {
	cfg := &config.Config{}
	if err := config.Load(cfg); err != nil {
		return errors.NewTracer("failed to load config").Wrap(err)
	}

	pgClient, err := postgresql.NewClient(ctx, cfg.PostgresConfig)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	runner := migrationpg.NewRunner(pgClient, pgledger.Migrations(), log, migrationpg.Config{
		TableName: pgledger.MigrationTable,
	})

	if err := runner.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	var count int
	switch direction {
	case "up":
		count, err = runner.MigrateUp(ctx, steps)
	case "down":
		count, err = runner.MigrateDown(ctx, steps)
	default:
		return errors.NewTracer("invalid direction " + direction + ", use 'up' or 'down'")
	}
	if err != nil {
		return err
	}

	log.Info("Migration completed",
		logger.Field{Key: "direction", Value: direction},
		logger.Field{Key: "migrations", Value: count},
	)
	return nil
}
