package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadchandra19/batch-matcher/internal/app/batch"
	orderreaderv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/order-reader/v1"
	pgledger "github.com/muhammadchandra19/batch-matcher/internal/infrastructure/postgresql/ledger"
	sqliteledger "github.com/muhammadchandra19/batch-matcher/internal/infrastructure/sqlite/ledger"
	ledgerwriter "github.com/muhammadchandra19/batch-matcher/internal/usecase/ledger-writer"
	matchpublisher "github.com/muhammadchandra19/batch-matcher/internal/usecase/match-publisher"
	orderreader "github.com/muhammadchandra19/batch-matcher/internal/usecase/order-reader"
	"github.com/muhammadchandra19/batch-matcher/internal/usecase/snapshot"
	"github.com/muhammadchandra19/batch-matcher/pkg/config"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/muhammadchandra19/batch-matcher/pkg/postgresql"
	"github.com/muhammadchandra19/batch-matcher/pkg/redis"
	"github.com/muhammadchandra19/batch-matcher/pkg/util"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}
}

func main() {
	input := flag.String("input", cfg.InputPath, "input CSV file of order events")
	output := flag.String("output", cfg.OutputPath, "output CSV file for the ledger")
	source := flag.String("source", string(cfg.Source), "event source: csv or kafka")
	flag.Parse()

	cfg.InputPath = *input
	cfg.OutputPath = *output
	cfg.Source = config.Source(*source)

	opts := []logger.Options{logger.WithLoggingLevel(logger.ParseLevel(cfg.LogConfig.Level))}
	if cfg.LogConfig.File != "" {
		opts = append(opts, logger.WithRotatingFile(cfg.LogConfig.File, cfg.LogConfig.MaxSizeMB, cfg.LogConfig.MaxBackups))
	}

	var err error
	log, err = logger.NewLogger(opts...)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(util.WithRunID(ctx, "")); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "run_batch",
		})
		cancel()
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	source, err := openSource()
	if err != nil {
		return err
	}
	defer source.Close()

	writer, err := ledgerwriter.Create(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer writer.Close()

	sinks := batch.Sinks{Writer: writer}

	if cfg.PersistPostgres {
		db, err := postgresql.NewClient(ctx, cfg.PostgresConfig)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := pgledger.NewRepository(db, log)
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		sinks.Repositories = append(sinks.Repositories, repo)
	}

	if cfg.PersistSQLite {
		repo, err := sqliteledger.Open(cfg.SQLiteConfig.Path, log)
		if err != nil {
			return err
		}
		defer repo.Close()

		sinks.Repositories = append(sinks.Repositories, repo)
	}

	if cfg.PublishTrades {
		publisher := matchpublisher.NewPublisher(cfg.KafkaConfig, log)
		defer publisher.Close()

		sinks.Publisher = publisher
	}

	if cfg.SnapshotBook {
		redisConfig := redis.DefaultConfig()
		redisConfig.Addrs = cfg.RedisConfig.Addrs
		redisConfig.Password = cfg.RedisConfig.Password
		redisConfig.Username = cfg.RedisConfig.Username
		redisConfig.DB = cfg.RedisConfig.DB

		rclient := redis.NewClient(log, redisConfig)
		if err := rclient.Connect(ctx); err != nil {
			return err
		}
		defer func() {
			_ = rclient.Disconnect(context.Background())
		}()

		sinks.Snapshots = snapshot.NewSnapshotStore(rclient, cfg.RedisConfig.PrefixKey, log)
	}

	runner := batch.NewRunner(source, sinks, log,
		batch.WithParallelism(cfg.Parallelism),
		batch.WithTraceEvents(cfg.TraceEvents),
	)

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "Ledger written",
		logger.Field{Key: "output", Value: cfg.OutputPath},
		logger.Field{Key: "entries", Value: len(result.Run.Ledger)},
		logger.Field{Key: "trades", Value: len(result.Run.Trades)},
	)
	return nil
}

func openSource() (orderreaderv1.Source, error) {
	switch cfg.Source {
	case config.SourceCSV:
		reader, err := orderreader.OpenCSV(cfg.InputPath, log)
		if err != nil {
			return nil, err
		}
		return reader, nil
	case config.SourceKafka:
		return orderreader.NewKafkaReader(cfg.KafkaConfig, log), nil
	default:
		return nil, errors.NewTracer(fmt.Sprintf("unknown source %q", cfg.Source))
	}
}
