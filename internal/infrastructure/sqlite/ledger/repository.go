package ledger

import (
	"context"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	ledgerv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/ledger/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const batchSize = 500

// Repository stores ledger rows and trades in an embedded SQLite database.
type Repository struct {
	db     *gorm.DB
	logger logger.Interface
}

var _ ledgerv1.Repository = (*Repository)(nil)

// Open opens or creates the database file at path and migrates the ledger tables.
func Open(path string, log logger.Interface) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewTracer("failed to create sqlite directory").Wrap(err)
		}
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.NewTracer("failed to open sqlite database").Wrap(err)
	}

	repo := NewRepository(db, log)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewRepository creates a repository over an open gorm database.
func NewRepository(db *gorm.DB, log logger.Interface) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// Migrate creates or updates the ledger tables.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&EntryModel{}, &TradeModel{}); err != nil {
		return errors.NewTracer("failed to migrate sqlite database").Wrap(err)
	}
	return nil
}

// StoreRun inserts every ledger row and trade of run in a single transaction.
func (r *Repository) StoreRun(ctx context.Context, run *ledgerv1.Run) error {
	entries := ledgerv1.NewEntries(run.ID, run.Ledger)

	entryModels := make([]EntryModel, 0, len(entries))
	for _, entry := range entries {
		entryModels = append(entryModels, fromEntry(entry))
	}
	tradeModels := make([]TradeModel, 0, len(run.Trades))
	for _, trade := range run.Trades {
		tradeModels = append(tradeModels, fromTrade(run.ID, trade))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(entryModels) > 0 {
			if err := tx.CreateInBatches(entryModels, batchSize).Error; err != nil {
				return err
			}
		}
		if len(tradeModels) > 0 {
			if err := tx.CreateInBatches(tradeModels, batchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.ErrorContext(ctx, err, logger.Field{Key: "runID", Value: run.ID})
		return errors.NewTracer("failed to store run").Wrap(err)
	}

	r.logger.InfoContext(ctx, "Stored run in sqlite",
		logger.Field{Key: "runID", Value: run.ID},
		logger.Field{Key: "entries", Value: len(entryModels)},
		logger.Field{Key: "trades", Value: len(tradeModels)},
	)
	return nil
}

// GetEntries returns the ledger rows of runID ordered by position.
func (r *Repository) GetEntries(ctx context.Context, runID string) ([]ledgerv1.Entry, error) {
	var models []EntryModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("seq").Find(&models).Error; err != nil {
		return nil, errors.TracerFromError(err)
	}

	entries := make([]ledgerv1.Entry, 0, len(models))
	for _, model := range models {
		entries = append(entries, model.toEntry())
	}
	return entries, nil
}

// CountTrades returns the number of trades stored for runID.
func (r *Repository) CountTrades(ctx context.Context, runID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&TradeModel{}).Where("run_id = ?", runID).Count(&count).Error; err != nil {
		return 0, errors.TracerFromError(err)
	}
	return count, nil
}

// Close closes the underlying database handle.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.TracerFromError(err)
	}
	return sqlDB.Close()
}
