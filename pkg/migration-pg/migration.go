package migrationpg

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/muhammadchandra19/batch-matcher/pkg/postgresql"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Migration is one versioned schema change.
type Migration struct {
	ID      string
	Name    string
	UpSQL   string
	DownSQL string
}

// Config for migration runner
type Config struct {
	Schema    string // PostgreSQL schema name (default: "public")
	TableName string // Migration table name (default: "schema_migrations")
}

// Runner applies the migrations found in a file system and records them in a tracking table.
type Runner struct {
	client    postgresql.PostgreSQLClient
	source    fs.FS
	logger    logger.Interface
	schema    string
	tableName string
}

// NewRunner creates a new migration runner. source holds <id>.up.sql and <id>.down.sql files at its root.
func NewRunner(client postgresql.PostgreSQLClient, source fs.FS, log logger.Interface, config Config) *Runner {
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.TableName == "" {
		config.TableName = "schema_migrations"
	}

	return &Runner{
		client:    client,
		source:    source,
		logger:    log,
		schema:    config.Schema,
		tableName: config.TableName,
	}
}

func (r *Runner) table() string {
	return r.schema + "." + r.tableName
}

// EnsureMigrationTable creates the tracking table if it doesn't exist.
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	createTableSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(255) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
)`, r.table())

	if _, err := r.client.Exec(ctx, createTableSQL); err != nil {
		return errors.NewTracer("ensure_migration_table_error").Wrap(err)
	}
	return nil
}

// AppliedMigrations returns the set of applied migration IDs.
func (r *Runner) AppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := r.client.Query(ctx, fmt.Sprintf("SELECT id FROM %s ORDER BY id", r.table()))
	if err != nil {
		return nil, errors.NewTracer("applied_migrations_error").Wrap(err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.TracerFromError(err)
		}
		applied[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, errors.TracerFromError(err)
	}

	return applied, nil
}

// LoadMigrations reads every migration in the source, ordered by ID.
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := fs.Glob(r.source, "*"+upSuffix)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		migration, err := r.parseMigration(upFile)
		if err != nil {
			return nil, errors.NewTracer("parse_migration_error: " + upFile).Wrap(err)
		}
		migrations = append(migrations, migration)
	}

	return migrations, nil
}

func (r *Runner) parseMigration(upFile string) (Migration, error) {
	upContent, err := fs.ReadFile(r.source, upFile)
	if err != nil {
		return Migration{}, err
	}

	id := strings.TrimSuffix(path.Base(upFile), upSuffix)
	name := id
	if _, rest, ok := strings.Cut(id, "_"); ok {
		name = rest
	}

	var downSQL string
	if downContent, err := fs.ReadFile(r.source, strings.TrimSuffix(upFile, upSuffix)+downSuffix); err == nil {
		downSQL = strings.TrimSpace(string(downContent))
	}

	return Migration{
		ID:      id,
		Name:    name,
		UpSQL:   strings.TrimSpace(string(upContent)),
		DownSQL: downSQL,
	}, nil
}

// MigrateUp applies up to steps pending migrations (0 = all) and returns how many were applied.
func (r *Runner) MigrateUp(ctx context.Context, steps int) (int, error) {
	migrations, err := r.LoadMigrations()
	if err != nil {
		return 0, err
	}

	applied, err := r.AppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	var toApply []Migration
	for _, migration := range migrations {
		if !applied[migration.ID] {
			toApply = append(toApply, migration)
		}
	}

	if steps > 0 && len(toApply) > steps {
		toApply = toApply[:steps]
	}

	recordSQL := fmt.Sprintf("INSERT INTO %s (id, name, applied_at) VALUES ($1, $2, NOW())", r.table())

	count := 0
	for _, migration := range toApply {
		if migration.UpSQL == "" {
			r.logger.Warn("Migration has no up statements", logger.Field{Key: "migration", Value: migration.ID})
			continue
		}

		err := postgresql.WithTx(ctx, r.client, func(txCtx context.Context) error {
			if _, err := r.client.Exec(txCtx, migration.UpSQL); err != nil {
				return err
			}
			_, err := r.client.Exec(txCtx, recordSQL, migration.ID, migration.Name)
			return err
		})
		if err != nil {
			return count, errors.NewTracer("apply_migration_error: " + migration.ID).Wrap(err)
		}

		r.logger.Info("Applied migration", logger.Field{Key: "migration", Value: migration.ID})
		count++
	}

	return count, nil
}

// MigrateDown reverts the last steps applied migrations.
func (r *Runner) MigrateDown(ctx context.Context, steps int) (int, error) {
	if steps <= 0 {
		return 0, errors.NewTracer("steps must be greater than 0 for down migrations")
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return 0, err
	}

	applied, err := r.AppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	var toRevert []Migration
	for i := len(migrations) - 1; i >= 0 && len(toRevert) < steps; i-- {
		if applied[migrations[i].ID] {
			toRevert = append(toRevert, migrations[i])
		}
	}

	removeSQL := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table())

	count := 0
	for _, migration := range toRevert {
		if migration.DownSQL == "" {
			return count, errors.NewTracer("no down statements for migration " + migration.ID)
		}

		err := postgresql.WithTx(ctx, r.client, func(txCtx context.Context) error {
			if _, err := r.client.Exec(txCtx, migration.DownSQL); err != nil {
				return err
			}
			_, err := r.client.Exec(txCtx, removeSQL, migration.ID)
			return err
		})
		if err != nil {
			return count, errors.NewTracer("revert_migration_error: " + migration.ID).Wrap(err)
		}

		r.logger.Info("Reverted migration", logger.Field{Key: "migration", Value: migration.ID})
		count++
	}

	return count, nil
}
