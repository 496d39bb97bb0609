// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/pushconfig/internal/model"
	"github.com/groblegark/pushconfig/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db          *sql.DB
	maxPageSize int
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
// maxPageSize caps the page size of ListInfo; requested sizes outside
// (0, maxPageSize] resolve to it.
func New(databaseURL string, maxPageSize int) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db, maxPageSize: maxPageSize}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) SetInfo(ctx context.Context, taskID string, config *model.PushConfig) (*model.PushConfig, error) {
	return querySetInfo(ctx, s.db, taskID, config)
}

func (s *PostgresStore) ListInfo(ctx context.Context, params model.ListParams) (*model.ListResult, error) {
	return queryListInfo(ctx, s.db, params, params.EffectivePageSize(s.maxPageSize))
}

func (s *PostgresStore) DeleteInfo(ctx context.Context, taskID, configID string) error {
	return queryDeleteInfo(ctx, s.db, taskID, configID)
}

func (s *PostgresStore) AllConfigs(ctx context.Context) ([]*model.TaskPushConfig, error) {
	return queryAllConfigs(ctx, s.db)
}
