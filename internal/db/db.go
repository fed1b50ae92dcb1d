package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khlegal/practice-api/internal/models"
)

// Options controls connection behaviour.
type Options struct {
	DSN string
	// Migrations runs SQL migrations from ./migrations via golang-migrate
	// (postgres only); otherwise AutoMigrate keeps the schema current.
	Migrations bool
	Debug      bool
}

// ConnectAndMigrate opens the store described by the DSN and brings the
// schema up to date. A postgres:// DSN selects postgres; anything else is
// treated as a sqlite path (file:... or plain filename).
func ConnectAndMigrate(opts Options) (*gorm.DB, error) {
	dsn := NormalizeDSN(opts.DSN)
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is empty, check environment configuration")
	}

	logLevel := logger.Silent
	if opts.Debug {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		conn *gorm.DB
		err  error
	)
	if isPostgres(dsn) {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if opts.Migrations && isPostgres(dsn) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := AutoMigrate(conn); err != nil {
		return nil, err
	}

	for _, table := range []string{"clients", "matters", "time_entries", "invoices", "number_sequences"} {
		if !conn.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	return conn, nil
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range []interface{}{
		&models.User{}, &models.Client{}, &models.Matter{}, &models.TimeEntry{},
		&models.Document{}, &models.Invoice{}, &models.NumberSequence{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func isPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
