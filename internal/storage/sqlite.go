// Package storage caches fetched rate observations in SQLite so closed
// historical quotes are never fetched twice.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frousseau/sheetkeeper/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the rate cache on SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage opens (or creates) the cache database and applies
// pending migrations.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{db: db, dbPath: dbPath}
	if err := s.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// GetRates returns the cached observations of one source inside the
// closed interval [from, to], as a sparse series.
func (s *SQLiteStorage) GetRates(ctx context.Context, source string, from, to time.Time) (model.RateSeries, error) {
	query := `
		SELECT date, rate
		FROM rate_observations
		WHERE source = ? AND date >= ? AND date <= ?
		ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, source, model.Day(from), model.Day(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	series := make(model.RateSeries)
	for rows.Next() {
		var date, rate string
		if err := rows.Scan(&date, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("corrupt cached rate %q for %s: %w", rate, date, err)
		}
		series[date] = d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}

	return series, nil
}

// SaveRates upserts a fetched sparse series for one source.
func (s *SQLiteStorage) SaveRates(ctx context.Context, source string, series model.RateSeries) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rate_observations (source, date, rate)
		VALUES (?, ?, ?)
		ON CONFLICT(source, date) DO UPDATE SET rate = excluded.rate`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, date := range series.Dates() {
		if _, err := stmt.ExecContext(ctx, source, date, series[date].String()); err != nil {
			return fmt.Errorf("failed to save rate for %s: %w", date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rates: %w", err)
	}

	return nil
}
