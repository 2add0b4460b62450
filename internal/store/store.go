// Package store persists analysis records. The store is append-only per
// request: records are inserted once and never mutated, so concurrent
// analyses need no locking beyond what the database provides.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database connection settings
type Config struct {
	// Driver is "sqlite" or "postgres"
	Driver string
	// DSN is the driver-specific connection string; for sqlite, a file
	// path or ":memory:"
	DSN string
}

// Store wraps the database connection for analysis records
type Store struct {
	db *gorm.DB
}

// Open connects to the database and migrates the analysis record schema
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.AutoMigrate(&AnalysisRecord{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Save inserts a new analysis record, assigning an ID and creation time
// when unset. Records are never updated after insertion.
func (s *Store) Save(ctx context.Context, record *AnalysisRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("saving analysis record: %w", err)
	}

	return nil
}

// Get fetches one analysis record by ID
func (s *Store) Get(ctx context.Context, id string) (*AnalysisRecord, error) {
	var record AnalysisRecord

	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("fetching analysis record: %w", err)
	}

	return &record, nil
}

// ListByUser fetches all analysis records for a user, newest first
func (s *Store) ListByUser(ctx context.Context, userID string) ([]AnalysisRecord, error) {
	var records []AnalysisRecord

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing analysis records: %w", err)
	}

	return records, nil
}

// Close releases the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
