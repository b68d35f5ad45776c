package repositories

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Initialize the database schema. Statements are valid on SQLite and Postgres.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPackagesQuery := `
	CREATE TABLE IF NOT EXISTS packages (
		id TEXT PRIMARY KEY,
		address_number TEXT NOT NULL DEFAULT '',
		street TEXT NOT NULL,
		postal_code TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		storage_location TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		delivery_type TEXT NOT NULL DEFAULT 'individual',
		priority TEXT NOT NULL DEFAULT 'standard',
		window_start TEXT NOT NULL DEFAULT '',
		window_end TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		photo_ref TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_packages_status_created
	ON packages(status, created_at);
	`

	statements := []string{
		createPackagesQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// PackageSeed is one entry of a seed file. Missing ids are derived from the
// entry's position and address so re-seeding replaces rather than duplicates.
type PackageSeed struct {
	ID              string              `json:"id"`
	Address         domain.Address      `json:"address"`
	StorageLocation string              `json:"storage_location"`
	Notes           string              `json:"notes"`
	DeliveryType    domain.DeliveryType `json:"delivery_type"`
	Priority        domain.Priority     `json:"priority"`
	TimeWindow      *domain.TimeWindow  `json:"time_window"`
}

// Populate the database with package data from a JSON file.
func SeedFromJSON(ctx context.Context, repo *SQLPackageRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed packages: read %q: %w", jsonPath, err)
	}

	var data []PackageSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed packages: parse json: %w", err)
	}

	now := time.Now().UTC()
	for i, item := range data {
		if strings.TrimSpace(item.Address.Street) == "" {
			return fmt.Errorf("seed packages: item at index %d: street cannot be empty", i+1)
		}

		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("seed:%d:%s", i, item.Address.Key()))).String()
		}

		pkg := domain.Package{
			ID:              id,
			Address:         item.Address,
			StorageLocation: item.StorageLocation,
			Notes:           item.Notes,
			DeliveryType:    item.DeliveryType,
			Priority:        item.Priority,
			TimeWindow:      item.TimeWindow,
			Status:          domain.PackagePending,
			CreatedAt:       now.Add(time.Duration(i) * time.Millisecond),
		}
		if err := repo.SavePackage(ctx, pkg); err != nil {
			return fmt.Errorf("seed packages: insert id=%s: %w", id, err)
		}
	}

	return nil
}
