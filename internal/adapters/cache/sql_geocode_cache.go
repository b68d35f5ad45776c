package cache

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLGeocodeCache is a SQL-backed cache mapping formatted addresses to
// coordinates. It works on SQLite and Postgres; queries use '?' placeholders
// rebound for the connection's driver.
type SQLGeocodeCache struct {
	DB *sqlx.DB
}

func NewSQLGeocodeCache(db *sqlx.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

type geocodeRow struct {
	Address string  `db:"address"`
	Lat     float64 `db:"lat"`
	Lng     float64 `db:"lng"`
}

// Fetch cached coordinates for the given addresses.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	q, args, err := sqlx.In(`SELECT address, lat, lng FROM geocode_cache WHERE address IN (?);`, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: expand query: %w", err)
	}

	var rows []geocodeRow
	if err := s.DB.SelectContext(ctx, &rows, s.DB.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	out := make(map[string]domain.Coordinate, len(rows))
	for _, r := range rows {
		out[r.Address] = domain.Coordinate{Lat: r.Lat, Lng: r.Lng}
	}

	return out, nil
}

// Store address -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
	INSERT INTO geocode_cache (address, lat, lng)
	VALUES (?, ?, ?)
	ON CONFLICT (address) DO UPDATE
	SET lat = excluded.lat,
		lng = excluded.lng;
	`))
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, addr, c.Lat, c.Lng); err != nil {
			return fmt.Errorf("insert geocode cache addr=%q: %w", addr, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
