package repositories

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQL-backed implementation of the PackageRepository port.
// The same queries serve SQLite and Postgres through sqlx rebinding.
type SQLPackageRepository struct{ DB *sqlx.DB }

func NewSQLPackageRepository(db *sqlx.DB) *SQLPackageRepository {
	return &SQLPackageRepository{DB: db}
}

// Fixed-width UTC timestamps so created_at sorts correctly as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

const packageColumns = `
	id, address_number, street, postal_code, city, lat, lng,
	storage_location, notes, delivery_type, priority,
	window_start, window_end, status, photo_ref, created_at`

type packageRow struct {
	ID              string          `db:"id"`
	Number          string          `db:"address_number"`
	Street          string          `db:"street"`
	PostalCode      string          `db:"postal_code"`
	City            string          `db:"city"`
	Lat             sql.NullFloat64 `db:"lat"`
	Lng             sql.NullFloat64 `db:"lng"`
	StorageLocation string          `db:"storage_location"`
	Notes           string          `db:"notes"`
	DeliveryType    string          `db:"delivery_type"`
	Priority        string          `db:"priority"`
	WindowStart     string          `db:"window_start"`
	WindowEnd       string          `db:"window_end"`
	Status          string          `db:"status"`
	PhotoRef        string          `db:"photo_ref"`
	CreatedAt       string          `db:"created_at"`
}

func toRow(p domain.Package) packageRow {
	r := packageRow{
		ID:              p.ID,
		Number:          p.Address.Number,
		Street:          p.Address.Street,
		PostalCode:      p.Address.PostalCode,
		City:            p.Address.City,
		StorageLocation: p.StorageLocation,
		Notes:           p.Notes,
		DeliveryType:    p.DeliveryType.String(),
		Priority:        p.Priority.String(),
		Status:          p.Status.String(),
		PhotoRef:        p.PhotoRef,
		CreatedAt:       p.CreatedAt.UTC().Format(createdAtLayout),
	}
	if c := p.Address.Coordinate; c != nil {
		r.Lat = sql.NullFloat64{Float64: c.Lat, Valid: true}
		r.Lng = sql.NullFloat64{Float64: c.Lng, Valid: true}
	}
	if p.TimeWindow != nil {
		r.WindowStart = p.TimeWindow.Start
		r.WindowEnd = p.TimeWindow.End
	}
	return r
}

func (r packageRow) toDomain() (domain.Package, error) {
	p := domain.Package{
		ID: r.ID,
		Address: domain.Address{
			Number:     r.Number,
			Street:     r.Street,
			PostalCode: r.PostalCode,
			City:       r.City,
		},
		StorageLocation: r.StorageLocation,
		Notes:           r.Notes,
		PhotoRef:        r.PhotoRef,
	}
	if r.Lat.Valid && r.Lng.Valid {
		p.Address = p.Address.WithCoordinate(domain.Coordinate{Lat: r.Lat.Float64, Lng: r.Lng.Float64})
	}
	if r.WindowStart != "" || r.WindowEnd != "" {
		p.TimeWindow = &domain.TimeWindow{Start: r.WindowStart, End: r.WindowEnd}
	}
	if err := p.DeliveryType.UnmarshalText([]byte(r.DeliveryType)); err != nil {
		return p, fmt.Errorf("package %s: %w", r.ID, err)
	}
	if err := p.Priority.UnmarshalText([]byte(r.Priority)); err != nil {
		return p, fmt.Errorf("package %s: %w", r.ID, err)
	}
	if err := p.Status.UnmarshalText([]byte(r.Status)); err != nil {
		return p, fmt.Errorf("package %s: %w", r.ID, err)
	}
	created, err := time.Parse(createdAtLayout, r.CreatedAt)
	if err != nil {
		return p, fmt.Errorf("package %s: parse created_at: %w", r.ID, err)
	}
	p.CreatedAt = created

	return p, nil
}

// Return all packages in registration order.
func (s *SQLPackageRepository) ListPackages(ctx context.Context) (_ []domain.Package, err error) {
	defer obs.Time(ctx, "packages.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql package repository: DB is nil")
	}

	var rows []packageRow
	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY created_at, id;`
	if err := s.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}

	packages := make([]domain.Package, 0, len(rows))
	for _, r := range rows {
		p, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list packages: %w", err)
		}
		packages = append(packages, p)
	}

	return packages, nil
}

func (s *SQLPackageRepository) GetPackage(ctx context.Context, id string) (domain.Package, error) {
	if s.DB == nil {
		return domain.Package{}, errors.New("sql package repository: DB is nil")
	}

	var r packageRow
	query := s.DB.Rebind(`SELECT ` + packageColumns + ` FROM packages WHERE id = ?;`)
	if err := s.DB.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Package{}, fmt.Errorf("get package %s: %w", id, ports.ErrPackageNotFound)
		}
		return domain.Package{}, fmt.Errorf("get package %s: %w", id, err)
	}

	p, err := r.toDomain()
	if err != nil {
		return domain.Package{}, fmt.Errorf("get package: %w", err)
	}
	return p, nil
}

// SavePackage inserts or fully replaces a package.
func (s *SQLPackageRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	if s.DB == nil {
		return errors.New("sql package repository: DB is nil")
	}
	if pkg.ID == "" {
		return errors.New("save package: id must not be empty")
	}

	query := `
	INSERT INTO packages (` + packageColumns + `)
	VALUES (
		:id, :address_number, :street, :postal_code, :city, :lat, :lng,
		:storage_location, :notes, :delivery_type, :priority,
		:window_start, :window_end, :status, :photo_ref, :created_at
	)
	ON CONFLICT (id) DO UPDATE SET
		address_number = excluded.address_number,
		street = excluded.street,
		postal_code = excluded.postal_code,
		city = excluded.city,
		lat = excluded.lat,
		lng = excluded.lng,
		storage_location = excluded.storage_location,
		notes = excluded.notes,
		delivery_type = excluded.delivery_type,
		priority = excluded.priority,
		window_start = excluded.window_start,
		window_end = excluded.window_end,
		status = excluded.status,
		photo_ref = excluded.photo_ref;
	`
	if _, err := s.DB.NamedExecContext(ctx, query, toRow(pkg)); err != nil {
		return fmt.Errorf("save package %s: %w", pkg.ID, err)
	}
	return nil
}

func (s *SQLPackageRepository) UpdateStatus(ctx context.Context, id string, status domain.PackageStatus) error {
	return s.update(ctx, "update status", id,
		`UPDATE packages SET status = ? WHERE id = ?;`, status.String(), id)
}

func (s *SQLPackageRepository) SetCoordinate(ctx context.Context, id string, c domain.Coordinate) error {
	return s.update(ctx, "set coordinate", id,
		`UPDATE packages SET lat = ?, lng = ? WHERE id = ?;`, c.Lat, c.Lng, id)
}

func (s *SQLPackageRepository) update(ctx context.Context, op, id, query string, args ...any) error {
	if s.DB == nil {
		return errors.New("sql package repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, ports.ErrPackageNotFound)
	}
	return nil
}
