package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"errors"
)

var ErrPackageNotFound = errors.New("package not found")

// Port: a boundary for retrieving and updating Package entities.
type PackageRepository interface {
	// Retrieve all packages available for routing.
	ListPackages(ctx context.Context) ([]domain.Package, error)
	GetPackage(ctx context.Context, id string) (domain.Package, error)
	SavePackage(ctx context.Context, pkg domain.Package) error
	UpdateStatus(ctx context.Context, id string, status domain.PackageStatus) error
	SetCoordinate(ctx context.Context, id string, c domain.Coordinate) error
}
