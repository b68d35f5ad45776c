package dto

import (
	"delivery-route-optimizer/internal/domain"
	"time"
)

type AddressRequest struct {
	Number     string   `json:"number"`
	Street     string   `json:"street"`
	PostalCode string   `json:"postal_code"`
	City       string   `json:"city"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

// ToDomain keeps the coordinate only when both components are present.
func (a AddressRequest) ToDomain() domain.Address {
	addr := domain.Address{
		Number:     a.Number,
		Street:     a.Street,
		PostalCode: a.PostalCode,
		City:       a.City,
	}
	if a.Lat != nil && a.Lng != nil {
		addr = addr.WithCoordinate(domain.Coordinate{Lat: *a.Lat, Lng: *a.Lng})
	}
	return addr
}

type CreatePackageRequest struct {
	Address         AddressRequest      `json:"address"`
	StorageLocation string              `json:"storage_location"`
	Notes           string              `json:"notes"`
	DeliveryType    domain.DeliveryType `json:"delivery_type"`
	Priority        domain.Priority     `json:"priority"`
	TimeWindow      *domain.TimeWindow  `json:"time_window"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type PackageResponse struct {
	ID               string               `json:"id"`
	Address          domain.Address       `json:"address"`
	FormattedAddress string               `json:"formatted_address"`
	StorageLocation  string               `json:"storage_location"`
	Notes            string               `json:"notes,omitempty"`
	DeliveryType     domain.DeliveryType  `json:"delivery_type"`
	Priority         domain.Priority      `json:"priority"`
	TimeWindow       *domain.TimeWindow   `json:"time_window,omitempty"`
	Status           domain.PackageStatus `json:"status"`
	PhotoRef         string               `json:"photo_ref,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

func FromPackage(p domain.Package) PackageResponse {
	return PackageResponse{
		ID:               p.ID,
		Address:          p.Address,
		FormattedAddress: p.Address.Formatted(),
		StorageLocation:  p.StorageLocation,
		Notes:            p.Notes,
		DeliveryType:     p.DeliveryType,
		Priority:         p.Priority,
		TimeWindow:       p.TimeWindow,
		Status:           p.Status,
		PhotoRef:         p.PhotoRef,
		CreatedAt:        p.CreatedAt,
	}
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}
