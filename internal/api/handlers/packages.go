package handlers

import (
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PackageHandler exposes package registration and status endpoints.
type PackageHandler struct {
	Repo ports.PackageRepository
	Now  func() time.Time
}

func (h *PackageHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.Repo.ListPackages(r.Context())
	if err != nil {
		log.Printf("list packages failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPackagesResponse{
		Packages: make([]dto.PackageResponse, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		res.Packages = append(res.Packages, dto.FromPackage(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePackageRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if strings.TrimSpace(req.Address.Street) == "" {
		writeError(w, r, http.StatusBadRequest, "address.street is required")
		return
	}
	if (req.Address.Lat == nil) != (req.Address.Lng == nil) {
		writeError(w, r, http.StatusBadRequest, "address.lat and address.lng must be set together")
		return
	}

	pkg := domain.Package{
		ID:              uuid.NewString(),
		Address:         req.Address.ToDomain(),
		StorageLocation: strings.TrimSpace(req.StorageLocation),
		Notes:           req.Notes,
		DeliveryType:    req.DeliveryType,
		Priority:        req.Priority,
		TimeWindow:      req.TimeWindow,
		Status:          domain.PackagePending,
		CreatedAt:       h.now().UTC(),
	}

	if err := h.Repo.SavePackage(r.Context(), pkg); err != nil {
		log.Printf("create package failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromPackage(pkg))
}

// UpdateStatus marks a package delivered or failed, or resets it to pending.
func (h *PackageHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateStatusRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	var next domain.PackageStatus
	if req.Status == "" || next.UnmarshalText([]byte(req.Status)) != nil {
		writeError(w, r, http.StatusBadRequest, "status must be one of pending, delivered, failed")
		return
	}

	pkg, err := h.Repo.GetPackage(r.Context(), id)
	if errors.Is(err, ports.ErrPackageNotFound) {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		log.Printf("get package failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	updated, err := pkg.WithStatus(next)
	if err != nil {
		writeError(w, r, http.StatusConflict, err.Error())
		return
	}

	if err := h.Repo.UpdateStatus(r.Context(), id, updated.Status); err != nil {
		log.Printf("update package status failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPackage(updated))
}
