package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Upper bound on concurrent geocoding calls.
const geocodeConcurrency = 4

// ResolveCoordinates returns copies of packages with coordinates filled in
// for addresses that lack one. Each distinct address is geocoded once.
// Failed lookups leave the coordinate empty; the planner routes such stops last.
func ResolveCoordinates(ctx context.Context, geocoder ports.Geocoder, packages []domain.Package) []domain.Package {
	defer obs.Time(ctx, "geocode.resolve")(nil)

	out := make([]domain.Package, len(packages))
	for i, p := range packages {
		out[i] = p.Clone()
	}
	if geocoder == nil {
		return out
	}

	pending := make([]string, 0)
	seen := make(map[string]struct{})
	for _, p := range out {
		if p.Address.HasCoordinate() {
			continue
		}
		k := p.Address.Key()
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		pending = append(pending, k)
	}
	if len(pending) == 0 {
		return out
	}

	var mu sync.Mutex
	resolved := make(map[string]domain.Coordinate, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(geocodeConcurrency)
	for _, addr := range pending {
		addr := addr
		g.Go(func() error {
			c, err := geocoder.Geocode(gctx, addr)
			if err != nil {
				log.Printf("op=geocode.resolve address=%q err=%v", addr, err)
				return nil
			}
			mu.Lock()
			resolved[addr] = c
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for i := range out {
		if out[i].Address.HasCoordinate() {
			continue
		}
		if c, ok := resolved[out[i].Address.Key()]; ok {
			out[i].Address = out[i].Address.WithCoordinate(c)
		}
	}
	return out
}
