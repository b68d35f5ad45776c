package cache

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"log"
)

// CachedGeocoder consults a GeocodeCache before the wrapped Geocoder and
// stores fresh results. Cache errors are logged and bypassed.
type CachedGeocoder struct {
	inner ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachedGeocoder(inner ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cache: cache}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinate, error) {
	if g.inner == nil {
		return domain.Coordinate{}, errors.New("cached geocoder: inner geocoder is nil")
	}
	if g.cache == nil {
		return g.inner.Geocode(ctx, address)
	}

	hits, err := g.cache.GetMany(ctx, []string{address})
	if err != nil {
		log.Printf("op=geocode.cache.get address=%q err=%v", address, err)
	} else if c, ok := hits[address]; ok {
		return c, nil
	}

	c, err := g.inner.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if err := g.cache.PutMany(ctx, map[string]domain.Coordinate{address: c}); err != nil {
		log.Printf("op=geocode.cache.put address=%q err=%v", address, err)
	}
	return c, nil
}
