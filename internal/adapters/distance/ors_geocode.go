package distance

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves one address using OpenRouteService (/geocode/search).
func (o *ORSClient) Geocode(ctx context.Context, address string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := o.normalize(address)
	if norm == "" {
		return domain.Coordinate{}, errors.New("geocode: address must be non-empty")
	}

	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinate{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinate{}, fmt.Errorf("no geocode results for %q", norm)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinate{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	return domain.Coordinate{Lng: coords[0], Lat: coords[1]}, nil
}
