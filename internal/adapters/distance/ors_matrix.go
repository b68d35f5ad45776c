package distance

import (
	"bytes"
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"encoding/json"
	"fmt"
	"net/http"
)

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
	Units     string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// Matrix retrieves the full N x N road distance matrix (meters) in one
// request to the OpenRouteService matrix endpoint. Any missing or null entry
// is reported as an error.
func (o *ORSClient) Matrix(
	ctx context.Context,
	coords []domain.Coordinate,
) (_ domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "ors.Matrix")(&err)

	n := len(coords)
	if n == 0 {
		return domain.DistanceMatrix{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, n)
	for _, c := range coords {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"distance"},
		Units:     "m",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != n {
		return nil, fmt.Errorf("expected %d source rows; got %d", n, len(mr.Distances))
	}

	out := domain.NewDistanceMatrix(n)
	for i, row := range mr.Distances {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d entries; want %d", i, len(row), n)
		}
		for j, v := range row {
			if v == nil {
				return nil, fmt.Errorf("matrix returned no route from %d to %d", i, j)
			}
			out[i][j] = *v
		}
	}

	return out, nil
}
