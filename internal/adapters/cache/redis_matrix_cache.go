package cache

import (
	"context"
	"crypto/sha1"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const matrixKeyPrefix = "routeopt:matrix:"

// RedisMatrixCache wraps a MatrixProvider and stores successful matrices in
// Redis keyed by the ordered coordinate list. Redis failures never fail a
// request; the inner provider is called instead.
type RedisMatrixCache struct {
	client *redis.Client
	inner  ports.MatrixProvider
	ttl    time.Duration
}

func NewRedisMatrixCache(client *redis.Client, inner ports.MatrixProvider, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{client: client, inner: inner, ttl: ttl}
}

// matrixKey hashes coordinates rounded to 6 decimals (about 0.1 m) in request order.
func matrixKey(coords []domain.Coordinate) string {
	h := sha1.New()
	for _, c := range coords {
		h.Write([]byte(strconv.FormatFloat(c.Lat, 'f', 6, 64)))
		h.Write([]byte{','})
		h.Write([]byte(strconv.FormatFloat(c.Lng, 'f', 6, 64)))
		h.Write([]byte{';'})
	}
	return matrixKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (r *RedisMatrixCache) Matrix(ctx context.Context, coords []domain.Coordinate) (_ domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "matrix.cache.Matrix")(&err)

	if r.inner == nil {
		return nil, errors.New("matrix cache: inner provider is nil")
	}
	if len(coords) < 2 || r.client == nil {
		return r.inner.Matrix(ctx, coords)
	}

	key := matrixKey(coords)

	cached, err := r.get(ctx, key, len(coords))
	switch {
	case err != nil:
		log.Printf("op=matrix.cache.get key=%s err=%v", key, err)
	case cached != nil:
		return cached, nil
	}

	m, err := r.inner.Matrix(ctx, coords)
	if err != nil {
		return nil, err
	}

	if err := r.put(ctx, key, m); err != nil {
		log.Printf("op=matrix.cache.put key=%s err=%v", key, err)
	}
	return m, nil
}

// get returns nil, nil on a miss. Entries of the wrong shape count as misses.
func (r *RedisMatrixCache) get(ctx context.Context, key string, n int) (domain.DistanceMatrix, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var m domain.DistanceMatrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode cached matrix: %w", err)
	}
	if m.Validate(n) != nil {
		return nil, nil
	}
	return m, nil
}

func (r *RedisMatrixCache) put(ctx context.Context, key string, m domain.DistanceMatrix) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}
