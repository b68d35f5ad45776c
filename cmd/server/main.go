package main

import (
	"context"
	"delivery-route-optimizer/internal/adapters/cache"
	"delivery-route-optimizer/internal/adapters/distance"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/api"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/db"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/services"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQL, ORS, Redis) behind ports and starts the HTTP server.
func main() {
	configPath := flag.String("config", config.Get("CONFIG_PATH", "config.yaml"), "path to YAML config")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	ctx := context.Background()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, database, cfg.Database.SeedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSQLPackageRepository(database)

	provider, geocoder := buildProviders(cfg, database)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable addr=%s err=%v (matrix cache disabled)", cfg.Redis.Address, err)
		} else {
			provider = cache.NewRedisMatrixCache(rdb, provider, cfg.Redis.MatrixTTL)
			log.Printf("redis matrix cache enabled addr=%s ttl=%s", cfg.Redis.Address, cfg.Redis.MatrixTTL)
		}
	}

	planner := services.NewPlanner(services.NewMatrixService(provider), services.Schedule{
		StartHour:       cfg.Routing.StartHour,
		MinutesPerStop:  cfg.Routing.MinutesPerStop,
		AverageSpeedKmh: cfg.Routing.AverageSpeedKmh,
	})

	origin := domain.UserPosition{Lat: cfg.Routing.OriginLat, Lng: cfg.Routing.OriginLng}
	router := api.NewRouter(repo, planner, geocoder, origin)

	log.Printf("Server listening addr=:%s driver=%s", cfg.Server.Port, cfg.Database.Driver)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// buildProviders returns the road-distance provider and geocoder. Without an
// ORS key the planner runs on straight-line distances and packages must
// arrive with coordinates.
func buildProviders(cfg *config.Config, database *sqlx.DB) (ports.MatrixProvider, ports.Geocoder) {
	if strings.TrimSpace(cfg.ORS.APIKey) == "" {
		log.Println("ORS_API_KEY not set: using haversine distances, geocoding disabled")
		return distance.HaversineProvider{}, nil
	}

	ors, err := distance.NewORSClient(distance.ORSOptions{
		APIKey:            cfg.ORS.APIKey,
		BaseURL:           cfg.ORS.BaseURL,
		Profile:           cfg.ORS.Profile,
		Timeout:           cfg.ORS.Timeout,
		MaxAttempts:       cfg.ORS.MaxAttempts,
		RequestsPerMinute: cfg.ORS.RequestsPerMinute,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Geocode results persist in the database so restarts do not repeat lookups.
	geocoder := cache.NewCachedGeocoder(ors, cache.NewSQLGeocodeCache(database))
	return ors, geocoder
}

func initAndSeed(ctx context.Context, database *sqlx.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if err := repositories.SeedFromJSON(ctx, repositories.NewSQLPackageRepository(database), seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
