package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	ORS      ORSConfig      `yaml:"ors"`
	Redis    RedisConfig    `yaml:"redis"`
	Routing  RoutingConfig  `yaml:"routing"`
}

type ServerConfig struct {
	Port              string        `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
}

type DatabaseConfig struct {
	// sqlite, pgx or postgres
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	SeedPath string `yaml:"seed_path"`
}

type ORSConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	Profile           string        `yaml:"profile"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxAttempts       int           `yaml:"max_attempts"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

type RedisConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Address   string        `yaml:"address"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	MatrixTTL time.Duration `yaml:"matrix_ttl"`
}

type RoutingConfig struct {
	StartHour       float64 `yaml:"start_hour"`
	MinutesPerStop  float64 `yaml:"minutes_per_stop"`
	AverageSpeedKmh float64 `yaml:"average_speed_kmh"`
	// Used when a request carries no driver position.
	OriginLat float64 `yaml:"origin_lat"`
	OriginLng float64 `yaml:"origin_lng"`
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			// Cold-cache planning waits on external APIs.
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			DSN:      "data/app.db",
			SeedPath: "",
		},
		ORS: ORSConfig{
			BaseURL:           "https://api.openrouteservice.org",
			Profile:           "driving-car",
			Timeout:           10 * time.Second,
			MaxAttempts:       1,
			RequestsPerMinute: 40,
		},
		Redis: RedisConfig{
			Enabled:   false,
			Address:   "localhost:6379",
			MatrixTTL: 24 * time.Hour,
		},
		Routing: RoutingConfig{
			StartHour:       8,
			MinutesPerStop:  15,
			AverageSpeedKmh: 30,
			OriginLat:       48.8566,
			OriginLng:       2.3522,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("load config %q: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("load config %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = Get("PORT", c.Server.Port)
	c.Database.Driver = Get("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = Get("DATABASE_URL", c.Database.DSN)
	c.Database.SeedPath = Get("SEED_PATH", c.Database.SeedPath)
	c.ORS.APIKey = Get("ORS_API_KEY", c.ORS.APIKey)
	c.ORS.BaseURL = Get("ORS_BASE_URL", c.ORS.BaseURL)
	c.Redis.Address = Get("REDIS_ADDR", c.Redis.Address)
	c.Redis.Password = Get("REDIS_PASSWORD", c.Redis.Password)

	var err error
	if c.Redis.Enabled, err = getBool("REDIS_ENABLED", c.Redis.Enabled); err != nil {
		return err
	}
	if c.ORS.MaxAttempts, err = getInt("ORS_MAX_ATTEMPTS", c.ORS.MaxAttempts); err != nil {
		return err
	}
	if c.Routing.StartHour, err = getFloat("ROUTING_START_HOUR", c.Routing.StartHour); err != nil {
		return err
	}
	if c.Routing.MinutesPerStop, err = getFloat("ROUTING_MINUTES_PER_STOP", c.Routing.MinutesPerStop); err != nil {
		return err
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("env %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("env %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("env %s: %w", key, err)
	}
	return f, nil
}
