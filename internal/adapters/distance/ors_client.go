package distance

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	defaultORSProfile = "driving-car"
)

// ORSOptions configures the OpenRouteService client.
type ORSOptions struct {
	APIKey  string
	BaseURL string
	Profile string
	Timeout time.Duration
	// MaxAttempts bounds transport retries; 1 means a single request.
	MaxAttempts int
	// RequestsPerMinute throttles outgoing calls; 0 disables throttling.
	RequestsPerMinute int
}

// ORSClient talks to OpenRouteService for road distance matrices and geocoding.
//
// It implements ports.MatrixProvider and ports.Geocoder and is safe for
// concurrent use.
type ORSClient struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	profile     string
	maxAttempts int
	limiter     *rate.Limiter
}

func NewORSClient(opts ORSOptions) (*ORSClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	client := &ORSClient{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      opts.APIKey,
		baseURL:     defaultORSBaseURL,
		profile:     defaultORSProfile,
		maxAttempts: 1,
	}
	if opts.BaseURL != "" {
		client.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Profile != "" {
		client.profile = opts.Profile
	}
	if opts.Timeout > 0 {
		client.session.Timeout = opts.Timeout
	}
	if opts.MaxAttempts > 1 {
		client.maxAttempts = opts.MaxAttempts
	}
	if opts.RequestsPerMinute > 0 {
		client.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	return client, nil
}

// normalize ensures consistent geocoding queries by collapsing whitespace.
func (o *ORSClient) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
