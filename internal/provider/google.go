package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"address-validator/internal/models"

	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"
	DefaultTimeout  = 10 * time.Second
	name            = "google"
)

// Options configures a GoogleGeocoder.
type Options struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	// RateLimit is the number of requests per second; zero or less disables limiting.
	RateLimit  float64
	Burst      int
	HTTPClient *http.Client
}

// GoogleGeocoder queries the Google Geocoding API, restricted to US results.
type GoogleGeocoder struct {
	apiKey   string
	endpoint string
	timeout  time.Duration
	http     *http.Client
	limiter  *rate.Limiter
}

type geocodeResponse struct {
	Results      []geocodeResult `json:"results"`
	Status       Status          `json:"status"`
	ErrorMessage string          `json:"error_message"`
}

type geocodeResult struct {
	AddressComponents []models.AddressComponent `json:"address_components"`
	FormattedAddress  string                    `json:"formatted_address"`
	Geometry          struct {
		LocationType models.LocationType `json:"location_type"`
	} `json:"geometry"`
	PartialMatch bool     `json:"partial_match"`
	Types        []string `json:"types"`
}

// NewGoogleGeocoder creates a new Google geocoding client
func NewGoogleGeocoder(opts Options) *GoogleGeocoder {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}

	return &GoogleGeocoder{
		apiKey:   opts.APIKey,
		endpoint: opts.Endpoint,
		timeout:  opts.Timeout,
		http:     opts.HTTPClient,
		limiter:  rate.NewLimiter(limit, opts.Burst),
	}
}

func (g *GoogleGeocoder) Name() string {
	return name
}

// Geocode returns the provider's candidates for address in provider order.
// A ZERO_RESULTS response yields an empty slice and no error.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) ([]models.Candidate, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: ErrorKindTransient, Message: "rate limit wait aborted", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("address", address)
	query.Set("components", "country:US")
	query.Set("region", "us")
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: ErrorKindInvalidRequest, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: ErrorKindTransient, Message: "geocoding request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &Error{Kind: ErrorKindTransient, Message: fmt.Sprintf("provider returned HTTP %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: ErrorKindUnknownUpstream, Message: fmt.Sprintf("provider returned HTTP %d", resp.StatusCode)}
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &Error{Kind: ErrorKindUnknownUpstream, Message: "failed to decode response", Err: err}
	}

	if err := StatusError(body.Status, body.ErrorMessage); err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(body.Results))
	for _, r := range body.Results {
		candidates = append(candidates, models.Candidate{
			FormattedAddress: r.FormattedAddress,
			PartialMatch:     r.PartialMatch,
			LocationType:     r.Geometry.LocationType,
			Types:            r.Types,
			Components:       r.AddressComponents,
		})
	}

	return candidates, nil
}
