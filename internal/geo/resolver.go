// Package geo resolves client IP addresses to coarse locations via a
// fallback chain of external lookup services.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Location is a resolved (country, city) pair.
type Location struct {
	Country string
	City    string
}

var (
	locationLocal   = Location{Country: "Local", City: "Local"}
	locationPrivate = Location{Country: "Private Network", City: "Private Network"}
	locationUnknown = Location{Country: "Unknown", City: "Unknown"}
)

// Service describes one external lookup endpoint. URL is a template with a
// single %s placeholder for the IP address. CountryField and CityField name
// the JSON keys carrying the result. When SuccessField is non-empty, the
// response is accepted only if that key equals SuccessValue.
type Service struct {
	Name         string
	URL          string
	CountryField string
	CityField    string
	SuccessField string
	SuccessValue string
}

// DefaultServices is the default lookup chain. The list is process-wide
// configuration; tests inject their own.
func DefaultServices() []Service {
	return []Service{
		{
			Name:         "ipapi.co",
			URL:          "https://ipapi.co/%s/json/",
			CountryField: "country_name",
			CityField:    "city",
		},
		{
			Name:         "ip-api.com",
			URL:          "http://ip-api.com/json/%s",
			CountryField: "country",
			CityField:    "city",
			SuccessField: "status",
			SuccessValue: "success",
		},
		{
			Name:         "ipwho.is",
			URL:          "https://ipwho.is/%s",
			CountryField: "country",
			CityField:    "city",
			SuccessField: "success",
			SuccessValue: "true",
		},
	}
}

// Resolver maps IP addresses to locations. Lookups are best-effort: every
// failure mode degrades to a sentinel location, never an error.
type Resolver struct {
	services []Service
	client   *http.Client
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver creates a resolver over the given service chain. A nil or
// empty chain resolves every public IP to Unknown.
func NewResolver(services []Service, timeout time.Duration, logger *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Resolver{
		services: services,
		client:   &http.Client{},
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve maps an IP address to a location. Loopback and empty addresses
// resolve to Local, private ranges to Private Network. Public addresses are
// looked up against each service in order with a per-attempt timeout,
// stopping at the first usable answer. When every service fails the result
// is Unknown.
func (r *Resolver) Resolve(ctx context.Context, ip string) Location {
	if ip == "" || ip == "localhost" {
		return locationLocal
	}

	parsed := net.ParseIP(ip)
	if parsed != nil && parsed.IsLoopback() {
		return locationLocal
	}

	if parsed != nil && parsed.IsPrivate() {
		return locationPrivate
	}

	for _, svc := range r.services {
		loc, err := r.query(ctx, svc, ip)
		if err != nil {
			r.logger.Warn("geolocation lookup failed",
				zap.String("service", svc.Name),
				zap.String("ip", ip),
				zap.Error(err),
			)

			continue
		}

		return loc
	}

	return locationUnknown
}

func (r *Resolver) query(ctx context.Context, svc Service, ip string) (Location, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(svc.URL, ip), nil)
	if err != nil {
		return Location{}, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Location{}, err
	}

	if svc.SuccessField != "" {
		if got := stringify(payload[svc.SuccessField]); got != svc.SuccessValue {
			return Location{}, fmt.Errorf("service reported failure: %s=%q", svc.SuccessField, got)
		}
	}

	loc := Location{
		Country: stringify(payload[svc.CountryField]),
		City:    stringify(payload[svc.CityField]),
	}

	if loc.Country == "" {
		loc.Country = locationUnknown.Country
	}

	if loc.City == "" {
		loc.City = locationUnknown.City
	}

	return loc, nil
}

// stringify renders a decoded JSON value for field comparison. Booleans
// become "true"/"false" so success flags of either type compare cleanly.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}

		return "false"
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
