package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ghulam-Abbas-65/QR/internal/geo"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testIP = "203.0.113.7"

func newResolver(services []geo.Service) *geo.Resolver {
	return geo.NewResolver(services, time.Second, zap.NewNop())
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("resolves empty and localhost to Local", func(t *testing.T) {
		r := newResolver(nil)

		assert.Equal(t, geo.Location{Country: "Local", City: "Local"}, r.Resolve(context.Background(), ""))
		assert.Equal(t, geo.Location{Country: "Local", City: "Local"}, r.Resolve(context.Background(), "localhost"))
		assert.Equal(t, geo.Location{Country: "Local", City: "Local"}, r.Resolve(context.Background(), "127.0.0.1"))
		assert.Equal(t, geo.Location{Country: "Local", City: "Local"}, r.Resolve(context.Background(), "::1"))
	})

	t.Run("resolves private ranges without calling any service", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		r := newResolver([]geo.Service{{
			Name:         "test",
			URL:          srv.URL + "/%s",
			CountryField: "country",
			CityField:    "city",
		}})

		loc := r.Resolve(context.Background(), "192.168.1.50")

		assert.Equal(t, geo.Location{Country: "Private Network", City: "Private Network"}, loc)
		assert.False(t, called)
	})

	t.Run("returns the first service's answer", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `{"country":"Germany","city":"Berlin"}`)

		r := newResolver([]geo.Service{{
			Name:         "first",
			URL:          srv.URL + "/%s",
			CountryField: "country",
			CityField:    "city",
		}})

		loc := r.Resolve(context.Background(), testIP)

		assert.Equal(t, geo.Location{Country: "Germany", City: "Berlin"}, loc)
	})

	t.Run("falls through to the next service on http error", func(t *testing.T) {
		failing := jsonServer(t, http.StatusInternalServerError, "")
		working := jsonServer(t, http.StatusOK, `{"country":"France","city":"Paris"}`)

		r := newResolver([]geo.Service{
			{Name: "failing", URL: failing.URL + "/%s", CountryField: "country", CityField: "city"},
			{Name: "working", URL: working.URL + "/%s", CountryField: "country", CityField: "city"},
		})

		loc := r.Resolve(context.Background(), testIP)

		assert.Equal(t, geo.Location{Country: "France", City: "Paris"}, loc)
	})

	t.Run("falls through when the service reports failure", func(t *testing.T) {
		reserved := jsonServer(t, http.StatusOK, `{"status":"fail","message":"reserved range"}`)
		working := jsonServer(t, http.StatusOK, `{"success":true,"country":"Japan","city":"Tokyo"}`)

		r := newResolver([]geo.Service{
			{
				Name:         "string-flag",
				URL:          reserved.URL + "/%s",
				CountryField: "country",
				CityField:    "city",
				SuccessField: "status",
				SuccessValue: "success",
			},
			{
				Name:         "bool-flag",
				URL:          working.URL + "/%s",
				CountryField: "country",
				CityField:    "city",
				SuccessField: "success",
				SuccessValue: "true",
			},
		})

		loc := r.Resolve(context.Background(), testIP)

		assert.Equal(t, geo.Location{Country: "Japan", City: "Tokyo"}, loc)
	})

	t.Run("returns Unknown when every service fails", func(t *testing.T) {
		first := jsonServer(t, http.StatusInternalServerError, "")
		second := jsonServer(t, http.StatusOK, "not json")

		r := newResolver([]geo.Service{
			{Name: "first", URL: first.URL + "/%s", CountryField: "country", CityField: "city"},
			{Name: "second", URL: second.URL + "/%s", CountryField: "country", CityField: "city"},
		})

		loc := r.Resolve(context.Background(), testIP)

		assert.Equal(t, geo.Location{Country: "Unknown", City: "Unknown"}, loc)
	})

	t.Run("returns Unknown with an empty service chain", func(t *testing.T) {
		r := newResolver(nil)

		loc := r.Resolve(context.Background(), testIP)

		assert.Equal(t, geo.Location{Country: "Unknown", City: "Unknown"}, loc)
	})

	t.Run("fills missing fields with Unknown", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `{"country":"Iceland"}`)

		r := newResolver([]geo.Service{{
			Name:         "partial",
			URL:          srv.URL + "/%s",
			CountryField: "country",
			CityField:    "city",
		}})

		loc := r.Resolve(context.Background(), testIP)

		assert.Equal(t, geo.Location{Country: "Iceland", City: "Unknown"}, loc)
	})
}
