package handlers

import (
	"net/http"
	"time"

	"github.com/Ghulam-Abbas-65/QR/internal/ratelimit"
	"github.com/danielgtaylor/huma/v2"
)

// createLimits are the stricter limits shared by the create endpoints.
var createLimits = []ratelimit.LimitConfig{
	{Window: time.Minute, Max: 10},
	{Window: time.Hour, Max: 100},
	{Window: 24 * time.Hour, Max: 500},
}

// RegisterRoutes registers all QR management and redirect routes with
// per-endpoint rate limit configuration.
func RegisterRoutes(api huma.API, qrHandler *QRHandler, redirectHandler *RedirectHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/api/qr/url",
		Summary:     "Create URL QR code",
		Description: "Generates a QR code pointing at a URL, with optional UTM attribution.",
		Tags:        []string{"QR Codes"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Limits: createLimits},
		},
	}, qrHandler.CreateURLQR)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/api/qr/file",
		Summary:     "Create file QR code",
		Description: "Uploads a file and generates a QR code that delivers it.",
		Tags:        []string{"QR Codes"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Limits: createLimits},
		},
	}, qrHandler.CreateFileQR)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/api/qr/dynamic",
		Summary:     "Create dynamic QR code",
		Description: "Generates a QR code whose destination can be changed after printing, " +
			"with optional per-device overrides.",
		Tags: []string{"QR Codes"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Limits: createLimits},
		},
	}, qrHandler.CreateDynamicQR)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/qr",
		Summary:     "List QR codes",
		Description: "Lists an owner's QR codes, newest first.",
		Tags:        []string{"QR Codes"},
	}, qrHandler.ListQR)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/qr/{id}",
		Summary: "Get QR code",
		Tags:    []string{"QR Codes"},
	}, qrHandler.GetQR)

	huma.Register(api, huma.Operation{
		Method:        http.MethodDelete,
		Path:          "/api/qr/{id}",
		Summary:       "Deactivate QR code",
		Description:   "Soft-deactivates a code. The record and its scan history are kept.",
		Tags:          []string{"QR Codes"},
		DefaultStatus: http.StatusNoContent,
	}, qrHandler.DeactivateQR)

	huma.Register(api, huma.Operation{
		Method:  http.MethodPatch,
		Path:    "/api/qr/{id}",
		Summary: "Update dynamic QR code",
		Tags:    []string{"QR Codes"},
	}, qrHandler.UpdateDynamicQR)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/qr/{id}/image",
		Summary: "Render QR image",
		Tags:    []string{"QR Codes"},
	}, qrHandler.RenderImage)

	// Redirect and download run relaxed: they are the scan hot path.
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/r/{code}",
		Summary:     "Resolve a QR code",
		Description: "Records the scan and redirects to the computed destination.",
		Tags:        []string{"Redirect"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, redirectHandler.Redirect)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{token}",
		Summary:     "Download uploaded file",
		Description: "Streams the file referenced by an access token.",
		Tags:        []string{"Redirect"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, redirectHandler.Download)
}
