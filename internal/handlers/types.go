package handlers

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// DeviceRedirectsInput mirrors qr.DeviceRedirects for request bodies.
type DeviceRedirectsInput struct {
	DefaultURL string `doc:"Fallback destination"            format:"uri" json:"defaultUrl,omitempty"`
	MobileURL  string `doc:"Destination for mobile clients"  format:"uri" json:"mobileUrl,omitempty"`
	DesktopURL string `doc:"Destination for desktop clients" format:"uri" json:"desktopUrl,omitempty"`
}

// UTMInput mirrors qr.UTMParameters for request bodies.
type UTMInput struct {
	Source   string `json:"utmSource,omitempty"`
	Medium   string `json:"utmMedium,omitempty"`
	Campaign string `json:"utmCampaign,omitempty"`
	Term     string `json:"utmTerm,omitempty"`
	Content  string `json:"utmContent,omitempty"`
}

// CustomizationInput mirrors qr.Customization for request bodies.
type CustomizationInput struct {
	FillColor string `doc:"Hex fill color, e.g. #1a1a1a" json:"fillColor,omitempty"`
	Size      string `doc:"Size class"                   enum:"small,medium,large" json:"size,omitempty"`
}

// AdvancedInput mirrors qr.AdvancedOptions for request bodies.
type AdvancedInput struct {
	PasswordProtection bool       `json:"passwordProtection,omitempty"`
	ExpiresAt          *time.Time `json:"expiresAt,omitempty"`
	UseShortURL        bool       `json:"useShortUrl,omitempty"`
}

// CreateURLQRRequest creates a static-url code.
type CreateURLQRRequest struct {
	Body struct {
		URL           string              `doc:"Destination URL" format:"uri" json:"url"`
		Name          string              `json:"name,omitempty"`
		OwnerID       int64               `doc:"Owner reference, supplied by the auth layer" json:"ownerId,omitempty"`
		UTM           *UTMInput           `json:"utmParameters,omitempty"`
		Customization *CustomizationInput `json:"customization,omitempty"`
		Advanced      *AdvancedInput      `json:"advancedOptions,omitempty"`
	}
}

// CreateDynamicQRRequest creates a dynamic code. At least one destination
// URL must be provided.
type CreateDynamicQRRequest struct {
	Body struct {
		DefaultURL    string              `format:"uri" json:"defaultUrl,omitempty"`
		MobileURL     string              `format:"uri" json:"mobileUrl,omitempty"`
		DesktopURL    string              `format:"uri" json:"desktopUrl,omitempty"`
		Name          string              `json:"name,omitempty"`
		OwnerID       int64               `json:"ownerId,omitempty"`
		UTM           *UTMInput           `json:"utmParameters,omitempty"`
		Customization *CustomizationInput `json:"customization,omitempty"`
		Advanced      *AdvancedInput      `json:"advancedOptions,omitempty"`
	}
}

// CreateFileQRRequest creates a static-file code from an uploaded blob.
type CreateFileQRRequest struct {
	Name    string `doc:"Optional code name"  query:"name"`
	OwnerID int64  `doc:"Owner reference"     query:"ownerId"`
	RawBody huma.MultipartFormFiles[FileUpload]
}

// FileUpload is the multipart payload for file QR creation.
type FileUpload struct {
	File huma.FormFile `contentType:"application/octet-stream" form:"file" required:"true"`
}

// QRCodeResponse is the API view of a code record.
type QRCodeResponse struct {
	Body QRCodeBody
}

// QRCodeBody carries the serialized code record.
type QRCodeBody struct {
	ID          int64                 `json:"id"`
	Type        string                `json:"type"`
	Content     string                `json:"content,omitempty"`
	ShortCode   string                `json:"shortCode"`
	Name        string                `json:"name,omitempty"`
	Active      bool                  `json:"active"`
	RedirectURL string                `doc:"Tracked redirect URL to embed in the QR image" json:"redirectUrl"`
	ImageURL    string                `json:"imageUrl"`
	FileToken   string                `json:"fileToken,omitempty"`
	Redirects   *DeviceRedirectsInput `json:"deviceRedirects,omitempty"`
	UTM         *UTMInput             `json:"utmParameters,omitempty"`
	ScanCount   int64                 `json:"scanCount"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ListQRRequest lists an owner's codes.
type ListQRRequest struct {
	OwnerID int64 `doc:"Owner reference, supplied by the auth layer" query:"ownerId"`
}

// QRListResponse carries an owner's codes, newest first.
type QRListResponse struct {
	Body struct {
		Codes []QRCodeBody `json:"codes"`
	}
}

// DeactivateQRRequest soft-deactivates one code. The record and its scan
// history are kept; only the redirect stops resolving for dynamic codes.
type DeactivateQRRequest struct {
	ID int64 `doc:"Code record ID" path:"id"`
}

// GetQRRequest fetches one code by ID.
type GetQRRequest struct {
	ID int64 `doc:"Code record ID" path:"id"`
}

// QRDetailResponse is the detail view including recent scans and rollups.
type QRDetailResponse struct {
	Body struct {
		QRCodeBody
		RecentScans []ScanView `json:"recentScans,omitempty"`
		Stats       *StatsView `doc:"Aggregated scan counters" json:"stats,omitempty"`
	}
}

// StatsView is the aggregated counter view of one code's scans.
type StatsView struct {
	TotalScans     int64            `json:"totalScans"`
	UniqueVisitors int64            `json:"uniqueVisitors"`
	Countries      map[string]int64 `json:"countries,omitempty"`
	Cities         map[string]int64 `json:"cities,omitempty"`
	Devices        map[string]int64 `json:"devices,omitempty"`
	Browsers       map[string]int64 `json:"browsers,omitempty"`
	Referrers      map[string]int64 `json:"referrers,omitempty"`
}

// ScanView is one scan event in API responses. The raw IP never leaves the
// recording path.
type ScanView struct {
	Country         string    `json:"country"`
	City            string    `json:"city"`
	DeviceType      string    `json:"deviceType"`
	Browser         string    `json:"browser"`
	OperatingSystem string    `json:"operatingSystem"`
	Referrer        string    `json:"referrer"`
	ScannedAt       time.Time `json:"scannedAt"`
}

// UpdateDynamicQRRequest mutates a dynamic code.
type UpdateDynamicQRRequest struct {
	ID   int64 `path:"id"`
	Body struct {
		Content   *string               `format:"uri" json:"content,omitempty"`
		Name      *string               `json:"name,omitempty"`
		Active    *bool                 `json:"active,omitempty"`
		Redirects *DeviceRedirectsInput `json:"deviceRedirects,omitempty"`
		UTM       *UTMInput             `json:"utmParameters,omitempty"`
	}
}

// RedirectRequest resolves a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse issues the redirect to the computed destination.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The destination" header:"Location"`
	}
}

// DownloadRequest streams an uploaded file by its access token.
type DownloadRequest struct {
	Token string `doc:"File access token" format:"uuid" path:"token"`
}

// ImageRequest renders a code's QR image.
type ImageRequest struct {
	ID int64 `path:"id"`
}

// ImageResponse carries the rendered PNG.
type ImageResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
