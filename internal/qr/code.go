package qr

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a code, file, or token has no record.
	ErrNotFound = errors.New("not found")

	// ErrInactive is returned when a dynamic code has been deactivated.
	ErrInactive = errors.New("code is inactive")

	// ErrNoDestination is returned when a stored destination cannot be resolved.
	ErrNoDestination = errors.New("no resolvable destination")
)

// CodeType is the closed set of QR code kinds.
type CodeType string

const (
	TypeStaticURL  CodeType = "url"
	TypeStaticFile CodeType = "file"
	TypeDynamic    CodeType = "dynamic"
)

// Valid reports whether t is one of the known code types.
func (t CodeType) Valid() bool {
	switch t {
	case TypeStaticURL, TypeStaticFile, TypeDynamic:
		return true
	}

	return false
}

// ShortCode is the URL-safe token embedded in a QR code. It is the only
// externally addressable identifier on the redirect path.
type ShortCode string

// CodeRecord represents one generated QR code.
//
// The short code is assigned at creation and never changes. Only dynamic
// codes are mutated after creation (content, active flag, redirects, UTM);
// static codes only ever see soft-deactivation.
type CodeRecord struct {
	ID        int64
	OwnerID   int64
	Type      CodeType
	Content   string // destination URL, or empty for file codes
	ShortCode ShortCode
	Name      string
	Active    bool

	// FileID and FileToken are set for TypeStaticFile; the token is loaded
	// alongside the record so redirect resolution needs no second lookup.
	FileID    *int64
	FileToken *uuid.UUID

	DeviceRedirects *DeviceRedirects
	UTM             *UTMParameters
	Customization   *Customization
	Advanced        *AdvancedOptions

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeviceRedirects holds per-device destination overrides for a dynamic code.
// Any field may be empty; an empty field falls through to the next layer.
type DeviceRedirects struct {
	DefaultURL string
	MobileURL  string
	DesktopURL string
}

// Empty reports whether no override URL is set at all.
func (d *DeviceRedirects) Empty() bool {
	return d == nil || (d.DefaultURL == "" && d.MobileURL == "" && d.DesktopURL == "")
}

// UTMParameters are campaign attribution parameters injected onto URL
// destinations. Empty fields are not injected.
type UTMParameters struct {
	Source   string
	Medium   string
	Campaign string
	Term     string
	Content  string
}

// Values returns the non-empty UTM parameters as query key/value pairs.
func (u *UTMParameters) Values() map[string]string {
	if u == nil {
		return nil
	}

	pairs := map[string]string{
		"utm_source":   u.Source,
		"utm_medium":   u.Medium,
		"utm_campaign": u.Campaign,
		"utm_term":     u.Term,
		"utm_content":  u.Content,
	}

	for k, v := range pairs {
		if v == "" {
			delete(pairs, k)
		}
	}

	return pairs
}

// Customization holds rendering hints for the QR image. It never affects
// redirect resolution.
type Customization struct {
	FillColor string // hex, e.g. "#1a1a1a"
	Size      string // "small", "medium", "large"
}

// AdvancedOptions are gating options attached to a code. The redirect path
// ignores ExpiresAt: it is informational only.
type AdvancedOptions struct {
	PasswordProtection bool
	ExpiresAt          *time.Time
	UseShortURL        bool
}
