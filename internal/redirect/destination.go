package redirect

import (
	"fmt"
	"net/url"

	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/google/uuid"
)

// DestinationKind is the closed set of resolution outcomes.
type DestinationKind int

const (
	// KindURL redirects the client to a URL.
	KindURL DestinationKind = iota
	// KindFile hands the client off to the file-delivery endpoint.
	KindFile
)

// Destination is the computed target of a redirect: either a final URL or
// an uploaded-file token.
type Destination struct {
	Kind      DestinationKind
	URL       string
	FileToken uuid.UUID
}

// ResolveDestination computes the final destination for a code record and a
// requesting client. It is a pure function: no I/O, safe for concurrent use.
//
// File codes terminate at the file token; device and UTM layers apply only
// to URL destinations. Dynamic codes consult the device redirect overrides
// in precedence order before falling back to the stored content. The active
// flag is the orchestrator's concern and is not checked here.
func ResolveDestination(rec *qr.CodeRecord, isMobile bool) (Destination, error) {
	switch rec.Type {
	case qr.TypeStaticFile:
		if rec.FileToken == nil {
			return Destination{}, fmt.Errorf("file code %q: %w", rec.ShortCode, qr.ErrNoDestination)
		}

		return Destination{Kind: KindFile, FileToken: *rec.FileToken}, nil

	case qr.TypeStaticURL:
		dest, err := injectUTM(rec.Content, rec.UTM)
		if err != nil {
			return Destination{}, err
		}

		return Destination{Kind: KindURL, URL: dest}, nil

	case qr.TypeDynamic:
		target := selectDeviceURL(rec, isMobile)
		if target == "" {
			return Destination{}, fmt.Errorf("dynamic code %q: %w", rec.ShortCode, qr.ErrNoDestination)
		}

		dest, err := injectUTM(target, rec.UTM)
		if err != nil {
			return Destination{}, err
		}

		return Destination{Kind: KindURL, URL: dest}, nil

	default:
		return Destination{}, fmt.Errorf("unknown code type %q: %w", rec.Type, qr.ErrNoDestination)
	}
}

// selectDeviceURL picks the destination for a dynamic code: the matching
// device override first, then the default override, then the stored content.
func selectDeviceURL(rec *qr.CodeRecord, isMobile bool) string {
	d := rec.DeviceRedirects
	if d.Empty() {
		return rec.Content
	}

	if isMobile && d.MobileURL != "" {
		return d.MobileURL
	}

	if !isMobile && d.DesktopURL != "" {
		return d.DesktopURL
	}

	if d.DefaultURL != "" {
		return d.DefaultURL
	}

	return rec.Content
}

// injectUTM appends the non-empty UTM parameters to a destination URL.
// Existing query parameters are preserved; a UTM key already present is
// overwritten, not duplicated. Scheme, host, path, and fragment pass
// through untouched.
func injectUTM(rawURL string, utm *qr.UTMParameters) (string, error) {
	params := utm.Values()
	if len(params) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse destination %q: %w", rawURL, err)
	}

	query := u.Query()
	for k, v := range params {
		query.Set(k, v)
	}

	u.RawQuery = query.Encode()

	return u.String(), nil
}
