// Package device maps user-agent strings to analytics categories and a
// coarse mobile/non-mobile decision for redirect routing.
package device

import (
	"strings"

	ua "github.com/mileusna/useragent"
)

const unknown = "Unknown"

// Classification is the analytics view of a client device.
type Classification struct {
	DeviceType      string
	Browser         string
	OperatingSystem string
}

// Classify parses a user-agent string into a device category, browser, and
// operating system. Mobile-OS categories take precedence over the generic
// tablet/desktop buckets. An empty or unrecognized user agent classifies as
// Unknown in every field; Classify never fails.
func Classify(userAgent string) Classification {
	if userAgent == "" {
		return Classification{DeviceType: unknown, Browser: unknown, OperatingSystem: unknown}
	}

	parsed := ua.Parse(userAgent)

	c := Classification{
		DeviceType:      unknown,
		Browser:         parsed.Name,
		OperatingSystem: parsed.OS,
	}

	if c.Browser == "" {
		c.Browser = unknown
	}

	if c.OperatingSystem == "" {
		c.OperatingSystem = unknown
	}

	switch {
	case parsed.Mobile && parsed.OS == ua.IOS:
		c.DeviceType = "iPhone"
	case parsed.Mobile && parsed.OS == ua.Android:
		c.DeviceType = "Android"
	case parsed.Mobile:
		c.DeviceType = "Mobile"
	case parsed.Tablet:
		c.DeviceType = "Tablet"
	case parsed.Desktop:
		c.DeviceType = "Desktop"
	}

	return c
}

// mobileTokens is the fixed token list used for redirect routing. It is
// deliberately coarser than Classify and the two can disagree; redirect
// routing and dashboard stats are separate consumers.
var mobileTokens = []string{
	"mobile", "android", "iphone", "ipad", "ipod",
	"blackberry", "windows phone", "opera mini",
}

// IsMobile reports whether the user agent contains any known mobile token,
// matched case-insensitively.
func IsMobile(userAgent string) bool {
	lowered := strings.ToLower(userAgent)

	for _, token := range mobileTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}

	return false
}
