package qr

import "time"

// ScanEvent is one resolved visit to a QR code. Events are write-once:
// inserted on the redirect path and never updated or deleted.
type ScanEvent struct {
	ID              int64
	CodeID          int64
	IPAddress       string
	VisitorID       string // fingerprint of IP + user agent; a dedup key, not identity
	Country         string
	City            string
	DeviceType      string
	Browser         string
	OperatingSystem string
	Referrer        string
	ScannedAt       time.Time
}
