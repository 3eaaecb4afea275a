// Package analytics carries the scan event contract and the rollup
// counters derived from it.
package analytics

import "time"

// TopicScanRecorded is the topic scan events are published on after a
// successful insert.
const TopicScanRecorded = "scan.recorded"

// ScanRecordedEvent mirrors a persisted scan event for downstream
// consumers. It intentionally omits the raw IP address: only the derived
// fields leave the recording path.
type ScanRecordedEvent struct {
	CodeID          int64     `json:"codeId"`
	ShortCode       string    `json:"shortCode"`
	VisitorID       string    `json:"visitorId"`
	Country         string    `json:"country"`
	City            string    `json:"city"`
	DeviceType      string    `json:"deviceType"`
	Browser         string    `json:"browser"`
	OperatingSystem string    `json:"operatingSystem"`
	Referrer        string    `json:"referrer"`
	ScannedAt       time.Time `json:"scannedAt"`
}
