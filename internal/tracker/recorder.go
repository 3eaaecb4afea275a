// Package tracker records scan events on the redirect path.
package tracker

import (
	"context"
	"time"

	"github.com/Ghulam-Abbas-65/QR/internal/analytics"
	"github.com/Ghulam-Abbas-65/QR/internal/device"
	"github.com/Ghulam-Abbas-65/QR/internal/geo"
	"github.com/Ghulam-Abbas-65/QR/internal/messaging"
	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/Ghulam-Abbas-65/QR/internal/visitor"
	"go.uber.org/zap"
)

// LocationResolver maps an IP address to a location, never failing.
type LocationResolver interface {
	Resolve(ctx context.Context, ip string) geo.Location
}

// Recorder captures one scan event per resolved redirect. Recording is
// best-effort: no failure inside Record ever reaches the caller, so the
// user-facing redirect is never blocked on analytics.
type Recorder struct {
	scans   qr.ScanStore
	geo     LocationResolver
	publish messaging.Publish[analytics.ScanRecordedEvent]
	logger  *zap.Logger
}

// NewRecorder creates a scan recorder.
func NewRecorder(
	scans qr.ScanStore,
	resolver LocationResolver,
	publish messaging.Publish[analytics.ScanRecordedEvent],
	logger *zap.Logger,
) *Recorder {
	return &Recorder{
		scans:   scans,
		geo:     resolver,
		publish: publish,
		logger:  logger,
	}
}

// Record derives client metadata from the request, persists one scan event,
// and publishes it for the rollup consumer. Persistence and publish
// failures are logged and absorbed. The built event is returned either way.
func (r *Recorder) Record(ctx context.Context, rec *qr.CodeRecord, meta RequestMeta) *qr.ScanEvent {
	ip := ClientIP(meta)
	cls := device.Classify(meta.UserAgent)
	loc := r.geo.Resolve(ctx, ip)

	referrer := meta.Referrer
	if referrer == "" {
		referrer = "Direct"
	}

	event := &qr.ScanEvent{
		CodeID:          rec.ID,
		IPAddress:       ip,
		VisitorID:       visitor.Fingerprint(ip, meta.UserAgent),
		Country:         loc.Country,
		City:            loc.City,
		DeviceType:      cls.DeviceType,
		Browser:         cls.Browser,
		OperatingSystem: cls.OperatingSystem,
		Referrer:        referrer,
		ScannedAt:       time.Now().UTC(),
	}

	if err := r.scans.SaveScan(ctx, event); err != nil {
		r.logger.Error("failed to persist scan event",
			zap.String("shortCode", string(rec.ShortCode)),
			zap.Error(err),
		)

		return event
	}

	if err := r.publish(&analytics.ScanRecordedEvent{
		CodeID:          event.CodeID,
		ShortCode:       string(rec.ShortCode),
		VisitorID:       event.VisitorID,
		Country:         event.Country,
		City:            event.City,
		DeviceType:      event.DeviceType,
		Browser:         event.Browser,
		OperatingSystem: event.OperatingSystem,
		Referrer:        event.Referrer,
		ScannedAt:       event.ScannedAt,
	}); err != nil {
		r.logger.Error("failed to publish scan event",
			zap.String("shortCode", string(rec.ShortCode)),
			zap.Error(err),
		)
	}

	return event
}
