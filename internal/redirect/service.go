// Package redirect resolves short codes to their final destinations and
// orchestrates scan tracking on the way.
package redirect

import (
	"context"
	"fmt"

	"github.com/Ghulam-Abbas-65/QR/internal/device"
	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/Ghulam-Abbas-65/QR/internal/tracker"
	"go.uber.org/zap"
)

// ScanRecorder captures one scan event per resolved request. It never
// returns an error; failures stay inside the recorder.
type ScanRecorder interface {
	Record(ctx context.Context, rec *qr.CodeRecord, meta tracker.RequestMeta) *qr.ScanEvent
}

// Service is the redirect orchestrator: it validates the code, records the
// scan, and computes the destination, in that order.
type Service struct {
	codes    qr.Repository
	recorder ScanRecorder
	logger   *zap.Logger
}

// NewService creates a redirect service.
func NewService(codes qr.Repository, recorder ScanRecorder, logger *zap.Logger) *Service {
	return &Service{
		codes:    codes,
		recorder: recorder,
		logger:   logger,
	}
}

// HandleRedirect resolves a short code for one requesting client.
//
// The scan is recorded before the destination is computed so that a
// malformed stored destination cannot suppress analytics, and it is
// recorded at most once per call: unknown codes and deactivated dynamic
// codes bail out before recording. Errors map to qr.ErrNotFound,
// qr.ErrInactive, or a resolution failure.
func (s *Service) HandleRedirect(
	ctx context.Context, shortCode qr.ShortCode, meta tracker.RequestMeta,
) (Destination, error) {
	rec, err := s.codes.GetByShortCode(ctx, shortCode)
	if err != nil {
		return Destination{}, fmt.Errorf("lookup %q: %w", shortCode, err)
	}

	// Only dynamic codes carry the active/inactive state.
	if rec.Type == qr.TypeDynamic && !rec.Active {
		return Destination{}, fmt.Errorf("code %q: %w", shortCode, qr.ErrInactive)
	}

	s.recorder.Record(ctx, rec, meta)

	dest, err := ResolveDestination(rec, device.IsMobile(meta.UserAgent))
	if err != nil {
		s.logger.Error("destination resolution failed",
			zap.String("shortCode", string(shortCode)),
			zap.Error(err),
		)

		return Destination{}, err
	}

	return dest, nil
}
