package handlers_test

import (
	"context"
	"errors"

	"github.com/Ghulam-Abbas-65/QR/internal/analytics"
	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/Ghulam-Abbas-65/QR/internal/store"
	"github.com/google/uuid"
)

var errMock = errors.New("mock error")

// mockRepo delegates to an in-memory store while allowing individual
// operations to fail on demand.
type mockRepo struct {
	*store.MemoryStore

	saveCodeErr       error
	getByShortCodeErr error
	getByIDErr        error
	updateDynamicErr  error
	deactivateErr     error
	listByOwnerErr    error
	saveFileErr       error
	getByTokenErr     error
	saveScanErr       error
	countScansErr     error
	recentScansErr    error
}

func newMockRepo() *mockRepo {
	return &mockRepo{MemoryStore: store.NewMemoryStore()}
}

func (m *mockRepo) SaveCode(ctx context.Context, rec *qr.CodeRecord) error {
	if m.saveCodeErr != nil {
		return m.saveCodeErr
	}

	return m.MemoryStore.SaveCode(ctx, rec)
}

func (m *mockRepo) GetByShortCode(ctx context.Context, code qr.ShortCode) (*qr.CodeRecord, error) {
	if m.getByShortCodeErr != nil {
		return nil, m.getByShortCodeErr
	}

	return m.MemoryStore.GetByShortCode(ctx, code)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*qr.CodeRecord, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}

	return m.MemoryStore.GetByID(ctx, id)
}

func (m *mockRepo) UpdateDynamic(ctx context.Context, rec *qr.CodeRecord) error {
	if m.updateDynamicErr != nil {
		return m.updateDynamicErr
	}

	return m.MemoryStore.UpdateDynamic(ctx, rec)
}

func (m *mockRepo) Deactivate(ctx context.Context, id int64) error {
	if m.deactivateErr != nil {
		return m.deactivateErr
	}

	return m.MemoryStore.Deactivate(ctx, id)
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*qr.CodeRecord, error) {
	if m.listByOwnerErr != nil {
		return nil, m.listByOwnerErr
	}

	return m.MemoryStore.ListByOwner(ctx, ownerID)
}

func (m *mockRepo) SaveFile(ctx context.Context, f *qr.UploadedFile) error {
	if m.saveFileErr != nil {
		return m.saveFileErr
	}

	return m.MemoryStore.SaveFile(ctx, f)
}

func (m *mockRepo) GetByToken(ctx context.Context, token uuid.UUID) (*qr.UploadedFile, error) {
	if m.getByTokenErr != nil {
		return nil, m.getByTokenErr
	}

	return m.MemoryStore.GetByToken(ctx, token)
}

func (m *mockRepo) SaveScan(ctx context.Context, event *qr.ScanEvent) error {
	if m.saveScanErr != nil {
		return m.saveScanErr
	}

	return m.MemoryStore.SaveScan(ctx, event)
}

func (m *mockRepo) CountScans(ctx context.Context, codeID int64) (int64, error) {
	if m.countScansErr != nil {
		return 0, m.countScansErr
	}

	return m.MemoryStore.CountScans(ctx, codeID)
}

func (m *mockRepo) RecentScans(ctx context.Context, codeID int64, limit int) ([]*qr.ScanEvent, error) {
	if m.recentScansErr != nil {
		return nil, m.recentScansErr
	}

	return m.MemoryStore.RecentScans(ctx, codeID, limit)
}

// stubStats serves fixed rollup counters.
type stubStats struct {
	stats *analytics.Stats
	err   error
}

func (s *stubStats) Read(_ context.Context, _ string) (*analytics.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.stats, nil
}
