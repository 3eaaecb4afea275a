package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of the qr storage interfaces,
// used by tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	nextCodeID int64
	nextFileID int64
	nextScanID int64
	codes      map[int64]*qr.CodeRecord
	byShort    map[qr.ShortCode]int64
	files      map[uuid.UUID]*qr.UploadedFile
	scans      []*qr.ScanEvent
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes:   make(map[int64]*qr.CodeRecord),
		byShort: make(map[qr.ShortCode]int64),
		files:   make(map[uuid.UUID]*qr.UploadedFile),
	}
}

func (m *MemoryStore) SaveCode(_ context.Context, rec *qr.CodeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextCodeID++
	rec.ID = m.nextCodeID

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	clone := *rec
	m.codes[rec.ID] = &clone
	m.byShort[rec.ShortCode] = rec.ID

	return nil
}

func (m *MemoryStore) GetByShortCode(_ context.Context, code qr.ShortCode) (*qr.CodeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byShort[code]
	if !ok {
		return nil, qr.ErrNotFound
	}

	clone := *m.codes[id]

	return &clone, nil
}

func (m *MemoryStore) GetByID(_ context.Context, id int64) (*qr.CodeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.codes[id]
	if !ok {
		return nil, qr.ErrNotFound
	}

	clone := *rec

	return &clone, nil
}

func (m *MemoryStore) UpdateDynamic(_ context.Context, rec *qr.CodeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.codes[rec.ID]
	if !ok || existing.Type != qr.TypeDynamic {
		return qr.ErrNotFound
	}

	rec.UpdatedAt = time.Now().UTC()
	rec.ShortCode = existing.ShortCode // immutable
	rec.CreatedAt = existing.CreatedAt

	clone := *rec
	m.codes[rec.ID] = &clone

	return nil
}

func (m *MemoryStore) Deactivate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.codes[id]
	if !ok {
		return qr.ErrNotFound
	}

	rec.Active = false
	rec.UpdatedAt = time.Now().UTC()

	return nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, ownerID int64) ([]*qr.CodeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []*qr.CodeRecord

	for _, rec := range m.codes {
		if rec.OwnerID == ownerID {
			clone := *rec
			records = append(records, &clone)
		}
	}

	// Newest first, same as the SQL store.
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })

	return records, nil
}

func (m *MemoryStore) SaveFile(_ context.Context, f *qr.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextFileID++
	f.ID = m.nextFileID
	f.UploadedAt = time.Now().UTC()

	clone := *f
	m.files[f.Token] = &clone

	return nil
}

func (m *MemoryStore) GetByToken(_ context.Context, token uuid.UUID) (*qr.UploadedFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[token]
	if !ok {
		return nil, qr.ErrNotFound
	}

	clone := *f

	return &clone, nil
}

func (m *MemoryStore) SaveScan(_ context.Context, event *qr.ScanEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextScanID++
	event.ID = m.nextScanID

	clone := *event
	m.scans = append(m.scans, &clone)

	return nil
}

func (m *MemoryStore) RecentScans(_ context.Context, codeID int64, limit int) ([]*qr.ScanEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []*qr.ScanEvent

	for i := len(m.scans) - 1; i >= 0 && len(events) < limit; i-- {
		if m.scans[i].CodeID == codeID {
			clone := *m.scans[i]
			events = append(events, &clone)
		}
	}

	return events, nil
}

func (m *MemoryStore) CountScans(_ context.Context, codeID int64) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64

	for _, s := range m.scans {
		if s.CodeID == codeID {
			count++
		}
	}

	return count, nil
}

// Compile-time checks.
var (
	_ qr.Repository     = (*MemoryStore)(nil)
	_ qr.FileRepository = (*MemoryStore)(nil)
	_ qr.ScanStore      = (*MemoryStore)(nil)
)
