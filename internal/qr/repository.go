package qr

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines storage operations for code records.
type Repository interface {
	SaveCode(ctx context.Context, rec *CodeRecord) error
	GetByShortCode(ctx context.Context, code ShortCode) (*CodeRecord, error)
	GetByID(ctx context.Context, id int64) (*CodeRecord, error)

	// UpdateDynamic mutates a dynamic code's content, active flag, and
	// associated redirect/UTM configuration. Static codes are rejected.
	UpdateDynamic(ctx context.Context, rec *CodeRecord) error

	// Deactivate soft-deactivates a code of any type.
	Deactivate(ctx context.Context, id int64) error

	ListByOwner(ctx context.Context, ownerID int64) ([]*CodeRecord, error)
}

// FileRepository defines storage operations for uploaded file metadata.
type FileRepository interface {
	SaveFile(ctx context.Context, f *UploadedFile) error
	GetByToken(ctx context.Context, token uuid.UUID) (*UploadedFile, error)
}

// ScanStore persists scan events. Inserts are append-only; there is no
// update or delete.
type ScanStore interface {
	SaveScan(ctx context.Context, event *ScanEvent) error
	RecentScans(ctx context.Context, codeID int64, limit int) ([]*ScanEvent, error)
	CountScans(ctx context.Context, codeID int64) (int64, error)
}
