package qr

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile is a stored binary blob addressed by a securely random token.
// The token, not the row ID, is what download URLs carry.
type UploadedFile struct {
	ID               int64
	OwnerID          int64
	Token            uuid.UUID
	Path             string // location in the blob store
	OriginalFilename string
	UploadedAt       time.Time
}
