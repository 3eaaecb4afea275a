package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements qr.Repository, qr.FileRepository, and
// qr.ScanStore over a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const codeColumns = `
	c.id, c.owner_id, c.type, c.content, c.short_code, c.name, c.active,
	c.file_id, c.created_at, c.updated_at,
	f.token,
	d.default_url, d.mobile_url, d.desktop_url,
	u.utm_source, u.utm_medium, u.utm_campaign, u.utm_term, u.utm_content,
	z.fill_color, z.size,
	a.password_protection, a.expires_at, a.use_short_url
`

const codeJoins = `
	FROM qr_codes c
	LEFT JOIN uploaded_files f ON f.id = c.file_id
	LEFT JOIN qr_device_redirects d ON d.code_id = c.id
	LEFT JOIN qr_utm_parameters u ON u.code_id = c.id
	LEFT JOIN qr_customizations z ON z.code_id = c.id
	LEFT JOIN qr_advanced_options a ON a.code_id = c.id
`

func (p *PostgresStore) SaveCode(ctx context.Context, rec *qr.CodeRecord) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	err = tx.QueryRow(ctx, `
		INSERT INTO qr_codes (owner_id, type, content, short_code, name, active, file_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		rec.OwnerID, string(rec.Type), rec.Content, string(rec.ShortCode),
		rec.Name, rec.Active, rec.FileID, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert code: %w", err)
	}

	if err := upsertRelated(ctx, tx, rec); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (p *PostgresStore) GetByShortCode(ctx context.Context, code qr.ShortCode) (*qr.CodeRecord, error) {
	row := p.pool.QueryRow(ctx,
		"SELECT "+codeColumns+codeJoins+" WHERE c.short_code = $1", string(code))

	return scanCode(row)
}

func (p *PostgresStore) GetByID(ctx context.Context, id int64) (*qr.CodeRecord, error) {
	row := p.pool.QueryRow(ctx,
		"SELECT "+codeColumns+codeJoins+" WHERE c.id = $1", id)

	return scanCode(row)
}

func (p *PostgresStore) UpdateDynamic(ctx context.Context, rec *qr.CodeRecord) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec.UpdatedAt = time.Now().UTC()

	tag, err := tx.Exec(ctx, `
		UPDATE qr_codes
		SET content = $2, name = $3, active = $4, updated_at = $5
		WHERE id = $1 AND type = 'dynamic'
	`, rec.ID, rec.Content, rec.Name, rec.Active, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update code: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return qr.ErrNotFound
	}

	if err := upsertRelated(ctx, tx, rec); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (p *PostgresStore) Deactivate(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE qr_codes SET active = false, updated_at = $2 WHERE id = $1
	`, id, time.Now().UTC())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return qr.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) ListByOwner(ctx context.Context, ownerID int64) ([]*qr.CodeRecord, error) {
	rows, err := p.pool.Query(ctx,
		"SELECT "+codeColumns+codeJoins+" WHERE c.owner_id = $1 ORDER BY c.created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*qr.CodeRecord

	for rows.Next() {
		rec, err := scanCode(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

func (p *PostgresStore) SaveFile(ctx context.Context, f *qr.UploadedFile) error {
	f.UploadedAt = time.Now().UTC()

	return p.pool.QueryRow(ctx, `
		INSERT INTO uploaded_files (owner_id, token, path, original_filename, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, f.OwnerID, f.Token, f.Path, f.OriginalFilename, f.UploadedAt).Scan(&f.ID)
}

func (p *PostgresStore) GetByToken(ctx context.Context, token uuid.UUID) (*qr.UploadedFile, error) {
	var f qr.UploadedFile

	err := p.pool.QueryRow(ctx, `
		SELECT id, owner_id, token, path, original_filename, uploaded_at
		FROM uploaded_files
		WHERE token = $1
	`, token).Scan(&f.ID, &f.OwnerID, &f.Token, &f.Path, &f.OriginalFilename, &f.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, qr.ErrNotFound
		}

		return nil, err
	}

	return &f, nil
}

// SaveScan appends one scan event. There is no conflict handling: events
// are insert-only and every call produces a new row.
func (p *PostgresStore) SaveScan(ctx context.Context, event *qr.ScanEvent) error {
	return p.pool.QueryRow(ctx, `
		INSERT INTO scan_events (code_id, ip_address, visitor_id, country, city,
			device_type, browser, operating_system, referrer, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		event.CodeID, event.IPAddress, event.VisitorID, event.Country, event.City,
		event.DeviceType, event.Browser, event.OperatingSystem, event.Referrer, event.ScannedAt,
	).Scan(&event.ID)
}

func (p *PostgresStore) RecentScans(ctx context.Context, codeID int64, limit int) ([]*qr.ScanEvent, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, code_id, ip_address, visitor_id, country, city,
			device_type, browser, operating_system, referrer, scanned_at
		FROM scan_events
		WHERE code_id = $1
		ORDER BY scanned_at DESC
		LIMIT $2
	`, codeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*qr.ScanEvent

	for rows.Next() {
		var e qr.ScanEvent

		err := rows.Scan(&e.ID, &e.CodeID, &e.IPAddress, &e.VisitorID, &e.Country, &e.City,
			&e.DeviceType, &e.Browser, &e.OperatingSystem, &e.Referrer, &e.ScannedAt)
		if err != nil {
			return nil, err
		}

		events = append(events, &e)
	}

	return events, rows.Err()
}

func (p *PostgresStore) CountScans(ctx context.Context, codeID int64) (int64, error) {
	var count int64

	err := p.pool.QueryRow(ctx,
		"SELECT count(*) FROM scan_events WHERE code_id = $1", codeID).Scan(&count)

	return count, err
}

// upsertRelated writes the optional associated records; a nil association
// deletes any existing row so updates can clear configuration.
func upsertRelated(ctx context.Context, tx pgx.Tx, rec *qr.CodeRecord) error {
	if rec.DeviceRedirects != nil {
		_, err := tx.Exec(ctx, `
			INSERT INTO qr_device_redirects (code_id, default_url, mobile_url, desktop_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code_id) DO UPDATE
			SET default_url = $2, mobile_url = $3, desktop_url = $4
		`, rec.ID, rec.DeviceRedirects.DefaultURL, rec.DeviceRedirects.MobileURL, rec.DeviceRedirects.DesktopURL)
		if err != nil {
			return fmt.Errorf("upsert device redirects: %w", err)
		}
	} else if _, err := tx.Exec(ctx,
		"DELETE FROM qr_device_redirects WHERE code_id = $1", rec.ID); err != nil {
		return err
	}

	if rec.UTM != nil {
		_, err := tx.Exec(ctx, `
			INSERT INTO qr_utm_parameters (code_id, utm_source, utm_medium, utm_campaign, utm_term, utm_content)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (code_id) DO UPDATE
			SET utm_source = $2, utm_medium = $3, utm_campaign = $4, utm_term = $5, utm_content = $6
		`, rec.ID, rec.UTM.Source, rec.UTM.Medium, rec.UTM.Campaign, rec.UTM.Term, rec.UTM.Content)
		if err != nil {
			return fmt.Errorf("upsert utm parameters: %w", err)
		}
	} else if _, err := tx.Exec(ctx,
		"DELETE FROM qr_utm_parameters WHERE code_id = $1", rec.ID); err != nil {
		return err
	}

	if rec.Customization != nil {
		_, err := tx.Exec(ctx, `
			INSERT INTO qr_customizations (code_id, fill_color, size)
			VALUES ($1, $2, $3)
			ON CONFLICT (code_id) DO UPDATE SET fill_color = $2, size = $3
		`, rec.ID, rec.Customization.FillColor, rec.Customization.Size)
		if err != nil {
			return fmt.Errorf("upsert customization: %w", err)
		}
	}

	if rec.Advanced != nil {
		_, err := tx.Exec(ctx, `
			INSERT INTO qr_advanced_options (code_id, password_protection, expires_at, use_short_url)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code_id) DO UPDATE
			SET password_protection = $2, expires_at = $3, use_short_url = $4
		`, rec.ID, rec.Advanced.PasswordProtection, rec.Advanced.ExpiresAt, rec.Advanced.UseShortURL)
		if err != nil {
			return fmt.Errorf("upsert advanced options: %w", err)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCode(row rowScanner) (*qr.CodeRecord, error) {
	var (
		rec       qr.CodeRecord
		codeType  string
		shortCode string
		token     *uuid.UUID

		defaultURL, mobileURL, desktopURL                      *string
		utmSource, utmMedium, utmCampaign, utmTerm, utmContent *string
		fillColor, size                                        *string
		passwordProtection, useShortURL                        *bool
		expiresAt                                              *time.Time
	)

	err := row.Scan(
		&rec.ID, &rec.OwnerID, &codeType, &rec.Content, &shortCode, &rec.Name, &rec.Active,
		&rec.FileID, &rec.CreatedAt, &rec.UpdatedAt,
		&token,
		&defaultURL, &mobileURL, &desktopURL,
		&utmSource, &utmMedium, &utmCampaign, &utmTerm, &utmContent,
		&fillColor, &size,
		&passwordProtection, &expiresAt, &useShortURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, qr.ErrNotFound
		}

		return nil, err
	}

	rec.Type = qr.CodeType(codeType)
	if !rec.Type.Valid() {
		return nil, fmt.Errorf("code %d: unknown type %q", rec.ID, codeType)
	}

	rec.ShortCode = qr.ShortCode(shortCode)
	rec.FileToken = token

	if defaultURL != nil || mobileURL != nil || desktopURL != nil {
		rec.DeviceRedirects = &qr.DeviceRedirects{
			DefaultURL: deref(defaultURL),
			MobileURL:  deref(mobileURL),
			DesktopURL: deref(desktopURL),
		}
	}

	if utmSource != nil || utmMedium != nil || utmCampaign != nil || utmTerm != nil || utmContent != nil {
		rec.UTM = &qr.UTMParameters{
			Source:   deref(utmSource),
			Medium:   deref(utmMedium),
			Campaign: deref(utmCampaign),
			Term:     deref(utmTerm),
			Content:  deref(utmContent),
		}
	}

	if fillColor != nil || size != nil {
		rec.Customization = &qr.Customization{
			FillColor: deref(fillColor),
			Size:      deref(size),
		}
	}

	if passwordProtection != nil || expiresAt != nil || useShortURL != nil {
		rec.Advanced = &qr.AdvancedOptions{
			PasswordProtection: passwordProtection != nil && *passwordProtection,
			ExpiresAt:          expiresAt,
			UseShortURL:        useShortURL != nil && *useShortURL,
		}
	}

	return &rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// Compile-time checks.
var (
	_ qr.Repository     = (*PostgresStore)(nil)
	_ qr.FileRepository = (*PostgresStore)(nil)
	_ qr.ScanStore      = (*PostgresStore)(nil)
)
