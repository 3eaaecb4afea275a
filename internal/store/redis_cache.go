package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/redis/go-redis/v9"
)

// RedisCacheRepository wraps a qr.Repository with Redis caching keyed by
// short code, for the redirect hot path. Reads go through the cache;
// mutations write through or invalidate.
type RedisCacheRepository struct {
	store  qr.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a Redis-cached repository decorator.
func NewRedisCacheRepository(
	store qr.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "code:",
		ttl:    ttl,
	}
}

func (r *RedisCacheRepository) SaveCode(ctx context.Context, rec *qr.CodeRecord) error {
	if err := r.store.SaveCode(ctx, rec); err != nil {
		return err
	}

	r.cache(ctx, rec)

	return nil
}

func (r *RedisCacheRepository) GetByShortCode(ctx context.Context, code qr.ShortCode) (*qr.CodeRecord, error) {
	if rec, err := r.fromCache(ctx, code); err == nil {
		return rec, nil
	}

	rec, err := r.store.GetByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, rec)

	return rec, nil
}

func (r *RedisCacheRepository) GetByID(ctx context.Context, id int64) (*qr.CodeRecord, error) {
	return r.store.GetByID(ctx, id)
}

func (r *RedisCacheRepository) UpdateDynamic(ctx context.Context, rec *qr.CodeRecord) error {
	if err := r.store.UpdateDynamic(ctx, rec); err != nil {
		return err
	}

	r.cache(ctx, rec)

	return nil
}

func (r *RedisCacheRepository) Deactivate(ctx context.Context, id int64) error {
	if err := r.store.Deactivate(ctx, id); err != nil {
		return err
	}

	// The short code is not known here; drop the cached entry lazily by
	// refetching the record and overwriting.
	if rec, err := r.store.GetByID(ctx, id); err == nil {
		r.cache(ctx, rec)
	}

	return nil
}

func (r *RedisCacheRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*qr.CodeRecord, error) {
	return r.store.ListByOwner(ctx, ownerID)
}

func (r *RedisCacheRepository) fromCache(ctx context.Context, code qr.ShortCode) (*qr.CodeRecord, error) {
	raw, err := r.client.Get(ctx, r.prefix+string(code)).Bytes()
	if err != nil {
		return nil, err
	}

	var rec qr.CodeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *RedisCacheRepository) cache(ctx context.Context, rec *qr.CodeRecord) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}

	_ = r.client.Set(ctx, r.prefix+string(rec.ShortCode), raw, r.ttl).Err()
}

// Compile-time check.
var _ qr.Repository = (*RedisCacheRepository)(nil)
