package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Rollup folds scan events into Redis counters the dashboard reads:
// a total per code, per-field breakdown hashes, and a unique-visitor set.
type Rollup struct {
	client *redis.Client
}

// NewRollup creates a rollup over the given Redis client.
func NewRollup(client *redis.Client) *Rollup {
	return &Rollup{client: client}
}

// HandleScanRecorded is the consumer handler for scan.recorded events.
func (r *Rollup) HandleScanRecorded(ctx context.Context, event *ScanRecordedEvent) error {
	key := "scans:" + event.ShortCode

	pipe := r.client.Pipeline()
	pipe.Incr(ctx, key+":total")
	pipe.HIncrBy(ctx, key+":country", event.Country, 1)
	pipe.HIncrBy(ctx, key+":city", event.City, 1)
	pipe.HIncrBy(ctx, key+":device", event.DeviceType, 1)
	pipe.HIncrBy(ctx, key+":browser", event.Browser, 1)
	pipe.HIncrBy(ctx, key+":referrer", event.Referrer, 1)
	pipe.SAdd(ctx, key+":visitors", event.VisitorID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rollup for %s: %w", event.ShortCode, err)
	}

	return nil
}

// Stats is the aggregated view of one code's scans.
type Stats struct {
	TotalScans     int64
	UniqueVisitors int64
	Countries      map[string]int64
	Cities         map[string]int64
	Devices        map[string]int64
	Browsers       map[string]int64
	Referrers      map[string]int64
}

// Read returns the current rollup counters for a short code.
func (r *Rollup) Read(ctx context.Context, shortCode string) (*Stats, error) {
	key := "scans:" + shortCode

	pipe := r.client.Pipeline()
	total := pipe.Get(ctx, key+":total")
	visitors := pipe.SCard(ctx, key+":visitors")
	countries := pipe.HGetAll(ctx, key+":country")
	cities := pipe.HGetAll(ctx, key+":city")
	devices := pipe.HGetAll(ctx, key+":device")
	browsers := pipe.HGetAll(ctx, key+":browser")
	referrers := pipe.HGetAll(ctx, key+":referrer")

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read rollup for %s: %w", shortCode, err)
	}

	stats := &Stats{
		UniqueVisitors: visitors.Val(),
		Countries:      toCounts(countries.Val()),
		Cities:         toCounts(cities.Val()),
		Devices:        toCounts(devices.Val()),
		Browsers:       toCounts(browsers.Val()),
		Referrers:      toCounts(referrers.Val()),
	}

	stats.TotalScans, _ = total.Int64()

	return stats, nil
}

func toCounts(raw map[string]string) map[string]int64 {
	counts := make(map[string]int64, len(raw))

	for k, v := range raw {
		var n int64

		_, _ = fmt.Sscan(v, &n)
		counts[k] = n
	}

	return counts
}
