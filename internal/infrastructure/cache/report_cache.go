// Package cache provides in-memory caching for assembled reconciliation
// reports. The engine is a pure function of its inputs, so a report is fully
// determined by its date key; staleness policy (TTL, force recompute) lives
// here, outside the engine.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/Zalint/MATA-sub002/internal/domain/reconcile"
	"github.com/Zalint/MATA-sub002/pkg/logger"
)

// DefaultTTL is how long a cached report stays valid.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	payload    []byte
	compressed bool
	expiresAt  time.Time
}

// ReportCache memoizes assembled reports per date key with a time-based
// expiry and explicit invalidation. Reports are stored as JSON snapshots,
// zstd-compressed above a size threshold, so cached months of detail rows
// stay cheap to hold.
type ReportCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry

	ttl               time.Duration
	compressThreshold int // bytes

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	now func() time.Time
}

// NewReportCache creates a report cache with the given TTL
// (DefaultTTL when zero).
func NewReportCache(ttl time.Duration) (*ReportCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ReportCache{
		entries:           make(map[string]cacheEntry),
		ttl:               ttl,
		compressThreshold: 10 * 1024, // 10KB
		encoder:           encoder,
		decoder:           decoder,
		now:               time.Now,
	}, nil
}

// Get returns the cached report for a date key, if present and not expired.
func (c *ReportCache) Get(ctx context.Context, date string) (*reconcile.Report, bool) {
	c.mu.RLock()
	entry, ok := c.entries[date]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.Invalidate(date)
		return nil, false
	}

	payload := entry.payload
	if entry.compressed {
		decompressed, err := c.decoder.DecodeAll(payload, nil)
		if err != nil {
			logger.Error(ctx, "failed to decompress cached report", "date", date, "error", err)
			c.Invalidate(date)
			return nil, false
		}
		payload = decompressed
	}

	var report reconcile.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		logger.Error(ctx, "failed to decode cached report", "date", date, "error", err)
		c.Invalidate(date)
		return nil, false
	}
	return &report, true
}

// Set stores a report snapshot under its date key.
func (c *ReportCache) Set(ctx context.Context, date string, report *reconcile.Report) {
	payload, err := json.Marshal(report)
	if err != nil {
		logger.Error(ctx, "failed to encode report for cache", "date", date, "error", err)
		return
	}

	entry := cacheEntry{
		payload:   payload,
		expiresAt: c.now().Add(c.ttl),
	}
	if len(payload) > c.compressThreshold {
		entry.payload = c.encoder.EncodeAll(payload, nil)
		entry.compressed = true
	}

	c.mu.Lock()
	c.entries[date] = entry
	c.mu.Unlock()

	logger.Debug(ctx, "cached report", "date", date, "bytes", len(entry.payload), "compressed", entry.compressed)
}

// Invalidate removes the cached report for a date key.
func (c *ReportCache) Invalidate(date string) {
	c.mu.Lock()
	delete(c.entries, date)
	c.mu.Unlock()
}

// InvalidateAll clears the whole cache.
func (c *ReportCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Stats returns current cache statistics.
type Stats struct {
	Entries int
	Bytes   int
}

// GetStats returns current cache statistics.
func (c *ReportCache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var bytes int
	for _, e := range c.entries {
		bytes += len(e.payload)
	}
	return Stats{Entries: len(c.entries), Bytes: bytes}
}
