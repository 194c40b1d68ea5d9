package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zalint/MATA-sub002/internal/domain/reconcile"
)

func smallReport(date string) *reconcile.Report {
	pct := 5.88
	return &reconcile.Report{
		Date: date,
		Resume: []reconcile.SummaryRow{
			{Site: "mbao", Record: reconcile.Record{TheoreticalSales: 850_000, Variance: 50_000, VariancePercent: &pct}},
		},
	}
}

// largeReport builds a report whose JSON exceeds the compression threshold.
func largeReport(date string) *reconcile.Report {
	r := &reconcile.Report{Date: date, Details: make(map[string]map[string]reconcile.Record)}
	for i := 0; i < 200; i++ {
		site := fmt.Sprintf("site-%03d-%s", i, strings.Repeat("x", 40))
		r.Details[site] = map[string]reconcile.Record{
			"boeuf": {StockMorning: float64(i), Comment: strings.Repeat("y", 60)},
		}
	}
	return r
}

func TestReportCache_SetGet(t *testing.T) {
	c, err := NewReportCache(time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "15-03-2026", smallReport("15-03-2026"))

	got, ok := c.Get(ctx, "15-03-2026")
	require.True(t, ok)
	assert.Equal(t, "15-03-2026", got.Date)
	require.Len(t, got.Resume, 1)
	require.NotNil(t, got.Resume[0].VariancePercent)
	assert.InDelta(t, 5.88, *got.Resume[0].VariancePercent, 0.001)

	_, ok = c.Get(ctx, "16-03-2026")
	assert.False(t, ok)
}

func TestReportCache_TTLExpiry(t *testing.T) {
	c, err := NewReportCache(time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set(ctx, "15-03-2026", smallReport("15-03-2026"))

	_, ok := c.Get(ctx, "15-03-2026")
	assert.True(t, ok)

	current = current.Add(61 * time.Second)
	_, ok = c.Get(ctx, "15-03-2026")
	assert.False(t, ok, "expired entry must not be served")

	// Expired entries are dropped on access.
	assert.Zero(t, c.GetStats().Entries)
}

func TestReportCache_Invalidate(t *testing.T) {
	c, err := NewReportCache(time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "15-03-2026", smallReport("15-03-2026"))
	c.Set(ctx, "16-03-2026", smallReport("16-03-2026"))

	c.Invalidate("15-03-2026")
	_, ok := c.Get(ctx, "15-03-2026")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "16-03-2026")
	assert.True(t, ok)

	c.InvalidateAll()
	_, ok = c.Get(ctx, "16-03-2026")
	assert.False(t, ok)
	assert.Zero(t, c.GetStats().Entries)
}

func TestReportCache_CompressesLargePayloads(t *testing.T) {
	c, err := NewReportCache(time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "15-03-2026", largeReport("15-03-2026"))

	c.mu.RLock()
	entry := c.entries["15-03-2026"]
	c.mu.RUnlock()
	assert.True(t, entry.compressed, "payload above threshold should be compressed")

	got, ok := c.Get(ctx, "15-03-2026")
	require.True(t, ok)
	assert.Len(t, got.Details, 200)
}

func TestReportCache_ZeroTTLUsesDefault(t *testing.T) {
	c, err := NewReportCache(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, c.ttl)
}
