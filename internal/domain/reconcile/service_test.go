package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zalint/MATA-sub002/internal/domain/catalog"
	"github.com/Zalint/MATA-sub002/internal/domain/feeds"
)

func testService(knownSites ...string) *Service {
	return NewService(
		catalog.DefaultPriceCatalog(),
		catalog.NewClassifier([]string{"abattage"}),
		knownSites,
	)
}

func testDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse(DateFormat, "15-03-2026")
	require.NoError(t, err)
	return d
}

func TestGenerate_FullReport(t *testing.T) {
	svc := testService()

	report, err := svc.Generate(context.Background(), Inputs{
		Date: testDate(t),
		StockMorning: map[string]feeds.RawRecord{
			"mbao-boeuf": {Total: 1_000_000},
		},
		StockEvening: map[string]feeds.RawRecord{
			"mbao-boeuf": {Total: 200_000},
		},
		Transfers: []feeds.RawRecord{
			{Site: "mbao", Product: "boeuf", Total: 50_000, Direction: 1},
		},
		Sales: []feeds.RawRecord{
			{Site: "mbao", Product: "boeuf", Total: 800_000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "15-03-2026", report.Date)
	assert.Zero(t, report.SkippedRecords)
	require.Len(t, report.Resume, 1)

	row := report.Resume[0]
	assert.Equal(t, "mbao", row.Site)
	assert.Equal(t, 850_000.0, row.TheoreticalSales)
	assert.Equal(t, 50_000.0, row.Variance)
	require.NotNil(t, row.VariancePercent)
	assert.InDelta(t, 5.88, *row.VariancePercent, 0.01)

	// The detail map mirrors the summary at product granularity.
	detail, ok := report.Details["mbao"]["boeuf"]
	require.True(t, ok)
	assert.Equal(t, 850_000.0, detail.TheoreticalSales)
}

func TestGenerate_SlaughterhouseUsesDepletionFormula(t *testing.T) {
	svc := testService()

	report, err := svc.Generate(context.Background(), Inputs{
		Date: testDate(t),
		StockMorning: map[string]feeds.RawRecord{
			"abattage-boeuf": {Total: 3_700_000},
		},
		Transfers: []feeds.RawRecord{
			{Site: "abattage", Product: "boeuf", Total: -4_222_800, Direction: -1},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Resume, 1)
	row := report.Resume[0]
	assert.Equal(t, -522_800.0, row.TheoreticalSales)
	require.NotNil(t, row.VariancePercent)
	assert.InDelta(t, -14.13, *row.VariancePercent, 0.01)
}

func TestGenerate_KnownSitesWithoutActivityAreKeptAllZero(t *testing.T) {
	svc := testService("mbao", "foire")

	report, err := svc.Generate(context.Background(), Inputs{
		Date: testDate(t),
		Sales: []feeds.RawRecord{
			{Site: "mbao", Product: "boeuf", Total: 500},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Resume, 2)
	// Active sites first, then catalog sites with no movement.
	assert.Equal(t, "mbao", report.Resume[0].Site)
	assert.Equal(t, "foire", report.Resume[1].Site)

	idle := report.Resume[1]
	assert.Zero(t, idle.StockMorning)
	assert.Zero(t, idle.TheoreticalSales)
	assert.Zero(t, idle.RecordedSales)
	assert.Nil(t, idle.VariancePercent)
}

func TestGenerate_CountsSkippedRecords(t *testing.T) {
	svc := testService()

	report, err := svc.Generate(context.Background(), Inputs{
		Date: testDate(t),
		Sales: []feeds.RawRecord{
			{Site: "", Product: "boeuf", Total: 100},
			{Site: "mbao", Product: "boeuf", Total: 100},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.SkippedRecords)
	require.Len(t, report.Resume, 1)
}

func TestGenerate_DoesNotMutateInputs(t *testing.T) {
	svc := testService()

	morning := map[string]feeds.RawRecord{
		"mbao-boeuf": {Total: 1000},
	}
	transfers := []feeds.RawRecord{
		{Site: "mbao", Product: "boeuf", Quantity: 5, UnitPrice: 10, Direction: -1},
	}

	_, err := svc.Generate(context.Background(), Inputs{
		Date:         testDate(t),
		StockMorning: morning,
		Transfers:    transfers,
	})
	require.NoError(t, err)

	assert.Equal(t, feeds.RawRecord{Total: 1000}, morning["mbao-boeuf"])
	assert.Equal(t, -1, transfers[0].Direction)
	assert.Equal(t, any(5), transfers[0].Quantity)
}

func TestGenerate_Deterministic(t *testing.T) {
	svc := testService()

	in := Inputs{
		Date: testDate(t),
		StockMorning: map[string]feeds.RawRecord{
			"mbao-boeuf":    {Total: 100},
			"foire-agneau":  {Total: 200},
			"abattage-veau": {Total: 300},
		},
	}

	first, err := svc.Generate(context.Background(), in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := svc.Generate(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, first.Resume, again.Resume)
	}
}
