package feeds

import (
	"math"
	"testing"
)

func TestAggregate_MergesDuplicates(t *testing.T) {
	agg := Aggregate([]Entry{
		{Site: "mbao", Product: "boeuf", Quantity: 10, UnitPrice: 100, Total: 1000},
		{Site: "mbao", Product: "boeuf", Quantity: 5, UnitPrice: 200, Total: 1000},
	})

	e := agg.PerSite["mbao"]["boeuf"]
	if e.Quantity != 15 {
		t.Errorf("merged quantity = %v, want 15", e.Quantity)
	}
	if e.Total != 2000 {
		t.Errorf("merged total = %v, want 2000", e.Total)
	}
	// Weighted average, not the price of either line.
	if math.Abs(e.UnitPrice-2000.0/15.0) > 1e-9 {
		t.Errorf("merged unit price = %v, want %v", e.UnitPrice, 2000.0/15.0)
	}
}

func TestAggregate_ZeroQuantityMergeHasNoPrice(t *testing.T) {
	agg := Aggregate([]Entry{
		{Site: "mbao", Product: "boeuf", Quantity: 10, Total: 1000},
		{Site: "mbao", Product: "boeuf", Quantity: -10, Total: -1000},
	})

	e := agg.PerSite["mbao"]["boeuf"]
	if e.UnitPrice != 0 {
		t.Errorf("zero net quantity must have no unit price, got %v", e.UnitPrice)
	}
}

func TestAggregate_SignedTotals(t *testing.T) {
	agg := Aggregate([]Entry{
		{Site: "mbao", Product: "boeuf", Total: 5000},
		{Site: "mbao", Product: "veau", Total: -2000},
		{Site: "foire", Product: "boeuf", Total: 1000},
	})

	if got := agg.SiteTotal("mbao"); got != 3000 {
		t.Errorf("mbao total = %v, want 3000", got)
	}
	if got := agg.SiteTotal("foire"); got != 1000 {
		t.Errorf("foire total = %v, want 1000", got)
	}
	if got := agg.SiteTotal("absent"); got != 0 {
		t.Errorf("absent site total = %v, want 0", got)
	}
}

func TestAggregate_GrandTotalEqualsSumOfSiteTotals(t *testing.T) {
	agg := Aggregate([]Entry{
		{Site: "mbao", Product: "boeuf", Total: 123.45},
		{Site: "foire", Product: "agneau", Total: -67.89},
		{Site: "abattage", Product: "boeuf", Total: 999999.99},
		{Site: "mbao", Product: "veau", Total: 0.01},
	})

	var sum float64
	for _, site := range agg.Sites() {
		sum += agg.SiteTotal(site)
	}
	if math.Abs(sum-agg.GrandTotal) > 1e-6 {
		t.Errorf("sum of site totals %v != grand total %v", sum, agg.GrandTotal)
	}
}

func TestAggregate_PreservesInsertionOrder(t *testing.T) {
	agg := Aggregate([]Entry{
		{Site: "zeta", Product: "veau", Total: 1},
		{Site: "alpha", Product: "boeuf", Total: 1},
		{Site: "zeta", Product: "agneau", Total: 1},
	})

	sites := agg.Sites()
	if len(sites) != 2 || sites[0] != "zeta" || sites[1] != "alpha" {
		t.Errorf("site order = %v, want [zeta alpha]", sites)
	}
	products := agg.Products("zeta")
	if len(products) != 2 || products[0] != "veau" || products[1] != "agneau" {
		t.Errorf("product order = %v, want [veau agneau]", products)
	}
}

func TestAggregate_ProductTotal(t *testing.T) {
	agg := Aggregate([]Entry{
		{Site: "mbao", Product: "boeuf", Total: 700},
	})

	if got := agg.ProductTotal("mbao", "boeuf"); got != 700 {
		t.Errorf("product total = %v, want 700", got)
	}
	if got := agg.ProductTotal("mbao", "veau"); got != 0 {
		t.Errorf("absent product total = %v, want 0", got)
	}
	if got := agg.ProductTotal("nowhere", "boeuf"); got != 0 {
		t.Errorf("absent site product total = %v, want 0", got)
	}
}
