package reconcile

import (
	"github.com/Zalint/MATA-sub002/internal/domain/feeds"
)

// FeedTotals bundles the aggregated view of the four input feeds for one date.
type FeedTotals struct {
	StockMorning *feeds.Aggregation
	StockEvening *feeds.Aggregation
	Transfers    *feeds.Aggregation
	Sales        *feeds.Aggregation
}

// Assembler shapes calculator output into the summary and detail views.
type Assembler struct {
	calc *Calculator
}

// NewAssembler creates an assembler on top of a calculator.
func NewAssembler(calc *Calculator) *Assembler {
	return &Assembler{calc: calc}
}

// Assemble computes one summary row per site and the per-product detail map.
// Sites appear in feed insertion order (morning, evening, transfers, sales),
// followed by known sites with no activity, which are kept with all-zero
// fields to represent "no movement today" rather than being dropped.
func (a *Assembler) Assemble(totals FeedTotals, knownSites []string) ([]SummaryRow, map[string]map[string]Record, error) {
	sites := a.siteOrder(totals, knownSites)

	resume := make([]SummaryRow, 0, len(sites))
	details := make(map[string]map[string]Record, len(sites))

	for _, site := range sites {
		rec, err := a.calc.Calculate(
			site,
			totals.StockMorning.SiteTotal(site),
			totals.StockEvening.SiteTotal(site),
			totals.Transfers.SiteTotal(site),
			totals.Sales.SiteTotal(site),
		)
		if err != nil {
			return nil, nil, err
		}
		resume = append(resume, SummaryRow{Site: site, Record: rec})

		products := a.productOrder(totals, site)
		siteDetails := make(map[string]Record, len(products))
		for _, product := range products {
			prodRec, err := a.calc.Calculate(
				site,
				totals.StockMorning.ProductTotal(site, product),
				totals.StockEvening.ProductTotal(site, product),
				totals.Transfers.ProductTotal(site, product),
				totals.Sales.ProductTotal(site, product),
			)
			if err != nil {
				return nil, nil, err
			}
			siteDetails[product] = prodRec
		}
		details[site] = siteDetails
	}

	return resume, details, nil
}

// siteOrder returns the union of sites across the four feeds plus the known
// site catalog, preserving first appearance.
func (a *Assembler) siteOrder(totals FeedTotals, knownSites []string) []string {
	seen := make(map[string]struct{})
	var order []string
	add := func(site string) {
		if site == "" {
			return
		}
		if _, ok := seen[site]; ok {
			return
		}
		seen[site] = struct{}{}
		order = append(order, site)
	}

	for _, agg := range totals.each() {
		for _, site := range agg.Sites() {
			add(site)
		}
	}
	for _, site := range knownSites {
		add(site)
	}
	return order
}

// productOrder returns the union of products for a site across the four
// feeds, preserving first appearance.
func (a *Assembler) productOrder(totals FeedTotals, site string) []string {
	seen := make(map[string]struct{})
	var order []string
	for _, agg := range totals.each() {
		for _, product := range agg.Products(site) {
			if _, ok := seen[product]; ok {
				continue
			}
			seen[product] = struct{}{}
			order = append(order, product)
		}
	}
	return order
}

func (t FeedTotals) each() []*feeds.Aggregation {
	return []*feeds.Aggregation{t.StockMorning, t.StockEvening, t.Transfers, t.Sales}
}
