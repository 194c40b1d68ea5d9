package feeds

// Aggregation holds per-site and per-product sums for one feed.
// Site and product order follow first appearance in the normalized entries,
// so output is stable for identical input.
type Aggregation struct {
	// PerSite maps site -> product -> summed entry.
	PerSite map[string]map[string]*Entry

	// SiteTotals is the signed sum of entry totals per site.
	// Transfer outflows reduce the site total.
	SiteTotals map[string]float64

	// GrandTotal is the signed sum across all sites.
	GrandTotal float64

	siteOrder    []string
	productOrder map[string][]string
}

// Aggregate sums normalized entries per (site, product) and per site.
// Duplicate (site, product) keys — e.g. several transfer lines the same
// day — are merged by summing quantity and total.
func Aggregate(entries []Entry) *Aggregation {
	agg := &Aggregation{
		PerSite:      make(map[string]map[string]*Entry),
		SiteTotals:   make(map[string]float64),
		productOrder: make(map[string][]string),
	}

	for _, e := range entries {
		products, ok := agg.PerSite[e.Site]
		if !ok {
			products = make(map[string]*Entry)
			agg.PerSite[e.Site] = products
			agg.siteOrder = append(agg.siteOrder, e.Site)
		}

		existing, ok := products[e.Product]
		if !ok {
			entry := e
			products[e.Product] = &entry
			agg.productOrder[e.Site] = append(agg.productOrder[e.Site], e.Product)
		} else {
			existing.Quantity += e.Quantity
			existing.Total += e.Total
			// Unit price of a merged line is the weighted average; when the
			// summed quantity is zero there is no meaningful price.
			if existing.Quantity != 0 {
				existing.UnitPrice = existing.Total / existing.Quantity
			} else {
				existing.UnitPrice = 0
			}
			if existing.Comment == "" {
				existing.Comment = e.Comment
			}
		}

		agg.SiteTotals[e.Site] += e.Total
		agg.GrandTotal += e.Total
	}

	return agg
}

// Sites returns site names in first-appearance order.
func (a *Aggregation) Sites() []string {
	return a.siteOrder
}

// Products returns product names for a site in first-appearance order.
func (a *Aggregation) Products(site string) []string {
	return a.productOrder[site]
}

// SiteTotal returns the signed total for a site (0 when absent).
func (a *Aggregation) SiteTotal(site string) float64 {
	return a.SiteTotals[site]
}

// ProductTotal returns the signed total for a (site, product) pair
// (0 when absent).
func (a *Aggregation) ProductTotal(site, product string) float64 {
	if products, ok := a.PerSite[site]; ok {
		if e, ok := products[product]; ok {
			return e.Total
		}
	}
	return 0
}
