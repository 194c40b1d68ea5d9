package catalog

// PriceCatalog resolves a unit price for a product, with optional per-site
// overrides taking precedence over product defaults. It is immutable after
// construction, so concurrent reconciliation requests can share one instance.
type PriceCatalog struct {
	defaults  map[string]float64            // product -> default unit price
	overrides map[string]map[string]float64 // site -> product -> unit price
}

// NewPriceCatalog builds a catalog from default and override tables.
// Both maps are copied; callers keep no handle on internal state.
func NewPriceCatalog(defaults map[string]float64, overrides map[string]map[string]float64) *PriceCatalog {
	c := &PriceCatalog{
		defaults:  make(map[string]float64, len(defaults)),
		overrides: make(map[string]map[string]float64, len(overrides)),
	}
	for product, price := range defaults {
		c.defaults[normalizeKey(product)] = price
	}
	for site, products := range overrides {
		m := make(map[string]float64, len(products))
		for product, price := range products {
			m[normalizeKey(product)] = price
		}
		c.overrides[normalizeKey(site)] = m
	}
	return c
}

// DefaultPriceCatalog returns the stock product price table used when no
// site-specific configuration is supplied. Prices are per kg.
func DefaultPriceCatalog() *PriceCatalog {
	return NewPriceCatalog(map[string]float64{
		"boeuf":    3600,
		"veau":     3800,
		"agneau":   4500,
		"poulet":   3400,
		"volaille": 3400,
	}, nil)
}

// Resolve returns the unit price for a product at a site. A site-specific
// override wins over the product default. Unknown products resolve to 0;
// callers must treat 0 as "no price known" and fall back to a supplied total.
func (c *PriceCatalog) Resolve(product, site string) float64 {
	p := normalizeKey(product)
	if site != "" {
		if m, ok := c.overrides[normalizeKey(site)]; ok {
			if price, ok := m[p]; ok {
				return price
			}
		}
	}
	return c.defaults[p]
}

// Known reports whether the product exists in the catalog at all, so callers
// can distinguish "priced at 0" from "not a recognized product".
func (c *PriceCatalog) Known(product string) bool {
	p := normalizeKey(product)
	if _, ok := c.defaults[p]; ok {
		return true
	}
	for _, m := range c.overrides {
		if _, ok := m[p]; ok {
			return true
		}
	}
	return false
}
