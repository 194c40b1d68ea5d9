package feeds

import (
	"math"
	"sort"
	"strings"

	"github.com/Zalint/MATA-sub002/internal/core/types"
	"github.com/Zalint/MATA-sub002/internal/domain/catalog"
)

// Normalizer converts raw feed records into uniform entries. Records missing
// a site or product are skipped, never fatal; the skip count is surfaced so
// data-quality issues stay visible without failing the report.
type Normalizer struct {
	prices *catalog.PriceCatalog
}

// NewNormalizer creates a normalizer backed by the given price catalog.
// The catalog back-fills totals for quantity-only records.
func NewNormalizer(prices *catalog.PriceCatalog) *Normalizer {
	return &Normalizer{prices: prices}
}

// NormalizeKeyed normalizes a feed shaped as a map keyed by "<site>-<product>"
// (the stock feeds). Map order is not meaningful, so keys are processed in
// sorted order to keep output stable across calls for the same input.
func (n *Normalizer) NormalizeKeyed(records map[string]RawRecord, kind Kind) ([]Entry, int) {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(records))
	skipped := 0
	for _, key := range keys {
		rec := records[key]
		site, product := rec.Site, rec.Product
		if site == "" || product == "" {
			keySite, keyProduct, ok := splitCompositeKey(key)
			if !ok {
				skipped++
				continue
			}
			if site == "" {
				site = keySite
			}
			if product == "" {
				product = keyProduct
			}
		}
		entry, ok := n.normalizeOne(site, product, rec, kind)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

// NormalizeList normalizes a feed shaped as a flat list of records
// (transfers and sales). Input order is preserved.
func (n *Normalizer) NormalizeList(records []RawRecord, kind Kind) ([]Entry, int) {
	entries := make([]Entry, 0, len(records))
	skipped := 0
	for _, rec := range records {
		entry, ok := n.normalizeOne(rec.Site, rec.Product, rec, kind)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

// normalizeOne derives {quantity, unitPrice, total} for one record.
func (n *Normalizer) normalizeOne(site, product string, rec RawRecord, kind Kind) (Entry, bool) {
	site = strings.TrimSpace(site)
	product = strings.TrimSpace(product)
	if site == "" || product == "" {
		return Entry{}, false
	}

	quantity, hasQuantity := types.ParseNumberOK(rec.Quantity)
	unitPrice, hasUnitPrice := types.ParseNumberOK(rec.UnitPrice)
	total, hasTotal := types.ParseNumberOK(rec.Total)

	if kind == KindTransfer {
		return n.normalizeTransfer(site, product, rec, quantity, hasQuantity, unitPrice, hasUnitPrice, total, hasTotal)
	}

	switch {
	case hasTotal && hasQuantity && quantity != 0 && !hasUnitPrice:
		unitPrice = total / quantity
	case hasUnitPrice && hasQuantity && !hasTotal:
		total = quantity * unitPrice
	case hasQuantity && !hasUnitPrice && !hasTotal:
		// Quantity-only record: back-fill from the price catalog when the
		// product is priced. A catalog price of 0 means "no price known" and
		// the total stays at 0 rather than fabricating one.
		if price := n.prices.Resolve(product, site); price > 0 {
			unitPrice = price
			total = quantity * price
		}
	}
	// A total-only record keeps quantity and unit price at zero: we never
	// fabricate a quantity by dividing by an assumed price.

	return Entry{
		Site:      site,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     total,
		Comment:   rec.Comment,
	}, true
}

// normalizeTransfer applies the transfer sign convention: direction multiplies
// the magnitude and the total carries the sign. Negative quantities are legal
// (magnitude of an outgoing movement) and are never clamped.
func (n *Normalizer) normalizeTransfer(site, product string, rec RawRecord, quantity float64, hasQuantity bool, unitPrice float64, hasUnitPrice bool, total float64, hasTotal bool) (Entry, bool) {
	direction := rec.Direction
	if direction == 0 {
		// No explicit direction: infer from the sign of the data.
		if (hasQuantity && quantity < 0) || (hasTotal && total < 0) {
			direction = -1
		} else {
			direction = 1
		}
	}

	if !hasUnitPrice && hasTotal && hasQuantity && quantity != 0 {
		unitPrice = math.Abs(total / quantity)
	}
	if !hasUnitPrice && !hasTotal {
		unitPrice = n.prices.Resolve(product, site)
	}
	if !hasTotal {
		total = float64(direction) * math.Abs(quantity) * unitPrice
	} else if float64(direction)*total < 0 {
		// Raw total was unsigned (or signed against the direction):
		// the direction governs.
		total = float64(direction) * math.Abs(total)
	}

	return Entry{
		Site:      site,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     total,
		Comment:   rec.Comment,
	}, true
}

// splitCompositeKey splits a "<site>-<product>" composite key on the first
// hyphen.
func splitCompositeKey(key string) (site, product string, ok bool) {
	site, product, ok = strings.Cut(key, "-")
	site = strings.TrimSpace(site)
	product = strings.TrimSpace(product)
	if !ok || site == "" || product == "" {
		return "", "", false
	}
	return site, product, true
}
