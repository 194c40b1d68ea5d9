// Package reconcile implements the reconciliation engine: it derives
// theoretical sales from stock snapshots and transfers, compares them with
// recorded sales and surfaces the discrepancy per site and per product.
package reconcile

// DateFormat is the wire format for report dates.
const DateFormat = "02-01-2006"

// Record is one reconciliation line, per site or per (site, product).
// Records are derived fresh from the day's feeds on every request and are
// never persisted.
type Record struct {
	StockMorning     float64 `json:"stockMorning"`
	StockEvening     float64 `json:"stockEvening"`
	Transfers        float64 `json:"transfers"`
	TheoreticalSales float64 `json:"theoreticalSales"`
	RecordedSales    float64 `json:"recordedSales"`
	Variance         float64 `json:"variance"`

	// VariancePercent is nil when the formula's denominator is zero;
	// Comment then explains why so consumers can render "N/A".
	VariancePercent *float64 `json:"variancePercent"`
	Comment         string   `json:"comment,omitempty"`
}

// SummaryRow is a per-site record plus the site name.
type SummaryRow struct {
	Site string `json:"site"`
	Record
}

// Report is the engine output for one date: aggregated summary rows plus the
// full per-product breakdown for drill-down.
type Report struct {
	Date string `json:"date"`

	// Resume holds one row per site, in stable site insertion order.
	Resume []SummaryRow `json:"resume"`

	// Details maps site -> product -> record.
	Details map[string]map[string]Record `json:"details"`

	// SkippedRecords counts malformed feed lines dropped during
	// normalization, so data-quality issues are visible without failing
	// the report.
	SkippedRecords int `json:"skippedRecords"`
}
