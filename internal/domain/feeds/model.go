// Package feeds normalizes and aggregates the four raw input feeds of the
// reconciliation engine: morning stock, evening stock, inter-site transfers
// and recorded sales.
package feeds

// Kind identifies which feed a record set belongs to.
type Kind string

const (
	KindStockMorning Kind = "stockMorning"
	KindStockEvening Kind = "stockEvening"
	KindTransfer     Kind = "transfer"
	KindSale         Kind = "sale"
)

// RawRecord is a single feed line before normalization. Numeric fields are
// untyped because sources mix JSON numbers with locale-formatted strings
// ("1 234 567", "1,234.56").
type RawRecord struct {
	Site      string `json:"site" db:"site"`
	Product   string `json:"product" db:"product"`
	Quantity  any    `json:"quantity" db:"quantity"`
	UnitPrice any    `json:"unitPrice" db:"unit_price"`
	Total     any    `json:"total" db:"total"`

	// Direction applies to transfers only: +1 incoming, -1 outgoing.
	// Zero means "not supplied"; the sign is then inferred from the data.
	Direction int `json:"direction,omitempty" db:"direction"`

	Comment string `json:"comment,omitempty" db:"comment"`
}

// Entry is a normalized record: one (site, product) line with derived
// quantity, unit price and monetary total. For transfers Total is signed;
// outgoing movements carry a negative total.
type Entry struct {
	Site      string  `json:"site"`
	Product   string  `json:"product"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
	Comment   string  `json:"comment,omitempty"`
}
