// Package types provides common numeric parsing utilities.
//
// Raw feed values arrive as JSON numbers, integers or string-encoded amounts
// with locale thousand separators ("1 234 567", "1,234,567.89", "1234,56").
// Parsing goes through decimal.Decimal so separator stripping stays exact,
// and only the final value is converted to float64.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber converts an arbitrary raw feed value to float64.
// A value that cannot be parsed yields 0 — never NaN. Failed parses must not
// poison aggregation; the rest of the report stays available.
func ParseNumber(v any) float64 {
	f, _ := ParseNumberOK(v)
	return f
}

// ParseNumberOK is ParseNumber with an explicit ok flag, so callers can
// distinguish "parsed as zero" from "unparseable".
func ParseNumberOK(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return parseNumericString(n)
	default:
		return 0, false
	}
}

// parseNumericString parses a string-encoded number tolerating locale
// thousand separators and a decimal comma.
func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Spaces (incl. NBSP and narrow NBSP) and apostrophes only ever group thousands.
	replacer := strings.NewReplacer(" ", "", " ", "", " ", "", "'", "")
	s = replacer.Replace(s)

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the rightmost one is the decimal separator.
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Single comma followed by exactly three digits is a thousand
		// separator ("1,234"); anything else is a decimal comma ("1234,56").
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 != 3 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// Round2 rounds a monetary value to 2 decimal places.
func Round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
