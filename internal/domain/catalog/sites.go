// Package catalog provides the reference data the reconciliation engine is
// configured with: unit prices per product and the site classification that
// selects the variance formula.
package catalog

import "strings"

// SiteCategory selects which variance-percentage formula applies to a site.
type SiteCategory string

const (
	// CategoryOrdinary uses variance relative to theoretical sales.
	CategoryOrdinary SiteCategory = "ordinary"

	// CategorySlaughterhouse uses the inverted formula: fraction of morning
	// stock depleted. It is a different metric, not an edge case of the
	// ordinary one.
	CategorySlaughterhouse SiteCategory = "slaughterhouse"
)

// Classifier is a closed, site-name-keyed classification. New sites must be
// explicitly listed; anything unrecognized classifies as ordinary.
type Classifier struct {
	slaughterhouses map[string]struct{}
}

// NewClassifier builds a classifier from the set of site names that use the
// slaughterhouse formula. The set is copied; the caller's slice is not retained.
func NewClassifier(slaughterhouseSites []string) *Classifier {
	set := make(map[string]struct{}, len(slaughterhouseSites))
	for _, s := range slaughterhouseSites {
		set[normalizeKey(s)] = struct{}{}
	}
	return &Classifier{slaughterhouses: set}
}

// DefaultClassifier returns the production classification: a single
// slaughterhouse site named "abattage".
func DefaultClassifier() *Classifier {
	return NewClassifier([]string{"abattage"})
}

// Classify returns the category for a site. Unknown sites are ordinary —
// the catalog is advisory, not an allow-list.
func (c *Classifier) Classify(site string) SiteCategory {
	if _, ok := c.slaughterhouses[normalizeKey(site)]; ok {
		return CategorySlaughterhouse
	}
	return CategoryOrdinary
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
