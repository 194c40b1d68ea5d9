package reconcile

import (
	"github.com/Zalint/MATA-sub002/internal/core/apperror"
	"github.com/Zalint/MATA-sub002/internal/core/types"
	"github.com/Zalint/MATA-sub002/internal/domain/catalog"
)

// varianceStrategy computes the percentage variance for one site category.
// Each category is a variant; adding a future category means adding a
// strategy, not patching conditionals.
type varianceStrategy interface {
	// percent returns the percentage (nil when undefined) and an explanatory
	// comment for the nil case.
	percent(stockMorning, theoreticalSales, variance float64) (*float64, string)
}

// ordinaryVariance measures the reconciliation gap relative to theoretical
// sales.
type ordinaryVariance struct{}

func (ordinaryVariance) percent(_, theoreticalSales, variance float64) (*float64, string) {
	if theoreticalSales == 0 {
		// A day with zero theoretical sales has no meaningful variance
		// ratio; reporting 0% would be misleading.
		return nil, "theoretical sales are zero, variance percentage not computable"
	}
	p := types.Round2(variance / theoreticalSales * 100)
	return &p, ""
}

// depletionVariance is the slaughterhouse metric: the fraction of morning
// stock depleted during the day. It is a yield measure, not a variance
// relative to theoretical sales.
type depletionVariance struct{}

func (depletionVariance) percent(stockMorning, theoreticalSales, _ float64) (*float64, string) {
	if stockMorning == 0 {
		return nil, "stock morning is zero, calculation not possible"
	}
	p := types.Round2(theoreticalSales / stockMorning * 100)
	return &p, ""
}

// Calculator applies the core reconciliation formula per site, selecting the
// percentage formula by site category.
type Calculator struct {
	classifier *catalog.Classifier
	strategies map[catalog.SiteCategory]varianceStrategy
}

// NewCalculator creates a calculator using the given site classification.
func NewCalculator(classifier *catalog.Classifier) *Calculator {
	return &Calculator{
		classifier: classifier,
		strategies: map[catalog.SiteCategory]varianceStrategy{
			catalog.CategoryOrdinary:       ordinaryVariance{},
			catalog.CategorySlaughterhouse: depletionVariance{},
		},
	}
}

// Calculate produces a reconciliation record for one site (or one site and
// product slice). Numeric edge cases never fail: a zero denominator yields a
// well-formed record with a nil percentage and an explanatory comment. The
// only error condition is an empty site name, since every record must be
// attributable.
func (c *Calculator) Calculate(site string, stockMorning, stockEvening, transfers, recordedSales float64) (Record, error) {
	if site == "" {
		return Record{}, apperror.NewValidation("site is required")
	}

	theoreticalSales := stockMorning - stockEvening + transfers
	variance := theoreticalSales - recordedSales

	strategy := c.strategies[c.classifier.Classify(site)]
	percent, comment := strategy.percent(stockMorning, theoreticalSales, variance)

	return Record{
		StockMorning:     stockMorning,
		StockEvening:     stockEvening,
		Transfers:        transfers,
		TheoreticalSales: theoreticalSales,
		RecordedSales:    recordedSales,
		Variance:         variance,
		VariancePercent:  percent,
		Comment:          comment,
	}, nil
}
