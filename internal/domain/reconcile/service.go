package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Zalint/MATA-sub002/internal/domain/catalog"
	"github.com/Zalint/MATA-sub002/internal/domain/feeds"
	"github.com/Zalint/MATA-sub002/pkg/logger"
)

var tracer = otel.Tracer("mata/reconcile")

// Inputs are the four raw feeds for a single date, materialized in memory by
// the calling collaborator. The engine never fetches, stores or renders data
// itself.
type Inputs struct {
	Date         time.Time
	StockMorning map[string]feeds.RawRecord
	StockEvening map[string]feeds.RawRecord
	Transfers    []feeds.RawRecord
	Sales        []feeds.RawRecord
}

// Service is the reconciliation engine: a pure, synchronous computation over
// in-memory data for one date. Invocations are independent and side-effect
// free; caller-supplied structures are never retained or mutated.
type Service struct {
	normalizer *feeds.Normalizer
	assembler  *Assembler
	knownSites []string
}

// NewService wires the engine from its injected configuration: the price
// catalog, the site classification and the advisory site list.
func NewService(prices *catalog.PriceCatalog, classifier *catalog.Classifier, knownSites []string) *Service {
	return &Service{
		normalizer: feeds.NewNormalizer(prices),
		assembler:  NewAssembler(NewCalculator(classifier)),
		knownSites: append([]string(nil), knownSites...),
	}
}

// Generate computes the full reconciliation report for the given inputs.
func (s *Service) Generate(ctx context.Context, in Inputs) (*Report, error) {
	ctx, span := tracer.Start(ctx, "reconcile.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.date", in.Date.Format(DateFormat)),
		attribute.Int("feed.transfers", len(in.Transfers)),
		attribute.Int("feed.sales", len(in.Sales)),
	)

	morning, skippedMorning := s.normalizer.NormalizeKeyed(in.StockMorning, feeds.KindStockMorning)
	evening, skippedEvening := s.normalizer.NormalizeKeyed(in.StockEvening, feeds.KindStockEvening)
	transfers, skippedTransfers := s.normalizer.NormalizeList(in.Transfers, feeds.KindTransfer)
	sales, skippedSales := s.normalizer.NormalizeList(in.Sales, feeds.KindSale)

	skipped := skippedMorning + skippedEvening + skippedTransfers + skippedSales
	if skipped > 0 {
		logger.Warn(ctx, "skipped malformed feed records",
			"date", in.Date.Format(DateFormat),
			"stock_morning", skippedMorning,
			"stock_evening", skippedEvening,
			"transfers", skippedTransfers,
			"sales", skippedSales,
		)
	}

	totals := FeedTotals{
		StockMorning: feeds.Aggregate(morning),
		StockEvening: feeds.Aggregate(evening),
		Transfers:    feeds.Aggregate(transfers),
		Sales:        feeds.Aggregate(sales),
	}

	resume, details, err := s.assembler.Assemble(totals, s.knownSites)
	if err != nil {
		return nil, fmt.Errorf("assemble report: %w", err)
	}

	span.SetAttributes(attribute.Int("report.sites", len(resume)))

	return &Report{
		Date:           in.Date.Format(DateFormat),
		Resume:         resume,
		Details:        details,
		SkippedRecords: skipped,
	}, nil
}
