package dto

import (
	"github.com/Zalint/MATA-sub002/internal/domain/reconcile"
)

// ReconciliationRequest represents the report query.
type ReconciliationRequest struct {
	// Date of the report, DD-MM-YYYY.
	Date string `form:"date" binding:"required"`

	// Force bypasses the report cache.
	Force bool `form:"force"`
}

// InvalidateCacheRequest represents the cache invalidation query.
type InvalidateCacheRequest struct {
	// Date limits invalidation to one report; empty clears everything.
	Date string `form:"date"`
}

// ReconciliationRecordResponse is one reconciliation line.
type ReconciliationRecordResponse struct {
	StockMorning     float64  `json:"stockMorning"`
	StockEvening     float64  `json:"stockEvening"`
	Transfers        float64  `json:"transfers"`
	TheoreticalSales float64  `json:"theoreticalSales"`
	RecordedSales    float64  `json:"recordedSales"`
	Variance         float64  `json:"variance"`
	VariancePercent  *float64 `json:"variancePercent"`
	Comment          string   `json:"comment,omitempty"`
}

// SummaryRowResponse is a per-site line in the resume.
type SummaryRowResponse struct {
	Site string `json:"site"`
	ReconciliationRecordResponse
}

// ReconciliationReportResponse is the full report payload.
type ReconciliationReportResponse struct {
	Date           string                                             `json:"date"`
	Resume         []SummaryRowResponse                               `json:"resume"`
	Details        map[string]map[string]ReconciliationRecordResponse `json:"details"`
	SkippedRecords int                                                `json:"skippedRecords"`
	Cached         bool                                               `json:"cached"`
}

// FromReport converts the engine report to a response DTO.
func FromReport(r *reconcile.Report, cached bool) *ReconciliationReportResponse {
	resp := &ReconciliationReportResponse{
		Date:           r.Date,
		Resume:         make([]SummaryRowResponse, len(r.Resume)),
		Details:        make(map[string]map[string]ReconciliationRecordResponse, len(r.Details)),
		SkippedRecords: r.SkippedRecords,
		Cached:         cached,
	}

	for i, row := range r.Resume {
		resp.Resume[i] = SummaryRowResponse{
			Site:                         row.Site,
			ReconciliationRecordResponse: fromRecord(row.Record),
		}
	}

	for site, products := range r.Details {
		siteDetails := make(map[string]ReconciliationRecordResponse, len(products))
		for product, rec := range products {
			siteDetails[product] = fromRecord(rec)
		}
		resp.Details[site] = siteDetails
	}

	return resp
}

func fromRecord(r reconcile.Record) ReconciliationRecordResponse {
	return ReconciliationRecordResponse{
		StockMorning:     r.StockMorning,
		StockEvening:     r.StockEvening,
		Transfers:        r.Transfers,
		TheoreticalSales: r.TheoreticalSales,
		RecordedSales:    r.RecordedSales,
		Variance:         r.Variance,
		VariancePercent:  r.VariancePercent,
		Comment:          r.Comment,
	}
}
