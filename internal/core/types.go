// Package core provides the business logic for the product-sales CSV
// pipeline: parsing raw uploads, cleaning and imputing values, and
// deriving per-category summary reports. This package has no HTTP
// dependencies and can be driven by any frontend.
package core

import "time"

// RawRecord is one input row exactly as parsed from the uploaded CSV.
// All fields are raw text; no non-null or uniqueness invariant holds
// here. That is what cleaning enforces.
type RawRecord struct {
	ProductID    string
	ProductName  string
	Category     string
	Price        string
	QuantitySold string
	Rating       string
	ReviewCount  string
}

// CleanRecord is a row that passed all imputation and admission rules.
// Price, QuantitySold and Rating are always resolved integers; a
// CleanRecord is never constructed otherwise. ReviewCount is
// informational and nil when absent or unparseable.
type CleanRecord struct {
	ProductID    string
	ProductName  string
	Category     string
	Price        int64
	QuantitySold int64
	Rating       int64
	ReviewCount  *int64
}

// CleanedDataset is the ordered, immutable output of one cleaning run,
// keyed by a freshly generated process identifier. It is the single
// shared artifact consumed by both the summary and ingestion paths.
type CleanedDataset struct {
	ProcessID string
	Records   []CleanRecord
}

// CategorySummary is one summary row for a distinct category.
//
// TotalRevenue is the sum of the listed price over the category's rows.
// It is deliberately not price multiplied by quantity: the upstream
// system defines revenue as a direct column sum and consumers depend on
// that exact figure.
type CategorySummary struct {
	Category               string
	TotalRevenue           int64
	TopProduct             string
	TopProductQuantitySold int64
}

// SummaryReport is the ordered set of category summaries derived from
// one CleanedDataset. Always regenerable from its dataset; never an
// independent source of truth.
type SummaryReport struct {
	ProcessID string
	Rows      []CategorySummary
}

// ProcessResult describes the outcome of a full upload processing run.
type ProcessResult struct {
	ProcessID   string `json:"process_id"`
	FileName    string `json:"file_name"`
	RowsIn      int    `json:"rows_in"`
	RowsKept    int    `json:"rows_kept"`
	RowsDropped int    `json:"rows_dropped"`
	Categories  int    `json:"categories"`
	CleanedFile string `json:"cleaned_csv_file"`
	SummaryFile string `json:"summary_report_file"`
}

// RunInfo is the history entry recorded for each completed run.
type RunInfo struct {
	ProcessID   string    `json:"process_id"`
	FileName    string    `json:"file_name"`
	ProcessedAt time.Time `json:"processed_at"`
	RowsIn      int       `json:"rows_in"`
	RowsKept    int       `json:"rows_kept"`
	RowsDropped int       `json:"rows_dropped"`
	Categories  int       `json:"categories"`
}
