package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuditReport is the run-statistics record written to audit.json. It is
// derived state owned by a single run and never mutated afterwards.
type AuditReport struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	TotalCredits     float64   `json:"total_credits"`
	TotalDebits      float64   `json:"total_debits"`
	DuplicateCount   int       `json:"duplicate_count"`
	IgnoredCount     int       `json:"ignored_count"`
	FilesProcessed   int       `json:"files_processed"`
	TransactionCount int       `json:"transaction_count"`
	ViaMapping       int       `json:"categorized_via_mapping"`
	ViaRegex         int       `json:"categorized_via_regex"`
	ViaStatistical   int       `json:"categorized_via_statistical"`
	Uncategorized    int       `json:"uncategorized"`
}

// NewAuditReport builds the audit record for a finished run. Totals are
// rounded to two decimals for the JSON consumer.
func NewAuditReport(credits, debits decimal.Decimal, duplicates, ignored, files, txns int, tiers TierCounts) AuditReport {
	return AuditReport{
		RunID:            uuid.New().String(),
		GeneratedAt:      time.Now().UTC(),
		TotalCredits:     credits.Round(2).InexactFloat64(),
		TotalDebits:      debits.Round(2).InexactFloat64(),
		DuplicateCount:   duplicates,
		IgnoredCount:     ignored,
		FilesProcessed:   files,
		TransactionCount: txns,
		ViaMapping:       tiers.Mapping,
		ViaRegex:         tiers.Regex,
		ViaStatistical:   tiers.Statistical,
		Uncategorized:    tiers.Uncategorized,
	}
}
