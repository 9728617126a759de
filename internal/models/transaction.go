// Package models provides the data structures used throughout the engine.
package models

import (
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction represents one row read from a bank export file. Date keeps
// the source's textual format and is never reparsed; Amount is the signed
// value credit minus debit (positive = money in, negative = money out).
// Category and Provenance are attached by the classifier after merging.
type Transaction struct {
	Date        string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Amount      decimal.Decimal
	Account     string
	Source      string
	Category    string
	Provenance  Provenance
}

// DedupKey identifies two rows as the same logical transaction for
// deduplication. The amount component uses the fixed two-decimal string so
// equal values always produce equal keys.
type DedupKey struct {
	Date        string
	Description string
	Amount      string
}

// Key returns the transaction's dedup key.
func (t *Transaction) Key() DedupKey {
	return DedupKey{
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
	}
}

// SourceLabel derives the source identifier for a transaction from the
// export file it came from (the file name without extension).
func SourceLabel(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseAmount parses a raw monetary string into a decimal. It tolerates
// locale punctuation: thousands separators, apostrophes, currency symbols
// and stray spaces. Empty or unparsable input yields zero; a garbled amount
// is a row defect, never a run failure.
func ParseAmount(raw string) decimal.Decimal {
	amount := strings.TrimSpace(raw)
	if amount == "" {
		return decimal.Zero
	}
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, "'", "")
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, "CAD", "")
	amount = strings.ReplaceAll(amount, "USD", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
