// Package reader reads headerless bank export CSV files into transactions
// using positional column indices from the active bank profile.
package reader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"npatel/merge-csv/internal/logging"
	"npatel/merge-csv/internal/models"
)

// ColumnMapping holds the positional column indices for one bank's export
// format.
type ColumnMapping struct {
	Date        int
	Description int
	Debit       int
	Credit      int
	Account     int
}

// DefaultColumnMapping returns the column layout of the default bank export:
// Date, Description, Debit, Credit, Account.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{Date: 0, Description: 1, Debit: 2, Credit: 3, Account: 4}
}

// ReadExportFile reads one headerless bank export file. Rows too short to
// carry a date and description are skipped; missing debit/credit cells parse
// as zero. The signed amount is credit minus debit.
func ReadExportFile(path string, cols ColumnMapping, logger logging.Logger) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	// Bank exports occasionally carry stray quotes inside description cells;
	// a single malformed cell must not abort the whole run.
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read export file %s: %w", path, err)
	}

	minLen := cols.Date
	if cols.Description > minLen {
		minLen = cols.Description
	}

	source := models.SourceLabel(path)
	transactions := make([]models.Transaction, 0, len(records))
	skipped := 0
	for _, row := range records {
		if len(row) <= minLen {
			skipped++
			continue
		}

		cell := func(idx int) string {
			if idx >= 0 && idx < len(row) {
				return row[idx]
			}
			return ""
		}

		debit := models.ParseAmount(cell(cols.Debit))
		credit := models.ParseAmount(cell(cols.Credit))

		tx := models.Transaction{
			Date:        strings.TrimSpace(cell(cols.Date)),
			Description: strings.TrimSpace(cell(cols.Description)),
			Debit:       debit,
			Credit:      credit,
			Amount:      credit.Sub(debit),
			Account:     strings.TrimSpace(cell(cols.Account)),
			Source:      source,
		}
		transactions = append(transactions, tx)
	}

	if skipped > 0 {
		logger.Debug("Skipped short rows",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: skipped})
	}

	return transactions, nil
}
