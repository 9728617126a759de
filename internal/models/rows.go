package models

// CombinedRow is the canonical merged-table row written to
// <PERIOD>_combined.csv. Fields are pre-formatted strings because the file
// is a fixed interface with the surrounding tooling (amounts always carry
// two decimals).
type CombinedRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Debit       string `csv:"Debit"`
	Credit      string `csv:"Credit"`
	Amount      string `csv:"Amount"`
	Account     string `csv:"Account"`
	Source      string `csv:"Source"`
	Category    string `csv:"Suggested Category"`
}

// SimplifiedRow is the quick-consumption row written to merged.csv and read
// back from prior periods when assembling training data.
type SimplifiedRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
}

// ToCombinedRow converts a transaction to its canonical output row.
func (t *Transaction) ToCombinedRow() CombinedRow {
	return CombinedRow{
		Date:        t.Date,
		Description: t.Description,
		Debit:       t.Debit.StringFixed(2),
		Credit:      t.Credit.StringFixed(2),
		Amount:      t.Amount.StringFixed(2),
		Account:     t.Account,
		Source:      t.Source,
		Category:    t.Category,
	}
}

// ToSimplifiedRow converts a transaction to its simplified output row.
func (t *Transaction) ToSimplifiedRow() SimplifiedRow {
	return SimplifiedRow{
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Category:    t.Category,
	}
}
