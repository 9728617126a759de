package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain number", "123.45", "123.45"},
		{"negative", "-5.75", "-5.75"},
		{"thousands separator", "1,234.56", "1234.56"},
		{"apostrophe separator", "1'234.56", "1234.56"},
		{"currency symbol", "$99.99", "99.99"},
		{"currency code", "100.00 CAD", "100"},
		{"usd code", "USD 42.00", "42"},
		{"surrounding spaces", "  7.25  ", "7.25"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
		{"garbage", "abc", "0"},
		{"zero", "0.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			assert.True(t, expected.Equal(ParseAmount(tt.input)),
				"ParseAmount(%q) = %s, expected %s", tt.input, ParseAmount(tt.input), expected)
		})
	}
}

func TestDedupKey(t *testing.T) {
	a := Transaction{Date: "2025-06-01", Description: "COSTCO", Amount: decimal.NewFromFloat(-80.0)}
	b := Transaction{Date: "2025-06-01", Description: "COSTCO", Amount: decimal.NewFromFloat(-80.00)}
	c := Transaction{Date: "2025-06-01", Description: "COSTCO", Amount: decimal.NewFromFloat(-80.01)}

	// Equal values produce equal keys regardless of representation.
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Equal(t, "-80.00", a.Key().Amount)
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/accounts/June 2025/cibc-checking.csv", "cibc-checking"},
		{"cibc.csv", "cibc"},
		{"no-extension", "no-extension"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SourceLabel(tt.path))
	}
}

func TestToRows(t *testing.T) {
	tx := Transaction{
		Date:        "2025-06-01",
		Description: "TIM HORTONS",
		Debit:       decimal.NewFromFloat(5.75),
		Credit:      decimal.Zero,
		Amount:      decimal.NewFromFloat(-5.75),
		Account:     "acct-1",
		Source:      "cibc-checking",
		Category:    "Food & Drink",
		Provenance:  ProvenanceRegex,
	}

	combined := tx.ToCombinedRow()
	assert.Equal(t, "5.75", combined.Debit)
	assert.Equal(t, "0.00", combined.Credit)
	assert.Equal(t, "-5.75", combined.Amount)
	assert.Equal(t, "Food & Drink", combined.Category)
	assert.Equal(t, "cibc-checking", combined.Source)

	simplified := tx.ToSimplifiedRow()
	assert.Equal(t, "-5.75", simplified.Amount)
	assert.Equal(t, "Food & Drink", simplified.Category)
}
