package store

// DefaultRules returns the built-in ordered regex rules used when no
// category_rules file overrides them. Order matters: the first match wins.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: `(?i)electronic funds transfer pay windreg|pay windreg|payroll`, Category: "Work Income"},
		{Pattern: `(?i)payment thank you|paiemen t merci|internet transfer 0{6,}|interac transfer|e-transfer|internet banking`, Category: "Transfers & Payments"},
		{Pattern: `(?i)rogers \*|rogers\*\*\*\*\*\*|apple\.com|cursor|paypal`, Category: "Subscriptions & Bills"},
		{Pattern: `(?i)enwin|university of windsor|bill pay`, Category: "Utilities & Bills"},
		{Pattern: `(?i)tim hortons|starbucks|mcdonald|presotea|taco bell|subway|pizza pizza|chipotle|burger king|new york fries|dollarama|miniso`, Category: "Food & Drink"},
		{Pattern: `(?i)athidhi|janpath|spago|chilly bliss|paan banaras|restaurant`, Category: "Restaurants"},
		{Pattern: `(?i)instacart|costco|wal-mart|amazon|amzn|temu`, Category: "Shopping & Groceries"},
		{Pattern: `(?i)uber|lyft|vets cab|presto fare|pearson parking|michigan flyer|spirit air|air can`, Category: "Transport & Travel"},
		{Pattern: `(?i)sport chek|cinplex|vue`, Category: "Entertainment"},
		{Pattern: `(?i)shell|gas|petrol`, Category: "Gas & Auto"},
		{Pattern: `(?i)interest|service charge|fee|branch transaction|automated banking machine`, Category: "Fees & Interest"},
		{Pattern: `(?i)chiropractic`, Category: "Health"},
		{Pattern: `(?i)shoppers drug|pharmacy`, Category: "Pharmacy"},
		{Pattern: `(?i)sephora`, Category: "Personal Care"},
	}
}

// TransferFallback is the catch-all transfer rule applied after the ordered
// rules, regardless of overrides.
var TransferFallback = Rule{
	Pattern:  `(?i)e-transfer|internet transfer\s|interac\s+transfer`,
	Category: "Transfers & Payments",
}

// DefaultCategories returns the built-in category universe. Order is
// preserved for downstream report dropdowns.
func DefaultCategories() []string {
	return []string{
		"Work Income", "Transfers & Payments", "Shopping & Groceries", "Food & Drink",
		"Restaurants", "Transport & Travel", "Subscriptions & Bills", "Utilities & Bills",
		"Entertainment", "Fees & Interest", "Health", "Pharmacy", "Personal Care", "Gas & Auto",
		"Uncategorized",
	}
}

// DefaultProfile returns the built-in bank profile.
func DefaultProfile() Profile {
	return Profile{
		FilePattern: "cibc*.csv",
		DateCol:     0,
		DescCol:     1,
		DebitCol:    2,
		CreditCol:   3,
		AccountCol:  4,
	}
}
