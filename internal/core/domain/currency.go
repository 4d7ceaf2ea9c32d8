package domain

// Currency represents a supported currency. The currency table is seeded by
// configuration and is read-only to the ledger core.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary key (e.g. "UGX")
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	IsActive     bool   `json:"isActive"`
	IsBase       bool   `json:"isBase"` // Exactly one currency is the reporting currency
	AuditFields
}
