package models

// Currency is the currencies table row. Seeded externally; read-only here.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Name         string `db:"name"`
	Symbol       string `db:"symbol"`
	IsActive     bool   `db:"is_active"`
	IsBase       bool   `db:"is_base"`
	AuditFields
}
