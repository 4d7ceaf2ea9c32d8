package mapping

import (
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/schoolerp/ledger_backend/internal/models"
)

func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelAccount converts a domain account for DB storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		ParentAccountID: d.ParentAccountID,
		Description:     d.Description,
		IsActive:        d.IsActive,
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// ToDomainAccount converts an accounts table row.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		IsActive:        m.IsActive,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToModelJournalEntry converts a domain entry for DB storage.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   d.EntryDate,
		Reference:   d.Reference,
		Description: d.Description,
		Kind:        models.EntryKind(d.Kind),
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a journal_entries table row.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		Reference:   m.Reference,
		Description: m.Description,
		Kind:        domain.EntryKind(m.Kind),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain line for DB storage.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		CurrencyCode: d.CurrencyCode,
		Debit:        d.Debit,
		Credit:       d.Credit,
		Description:  d.Description,
		ExchangeRate: d.ExchangeRate,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainJournalLine converts a journal_lines table row, carrying any joined
// entry metadata along.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:           m.LineID,
		EntryID:          m.EntryID,
		AccountID:        m.AccountID,
		CurrencyCode:     m.CurrencyCode,
		Debit:            m.Debit,
		Credit:           m.Credit,
		Description:      m.Description,
		ExchangeRate:     m.ExchangeRate,
		AuditFields:      toDomainAudit(m.AuditFields),
		EntryDate:        m.EntryDate,
		EntryReference:   m.EntryReference,
		EntryDescription: m.EntryDescription,
		EntryKind:        domain.EntryKind(m.EntryKind),
	}
}

// ToDomainJournalLineSlice converts a slice of line rows.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}

// ToModelAccountBalance converts a domain snapshot for DB storage.
func ToModelAccountBalance(d domain.AccountBalance) models.AccountBalance {
	return models.AccountBalance{
		BalanceID:    d.BalanceID,
		AccountID:    d.AccountID,
		CurrencyCode: d.CurrencyCode,
		Balance:      d.Balance,
		AsOfDate:     d.AsOfDate,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainAccountBalance converts an account_balances table row.
func ToDomainAccountBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance{
		BalanceID:    m.BalanceID,
		AccountID:    m.AccountID,
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		AsOfDate:     m.AsOfDate,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToModelBalanceAdjustment converts a domain adjustment for DB storage.
func ToModelBalanceAdjustment(d domain.BalanceAdjustment) models.BalanceAdjustment {
	return models.BalanceAdjustment{
		AdjustmentID:    d.AdjustmentID,
		AccountID:       d.AccountID,
		CurrencyCode:    d.CurrencyCode,
		PreviousBalance: d.PreviousBalance,
		NewBalance:      d.NewBalance,
		AsOfDate:        d.AsOfDate,
		Reason:          d.Reason,
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// ToDomainBalanceAdjustment converts a balance_adjustments table row.
func ToDomainBalanceAdjustment(m models.BalanceAdjustment) domain.BalanceAdjustment {
	return domain.BalanceAdjustment{
		AdjustmentID:    m.AdjustmentID,
		AccountID:       m.AccountID,
		CurrencyCode:    m.CurrencyCode,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		AsOfDate:        m.AsOfDate,
		Reason:          m.Reason,
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToModelPeriod converts a domain period for DB storage.
func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:    d.PeriodID,
		Name:        d.Name,
		PeriodType:  string(d.PeriodType),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainPeriod converts an accounting_periods table row.
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:    m.PeriodID,
		Name:        m.Name,
		PeriodType:  domain.PeriodType(m.PeriodType),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.PeriodStatus(m.Status),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToDomainCurrency converts a currencies table row.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Name:         m.Name,
		Symbol:       m.Symbol,
		IsActive:     m.IsActive,
		IsBase:       m.IsBase,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToModelCurrency converts a domain currency for DB storage.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: d.CurrencyCode,
		Name:         d.Name,
		Symbol:       d.Symbol,
		IsActive:     d.IsActive,
		IsBase:       d.IsBase,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}
