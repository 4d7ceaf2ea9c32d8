package dto

import (
	"github.com/schoolerp/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportLineItemResponse is one account's row in a report section.
type ReportLineItemResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// IncomeStatementResponse is the income statement report payload.
type IncomeStatementResponse struct {
	Period   string                   `json:"period"`
	Revenue  []ReportLineItemResponse `json:"revenue"`
	Expenses []ReportLineItemResponse `json:"expenses"`
	Totals   struct {
		TotalRevenue      decimal.Decimal `json:"total_revenue"`
		TotalExpenses     decimal.Decimal `json:"total_expenses"`
		NetIncome         decimal.Decimal `json:"net_income"`
		GrossProfitMargin decimal.Decimal `json:"gross_profit_margin"`
	} `json:"totals"`
	Currency string `json:"currency"`
}

// BalanceSheetResponse is the balance sheet report payload.
type BalanceSheetResponse struct {
	AsOf                string                   `json:"asOf"`
	CurrentAssets       []ReportLineItemResponse `json:"current_assets"`
	FixedAssets         []ReportLineItemResponse `json:"fixed_assets"`
	OtherAssets         []ReportLineItemResponse `json:"other_assets"`
	CurrentLiabilities  []ReportLineItemResponse `json:"current_liabilities"`
	LongTermLiabilities []ReportLineItemResponse `json:"long_term_liabilities"`
	Equity              []ReportLineItemResponse `json:"equity"`
	Totals              struct {
		TotalAssets      decimal.Decimal `json:"total_assets"`
		TotalLiabilities decimal.Decimal `json:"total_liabilities"`
		TotalEquity      decimal.Decimal `json:"total_equity"`
	} `json:"totals"`
	Balanced bool   `json:"balanced"`
	Currency string `json:"currency"`
}

// CashFlowResponse is the cash flow report payload.
type CashFlowResponse struct {
	Period       string                   `json:"period"`
	CashInflows  []ReportLineItemResponse `json:"cash_inflows"`
	CashOutflows []ReportLineItemResponse `json:"cash_outflows"`
	Totals       struct {
		TotalInflows  decimal.Decimal `json:"total_inflows"`
		TotalOutflows decimal.Decimal `json:"total_outflows"`
		NetCashFlow   decimal.Decimal `json:"net_cash_flow"`
		BeginningCash decimal.Decimal `json:"beginning_cash"`
		EndingCash    decimal.Decimal `json:"ending_cash"`
	} `json:"totals"`
	Currency string `json:"currency"`
}

// TrialBalanceRowResponse is one row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the trial balance report payload.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// LedgerRowResponse is one normalized row of the general ledger union view.
type LedgerRowResponse struct {
	Source          string          `json:"source"`
	AccountID       string          `json:"account_id"`
	Debit           decimal.Decimal `json:"debit_amount"`
	Credit          decimal.Decimal `json:"credit_amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date"`
	TransactionType string          `json:"transaction_type"`
}

// GeneralLedgerResponse is one page of the general ledger union view.
type GeneralLedgerResponse struct {
	AccountID string              `json:"accountID"`
	Rows      []LedgerRowResponse `json:"rows"`
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
	Total     int                 `json:"total"`
}

// GeneralLedgerParams filters and paginates the general ledger union view.
type GeneralLedgerParams struct {
	Search   string `form:"search"`
	FromDate string `form:"from"`
	ToDate   string `form:"to"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func toReportLineItemResponses(items []domain.ReportLineItem) []ReportLineItemResponse {
	out := make([]ReportLineItemResponse, len(items))
	for i, item := range items {
		out[i] = ReportLineItemResponse{
			AccountID:   item.AccountID,
			AccountCode: item.AccountCode,
			Name:        item.Name,
			Amount:      item.Amount,
			Percentage:  item.Percentage,
		}
	}
	return out
}

// ToIncomeStatementResponse converts a domain income statement.
func ToIncomeStatementResponse(r *domain.IncomeStatement, currency string) IncomeStatementResponse {
	resp := IncomeStatementResponse{
		Period:   r.FromDate.Format("2006-01-02") + " to " + r.ToDate.Format("2006-01-02"),
		Revenue:  toReportLineItemResponses(r.Revenue),
		Expenses: toReportLineItemResponses(r.Expenses),
		Currency: currency,
	}
	resp.Totals.TotalRevenue = r.TotalRevenue
	resp.Totals.TotalExpenses = r.TotalExpenses
	resp.Totals.NetIncome = r.NetIncome
	resp.Totals.GrossProfitMargin = r.GrossProfitMargin
	return resp
}

// ToBalanceSheetResponse converts a domain balance sheet.
func ToBalanceSheetResponse(r *domain.BalanceSheet, currency string) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:                r.AsOf.Format("2006-01-02"),
		CurrentAssets:       toReportLineItemResponses(r.CurrentAssets),
		FixedAssets:         toReportLineItemResponses(r.FixedAssets),
		OtherAssets:         toReportLineItemResponses(r.OtherAssets),
		CurrentLiabilities:  toReportLineItemResponses(r.CurrentLiabilities),
		LongTermLiabilities: toReportLineItemResponses(r.LongTermLiabilities),
		Equity:              toReportLineItemResponses(r.Equity),
		Balanced:            r.Balanced,
		Currency:            currency,
	}
	resp.Totals.TotalAssets = r.TotalAssets
	resp.Totals.TotalLiabilities = r.TotalLiabilities
	resp.Totals.TotalEquity = r.TotalEquity
	return resp
}

// ToCashFlowResponse converts a domain cash flow statement.
func ToCashFlowResponse(r *domain.CashFlowStatement, currency string) CashFlowResponse {
	resp := CashFlowResponse{
		Period:       r.FromDate.Format("2006-01-02") + " to " + r.ToDate.Format("2006-01-02"),
		CashInflows:  toReportLineItemResponses(r.Inflows),
		CashOutflows: toReportLineItemResponses(r.Outflows),
		Currency:     currency,
	}
	resp.Totals.TotalInflows = r.TotalInflows
	resp.Totals.TotalOutflows = r.TotalOutflows
	resp.Totals.NetCashFlow = r.NetCashFlow
	resp.Totals.BeginningCash = r.BeginningCash
	resp.Totals.EndingCash = r.EndingCash
	return resp
}

// ToTrialBalanceResponse converts domain trial balance rows and computes the
// column totals.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf string) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf: asOf,
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}
	resp.Totals.Debit = totalDebit
	resp.Totals.Credit = totalCredit
	return resp
}

// ToLedgerRowResponses converts domain ledger rows.
func ToLedgerRowResponses(rows []domain.LedgerRow) []LedgerRowResponse {
	out := make([]LedgerRowResponse, len(rows))
	for i, row := range rows {
		out[i] = LedgerRowResponse{
			Source:          string(row.Source),
			AccountID:       row.AccountID,
			Debit:           row.Debit,
			Credit:          row.Credit,
			Description:     row.Description,
			TransactionDate: row.TransactionDate.Format("2006-01-02"),
			TransactionType: row.TransactionType,
		}
	}
	return out
}
