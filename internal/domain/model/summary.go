package model

import "github.com/shopspring/decimal"

// LoanSummary is the derived aggregate rolled up from a schedule. It is
// computed at loan creation and read-mostly afterwards. MonthlyEMI is the
// first installment's total payment, not an average; a bumped final
// installment intentionally differs from it.
type LoanSummary struct {
	TotalPrincipal decimal.Decimal `json:"totalPrincipal"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalSavings   decimal.Decimal `json:"totalSavings"`
	TotalPayable   decimal.Decimal `json:"totalPayable"`
	MonthlyEMI     decimal.Decimal `json:"monthlyEMI"`
	EMICount       int             `json:"emiCount"`
}
