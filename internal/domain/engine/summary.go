package engine

import (
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
)

// Summarize rolls a schedule up into loan-level totals. The monthly EMI is
// the first installment's total payment; a bumped final installment will
// differ from it, which is intentional.
func Summarize(schedule []model.Installment) model.LoanSummary {
	var principal, interest, savings decimal.Decimal
	for _, inst := range schedule {
		principal = principal.Add(inst.MonthlyPrincipal)
		interest = interest.Add(inst.MonthlyInterest)
		savings = savings.Add(inst.MonthlySavings)
	}

	summary := model.LoanSummary{
		TotalPrincipal: principal,
		TotalInterest:  interest,
		TotalSavings:   savings,
		TotalPayable:   principal.Add(interest).Add(savings),
		EMICount:       len(schedule),
	}
	if len(schedule) > 0 {
		summary.MonthlyEMI = schedule[0].TotalPayment
	}
	return summary
}
