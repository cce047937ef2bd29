package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// ScheduleParams are the inputs to schedule generation.
type ScheduleParams struct {
	LoanAmount       decimal.Decimal
	TenureMonths     int
	DisbursementDate time.Time
	// DueDate is either a numeric day of month ("5") or a full date
	// ("2026-09-05") whose day-of-month is extracted. Empty falls back to
	// the configured default due day.
	DueDate string
	// SavingsAmount is the constant savings component per installment.
	// Zero falls back to the configured default.
	SavingsAmount decimal.Decimal
}

// ScheduleGenerator builds complete EMI schedules.
type ScheduleGenerator struct {
	interest *InterestCalculator
	emi      config.EMIConfig
	savings  config.SavingsConfig
}

// NewScheduleGenerator wires a generator from the society policy.
func NewScheduleGenerator(cfg config.SocietyConfig) *ScheduleGenerator {
	return &ScheduleGenerator{
		interest: NewInterestCalculator(cfg.Loan.Interest),
		emi:      cfg.Loan.EMI,
		savings:  cfg.Savings,
	}
}

// Generate produces the full EMI schedule for a loan.
//
// The monthly principal is round(amount/tenure) for every installment
// except the last, which absorbs the entire remaining balance so that the
// cumulative principal equals the loan amount exactly regardless of
// rounding drift. Interest per installment comes from the interest
// calculator against the opening balance (reducing balance) or the
// original principal (flat rate).
func (g *ScheduleGenerator) Generate(p ScheduleParams) ([]model.Installment, error) {
	if p.LoanAmount.LessThanOrEqual(decimal.Zero) {
		return nil, errs.Validation("loan amount must be positive")
	}
	if p.TenureMonths <= 0 {
		return nil, errs.Validation("tenure months must be positive")
	}
	if p.DisbursementDate.IsZero() {
		return nil, errs.Validation("disbursement date is required")
	}

	savings := p.SavingsAmount
	if savings.IsZero() {
		savings = decimal.NewFromInt(g.savings.DefaultAmount)
	}
	if savings.IsNegative() {
		return nil, errs.Validation("savings amount must not be negative")
	}

	dueDay := g.resolveDueDay(p.DueDate)

	monthlyPrincipal := p.LoanAmount.Div(decimal.NewFromInt(int64(p.TenureMonths))).Round(0)
	outstanding := p.LoanAmount
	disb := p.DisbursementDate.UTC()

	schedule := make([]model.Installment, 0, p.TenureMonths)
	for i := 1; i <= p.TenureMonths; i++ {
		interest := g.interest.MonthlyInterest(outstanding, p.LoanAmount)

		principal := monthlyPrincipal
		if i == p.TenureMonths {
			// Final installment absorbs the remaining balance.
			principal = outstanding
		}

		closing := outstanding.Sub(principal)
		if closing.IsNegative() {
			closing = decimal.Zero
		}

		schedule = append(schedule, model.Installment{
			EMINumber:        i,
			DueDate:          dueDateFor(disb, i, dueDay),
			OpeningBalance:   outstanding,
			ClosingBalance:   closing,
			MonthlyPrincipal: principal,
			MonthlyInterest:  interest,
			MonthlySavings:   savings,
			TotalPayment:     principal.Add(interest).Add(savings),
			PaymentStatus:    valueobject.InstallmentPending,
			PartialPayments: model.PartialPayments{
				InterestPaid:  decimal.Zero,
				PrincipalPaid: decimal.Zero,
				SavingsPaid:   decimal.Zero,
			},
		})

		outstanding = closing
	}

	return schedule, nil
}

// Rate exposes the resolved interest rate for a loan amount.
func (g *ScheduleGenerator) Rate(loanAmount decimal.Decimal) decimal.Decimal {
	return g.interest.Rate(loanAmount)
}

func (g *ScheduleGenerator) resolveDueDay(dueDate string) int {
	if strings.Contains(dueDate, "-") {
		if t, err := time.Parse("2006-01-02", dueDate); err == nil {
			return t.Day()
		}
	} else if dueDate != "" {
		if day, err := strconv.Atoi(dueDate); err == nil && day >= 1 && day <= 31 {
			return day
		}
	}
	return g.emi.DefaultDueDay
}

// dueDateFor returns the due date of installment i: disbursement month
// plus i, at the configured day of month.
func dueDateFor(disbursement time.Time, i, day int) time.Time {
	return time.Date(disbursement.Year(), disbursement.Month()+time.Month(i), day, 0, 0, 0, 0, time.UTC)
}
