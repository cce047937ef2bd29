package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// ForeclosureResult breaks down an early settlement.
type ForeclosureResult struct {
	SettlementAmount     decimal.Decimal
	OutstandingPrincipal decimal.Decimal
	CurrentMonthInterest decimal.Decimal
	// Excess is anything paid above the settlement amount.
	Excess decimal.Decimal
}

// ForeclosureCalculator settles a loan early. The settlement amount is the
// outstanding principal plus one more month of interest, taken from the
// first unpaid installment. Interest for months beyond that is waived.
type ForeclosureCalculator struct{}

// NewForeclosureCalculator creates a foreclosure calculator.
func NewForeclosureCalculator() *ForeclosureCalculator {
	return &ForeclosureCalculator{}
}

// Foreclose closes the loan if amount covers the settlement. Remaining
// unpaid installments are marked paid with their interest and savings
// zeroed, so the schedule totals reconcile with what was actually
// collected. The input loan is never mutated.
func (f *ForeclosureCalculator) Foreclose(loan model.Loan, amount decimal.Decimal, now time.Time) (model.Loan, ForeclosureResult, error) {
	var res ForeclosureResult

	if loan.Status == valueobject.LoanStatusClosed {
		return loan, res, errs.Validation("loan is already closed")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return loan, res, errs.Validation("foreclosure amount must be positive")
	}

	res.OutstandingPrincipal = loan.OutstandingBalance
	res.CurrentMonthInterest = decimal.Zero
	if first, ok := loan.FirstUnpaid(); ok {
		// The full monthly interest is charged regardless of any partial
		// interest already collected on that installment.
		res.CurrentMonthInterest = first.MonthlyInterest
	}
	res.SettlementAmount = res.OutstandingPrincipal.Add(res.CurrentMonthInterest)

	if amount.LessThan(res.SettlementAmount) {
		return loan, res, &errs.InsufficientPaymentError{
			Required: res.SettlementAmount,
			Provided: amount,
		}
	}
	res.Excess = amount.Sub(res.SettlementAmount)

	next := loan.Clone()
	day := model.DateOnly(now)
	interestCharged := false
	for idx := range next.Schedule {
		inst := &next.Schedule[idx]
		if inst.IsPaid() {
			continue
		}

		// The first unpaid installment carries one full month of interest
		// on top of whatever was already collected. Every later one is
		// settled at principal only.
		principalDue := inst.MonthlyPrincipal.Sub(inst.PartialPayments.PrincipalPaid)
		interestDue := decimal.Zero
		if !interestCharged {
			interestDue = inst.MonthlyInterest
			interestCharged = true
		}

		applied := principalDue.Add(interestDue)
		inst.PartialPayments.PrincipalPaid = inst.PartialPayments.PrincipalPaid.Add(principalDue)
		inst.PartialPayments.InterestPaid = inst.PartialPayments.InterestPaid.Add(interestDue)
		inst.MonthlyInterest = inst.PartialPayments.InterestPaid
		inst.MonthlySavings = inst.PartialPayments.SavingsPaid
		inst.TotalPayment = inst.MonthlyPrincipal.Add(inst.MonthlyInterest).Add(inst.MonthlySavings)
		inst.PaymentStatus = valueobject.InstallmentPaid
		inst.PaymentDate = &day
		inst.FullyPaidOn = &day
		inst.AmountPaid = inst.PartialPayments.Total()
		inst.AmountDue = decimal.Zero
		inst.PaymentHistory = append(inst.PaymentHistory, model.PaymentRecord{
			Date:      day,
			Amount:    applied,
			Principal: principalDue,
			Interest:  interestDue,
			Kind:      valueobject.AllocationFull,
		})
	}

	next.OutstandingBalance = decimal.Zero
	next.Status = valueobject.LoanStatusClosed
	next.ClosedDate = &day
	next.ForeclosureDate = &day
	next.ForeclosureAmount = res.SettlementAmount
	next.UpdatedAt = now.UTC()
	next.Summary = Summarize(next.Schedule)

	return next, res, nil
}
