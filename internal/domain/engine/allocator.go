package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// overpaymentBuffer is the tolerance above total due before a payment
// triggers a soft overpayment warning.
var overpaymentBuffer = decimal.NewFromFloat(1.1)

// AllocationResult reports what a payment actually settled.
type AllocationResult struct {
	EMINumbers    []int
	InterestPaid  decimal.Decimal
	PrincipalPaid decimal.Decimal
	SavingsPaid   decimal.Decimal
	LateFeeTotal  decimal.Decimal
	LateFeeEMIs   []int
	// Unapplied is the surplus left after every targeted installment's dues
	// were satisfied. It is recorded on the payment, neither carried
	// forward nor refunded.
	Unapplied decimal.Decimal
	Kind      valueobject.AllocationKind
	Warnings  []string
}

// PaymentAllocator applies payments against a loan's schedule using the
// fixed waterfall: interest first, then principal, then savings. The order
// is a business rule, not negotiable per call.
type PaymentAllocator struct{}

// NewPaymentAllocator creates an allocator.
func NewPaymentAllocator() *PaymentAllocator {
	return &PaymentAllocator{}
}

// Apply allocates a payment across the targeted installments and returns
// the updated loan plus the realized split. The input loan is never
// mutated.
//
// When emiNumbers is empty, targets are auto-selected greedily in ascending
// EMI order, oldest unpaid first, consuming the amount until it runs out.
func (a *PaymentAllocator) Apply(loan model.Loan, amount decimal.Decimal, emiNumbers []int, paymentDate time.Time) (model.Loan, AllocationResult, error) {
	var res AllocationResult

	if amount.LessThanOrEqual(decimal.Zero) {
		return loan, res, errs.Validation("payment amount must be positive")
	}
	for _, n := range emiNumbers {
		if _, ok := loan.Installment(n); !ok {
			return loan, res, errs.Validationf("unknown EMI number %d", n)
		}
	}
	if err := checkScheduleInvariants(loan); err != nil {
		return loan, res, err
	}

	targets := emiNumbers
	if len(targets) == 0 {
		targets = autoSelectTargets(loan, amount)
	}

	// Soft validation: flag likely overpayment, but never reject it.
	totalDue := decimal.Zero
	for _, n := range targets {
		inst, _ := loan.Installment(n)
		totalDue = totalDue.Add(inst.RemainingDue())
	}
	if amount.GreaterThan(totalDue.Mul(overpaymentBuffer)) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"payment amount %s exceeds total due %s; excess will be recorded", amount, totalDue))
	}

	next := loan.Clone()
	remaining := amount
	targetSet := make(map[int]bool, len(targets))
	for _, n := range targets {
		targetSet[n] = true
	}

	res.InterestPaid = decimal.Zero
	res.PrincipalPaid = decimal.Zero
	res.SavingsPaid = decimal.Zero
	res.LateFeeTotal = decimal.Zero

	nominalTargeted := decimal.Zero
	for idx := range next.Schedule {
		inst := &next.Schedule[idx]
		if !targetSet[inst.EMINumber] {
			continue
		}
		nominalTargeted = nominalTargeted.Add(inst.TotalPayment)

		// A fully settled installment is left untouched even when listed.
		if inst.IsPaid() {
			continue
		}

		// Late fee: at most once per installment, when the payment lands in
		// a calendar month strictly after the due month. Tracked separately
		// from the waterfall amount.
		if isLaterMonth(paymentDate, inst.DueDate) && !inst.HasLateFee() {
			inst.LateFeeApplied = loan.LateFeeAmount
			feeDate := model.DateOnly(paymentDate)
			inst.LateFeeDate = &feeDate
			res.LateFeeTotal = res.LateFeeTotal.Add(loan.LateFeeAmount)
			res.LateFeeEMIs = append(res.LateFeeEMIs, inst.EMINumber)
		}

		remaining = a.allocateWaterfall(inst, remaining, paymentDate, &res)
		a.updateStatus(inst, paymentDate)
	}

	res.EMINumbers = targets
	res.Unapplied = remaining

	// Outstanding balance decreases by applied principal only, never by the
	// gross payment amount.
	next.OutstandingBalance = next.OutstandingBalance.Sub(res.PrincipalPaid)
	if next.OutstandingBalance.IsNegative() {
		next.OutstandingBalance = decimal.Zero
	}
	if next.AllPaid() {
		next.Status = valueobject.LoanStatusClosed
		closed := model.DateOnly(paymentDate)
		next.ClosedDate = &closed
	}
	next.UpdatedAt = paymentDate.UTC()

	applied := res.InterestPaid.Add(res.PrincipalPaid).Add(res.SavingsPaid)
	if applied.GreaterThanOrEqual(nominalTargeted) {
		res.Kind = valueobject.AllocationFull
	} else {
		res.Kind = valueobject.AllocationPartial
	}

	return next, res, nil
}

// allocateWaterfall pays one installment's dues in the fixed order and
// returns what is left of the payment. A zero remaining amount
// short-circuits the later steps.
func (a *PaymentAllocator) allocateWaterfall(inst *model.Installment, remaining decimal.Decimal, paymentDate time.Time, res *AllocationResult) decimal.Decimal {
	var interestPay, principalPay, savingsPay decimal.Decimal

	if remaining.IsPositive() {
		if due := inst.MonthlyInterest.Sub(inst.PartialPayments.InterestPaid); due.IsPositive() {
			interestPay = decimal.Min(remaining, due)
			inst.PartialPayments.InterestPaid = inst.PartialPayments.InterestPaid.Add(interestPay)
			res.InterestPaid = res.InterestPaid.Add(interestPay)
			remaining = remaining.Sub(interestPay)
		}
	}
	if remaining.IsPositive() {
		if due := inst.MonthlyPrincipal.Sub(inst.PartialPayments.PrincipalPaid); due.IsPositive() {
			principalPay = decimal.Min(remaining, due)
			inst.PartialPayments.PrincipalPaid = inst.PartialPayments.PrincipalPaid.Add(principalPay)
			res.PrincipalPaid = res.PrincipalPaid.Add(principalPay)
			remaining = remaining.Sub(principalPay)
		}
	}
	if remaining.IsPositive() {
		if due := inst.MonthlySavings.Sub(inst.PartialPayments.SavingsPaid); due.IsPositive() {
			savingsPay = decimal.Min(remaining, due)
			inst.PartialPayments.SavingsPaid = inst.PartialPayments.SavingsPaid.Add(savingsPay)
			res.SavingsPaid = res.SavingsPaid.Add(savingsPay)
			remaining = remaining.Sub(savingsPay)
		}
	}

	applied := interestPay.Add(principalPay).Add(savingsPay)
	kind := valueobject.AllocationPartial
	if inst.PartialPayments.Total().GreaterThanOrEqual(inst.TotalPayment) {
		kind = valueobject.AllocationFull
	}
	inst.PaymentHistory = append(inst.PaymentHistory, model.PaymentRecord{
		Date:      model.DateOnly(paymentDate),
		Amount:    applied,
		Principal: principalPay,
		Interest:  interestPay,
		Savings:   savingsPay,
		Kind:      kind,
	})

	return remaining
}

// updateStatus moves the installment's status forward. The progression is
// monotonic: pending -> partial -> paid, never backwards.
func (a *PaymentAllocator) updateStatus(inst *model.Installment, paymentDate time.Time) {
	day := model.DateOnly(paymentDate)
	totalPaid := inst.PartialPayments.Total()

	switch {
	case totalPaid.GreaterThanOrEqual(inst.TotalPayment):
		inst.PaymentStatus = valueobject.InstallmentPaid
		inst.PaymentDate = &day
		inst.FullyPaidOn = &day
		inst.AmountPaid = totalPaid
		inst.AmountDue = decimal.Zero
	case totalPaid.IsPositive():
		inst.PaymentStatus = valueobject.InstallmentPartial
		inst.LastPartialPaymentDate = &day
		inst.AmountPaid = totalPaid
		inst.AmountDue = inst.TotalPayment.Sub(totalPaid)
	}
}

// autoSelectTargets picks unpaid installments oldest-first until the
// payment amount is consumed.
func autoSelectTargets(loan model.Loan, amount decimal.Decimal) []int {
	var targets []int
	remaining := amount
	for _, inst := range loan.Schedule {
		if inst.IsPaid() {
			continue
		}
		if !remaining.IsPositive() {
			break
		}
		targets = append(targets, inst.EMINumber)
		remaining = remaining.Sub(inst.RemainingDue())
	}
	return targets
}

// checkScheduleInvariants detects corrupted partial-payment state before
// any allocation begins. Such state indicates a prior bad write and is
// fatal rather than silently clamped.
func checkScheduleInvariants(loan model.Loan) error {
	for _, inst := range loan.Schedule {
		pp := inst.PartialPayments
		if pp.InterestPaid.GreaterThan(inst.MonthlyInterest) ||
			pp.PrincipalPaid.GreaterThan(inst.MonthlyPrincipal) ||
			pp.SavingsPaid.GreaterThan(inst.MonthlySavings) {
			return errs.Invariantf("EMI %d partial payments exceed due components", inst.EMINumber)
		}
		if pp.InterestPaid.IsNegative() || pp.PrincipalPaid.IsNegative() || pp.SavingsPaid.IsNegative() {
			return errs.Invariantf("EMI %d has negative partial payments", inst.EMINumber)
		}
	}
	return nil
}

// isLaterMonth reports whether t falls in a calendar month strictly after
// due's month. Only the year and month are compared, the day is ignored.
func isLaterMonth(t, due time.Time) bool {
	ty, tm, _ := t.UTC().Date()
	dy, dm, _ := due.UTC().Date()
	return ty > dy || (ty == dy && tm > dm)
}
