package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// PartialPayments tracks how much of each EMI component has been settled so
// far. Every field is monotonically non-decreasing and never exceeds the
// corresponding component of the installment's TotalPayment.
type PartialPayments struct {
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`
	SavingsPaid   decimal.Decimal `json:"savingsPaid"`
}

// Total returns the sum of all settled components.
func (p PartialPayments) Total() decimal.Decimal {
	return p.InterestPaid.Add(p.PrincipalPaid).Add(p.SavingsPaid)
}

// PaymentRecord is one append-only payment-history entry on an installment.
type PaymentRecord struct {
	Date      time.Time                  `json:"date"`
	Amount    decimal.Decimal            `json:"amount"`
	Principal decimal.Decimal            `json:"principal"`
	Interest  decimal.Decimal            `json:"interest"`
	Savings   decimal.Decimal            `json:"savings"`
	Kind      valueobject.AllocationKind `json:"type"`
}

// Installment is one EMI line item within a loan's schedule. EMINumber and
// the monthly components are immutable once generated; payment state
// mutates as payments are applied, always through copies produced by the
// engines.
type Installment struct {
	EMINumber        int                           `json:"emiNumber"`
	DueDate          time.Time                     `json:"dueDate"`
	OpeningBalance   decimal.Decimal               `json:"openingBalance"`
	ClosingBalance   decimal.Decimal               `json:"closingBalance"`
	MonthlyPrincipal decimal.Decimal               `json:"monthlyPrincipal"`
	MonthlyInterest  decimal.Decimal               `json:"monthlyInterest"`
	MonthlySavings   decimal.Decimal               `json:"monthlySavings"`
	TotalPayment     decimal.Decimal               `json:"totalPayment"`
	PaymentStatus    valueobject.InstallmentStatus `json:"paymentStatus"`

	PartialPayments PartialPayments `json:"partialPayments"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	AmountDue       decimal.Decimal `json:"amountDue"`

	LateFeeApplied decimal.Decimal `json:"lateFeeApplied"`
	LateFeeDate    *time.Time      `json:"lateFeeDate,omitempty"`

	PaymentDate            *time.Time `json:"paymentDate,omitempty"`
	FullyPaidOn            *time.Time `json:"fullyPaidOn,omitempty"`
	LastPartialPaymentDate *time.Time `json:"lastPartialPaymentDate,omitempty"`

	PaymentHistory []PaymentRecord `json:"paymentHistory,omitempty"`
}

// IsPaid reports whether the installment is fully settled.
func (i Installment) IsPaid() bool {
	return i.PaymentStatus == valueobject.InstallmentPaid
}

// RemainingDue returns how much of the nominal EMI amount is still owed.
func (i Installment) RemainingDue() decimal.Decimal {
	due := i.TotalPayment.Sub(i.PartialPayments.Total())
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// HasLateFee reports whether a late fee has already been charged on this
// installment. The fee is applied at most once.
func (i Installment) HasLateFee() bool {
	return i.LateFeeApplied.IsPositive()
}

// Clone returns a deep copy, including the payment history slice, so that
// engine updates never alias the caller's schedule.
func (i Installment) Clone() Installment {
	out := i
	if i.PaymentHistory != nil {
		out.PaymentHistory = make([]PaymentRecord, len(i.PaymentHistory))
		copy(out.PaymentHistory, i.PaymentHistory)
	}
	out.LateFeeDate = cloneTime(i.LateFeeDate)
	out.PaymentDate = cloneTime(i.PaymentDate)
	out.FullyPaidOn = cloneTime(i.FullyPaidOn)
	out.LastPartialPaymentDate = cloneTime(i.LastPartialPaymentDate)
	return out
}

// CloneSchedule deep-copies a whole schedule.
func CloneSchedule(schedule []Installment) []Installment {
	if schedule == nil {
		return nil
	}
	out := make([]Installment, len(schedule))
	for n, inst := range schedule {
		out[n] = inst.Clone()
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
