package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// Loan is a whole-record aggregate: the loan terms, the full EMI schedule
// and the derived summary are persisted together as one document. The
// engines never mutate a Loan in place; they return updated copies and the
// caller owns persistence of the new state.
type Loan struct {
	ID       string `json:"id"`
	LoanID   string `json:"loanId"` // human-readable, e.g. LOAN-2026-00042
	MemberID string `json:"memberId"`

	LoanAmount       decimal.Decimal `json:"loanAmount"`
	TenureMonths     int             `json:"tenureMonths"`
	DisbursementDate time.Time       `json:"disbursementDate"`
	InterestRate     decimal.Decimal `json:"interestRate"` // resolved at creation
	SavingsAmount    decimal.Decimal `json:"savingsAmount"`
	LateFeeAmount    decimal.Decimal `json:"lateFeeAmount"`

	Schedule           []Installment          `json:"schedule"`
	Summary            LoanSummary            `json:"summary"`
	OutstandingBalance decimal.Decimal        `json:"outstandingBalance"`
	Status             valueobject.LoanStatus `json:"status"`

	ClosedDate        *time.Time      `json:"closedDate,omitempty"`
	ForeclosureDate   *time.Time      `json:"foreclosureDate,omitempty"`
	ForeclosureAmount decimal.Decimal `json:"foreclosureAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the loan, including its schedule.
func (l Loan) Clone() Loan {
	out := l
	out.Schedule = CloneSchedule(l.Schedule)
	out.ClosedDate = cloneTime(l.ClosedDate)
	out.ForeclosureDate = cloneTime(l.ForeclosureDate)
	return out
}

// Installment returns the schedule entry with the given EMI number.
func (l Loan) Installment(emiNumber int) (Installment, bool) {
	for _, inst := range l.Schedule {
		if inst.EMINumber == emiNumber {
			return inst, true
		}
	}
	return Installment{}, false
}

// AllPaid reports whether every installment in the schedule is settled.
func (l Loan) AllPaid() bool {
	for _, inst := range l.Schedule {
		if !inst.IsPaid() {
			return false
		}
	}
	return len(l.Schedule) > 0
}

// FirstUnpaid returns the earliest installment that is not fully paid.
func (l Loan) FirstUnpaid() (Installment, bool) {
	for _, inst := range l.Schedule {
		if !inst.IsPaid() {
			return inst, true
		}
	}
	return Installment{}, false
}

// NextPending returns the earliest pending installment due on or after the
// given day. It feeds the next-EMI enrichment on loan listings.
func (l Loan) NextPending(today time.Time) (Installment, bool) {
	day := DateOnly(today)
	for _, inst := range l.Schedule {
		if inst.PaymentStatus == valueobject.InstallmentPending && !DateOnly(inst.DueDate).Before(day) {
			return inst, true
		}
	}
	return Installment{}, false
}

// OverdueInstallments returns pending installments whose due date is
// strictly before the given day.
func (l Loan) OverdueInstallments(today time.Time) []Installment {
	day := DateOnly(today)
	var out []Installment
	for _, inst := range l.Schedule {
		if inst.PaymentStatus == valueobject.InstallmentPending && DateOnly(inst.DueDate).Before(day) {
			out = append(out, inst.Clone())
		}
	}
	return out
}

// DueBetween returns pending installments due within [from, to], inclusive.
func (l Loan) DueBetween(from, to time.Time) []Installment {
	lo, hi := DateOnly(from), DateOnly(to)
	var out []Installment
	for _, inst := range l.Schedule {
		d := DateOnly(inst.DueDate)
		if inst.PaymentStatus == valueobject.InstallmentPending && !d.Before(lo) && !d.After(hi) {
			out = append(out, inst.Clone())
		}
	}
	return out
}

// DateOnly truncates a timestamp to midnight UTC; schedule comparisons work
// at day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
