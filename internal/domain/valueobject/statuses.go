// Package valueobject holds the enumerated types shared across the domain.
// All of them serialize to their wire form directly, since loan and payment
// records are persisted as whole JSON documents.
package valueobject

import "fmt"

// LoanStatus is the lifecycle stage of a loan. The transition to closed is
// terminal and happens exactly once, either when every installment is paid
// or on foreclosure.
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "active"
	LoanStatusClosed LoanStatus = "closed"
)

// InstallmentStatus progresses monotonically pending -> partial -> paid and
// never regresses.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPartial InstallmentStatus = "partial"
	InstallmentPaid    InstallmentStatus = "paid"
)

// PaymentKind tags what a payment settles. Dispatch over the kind happens
// once, at the use-case boundary.
type PaymentKind string

const (
	PaymentKindLoanEMI         PaymentKind = "loan_emi"
	PaymentKindLoanForeclosure PaymentKind = "loan_foreclosure"
	PaymentKindSavings         PaymentKind = "savings"
	PaymentKindFee             PaymentKind = "fee"
	PaymentKindPenalty         PaymentKind = "penalty"
)

var validPaymentKinds = map[PaymentKind]bool{
	PaymentKindLoanEMI:         true,
	PaymentKindLoanForeclosure: true,
	PaymentKindSavings:         true,
	PaymentKindFee:             true,
	PaymentKindPenalty:         true,
}

// ParsePaymentKind validates a raw payment type string.
func ParsePaymentKind(s string) (PaymentKind, error) {
	k := PaymentKind(s)
	if !validPaymentKinds[k] {
		return "", fmt.Errorf("invalid payment type: %q", s)
	}
	return k, nil
}

// AllocationKind classifies how much of the targeted dues a payment event
// covered.
type AllocationKind string

const (
	AllocationFull    AllocationKind = "full"
	AllocationPartial AllocationKind = "partial"
)

// PaymentMethod is the channel a payment came in through.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCheque       PaymentMethod = "cheque"
	MethodUPI          PaymentMethod = "upi"
	MethodBankTransfer PaymentMethod = "bankTransfer"
)

// MemberStatus is the lifecycle stage of a society member.
type MemberStatus string

const (
	MemberActive     MemberStatus = "active"
	MemberTerminated MemberStatus = "terminated"
)

// SavingsStatus is the lifecycle stage of a savings account.
type SavingsStatus string

const (
	SavingsActive SavingsStatus = "active"
	SavingsClosed SavingsStatus = "closed"
)

// InterestModel selects how periodic interest is computed.
type InterestModel string

const (
	// ReducingBalance charges interest on the outstanding principal.
	ReducingBalance InterestModel = "reducingBalance"
	// FlatRate charges interest on the original principal for the whole
	// tenure.
	FlatRate InterestModel = "flatRate"
)

// RateUnit says which period a configured rate refers to.
type RateUnit string

const (
	RateMonthly RateUnit = "monthly"
	RateAnnual  RateUnit = "annual"
)
