// Package event defines the domain events raised by loan and payment
// operations. They are published to Kafka after the owning record has been
// persisted.
package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/events"
)

// DomainEvent is an alias for the shared events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// LoanDisbursed is raised when a loan and its EMI schedule are created.
type LoanDisbursed struct {
	events.BaseEvent
	LoanID       string          `json:"loan_id"`
	MemberID     string          `json:"member_id"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	TenureMonths int             `json:"tenure_months"`
	FirstDueDate time.Time       `json:"first_due_date"`
	MonthlyEMI   decimal.Decimal `json:"monthly_emi"`
}

func NewLoanDisbursed(id, loanID, memberID string, amount decimal.Decimal, tenureMonths int, firstDue time.Time, monthlyEMI decimal.Decimal) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:    events.NewBaseEvent("society.loan.disbursed", id, "Loan"),
		LoanID:       loanID,
		MemberID:     memberID,
		LoanAmount:   amount,
		TenureMonths: tenureMonths,
		FirstDueDate: firstDue,
		MonthlyEMI:   monthlyEMI,
	}
}

// PaymentReceived is raised for every recorded payment, whatever its kind.
type PaymentReceived struct {
	events.BaseEvent
	PaymentID     string          `json:"payment_id"`
	LoanID        string          `json:"loan_id,omitempty"`
	MemberID      string          `json:"member_id"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          string          `json:"kind"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	SavingsPaid   decimal.Decimal `json:"savings_paid"`
	LateCharges   decimal.Decimal `json:"late_charges"`
}

func NewPaymentReceived(id, paymentID, loanID, memberID string, amount decimal.Decimal, kind string, principal, interest, savings, lateCharges decimal.Decimal) PaymentReceived {
	return PaymentReceived{
		BaseEvent:     events.NewBaseEvent("society.payment.received", id, "Payment"),
		PaymentID:     paymentID,
		LoanID:        loanID,
		MemberID:      memberID,
		Amount:        amount,
		Kind:          kind,
		PrincipalPaid: principal,
		InterestPaid:  interest,
		SavingsPaid:   savings,
		LateCharges:   lateCharges,
	}
}

// InstallmentLateFeeCharged is raised once per installment when a late fee
// is applied.
type InstallmentLateFeeCharged struct {
	events.BaseEvent
	LoanID    string          `json:"loan_id"`
	EMINumber int             `json:"emi_number"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
}

func NewInstallmentLateFeeCharged(id, loanID string, emiNumber int, amount decimal.Decimal, dueDate time.Time) InstallmentLateFeeCharged {
	return InstallmentLateFeeCharged{
		BaseEvent: events.NewBaseEvent("society.loan.late_fee_charged", id, "Loan"),
		LoanID:    loanID,
		EMINumber: emiNumber,
		Amount:    amount,
		DueDate:   dueDate,
	}
}

// LoanClosed is raised when the last installment is paid off.
type LoanClosed struct {
	events.BaseEvent
	LoanID     string    `json:"loan_id"`
	MemberID   string    `json:"member_id"`
	ClosedDate time.Time `json:"closed_date"`
}

func NewLoanClosed(id, loanID, memberID string, closedDate time.Time) LoanClosed {
	return LoanClosed{
		BaseEvent:  events.NewBaseEvent("society.loan.closed", id, "Loan"),
		LoanID:     loanID,
		MemberID:   memberID,
		ClosedDate: closedDate,
	}
}

// LoanForeclosed is raised when a loan is settled early in full.
type LoanForeclosed struct {
	events.BaseEvent
	LoanID           string          `json:"loan_id"`
	MemberID         string          `json:"member_id"`
	SettlementAmount decimal.Decimal `json:"settlement_amount"`
	ForeclosureDate  time.Time       `json:"foreclosure_date"`
}

func NewLoanForeclosed(id, loanID, memberID string, settlement decimal.Decimal, date time.Time) LoanForeclosed {
	return LoanForeclosed{
		BaseEvent:        events.NewBaseEvent("society.loan.foreclosed", id, "Loan"),
		LoanID:           loanID,
		MemberID:         memberID,
		SettlementAmount: settlement,
		ForeclosureDate:  date,
	}
}

// MemberRegistered is raised when a new member joins the society.
type MemberRegistered struct {
	events.BaseEvent
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
}

func NewMemberRegistered(id, memberID, name string) MemberRegistered {
	return MemberRegistered{
		BaseEvent: events.NewBaseEvent("society.member.registered", id, "Member"),
		MemberID:  memberID,
		Name:      name,
	}
}
