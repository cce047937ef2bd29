package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// Payment is an immutable record of a single transaction. It is created
// once and never mutated afterwards; voiding is a receipt-level concern
// outside this core.
type Payment struct {
	ID        string `json:"id"`
	PaymentID string `json:"paymentId"` // human-readable, e.g. PAY-000017
	MemberID  string `json:"memberId"`
	LoanID    string `json:"loanId,omitempty"`

	Amount    decimal.Decimal           `json:"amount"`
	Date      time.Time                 `json:"paymentDate"`
	Method    valueobject.PaymentMethod `json:"method"`
	Reference string                    `json:"referenceNumber,omitempty"`
	Kind      valueobject.PaymentKind   `json:"type"`

	// Realized split across the targeted installments.
	EMINumbers      []int                      `json:"emiNumbers,omitempty"`
	PrincipalAmount decimal.Decimal            `json:"principalAmount"`
	InterestAmount  decimal.Decimal            `json:"interestAmount"`
	SavingsAmount   decimal.Decimal            `json:"savingsAmount"`
	LateCharges     decimal.Decimal            `json:"lateCharges"`
	UnappliedAmount decimal.Decimal            `json:"unappliedAmount"`
	AllocationKind  valueobject.AllocationKind `json:"paymentType,omitempty"`

	Remarks     string    `json:"remarks,omitempty"`
	Status      string    `json:"status"`
	ProcessedAt time.Time `json:"processedDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Receipt is the flattened view of a payment handed to the rendering layer.
type Receipt struct {
	ReceiptNumber string                    `json:"receiptNumber"`
	PaymentID     string                    `json:"paymentId"`
	MemberID      string                    `json:"memberId"`
	MemberName    string                    `json:"memberName"`
	LoanID        string                    `json:"loanId,omitempty"`
	Amount        decimal.Decimal           `json:"amount"`
	Date          time.Time                 `json:"paymentDate"`
	Method        valueobject.PaymentMethod `json:"method"`
	Kind          valueobject.PaymentKind   `json:"type"`
	Reference     string                    `json:"referenceNumber,omitempty"`
	Principal     decimal.Decimal           `json:"principal"`
	Interest      decimal.Decimal           `json:"interest"`
	Savings       decimal.Decimal           `json:"savings"`
	LateFee       decimal.Decimal           `json:"lateFee"`
	Remarks       string                    `json:"remarks,omitempty"`
}
