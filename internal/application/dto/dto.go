// Package dto defines the request and response shapes crossing the
// application boundary.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/engine"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateLoanRequest carries the data needed to disburse a new loan.
type CreateLoanRequest struct {
	MemberID         string          `json:"memberId"`
	LoanAmount       decimal.Decimal `json:"loanAmount"`
	TenureMonths     int             `json:"tenureMonths"`
	DisbursementDate string          `json:"disbursementDate,omitempty"` // YYYY-MM-DD, empty = today
	DueDate          string          `json:"dueDate,omitempty"`
	SavingsAmount    decimal.Decimal `json:"savingsAmount,omitempty"`
}

// CalculateLoanRequest asks for a schedule quote without persisting
// anything.
type CalculateLoanRequest struct {
	LoanAmount       decimal.Decimal `json:"loanAmount"`
	TenureMonths     int             `json:"tenureMonths"`
	DisbursementDate string          `json:"disbursementDate,omitempty"`
	DueDate          string          `json:"dueDate,omitempty"`
	SavingsAmount    decimal.Decimal `json:"savingsAmount,omitempty"`
	IsNewMember      bool            `json:"isNewMember,omitempty"`
}

// RecordPaymentRequest carries one incoming payment of any kind.
type RecordPaymentRequest struct {
	MemberID    string          `json:"memberId"`
	LoanID      string          `json:"loanId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"type"`
	Method      string          `json:"method,omitempty"`
	Reference   string          `json:"referenceNumber,omitempty"`
	EMINumbers  []int           `json:"emiNumbers,omitempty"`
	PaymentDate string          `json:"paymentDate,omitempty"` // YYYY-MM-DD, empty = today
	Remarks     string          `json:"remarks,omitempty"`
}

// RegisterMemberRequest carries a new member's details.
type RegisterMemberRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
}

// SavingsTransactionRequest deposits into or withdraws from a savings
// account.
type SavingsTransactionRequest struct {
	MemberID string          `json:"memberId"`
	Amount   decimal.Decimal `json:"amount"`
	Remarks  string          `json:"remarks,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanResponse is the external representation of a loan, schedule included.
type LoanResponse struct {
	Loan model.Loan `json:"loan"`
	// NextEMI is the earliest pending installment, when one exists.
	NextEMI *model.Installment `json:"nextEMI,omitempty"`
}

// LoanQuoteResponse is a schedule preview for a prospective loan.
type LoanQuoteResponse struct {
	LoanAmount        decimal.Decimal          `json:"loanAmount"`
	TenureMonths      int                      `json:"tenureMonths"`
	InterestRate      decimal.Decimal          `json:"interestRate"`
	Schedule          []model.Installment      `json:"schedule"`
	Summary           model.LoanSummary        `json:"summary"`
	InitialCollection engine.InitialCollection `json:"initialCollection"`
}

// PaymentResponse reports a recorded payment and the loan state after it.
type PaymentResponse struct {
	Payment  model.Payment `json:"payment"`
	Loan     *model.Loan   `json:"loan,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// DueInstallment pairs an installment with its loan and member for due and
// overdue reports.
type DueInstallment struct {
	LoanID      string            `json:"loanId"`
	MemberID    string            `json:"memberId"`
	MemberName  string            `json:"memberName,omitempty"`
	Installment model.Installment `json:"installment"`
	// DaysOverdue is zero for upcoming dues.
	DaysOverdue int `json:"daysOverdue,omitempty"`
}

// LoanStatsResponse aggregates the loan book.
type LoanStatsResponse struct {
	TotalLoans          int             `json:"totalLoans"`
	ActiveLoans         int             `json:"activeLoans"`
	ClosedLoans         int             `json:"closedLoans"`
	TotalDisbursed      decimal.Decimal `json:"totalDisbursed"`
	TotalOutstanding    decimal.Decimal `json:"totalOutstanding"`
	OverdueInstallments int             `json:"overdueInstallments"`
	OverdueAmount       decimal.Decimal `json:"overdueAmount"`
}

// PaymentStatsResponse aggregates collections over a period.
type PaymentStatsResponse struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	PaymentCount   int             `json:"paymentCount"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	TotalPrincipal decimal.Decimal `json:"totalPrincipal"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalSavings   decimal.Decimal `json:"totalSavings"`
	TotalLateFees  decimal.Decimal `json:"totalLateFees"`
	ByKind         map[string]int  `json:"byKind"`
}

// EligibilityResponse reports whether a member may take a new loan and
// which rules failed if not.
type EligibilityResponse struct {
	MemberID string   `json:"memberId"`
	Eligible bool     `json:"eligible"`
	Issues   []string `json:"issues,omitempty"`
}

// MemberResponse is the external representation of a member with their
// positions.
type MemberResponse struct {
	Member  model.Member          `json:"member"`
	Loans   []model.Loan          `json:"loans,omitempty"`
	Savings *model.SavingsAccount `json:"savings,omitempty"`
}
