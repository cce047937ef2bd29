package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// SavingsAccount holds a member's savings balance and the interest accrued
// on it. Balances never go negative.
type SavingsAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"` // human-readable, e.g. SAV-000003
	MemberID  string `json:"memberId"`

	Balance        decimal.Decimal `json:"balance"`
	InterestEarned decimal.Decimal `json:"interestEarned"`

	LastInterestCalculation time.Time                 `json:"lastInterestCalculation"`
	LastTransactionDate     *time.Time                `json:"lastTransactionDate,omitempty"`
	Status                  valueobject.SavingsStatus `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
