package engine

import (
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
)

// InitialCollection is the breakdown of one-time charges collected at loan
// creation. Zero-valued components were not charged.
type InitialCollection struct {
	MembershipFee decimal.Decimal `json:"membershipFee"`
	ShareCapital  decimal.Decimal `json:"shareCapital"`
	ProcessingFee decimal.Decimal `json:"processingFee"`
	Savings       decimal.Decimal `json:"savings"`
	Total         decimal.Decimal `json:"total"`
}

// InitialCollectionCalculator computes the charges due when a loan is
// disbursed.
type InitialCollectionCalculator struct {
	fees    config.FeeConfig
	savings config.SavingsConfig
}

// NewInitialCollectionCalculator wires a calculator from the society
// policy.
func NewInitialCollectionCalculator(cfg config.SocietyConfig) *InitialCollectionCalculator {
	return &InitialCollectionCalculator{fees: cfg.Fees, savings: cfg.Savings}
}

// Calculate returns the one-time collection breakdown. Membership fee and
// share capital apply only to new members and only when their config marks
// them mandatory. The first savings installment is included when savings
// are mandatory with a loan.
func (c *InitialCollectionCalculator) Calculate(loanAmount decimal.Decimal, isNewMember bool) InitialCollection {
	var out InitialCollection

	if isNewMember && c.fees.Membership.Mandatory {
		out.MembershipFee = decimal.NewFromInt(c.fees.Membership.Amount)
	}
	if isNewMember && c.fees.ShareCapital.Mandatory {
		out.ShareCapital = decimal.NewFromInt(c.fees.ShareCapital.Amount)
	}

	out.ProcessingFee = c.ProcessingFee(loanAmount)

	if c.savings.MandatoryWithLoan {
		out.Savings = decimal.NewFromInt(c.savings.DefaultAmount)
	}

	out.Total = out.MembershipFee.Add(out.ShareCapital).Add(out.ProcessingFee).Add(out.Savings)
	return out
}

// ProcessingFee computes the disbursement processing fee: a percentage of
// the loan amount clamped to the configured min/max, or a fixed value.
func (c *InitialCollectionCalculator) ProcessingFee(loanAmount decimal.Decimal) decimal.Decimal {
	fee := c.fees.ProcessingFee
	if fee.Type != "percentage" {
		return decimal.NewFromFloat(fee.Value)
	}

	amount := loanAmount.Mul(decimal.NewFromFloat(fee.Value)).Div(hundred).Round(0)
	if fee.MinAmount > 0 {
		if min := decimal.NewFromInt(fee.MinAmount); amount.LessThan(min) {
			amount = min
		}
	}
	if fee.MaxAmount > 0 {
		if max := decimal.NewFromInt(fee.MaxAmount); amount.GreaterThan(max) {
			amount = max
		}
	}
	return amount
}
