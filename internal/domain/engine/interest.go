// Package engine holds the financial calculation engines: interest,
// schedule generation, initial collection, payment allocation, foreclosure
// and summary roll-up. Engines are pure: they take already-loaded values,
// never perform I/O, and return new state for the caller to persist.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// InterestCalculator computes periodic interest under the configured model.
type InterestCalculator struct {
	cfg config.InterestConfig
}

// NewInterestCalculator creates a calculator bound to the given interest
// policy.
func NewInterestCalculator(cfg config.InterestConfig) *InterestCalculator {
	return &InterestCalculator{cfg: cfg}
}

// Rate resolves the interest rate (percent per rate unit) for a loan
// amount. Configured slabs are scanned in order and the first match wins;
// an unmatched amount falls back to the default rate.
func (c *InterestCalculator) Rate(loanAmount decimal.Decimal) decimal.Decimal {
	for _, slab := range c.cfg.Slabs {
		min := decimal.NewFromInt(slab.MinAmount)
		if loanAmount.LessThan(min) {
			continue
		}
		if slab.MaxAmount == 0 || loanAmount.LessThanOrEqual(decimal.NewFromInt(slab.MaxAmount)) {
			return decimal.NewFromFloat(slab.Rate)
		}
	}
	return decimal.NewFromFloat(c.cfg.DefaultRate)
}

// MonthlyInterest computes one month's interest for an installment. Under
// reducing balance the base is the outstanding balance; under flat rate it
// is the original principal. The result is rounded to whole currency
// units, the schedule carries no sub-unit fractions.
func (c *InterestCalculator) MonthlyInterest(outstanding, principal decimal.Decimal) decimal.Decimal {
	rate := c.Rate(principal)

	base := outstanding
	if c.cfg.Model == valueobject.FlatRate {
		base = principal
	}

	monthlyRate := rate
	if c.cfg.RateUnit == valueobject.RateAnnual {
		monthlyRate = rate.Div(twelve)
	}

	return base.Mul(monthlyRate).Div(hundred).Round(0)
}
