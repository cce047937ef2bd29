package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
)

func TestInitialCollectionNewMember(t *testing.T) {
	calc := NewInitialCollectionCalculator(config.DefaultSocietyConfig())

	got := calc.Calculate(decimal.NewFromInt(120000), true)

	assertDec(t, 200, got.MembershipFee)
	assertDec(t, 6000, got.ShareCapital)
	assertDec(t, 1200, got.ProcessingFee) // 1% of 120000
	assertDec(t, 200, got.Savings)
	assertDec(t, 7600, got.Total)
}

func TestInitialCollectionExistingMember(t *testing.T) {
	calc := NewInitialCollectionCalculator(config.DefaultSocietyConfig())

	got := calc.Calculate(decimal.NewFromInt(120000), false)

	assertDec(t, 0, got.MembershipFee)
	assertDec(t, 0, got.ShareCapital)
	assertDec(t, 1200, got.ProcessingFee)
	assertDec(t, 200, got.Savings)
	assertDec(t, 1400, got.Total)
}

func TestProcessingFeeMinClamp(t *testing.T) {
	calc := NewInitialCollectionCalculator(config.DefaultSocietyConfig())

	// 1% of 30000 is 300, below the 500 floor.
	assertDec(t, 500, calc.ProcessingFee(decimal.NewFromInt(30000)))
}

func TestProcessingFeeMaxClamp(t *testing.T) {
	cfg := config.DefaultSocietyConfig()
	cfg.Fees.ProcessingFee.MaxAmount = 5000
	calc := NewInitialCollectionCalculator(cfg)

	// 1% of 1000000 is 10000, above the 5000 cap.
	assertDec(t, 5000, calc.ProcessingFee(decimal.NewFromInt(1000000)))
}

func TestProcessingFeeFixed(t *testing.T) {
	cfg := config.DefaultSocietyConfig()
	cfg.Fees.ProcessingFee = config.ProcessingFee{Type: "fixed", Value: 750}
	calc := NewInitialCollectionCalculator(cfg)

	assertDec(t, 750, calc.ProcessingFee(decimal.NewFromInt(1000000)))
}
