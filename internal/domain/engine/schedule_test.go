package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// testSocietyConfig is the default policy with a single flat 1.5% monthly
// reducing-balance rate, which keeps the expected numbers easy to follow.
func testSocietyConfig() config.SocietyConfig {
	cfg := config.DefaultSocietyConfig()
	cfg.Loan.Interest = config.InterestConfig{
		Model:       valueobject.ReducingBalance,
		RateUnit:    valueobject.RateMonthly,
		DefaultRate: 1.5,
	}
	cfg.Loan.EMI.DefaultDueDay = 5
	return cfg
}

func assertDec(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Equal(decimal.NewFromInt(want)),
		"expected %d, got %s: %v", want, got, msgAndArgs)
}

func TestGenerateReducingBalanceSchedule(t *testing.T) {
	gen := NewScheduleGenerator(testSocietyConfig())

	schedule, err := gen.Generate(ScheduleParams{
		LoanAmount:       decimal.NewFromInt(120000),
		TenureMonths:     12,
		DisbursementDate: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, 1, first.EMINumber)
	assert.Equal(t, time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC), first.DueDate)
	assertDec(t, 120000, first.OpeningBalance)
	assertDec(t, 10000, first.MonthlyPrincipal)
	assertDec(t, 1800, first.MonthlyInterest)
	assertDec(t, 200, first.MonthlySavings)
	assertDec(t, 12000, first.TotalPayment)
	assert.Equal(t, valueobject.InstallmentPending, first.PaymentStatus)

	// Interest declines with the outstanding balance.
	assertDec(t, 1650, schedule[1].MonthlyInterest)
	assertDec(t, 150, schedule[11].MonthlyInterest)

	// Balances chain: each closing is the next opening, the last is zero.
	for i := 1; i < len(schedule); i++ {
		assert.True(t, schedule[i].OpeningBalance.Equal(schedule[i-1].ClosingBalance),
			"EMI %d opening does not match prior closing", schedule[i].EMINumber)
	}
	assertDec(t, 0, schedule[11].ClosingBalance)
}

func TestGenerateFinalInstallmentAbsorbsRounding(t *testing.T) {
	gen := NewScheduleGenerator(testSocietyConfig())

	schedule, err := gen.Generate(ScheduleParams{
		LoanAmount:       decimal.NewFromInt(100000),
		TenureMonths:     3,
		DisbursementDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	assertDec(t, 33333, schedule[0].MonthlyPrincipal)
	assertDec(t, 33333, schedule[1].MonthlyPrincipal)
	assertDec(t, 33334, schedule[2].MonthlyPrincipal)
	assertDec(t, 0, schedule[2].ClosingBalance)

	total := decimal.Zero
	for _, inst := range schedule {
		total = total.Add(inst.MonthlyPrincipal)
	}
	assertDec(t, 100000, total, "principal must sum to the loan amount")
}

func TestGenerateFlatRate(t *testing.T) {
	cfg := testSocietyConfig()
	cfg.Loan.Interest.Model = valueobject.FlatRate
	gen := NewScheduleGenerator(cfg)

	schedule, err := gen.Generate(ScheduleParams{
		LoanAmount:       decimal.NewFromInt(120000),
		TenureMonths:     12,
		DisbursementDate: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Flat rate charges on the original principal every month.
	for _, inst := range schedule {
		assertDec(t, 1800, inst.MonthlyInterest, "EMI", inst.EMINumber)
	}
}

func TestGenerateDueDayResolution(t *testing.T) {
	gen := NewScheduleGenerator(testSocietyConfig())
	disb := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate string
		wantDay int
	}{
		{"full date", "2026-02-10", 10},
		{"numeric day", "7", 7},
		{"empty falls back to default", "", 5},
		{"garbage falls back to default", "tomorrow", 5},
		{"out of range falls back to default", "45", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := gen.Generate(ScheduleParams{
				LoanAmount:       decimal.NewFromInt(60000),
				TenureMonths:     6,
				DisbursementDate: disb,
				DueDate:          tt.dueDate,
			})
			require.NoError(t, err)
			for _, inst := range schedule {
				assert.Equal(t, tt.wantDay, inst.DueDate.Day())
			}
		})
	}
}

func TestGenerateSavingsDefaultAndOverride(t *testing.T) {
	gen := NewScheduleGenerator(testSocietyConfig())
	disb := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	schedule, err := gen.Generate(ScheduleParams{
		LoanAmount:       decimal.NewFromInt(60000),
		TenureMonths:     6,
		DisbursementDate: disb,
		SavingsAmount:    decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assertDec(t, 500, schedule[0].MonthlySavings)

	schedule, err = gen.Generate(ScheduleParams{
		LoanAmount:       decimal.NewFromInt(60000),
		TenureMonths:     6,
		DisbursementDate: disb,
	})
	require.NoError(t, err)
	assertDec(t, 200, schedule[0].MonthlySavings)
}

func TestGenerateValidation(t *testing.T) {
	gen := NewScheduleGenerator(testSocietyConfig())
	disb := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		params ScheduleParams
	}{
		{"zero amount", ScheduleParams{TenureMonths: 12, DisbursementDate: disb}},
		{"negative amount", ScheduleParams{LoanAmount: decimal.NewFromInt(-1), TenureMonths: 12, DisbursementDate: disb}},
		{"zero tenure", ScheduleParams{LoanAmount: decimal.NewFromInt(60000), DisbursementDate: disb}},
		{"missing disbursement date", ScheduleParams{LoanAmount: decimal.NewFromInt(60000), TenureMonths: 12}},
		{"negative savings", ScheduleParams{LoanAmount: decimal.NewFromInt(60000), TenureMonths: 12, DisbursementDate: disb, SavingsAmount: decimal.NewFromInt(-5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.params)
			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestSummarize(t *testing.T) {
	gen := NewScheduleGenerator(testSocietyConfig())

	schedule, err := gen.Generate(ScheduleParams{
		LoanAmount:       decimal.NewFromInt(120000),
		TenureMonths:     12,
		DisbursementDate: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	summary := Summarize(schedule)
	assertDec(t, 120000, summary.TotalPrincipal)
	// 1.5% per month on a balance declining by 10000: 1800+1650+...+150.
	assertDec(t, 11700, summary.TotalInterest)
	assertDec(t, 2400, summary.TotalSavings)
	assertDec(t, 134100, summary.TotalPayable)
	assertDec(t, 12000, summary.MonthlyEMI)
	assert.Equal(t, 12, summary.EMICount)
}
