package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/usecase"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/event"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

func validCreateLoanRequest() dto.CreateLoanRequest {
	return dto.CreateLoanRequest{
		MemberID:         testMemberUUID,
		LoanAmount:       decimal.NewFromInt(120000),
		TenureMonths:     12,
		DisbursementDate: "2026-01-15",
	}
}

func TestCreateLoan_Execute(t *testing.T) {
	t.Run("disburses a loan with a full schedule", func(t *testing.T) {
		loanRepo := &mockLoanRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewCreateLoanUseCase(loanRepo, memberRepoWith(activeMember()),
			&mockSequences{}, publisher, testSociety(), testLogger())

		resp, err := uc.Execute(context.Background(), validCreateLoanRequest())
		require.NoError(t, err)

		loan := resp.Loan
		assert.Equal(t, "LOAN-2026-00001", loan.LoanID)
		assert.Equal(t, valueobject.LoanStatusActive, loan.Status)
		assert.Len(t, loan.Schedule, 12)
		assertAmount(t, 120000, loan.OutstandingBalance)
		assertAmount(t, 12000, loan.Summary.MonthlyEMI)
		assert.True(t, loan.InterestRate.Equal(decimal.RequireFromString("1.5")))

		require.NotNil(t, resp.NextEMI)
		assert.Equal(t, 1, resp.NextEMI.EMINumber)

		require.Len(t, loanRepo.savedLoans, 1)
		require.NotEmpty(t, publisher.publishedEvents)
		disbursed, ok := publisher.publishedEvents[0].(event.LoanDisbursed)
		require.True(t, ok)
		assert.Equal(t, "society.loan.disbursed", disbursed.EventType())
	})

	t.Run("rejects a member with an active loan", func(t *testing.T) {
		loanRepo := &mockLoanRepository{
			listFunc: func(_ context.Context, filter port.LoanFilter) ([]model.Loan, error) {
				require.Equal(t, valueobject.LoanStatusActive, filter.Status)
				return []model.Loan{activeLoan(t)}, nil
			},
		}

		uc := usecase.NewCreateLoanUseCase(loanRepo, memberRepoWith(activeMember()),
			&mockSequences{}, &mockEventPublisher{}, testSociety(), testLogger())

		_, err := uc.Execute(context.Background(), validCreateLoanRequest())
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "active loan")
	})

	t.Run("rejects an inactive member", func(t *testing.T) {
		member := activeMember()
		member.Status = valueobject.MemberTerminated

		uc := usecase.NewCreateLoanUseCase(&mockLoanRepository{}, memberRepoWith(member),
			&mockSequences{}, &mockEventPublisher{}, testSociety(), testLogger())

		_, err := uc.Execute(context.Background(), validCreateLoanRequest())
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("enforces policy limits", func(t *testing.T) {
		uc := usecase.NewCreateLoanUseCase(&mockLoanRepository{}, memberRepoWith(activeMember()),
			&mockSequences{}, &mockEventPublisher{}, testSociety(), testLogger())

		req := validCreateLoanRequest()
		req.LoanAmount = decimal.NewFromInt(1000) // below society minimum
		req.TenureMonths = 2                      // below minimum tenure

		_, err := uc.Execute(context.Background(), req)
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Issues, 2)
	})

	t.Run("fails when the member does not exist", func(t *testing.T) {
		uc := usecase.NewCreateLoanUseCase(&mockLoanRepository{}, &mockMemberRepository{},
			&mockSequences{}, &mockEventPublisher{}, testSociety(), testLogger())

		_, err := uc.Execute(context.Background(), validCreateLoanRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "find member")
	})
}

func TestCalculateLoan_Execute(t *testing.T) {
	uc := usecase.NewCalculateLoanUseCase(testSociety())

	resp, err := uc.Execute(context.Background(), dto.CalculateLoanRequest{
		LoanAmount:       decimal.NewFromInt(120000),
		TenureMonths:     12,
		DisbursementDate: "2026-01-15",
		IsNewMember:      true,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Schedule, 12)
	assertAmount(t, 134100, resp.Summary.TotalPayable)
	assert.True(t, resp.InterestRate.Equal(decimal.RequireFromString("1.5")))

	// New members pay membership, share capital, processing fee and the
	// first savings installment up front.
	assertAmount(t, 200, resp.InitialCollection.MembershipFee)
	assertAmount(t, 6000, resp.InitialCollection.ShareCapital)
	assertAmount(t, 1200, resp.InitialCollection.ProcessingFee)
	assertAmount(t, 7600, resp.InitialCollection.Total)
}

func TestCalculateLoan_RejectsAmountOutsideLimits(t *testing.T) {
	uc := usecase.NewCalculateLoanUseCase(testSociety())

	for _, amount := range []int64{1000, 20000000} {
		_, err := uc.Execute(context.Background(), dto.CalculateLoanRequest{
			LoanAmount:   decimal.NewFromInt(amount),
			TenureMonths: 12,
		})
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr, "amount %d", amount)
	}
}
