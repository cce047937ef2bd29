package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/usecase"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

func TestCheckEligibility(t *testing.T) {
	t.Run("active member without a loan is eligible", func(t *testing.T) {
		uc := usecase.NewCheckEligibilityUseCase(
			&mockLoanRepository{}, memberRepoWith(activeMember()), testSociety())

		resp, err := uc.Execute(context.Background(), testMemberUUID, decimal.NewFromInt(120000))
		require.NoError(t, err)
		assert.True(t, resp.Eligible)
		assert.Empty(t, resp.Issues)
		assert.Equal(t, "MEM-00001", resp.MemberID)
	})

	t.Run("active loan blocks a new one", func(t *testing.T) {
		loanRepo := &mockLoanRepository{
			listFunc: func(_ context.Context, filter port.LoanFilter) ([]model.Loan, error) {
				require.Equal(t, testMemberUUID, filter.MemberID)
				return []model.Loan{activeLoan(t)}, nil
			},
		}
		uc := usecase.NewCheckEligibilityUseCase(loanRepo, memberRepoWith(activeMember()), testSociety())

		resp, err := uc.Execute(context.Background(), testMemberUUID, decimal.Zero)
		require.NoError(t, err)
		assert.False(t, resp.Eligible)
		require.Len(t, resp.Issues, 1)
		assert.Contains(t, resp.Issues[0], "LOAN-2026-00001")
	})

	t.Run("inactive member and out-of-range amount are both reported", func(t *testing.T) {
		member := activeMember()
		member.Status = valueobject.MemberTerminated
		uc := usecase.NewCheckEligibilityUseCase(
			&mockLoanRepository{}, memberRepoWith(member), testSociety())

		resp, err := uc.Execute(context.Background(), testMemberUUID, decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.False(t, resp.Eligible)
		assert.Len(t, resp.Issues, 2)
	})

	t.Run("unknown member is not found", func(t *testing.T) {
		uc := usecase.NewCheckEligibilityUseCase(
			&mockLoanRepository{}, &mockMemberRepository{}, testSociety())

		_, err := uc.Execute(context.Background(), "no-such-member", decimal.Zero)
		var nf *errs.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}
