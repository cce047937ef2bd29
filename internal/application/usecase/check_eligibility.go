package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// CheckEligibilityUseCase reports whether a member may take a new loan,
// without reserving or persisting anything.
type CheckEligibilityUseCase struct {
	loanRepo   port.LoanRepository
	memberRepo port.MemberRepository
	society    config.SocietyConfig
}

func NewCheckEligibilityUseCase(
	loanRepo port.LoanRepository,
	memberRepo port.MemberRepository,
	society config.SocietyConfig,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		society:    society,
	}
}

// Execute collects every failed rule so the caller sees all of them at once.
// An unknown member is a not-found error rather than an ineligibility.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, memberID string, amount decimal.Decimal) (dto.EligibilityResponse, error) {
	member, err := uc.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("find member: %w", err)
	}

	var issues []string

	if member.Status != valueobject.MemberActive {
		issues = append(issues, fmt.Sprintf("member %s is not active", member.MemberID))
	}

	active, err := uc.loanRepo.List(ctx, port.LoanFilter{
		MemberID: member.ID,
		Status:   valueobject.LoanStatusActive,
	})
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("list active loans: %w", err)
	}
	if len(active) > 0 {
		issues = append(issues, fmt.Sprintf("member %s already has an active loan %s",
			member.MemberID, active[0].LoanID))
	}

	if amount.IsPositive() {
		min := decimal.NewFromInt(uc.society.Loan.MinAmount)
		max := decimal.NewFromInt(uc.society.Loan.MaxAmount)
		if amount.LessThan(min) || amount.GreaterThan(max) {
			issues = append(issues, fmt.Sprintf("loan amount must be between %s and %s", min, max))
		}
	}

	return dto.EligibilityResponse{
		MemberID: member.MemberID,
		Eligible: len(issues) == 0,
		Issues:   issues,
	}, nil
}
