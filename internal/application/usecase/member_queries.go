package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
)

// MemberQueriesUseCase serves member lookups and listings.
type MemberQueriesUseCase struct {
	memberRepo  port.MemberRepository
	loanRepo    port.LoanRepository
	savingsRepo port.SavingsRepository
}

// NewMemberQueriesUseCase wires dependencies.
func NewMemberQueriesUseCase(
	memberRepo port.MemberRepository,
	loanRepo port.LoanRepository,
	savingsRepo port.SavingsRepository,
) *MemberQueriesUseCase {
	return &MemberQueriesUseCase{
		memberRepo:  memberRepo,
		loanRepo:    loanRepo,
		savingsRepo: savingsRepo,
	}
}

// Get returns a member together with their loans and savings account.
func (uc *MemberQueriesUseCase) Get(ctx context.Context, id string) (dto.MemberResponse, error) {
	if id == "" {
		return dto.MemberResponse{}, errs.Validation("member id is required")
	}

	var member model.Member
	var err error
	if _, parseErr := uuid.Parse(id); parseErr == nil {
		member, err = uc.memberRepo.FindByID(ctx, id)
	} else {
		member, err = uc.memberRepo.FindByMemberID(ctx, id)
	}
	if err != nil {
		return dto.MemberResponse{}, err
	}

	loans, err := uc.loanRepo.List(ctx, port.LoanFilter{MemberID: member.ID})
	if err != nil {
		return dto.MemberResponse{}, fmt.Errorf("list member loans: %w", err)
	}

	resp := dto.MemberResponse{Member: member, Loans: loans}
	account, err := uc.savingsRepo.FindByMemberID(ctx, member.ID)
	if err == nil {
		resp.Savings = &account
	} else {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			return dto.MemberResponse{}, fmt.Errorf("find savings account: %w", err)
		}
	}
	return resp, nil
}

// List returns all members.
func (uc *MemberQueriesUseCase) List(ctx context.Context) ([]model.Member, error) {
	return uc.memberRepo.List(ctx)
}
