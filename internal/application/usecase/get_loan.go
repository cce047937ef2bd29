package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
)

// GetLoanUseCase retrieves one loan by storage id or business id.
type GetLoanUseCase struct {
	loanRepo port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo}
}

// Execute fetches the loan and enriches it with the next pending EMI.
func (uc *GetLoanUseCase) Execute(ctx context.Context, id string) (dto.LoanResponse, error) {
	if id == "" {
		return dto.LoanResponse{}, errs.Validation("loan id is required")
	}

	var loan model.Loan
	var err error
	if _, parseErr := uuid.Parse(id); parseErr == nil {
		loan, err = uc.loanRepo.FindByID(ctx, id)
	} else {
		loan, err = uc.loanRepo.FindByLoanID(ctx, id)
	}
	if err != nil {
		return dto.LoanResponse{}, err
	}

	resp := dto.LoanResponse{Loan: loan}
	if next, ok := loan.FirstUnpaid(); ok {
		resp.NextEMI = &next
	}
	return resp, nil
}
