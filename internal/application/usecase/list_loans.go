package usecase

import (
	"context"
	"fmt"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// ListLoansUseCase lists loans with optional member and status filters.
type ListLoansUseCase struct {
	loanRepo port.LoanRepository
}

// NewListLoansUseCase wires dependencies.
func NewListLoansUseCase(loanRepo port.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{loanRepo: loanRepo}
}

// Execute lists matching loans, each enriched with its next unpaid EMI.
func (uc *ListLoansUseCase) Execute(ctx context.Context, memberID, status string) ([]dto.LoanResponse, error) {
	filter := port.LoanFilter{MemberID: memberID}
	switch status {
	case "":
	case string(valueobject.LoanStatusActive), string(valueobject.LoanStatusClosed):
		filter.Status = valueobject.LoanStatus(status)
	default:
		return nil, errs.Validationf("invalid loan status filter %q", status)
	}

	loans, err := uc.loanRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	out := make([]dto.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		resp := dto.LoanResponse{Loan: loan}
		if next, ok := loan.FirstUnpaid(); ok {
			resp.NextEMI = &next
		}
		out = append(out, resp)
	}
	return out, nil
}
