package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// LoanReportsUseCase produces the due, overdue and portfolio reports the
// collection agents work from.
type LoanReportsUseCase struct {
	loanRepo   port.LoanRepository
	memberRepo port.MemberRepository
}

// NewLoanReportsUseCase wires dependencies.
func NewLoanReportsUseCase(loanRepo port.LoanRepository, memberRepo port.MemberRepository) *LoanReportsUseCase {
	return &LoanReportsUseCase{loanRepo: loanRepo, memberRepo: memberRepo}
}

// Overdue returns every pending installment past its due date across all
// active loans, with how many days it has slipped.
func (uc *LoanReportsUseCase) Overdue(ctx context.Context, today time.Time) ([]dto.DueInstallment, error) {
	loans, err := uc.activeLoans(ctx)
	if err != nil {
		return nil, err
	}

	day := model.DateOnly(today)
	var out []dto.DueInstallment
	for _, loan := range loans {
		name := uc.memberName(ctx, loan.MemberID)
		for _, inst := range loan.OverdueInstallments(today) {
			days := int(day.Sub(model.DateOnly(inst.DueDate)).Hours() / 24)
			out = append(out, dto.DueInstallment{
				LoanID:      loan.LoanID,
				MemberID:    loan.MemberID,
				MemberName:  name,
				Installment: inst,
				DaysOverdue: days,
			})
		}
	}
	return out, nil
}

// DueToday returns installments falling due on the given day.
func (uc *LoanReportsUseCase) DueToday(ctx context.Context, today time.Time) ([]dto.DueInstallment, error) {
	return uc.dueBetween(ctx, today, today)
}

// UpcomingDues returns installments due within the given number of days
// from today, today included.
func (uc *LoanReportsUseCase) UpcomingDues(ctx context.Context, today time.Time, days int) ([]dto.DueInstallment, error) {
	if days <= 0 {
		return nil, errs.Validation("days must be positive")
	}
	return uc.dueBetween(ctx, today, today.AddDate(0, 0, days))
}

// Stats aggregates the whole loan book.
func (uc *LoanReportsUseCase) Stats(ctx context.Context, today time.Time) (dto.LoanStatsResponse, error) {
	loans, err := uc.loanRepo.List(ctx, port.LoanFilter{})
	if err != nil {
		return dto.LoanStatsResponse{}, fmt.Errorf("list loans: %w", err)
	}

	stats := dto.LoanStatsResponse{
		TotalDisbursed:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
		OverdueAmount:    decimal.Zero,
	}
	for _, loan := range loans {
		stats.TotalLoans++
		stats.TotalDisbursed = stats.TotalDisbursed.Add(loan.LoanAmount)
		switch loan.Status {
		case valueobject.LoanStatusActive:
			stats.ActiveLoans++
			stats.TotalOutstanding = stats.TotalOutstanding.Add(loan.OutstandingBalance)
		case valueobject.LoanStatusClosed:
			stats.ClosedLoans++
		}
		for _, inst := range loan.OverdueInstallments(today) {
			stats.OverdueInstallments++
			stats.OverdueAmount = stats.OverdueAmount.Add(inst.RemainingDue())
		}
	}
	return stats, nil
}

func (uc *LoanReportsUseCase) dueBetween(ctx context.Context, from, to time.Time) ([]dto.DueInstallment, error) {
	loans, err := uc.activeLoans(ctx)
	if err != nil {
		return nil, err
	}

	var out []dto.DueInstallment
	for _, loan := range loans {
		name := uc.memberName(ctx, loan.MemberID)
		for _, inst := range loan.DueBetween(from, to) {
			out = append(out, dto.DueInstallment{
				LoanID:      loan.LoanID,
				MemberID:    loan.MemberID,
				MemberName:  name,
				Installment: inst,
			})
		}
	}
	return out, nil
}

func (uc *LoanReportsUseCase) activeLoans(ctx context.Context) ([]model.Loan, error) {
	loans, err := uc.loanRepo.List(ctx, port.LoanFilter{Status: valueobject.LoanStatusActive})
	if err != nil {
		return nil, fmt.Errorf("list active loans: %w", err)
	}
	return loans, nil
}

// memberName is best effort enrichment; a missing member never fails the
// report.
func (uc *LoanReportsUseCase) memberName(ctx context.Context, memberID string) string {
	member, err := uc.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return ""
	}
	return member.Name
}
