package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// PaymentQueriesUseCase serves payment lookups, listings, receipts and
// collection statistics.
type PaymentQueriesUseCase struct {
	paymentRepo port.PaymentRepository
	memberRepo  port.MemberRepository
	sequences   port.Sequences
}

// NewPaymentQueriesUseCase wires dependencies.
func NewPaymentQueriesUseCase(
	paymentRepo port.PaymentRepository,
	memberRepo port.MemberRepository,
	sequences port.Sequences,
) *PaymentQueriesUseCase {
	return &PaymentQueriesUseCase{
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		sequences:   sequences,
	}
}

// Get resolves a payment by storage id or business PAY-... id.
func (uc *PaymentQueriesUseCase) Get(ctx context.Context, id string) (model.Payment, error) {
	if id == "" {
		return model.Payment{}, errs.Validation("payment id is required")
	}
	if _, err := uuid.Parse(id); err == nil {
		return uc.paymentRepo.FindByID(ctx, id)
	}
	return uc.paymentRepo.FindByPaymentID(ctx, id)
}

// List returns payments matching the optional member, loan and kind
// filters.
func (uc *PaymentQueriesUseCase) List(ctx context.Context, memberID, loanID, kind string) ([]model.Payment, error) {
	filter := port.PaymentFilter{MemberID: memberID, LoanID: loanID}
	if kind != "" {
		parsed, err := valueobject.ParsePaymentKind(kind)
		if err != nil {
			return nil, errs.Validation(err.Error())
		}
		filter.Kind = parsed
	}
	return uc.paymentRepo.List(ctx, filter)
}

// Receipt builds a printable receipt for a payment, minting a receipt
// number on first issue.
func (uc *PaymentQueriesUseCase) Receipt(ctx context.Context, paymentID string) (model.Receipt, error) {
	payment, err := uc.Get(ctx, paymentID)
	if err != nil {
		return model.Receipt{}, err
	}

	memberName := ""
	if member, err := uc.memberRepo.FindByID(ctx, payment.MemberID); err == nil {
		memberName = member.Name
	}

	seq, err := uc.sequences.Next(ctx, "receipts")
	if err != nil {
		return model.Receipt{}, fmt.Errorf("next receipt sequence: %w", err)
	}

	return model.Receipt{
		ReceiptNumber: fmt.Sprintf("REC-%d-%06d", payment.Date.Year(), seq),
		PaymentID:     payment.PaymentID,
		MemberID:      payment.MemberID,
		MemberName:    memberName,
		LoanID:        payment.LoanID,
		Amount:        payment.Amount,
		Date:          payment.Date,
		Method:        payment.Method,
		Kind:          payment.Kind,
		Reference:     payment.Reference,
		Principal:     payment.PrincipalAmount,
		Interest:      payment.InterestAmount,
		Savings:       payment.SavingsAmount,
		LateFee:       payment.LateCharges,
		Remarks:       payment.Remarks,
	}, nil
}

// Stats aggregates collections within [from, to].
func (uc *PaymentQueriesUseCase) Stats(ctx context.Context, from, to time.Time) (dto.PaymentStatsResponse, error) {
	if to.Before(from) {
		return dto.PaymentStatsResponse{}, errs.Validation("stats period end precedes start")
	}

	payments, err := uc.paymentRepo.List(ctx, port.PaymentFilter{})
	if err != nil {
		return dto.PaymentStatsResponse{}, fmt.Errorf("list payments: %w", err)
	}

	lo, hi := model.DateOnly(from), model.DateOnly(to)
	stats := dto.PaymentStatsResponse{
		From:           lo,
		To:             hi,
		TotalCollected: decimal.Zero,
		TotalPrincipal: decimal.Zero,
		TotalInterest:  decimal.Zero,
		TotalSavings:   decimal.Zero,
		TotalLateFees:  decimal.Zero,
		ByKind:         make(map[string]int),
	}
	for _, p := range payments {
		d := model.DateOnly(p.Date)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		stats.PaymentCount++
		stats.TotalCollected = stats.TotalCollected.Add(p.Amount)
		stats.TotalPrincipal = stats.TotalPrincipal.Add(p.PrincipalAmount)
		stats.TotalInterest = stats.TotalInterest.Add(p.InterestAmount)
		stats.TotalSavings = stats.TotalSavings.Add(p.SavingsAmount)
		stats.TotalLateFees = stats.TotalLateFees.Add(p.LateCharges)
		stats.ByKind[string(p.Kind)]++
	}
	return stats, nil
}
