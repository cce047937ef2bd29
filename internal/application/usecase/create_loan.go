// Package usecase contains the application services. Each use case is a
// struct wired with ports plus an Execute method; all orchestration of
// repositories, engines and event publishing happens here.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/engine"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/event"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

const dateLayout = "2006-01-02"

// CreateLoanUseCase disburses a new loan: it validates policy limits,
// generates the EMI schedule, persists the loan and publishes
// LoanDisbursed.
type CreateLoanUseCase struct {
	loanRepo   port.LoanRepository
	memberRepo port.MemberRepository
	sequences  port.Sequences
	publisher  port.EventPublisher
	society    config.SocietyConfig
	scheduler  *engine.ScheduleGenerator
	logger     *slog.Logger
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	loanRepo port.LoanRepository,
	memberRepo port.MemberRepository,
	sequences port.Sequences,
	publisher port.EventPublisher,
	society config.SocietyConfig,
	logger *slog.Logger,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		sequences:  sequences,
		publisher:  publisher,
		society:    society,
		scheduler:  engine.NewScheduleGenerator(society),
		logger:     logger,
	}
}

// Execute creates the loan.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.LoanResponse, error) {
	if err := uc.validate(req); err != nil {
		return dto.LoanResponse{}, err
	}

	member, err := uc.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find member: %w", err)
	}
	if member.Status != valueobject.MemberActive {
		return dto.LoanResponse{}, errs.Validationf("member %s is not active", member.MemberID)
	}

	// One active loan per member.
	active, err := uc.loanRepo.List(ctx, port.LoanFilter{
		MemberID: member.ID,
		Status:   valueobject.LoanStatusActive,
	})
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("list active loans: %w", err)
	}
	if len(active) > 0 {
		return dto.LoanResponse{}, errs.Validationf("member %s already has an active loan %s",
			member.MemberID, active[0].LoanID)
	}

	now := time.Now().UTC()
	disbursement := now
	if req.DisbursementDate != "" {
		disbursement, err = time.Parse(dateLayout, req.DisbursementDate)
		if err != nil {
			return dto.LoanResponse{}, errs.Validationf("invalid disbursement date %q", req.DisbursementDate)
		}
	}

	schedule, err := uc.scheduler.Generate(engine.ScheduleParams{
		LoanAmount:       req.LoanAmount,
		TenureMonths:     req.TenureMonths,
		DisbursementDate: disbursement,
		DueDate:          req.DueDate,
		SavingsAmount:    req.SavingsAmount,
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	seq, err := uc.sequences.Next(ctx, "loans")
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("next loan sequence: %w", err)
	}

	loan := model.Loan{
		ID:                 uuid.New().String(),
		LoanID:             fmt.Sprintf("LOAN-%d-%05d", disbursement.Year(), seq),
		MemberID:           member.ID,
		LoanAmount:         req.LoanAmount,
		TenureMonths:       req.TenureMonths,
		DisbursementDate:   model.DateOnly(disbursement),
		InterestRate:       uc.scheduler.Rate(req.LoanAmount),
		SavingsAmount:      schedule[0].MonthlySavings,
		LateFeeAmount:      decimal.NewFromInt(uc.society.Fees.LateFee.Value),
		Schedule:           schedule,
		Summary:            engine.Summarize(schedule),
		OutstandingBalance: req.LoanAmount,
		Status:             valueobject.LoanStatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	evt := event.NewLoanDisbursed(loan.ID, loan.LoanID, loan.MemberID,
		loan.LoanAmount, loan.TenureMonths, schedule[0].DueDate, loan.Summary.MonthlyEMI)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Warn("publish loan disbursed event failed",
			"loanId", loan.LoanID, "error", err)
	}

	uc.logger.Info("loan disbursed",
		"loanId", loan.LoanID,
		"memberId", member.MemberID,
		"amount", loan.LoanAmount,
		"tenureMonths", loan.TenureMonths)

	next := schedule[0]
	return dto.LoanResponse{Loan: loan, NextEMI: &next}, nil
}

func (uc *CreateLoanUseCase) validate(req dto.CreateLoanRequest) error {
	var issues []string
	if req.MemberID == "" {
		issues = append(issues, "memberId is required")
	}
	min := decimal.NewFromInt(uc.society.Loan.MinAmount)
	max := decimal.NewFromInt(uc.society.Loan.MaxAmount)
	if req.LoanAmount.LessThan(min) || req.LoanAmount.GreaterThan(max) {
		issues = append(issues, fmt.Sprintf("loan amount must be between %s and %s", min, max))
	}
	tenure := uc.society.Loan.Tenure
	if req.TenureMonths < tenure.MinMonths || req.TenureMonths > tenure.MaxMonths {
		issues = append(issues, fmt.Sprintf("tenure must be between %d and %d months",
			tenure.MinMonths, tenure.MaxMonths))
	}
	if len(issues) > 0 {
		return errs.ValidationIssues("invalid loan request", issues)
	}
	return nil
}
