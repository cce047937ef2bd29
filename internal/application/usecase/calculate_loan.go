package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/engine"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
)

// CalculateLoanUseCase produces a schedule quote without touching any
// stored state. Members use it to compare terms before committing.
type CalculateLoanUseCase struct {
	scheduler  *engine.ScheduleGenerator
	collection *engine.InitialCollectionCalculator
	society    config.SocietyConfig
}

// NewCalculateLoanUseCase wires dependencies.
func NewCalculateLoanUseCase(society config.SocietyConfig) *CalculateLoanUseCase {
	return &CalculateLoanUseCase{
		scheduler:  engine.NewScheduleGenerator(society),
		collection: engine.NewInitialCollectionCalculator(society),
		society:    society,
	}
}

// Execute builds the quote. The amount is held to the same policy limits a
// real disbursement would be.
func (uc *CalculateLoanUseCase) Execute(ctx context.Context, req dto.CalculateLoanRequest) (dto.LoanQuoteResponse, error) {
	min := decimal.NewFromInt(uc.society.Loan.MinAmount)
	max := decimal.NewFromInt(uc.society.Loan.MaxAmount)
	if req.LoanAmount.LessThan(min) || req.LoanAmount.GreaterThan(max) {
		return dto.LoanQuoteResponse{}, errs.Validationf("loan amount must be between %s and %s", min, max)
	}

	disbursement := time.Now().UTC()
	if req.DisbursementDate != "" {
		var err error
		disbursement, err = time.Parse(dateLayout, req.DisbursementDate)
		if err != nil {
			return dto.LoanQuoteResponse{}, errs.Validationf("invalid disbursement date %q", req.DisbursementDate)
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
		return dto.LoanQuoteResponse{}, err
	}

	return dto.LoanQuoteResponse{
		LoanAmount:        req.LoanAmount,
		TenureMonths:      req.TenureMonths,
		InterestRate:      uc.scheduler.Rate(req.LoanAmount),
		Schedule:          schedule,
		Summary:           engine.Summarize(schedule),
		InitialCollection: uc.collection.Calculate(req.LoanAmount, req.IsNewMember),
	}, nil
}
