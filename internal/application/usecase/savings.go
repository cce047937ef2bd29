package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

var (
	daysPerYear = decimal.NewFromInt(365)
	hundredDec  = decimal.NewFromInt(100)
)

// SavingsUseCase manages savings accounts: withdrawals and periodic
// interest accrual. Deposits arrive through RecordPaymentUseCase as
// payments of kind savings.
type SavingsUseCase struct {
	savingsRepo port.SavingsRepository
	society     config.SocietyConfig
	logger      *slog.Logger
}

// NewSavingsUseCase wires dependencies.
func NewSavingsUseCase(savingsRepo port.SavingsRepository, society config.SocietyConfig, logger *slog.Logger) *SavingsUseCase {
	return &SavingsUseCase{savingsRepo: savingsRepo, society: society, logger: logger}
}

// Get returns a member's savings account.
func (uc *SavingsUseCase) Get(ctx context.Context, memberID string) (model.SavingsAccount, error) {
	if memberID == "" {
		return model.SavingsAccount{}, errs.Validation("member id is required")
	}
	return uc.savingsRepo.FindByMemberID(ctx, memberID)
}

// Withdraw debits the account. Balances never go negative.
func (uc *SavingsUseCase) Withdraw(ctx context.Context, req dto.SavingsTransactionRequest) (model.SavingsAccount, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return model.SavingsAccount{}, errs.Validation("withdrawal amount must be positive")
	}

	account, err := uc.savingsRepo.FindByMemberID(ctx, req.MemberID)
	if err != nil {
		return model.SavingsAccount{}, err
	}
	if account.Status != valueobject.SavingsActive {
		return model.SavingsAccount{}, errs.Validationf("savings account %s is closed", account.AccountID)
	}
	if account.Balance.LessThan(req.Amount) {
		return model.SavingsAccount{}, errs.Validationf("insufficient savings balance %s for withdrawal %s",
			account.Balance, req.Amount)
	}

	now := time.Now().UTC()
	account.Balance = account.Balance.Sub(req.Amount)
	txDate := model.DateOnly(now)
	account.LastTransactionDate = &txDate
	account.UpdatedAt = now

	if err := uc.savingsRepo.Save(ctx, account); err != nil {
		return model.SavingsAccount{}, fmt.Errorf("save savings account: %w", err)
	}

	uc.logger.Info("savings withdrawal",
		"accountId", account.AccountID, "amount", req.Amount, "balance", account.Balance)
	return account, nil
}

// AccrueInterest credits daily prorated interest on every active account
// that has not been accrued up to asOf yet. It is safe to run repeatedly;
// accounts already accrued through asOf are skipped.
func (uc *SavingsUseCase) AccrueInterest(ctx context.Context, asOf time.Time) (int, error) {
	if !uc.society.Savings.Interest.Enabled {
		return 0, nil
	}

	accounts, err := uc.savingsRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list savings accounts: %w", err)
	}

	rate := decimal.NewFromFloat(uc.society.Savings.Interest.RatePerAnnum)
	day := model.DateOnly(asOf)
	accrued := 0
	for _, account := range accounts {
		if account.Status != valueobject.SavingsActive {
			continue
		}
		last := model.DateOnly(account.LastInterestCalculation)
		days := int64(day.Sub(last).Hours() / 24)
		if days <= 0 {
			continue
		}

		interest := account.Balance.
			Mul(rate).Div(hundredDec).
			Mul(decimal.NewFromInt(days)).Div(daysPerYear).
			Round(0)

		account.Balance = account.Balance.Add(interest)
		account.InterestEarned = account.InterestEarned.Add(interest)
		account.LastInterestCalculation = day
		account.UpdatedAt = time.Now().UTC()

		if err := uc.savingsRepo.Save(ctx, account); err != nil {
			return accrued, fmt.Errorf("save savings account %s: %w", account.AccountID, err)
		}
		accrued++
	}

	uc.logger.Info("savings interest accrued", "accounts", accrued, "asOf", day)
	return accrued, nil
}
