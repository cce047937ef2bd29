package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/config"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/event"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// RegisterMemberUseCase onboards a new society member and opens their
// savings account in the same step.
type RegisterMemberUseCase struct {
	memberRepo  port.MemberRepository
	savingsRepo port.SavingsRepository
	sequences   port.Sequences
	publisher   port.EventPublisher
	society     config.SocietyConfig
	logger      *slog.Logger
}

// NewRegisterMemberUseCase wires dependencies.
func NewRegisterMemberUseCase(
	memberRepo port.MemberRepository,
	savingsRepo port.SavingsRepository,
	sequences port.Sequences,
	publisher port.EventPublisher,
	society config.SocietyConfig,
	logger *slog.Logger,
) *RegisterMemberUseCase {
	return &RegisterMemberUseCase{
		memberRepo:  memberRepo,
		savingsRepo: savingsRepo,
		sequences:   sequences,
		publisher:   publisher,
		society:     society,
		logger:      logger,
	}
}

// Execute registers the member.
func (uc *RegisterMemberUseCase) Execute(ctx context.Context, req dto.RegisterMemberRequest) (dto.MemberResponse, error) {
	var issues []string
	if req.Name == "" {
		issues = append(issues, "name is required")
	}
	if req.Phone == "" {
		issues = append(issues, "phone is required")
	}
	if len(issues) > 0 {
		return dto.MemberResponse{}, errs.ValidationIssues("invalid member request", issues)
	}

	// Phone is the natural key for duplicate detection.
	if existing, err := uc.memberRepo.FindByPhone(ctx, req.Phone); err == nil {
		return dto.MemberResponse{}, errs.Validationf("phone %s already registered to member %s",
			req.Phone, existing.MemberID)
	} else {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			return dto.MemberResponse{}, fmt.Errorf("check phone: %w", err)
		}
	}

	seq, err := uc.sequences.Next(ctx, "members")
	if err != nil {
		return dto.MemberResponse{}, fmt.Errorf("next member sequence: %w", err)
	}

	now := time.Now().UTC()
	idFormat := uc.society.Member.IDFormat
	member := model.Member{
		ID:         uuid.New().String(),
		MemberID:   fmt.Sprintf("%s-%0*d", idFormat.Prefix, idFormat.SequenceLength, seq),
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		Email:      req.Email,
		Status:     valueobject.MemberActive,
		JoinedDate: model.DateOnly(now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.memberRepo.Save(ctx, member); err != nil {
		return dto.MemberResponse{}, fmt.Errorf("save member: %w", err)
	}

	account, err := uc.openSavingsAccount(ctx, member, now)
	if err != nil {
		return dto.MemberResponse{}, err
	}

	evt := event.NewMemberRegistered(member.ID, member.MemberID, member.Name)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Warn("publish member registered event failed",
			"memberId", member.MemberID, "error", err)
	}

	uc.logger.Info("member registered", "memberId", member.MemberID, "name", member.Name)
	return dto.MemberResponse{Member: member, Savings: &account}, nil
}

func (uc *RegisterMemberUseCase) openSavingsAccount(ctx context.Context, member model.Member, now time.Time) (model.SavingsAccount, error) {
	seq, err := uc.sequences.Next(ctx, "savings")
	if err != nil {
		return model.SavingsAccount{}, fmt.Errorf("next savings sequence: %w", err)
	}

	account := model.SavingsAccount{
		ID:                      uuid.New().String(),
		AccountID:               fmt.Sprintf("SAV-%06d", seq),
		MemberID:                member.ID,
		Balance:                 decimal.Zero,
		InterestEarned:          decimal.Zero,
		LastInterestCalculation: model.DateOnly(now),
		Status:                  valueobject.SavingsActive,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.savingsRepo.Save(ctx, account); err != nil {
		return model.SavingsAccount{}, fmt.Errorf("save savings account: %w", err)
	}
	return account, nil
}
