package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/application/dto"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/engine"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/event"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// paymentStatusCompleted is the terminal status stamped on every persisted
// payment. Payments are recorded after the fact, there is no pending state.
const paymentStatusCompleted = "completed"

// RecordPaymentUseCase accepts a payment of any kind and dispatches on it:
// EMI payments run through the allocator, foreclosures through the
// foreclosure calculator, savings deposits credit the account, fees and
// penalties are recorded as-is.
type RecordPaymentUseCase struct {
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	memberRepo  port.MemberRepository
	savingsRepo port.SavingsRepository
	sequences   port.Sequences
	publisher   port.EventPublisher
	allocator   *engine.PaymentAllocator
	foreclosure *engine.ForeclosureCalculator
	logger      *slog.Logger
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	memberRepo port.MemberRepository,
	savingsRepo port.SavingsRepository,
	sequences port.Sequences,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
		savingsRepo: savingsRepo,
		sequences:   sequences,
		publisher:   publisher,
		allocator:   engine.NewPaymentAllocator(),
		foreclosure: engine.NewForeclosureCalculator(),
		logger:      logger,
	}
}

// Execute records the payment.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, req dto.RecordPaymentRequest) (dto.PaymentResponse, error) {
	kind, err := valueobject.ParsePaymentKind(req.Kind)
	if err != nil {
		return dto.PaymentResponse{}, errs.Validation(err.Error())
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return dto.PaymentResponse{}, errs.Validation("payment amount must be positive")
	}
	if req.MemberID == "" {
		return dto.PaymentResponse{}, errs.Validation("memberId is required")
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse(dateLayout, req.PaymentDate)
		if err != nil {
			return dto.PaymentResponse{}, errs.Validationf("invalid payment date %q", req.PaymentDate)
		}
	}

	member, err := uc.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find member: %w", err)
	}

	payment := model.Payment{
		ID:          uuid.New().String(),
		MemberID:    member.ID,
		Amount:      req.Amount,
		Date:        model.DateOnly(paymentDate),
		Method:      paymentMethod(req.Method),
		Reference:   req.Reference,
		Kind:        kind,
		Remarks:     req.Remarks,
		Status:      paymentStatusCompleted,
		ProcessedAt: time.Now().UTC(),
		CreatedAt:   time.Now().UTC(),
	}

	resp := dto.PaymentResponse{}
	switch kind {
	case valueobject.PaymentKindLoanEMI:
		resp, err = uc.applyEMIPayment(ctx, &payment, req, paymentDate)
	case valueobject.PaymentKindLoanForeclosure:
		resp, err = uc.applyForeclosure(ctx, &payment, req, paymentDate)
	case valueobject.PaymentKindSavings:
		resp, err = uc.applySavingsDeposit(ctx, &payment, paymentDate)
	case valueobject.PaymentKindFee, valueobject.PaymentKindPenalty:
		// Nothing to allocate, the record itself is the outcome.
	}
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	seq, err := uc.sequences.Next(ctx, "payments")
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("next payment sequence: %w", err)
	}
	payment.PaymentID = fmt.Sprintf("PAY-%06d", seq)

	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}

	evt := event.NewPaymentReceived(payment.ID, payment.PaymentID, payment.LoanID,
		member.ID, payment.Amount, string(kind),
		payment.PrincipalAmount, payment.InterestAmount, payment.SavingsAmount, payment.LateCharges)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Warn("publish payment received event failed",
			"paymentId", payment.PaymentID, "error", err)
	}

	uc.logger.Info("payment recorded",
		"paymentId", payment.PaymentID,
		"memberId", member.MemberID,
		"type", kind,
		"amount", payment.Amount)

	resp.Payment = payment
	return resp, nil
}

func (uc *RecordPaymentUseCase) applyEMIPayment(ctx context.Context, payment *model.Payment, req dto.RecordPaymentRequest, paymentDate time.Time) (dto.PaymentResponse, error) {
	loan, err := uc.findLoan(ctx, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, err
	}
	if loan.Status == valueobject.LoanStatusClosed {
		return dto.PaymentResponse{}, errs.Validationf("loan %s is closed", loan.LoanID)
	}

	updated, alloc, err := uc.allocator.Apply(loan, req.Amount, req.EMINumbers, paymentDate)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	if err := uc.loanRepo.Save(ctx, updated); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}

	payment.LoanID = loan.LoanID
	payment.EMINumbers = alloc.EMINumbers
	payment.PrincipalAmount = alloc.PrincipalPaid
	payment.InterestAmount = alloc.InterestPaid
	payment.SavingsAmount = alloc.SavingsPaid
	payment.LateCharges = alloc.LateFeeTotal
	payment.UnappliedAmount = alloc.Unapplied
	payment.AllocationKind = alloc.Kind

	for _, emi := range alloc.LateFeeEMIs {
		inst, _ := updated.Installment(emi)
		feeEvt := event.NewInstallmentLateFeeCharged(updated.ID, updated.LoanID,
			emi, updated.LateFeeAmount, inst.DueDate)
		if err := uc.publisher.Publish(ctx, feeEvt); err != nil {
			uc.logger.Warn("publish late fee event failed",
				"loanId", updated.LoanID, "emiNumber", emi, "error", err)
		}
	}
	if updated.Status == valueobject.LoanStatusClosed {
		closedEvt := event.NewLoanClosed(updated.ID, updated.LoanID, updated.MemberID, *updated.ClosedDate)
		if err := uc.publisher.Publish(ctx, closedEvt); err != nil {
			uc.logger.Warn("publish loan closed event failed",
				"loanId", updated.LoanID, "error", err)
		}
	}

	return dto.PaymentResponse{Loan: &updated, Warnings: alloc.Warnings}, nil
}

func (uc *RecordPaymentUseCase) applyForeclosure(ctx context.Context, payment *model.Payment, req dto.RecordPaymentRequest, paymentDate time.Time) (dto.PaymentResponse, error) {
	loan, err := uc.findLoan(ctx, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	updated, result, err := uc.foreclosure.Foreclose(loan, req.Amount, paymentDate)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	if err := uc.loanRepo.Save(ctx, updated); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}

	payment.LoanID = loan.LoanID
	payment.PrincipalAmount = result.OutstandingPrincipal
	payment.InterestAmount = result.CurrentMonthInterest
	payment.UnappliedAmount = result.Excess
	payment.AllocationKind = valueobject.AllocationFull

	fcEvt := event.NewLoanForeclosed(updated.ID, updated.LoanID, updated.MemberID,
		result.SettlementAmount, *updated.ForeclosureDate)
	if err := uc.publisher.Publish(ctx, fcEvt); err != nil {
		uc.logger.Warn("publish loan foreclosed event failed",
			"loanId", updated.LoanID, "error", err)
	}

	var warnings []string
	if result.Excess.IsPositive() {
		warnings = append(warnings, fmt.Sprintf(
			"amount exceeds settlement by %s; excess recorded on the payment", result.Excess))
	}
	return dto.PaymentResponse{Loan: &updated, Warnings: warnings}, nil
}

func (uc *RecordPaymentUseCase) applySavingsDeposit(ctx context.Context, payment *model.Payment, paymentDate time.Time) (dto.PaymentResponse, error) {
	account, err := uc.savingsRepo.FindByMemberID(ctx, payment.MemberID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find savings account: %w", err)
	}
	if account.Status != valueobject.SavingsActive {
		return dto.PaymentResponse{}, errs.Validationf("savings account %s is closed", account.AccountID)
	}

	account.Balance = account.Balance.Add(payment.Amount)
	txDate := model.DateOnly(paymentDate)
	account.LastTransactionDate = &txDate
	account.UpdatedAt = time.Now().UTC()

	if err := uc.savingsRepo.Save(ctx, account); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save savings account: %w", err)
	}

	payment.SavingsAmount = payment.Amount
	return dto.PaymentResponse{}, nil
}

// findLoan resolves either the storage UUID or the business LOAN-... id.
func (uc *RecordPaymentUseCase) findLoan(ctx context.Context, id string) (model.Loan, error) {
	if id == "" {
		return model.Loan{}, errs.Validation("loanId is required for loan payments")
	}
	if _, err := uuid.Parse(id); err == nil {
		return uc.loanRepo.FindByID(ctx, id)
	}
	return uc.loanRepo.FindByLoanID(ctx, id)
}

func paymentMethod(raw string) valueobject.PaymentMethod {
	switch valueobject.PaymentMethod(raw) {
	case valueobject.MethodCheque, valueobject.MethodUPI, valueobject.MethodBankTransfer:
		return valueobject.PaymentMethod(raw)
	default:
		return valueobject.MethodCash
	}
}
