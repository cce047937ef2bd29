// Package port declares the outbound interfaces the domain and use cases
// depend on. Infrastructure supplies the implementations.
package port

import (
	"context"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/events"
)

// LoanFilter narrows loan listings. Zero values mean no constraint.
type LoanFilter struct {
	MemberID string
	Status   valueobject.LoanStatus
}

// LoanRepository persists loan records with their full schedules.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByLoanID(ctx context.Context, loanID string) (model.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]model.Loan, error)
}

// PaymentFilter narrows payment listings. Zero values mean no constraint.
type PaymentFilter struct {
	MemberID string
	LoanID   string
	Kind     valueobject.PaymentKind
}

// PaymentRepository persists immutable payment records.
type PaymentRepository interface {
	Save(ctx context.Context, payment model.Payment) error
	FindByID(ctx context.Context, id string) (model.Payment, error)
	FindByPaymentID(ctx context.Context, paymentID string) (model.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]model.Payment, error)
}

// MemberRepository persists society member records.
type MemberRepository interface {
	Save(ctx context.Context, member model.Member) error
	FindByID(ctx context.Context, id string) (model.Member, error)
	FindByMemberID(ctx context.Context, memberID string) (model.Member, error)
	FindByPhone(ctx context.Context, phone string) (model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
}

// SavingsRepository persists savings accounts.
type SavingsRepository interface {
	Save(ctx context.Context, account model.SavingsAccount) error
	FindByID(ctx context.Context, id string) (model.SavingsAccount, error)
	FindByMemberID(ctx context.Context, memberID string) (model.SavingsAccount, error)
	List(ctx context.Context) ([]model.SavingsAccount, error)
}

// Sequences mints monotonically increasing numbers per named collection.
// They back the human-readable business identifiers.
type Sequences interface {
	Next(ctx context.Context, name string) (int64, error)
}

// EventPublisher pushes domain events to the message broker. Publishing is
// best effort after a successful write; a failed publish never rolls the
// write back.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	Close() error
}
