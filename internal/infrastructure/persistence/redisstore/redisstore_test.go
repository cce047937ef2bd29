package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/errs"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/model"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/port"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/infrastructure/persistence/redisstore"
)

func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewWithClient(client)
}

func sampleLoan(id, loanID, memberID string, status valueobject.LoanStatus) model.Loan {
	return model.Loan{
		ID:                 id,
		LoanID:             loanID,
		MemberID:           memberID,
		LoanAmount:         decimal.NewFromInt(120000),
		TenureMonths:       12,
		DisbursementDate:   time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		InterestRate:       decimal.RequireFromString("1.5"),
		OutstandingBalance: decimal.NewFromInt(120000),
		Status:             status,
		Schedule: []model.Installment{{
			EMINumber:        1,
			DueDate:          time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
			MonthlyPrincipal: decimal.NewFromInt(10000),
			MonthlyInterest:  decimal.NewFromInt(1800),
			MonthlySavings:   decimal.NewFromInt(200),
			TotalPayment:     decimal.NewFromInt(12000),
			PaymentStatus:    valueobject.InstallmentPending,
		}},
		CreatedAt: time.Now().UTC(),
	}
}

func TestLoanRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := redisstore.NewLoanRepository(store)

	loan := sampleLoan("loan-a", "LOAN-2026-00001", "member-a", valueobject.LoanStatusActive)
	require.NoError(t, repo.Save(ctx, loan))
	require.NoError(t, repo.Save(ctx, sampleLoan("loan-b", "LOAN-2026-00002", "member-b", valueobject.LoanStatusClosed)))

	t.Run("round-trips the full document", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "loan-a")
		require.NoError(t, err)
		assert.Equal(t, "LOAN-2026-00001", got.LoanID)
		assert.True(t, got.LoanAmount.Equal(decimal.NewFromInt(120000)))
		require.Len(t, got.Schedule, 1)
		assert.True(t, got.Schedule[0].TotalPayment.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("finds by business id", func(t *testing.T) {
		got, err := repo.FindByLoanID(ctx, "LOAN-2026-00002")
		require.NoError(t, err)
		assert.Equal(t, "loan-b", got.ID)
	})

	t.Run("list filters by member and status", func(t *testing.T) {
		all, err := repo.List(ctx, port.LoanFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := repo.List(ctx, port.LoanFilter{Status: valueobject.LoanStatusActive})
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "loan-a", active[0].ID)

		byMember, err := repo.List(ctx, port.LoanFilter{MemberID: "member-b"})
		require.NoError(t, err)
		require.Len(t, byMember, 1)
		assert.Equal(t, "loan-b", byMember[0].ID)
	})

	t.Run("missing loan yields not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "loan-z")
		var nf *errs.NotFoundError
		require.ErrorAs(t, err, &nf)

		_, err = repo.FindByLoanID(ctx, "LOAN-2026-09999")
		require.ErrorAs(t, err, &nf)
	})
}

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := redisstore.NewPaymentRepository(store)

	require.NoError(t, repo.Save(ctx, model.Payment{
		ID:        "pay-a",
		PaymentID: "PAY-000001",
		MemberID:  "member-a",
		LoanID:    "LOAN-2026-00001",
		Amount:    decimal.NewFromInt(12000),
		Kind:      valueobject.PaymentKindLoanEMI,
		Date:      time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repo.Save(ctx, model.Payment{
		ID:        "pay-b",
		PaymentID: "PAY-000002",
		MemberID:  "member-a",
		Amount:    decimal.NewFromInt(500),
		Kind:      valueobject.PaymentKindSavings,
		Date:      time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
	}))

	t.Run("finds by business id", func(t *testing.T) {
		got, err := repo.FindByPaymentID(ctx, "PAY-000002")
		require.NoError(t, err)
		assert.Equal(t, "pay-b", got.ID)
	})

	t.Run("list filters by kind and loan", func(t *testing.T) {
		emis, err := repo.List(ctx, port.PaymentFilter{Kind: valueobject.PaymentKindLoanEMI})
		require.NoError(t, err)
		require.Len(t, emis, 1)
		assert.Equal(t, "pay-a", emis[0].ID)

		byLoan, err := repo.List(ctx, port.PaymentFilter{LoanID: "LOAN-2026-00001"})
		require.NoError(t, err)
		assert.Len(t, byLoan, 1)
	})

	t.Run("list sorts newest first", func(t *testing.T) {
		all, err := repo.List(ctx, port.PaymentFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "pay-b", all[0].ID)
	})
}

func TestMemberRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := redisstore.NewMemberRepository(store)

	require.NoError(t, repo.Save(ctx, model.Member{
		ID:       "member-a",
		MemberID: "MEM-00001",
		Name:     "Lakshmi Devi",
		Phone:    "9876543210",
		Status:   valueobject.MemberActive,
	}))

	t.Run("finds by phone", func(t *testing.T) {
		got, err := repo.FindByPhone(ctx, "9876543210")
		require.NoError(t, err)
		assert.Equal(t, "member-a", got.ID)
	})

	t.Run("finds by business id", func(t *testing.T) {
		got, err := repo.FindByMemberID(ctx, "MEM-00001")
		require.NoError(t, err)
		assert.Equal(t, "Lakshmi Devi", got.Name)
	})

	t.Run("unknown phone yields not found", func(t *testing.T) {
		_, err := repo.FindByPhone(ctx, "0000000000")
		var nf *errs.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestSavingsRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := redisstore.NewSavingsRepository(store)

	require.NoError(t, repo.Save(ctx, model.SavingsAccount{
		ID:        "sav-a",
		AccountID: "SAV-000001",
		MemberID:  "member-a",
		Balance:   decimal.NewFromInt(1000),
		Status:    valueobject.SavingsActive,
	}))

	got, err := repo.FindByMemberID(ctx, "member-a")
	require.NoError(t, err)
	assert.Equal(t, "sav-a", got.ID)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(1000)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSequences(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	seq := redisstore.NewSequences(store)

	n1, err := seq.Next(ctx, "loans")
	require.NoError(t, err)
	n2, err := seq.Next(ctx, "loans")
	require.NoError(t, err)
	other, err := seq.Next(ctx, "payments")
	require.NoError(t, err)

	assert.Equal(t, int64(1), n1)
	assert.Equal(t, int64(2), n2)
	assert.Equal(t, int64(1), other, "counters are independent per collection")
}
